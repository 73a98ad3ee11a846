package jellyfin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/jellofin/jellofin-server/database/model"
)

type contextKey int

const contextAccessTokenDetails contextKey = iota

// authSchemeValues holds parsed emby authorization scheme values
type authSchemeValues struct {
	device   string
	deviceID string
	token    string
	client   string
	version  string
}

var authHeaderKV = regexp.MustCompile(`(\w+)="(.*?)"`)

// parseAuthHeader parses the emby authorization header.
//
// MediaBrowser Client="Jellyfin%20Media%20Player", Device="mbp", DeviceId="0dabe147-5d08-4e70-adde-d6b778b725aa", Version="1.11.1", Token="aea78abca5744378b2a2badf710e7307"
// MediaBrowser Device="Mac", DeviceId="0dabe147-5d08-4e70-adde-d6b778b725aa", Token="826c2aa3596b47f2a386dd2811248649", Client="Infuse-Direct", Version="8.0.9"
func (j *Jellyfin) parseAuthHeader(r *http.Request) (*authSchemeValues, error) {
	errEmbyAuthHeader := errors.New("invalid or no authorization header provided")

	authHeader := r.Header.Get("authorization")
	if authHeader == "" {
		authHeader = r.Header.Get("x-emby-authorization")
	}
	if !strings.HasPrefix(authHeader, "MediaBrowser ") {
		return nil, errEmbyAuthHeader
	}

	var result authSchemeValues
	for _, match := range authHeaderKV.FindAllStringSubmatch(authHeader, -1) {
		switch match[1] {
		case "Client":
			result.client = match[2]
		case "Device":
			result.device = match[2]
		case "DeviceId":
			result.deviceID = match[2]
		case "Version":
			result.version = match[2]
		case "Token":
			result.token = match[2]
		}
	}
	if result.client == "" || result.device == "" || result.deviceID == "" {
		return nil, errEmbyAuthHeader
	}
	return &result, nil
}

// authmiddleware validates the auth token, which clients provide in a
// variety of headers.
func (j *Jellyfin) authmiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string

		if embyHeader, err := j.parseAuthHeader(r); err == nil {
			token = embyHeader.token
		}
		if t := r.Header.Get("x-emby-token"); t != "" {
			token = t
		}
		if t := r.Header.Get("x-mediabrowser-token"); t != "" {
			token = t
		}
		// Needed for Streamyfin's embedded VLC. Clients spell the
		// parameter both ways; the normalizer folds other casings onto
		// api_key.
		if t := r.URL.Query().Get("api_key"); t != "" {
			token = t
		}
		if t := r.URL.Query().Get("apiKey"); t != "" {
			token = t
		}
		if token == "" {
			apierror(w, "no token provided", http.StatusUnauthorized)
			return
		}

		tokendetails, err := j.repo.AccessTokenRepo.GetAccessToken(r.Context(), token)
		if err != nil {
			log.Printf("invalid access token: %s", err)
			apierror(w, "invalid access token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), contextAccessTokenDetails, tokendetails)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getAccessTokenDetails returns the access token details stored in the
// request context by authmiddleware. Writes an unauthorized error and
// returns nil when absent.
func (j *Jellyfin) getAccessTokenDetails(w http.ResponseWriter, r *http.Request) *model.AccessToken {
	details, ok := r.Context().Value(contextAccessTokenDetails).(*model.AccessToken)
	if ok {
		return details
	}
	apierror(w, "access token not found", http.StatusUnauthorized)
	return nil
}
