package jellyfin

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jellofin/jellofin-server/database/model"
)

// GET /QuickConnect/Enabled
//
// quickConnectEnabledHandler returns whether quick connect is enabled.
func (j *Jellyfin) quickConnectEnabledHandler(w http.ResponseWriter, r *http.Request) {
	serveJSON(true, w)
}

// POST /QuickConnect/Initiate
//
// quickConnectInitiateHandler starts a quick connect attempt on behalf
// of a device that wants to log in. The device polls /QuickConnect/Connect
// with the returned secret until an authenticated user approves the code.
func (j *Jellyfin) quickConnectInitiateHandler(w http.ResponseWriter, r *http.Request) {
	embyHeader, err := j.parseAuthHeader(r)
	if err != nil {
		apierror(w, err.Error(), http.StatusBadRequest)
		return
	}

	code := model.QuickConnectCode{
		DeviceID: embyHeader.deviceID,
		Secret:   uuid.NewString(),
		Code:     fmt.Sprintf("%06d", rand.Intn(1000000)),
		Created:  time.Now().UTC(),
	}
	if err := j.repo.QuickConnectRepo.UpsertQuickConnectCode(r.Context(), code); err != nil {
		apierror(w, "Failed to initiate quick connect", http.StatusInternalServerError)
		return
	}

	serveJSON(JFQuickConnectResult{
		Secret:     code.Secret,
		Code:       code.Code,
		DeviceID:   embyHeader.deviceID,
		DeviceName: embyHeader.device,
		AppName:    embyHeader.client,
		AppVersion: embyHeader.version,
		DateAdded:  code.Created,
	}, w)
}

// GET /QuickConnect/Connect?secret=xyz
//
// quickConnectConnectHandler returns the state of a quick connect
// attempt so the initiating device knows when it has been approved.
func (j *Jellyfin) quickConnectConnectHandler(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get("secret")
	if secret == "" {
		apierror(w, "secret parameter required", http.StatusBadRequest)
		return
	}
	code, err := j.repo.QuickConnectRepo.GetQuickConnectCodeBySecret(r.Context(), secret)
	if err != nil {
		apierror(w, "quickconnect code not found", http.StatusNotFound)
		return
	}
	serveJSON(JFQuickConnectResult{
		Authenticated: code.Authorized,
		Secret:        code.Secret,
		Code:          code.Code,
		DeviceID:      code.DeviceID,
		DateAdded:     code.Created,
	}, w)
}

// POST /QuickConnect/Authorize?code=123456
//
// quickConnectAuthorizeHandler lets an authenticated user approve a
// quick connect code shown on another device.
func (j *Jellyfin) quickConnectAuthorizeHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		apierror(w, "code parameter required", http.StatusBadRequest)
		return
	}
	qc, err := j.repo.QuickConnectRepo.GetQuickConnectCodeByCode(r.Context(), code)
	if err != nil {
		apierror(w, "Unknown quick connect code", http.StatusNotFound)
		return
	}

	qc.Authorized = true
	qc.UserID = accessToken.UserID
	if err := j.repo.QuickConnectRepo.UpsertQuickConnectCode(r.Context(), *qc); err != nil {
		apierror(w, "Failed to authorize quick connect code", http.StatusInternalServerError)
		return
	}
	serveJSON(true, w)
}

// POST /Users/AuthenticateWithQuickConnect
//
// usersAuthenticateWithQuickConnectHandler exchanges an approved quick
// connect secret for an access token.
func (j *Jellyfin) usersAuthenticateWithQuickConnectHandler(w http.ResponseWriter, r *http.Request) {
	var request JFAuthenticateWithQuickConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		apierror(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if request.Secret == "" {
		apierror(w, "Secret required", http.StatusBadRequest)
		return
	}

	qc, err := j.repo.QuickConnectRepo.GetQuickConnectCodeBySecret(r.Context(), request.Secret)
	if err != nil || !qc.Authorized {
		apierror(w, "Quick connect code not authorized", http.StatusUnauthorized)
		return
	}

	user, err := j.repo.UserRepo.GetUserByID(r.Context(), qc.UserID)
	if err != nil {
		apierror(w, errUserIDNotFound, http.StatusUnauthorized)
		return
	}

	accesstoken, err := j.repo.AccessTokenRepo.CreateAccessToken(r.Context(), user.ID)
	if err != nil {
		apierror(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	serveJSON(JFAuthenticateByNameResponse{
		AccessToken: accesstoken,
		ServerId:    j.serverID,
		User:        j.makeJFUser(r.Context(), user),
	}, w)
}
