// Package muxnormalizer holds middleware that normalizes request paths
// and query parameters, to stay compatible with clients that deviate
// from the Jellyfin OpenAPI casing.
//
// E.g. /emby/Items?ParentId=123 is normalized to /Items?parentId=123.
package muxnormalizer

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

type Normalizer struct {
	// routesBySegments indexes the canonical casing of every registered
	// route by its number of path segments.
	routesBySegments map[int][]routeCasing
}

// routeCasing maps segment index to the canonical static segment at
// that position; path parameters are absent.
type routeCasing map[int]string

// New indexes the casing of all routes registered on the router.
func New(r *mux.Router) (*Normalizer, error) {
	n := &Normalizer{
		routesBySegments: make(map[int][]routeCasing),
	}

	err := r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		template, err := route.GetPathTemplate()
		if err != nil {
			// route without a path, e.g. a matcher-only route
			return nil
		}

		casing := make(routeCasing)
		segIndex := 0
		for _, part := range strings.Split(template, "/") {
			if part == "" {
				continue
			}
			if !strings.HasPrefix(part, "{") {
				casing[segIndex] = part
			}
			segIndex++
		}
		n.routesBySegments[segIndex] = append(n.routesBySegments[segIndex], casing)
		return nil
	})

	return n, err
}

// Middleware normalizes the request path and query parameters before
// the router sees them.
func (n *Normalizer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Some clients talk to the legacy Emby prefix.
		if strings.HasPrefix(strings.ToLower(path), "/emby/") {
			path = path[len("/emby"):]
		}

		for strings.Contains(path, "//") {
			path = strings.ReplaceAll(path, "//", "/")
		}

		if path != "/" && strings.HasSuffix(path, "/") {
			path = path[:len(path)-1]
		}

		r.URL.Path = n.normalizePath(path)

		if len(r.URL.RawQuery) > 0 {
			r.URL.RawQuery = normalizeQueryParameters(r.URL.RawQuery)
		}
		next.ServeHTTP(w, r)
	})
}

// normalizePath fixes the casing of static path segments using the
// route index. The first route whose static segments match wins.
func (n *Normalizer) normalizePath(path string) string {
	var segments []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			segments = append(segments, p)
		}
	}

	for _, casing := range n.routesBySegments[len(segments)] {
		canonical := make([]string, len(segments))
		copy(canonical, segments)

		match := true
		for i, seg := range segments {
			want, ok := casing[i]
			if !ok {
				// path parameter position, anything goes
				continue
			}
			if !strings.EqualFold(seg, want) {
				match = false
				break
			}
			canonical[i] = want
		}
		if match {
			return "/" + strings.Join(canonical, "/")
		}
	}
	return path
}

// normalizeQueryParameters renames query parameters to their canonical
// casing and drops the ones we ignore.
func normalizeQueryParameters(rawQuery string) string {
	params, _ := url.ParseQuery(rawQuery)
	normalized := url.Values{}

	for name, values := range params {
		k := strings.ToLower(name)
		if _, remove := removeParams[k]; remove {
			continue
		}
		if canonical, ok := canonicalParams[k]; ok {
			name = canonical
		}
		for _, v := range values {
			normalized.Add(name, v)
		}
	}
	return normalized.Encode()
}

// canonicalParams maps lowercased query parameter names to the casing
// the handlers read.
var canonicalParams = map[string]string{
	"api_key":                 "api_key",
	"apikey":                  "api_key",
	"code":                    "code",
	"enableimages":            "enableImages",
	"excludeitemids":          "excludeItemIds",
	"filters":                 "filters",
	"genreids":                "genreIds",
	"genres":                  "genres",
	"ids":                     "ids",
	"indexnumber":             "indexNumber",
	"includeitemtypes":        "includeItemTypes",
	"isfavorite":              "isFavorite",
	"isplayed":                "isPlayed",
	"limit":                   "limit",
	"maxpremieredate":         "maxPremiereDate",
	"mediatypes":              "mediaTypes",
	"mincommunityrating":      "minCommunityRating",
	"minpremieredate":         "minPremiereDate",
	"mincriticrating":         "minCriticRating",
	"name":                    "name",
	"namelessthan":            "nameLessThan",
	"namestartswith":          "nameStartsWith",
	"namestartswithorgreater": "nameStartsWithOrGreater",
	"officialratings":         "officialRatings",
	"parentid":                "parentId",
	"parentindexnumber":       "parentIndexNumber",
	"recursive":               "recursive",
	"searchterm":              "searchTerm",
	"seasonid":                "seasonId",
	"secret":                  "secret",
	"seriesid":                "seriesId",
	"studioids":               "studioIds",
	"studios":                 "studios",
	"tag":                     "tag",
	"sortby":                  "sortBy",
	"sortorder":               "sortOrder",
	"startindex":              "startIndex",
	"userid":                  "userId",
	"years":                   "years",
}

// removeParams are query parameters we accept but ignore.
var removeParams = map[string]struct{}{
	// we always return the full response object
	"fields": {},
}
