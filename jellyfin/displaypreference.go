package jellyfin

import (
	"encoding/json"
	"io"
	"net/http"
)

// Storage key in user_properties; the client name is appended so every
// app keeps its own settings.
const displayPreferencesProperty = "displaypreferences."

// GET /DisplayPreferences/usersettings?userId=2b1ec0a52b09456c9823a367d84ac9e5&client=emby
//
// displayPreferencesHandler returns the preferences last stored by this
// client, falling back to defaults for a client we have not seen.
func (j *Jellyfin) displayPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}
	client := r.URL.Query().Get("client")

	response := defaultDisplayPreferences(client)
	stored, err := j.repo.UserPropertyRepo.GetUserProperty(r.Context(),
		accessToken.UserID, displayPreferencesProperty+client)
	if err == nil {
		if err := json.Unmarshal([]byte(stored), &response); err != nil {
			response = defaultDisplayPreferences(client)
		}
		response.ID = displayPreferencesID
		response.Client = client
	}
	serveJSON(response, w)
}

// POST /DisplayPreferences/usersettings
//
// displayPreferencesUpdateHandler stores the preferences a client sends.
func (j *Jellyfin) displayPreferencesUpdateHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}
	client := r.URL.Query().Get("client")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		apierror(w, "could not read request", http.StatusBadRequest)
		return
	}
	var prefs DisplayPreferencesResponse
	if err := json.Unmarshal(body, &prefs); err != nil {
		apierror(w, "invalid display preferences", http.StatusBadRequest)
		return
	}
	if err := j.repo.UserPropertyRepo.SetUserProperty(r.Context(),
		accessToken.UserID, displayPreferencesProperty+client, string(body)); err != nil {
		apierror(w, "could not store display preferences", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func defaultDisplayPreferences(client string) DisplayPreferencesResponse {
	return DisplayPreferencesResponse{
		ID:                 displayPreferencesID,
		SortBy:             "SortName",
		RememberIndexing:   false,
		PrimaryImageHeight: 250,
		PrimaryImageWidth:  250,
		CustomPrefs: DisplayPreferencesCustomPrefs{
			ChromecastVersion:          "stable",
			SkipForwardLength:          "30000",
			SkipBackLength:             "10000",
			EnableNextVideoInfoOverlay: "False",
			Tvhome:                     "null",
			DashboardTheme:             "null",
		},
		ScrollDirection: "Horizontal",
		ShowBackdrop:    true,
		RememberSorting: false,
		SortOrder:       "Ascending",
		ShowSidebar:     false,
		Client:          client,
	}
}
