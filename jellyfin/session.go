package jellyfin

import (
	"net/http"

	"github.com/jellofin/jellofin-server/database/model"
)

// sessionID is a static ID for the authenticated session, we do not
// really track sessions per user.
const sessionID = "e3a869b7a901f8894de8ee65688db6c0"

// GET /Sessions
//
// sessionsHandler returns the sessions of the requesting user. We keep
// no session state, so the response is derived from the access token
// used to make the request.
func (j *Jellyfin) sessionsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}
	user, err := j.repo.UserRepo.GetUserByID(r.Context(), accessToken.UserID)
	if err != nil {
		apierror(w, errUserIDNotFound, http.StatusNotFound)
		return
	}
	serveJSON([]JFSessionInfo{*j.makeJFSessionInfo(accessToken, user.Username)}, w)
}

func (j *Jellyfin) makeJFSessionInfo(accessToken *model.AccessToken, username string) *JFSessionInfo {
	return &JFSessionInfo{
		ID:                    sessionID,
		UserID:                accessToken.UserID,
		UserName:              username,
		LastActivityDate:      accessToken.LastUsed,
		RemoteEndPoint:        accessToken.RemoteAddress,
		DeviceName:            accessToken.DeviceName,
		DeviceID:              accessToken.DeviceId,
		Client:                accessToken.ApplicationName,
		ApplicationVersion:    accessToken.ApplicationVersion,
		IsActive:              true,
		SupportsMediaControl:  false,
		SupportsRemoteControl: false,
		HasCustomDeviceName:   false,
		ServerID:              j.serverID,
		AdditionalUsers:       []string{},
		PlayState: JFSessionResponsePlayState{
			RepeatMode:    "RepeatNone",
			PlaybackOrder: "Default",
		},
		Capabilities: JFSessionResponseCapabilities{
			PlayableMediaTypes:           []string{},
			SupportedCommands:            []string{},
			SupportsPersistentIdentifier: true,
		},
		NowPlayingQueue:          []string{},
		NowPlayingQueueFullItems: []string{},
		SupportedCommands:        []string{},
		PlayableMediaTypes:       []string{},
	}
}

// POST /Sessions/Capabilities
//
// sessionsCapabilitiesHandler accepts the capabilities of the client. Ignored.
func (j *Jellyfin) sessionsCapabilitiesHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// POST /Sessions/Capabilities/Full
//
// sessionsCapabilitiesFullHandler accepts the capabilities of the client. Ignored.
func (j *Jellyfin) sessionsCapabilitiesFullHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
