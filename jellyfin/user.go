package jellyfin

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/database/model"
)

const errUserIDNotFound = "userid not found"

// POST /Users/AuthenticateByName
//
// usersAuthenticateByNameHandler authenticates a user by username and
// password and issues an access token
func (j *Jellyfin) usersAuthenticateByNameHandler(w http.ResponseWriter, r *http.Request) {
	var request JFAuthenticateUserByNameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		apierror(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if request.Username == "" || request.Pw == "" {
		apierror(w, "Username and password required", http.StatusUnauthorized)
		return
	}

	embyHeader, err := j.parseAuthHeader(r)
	if err != nil {
		apierror(w, err.Error(), http.StatusUnauthorized)
		return
	}

	user, err := j.repo.UserRepo.ValidateUser(r.Context(), request.Username, request.Pw)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) && j.autoRegister {
			user, err = j.repo.UserRepo.CreateUser(r.Context(), request.Username, request.Pw)
			if err != nil {
				apierror(w, "Failed to auto-register user", http.StatusInternalServerError)
				return
			}
		} else {
			apierror(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
	}

	accesstoken, err := j.repo.AccessTokenRepo.CreateAccessToken(r.Context(), user.ID)
	if err != nil {
		apierror(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	remoteAddress, _, _ := net.SplitHostPort(r.RemoteAddr)
	session := &JFSessionInfo{
		ID:                 sessionID,
		UserID:             user.ID,
		UserName:           user.Username,
		Client:             embyHeader.client,
		DeviceName:         embyHeader.device,
		DeviceID:           embyHeader.deviceID,
		ApplicationVersion: embyHeader.version,
		RemoteEndPoint:     remoteAddress,
		LastActivityDate:   time.Now().UTC(),
		IsActive:           true,
		ServerID:           j.serverID,
	}

	response := JFAuthenticateByNameResponse{
		AccessToken: accesstoken,
		SessionInfo: session,
		ServerId:    j.serverID,
		User:        j.makeJFUser(r.Context(), user),
	}
	serveJSON(response, w)
}

// GET /Users
//
// usersAllHandler returns the users visible to the requestor, which is
// just the authenticated user itself
func (j *Jellyfin) usersAllHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}
	dbuser, err := j.repo.UserRepo.GetUserByID(r.Context(), accessToken.UserID)
	if err != nil {
		apierror(w, errUserIDNotFound, http.StatusNotFound)
		return
	}
	serveJSON([]JFUser{j.makeJFUser(r.Context(), dbuser)}, w)
}

// GET /Users/Me
//
// usersMeHandler returns the current user
func (j *Jellyfin) usersMeHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}
	dbuser, err := j.repo.UserRepo.GetUserByID(r.Context(), accessToken.UserID)
	if err != nil {
		apierror(w, errUserIDNotFound, http.StatusNotFound)
		return
	}
	serveJSON(j.makeJFUser(r.Context(), dbuser), w)
}

// GET /Users/Public
//
// usersPublicHandler returns the list of public users, we have none
func (j *Jellyfin) usersPublicHandler(w http.ResponseWriter, r *http.Request) {
	serveJSON([]JFUser{}, w)
}

// GET /Users/{user}
//
// usersHandler returns one user, only the authenticated user itself is
// accessible
func (j *Jellyfin) usersHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}
	vars := mux.Vars(r)
	userID := vars["user"]
	if userID != accessToken.UserID {
		apierror(w, "forbidden to access user", http.StatusForbidden)
		return
	}
	dbuser, err := j.repo.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		apierror(w, errUserIDNotFound, http.StatusNotFound)
		return
	}
	serveJSON(j.makeJFUser(r.Context(), dbuser), w)
}

func (j *Jellyfin) makeJFUser(ctx context.Context, user *model.User) JFUser {
	u := JFUser{
		Id:                        user.ID,
		Name:                      user.Username,
		ServerId:                  j.serverID,
		HasPassword:               user.Password != "",
		HasConfiguredPassword:     user.Password != "",
		HasConfiguredEasyPassword: false,
		EnableAutoLogin:           false,
		LastLoginDate:             user.LastLogin.UTC(),
		LastActivityDate:          user.LastUsed.UTC(),
		Configuration:             makeJFUserConfiguration(),
		Policy:                    makeJFUserPolicy(),
	}
	// Set imagetag if user has a profile image
	if _, err := j.repo.ImageRepo.HasImage(ctx, user.ID, "primary"); err == nil {
		u.PrimaryImageTag = user.ID
	}
	return u
}

func makeJFUserConfiguration() JFUserConfiguration {
	return JFUserConfiguration{
		CastReceiverId:             castReceiverStableID,
		GroupedFolders:             []string{},
		LatestItemsExcludes:        []string{},
		MyMediaExcludes:            []string{},
		OrderedViews:               []string{},
		SubtitleMode:               "Default",
		SubtitleLanguagePreference: "",
		PlayDefaultAudioTrack:      true,
		RememberAudioSelections:    true,
		RememberSubtitleSelections: true,
		EnableNextEpisodeAutoPlay:  true,
	}
}

func makeJFUserPolicy() JFUserPolicy {
	return JFUserPolicy{
		AccessSchedules:                  []string{},
		AllowedTags:                      []string{},
		BlockedChannels:                  []string{},
		BlockedMediaFolders:              []string{},
		BlockedTags:                      []string{},
		BlockUnratedItems:                []string{},
		EnabledChannels:                  []string{},
		EnabledDevices:                   []string{},
		EnabledFolders:                   []string{},
		EnableContentDeletionFromFolders: []string{},
		EnableContentDownloading:         true,
		EnableMediaPlayback:              true,
		EnablePlaybackRemuxing:           true,
		EnableRemoteAccess:               true,
		EnableAllDevices:                 true,
		EnableAllFolders:                 true,
		EnableAllChannels:                true,
		EnablePublicSharing:              true,
		EnableSharedDeviceControl:        true,
		EnableUserPreferenceAccess:       true,
		AuthenticationProviderID:         "DefaultAuthenticationProvider",
		PasswordResetProviderID:          "DefaultPasswordResetProvider",
		SyncPlayAccess:                   "CreateAndJoinGroups",
		IsAdministrator:                  false,
		IsDisabled:                       false,
		IsHidden:                         false,
		LoginAttemptsBeforeLockout:       -1,
		MaxActiveSessions:                0,
	}
}
