package jellyfin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/database/model"
)

// POST /Playlists?name=watchlist&userId=wFEMfDfhmDWBTzCzCPxJ
//
// createPlaylistHandler creates a new playlist, initial items can be
// provided in query params or in the request body
func (j *Jellyfin) createPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	queryparams := r.URL.Query()

	var req JFCreatePlaylistRequest
	req.Name = queryparams.Get("name")
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror(w, "Invalid JSON payload", http.StatusBadRequest)
			return
		}
	}
	if req.Name == "" {
		apierror(w, "Name is required", http.StatusBadRequest)
		return
	}

	newPlaylist := model.Playlist{
		Name:   req.Name,
		UserID: accessToken.UserID,
	}
	for _, id := range req.Ids {
		newPlaylist.ItemIDs = append(newPlaylist.ItemIDs, trimPrefix(id))
	}
	if ids := queryparams.Get("ids"); len(newPlaylist.ItemIDs) == 0 && ids != "" {
		for _, id := range strings.Split(ids, ",") {
			newPlaylist.ItemIDs = append(newPlaylist.ItemIDs, trimPrefix(id))
		}
	}

	playlistID, err := j.repo.PlaylistRepo.CreatePlaylist(r.Context(), newPlaylist)
	if err != nil {
		apierror(w, "Failed to create playlist", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	serveJSON(&JFCreatePlaylistResponse{
		ID: itemprefix_playlist + playlistID,
	}, w)
}

// GET /Playlists/{playlist}
//
// getPlaylistHandler retrieves a playlist by ID
func (j *Jellyfin) getPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	playlistID := trimPrefix(vars["playlist"])

	playlist, err := j.repo.PlaylistRepo.GetPlaylist(r.Context(), accessToken.UserID, playlistID)
	if err != nil {
		apierror(w, "Playlist not found", http.StatusNotFound)
		return
	}

	response := JFGetPlaylistResponse{
		OpenAccess: false,
		Shares:     []string{},
		ItemIds:    playlist.ItemIDs,
	}
	serveJSON(response, w)
}

// GET /Playlists/{playlist}/Items
//
// getPlaylistItemsHandler retrieves items in a playlist
func (j *Jellyfin) getPlaylistItemsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	playlistID := trimPrefix(vars["playlist"])

	items, err := j.makeJFItemPlaylistItemList(r.Context(), accessToken.UserID, playlistID)
	if err != nil {
		apierror(w, "Playlist not found", http.StatusNotFound)
		return
	}
	response := UserItemsResponse{
		Items:            items,
		TotalRecordCount: len(items),
		StartIndex:       0,
	}
	serveJSON(response, w)
}

// POST /Playlists/{playlist}/Items?ids=NrXTYiS6xAxFj4QAiJoT
//
// addPlaylistItemsHandler adds items to a playlist
func (j *Jellyfin) addPlaylistItemsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	playlistID := trimPrefix(vars["playlist"])

	itemIDs := playlistItemIDParams(r)
	if len(itemIDs) == 0 {
		apierror(w, "ids parameter required", http.StatusBadRequest)
		return
	}

	if err := j.repo.PlaylistRepo.AddItemsToPlaylist(r.Context(), accessToken.UserID, playlistID, itemIDs); err != nil {
		apierror(w, "Failed to add items", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /Playlists/{playlist}/Items?ids=NrXTYiS6xAxFj4QAiJoT
//
// deletePlaylistItemsHandler deletes items from a playlist
func (j *Jellyfin) deletePlaylistItemsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	playlistID := trimPrefix(vars["playlist"])

	itemIDs := playlistItemIDParams(r)
	if len(itemIDs) == 0 {
		apierror(w, "ids parameter required", http.StatusBadRequest)
		return
	}

	if err := j.repo.PlaylistRepo.DeleteItemsFromPlaylist(r.Context(), playlistID, itemIDs); err != nil {
		apierror(w, "Failed to delete items", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /Playlists/{playlist}/Items/{item}/Move/{index}
//
// movePlaylistItemHandler moves an item to a new index in a playlist
func (j *Jellyfin) movePlaylistItemHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	playlistID := trimPrefix(vars["playlist"])
	itemID := trimPrefix(vars["item"])

	newIndex, err := strconv.Atoi(vars["index"])
	if err != nil || newIndex < 0 {
		apierror(w, "Invalid index", http.StatusBadRequest)
		return
	}

	if err := j.repo.PlaylistRepo.MovePlaylistItem(r.Context(), playlistID, itemID, newIndex); err != nil {
		apierror(w, "Failed to move item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// playlistItemIDParams collects item IDs from the ids query parameter.
func playlistItemIDParams(r *http.Request) []string {
	var itemIDs []string
	for _, param := range r.URL.Query()["ids"] {
		for _, id := range strings.Split(param, ",") {
			if id != "" {
				itemIDs = append(itemIDs, trimPrefix(id))
			}
		}
	}
	return itemIDs
}
