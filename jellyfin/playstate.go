package jellyfin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/database/model"
)

// PositionTicks are in 100ns units
const TicksPerSecond = 10000000

// POST /UserPlayedItems/{item}
//
// usersPlayedItemsPostHandler marks an item as played.
func (j *Jellyfin) usersPlayedItemsPostHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	itemID := trimPrefix(vars["item"])

	playstate, err := j.playStateUpdate(r.Context(), accessToken.UserID, itemID, 0, true)
	if err != nil {
		apierror(w, "Item not found", http.StatusNotFound)
		return
	}
	serveJSON(j.makeJFUserData(accessToken.UserID, itemID, playstate), w)
}

// DELETE /UserPlayedItems/{item}
//
// usersPlayedItemsDeleteHandler marks an item as not played.
func (j *Jellyfin) usersPlayedItemsDeleteHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	itemID := trimPrefix(vars["item"])

	playstate := j.currentPlayState(r.Context(), accessToken.UserID, itemID)
	playstate.Played = false
	playstate.Position = 0
	playstate.PlayedPercentage = 0
	playstate.Timestamp = time.Now().UTC()

	if err := j.repo.UserDataRepo.UpdateUserData(r.Context(), accessToken.UserID, itemID, playstate); err != nil {
		apierror(w, "Could not update play state", http.StatusInternalServerError)
		return
	}
	serveJSON(j.makeJFUserData(accessToken.UserID, itemID, playstate), w)
}

// POST /UserFavoriteItems/{item}
func (j *Jellyfin) userFavoriteItemsPostHandler(w http.ResponseWriter, r *http.Request) {
	j.favoriteUpdate(w, r, true)
}

// DELETE /UserFavoriteItems/{item}
func (j *Jellyfin) userFavoriteItemsDeleteHandler(w http.ResponseWriter, r *http.Request) {
	j.favoriteUpdate(w, r, false)
}

func (j *Jellyfin) favoriteUpdate(w http.ResponseWriter, r *http.Request, favorite bool) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	itemID := trimPrefix(vars["item"])

	playstate := j.currentPlayState(r.Context(), accessToken.UserID, itemID)
	playstate.Favorite = favorite
	playstate.Timestamp = time.Now().UTC()

	if err := j.repo.UserDataRepo.UpdateUserData(r.Context(), accessToken.UserID, itemID, playstate); err != nil {
		apierror(w, "Could not update favorite state", http.StatusInternalServerError)
		return
	}
	serveJSON(j.makeJFUserData(accessToken.UserID, itemID, playstate), w)
}

// POST /Sessions/Playing
func (j *Jellyfin) sessionsPlayingHandler(w http.ResponseWriter, r *http.Request) {
	j.sessionsPlayStateUpdate(w, r)
}

// POST /Sessions/Playing/Progress
func (j *Jellyfin) sessionsPlayingProgressHandler(w http.ResponseWriter, r *http.Request) {
	j.sessionsPlayStateUpdate(w, r)
}

// POST /Sessions/Playing/Stopped
func (j *Jellyfin) sessionsPlayingStoppedHandler(w http.ResponseWriter, r *http.Request) {
	j.sessionsPlayStateUpdate(w, r)
}

func (j *Jellyfin) sessionsPlayStateUpdate(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	var request JFPlayState
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		apierror(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if request.ItemId == "" {
		apierror(w, "No item id provided", http.StatusBadRequest)
		return
	}

	if _, err := j.playStateUpdate(r.Context(), accessToken.UserID,
		trimPrefix(request.ItemId), request.PositionTicks, false); err != nil {
		apierror(w, "Item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// currentPlayState returns the stored play state of an item, or a fresh
// one. Keeps favorite and play count across updates.
func (j *Jellyfin) currentPlayState(ctx context.Context, userID, itemID string) *model.UserData {
	if playstate, err := j.repo.UserDataRepo.GetUserData(ctx, userID, itemID); err == nil {
		return playstate
	}
	return &model.UserData{}
}

// playStateUpdate stores playback progress of an item. An item is
// marked played once 98% of it has been watched, at which point the
// resume position resets.
func (j *Jellyfin) playStateUpdate(ctx context.Context, userID, itemID string, positionTicks int64, markPlayed bool) (*model.UserData, error) {
	runtimeTicks, err := j.itemRuntimeTicks(itemID)
	if err != nil {
		return nil, err
	}

	playstate := j.currentPlayState(ctx, userID, itemID)
	playstate.Timestamp = time.Now().UTC()

	position := positionTicks / TicksPerSecond
	var playedPercentage int
	if duration := runtimeTicks / TicksPerSecond; duration > 0 {
		playedPercentage = int(100 * position / duration)
	}
	log.Printf("playStateUpdate userID: %s, itemID: %s, progress: %d sec (%d%%)",
		userID, itemID, position, playedPercentage)

	if markPlayed || playedPercentage >= 98 {
		playstate.Position = 0
		playstate.PlayedPercentage = 0
		if !playstate.Played {
			playstate.PlayCount++
		}
		playstate.Played = true
	} else {
		playstate.Position = position
		playstate.PlayedPercentage = playedPercentage
		playstate.Played = false
	}

	if err := j.repo.UserDataRepo.UpdateUserData(ctx, userID, itemID, playstate); err != nil {
		return nil, err
	}
	return playstate, nil
}

// itemRuntimeTicks returns the runtime of a movie or episode.
func (j *Jellyfin) itemRuntimeTicks(itemID string) (int64, error) {
	if _, i := j.collections.GetItemByID(itemID); i != nil {
		return i.RuntimeTicks(), nil
	}
	if _, _, _, episode := j.collections.GetEpisodeByID(itemID); episode != nil {
		return episode.RuntimeTicks, nil
	}
	return 0, model.ErrNotFound
}
