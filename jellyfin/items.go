package jellyfin

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/collection"
	"github.com/jellofin/jellofin-server/database/model"
)

// /Users/2b1ec0a52b09456c9823a367d84ac9e5/Views?IncludeExternalContent=false
// and
// /UserViews
//
// usersViewsHandler returns the collections available to the user as items
func (j *Jellyfin) usersViewsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	items := make([]JFItem, 0)
	for _, c := range j.collections.GetCollections() {
		if item, err := j.makeJFItemCollection(c.ID); err == nil {
			items = append(items, item)
		}
	}

	// Add favorites and playlist collections
	if favoriteCollection, err := j.makeJFItemCollectionFavorites(r.Context(), accessToken.UserID); err == nil {
		items = append(items, favoriteCollection)
	}
	if playlistCollection, err := j.makeJFItemCollectionPlaylist(r.Context(), accessToken.UserID); err == nil {
		items = append(items, playlistCollection)
	}

	response := UserItemsResponse{
		Items:            items,
		TotalRecordCount: len(items),
		StartIndex:       0,
	}
	serveJSON(response, w)
}

// /Users/2b1ec0a52b09456c9823a367d84ac9e5/GroupingOptions
//
// usersGroupingOptionsHandler returns the available collections as grouping options
func (j *Jellyfin) usersGroupingOptionsHandler(w http.ResponseWriter, r *http.Request) {
	collections := []JFCollection{}
	for _, c := range j.collections.GetCollections() {
		collectionItem, err := j.makeJFItemCollection(c.ID)
		if err != nil {
			apierror(w, err.Error(), http.StatusInternalServerError)
			return
		}
		collections = append(collections, JFCollection{
			Name: collectionItem.Name,
			ID:   collectionItem.ID,
		})
	}
	serveJSON(collections, w)
}

// /Users/2b1ec0a52b09456c9823a367d84ac9e5/Items/f137a2dd21bbc1b99aa5c0f6bf02a805
//
// /Items/f137a2dd21bbc1b99aa5c0f6bf02a805?Fields=DateCreated,Etag,Genres,MediaSources,Overview,ParentId,Path,People,ProviderIds,SortName,RecursiveItemCount,ChildCount
//
// usersItemHandler returns details for a specific item
func (j *Jellyfin) usersItemHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	itemID := vars["item"]

	switch {
	case isJFRootID(itemID):
		rootItem, err := j.makeJFItemRoot()
		if err != nil {
			apierror(w, err.Error(), http.StatusNotFound)
			return
		}
		serveJSON(rootItem, w)
		return
	// Try special collection items first, as they have the same prefix as regular collections
	case isJFCollectionFavoritesID(itemID):
		favoritesCollectionItem, err := j.makeJFItemCollectionFavorites(r.Context(), accessToken.UserID)
		if err != nil {
			apierror(w, err.Error(), http.StatusNotFound)
			return
		}
		serveJSON(favoritesCollectionItem, w)
		return
	case isJFCollectionPlaylistID(itemID):
		playlistCollectionItem, err := j.makeJFItemCollectionPlaylist(r.Context(), accessToken.UserID)
		if err != nil {
			apierror(w, err.Error(), http.StatusNotFound)
			return
		}
		serveJSON(playlistCollectionItem, w)
		return
	case isJFCollectionID(itemID):
		collectionItem, err := j.makeJFItemCollection(trimPrefix(itemID))
		if err != nil {
			apierror(w, err.Error(), http.StatusNotFound)
			return
		}
		serveJSON(collectionItem, w)
		return
	case isJFPlaylistID(itemID):
		playlistItem, err := j.makeJFItemPlaylist(r.Context(), accessToken.UserID, trimPrefix(itemID))
		if err != nil {
			apierror(w, err.Error(), http.StatusNotFound)
			return
		}
		serveJSON(playlistItem, w)
		return
	}

	// Movie, show, season or episode
	response, err := j.makeJFItemByID(r.Context(), accessToken.UserID, itemID)
	if err != nil {
		apierror(w, "Item not found", http.StatusNotFound)
		return
	}
	serveJSON(response, w)
}

// /UserItems/1d57ee2251656c5fb9a05becdf0e62a3/Userdata
//
// usersItemUserDataHandler returns the user data for a specific item
func (j *Jellyfin) usersItemUserDataHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	itemID := vars["item"]

	playstate, err := j.repo.UserDataRepo.GetUserData(r.Context(), accessToken.UserID, trimPrefix(itemID))
	if err != nil {
		playstate = &model.UserData{}
	}

	userData := j.makeJFUserData(accessToken.UserID, itemID, playstate)
	serveJSON(userData, w)
}

// /Items
//
// /Users/{user}/Items
//
// usersItemsHandler returns a list of items based upon provided query params
//
// Supported query params:
// - parentId, if provided scope result set to this collection, show, season or playlist
// - searchTerm, substring to match on
// - startIndex, index of first result item
// - limit, number of items to return
func (j *Jellyfin) usersItemsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	queryparams := r.URL.Query()
	parentID := queryparams.Get("parentId")

	items := make([]JFItem, 0)
	var err error
	var parentFound bool

	if parentID != "" {
		switch {
		// Return favorites collection items if requested
		case isJFCollectionFavoritesID(parentID):
			items, err = j.makeJFItemFavoritesOverview(r.Context(), accessToken.UserID)
			if err != nil {
				apierror(w, "Could not find favorites collection", http.StatusNotFound)
				return
			}
			parentFound = true
		// Return list of playlists if requested
		case isJFCollectionPlaylistID(parentID):
			items, err = j.makeJFItemPlaylistOverview(r.Context(), accessToken.UserID)
			if err != nil {
				apierror(w, "Could not find playlist collection", http.StatusNotFound)
				return
			}
			parentFound = true
		// Return specific playlist if requested
		case isJFPlaylistID(parentID):
			items, err = j.makeJFItemPlaylistItemList(r.Context(), accessToken.UserID, trimPrefix(parentID))
			if err != nil {
				apierror(w, "Could not find playlist", http.StatusNotFound)
				return
			}
			parentFound = true
		}

		// A show or season as parent lists its seasons or episodes
		if !parentFound {
			if children, ok := j.makeJFItemChildren(r.Context(), accessToken.UserID, parentID); ok {
				items = children
				parentFound = true
			}
		}
	}

	var searchC *collection.Collection
	if parentID != "" {
		searchC = j.collections.GetCollection(strings.TrimPrefix(parentID, itemprefix_collection))
	}

	// If searchTerm is provided, we search across all collections
	searchTerm := queryparams.Get("searchTerm")
	if searchTerm != "" {
		matchedIDs, err := j.collections.SearchItem(r.Context(), searchTerm)
		if err != nil {
			apierror(w, "Search index not available", http.StatusInternalServerError)
			return
		}
		for _, id := range matchedIDs {
			jfitem, err := j.makeJFItemByID(r.Context(), accessToken.UserID, id)
			if err != nil {
				continue
			}
			if j.applyItemFilter(&jfitem, queryparams) {
				items = append(items, jfitem)
			}
		}
	}

	// If no search term provided, we list all items in the collections
	if searchTerm == "" && !parentFound {
		for _, c := range j.collections.GetCollections() {
			// Skip if we list one particular collection
			if searchC != nil && searchC.ID != c.ID {
				continue
			}
			for _, i := range c.Items {
				jfitem, err := j.makeJFItem(r.Context(), accessToken.UserID, i, c.ID)
				if err != nil {
					apierror(w, err.Error(), http.StatusInternalServerError)
					return
				}
				if j.applyItemFilter(&jfitem, queryparams) {
					items = append(items, jfitem)
				}
			}
		}
	}

	totalItemCount := len(items)
	responseItems, startIndex := j.applyItemPaginating(j.applyItemSorting(items, queryparams), queryparams)
	response := UserItemsResponse{
		Items:            responseItems,
		StartIndex:       startIndex,
		TotalRecordCount: totalItemCount,
	}
	serveJSON(response, w)
}

// makeJFItemChildren lists the seasons of a show or the episodes of a
// season. Reports false when the ID is neither.
func (j *Jellyfin) makeJFItemChildren(ctx context.Context, userID, parentID string) ([]JFItem, bool) {
	if _, i := j.collections.GetItemByID(parentID); i != nil {
		show, ok := i.(*collection.Show)
		if !ok {
			return nil, false
		}
		items := make([]JFItem, 0, len(show.Seasons))
		for _, s := range show.Seasons {
			if item, err := j.makeJFItemSeason(ctx, userID, show, s); err == nil {
				items = append(items, item)
			}
		}
		return items, true
	}
	if _, show, season := j.collections.GetSeasonByID(parentID); season != nil {
		items := make([]JFItem, 0, len(season.Episodes))
		for _, e := range season.Episodes {
			if item, err := j.makeJFItemEpisode(ctx, userID, show, season, e); err == nil {
				items = append(items, item)
			}
		}
		return items, true
	}
	return nil, false
}

// /Items/ecd73bbc2244591343737b626e91418e/Ancestors
//
// usersItemsAncestorsHandler returns array with parent and root item
func (j *Jellyfin) usersItemsAncestorsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	itemID := vars["item"]

	c, i := j.collections.GetItemByID(trimPrefix(itemID))
	if i == nil {
		apierror(w, "Item not found", http.StatusNotFound)
		return
	}

	collectionItem, err := j.makeJFItemCollection(c.ID)
	if err != nil {
		apierror(w, err.Error(), http.StatusNotFound)
		return
	}
	root, _ := j.makeJFItemRoot()

	response := []JFItem{
		collectionItem,
		root,
	}
	serveJSON(response, w)
}

// /Items/Counts
//
// usersItemsCountsHandler returns counts of movies, series and episodes
func (j *Jellyfin) usersItemsCountsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	details := j.collections.Details()
	response := JFItemCountResponse{
		MovieCount:   details.MovieCount,
		SeriesCount:  details.ShowCount,
		EpisodeCount: details.EpisodeCount,
	}
	serveJSON(response, w)
}

// /Items/Filters?userId=wFEMfDfhmDWBTzCzCPxJ&includeItemTypes=Movie
//
// usersItemsFiltersHandler returns the filter values the library holds
func (j *Jellyfin) usersItemsFiltersHandler(w http.ResponseWriter, r *http.Request) {
	details := j.collections.Details()
	response := JFItemFilterResponse{
		Genres:          details.Genres,
		Tags:            []string{},
		OfficialRatings: details.OfficialRatings,
		Years:           details.Years,
	}
	serveJSON(response, w)
}

// /Items/Filters2?userId=wFEMfDfhmDWBTzCzCPxJ&includeItemTypes=Movie
func (j *Jellyfin) usersItemsFilters2Handler(w http.ResponseWriter, r *http.Request) {
	details := j.collections.Details()
	response := JFItemFilter2Response{
		Genres: makeJFGenreItems(details.Genres),
		Tags:   []string{},
	}
	serveJSON(response, w)
}

// /Users/2b1ec0a52b09456c9823a367d84ac9e5/Items/Latest?ParentId=f137a2dd21bbc1b99aa5c0f6bf02a805&StartIndex=0&Limit=20
//
// /Items/Latest
//
// usersItemsLatestHandler returns the most recent releases first
//
// Supported query params:
// - parentId, if provided scope result set to this collection
// - startIndex, index of first result item
// - limit, number of items to return
func (j *Jellyfin) usersItemsLatestHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	queryparams := r.URL.Query()

	parentID := queryparams.Get("parentId")
	var searchC *collection.Collection
	if parentID != "" {
		searchC = j.collections.GetCollection(strings.TrimPrefix(parentID, itemprefix_collection))
	}

	items := make([]JFItem, 0)
	for _, c := range j.collections.GetCollections() {
		if searchC != nil && searchC.ID != c.ID {
			continue
		}
		for _, i := range c.Items {
			jfitem, err := j.makeJFItem(r.Context(), accessToken.UserID, i, c.ID)
			if err != nil {
				apierror(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if j.applyItemFilter(&jfitem, queryparams) {
				items = append(items, jfitem)
			}
		}
	}

	// Newest additions first; premiere date breaks ties.
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].DateCreated.Equal(items[j].DateCreated) {
			return items[i].DateCreated.After(items[j].DateCreated)
		}
		return items[i].PremiereDate.After(items[j].PremiereDate)
	})

	items, _ = j.applyItemPaginating(items, queryparams)

	serveJSON(items, w)
}

// /UserItems/Resume?userId=XAOVn7iqiBujnIQY8sd0&includeItemTypes=Movie&includeItemTypes=Series&includeItemTypes=Episode
//
// /Users/2b1ec0a52b09456c9823a367d84ac9e5/Items/Resume?Limit=12&MediaTypes=Video&Recursive=true
//
// usersItemsResumeHandler returns items that have not been fully watched
// and could be resumed
func (j *Jellyfin) usersItemsResumeHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	queryparams := r.URL.Query()

	resumeItemIDs, err := j.repo.UserDataRepo.GetResumeItems(r.Context(), accessToken.UserID, 0)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		apierror(w, "Could not get resume items list", http.StatusInternalServerError)
		return
	}

	items := make([]JFItem, 0)
	for _, id := range resumeItemIDs {
		jfitem, err := j.makeJFItemByID(r.Context(), accessToken.UserID, id)
		if err != nil {
			log.Printf("usersItemsResumeHandler: item %s not found", id)
			continue
		}
		if j.applyItemFilter(&jfitem, queryparams) {
			items = append(items, jfitem)
		}
	}

	items = j.applyItemSorting(items, queryparams)

	totalItemCount := len(items)
	resumeItems, startIndex := j.applyItemPaginating(items, queryparams)
	response := UserItemsResponse{
		Items:            resumeItems,
		StartIndex:       startIndex,
		TotalRecordCount: totalItemCount,
	}
	serveJSON(response, w)
}

// /Items/{item}/Similar
//
// usersItemsSimilarHandler returns a list of items that are similar
func (j *Jellyfin) usersItemsSimilarHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	itemID := vars["item"]
	queryparams := r.URL.Query()

	// Retrieve item to find similars for
	_, i := j.collections.GetItemByID(trimPrefix(itemID))
	if i == nil {
		apierror(w, "Item not found", http.StatusNotFound)
		return
	}

	similarItemIDs, err := j.collections.Similar(r.Context(), i)
	if err != nil {
		apierror(w, "Could not get similar items list", http.StatusInternalServerError)
		return
	}

	items := make([]JFItem, 0)
	for _, id := range similarItemIDs {
		jfitem, err := j.makeJFItemByID(r.Context(), accessToken.UserID, id)
		if err != nil {
			continue
		}
		if j.applyItemFilter(&jfitem, queryparams) {
			items = append(items, jfitem)
		}
	}

	totalItemCount := len(items)
	responseItems, startIndex := j.applyItemPaginating(j.applyItemSorting(items, queryparams), queryparams)
	response := UserItemsResponse{
		Items:            responseItems,
		StartIndex:       startIndex,
		TotalRecordCount: totalItemCount,
	}
	serveJSON(response, w)
}

// /Items/Suggestions
//
// usersItemsSuggestionsHandler returns a list of items that are suggested for the user
func (j *Jellyfin) usersItemsSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	response := UserItemsResponse{
		Items:            []JFItem{},
		StartIndex:       0,
		TotalRecordCount: 0,
	}
	serveJSON(response, w)
}

// /Items/{item}/Intros
//
// played before the main item, we have none
func (j *Jellyfin) usersItemsIntrosHandler(w http.ResponseWriter, r *http.Request) {
	response := UserItemsResponse{
		Items:            []JFItem{},
		StartIndex:       0,
		TotalRecordCount: 0,
	}
	serveJSON(response, w)
}

// POST /Items/{item}/Refresh
//
// metadata is refreshed by the periodic scanner, nothing to kick off
func (j *Jellyfin) usersItemsRefreshHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// /Items/{item}/SpecialFeatures
func (j *Jellyfin) usersItemsSpecialFeaturesHandler(w http.ResponseWriter, r *http.Request) {
	serveJSON([]JFItem{}, w)
}

// /Items/{item}/ThemeMedia
func (j *Jellyfin) usersItemsThemeMediaHandler(w http.ResponseWriter, r *http.Request) {
	empty := UserItemsResponse{
		Items:            []JFItem{},
		StartIndex:       0,
		TotalRecordCount: 0,
	}
	response := JFThemeMediaResponse{
		ThemeVideosResult:     empty,
		ThemeSongsResult:      empty,
		SoundtrackSongsResult: empty,
	}
	serveJSON(response, w)
}

// /Search/Hints?includeItemTypes=Episode&limit=10&searchTerm=alien
func (j *Jellyfin) searchHintsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	queryparams := r.URL.Query()

	items := make([]JFItem, 0)
	if searchTerm := queryparams.Get("searchTerm"); searchTerm != "" {
		matchedIDs, err := j.collections.SearchItem(r.Context(), searchTerm)
		if err != nil {
			apierror(w, "Search index not available", http.StatusInternalServerError)
			return
		}
		for _, id := range matchedIDs {
			jfitem, err := j.makeJFItemByID(r.Context(), accessToken.UserID, id)
			if err != nil {
				continue
			}
			if j.applyItemFilter(&jfitem, queryparams) {
				items = append(items, jfitem)
			}
		}
	}

	totalItemCount := len(items)
	searchItems, _ := j.applyItemPaginating(items, queryparams)

	response := SearchHintsResponse{
		SearchHints:      searchItems,
		TotalRecordCount: totalItemCount,
	}
	serveJSON(response, w)
}

// /Movies/Recommendations?userId=wFEMfDfhmDWBTzCzCPxJ&categoryLimit=6&itemLimit=8
//
// moviesRecommendationsHandler groups similar titles around recently
// watched movies
func (j *Jellyfin) moviesRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	response := []JFRecommendation{}

	watchedIDs, err := j.repo.UserDataRepo.GetPlayedItems(r.Context(), accessToken.UserID)
	if err != nil {
		serveJSON(response, w)
		return
	}

	for _, watchedID := range watchedIDs {
		_, i := j.collections.GetItemByID(watchedID)
		if i == nil {
			continue
		}
		if _, ok := i.(*collection.Movie); !ok {
			continue
		}
		similarIDs, err := j.collections.Similar(r.Context(), i)
		if err != nil || len(similarIDs) == 0 {
			continue
		}
		items := make([]JFItem, 0, len(similarIDs))
		for _, id := range similarIDs {
			if jfitem, err := j.makeJFItemByID(r.Context(), accessToken.UserID, id); err == nil {
				items = append(items, jfitem)
			}
		}
		if len(items) == 0 {
			continue
		}
		response = append(response, JFRecommendation{
			Items:              items,
			RecommendationType: "SimilarToRecentlyPlayed",
			BaselineItemName:   i.Name(),
			CategoryID:         i.ID(),
		})
		if len(response) == 6 {
			break
		}
	}
	serveJSON(response, w)
}

// /Persons
//
// return list of actors (hit by Infuse's search), not supported
func (j *Jellyfin) personsHandler(w http.ResponseWriter, r *http.Request) {
	response := UserItemsResponse{
		Items:            []JFItem{},
		TotalRecordCount: 0,
		StartIndex:       0,
	}
	serveJSON(response, w)
}

// /MediaSegments/{item}
//
// mediaSegmentsHandler returns information about intro, commercial, preview,
// recap and outro segments of an item, not supported.
func (j *Jellyfin) mediaSegmentsHandler(w http.ResponseWriter, r *http.Request) {
	response := UserItemsResponse{
		Items:            []JFItem{},
		TotalRecordCount: 0,
		StartIndex:       0,
	}
	serveJSON(response, w)
}

// DELETE /Items/{item}
func (j *Jellyfin) itemsDeleteHandler(w http.ResponseWriter, r *http.Request) {
	apierror(w, "Not implemented", http.StatusForbidden)
}

// /Library/VirtualFolders
//
// libraryVirtualFoldersHandler returns the available collections as virtual folders
func (j *Jellyfin) libraryVirtualFoldersHandler(w http.ResponseWriter, r *http.Request) {
	libraries := []JFMediaLibrary{}
	for _, c := range j.collections.GetCollections() {
		collectionItem, err := j.makeJFItemCollection(c.ID)
		if err != nil {
			apierror(w, err.Error(), http.StatusInternalServerError)
			return
		}
		libraries = append(libraries, JFMediaLibrary{
			Name:               collectionItem.Name,
			ItemId:             collectionItem.ID,
			PrimaryImageItemId: collectionItem.ID,
			CollectionType:     collectionItem.CollectionType,
			Locations:          []string{"/"},
		})
	}
	serveJSON(libraries, w)
}

func serveJSON(obj any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(obj)
}
