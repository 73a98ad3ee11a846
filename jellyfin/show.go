package jellyfin

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/collection"
)

// /Shows/NextUp?enableImageTypes=Primary&enableResumable=false&limit=20
//
// showsNextUpHandler returns the next unwatched episode of shows the
// user has partially watched
func (j *Jellyfin) showsNextUpHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	queryparams := r.URL.Query()

	watchedIDs, err := j.repo.UserDataRepo.GetPlayedItems(r.Context(), accessToken.UserID)
	if err != nil {
		watchedIDs = nil
	}
	nextUpItemIDs := j.collections.NextUp(watchedIDs)

	// Scope next up to one show if requested
	if seriesID := queryparams.Get("seriesId"); seriesID != "" {
		scoped := make([]string, 0, 1)
		for _, id := range nextUpItemIDs {
			if _, show, _, e := j.collections.GetEpisodeByID(id); e != nil && show.ID() == seriesID {
				scoped = append(scoped, id)
			}
		}
		// Nothing watched yet, suggest the first episode
		if len(scoped) == 0 {
			if first := j.collections.FirstEpisodeID(seriesID); first != "" {
				scoped = append(scoped, first)
			}
		}
		nextUpItemIDs = scoped
	}

	items := make([]JFItem, 0)
	for _, id := range nextUpItemIDs {
		if _, show, season, episode := j.collections.GetEpisodeByID(id); episode != nil {
			jfitem, err := j.makeJFItemEpisode(r.Context(), accessToken.UserID, show, season, episode)
			if err == nil && j.applyItemFilter(&jfitem, queryparams) {
				items = append(items, jfitem)
			}
		}
	}

	items = j.applyItemSorting(items, queryparams)

	totalItemCount := len(items)
	nextUpItems, startIndex := j.applyItemPaginating(items, queryparams)
	response := UserItemsResponse{
		Items:            nextUpItems,
		StartIndex:       startIndex,
		TotalRecordCount: totalItemCount,
	}
	serveJSON(response, w)
}

// /Shows/4QBdg3S803G190AgFrBf/Seasons?UserId=2b1ec0a52b09456c9823a367d84ac9e5&ExcludeLocationTypes=Virtual
//
// showsSeasonsHandler generates the season overview of a show
func (j *Jellyfin) showsSeasonsHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	queryparams := r.URL.Query()

	_, i := j.collections.GetItemByID(vars["show"])
	if i == nil {
		apierror(w, "Show not found", http.StatusNotFound)
		return
	}

	show, ok := i.(*collection.Show)
	if !ok {
		apierror(w, "Item is not a show", http.StatusBadRequest)
		return
	}

	seasons := make([]JFItem, 0)
	for _, s := range show.Seasons {
		jfitem, err := j.makeJFItemSeason(r.Context(), accessToken.UserID, show, s)
		if err != nil {
			continue
		}
		if j.applyItemFilter(&jfitem, queryparams) {
			seasons = append(seasons, jfitem)
		}
	}

	// Always sort seasons by number, no user provided sortBy option.
	// This way season 99, Specials, ends up last.
	sort.SliceStable(seasons, func(i, j int) bool {
		return seasons[i].IndexNumber < seasons[j].IndexNumber
	})

	response := UserItemsResponse{
		Items:            seasons,
		TotalRecordCount: len(seasons),
		StartIndex:       0,
	}
	serveJSON(response, w)
}

// /Shows/rXlq4EHNxq4HIVQzw3o2/Episodes?UserId=2b1ec0a52b09456c9823a367d84ac9e5&SeasonId=rXlq4EHNxq4HIVQzw3o2:S01
//
// showsEpisodesHandler generates the episode overview of a show,
// optionally scoped to one season
func (j *Jellyfin) showsEpisodesHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	queryparams := r.URL.Query()

	_, i := j.collections.GetItemByID(vars["show"])
	if i == nil {
		apierror(w, "Show not found", http.StatusNotFound)
		return
	}

	show, ok := i.(*collection.Show)
	if !ok {
		apierror(w, "Item is not a show", http.StatusBadRequest)
		return
	}

	requestedSeasonID := queryparams.Get("seasonId")
	// VidHub sends made-up season ids, ignore them
	if strings.Contains(r.Header.Get("User-Agent"), "VidHub") {
		requestedSeasonID = ""
	}

	episodes := make([]JFItem, 0)
	for _, s := range show.Seasons {
		if requestedSeasonID != "" && requestedSeasonID != s.ID {
			continue
		}
		for _, e := range s.Episodes {
			jfitem, err := j.makeJFItemEpisode(r.Context(), accessToken.UserID, show, s, e)
			if err != nil {
				continue
			}
			if j.applyItemFilter(&jfitem, queryparams) {
				episodes = append(episodes, jfitem)
			}
		}
	}

	episodes = j.applyItemSorting(episodes, queryparams)

	response := UserItemsResponse{
		Items:            episodes,
		TotalRecordCount: len(episodes),
		StartIndex:       0,
	}
	serveJSON(response, w)
}
