package jellyfin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

// /Genres?parentId=collection_1
//
// genresHandler returns a list of genres for one or all collections.
func (j *Jellyfin) genresHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	queryparams := r.URL.Query()

	genreNames := j.collections.Details().Genres
	if parentID := queryparams.Get("parentId"); parentID != "" {
		if c := j.collections.GetCollection(strings.TrimPrefix(parentID, itemprefix_collection)); c != nil {
			genreNames = c.Details().Genres
		}
	}

	genres := make([]JFItem, 0, len(genreNames))
	for _, genre := range genreNames {
		genres = append(genres, j.makeJFItemGenre(genre))
	}

	genres = j.applyItemSorting(genres, queryparams)

	response := UserItemsResponse{
		Items:            genres,
		TotalRecordCount: len(genres),
		StartIndex:       0,
	}
	serveJSON(response, w)
}

// /Genres/Thriller
//
// genreHandler returns details of a specific genre
func (j *Jellyfin) genreHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	genre, err := url.PathUnescape(vars["name"])
	if err != nil || genre == "" {
		apierror(w, "Invalid genre name", http.StatusBadRequest)
		return
	}

	if _, ok := j.collections.GenreItemCount()[genre]; !ok {
		apierror(w, "Genre not found", http.StatusNotFound)
		return
	}
	serveJSON(j.makeJFItemGenre(genre), w)
}
