package jellyfin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

// /Studios?parentId=collection_1
//
// studiosHandler returns a list of studios for one or all collections.
func (j *Jellyfin) studiosHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	queryparams := r.URL.Query()

	counts := j.studioItemCount(queryparams.Get("parentId"))
	studios := make([]JFItem, 0, len(counts))
	for studio, itemCount := range counts {
		studios = append(studios, j.makeJFItemStudio(studio, itemCount))
	}

	studios = j.applyItemSorting(studios, queryparams)

	response := UserItemsResponse{
		Items:            studios,
		TotalRecordCount: len(studios),
		StartIndex:       0,
	}
	serveJSON(response, w)
}

// /Studios/{name}
//
// studioHandler returns details of a specific studio
func (j *Jellyfin) studioHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	studio, err := url.PathUnescape(vars["name"])
	if err != nil || studio == "" {
		apierror(w, "Invalid studio name", http.StatusBadRequest)
		return
	}

	itemCount, ok := j.studioItemCount("")[studio]
	if !ok {
		apierror(w, "Studio not found", http.StatusNotFound)
		return
	}
	serveJSON(j.makeJFItemStudio(studio, itemCount), w)
}

// studioItemCount counts items per studio, optionally scoped to one
// collection.
func (j *Jellyfin) studioItemCount(parentID string) map[string]int {
	counts := make(map[string]int)
	for _, c := range j.collections.GetCollections() {
		if parentID != "" && strings.TrimPrefix(parentID, itemprefix_collection) != c.ID {
			continue
		}
		for _, i := range c.Items {
			for _, studio := range i.Studios() {
				if studio != "" {
					counts[studio]++
				}
			}
		}
	}
	return counts
}
