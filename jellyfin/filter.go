package jellyfin

import (
	"log"
	"math/rand"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// applyItemFilter checks if the item should be included in a result set.
func (j *Jellyfin) applyItemFilter(i *JFItem, queryparams url.Values) bool {
	// includeItemTypes can be provided multiple times and contains a comma
	// separated list of types, e.g. includeItemTypes=BoxSet&includeItemTypes=Movie,Series
	if includeItemTypes := queryparams["includeItemTypes"]; len(includeItemTypes) > 0 {
		keepItem := false
		for _, includeTypeEntry := range includeItemTypes {
			for _, includeType := range strings.Split(includeTypeEntry, ",") {
				if strings.EqualFold(includeType, i.Type) {
					keepItem = true
				}
			}
		}
		if !keepItem {
			return false
		}
	}

	if excludeItemTypes := queryparams["excludeItemTypes"]; len(excludeItemTypes) > 0 {
		for _, excludeTypeEntry := range excludeItemTypes {
			for _, excludeType := range strings.Split(excludeTypeEntry, ",") {
				if strings.EqualFold(excludeType, i.Type) {
					return false
				}
			}
		}
	}

	// filter on item IDs
	if IDs := queryparams.Get("ids"); IDs != "" {
		if !slices.Contains(strings.Split(IDs, ","), i.ID) {
			return false
		}
	}

	// filter on item IDs to exclude
	if IDs := queryparams.Get("excludeItemIds"); IDs != "" {
		if slices.Contains(strings.Split(IDs, ","), i.ID) {
			return false
		}
	}

	// filter on genre IDs
	if includeGenresID := queryparams.Get("genreIds"); includeGenresID != "" {
		keepItem := false
		for _, genreID := range strings.Split(includeGenresID, "|") {
			for _, genre := range i.Genres {
				if makeJFGenreID(genre) == genreID {
					keepItem = true
				}
			}
		}
		if !keepItem {
			return false
		}
	}

	if parentID := queryparams.Get("parentId"); parentID != "" {
		if i.ParentID != parentID {
			return false
		}
	}

	if parentIndexNumberStr := queryparams.Get("parentIndexNumber"); parentIndexNumberStr != "" {
		if parentIndexNumber, err := strconv.Atoi(parentIndexNumberStr); err == nil {
			if i.ParentIndexNumber != parentIndexNumber {
				return false
			}
		}
	}

	if indexNumberStr := queryparams.Get("indexNumber"); indexNumberStr != "" {
		if indexNumber, err := strconv.Atoi(indexNumberStr); err == nil {
			if i.IndexNumber != indexNumber {
				return false
			}
		}
	}

	// filter on name prefix, case-insensitive.
	if nameStartsWith := queryparams.Get("nameStartsWith"); nameStartsWith != "" {
		if !strings.HasPrefix(strings.ToLower(i.SortName), strings.ToLower(nameStartsWith)) {
			return false
		}
	}

	// filter on name starting with or lexicographically greater, case-insensitive.
	if nameStartsWithOrGreater := queryparams.Get("nameStartsWithOrGreater"); nameStartsWithOrGreater != "" {
		if strings.Compare(strings.ToLower(i.SortName), strings.ToLower(nameStartsWithOrGreater)) < 0 {
			return false
		}
	}

	// filter on name lexicographically less, case-insensitive.
	if nameLessThan := queryparams.Get("nameLessThan"); nameLessThan != "" {
		if strings.Compare(strings.ToLower(i.SortName), strings.ToLower(nameLessThan)) > 0 {
			return false
		}
	}

	// filter on genre name
	if includeGenres := queryparams.Get("genres"); includeGenres != "" {
		keepItem := false
		for _, genre := range strings.Split(includeGenres, "|") {
			if slices.Contains(i.Genres, genre) {
				keepItem = true
			}
		}
		if !keepItem {
			return false
		}
	}

	// filter on studio name
	if includeStudios := queryparams.Get("studios"); includeStudios != "" {
		keepItem := false
		for _, studio := range strings.Split(includeStudios, "|") {
			for _, s := range i.Studios {
				if strings.EqualFold(s.Name, studio) {
					keepItem = true
				}
			}
		}
		if !keepItem {
			return false
		}
	}

	// filter on studio IDs
	if includeStudioIds := queryparams.Get("studioIds"); includeStudioIds != "" {
		keepItem := false
		for _, studioID := range strings.Split(includeStudioIds, "|") {
			for _, s := range i.Studios {
				if s.ID == studioID {
					keepItem = true
				}
			}
		}
		if !keepItem {
			return false
		}
	}

	if minPremiereDateStr := queryparams.Get("minPremiereDate"); minPremiereDateStr != "" {
		if minPremiereDate, ok := parseFilterDate(minPremiereDateStr); ok {
			if i.PremiereDate.Before(minPremiereDate) {
				return false
			}
		}
	}

	if maxPremiereDateStr := queryparams.Get("maxPremiereDate"); maxPremiereDateStr != "" {
		if maxPremiereDate, ok := parseFilterDate(maxPremiereDateStr); ok {
			if i.PremiereDate.After(maxPremiereDate) {
				return false
			}
		}
	}

	// filter on official rating
	if includeOfficialRatings := queryparams.Get("officialRatings"); includeOfficialRatings != "" {
		keepItem := false
		for _, rating := range strings.Split(includeOfficialRatings, "|") {
			if i.OfficialRating == rating {
				keepItem = true
			}
		}
		if !keepItem {
			return false
		}
	}

	if minCommunityRatingStr := queryparams.Get("minCommunityRating"); minCommunityRatingStr != "" {
		if minCommunityRating, err := strconv.ParseFloat(minCommunityRatingStr, 32); err == nil {
			if i.CommunityRating < float32(minCommunityRating) {
				return false
			}
		}
	}

	if minCriticRatingStr := queryparams.Get("minCriticRating"); minCriticRatingStr != "" {
		if minCriticRating, err := strconv.ParseFloat(minCriticRatingStr, 32); err == nil {
			if float32(i.CriticRating) < float32(minCriticRating) {
				return false
			}
		}
	}

	if filterYears := queryparams.Get("years"); filterYears != "" {
		keepItem := false
		for _, year := range strings.Split(filterYears, ",") {
			if intYear, err := strconv.Atoi(year); err == nil {
				if i.ProductionYear == intYear {
					keepItem = true
				}
			}
		}
		if !keepItem {
			return false
		}
	}

	if filterPlayed := strings.ToLower(queryparams.Get("isPlayed")); filterPlayed != "" {
		played := i.UserData != nil && i.UserData.Played
		if filterPlayed == "true" && !played {
			return false
		}
		if filterPlayed == "false" && played {
			return false
		}
	}

	if filterFavorite := strings.ToLower(queryparams.Get("isFavorite")); filterFavorite != "" {
		favorite := i.UserData != nil && i.UserData.IsFavorite
		if filterFavorite == "true" && !favorite {
			return false
		}
		if filterFavorite == "false" && favorite {
			return false
		}
	}

	if filters := queryparams.Get("filters"); filters != "" {
		for _, itemFilter := range strings.Split(filters, ",") {
			switch itemFilter {
			case "IsFavorite", "IsFavoriteOrLikes":
				if i.UserData == nil || !i.UserData.IsFavorite {
					return false
				}
			case "IsPlayed":
				if i.UserData == nil || !i.UserData.Played {
					return false
				}
			case "IsUnplayed":
				if i.UserData != nil && i.UserData.Played {
					return false
				}
			}
		}
	}

	return true
}

// applyItemSorting sorts a list of items based on the provided sortBy
// and sortOrder parameters.
func (j *Jellyfin) applyItemSorting(items []JFItem, queryparams url.Values) []JFItem {
	sortBy := queryparams.Get("sortBy")
	if sortBy == "" {
		return items
	}
	sortFields := strings.Split(sortBy, ",")

	sortDescending := queryparams.Get("sortOrder") == "Descending"

	sort.SliceStable(items, func(i, j int) bool {
		for _, field := range sortFields {
			// Set sortname if not set so we can sort on it
			if items[i].SortName == "" {
				items[i].SortName = items[i].Name
			}

			switch strings.ToLower(field) {
			case "communityrating":
				if items[i].CommunityRating != items[j].CommunityRating {
					if sortDescending {
						return items[i].CommunityRating > items[j].CommunityRating
					}
					return items[i].CommunityRating < items[j].CommunityRating
				}
			case "criticrating":
				if items[i].CriticRating != items[j].CriticRating {
					if sortDescending {
						return items[i].CriticRating > items[j].CriticRating
					}
					return items[i].CriticRating < items[j].CriticRating
				}
			case "datecreated", "datelastcontentadded":
				if items[i].DateCreated != items[j].DateCreated {
					if sortDescending {
						return items[i].DateCreated.After(items[j].DateCreated)
					}
					return items[i].DateCreated.Before(items[j].DateCreated)
				}
			case "dateplayed":
				if items[i].UserData != nil && items[j].UserData != nil &&
					items[i].UserData.LastPlayedDate != items[j].UserData.LastPlayedDate {
					if sortDescending {
						return items[i].UserData.LastPlayedDate.After(items[j].UserData.LastPlayedDate)
					}
					return items[i].UserData.LastPlayedDate.Before(items[j].UserData.LastPlayedDate)
				}
				return false
			case "indexnumber":
				if items[i].IndexNumber != items[j].IndexNumber {
					if sortDescending {
						return items[i].IndexNumber > items[j].IndexNumber
					}
					return items[i].IndexNumber < items[j].IndexNumber
				}
			case "isfolder":
				if items[i].IsFolder != items[j].IsFolder {
					if sortDescending {
						return items[i].IsFolder
					}
					return items[j].IsFolder
				}
			case "name":
				if items[i].Name != items[j].Name {
					if sortDescending {
						return items[i].Name > items[j].Name
					}
					return items[i].Name < items[j].Name
				}
			case "parentindexnumber":
				if items[i].ParentIndexNumber != items[j].ParentIndexNumber {
					if sortDescending {
						return items[i].ParentIndexNumber > items[j].ParentIndexNumber
					}
					return items[i].ParentIndexNumber < items[j].ParentIndexNumber
				}
			case "playcount":
				playCountI, playCountJ := 0, 0
				if items[i].UserData != nil {
					playCountI = items[i].UserData.PlayCount
				}
				if items[j].UserData != nil {
					playCountJ = items[j].UserData.PlayCount
				}
				if playCountI != playCountJ {
					if sortDescending {
						return playCountI > playCountJ
					}
					return playCountI < playCountJ
				}
			case "premieredate":
				if !items[i].PremiereDate.Equal(items[j].PremiereDate) {
					if sortDescending {
						return items[i].PremiereDate.After(items[j].PremiereDate)
					}
					return items[i].PremiereDate.Before(items[j].PremiereDate)
				}
			case "productionyear":
				if items[i].ProductionYear != items[j].ProductionYear {
					if sortDescending {
						return items[i].ProductionYear > items[j].ProductionYear
					}
					return items[i].ProductionYear < items[j].ProductionYear
				}
			case "runtime":
				if items[i].RunTimeTicks != items[j].RunTimeTicks {
					if sortDescending {
						return items[i].RunTimeTicks > items[j].RunTimeTicks
					}
					return items[i].RunTimeTicks < items[j].RunTimeTicks
				}
			case "random":
				if items[i].SortName != items[j].SortName {
					if rand.Intn(2) == 0 {
						return items[i].SortName > items[j].SortName
					}
					return items[i].SortName < items[j].SortName
				}
			case "seriessortname", "sortname", "default":
				if items[i].SortName != items[j].SortName {
					if sortDescending {
						return items[i].SortName > items[j].SortName
					}
					return items[i].SortName < items[j].SortName
				}
			default:
				log.Printf("applyItemSorting: unknown sortorder %s", sortBy)
			}
		}
		return false
	})
	return items
}

// parseFilterDate parses a date filter parameter; clients send both
// plain dates and full ISO 8601 timestamps.
func parseFilterDate(s string) (time.Time, bool) {
	for _, format := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// applyItemPaginating applies startIndex and limit to a list of items.
func (j *Jellyfin) applyItemPaginating(items []JFItem, queryparams url.Values) (paginatedItems []JFItem, startIndex int) {
	startIndex, startIndexErr := strconv.Atoi(queryparams.Get("startIndex"))
	if startIndexErr == nil && startIndex >= 0 && startIndex < len(items) {
		items = items[startIndex:]
	}
	limit, limitErr := strconv.Atoi(queryparams.Get("limit"))
	if limitErr == nil && limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, startIndex
}
