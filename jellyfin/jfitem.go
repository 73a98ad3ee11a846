package jellyfin

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/jellofin/jellofin-server/collection"
	"github.com/jellofin/jellofin-server/collection/metadata"
	"github.com/jellofin/jellofin-server/database/model"
	"github.com/jellofin/jellofin-server/idhash"
)

const (
	// Misc IDs for api responses
	collectionRootID      = "e9d5075a555c1cbc394eec4cef295274"
	playlistCollectionID  = "2f0340563593c4d98b97c9bfa21ce23c"
	favoritesCollectionID = "f4a0b1c2d3e5c4b8a9e6f7d8e9a0b1c2"
	displayPreferencesID  = "f137a2dd21bbc1b99aa5c0f6bf02a805"

	collectionTypeMovies    = "movies"
	collectionTypeTVShows   = "tvshows"
	collectionTypePlaylists = "playlists"

	itemTypeMovie    = "Movie"
	itemTypeShow     = "Series"
	itemTypeSeason   = "Season"
	itemTypeEpisode  = "Episode"
	itemTypePlaylist = "Playlist"

	// itemid prefixes for items that do not exist in the library itself
	itemprefix_root                 = "root_"
	itemprefix_collection           = "collection_"
	itemprefix_collection_favorites = "collectionfavorites_"
	itemprefix_collection_playlist  = "collectionplaylist_"
	itemprefix_playlist             = "playlist_"

	// imagetag prefix will get HTTP-redirected
	tagprefix_redirect = "redirect_"
	// imagetag prefix means we will serve the filename from local disk
	tagprefix_file = "file_"
)

func isJFRootID(id string) bool       { return strings.HasPrefix(id, itemprefix_root) }
func isJFCollectionID(id string) bool { return strings.HasPrefix(id, itemprefix_collection) }
func isJFCollectionFavoritesID(id string) bool {
	return strings.HasPrefix(id, itemprefix_collection_favorites)
}
func isJFCollectionPlaylistID(id string) bool {
	return strings.HasPrefix(id, itemprefix_collection_playlist)
}
func isJFPlaylistID(id string) bool { return strings.HasPrefix(id, itemprefix_playlist) }

// trimPrefix removes an itemid prefix, if any. Library item IDs pass
// through unchanged.
func trimPrefix(id string) string {
	if n := strings.Index(id, "_"); n != -1 {
		return id[n+1:]
	}
	return id
}

func (j *Jellyfin) makeJFItemRoot() (JFItem, error) {
	// we add the favorites and playlist collections to the child count
	childCount := len(j.collections.GetCollections()) + 2

	genres := j.collections.Details().Genres

	response := JFItem{
		Name:                     "Media Folders",
		ServerID:                 j.serverID,
		ID:                       itemprefix_root + collectionRootID,
		Etag:                     idhash.IdHash(collectionRootID),
		DateCreated:              time.Now().UTC(),
		Type:                     "UserRootFolder",
		IsFolder:                 true,
		CanDelete:                false,
		CanDownload:              false,
		SortName:                 "media folders",
		ExternalUrls:             []JFExternalUrls{},
		Path:                     "/root",
		EnableMediaSourceDisplay: true,
		Taglines:                 []string{},
		PlayAccess:               "Full",
		RemoteTrailers:           []JFRemoteTrailers{},
		People:                   []JFPeople{},
		Studios:                  []JFStudios{},
		Genres:                   genres,
		GenreItems:               makeJFGenreItems(genres),
		ChildCount:               childCount,
		DisplayPreferencesID:     displayPreferencesID,
		Tags:                     []string{},
		PrimaryImageAspectRatio:  1.7777777777777777,
		BackdropImageTags:        []string{},
		LocationType:             "FileSystem",
		MediaType:                "Unknown",
	}
	return response, nil
}

func (j *Jellyfin) makeJFItemCollection(collectionID string) (JFItem, error) {
	c := j.collections.GetCollection(collectionID)
	if c == nil {
		return JFItem{}, errors.New("collection not found")
	}
	collectionGenres := c.Details().Genres

	response := JFItem{
		Name:                     c.Name,
		ServerID:                 j.serverID,
		ID:                       itemprefix_collection + c.ID,
		ParentID:                 itemprefix_root + collectionRootID,
		Etag:                     idhash.IdHash(c.ID),
		DateCreated:              time.Now().UTC(),
		PremiereDate:             time.Now().UTC(),
		Type:                     "CollectionFolder",
		IsFolder:                 true,
		EnableMediaSourceDisplay: true,
		ChildCount:               len(c.Items),
		DisplayPreferencesID:     displayPreferencesID,
		ExternalUrls:             []JFExternalUrls{},
		PlayAccess:               "Full",
		PrimaryImageAspectRatio:  1.7777777777777777,
		RemoteTrailers:           []JFRemoteTrailers{},
		LocationType:             "FileSystem",
		Path:                     "/collection",
		MediaType:                "Unknown",
		CanDelete:                false,
		CanDownload:              true,
		Genres:                   collectionGenres,
		GenreItems:               makeJFGenreItems(collectionGenres),
	}
	switch c.Type {
	case collection.CollectionMovies:
		response.CollectionType = collectionTypeMovies
	case collection.CollectionShows:
		response.CollectionType = collectionTypeTVShows
	}
	response.SortName = response.CollectionType
	return response, nil
}

// makeJFItemVirtualCollection builds the synthetic favorites and
// playlist collections which exist per user, not on disk.
func (j *Jellyfin) makeJFItemVirtualCollection(name, id string, itemCount int) JFItem {
	return JFItem{
		Name:                     name,
		ServerID:                 j.serverID,
		ID:                       id,
		ParentID:                 itemprefix_root + collectionRootID,
		Etag:                     idhash.IdHash(id),
		DateCreated:              time.Now().UTC(),
		PremiereDate:             time.Now().UTC(),
		CollectionType:           collectionTypePlaylists,
		SortName:                 collectionTypePlaylists,
		Type:                     "UserView",
		IsFolder:                 true,
		EnableMediaSourceDisplay: true,
		ChildCount:               itemCount,
		DisplayPreferencesID:     displayPreferencesID,
		ExternalUrls:             []JFExternalUrls{},
		PlayAccess:               "Full",
		PrimaryImageAspectRatio:  1.7777777777777777,
		RemoteTrailers:           []JFRemoteTrailers{},
		LocationType:             "FileSystem",
		Path:                     "/collection",
		MediaType:                "Unknown",
		CanDelete:                false,
		CanDownload:              true,
	}
}

func (j *Jellyfin) makeJFItemCollectionFavorites(ctx context.Context, userID string) (JFItem, error) {
	var itemCount int
	if favoriteIDs, err := j.repo.UserDataRepo.GetFavorites(ctx, userID); err == nil {
		itemCount = len(favoriteIDs)
	}
	return j.makeJFItemVirtualCollection("Favorites",
		itemprefix_collection_favorites+favoritesCollectionID, itemCount), nil
}

func (j *Jellyfin) makeJFItemCollectionPlaylist(ctx context.Context, userID string) (JFItem, error) {
	var itemCount int
	if playlistIDs, err := j.repo.PlaylistRepo.GetPlaylists(ctx, userID); err == nil {
		itemCount = len(playlistIDs)
	}
	return j.makeJFItemVirtualCollection("Playlists",
		itemprefix_collection_playlist+playlistCollectionID, itemCount), nil
}

// makeJFItem builds the API representation of a movie or show.
func (j *Jellyfin) makeJFItem(ctx context.Context, userID string, i collection.Item, collectionID string) (JFItem, error) {
	switch v := i.(type) {
	case *collection.Movie:
		return j.makeJFItemMovie(ctx, userID, v, collectionID)
	case *collection.Show:
		return j.makeJFItemShow(ctx, userID, v, collectionID)
	}
	return JFItem{}, fmt.Errorf("unsupported item type %q", i.Type())
}

// makeJFItemByID resolves any library item ID, including seasons and
// episodes, into its API representation.
func (j *Jellyfin) makeJFItemByID(ctx context.Context, userID, itemID string) (JFItem, error) {
	if c, i := j.collections.GetItemByID(itemID); i != nil {
		return j.makeJFItem(ctx, userID, i, c.ID)
	}
	if _, show, season := j.collections.GetSeasonByID(itemID); season != nil {
		return j.makeJFItemSeason(ctx, userID, show, season)
	}
	if _, show, season, episode := j.collections.GetEpisodeByID(itemID); episode != nil {
		return j.makeJFItemEpisode(ctx, userID, show, season, episode)
	}
	return JFItem{}, errors.New("item not found")
}

func (j *Jellyfin) makeItemCommon(i collection.Item, collectionID string) JFItem {
	response := JFItem{
		ID:                      i.ID(),
		ParentID:                itemprefix_collection + collectionID,
		ServerID:                j.serverID,
		Name:                    i.Name(),
		SortName:                i.SortName(),
		OriginalTitle:           i.OriginalTitle(),
		Overview:                i.Overview(),
		Etag:                    idhash.IdHash(i.ID() + i.Modified().UTC().Format(time.RFC3339)),
		DateCreated:             i.Created().UTC(),
		PremiereDate:            i.PremiereDate().UTC(),
		ProductionYear:          i.ProductionYear(),
		OfficialRating:          i.OfficialRating(),
		CommunityRating:         i.CommunityRating(),
		RunTimeTicks:            i.RuntimeTicks(),
		Genres:                  i.Genres(),
		GenreItems:              makeJFGenreItems(i.Genres()),
		Studios:                 makeJFStudios(i.Studios()),
		People:                  makeJFPeople(i.People()),
		ProviderIds:             makeJFProviderIds(i.ProviderIDs()),
		LocationType:            "FileSystem",
		Path:                    "/" + i.Path(),
		PrimaryImageAspectRatio: 0.6666666666666666,
		CanDelete:               false,
		CanDownload:             true,
		PlayAccess:              "Full",
		ExternalUrls:            []JFExternalUrls{},
		RemoteTrailers:          []JFRemoteTrailers{},
		Tags:                    []string{},
		LockedFields:            []string{},
		DisplayPreferencesID:    displayPreferencesID,
	}
	if tagline := i.Tagline(); tagline != "" {
		response.Taglines = []string{tagline}
	}
	response.ImageTags, response.BackdropImageTags = makeJFImageTags(i.Images())
	return response
}

func (j *Jellyfin) makeJFItemMovie(ctx context.Context, userID string, m *collection.Movie, collectionID string) (JFItem, error) {
	response := j.makeItemCommon(m, collectionID)
	response.Type = itemTypeMovie
	response.IsFolder = false
	response.MediaType = "Video"
	response.VideoType = "VideoFile"

	c := j.collections.GetCollection(collectionID)
	response.MediaSources = j.makeJFMediaSources(c, m.Path(), m.MediaSources, m.RuntimeTicks())
	if len(response.MediaSources) > 0 {
		response.Container = response.MediaSources[0].Container
		response.MediaStreams = response.MediaSources[0].MediaStreams
		response.HasSubtitles = len(m.MediaSources[0].Subtitles) > 0
	}

	if playstate, err := j.repo.UserDataRepo.GetUserData(ctx, userID, m.ID()); err == nil {
		response.UserData = j.makeJFUserData(userID, m.ID(), playstate)
	}
	return response, nil
}

func (j *Jellyfin) makeJFItemShow(ctx context.Context, userID string, show *collection.Show, collectionID string) (JFItem, error) {
	response := j.makeItemCommon(show, collectionID)
	response.Type = itemTypeShow
	response.IsFolder = true
	response.MediaType = "Unknown"
	response.ChildCount = len(show.Seasons)

	// Aggregate played state over all episodes of the show
	var playedEpisodes, totalEpisodes int
	var latestPlayed time.Time
	for _, s := range show.Seasons {
		for _, e := range s.Episodes {
			totalEpisodes++
			if ps, err := j.repo.UserDataRepo.GetUserData(ctx, userID, e.ID); err == nil && ps.Played {
				playedEpisodes++
				if ps.Timestamp.After(latestPlayed) {
					latestPlayed = ps.Timestamp
				}
			}
		}
	}
	response.RecursiveItemCount = totalEpisodes
	if totalEpisodes != 0 {
		userdata := j.makeJFUserData(userID, show.ID(), &model.UserData{})
		userdata.UnplayedItemCount = totalEpisodes - playedEpisodes
		userdata.PlayedPercentage = 100 * playedEpisodes / totalEpisodes
		userdata.LastPlayedDate = latestPlayed
		userdata.Played = playedEpisodes == totalEpisodes
		response.UserData = userdata
	}
	return response, nil
}

func (j *Jellyfin) makeJFItemSeason(ctx context.Context, userID string, show *collection.Show, season *collection.Season) (JFItem, error) {
	response := JFItem{
		Type:               itemTypeSeason,
		ServerID:           j.serverID,
		ID:                 season.ID,
		ParentID:           show.ID(),
		SeriesID:           show.ID(),
		SeriesName:         show.Name(),
		Name:               season.Name,
		Etag:               idhash.IdHash(season.ID),
		IsFolder:           true,
		LocationType:       "FileSystem",
		MediaType:          "Unknown",
		ChildCount:         len(season.Episodes),
		RecursiveItemCount: len(season.Episodes),
		DateCreated:        time.Now().UTC(),
		CanDelete:          false,
		CanDownload:        true,
		PlayAccess:         "Full",
		ParentLogoItemId:   show.ID(),
	}
	if season.SeasonNumber != 0 {
		response.IndexNumber = season.SeasonNumber
		response.SortName = fmt.Sprintf("%04d", season.SeasonNumber)
	} else {
		// Specials have season number 0, sort them at the end
		response.IndexNumber = 99
		response.SortName = "9999"
	}
	images := season.Images
	if images.Primary == "" {
		images.Primary = show.Images().Primary
	}
	response.ImageTags, response.BackdropImageTags = makeJFImageTags(&images)

	var playedEpisodes int
	var latestPlayed time.Time
	for _, e := range season.Episodes {
		if ps, err := j.repo.UserDataRepo.GetUserData(ctx, userID, e.ID); err == nil && ps.Played {
			playedEpisodes++
			if ps.Timestamp.After(latestPlayed) {
				latestPlayed = ps.Timestamp
			}
		}
	}
	if len(season.Episodes) != 0 {
		userdata := j.makeJFUserData(userID, season.ID, &model.UserData{})
		userdata.UnplayedItemCount = len(season.Episodes) - playedEpisodes
		userdata.PlayedPercentage = 100 * playedEpisodes / len(season.Episodes)
		userdata.LastPlayedDate = latestPlayed
		userdata.Played = playedEpisodes == len(season.Episodes)
		response.UserData = userdata
	}
	return response, nil
}

func (j *Jellyfin) makeJFItemEpisode(ctx context.Context, userID string, show *collection.Show, season *collection.Season, episode *collection.Episode) (JFItem, error) {
	response := JFItem{
		Type:              itemTypeEpisode,
		ID:                episode.ID,
		Etag:              idhash.IdHash(episode.ID),
		ServerID:          j.serverID,
		Name:              episode.Name,
		SeriesName:        show.Name(),
		SeriesID:          show.ID(),
		SeasonID:          season.ID,
		SeasonName:        season.Name,
		ParentID:          season.ID,
		IndexNumber:       episode.EpisodeNumber,
		ParentIndexNumber: episode.SeasonNumber,
		Overview:          episode.Overview,
		CommunityRating:   episode.Rating,
		PremiereDate:      episode.Premiered.UTC(),
		DateCreated:       episode.Created.UTC(),
		RunTimeTicks:      episode.RuntimeTicks,
		LocationType:      "FileSystem",
		Path:              "/" + episode.MediaSource.Path,
		IsFolder:          false,
		MediaType:         "Video",
		VideoType:         "VideoFile",
		CanDelete:         false,
		CanDownload:       true,
		PlayAccess:        "Full",
		ParentLogoItemId:  show.ID(),
	}
	response.SortName = fmt.Sprintf("%03d - %04d - %s",
		episode.SeasonNumber, episode.EpisodeNumber, episode.Name)

	// Episode thumbnail, fall back to season then show artwork
	images := episode.Images
	if images.Primary == "" {
		images.Primary = episode.Images.Thumb
	}
	if images.Primary == "" {
		images.Primary = season.Images.Primary
	}
	if images.Primary == "" {
		images.Primary = show.Images().Primary
	}
	if images.Backdrop == "" {
		images.Backdrop = show.Images().Backdrop
	}
	response.ImageTags, response.BackdropImageTags = makeJFImageTags(&images)

	c := j.collections.GetCollection(episode.CollectionID)
	response.MediaSources = j.makeJFMediaSources(c, episode.Path,
		[]collection.MediaSource{episode.MediaSource}, episode.RuntimeTicks)
	if len(response.MediaSources) > 0 {
		response.Container = response.MediaSources[0].Container
		response.MediaStreams = response.MediaSources[0].MediaStreams
		response.HasSubtitles = len(episode.MediaSource.Subtitles) > 0
	}

	if playstate, err := j.repo.UserDataRepo.GetUserData(ctx, userID, episode.ID); err == nil {
		response.UserData = j.makeJFUserData(userID, episode.ID, playstate)
	}
	return response, nil
}

// makeJFItemFavoritesOverview creates a list of favorite items
func (j *Jellyfin) makeJFItemFavoritesOverview(ctx context.Context, userID string) ([]JFItem, error) {
	favoriteIDs, err := j.repo.UserDataRepo.GetFavorites(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	items := []JFItem{}
	for _, itemID := range favoriteIDs {
		if item, err := j.makeJFItemByID(ctx, userID, itemID); err == nil {
			items = append(items, item)
		}
	}
	return items, nil
}

func (j *Jellyfin) makeJFItemPlaylistOverview(ctx context.Context, userID string) ([]JFItem, error) {
	playlistIDs, err := j.repo.PlaylistRepo.GetPlaylists(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := []JFItem{}
	for _, playlistID := range playlistIDs {
		if item, err := j.makeJFItemPlaylist(ctx, userID, playlistID); err == nil {
			items = append(items, item)
		}
	}
	return items, nil
}

func (j *Jellyfin) makeJFItemPlaylist(ctx context.Context, userID, playlistID string) (JFItem, error) {
	playlist, err := j.repo.PlaylistRepo.GetPlaylist(ctx, userID, trimPrefix(playlistID))
	if err != nil {
		return JFItem{}, err
	}

	response := JFItem{
		Type:                     itemTypePlaylist,
		ID:                       itemprefix_playlist + playlist.ID,
		ServerID:                 j.serverID,
		ParentID:                 itemprefix_collection_playlist + playlistCollectionID,
		Name:                     playlist.Name,
		SortName:                 playlist.Name,
		Etag:                     idhash.IdHash(playlist.ID),
		DateCreated:              time.Now().UTC(),
		CanDelete:                true,
		CanDownload:              true,
		Path:                     "/playlist",
		IsFolder:                 true,
		PlayAccess:               "Full",
		RecursiveItemCount:       len(playlist.ItemIDs),
		ChildCount:               len(playlist.ItemIDs),
		LocationType:             "FileSystem",
		MediaType:                "Video",
		DisplayPreferencesID:     displayPreferencesID,
		EnableMediaSourceDisplay: true,
	}
	return response, nil
}

// makeJFItemPlaylistItemList expands a playlist into its items.
func (j *Jellyfin) makeJFItemPlaylistItemList(ctx context.Context, userID, playlistID string) ([]JFItem, error) {
	playlist, err := j.repo.PlaylistRepo.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}
	items := []JFItem{}
	for _, itemID := range playlist.ItemIDs {
		if item, err := j.makeJFItemByID(ctx, userID, itemID); err == nil {
			items = append(items, item)
		}
	}
	return items, nil
}

func (j *Jellyfin) makeJFItemGenre(genre string) JFItem {
	response := JFItem{
		ID:           makeJFGenreID(genre),
		ServerID:     j.serverID,
		Type:         "Genre",
		Name:         genre,
		SortName:     strings.ToLower(genre),
		Etag:         idhash.IdHash(genre),
		DateCreated:  time.Now().UTC(),
		LocationType: "FileSystem",
		MediaType:    "Unknown",
		ChildCount:   1,
	}
	if count, ok := j.collections.GenreItemCount()[genre]; ok {
		response.ChildCount = count
	}
	return response
}

func (j *Jellyfin) makeJFItemStudio(studio string, itemCount int) JFItem {
	return JFItem{
		ID:           idhash.IdHash(studio),
		ServerID:     j.serverID,
		Type:         "Studio",
		Name:         studio,
		SortName:     strings.ToLower(studio),
		Etag:         idhash.IdHash(studio),
		DateCreated:  time.Now().UTC(),
		LocationType: "FileSystem",
		MediaType:    "Unknown",
		ChildCount:   itemCount,
	}
}

// makeJFUserData converts a stored play state into the API shape.
func (j *Jellyfin) makeJFUserData(userID, itemID string, p *model.UserData) *JFUserData {
	return &JFUserData{
		PlaybackPositionTicks: p.Position * TicksPerSecond,
		PlayedPercentage:      p.PlayedPercentage,
		PlayCount:             p.PlayCount,
		Played:                p.Played,
		IsFavorite:            p.Favorite,
		LastPlayedDate:        p.Timestamp,
		Key:                   userID + "/" + itemID,
		ItemID:                "00000000000000000000000000000000",
	}
}

// makeJFMediaSources converts the scanner's media sources. Paths are
// absolute server-side paths.
func (j *Jellyfin) makeJFMediaSources(c *collection.Collection, itemPath string, sources []collection.MediaSource, runtimeTicks int64) []JFMediaSources {
	mediasources := make([]JFMediaSources, 0, len(sources))
	for _, ms := range sources {
		fullPath := ms.Path
		if c != nil {
			fullPath = path.Join(c.Directory, ms.Path)
		}
		source := JFMediaSources{
			ID:                   idhash.IdHash(ms.Path),
			ETag:                 idhash.IdHash(ms.Path),
			Name:                 path.Base(ms.Path),
			Path:                 fullPath,
			Type:                 "Default",
			Container:            ms.Container,
			Size:                 ms.Size,
			Bitrate:              ms.Bitrate,
			RunTimeTicks:         runtimeTicks,
			Protocol:             "File",
			VideoType:            "VideoFile",
			// We do not transcode
			SupportsTranscoding:  false,
			SupportsDirectStream: true,
			SupportsDirectPlay:   true,
			SupportsProbing:      true,
			Formats:              []string{},
			MediaStreams:         makeJFSubtitleStreams(ms.Subtitles),
			MediaAttachments:     []JFMediaAttachments{},
		}
		mediasources = append(mediasources, source)
	}
	return mediasources
}

// makeJFSubtitleStreams lists subtitle sidecars as external streams.
func makeJFSubtitleStreams(subtitles []collection.SubtitleStream) []JFMediaStreams {
	streams := []JFMediaStreams{}
	for n, sub := range subtitles {
		title := sub.Title
		if title == "" {
			title = sub.Language
		}
		streams = append(streams, JFMediaStreams{
			Index:                  n,
			Type:                   "Subtitle",
			Codec:                  sub.Codec,
			Language:               sub.Language,
			Title:                  title,
			DisplayTitle:           title,
			IsExternal:             true,
			IsTextSubtitleStream:   true,
			SupportsExternalStream: true,
		})
	}
	return streams
}

func makeJFImageTags(images *collection.ImageSet) (*JFImageTags, []string) {
	if images == nil {
		return nil, nil
	}
	tags := &JFImageTags{}
	var backdrops []string
	if images.Primary != "" {
		tags.Primary = idhash.IdHash(images.Primary)
	}
	if images.Backdrop != "" {
		tags.Backdrop = idhash.IdHash(images.Backdrop)
		// Required to have Infuse load the backdrop of an episode
		backdrops = []string{tags.Backdrop}
	}
	if images.Logo != "" {
		tags.Logo = idhash.IdHash(images.Logo)
	}
	if images.Thumb != "" {
		tags.Thumb = idhash.IdHash(images.Thumb)
	}
	return tags, backdrops
}

func makeJFGenreID(genre string) string {
	return idhash.IdHash(strings.ToLower(genre))
}

func makeJFGenreItems(genres []string) []JFGenreItem {
	items := make([]JFGenreItem, 0, len(genres))
	for _, genre := range genres {
		items = append(items, JFGenreItem{
			Name: genre,
			ID:   makeJFGenreID(genre),
		})
	}
	return items
}

func makeJFStudios(studios []string) []JFStudios {
	items := make([]JFStudios, 0, len(studios))
	for _, studio := range studios {
		items = append(items, JFStudios{
			Name: studio,
			ID:   idhash.IdHash(studio),
		})
	}
	return items
}

func makeJFPeople(people []metadata.Person) []JFPeople {
	items := make([]JFPeople, 0, len(people))
	for _, person := range people {
		items = append(items, JFPeople{
			Name: person.Name,
			ID:   idhash.IdHash(person.Name),
			Role: person.Role,
			Type: string(person.Type),
		})
	}
	return items
}

func makeJFProviderIds(ids map[string]string) JFProviderIds {
	var out JFProviderIds
	for provider, id := range ids {
		switch strings.ToLower(provider) {
		case "imdb":
			out.Imdb = id
		case "tmdb", "themoviedb":
			out.Tmdb = id
		case "tvdb", "thetvdb":
			out.Tvdb = id
		}
	}
	return out
}
