package jellyfin

import (
	"net/http"
	"os"
	"path"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/collection"
	"github.com/jellofin/jellofin-server/database/model"
	"github.com/jellofin/jellofin-server/idhash"
)

// GET /Videos/{item}/stream
// GET /Videos/{item}/stream.{container}
//
// videoStreamHandler serves the video file of a movie or episode. When
// the collection has an HLS transcoder configured the request is
// forwarded there instead of serving the file directly.
func (j *Jellyfin) videoStreamHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemID := trimPrefix(vars["item"])

	c, sources, err := j.itemMediaSources(itemID)
	if err != nil {
		apierror(w, "Item not found", http.StatusNotFound)
		return
	}

	source := sources[0]
	if requested := r.URL.Query().Get("mediaSourceId"); requested != "" {
		for _, ms := range sources {
			if idhash.IdHash(ms.Path) == requested {
				source = ms
				break
			}
		}
	}

	if c.HlsServer != "" {
		j.hlsProxy.Forward(w, r, c.HlsServer, source.Path)
		return
	}
	j.serveFile(w, r, path.Join(c.Directory, source.Path))
}

// GET /Videos/{item}/{source}/Subtitles/{index}/Stream.{format}
//
// subtitleHandler serves a subtitle sidecar file.
func (j *Jellyfin) subtitleHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemID := trimPrefix(vars["item"])
	sourceID := vars["source"]

	index, err := strconv.Atoi(vars["index"])
	if err != nil || index < 0 {
		apierror(w, "Invalid subtitle index", http.StatusBadRequest)
		return
	}

	c, sources, err := j.itemMediaSources(itemID)
	if err != nil {
		apierror(w, "Item not found", http.StatusNotFound)
		return
	}

	source := sources[0]
	for _, ms := range sources {
		if idhash.IdHash(ms.Path) == sourceID {
			source = ms
			break
		}
	}
	if index >= len(source.Subtitles) {
		apierror(w, "Subtitle not found", http.StatusNotFound)
		return
	}
	subtitle := source.Subtitles[index]

	if subtitle.Codec == "webvtt" {
		w.Header().Set("content-type", "text/vtt")
	} else {
		w.Header().Set("content-type", "application/x-subrip")
	}
	file, err := os.Open(path.Join(c.Directory, subtitle.Path))
	if err != nil {
		apierror(w, "Subtitle not found", http.StatusNotFound)
		return
	}
	defer file.Close()
	fileinfo, err := file.Stat()
	if err != nil {
		apierror(w, "Subtitle not found", http.StatusNotFound)
		return
	}
	http.ServeContent(w, r, subtitle.Path, fileinfo.ModTime(), file)
}

// POST /Items/{item}/PlaybackInfo
//
// itemsPlaybackInfoHandler returns the media sources of an item so the
// client can pick a stream.
func (j *Jellyfin) itemsPlaybackInfoHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	itemID := trimPrefix(vars["item"])

	item, err := j.makeJFItemByID(r.Context(), accessToken.UserID, itemID)
	if err != nil {
		apierror(w, "Item not found", http.StatusNotFound)
		return
	}

	response := JFPlaybackInfoResponse{
		MediaSources:  item.MediaSources,
		PlaySessionID: uuid.NewString(),
	}
	serveJSON(response, w)
}

// itemMediaSources resolves the playable files of a movie or episode.
func (j *Jellyfin) itemMediaSources(itemID string) (*collection.Collection, []collection.MediaSource, error) {
	if c, i := j.collections.GetItemByID(itemID); i != nil {
		if movie, ok := i.(*collection.Movie); ok && len(movie.MediaSources) > 0 {
			return c, movie.MediaSources, nil
		}
		return nil, nil, model.ErrNotFound
	}
	if c, _, _, episode := j.collections.GetEpisodeByID(itemID); episode != nil {
		return c, []collection.MediaSource{episode.MediaSource}, nil
	}
	return nil, nil, model.ErrNotFound
}

// serveFile serves a media file from disk with range request support.
func (j *Jellyfin) serveFile(w http.ResponseWriter, r *http.Request, filename string) {
	file, err := os.Open(filename)
	if err != nil {
		apierror(w, "Media file not found", http.StatusNotFound)
		return
	}
	defer file.Close()
	fileinfo, err := file.Stat()
	if err != nil {
		apierror(w, "Media file not found", http.StatusNotFound)
		return
	}
	w.Header().Set("content-type", mimeTypeByExtension(filename))
	http.ServeContent(w, r, filename, fileinfo.ModTime(), file)
}
