package jellyfin

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/collection"
	"github.com/jellofin/jellofin-server/database/model"
	"github.com/jellofin/jellofin-server/idhash"
	"github.com/jellofin/jellofin-server/imageresize"
)

// /Items/rVFG3EzPthk2wowNkqUl/Images/Backdrop?tag=7cec54f0c8f362c75588e83d76fefa75
// /Items/q2e2UzCOd9zkmJenIOph/Images/Primary?tag=70931a7d8c147c9e2c0aafbad99e03e5
// /Items/2vx0ZYKeHxbh5iWhloIB/Images/Primary?tag=redirect_https://image.tmdb.org/t/p/original/3E4x5doNuuu6i9Mef6HPrlZjNb1.jpg
//
// itemsImagesHandler serves item images like posters, backdrops and logos
func (j *Jellyfin) itemsImagesHandler(w http.ResponseWriter, r *http.Request) {
	// handle tag-based redirects for item imagery that lives elsewhere
	// (e.g. external artwork), the provided item id does not matter
	queryparams := r.URL.Query()
	tag := queryparams.Get("tag")
	if strings.HasPrefix(tag, tagprefix_redirect) {
		w.Header().Set("cache-control", "max-age=2592000")
		http.Redirect(w, r, strings.TrimPrefix(tag, tagprefix_redirect), http.StatusFound)
		return
	}
	if strings.HasPrefix(tag, tagprefix_file) {
		w.Header().Set("cache-control", "max-age=2592000")
		j.serveImage(w, r, strings.TrimPrefix(tag, tagprefix_file), j.imageQualityPoster)
		return
	}

	vars := mux.Vars(r)
	itemID := vars["item"]
	imageType := vars["type"]

	switch {
	case isJFCollectionID(itemID), isJFCollectionFavoritesID(itemID), isJFCollectionPlaylistID(itemID):
		apierror(w, "Image request for collection not supported", http.StatusNotFound)
		return
	}

	directory, images, ok := j.resolveItemImages(itemID)
	if !ok {
		apierror(w, "Item not found", http.StatusNotFound)
		return
	}

	var filename string
	quality := 100
	switch strings.ToLower(imageType) {
	case "primary":
		filename = images.Primary
		quality = j.imageQualityPoster
	case "backdrop":
		filename = images.Backdrop
	case "logo":
		filename = images.Logo
		quality = j.imageQualityPoster
	case "thumb":
		filename = images.Thumb
		quality = j.imageQualityPoster
	case "banner":
		filename = images.Banner
	}
	if filename == "" {
		apierror(w, "Item image not found", http.StatusNotFound)
		return
	}
	j.serveImage(w, r, path.Join(directory, filename), quality)
}

// resolveItemImages returns the collection directory and image set of a
// movie, show, season or episode. Season and episode artwork falls back
// to the show artwork.
func (j *Jellyfin) resolveItemImages(itemID string) (string, collection.ImageSet, bool) {
	if c, i := j.collections.GetItemByID(trimPrefix(itemID)); i != nil {
		return c.Directory, *i.Images(), true
	}
	if c, show, season := j.collections.GetSeasonByID(itemID); season != nil {
		images := season.Images
		if images.Primary == "" {
			images.Primary = show.Images().Primary
		}
		if images.Backdrop == "" {
			images.Backdrop = show.Images().Backdrop
		}
		return c.Directory, images, true
	}
	if c, show, season, episode := j.collections.GetEpisodeByID(itemID); episode != nil {
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
		return c.Directory, images, true
	}
	return "", collection.ImageSet{}, false
}

// serveImage serves an image from disk, resized on the fly when the
// request carries w/h/quality parameters.
func (j *Jellyfin) serveImage(w http.ResponseWriter, r *http.Request, filename string, defaultQuality int) {
	width, height, quality := imageresize.FromQuery(r.URL.Query())
	if quality == 0 {
		quality = defaultQuality
	}
	resized := j.imageresizer.Resize(filename, width, height, quality)

	file, err := os.Open(resized)
	if err != nil {
		apierror(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	fileStat, err := file.Stat()
	if err != nil {
		apierror(w, "Could not retrieve file info", http.StatusInternalServerError)
		return
	}
	w.Header().Set("cache-control", "max-age=2592000")
	w.Header().Set("content-type", mimeTypeByExtension(resized))
	http.ServeContent(w, r, fileStat.Name(), fileStat.ModTime(), file)
}

// GET /Users/{user}/Images/Primary
//
// usersImageHandler serves a user profile image from the database.
func (j *Jellyfin) usersImageHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["user"]
	imageType := strings.ToLower(vars["type"])

	metadata, data, err := j.repo.ImageRepo.GetImage(r.Context(), userID, imageType)
	if err != nil {
		apierror(w, "Image not found", http.StatusNotFound)
		return
	}
	if match := r.Header.Get("If-None-Match"); match != "" && match == metadata.Etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("content-type", metadata.MimeType)
	w.Header().Set("etag", metadata.Etag)
	http.ServeContent(w, r, imageType, metadata.Updated, bytes.NewReader(data))
}

// POST /Users/{user}/Images/Primary
//
// usersImageUploadHandler stores a user profile image, the request body
// holds the image base64-encoded.
func (j *Jellyfin) usersImageUploadHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	imageType := strings.ToLower(vars["type"])

	encoded, err := io.ReadAll(io.LimitReader(r.Body, 8*1024*1024))
	if err != nil {
		apierror(w, "Could not read request body", http.StatusBadRequest)
		return
	}
	data, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		apierror(w, "Invalid image encoding", http.StatusBadRequest)
		return
	}

	metadata := model.ImageMetadata{
		MimeType: http.DetectContentType(data),
		Etag:     idhash.IdHash(string(data)),
		Updated:  time.Now().UTC(),
		FileSize: int64(len(data)),
	}
	if err := j.repo.ImageRepo.StoreImage(r.Context(), accessToken.UserID, imageType, metadata, data); err != nil {
		apierror(w, "Could not store image", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /Users/{user}/Images/Primary
func (j *Jellyfin) usersImageDeleteHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := j.getAccessTokenDetails(w, r)
	if accessToken == nil {
		return
	}

	vars := mux.Vars(r)
	imageType := strings.ToLower(vars["type"])

	if err := j.repo.ImageRepo.DeleteImage(r.Context(), accessToken.UserID, imageType); err != nil {
		apierror(w, "Image not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// mimeTypeByExtension returns the mime type based on the file extension
func mimeTypeByExtension(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"

	case ".mp4":
		return "video/mp4"
	case ".m4v":
		return "video/x-m4v"
	case ".mov":
		return "video/quicktime"
	case ".wmv":
		return "video/x-ms-wmv"
	case ".avi":
		return "video/x-msvideo"
	case ".mkv":
		return "video/x-matroska"
	case ".webm":
		return "video/webm"

	case ".mp3":
		return "audio/mpeg"
	case ".aac":
		return "audio/aac"
	case ".flac":
		return "audio/flac"
	case ".wav":
		return "audio/wav"

	default:
		return "application/octet-stream"
	}
}
