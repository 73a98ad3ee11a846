package jellyfin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/collection"
	"github.com/jellofin/jellofin-server/database"
	"github.com/jellofin/jellofin-server/imageresize"
	"github.com/jellofin/jellofin-server/muxnormalizer"
)

func writeFile(t *testing.T, name string, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

const matrixNfo = `<?xml version="1.0" encoding="UTF-8"?>
<movie>
  <title>The Matrix</title>
  <year>1999</year>
  <premiered>1999-03-31</premiered>
  <plot>A hacker learns the truth.</plot>
  <runtime>136</runtime>
  <mpaa>R</mpaa>
  <rating>8.7</rating>
  <genre>Action / Sci-Fi</genre>
  <studio>Warner Bros.</studio>
</movie>
`

// newTestServer scans a small movie and show library from a temp dir
// and returns a router with all handlers registered.
func newTestServer(t *testing.T) *mux.Router {
	t.Helper()

	repo, err := database.New(&database.Options{
		Filename: path.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatal(err)
	}

	movies := t.TempDir()
	m := path.Join(movies, "The Matrix (1999)")
	writeFile(t, path.Join(m, "The.Matrix.1999.1080p.mkv"), "matrix video")
	writeFile(t, path.Join(m, "The.Matrix.1999.1080p.en.srt"), "1\n")
	writeFile(t, path.Join(m, "poster.jpg"), "img")
	writeFile(t, path.Join(m, "movie.nfo"), matrixNfo)

	shows := t.TempDir()
	s := path.Join(shows, "Frasier")
	writeFile(t, path.Join(s, "tvshow.nfo"), `<tvshow><title>Frasier</title><genre>Comedy</genre></tvshow>`)
	writeFile(t, path.Join(s, "Season 1", "Frasier.S01E01.mkv"), "episode one")
	writeFile(t, path.Join(s, "Season 1", "Frasier.S01E01.nfo"),
		`<episodedetails><title>The Good Son</title><runtime>22</runtime></episodedetails>`)
	writeFile(t, path.Join(s, "Season 1", "Frasier.S01E02.mkv"), "episode two")
	writeFile(t, path.Join(s, "Specials", "Frasier.S00E01.mkv"), "special")

	collections := collection.New(&collection.Options{Repo: repo})
	if err := collections.AddCollection("movies", "Movies", "movies", movies, "", ""); err != nil {
		t.Fatal(err)
	}
	if err := collections.AddCollection("shows", "Shows", "shows", shows, "", ""); err != nil {
		t.Fatal(err)
	}
	collections.Init(context.Background())

	j := New(&Options{
		Collections:        collections,
		Repo:               repo,
		Imageresizer:       imageresize.New(imageresize.Options{}),
		ServerID:           "7a3c8d9e6f5b4a2c1d0e9f8a7b6c5d4e",
		ServerName:         "testserver",
		AutoRegister:       true,
		ImageQualityPoster: 90,
	})
	r := mux.NewRouter()
	j.RegisterHandlers(r)
	return r
}

const embyAuthHeader = `MediaBrowser Client="tester", Device="unittest", DeviceId="dev1", Version="1.0.0"`

// authenticate registers a user via auto-register and returns the
// user ID and access token.
func authenticate(t *testing.T, r *mux.Router) (userID, token string) {
	t.Helper()

	body := `{"Username":"erik","Pw":"hunter2"}`
	req := httptest.NewRequest("POST", "/Users/AuthenticateByName", bytes.NewBufferString(body))
	req.Header.Set("x-emby-authorization", embyAuthHeader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("authenticate status = %d, body %s", w.Code, w.Body.String())
	}
	var response JFAuthenticateByNameResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response.AccessToken == "" {
		t.Fatal("no access token issued")
	}
	return response.User.Id, response.AccessToken
}

// doJSON performs an authenticated request and decodes the response.
func doJSON(t *testing.T, r *mux.Router, method, url, token string, body string, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("x-emby-token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decoding response %q: %v", method, url, w.Body.String(), err)
		}
	}
	return w
}

// findItem returns the first item with the given name from a listing.
func findItem(t *testing.T, items []JFItem, name string) JFItem {
	t.Helper()
	for _, i := range items {
		if i.Name == name {
			return i
		}
	}
	t.Fatalf("item %q not found in %d items", name, len(items))
	return JFItem{}
}

func TestAuthenticateByName(t *testing.T) {
	r := newTestServer(t)
	userID, token := authenticate(t, r)
	if userID == "" || token == "" {
		t.Fatal("empty user ID or token")
	}

	// wrong password must be rejected, the user now exists
	body := `{"Username":"erik","Pw":"wrong"}`
	req := httptest.NewRequest("POST", "/Users/AuthenticateByName", bytes.NewBufferString(body))
	req.Header.Set("x-emby-authorization", embyAuthHeader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", w.Code)
	}
}

func TestRequestWithoutToken(t *testing.T) {
	r := newTestServer(t)
	w := doJSON(t, r, "GET", "/Items", "", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestUsersMe(t *testing.T) {
	r := newTestServer(t)
	userID, token := authenticate(t, r)

	var user JFUser
	w := doJSON(t, r, "GET", "/Users/Me", token, "", &user)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if user.Id != userID || user.Name != "erik" {
		t.Errorf("user = %s %q", user.Id, user.Name)
	}
	if !user.HasPassword {
		t.Error("HasPassword = false")
	}
}

func TestUsersViews(t *testing.T) {
	r := newTestServer(t)
	userID, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Users/"+userID+"/Views", token, "", &response)

	names := make(map[string]bool)
	for _, i := range response.Items {
		names[i.Name] = true
	}
	for _, want := range []string{"Movies", "Shows", "Favorites", "Playlists"} {
		if !names[want] {
			t.Errorf("view %q missing, got %v", want, names)
		}
	}
}

func TestItemsListing(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?parentId=collection_movies", token, "", &response)
	if response.TotalRecordCount != 1 {
		t.Fatalf("TotalRecordCount = %d", response.TotalRecordCount)
	}
	movie := findItem(t, response.Items, "The Matrix (1999)")
	if movie.Type != "Movie" {
		t.Errorf("Type = %q", movie.Type)
	}
	if movie.ProductionYear != 1999 {
		t.Errorf("ProductionYear = %d", movie.ProductionYear)
	}
	if len(movie.MediaSources) != 1 {
		t.Errorf("MediaSources = %d", len(movie.MediaSources))
	}
}

func TestItemsFilterByType(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?includeItemTypes=Series&recursive=true", token, "", &response)
	if len(response.Items) != 1 || response.Items[0].Name != "Frasier" {
		t.Errorf("items = %+v", response.Items)
	}

	doJSON(t, r, "GET", "/Items?excludeItemTypes=Series&recursive=true", token, "", &response)
	for _, i := range response.Items {
		if i.Type == "Series" {
			t.Errorf("series %q not excluded", i.Name)
		}
	}
}

func TestItemsSortOrder(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?recursive=true&sortBy=SortName&sortOrder=Descending", token, "", &response)
	if len(response.Items) < 2 {
		t.Fatalf("items = %d", len(response.Items))
	}
	if response.Items[0].SortName < response.Items[1].SortName {
		t.Errorf("not descending: %q before %q",
			response.Items[0].SortName, response.Items[1].SortName)
	}
}

func TestItemsPagination(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?recursive=true&startIndex=1&limit=1", token, "", &response)
	if len(response.Items) != 1 {
		t.Errorf("limit not applied, items = %d", len(response.Items))
	}
	if response.StartIndex != 1 {
		t.Errorf("StartIndex = %d", response.StartIndex)
	}
}

func TestShowsSeasonsAndEpisodes(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var listing UserItemsResponse
	doJSON(t, r, "GET", "/Items?parentId=collection_shows", token, "", &listing)
	show := findItem(t, listing.Items, "Frasier")

	var seasons UserItemsResponse
	doJSON(t, r, "GET", "/Shows/"+show.ID+"/Seasons", token, "", &seasons)
	if len(seasons.Items) != 2 {
		t.Fatalf("seasons = %d", len(seasons.Items))
	}
	// Specials sort last
	if seasons.Items[0].Name != "Season 1" || seasons.Items[1].Name != "Specials" {
		t.Errorf("season order = %q, %q", seasons.Items[0].Name, seasons.Items[1].Name)
	}

	var episodes UserItemsResponse
	doJSON(t, r, "GET", "/Shows/"+show.ID+"/Episodes?seasonId="+seasons.Items[0].ID, token, "", &episodes)
	if len(episodes.Items) != 2 {
		t.Fatalf("episodes = %d", len(episodes.Items))
	}
	if episodes.Items[0].Name != "The Good Son" {
		t.Errorf("episode name = %q", episodes.Items[0].Name)
	}
	if episodes.Items[0].SeriesName != "Frasier" {
		t.Errorf("SeriesName = %q", episodes.Items[0].SeriesName)
	}
}

func TestPlayStateProgress(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var listing UserItemsResponse
	doJSON(t, r, "GET", "/Items?parentId=collection_movies", token, "", &listing)
	movie := findItem(t, listing.Items, "The Matrix (1999)")

	// halfway through a 136 minute movie
	halfway := int64(68) * 60 * TicksPerSecond
	body := fmt.Sprintf(`{"ItemId":%q,"PositionTicks":%d}`, movie.ID, halfway)
	w := doJSON(t, r, "POST", "/Sessions/Playing/Progress", token, body, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("progress status = %d", w.Code)
	}

	var item JFItem
	doJSON(t, r, "GET", "/Items/"+movie.ID, token, "", &item)
	if item.UserData == nil {
		t.Fatal("no user data after progress update")
	}
	if item.UserData.Played {
		t.Error("halfway should not be played")
	}
	if item.UserData.PlaybackPositionTicks != halfway {
		t.Errorf("PlaybackPositionTicks = %d, want %d",
			item.UserData.PlaybackPositionTicks, halfway)
	}
}

func TestPlayStateMarksPlayedAt98Percent(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var listing UserItemsResponse
	doJSON(t, r, "GET", "/Items?parentId=collection_movies", token, "", &listing)
	movie := findItem(t, listing.Items, "The Matrix (1999)")

	// one minute before the end
	almostDone := int64(135) * 60 * TicksPerSecond
	body := fmt.Sprintf(`{"ItemId":%q,"PositionTicks":%d}`, movie.ID, almostDone)
	doJSON(t, r, "POST", "/Sessions/Playing/Stopped", token, body, nil)

	var item JFItem
	doJSON(t, r, "GET", "/Items/"+movie.ID, token, "", &item)
	if item.UserData == nil || !item.UserData.Played {
		t.Fatal("watching 99% should mark item played")
	}
	if item.UserData.PlaybackPositionTicks != 0 {
		t.Errorf("resume position = %d, want reset", item.UserData.PlaybackPositionTicks)
	}
	if item.UserData.PlayCount != 1 {
		t.Errorf("PlayCount = %d", item.UserData.PlayCount)
	}
}

func TestPlayedItemsToggle(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var listing UserItemsResponse
	doJSON(t, r, "GET", "/Items?parentId=collection_movies", token, "", &listing)
	movie := findItem(t, listing.Items, "The Matrix (1999)")

	var userdata JFUserData
	doJSON(t, r, "POST", "/UserPlayedItems/"+movie.ID, token, "", &userdata)
	if !userdata.Played || userdata.PlayCount != 1 {
		t.Errorf("after mark played: %+v", userdata)
	}

	doJSON(t, r, "DELETE", "/UserPlayedItems/"+movie.ID, token, "", &userdata)
	if userdata.Played {
		t.Error("still played after unmark")
	}
}

func TestFavorites(t *testing.T) {
	r := newTestServer(t)
	userID, token := authenticate(t, r)

	var listing UserItemsResponse
	doJSON(t, r, "GET", "/Items?parentId=collection_movies", token, "", &listing)
	movie := findItem(t, listing.Items, "The Matrix (1999)")

	var userdata JFUserData
	doJSON(t, r, "POST", "/UserFavoriteItems/"+movie.ID, token, "", &userdata)
	if !userdata.IsFavorite {
		t.Fatal("not marked favorite")
	}

	var favorites UserItemsResponse
	doJSON(t, r, "GET", "/Users/"+userID+"/Items?recursive=true&filters=IsFavorite", token, "", &favorites)
	if len(favorites.Items) != 1 || favorites.Items[0].ID != movie.ID {
		t.Errorf("favorites = %+v", favorites.Items)
	}

	doJSON(t, r, "DELETE", "/UserFavoriteItems/"+movie.ID, token, "", &userdata)
	if userdata.IsFavorite {
		t.Error("still favorite after removal")
	}
}

func TestResumeAfterPartialPlayback(t *testing.T) {
	r := newTestServer(t)
	userID, token := authenticate(t, r)

	var listing UserItemsResponse
	doJSON(t, r, "GET", "/Items?parentId=collection_movies", token, "", &listing)
	movie := findItem(t, listing.Items, "The Matrix (1999)")

	body := fmt.Sprintf(`{"ItemId":%q,"PositionTicks":%d}`, movie.ID, int64(30)*60*TicksPerSecond)
	doJSON(t, r, "POST", "/Sessions/Playing/Progress", token, body, nil)

	var resume UserItemsResponse
	doJSON(t, r, "GET", "/Users/"+userID+"/Items/Resume", token, "", &resume)
	if len(resume.Items) != 1 || resume.Items[0].ID != movie.ID {
		t.Errorf("resume items = %+v", resume.Items)
	}
}

func TestPlaylistLifecycle(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var listing UserItemsResponse
	doJSON(t, r, "GET", "/Items?parentId=collection_movies", token, "", &listing)
	movie := findItem(t, listing.Items, "The Matrix (1999)")

	var created JFCreatePlaylistResponse
	w := doJSON(t, r, "POST", "/Playlists?name=watchlist", token, "", &created)
	if w.Code != http.StatusCreated || created.ID == "" {
		t.Fatalf("create status = %d, response %+v", w.Code, created)
	}

	w = doJSON(t, r, "POST", "/Playlists/"+created.ID+"/Items?ids="+movie.ID, token, "", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("add items status = %d", w.Code)
	}

	var items UserItemsResponse
	doJSON(t, r, "GET", "/Playlists/"+created.ID+"/Items", token, "", &items)
	if len(items.Items) != 1 || items.Items[0].Name != "The Matrix (1999)" {
		t.Errorf("playlist items = %+v", items.Items)
	}

	w = doJSON(t, r, "DELETE", "/Playlists/"+created.ID+"/Items?ids="+movie.ID, token, "", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete items status = %d", w.Code)
	}
	doJSON(t, r, "GET", "/Playlists/"+created.ID+"/Items", token, "", &items)
	if len(items.Items) != 0 {
		t.Errorf("playlist not empty: %+v", items.Items)
	}
}

func TestQuickConnectFlow(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var enabled bool
	doJSON(t, r, "GET", "/QuickConnect/Enabled", "", "", &enabled)
	if !enabled {
		t.Fatal("quick connect not enabled")
	}

	req := httptest.NewRequest("POST", "/QuickConnect/Initiate", nil)
	req.Header.Set("x-emby-authorization", embyAuthHeader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var initiated JFQuickConnectResult
	if err := json.Unmarshal(w.Body.Bytes(), &initiated); err != nil {
		t.Fatal(err)
	}
	if initiated.Secret == "" || len(initiated.Code) != 6 {
		t.Fatalf("initiate = %+v", initiated)
	}

	var state JFQuickConnectResult
	doJSON(t, r, "GET", "/QuickConnect/Connect?secret="+initiated.Secret, "", "", &state)
	if state.Authenticated {
		t.Fatal("authenticated before authorization")
	}

	w2 := doJSON(t, r, "POST", "/QuickConnect/Authorize?code="+initiated.Code, token, "", nil)
	if w2.Code != http.StatusOK {
		t.Fatalf("authorize status = %d", w2.Code)
	}

	doJSON(t, r, "GET", "/QuickConnect/Connect?secret="+initiated.Secret, "", "", &state)
	if !state.Authenticated {
		t.Fatal("not authenticated after authorization")
	}

	var login JFAuthenticateByNameResponse
	doJSON(t, r, "POST", "/Users/AuthenticateWithQuickConnect", "",
		fmt.Sprintf(`{"Secret":%q}`, initiated.Secret), &login)
	if login.AccessToken == "" || login.User.Name != "erik" {
		t.Errorf("quick connect login = %+v", login)
	}
}

func TestVideoStream(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var listing UserItemsResponse
	doJSON(t, r, "GET", "/Items?parentId=collection_movies", token, "", &listing)
	movie := findItem(t, listing.Items, "The Matrix (1999)")

	req := httptest.NewRequest("GET", "/Videos/"+movie.ID+"/stream", nil)
	req.Header.Set("x-emby-token", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stream status = %d", w.Code)
	}
	if w.Body.String() != "matrix video" {
		t.Errorf("stream body = %q", w.Body.String())
	}

	// range requests must be honored
	req = httptest.NewRequest("GET", "/Videos/"+movie.ID+"/stream", nil)
	req.Header.Set("x-emby-token", token)
	req.Header.Set("Range", "bytes=0-5")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusPartialContent {
		t.Errorf("range status = %d", w.Code)
	}
	if w.Body.String() != "matrix" {
		t.Errorf("range body = %q", w.Body.String())
	}
}

func TestSystemInfoPublic(t *testing.T) {
	r := newTestServer(t)

	var info JFSystemInfoPublicResponse
	doJSON(t, r, "GET", "/System/Info/Public", "", "", &info)
	if info.ProductName != "Jellyfin Server" {
		t.Errorf("ProductName = %q", info.ProductName)
	}
	if info.ServerName != "testserver" {
		t.Errorf("ServerName = %q", info.ServerName)
	}
}

func TestSearchHints(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?searchTerm=matrix", token, "", &response)
	if len(response.Items) != 1 || response.Items[0].Name != "The Matrix (1999)" {
		t.Errorf("search results = %+v", response.Items)
	}
}

func TestGenres(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Genres", token, "", &response)

	names := make(map[string]bool)
	for _, i := range response.Items {
		names[i.Name] = true
	}
	for _, want := range []string{"Action", "Sci-Fi", "Comedy"} {
		if !names[want] {
			t.Errorf("genre %q missing, got %v", want, names)
		}
	}
}

func TestDisplayPreferencesRoundTrip(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var prefs DisplayPreferencesResponse
	doJSON(t, r, "GET", "/DisplayPreferences/usersettings?client=emby", token, "", &prefs)
	if prefs.SortBy != "SortName" || prefs.Client != "emby" {
		t.Errorf("default prefs = %+v", prefs)
	}

	prefs.SortBy = "DateCreated"
	prefs.SortOrder = "Descending"
	body, _ := json.Marshal(prefs)
	w := doJSON(t, r, "POST", "/DisplayPreferences/usersettings?client=emby", token, string(body), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("store status = %d", w.Code)
	}

	var stored DisplayPreferencesResponse
	doJSON(t, r, "GET", "/DisplayPreferences/usersettings?client=emby", token, "", &stored)
	if stored.SortBy != "DateCreated" || stored.SortOrder != "Descending" {
		t.Errorf("stored prefs = %+v", stored)
	}

	// A different client name keeps its own settings.
	var other DisplayPreferencesResponse
	doJSON(t, r, "GET", "/DisplayPreferences/usersettings?client=web", token, "", &other)
	if other.SortBy != "SortName" {
		t.Errorf("other client prefs = %+v", other)
	}
}

func TestApiKeyQueryParameter(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	normalizer, err := muxnormalizer.New(r)
	if err != nil {
		t.Fatal(err)
	}
	h := normalizer.Middleware(r)

	for _, param := range []string{"api_key", "apiKey", "ApiKey", "apikey"} {
		req := httptest.NewRequest("GET", "/System/Info?"+param+"="+token, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET /System/Info?%s=<token> status = %d, want 200", param, w.Code)
		}
	}
}

func TestLatestOrderedByDateAdded(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var items []JFItem
	doJSON(t, r, "GET", "/Items/Latest", token, "", &items)
	if len(items) < 2 {
		t.Fatalf("latest items = %d", len(items))
	}
	for k := 1; k < len(items); k++ {
		if items[k].DateCreated.After(items[k-1].DateCreated) {
			t.Errorf("latest not ordered by date added: %q newer than %q",
				items[k].Name, items[k-1].Name)
		}
	}

	// The show library is written after the movie library, so the show
	// is the more recent addition even though the movie has the more
	// recent premiere date.
	frasierIdx, matrixIdx := -1, -1
	for k, i := range items {
		switch i.Name {
		case "Frasier":
			frasierIdx = k
		case "The Matrix (1999)":
			matrixIdx = k
		}
	}
	if frasierIdx == -1 || matrixIdx == -1 || frasierIdx > matrixIdx {
		t.Errorf("latest order: Frasier at %d, The Matrix at %d", frasierIdx, matrixIdx)
	}
}

func TestItemsFilterTypeCaseInsensitive(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?includeItemTypes=series&recursive=true", token, "", &response)
	if len(response.Items) != 1 || response.Items[0].Name != "Frasier" {
		t.Errorf("items = %+v", response.Items)
	}

	doJSON(t, r, "GET", "/Items?excludeItemTypes=MOVIE&recursive=true", token, "", &response)
	for _, i := range response.Items {
		if i.Type == "Movie" {
			t.Errorf("movie %q not excluded", i.Name)
		}
	}
}

func TestItemsFilterByStudio(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?recursive=true&studios=warner%20bros.", token, "", &response)
	if len(response.Items) != 1 || response.Items[0].Name != "The Matrix (1999)" {
		t.Errorf("studio filter items = %+v", response.Items)
	}

	movie := response.Items[0]
	if len(movie.Studios) != 1 {
		t.Fatalf("Studios = %+v", movie.Studios)
	}
	doJSON(t, r, "GET", "/Items?recursive=true&studioIds="+movie.Studios[0].ID, token, "", &response)
	if len(response.Items) != 1 || response.Items[0].Name != "The Matrix (1999)" {
		t.Errorf("studioIds filter items = %+v", response.Items)
	}

	doJSON(t, r, "GET", "/Items?recursive=true&studios=Paramount", token, "", &response)
	if len(response.Items) != 0 {
		t.Errorf("unknown studio items = %+v", response.Items)
	}
}

func TestItemsFilterByPremiereDate(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?includeItemTypes=Movie&recursive=true&minPremiereDate=1999-01-01", token, "", &response)
	if len(response.Items) != 1 {
		t.Errorf("minPremiereDate 1999 items = %+v", response.Items)
	}

	doJSON(t, r, "GET", "/Items?includeItemTypes=Movie&recursive=true&minPremiereDate=2000-01-01T00:00:00Z", token, "", &response)
	if len(response.Items) != 0 {
		t.Errorf("minPremiereDate 2000 items = %+v", response.Items)
	}

	doJSON(t, r, "GET", "/Items?includeItemTypes=Movie&recursive=true&maxPremiereDate=1998-12-31", token, "", &response)
	if len(response.Items) != 0 {
		t.Errorf("maxPremiereDate 1998 items = %+v", response.Items)
	}
}

func TestItemsSortByNameAndRuntime(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?recursive=true&sortBy=Name", token, "", &response)
	if len(response.Items) < 2 {
		t.Fatalf("items = %d", len(response.Items))
	}
	if response.Items[0].Name > response.Items[1].Name {
		t.Errorf("name sort: %q before %q", response.Items[0].Name, response.Items[1].Name)
	}

	doJSON(t, r, "GET", "/Items?recursive=true&sortBy=Runtime&sortOrder=Descending", token, "", &response)
	if response.Items[0].Name != "The Matrix (1999)" {
		t.Errorf("runtime sort: %q first", response.Items[0].Name)
	}
}

func TestItemsSortByPremiereDateAndPlayCount(t *testing.T) {
	r := newTestServer(t)
	_, token := authenticate(t, r)

	var response UserItemsResponse
	doJSON(t, r, "GET", "/Items?recursive=true&sortBy=PremiereDate&sortOrder=Descending", token, "", &response)
	if len(response.Items) < 2 || response.Items[0].Name != "The Matrix (1999)" {
		t.Errorf("premiere date sort items = %+v", response.Items)
	}

	movie := findItem(t, response.Items, "The Matrix (1999)")
	if w := doJSON(t, r, "POST", "/UserPlayedItems/"+movie.ID, token, "", nil); w.Code >= 300 {
		t.Fatalf("mark played status = %d", w.Code)
	}
	doJSON(t, r, "GET", "/Items?recursive=true&sortBy=PlayCount&sortOrder=Descending", token, "", &response)
	if response.Items[0].Name != "The Matrix (1999)" {
		t.Errorf("play count sort: %q first", response.Items[0].Name)
	}
}
