package notflix

// Collection is one library in the overview response.
type Collection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// GenreCount is one entry of the per-collection genre listing.
type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Item is the list view of a movie or show.
type Item struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	SortName   string   `json:"sortName,omitempty"`
	Path       string   `json:"path"`
	BaseUrl    string   `json:"baseurl,omitempty"`
	Type       string   `json:"type"`
	Poster     string   `json:"poster,omitempty"`
	Fanart     string   `json:"fanart,omitempty"`
	Rating     float32  `json:"rating,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Year       int      `json:"year,omitempty"`
	FirstVideo int64    `json:"firstvideo,omitempty"`
	LastVideo  int64    `json:"lastvideo,omitempty"`
}

// MovieDetail is the full DTO of one movie.
type MovieDetail struct {
	Item

	Plot      string  `json:"plot,omitempty"`
	Tagline   string  `json:"tagline,omitempty"`
	MPAA      string  `json:"mpaa,omitempty"`
	Premiered string  `json:"premiered,omitempty"`
	Studio    string  `json:"studio,omitempty"`
	Videos    []Video `json:"videos"`
}

// ShowDetail is the full DTO of one show including all seasons.
type ShowDetail struct {
	Item

	Plot      string   `json:"plot,omitempty"`
	MPAA      string   `json:"mpaa,omitempty"`
	Premiered string   `json:"premiered,omitempty"`
	Studio    string   `json:"studio,omitempty"`
	Seasons   []Season `json:"seasons"`
}

// Video is one playable file of a movie.
type Video struct {
	Path      string `json:"path"`
	Container string `json:"container,omitempty"`
	Size      int64  `json:"size,omitempty"`
	SrtSubs   []Subs `json:"srtsubs,omitempty"`
	VttSubs   []Subs `json:"vttsubs,omitempty"`
}

type Season struct {
	SeasonNo int       `json:"seasonno"`
	Poster   string    `json:"poster,omitempty"`
	Episodes []Episode `json:"episodes,omitempty"`
}

type Episode struct {
	Name      string `json:"name"`
	SeasonNo  int    `json:"seasonno"`
	EpisodeNo int    `json:"episodeno"`
	Double    bool   `json:"double,omitempty"`
	Plot      string `json:"plot,omitempty"`
	Aired     string `json:"aired,omitempty"`
	Video     string `json:"video"`
	Thumb     string `json:"thumb,omitempty"`
	SrtSubs   []Subs `json:"srtsubs,omitempty"`
	VttSubs   []Subs `json:"vttsubs,omitempty"`
}

type Subs struct {
	Lang string `json:"lang"`
	Path string `json:"path"`
}
