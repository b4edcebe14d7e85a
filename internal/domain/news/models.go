package news

// RefreshSeconds is the polling cadence advertised with news payloads.
const RefreshSeconds = 300

// Article is a normalized news item for one league.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	League      string `json:"league"`
	PublishedAt string `json:"publishedAt"`
	Author      string `json:"author,omitempty"`
	URL         string `json:"url"`
}

// Payload is the response body for the news feed.
type Payload struct {
	Articles        []Article `json:"articles"`
	RefreshInterval int       `json:"refreshInterval"`
}

// NewPayload wraps articles with the default refresh interval.
func NewPayload(articles []Article) Payload {
	if articles == nil {
		articles = []Article{}
	}
	return Payload{Articles: articles, RefreshInterval: RefreshSeconds}
}
