package espn

import "time"

const (
	providerName       = "espn"
	defaultBaseURL     = "https://site.api.espn.com/apis/site/v2/sports"
	defaultHTTPTimeout = 10 * time.Second
	defaultUserAgent   = "rtg-sports/1.0"
	// errorBodyLimit caps how much of a failed response is kept as detail.
	errorBodyLimit = 512
)
