package games

// GameState is the coarse lifecycle bucket for a game.
type GameState string

const (
	StatePre  GameState = "pre"
	StateIn   GameState = "in"
	StatePost GameState = "post"
)

// HomeAway marks which side of the matchup a team is on.
type HomeAway string

const (
	SideHome HomeAway = "home"
	SideAway HomeAway = "away"
)

// Refresh intervals in seconds. Live scoreboards poll faster.
const (
	LiveRefreshSeconds = 30
	IdleRefreshSeconds = 180
)

// GameStatus carries the lifecycle state plus display strings.
type GameStatus struct {
	State       GameState `json:"state"`
	Detail      string    `json:"detail"`
	ShortDetail string    `json:"shortDetail"`
}

// TeamScore is one side of a game. Pointer fields serialize as null when
// the upstream value was missing.
type TeamScore struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"displayName"`
	ShortDisplayName string   `json:"shortDisplayName"`
	Abbreviation     string   `json:"abbreviation"`
	Logo             *string  `json:"logo"`
	Score            *int     `json:"score"`
	Record           *string  `json:"record"`
	HomeAway         HomeAway `json:"homeAway"`
}

// Game is the canonical game shape exposed by the service.
type Game struct {
	ID        string     `json:"id"`
	StartTime string     `json:"startTime"`
	Venue     *string    `json:"venue"`
	Broadcast *string    `json:"broadcast"`
	Note      *string    `json:"note"`
	Status    GameStatus `json:"status"`
	Home      TeamScore  `json:"home"`
	Away      TeamScore  `json:"away"`
}

// ScoreboardPayload is the response body for a league scoreboard.
type ScoreboardPayload struct {
	League          string   `json:"league"`
	Label           string   `json:"label"`
	Games           []Game   `json:"games"`
	LastUpdated     string   `json:"lastUpdated"`
	RefreshInterval int      `json:"refreshInterval"`
	Notice          *string  `json:"notice,omitempty"`
	Dates           []string `json:"dates,omitempty"`
}

// RefreshIntervalFor picks the polling cadence for a set of games.
func RefreshIntervalFor(list []Game) int {
	for _, g := range list {
		if g.Status.State == StateIn {
			return LiveRefreshSeconds
		}
	}
	return IdleRefreshSeconds
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
