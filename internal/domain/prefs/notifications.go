package prefs

// NotificationPreferences controls which alerts a visitor wants.
type NotificationPreferences struct {
	GameStart    bool    `json:"gameStart"`
	FinalScore   bool    `json:"finalScore"`
	BreakingNews bool    `json:"breakingNews"`
	Email        *string `json:"email"`
}

// NotificationUpdate is a partial preferences document; nil fields are unset.
type NotificationUpdate struct {
	GameStart    *bool   `json:"gameStart"`
	FinalScore   *bool   `json:"finalScore"`
	BreakingNews *bool   `json:"breakingNews"`
	Email        *string `json:"email"`
}

// DefaultNotifications returns the preferences used before a visitor saves any.
func DefaultNotifications() NotificationPreferences {
	return NotificationPreferences{
		GameStart:    true,
		FinalScore:   true,
		BreakingNews: false,
	}
}

// ApplyDefaults resolves an update against the defaults. Unset flags take
// the default value and an empty email becomes null.
func (u NotificationUpdate) ApplyDefaults() NotificationPreferences {
	p := DefaultNotifications()
	if u.GameStart != nil {
		p.GameStart = *u.GameStart
	}
	if u.FinalScore != nil {
		p.FinalScore = *u.FinalScore
	}
	if u.BreakingNews != nil {
		p.BreakingNews = *u.BreakingNews
	}
	p.Email = nonEmpty(u.Email)
	return p
}

// Stored resolves a previously saved document. Missing flags read as false.
func (u NotificationUpdate) Stored() NotificationPreferences {
	return NotificationPreferences{
		GameStart:    u.GameStart != nil && *u.GameStart,
		FinalScore:   u.FinalScore != nil && *u.FinalScore,
		BreakingNews: u.BreakingNews != nil && *u.BreakingNews,
		Email:        nonEmpty(u.Email),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
