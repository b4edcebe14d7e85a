package prefs

import "errors"

// Category groups favorites.
type Category string

const (
	CategoryTeam   Category = "team"
	CategoryLeague Category = "league"
)

var (
	ErrInvalidFavorite = errors.New("favorite requires id, label and category")
	ErrMissingID       = errors.New("favorite id is required")
)

// Favorite is a followed team or league.
type Favorite struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Validate reports whether the favorite has every required field.
func (f Favorite) Validate() error {
	if f.ID == "" || f.Label == "" {
		return ErrInvalidFavorite
	}
	if f.Category != CategoryTeam && f.Category != CategoryLeague {
		return ErrInvalidFavorite
	}
	return nil
}

// FilterValid drops malformed entries, preserving order.
func FilterValid(list []Favorite) []Favorite {
	out := make([]Favorite, 0, len(list))
	for _, f := range list {
		if f.Validate() == nil {
			out = append(out, f)
		}
	}
	return out
}

// AddFavorite appends fav unless an entry with the same id exists.
func AddFavorite(list []Favorite, fav Favorite) ([]Favorite, error) {
	if err := fav.Validate(); err != nil {
		return list, err
	}
	for _, existing := range list {
		if existing.ID == fav.ID {
			return list, nil
		}
	}
	out := make([]Favorite, 0, len(list)+1)
	out = append(out, list...)
	return append(out, fav), nil
}

// RemoveFavorite drops every entry with the given id.
func RemoveFavorite(list []Favorite, id string) ([]Favorite, error) {
	if id == "" {
		return list, ErrMissingID
	}
	out := make([]Favorite, 0, len(list))
	for _, f := range list {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out, nil
}
