package weather

import "fmt"

// Location is a single geocoding result. It carries the coordinates used to
// query the forecast API plus the administrative metadata shown to the user.
// Values are never mutated after decoding.
type Location struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Elevation float64  `json:"elevation"`
	Admin1    string   `json:"admin1"`
	Country   string   `json:"country"`
	Postcodes []string `json:"postcodes,omitempty"`

	CountryCode string `json:"country_code"`
	CountryID   int    `json:"country_id"`
}

// String renders the canonical form of a location. Two locations are treated
// as the same place iff their String values are equal; the recent-search
// history de-duplicates on this.
func (l Location) String() string {
	return fmt.Sprintf("%s, %s, %s (%g, %g)", l.Name, l.Admin1, l.Country, l.Latitude, l.Longitude)
}

// Label is the short form shown in the search-result list, e.g.
// "Berlin, Land Berlin (Germany)". Admin1 is omitted when the provider
// returns none.
func (l Location) Label() string {
	if l.Admin1 == "" {
		return fmt.Sprintf("%s (%s)", l.Name, l.Country)
	}
	return fmt.Sprintf("%s, %s (%s)", l.Name, l.Admin1, l.Country)
}
