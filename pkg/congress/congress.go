package congress

import "fmt"

// Party is a two-valued party code as it appears in the data file.
type Party string

const (
	Republican Party = "R"
	Democrat   Party = "D"
)

// Parties lists both party codes in a stable order.
var Parties = []Party{Democrat, Republican}

// Valid reports whether p is one of the two known party codes.
func (p Party) Valid() bool { return p == Republican || p == Democrat }

// Opposite returns the other party. Unknown codes map to Republican.
func (p Party) Opposite() Party {
	if p == Republican {
		return Democrat
	}
	return Republican
}

// Name returns the long party name used in labels.
func (p Party) Name() string {
	switch p {
	case Republican:
		return "Republican"
	case Democrat:
		return "Democrat"
	default:
		return string(p)
	}
}

// ParseParty converts a scraped cell into a Party.
func ParseParty(s string) (Party, error) {
	p := Party(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown party %q", s)
	}
	return p, nil
}

// Chamber identifies one of the two legislative bodies.
type Chamber string

const (
	Senate Chamber = "senate"
	House  Chamber = "house"
)

// Chambers lists both chambers in render order.
var Chambers = []Chamber{Senate, House}

// Valid reports whether c is a known chamber.
func (c Chamber) Valid() bool { return c == Senate || c == House }

// Title returns the capitalized chamber name used in chart labels.
func (c Chamber) Title() string {
	switch c {
	case Senate:
		return "Senate"
	case House:
		return "House"
	default:
		return string(c)
	}
}

// ParseChamber converts a flag or path segment into a Chamber.
func ParseChamber(s string) (Chamber, error) {
	c := Chamber(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown chamber %q (must be 'senate' or 'house')", s)
	}
	return c, nil
}

// Score is one member's bipartisanship score for a session.
type Score struct {
	Number    int     `json:"number" bson:"number"`
	FirstName string  `json:"firstName" bson:"first_name"`
	LastName  string  `json:"lastName" bson:"last_name"`
	State     string  `json:"stateAbbreviation" bson:"state"`
	Party     Party   `json:"partyAbbreviation" bson:"party"`
	Score     float64 `json:"score" bson:"score"`
}

// FullName returns "First Last".
func (s Score) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	return s.FirstName + " " + s.LastName
}

// Session is one numbered Congress with its per-chamber scores.
type Session struct {
	StartYear    int     `json:"startYear" bson:"start_year"`
	EndYear      *int    `json:"endYear" bson:"end_year,omitempty"`
	SessionNo    int     `json:"sessionNo" bson:"_id"`
	HouseScores  []Score `json:"houseScores,omitzero" bson:"house_scores"`
	SenateScores []Score `json:"senateScores,omitzero" bson:"senate_scores"`
	HouseURL     string  `json:"houseUrl,omitempty" bson:"house_url,omitempty"`
	SenateURL    string  `json:"senateUrl,omitempty" bson:"senate_url,omitempty"`
}

// Scores returns the records for chamber c and whether that chamber is present.
func (s *Session) Scores(c Chamber) ([]Score, bool) {
	switch c {
	case Senate:
		return s.SenateScores, s.SenateScores != nil
	case House:
		return s.HouseScores, s.HouseScores != nil
	default:
		return nil, false
	}
}

// URL returns the source page for chamber c, if known.
func (s *Session) URL(c Chamber) string {
	if c == House {
		return s.HouseURL
	}
	return s.SenateURL
}

// Chambers returns the chambers present in s, senate first.
func (s *Session) Chambers() []Chamber {
	var out []Chamber
	for _, c := range Chambers {
		if _, ok := s.Scores(c); ok {
			out = append(out, c)
		}
	}
	return out
}

// Description returns the heading text, e.g. "117th Congress (2021 - 2022)".
func (s *Session) Description() string {
	years := fmt.Sprintf("%d", s.StartYear)
	if s.EndYear != nil && *s.EndYear != 0 {
		years += fmt.Sprintf(" - %d", *s.EndYear)
	}
	return fmt.Sprintf("%s Congress (%s)", Ordinal(s.SessionNo), years)
}

// Dataset is the full list of sessions in file order.
type Dataset []Session

// Find returns the session with the given number.
func (d Dataset) Find(sessionNo int) (*Session, bool) {
	for i := range d {
		if d[i].SessionNo == sessionNo {
			return &d[i], true
		}
	}
	return nil, false
}

// Year returns a pointer to y, for populating [Session.EndYear].
func Year(y int) *int { return &y }
