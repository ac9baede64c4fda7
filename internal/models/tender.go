package models

// Unknown is the normalizer's placeholder for a column the source row did not carry.
const Unknown = "unknown"

// StatusActive is the only status a freshly scraped tender can have.
const StatusActive = "Active"

// Difficulty is a heuristic estimate of how hard a tender is to win.
// The zero value means the tender has not been classified yet.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Moderate
	Complex
)

// String returns the label written to the shortlist store.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Moderate:
		return "Moderate"
	case Complex:
		return "Complex"
	}
	return ""
}

// Score is the ranking key: lower is easier.
func (d Difficulty) Score() int {
	return int(d)
}

// Valid reports whether d is one of the classified levels.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Complex
}

// Tender is a single procurement notice taken from the portal listing.
type Tender struct {
	Title        string     `json:"title"`
	Deadline     string     `json:"deadline"`  // as shown by the portal
	Published    string     `json:"published"` // as shown by the portal
	Organization string     `json:"organization"`
	Type         string     `json:"type"`
	Reference    string     `json:"reference"`
	Country      string     `json:"country"`
	Status       string     `json:"status"`
	Difficulty   Difficulty `json:"difficulty"`
	URL          string     `json:"url"`
}
