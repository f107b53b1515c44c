package models

// Candidate is a discovered remote location that might reference the target.
// Location is the identity; the label is whatever the search surface showed first.
type Candidate struct {
	Location string `json:"link"`
	Label    string `json:"name"`
}
