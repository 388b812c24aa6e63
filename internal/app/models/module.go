package models

// Module is a catalog entry. Code is the human-facing identifier and
// the join key enrollments point at; it is not unique, duplicate codes
// are accepted and preserved. Immutable after creation.
type Module struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Semester int    `json:"semester"`
	Lecturer string `json:"lecturer"`
}
