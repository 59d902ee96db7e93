package models

// Character is one extracted row from the source table. Field order
// matters: it is the order fields appear in the corpus artifact and in
// bulk document lines.
type Character struct {
	Name        string `json:"name"`
	Portrayal   string `json:"portrayal"`
	Description string `json:"description"`
}
