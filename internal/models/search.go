package models

// SearchResult is a single federated search hit. Only the fields relevant
// to the entity type are populated.
type SearchResult struct {
	Type            string   `db:"type" json:"type"`
	ID              int64    `db:"id" json:"id"`
	Title           string   `db:"title" json:"title"`
	Description     *string  `db:"description" json:"description"`
	Major           *string  `db:"major" json:"major,omitempty"`
	CGPA            *float64 `db:"cgpa" json:"cgpa,omitempty"`
	Company         *string  `db:"company" json:"company,omitempty"`
	CGPARequirement *float64 `db:"cgpa_requirement" json:"cgpa_requirement,omitempty"`
}

// SearchResponse wraps federated search results.
type SearchResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}
