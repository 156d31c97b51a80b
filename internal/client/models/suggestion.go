package models

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
)

// Suggestion is one follow-up recommendation for a contact.
type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// LeadScoreResponse is the body of the lead score endpoint.
type LeadScoreResponse struct {
	LeadScore int `json:"lead_score"`
}

// SuggestionsResponse is the body of the follow-up suggestions endpoint.
type SuggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}
