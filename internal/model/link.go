package model

// Link is a navigation entry attached to paginated responses
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}
