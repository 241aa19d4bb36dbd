package model

// ChatResult is the outcome of handling a single user query.
type ChatResult struct {
	Answer string `json:"answer"`
	Intent string `json:"intent"`
}
