package model

// FAQEntry is a question/answer pair from the FAQ knowledge base.
type FAQEntry struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
