package models

// Page is one article of the dump, identified by its position in the stream.
type Page struct {
	ID    int64  `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Link is an internal cross-reference found in the body of the page
// emitted immediately before it.
type Link struct {
	PageID int64  `json:"page_id" yaml:"page_id"`
	Target string `json:"target" yaml:"target"`
}
