package types

// Document is one knowledge object fetched from the store, already decoded.
type Document struct {
	Key     string `json:"key"`
	Content string `json:"content"`
}

// IssueRecord is a tracker issue previously exported to the source bucket.
type IssueRecord struct {
	Key         string `json:"key,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description"`
	Reporter    string `json:"reporter,omitempty"`
	Status      string `json:"status,omitempty"`
}
