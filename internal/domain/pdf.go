package domain

// Page is the text of a single PDF page.
type Page struct {
	Number int    `json:"number"` // 1-indexed
	Text   string `json:"text"`
}

// FileInfo represents information about an uploaded file
type FileInfo struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Path     string `json:"path"`
}
