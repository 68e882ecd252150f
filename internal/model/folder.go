package model

// Folder groups notes by reference; membership changes never touch the
// notes themselves.
type Folder struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Title      string `json:"title"`
	Color      string `json:"color"`
	Notes      []Note `json:"notes,omitempty"`
	CreateDate int64  `json:"createDate"`
}
