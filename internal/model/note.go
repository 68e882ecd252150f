package model

// SourceType tags the origin of a note's imported content.
type SourceType string

const (
	SourcePDF     SourceType = "pdf"
	SourceAudio   SourceType = "audio"
	SourceYouTube SourceType = "youtube"
	SourceText    SourceType = "text"
)

func (s SourceType) Valid() bool {
	switch s {
	case SourcePDF, SourceAudio, SourceYouTube, SourceText:
		return true
	}
	return false
}

type SectionType string

const (
	SectionText  SectionType = "TEXT"
	SectionList  SectionType = "LIST"
	SectionTable SectionType = "TABLE"
	SectionCode  SectionType = "CODE"
)

// Section is one typed content block of a note. The payload field used
// depends on Type: Content for TEXT/CODE, Items for LIST, Rows for TABLE.
type Section struct {
	Type     SectionType `json:"type"`
	Title    string      `json:"title"`
	Content  string      `json:"content,omitempty"`
	Items    []string    `json:"items,omitempty"`
	Rows     [][]string  `json:"rows,omitempty"`
	Language string      `json:"language,omitempty"`
}

type Note struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Sections   []Section  `json:"sections,omitempty"`
	Source     string     `json:"source"`
	SourceType SourceType `json:"sourceType"`
	CreateDate int64      `json:"createDate"`
	MindMap    *MindMap   `json:"mindmap,omitempty"`
}
