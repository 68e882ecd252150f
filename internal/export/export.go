package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	rendererhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/notewind/notewind/internal/model"
)

// Markdown renders a note as GFM: title, summary, then each section in
// its block form (text, bullet list, table, fenced code).
func Markdown(note *model.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", note.Title)
	if note.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", note.Summary)
	}
	for _, section := range note.Sections {
		if section.Title != "" {
			fmt.Fprintf(&b, "\n## %s\n", section.Title)
		}
		switch section.Type {
		case model.SectionList:
			b.WriteString("\n")
			for _, item := range section.Items {
				fmt.Fprintf(&b, "- %s\n", item)
			}
		case model.SectionTable:
			writeTable(&b, section.Rows)
		case model.SectionCode:
			fmt.Fprintf(&b, "\n```%s\n%s\n```\n", section.Language, strings.TrimRight(section.Content, "\n"))
		default:
			if section.Content != "" {
				fmt.Fprintf(&b, "\n%s\n", section.Content)
			}
		}
	}
	return b.String()
}

func writeTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	b.WriteString("\n")
	for i, row := range rows {
		fmt.Fprintf(b, "| %s |\n", strings.Join(row, " | "))
		if i == 0 {
			cells := make([]string, len(row))
			for j := range cells {
				cells[j] = "---"
			}
			fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
		}
	}
}

type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererhtml.WithUnsafe()),
	)}
}

// HTML renders the note's markdown form to HTML.
func (r *Renderer) HTML(note *model.Note) (string, error) {
	var out bytes.Buffer
	if err := r.md.Convert([]byte(Markdown(note)), &out); err != nil {
		return "", fmt.Errorf("render note: %w", err)
	}
	return out.String(), nil
}
