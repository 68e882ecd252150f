package export_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notewind/notewind/internal/export"
	"github.com/notewind/notewind/internal/model"
)

func sampleNote() *model.Note {
	return &model.Note{
		ID:      "n1",
		Title:   "Photosynthesis",
		Summary: "How plants turn light into sugar.",
		Sections: []model.Section{
			{Type: model.SectionText, Title: "Overview", Content: "Light reactions happen in the thylakoid."},
			{Type: model.SectionList, Title: "Key Points", Items: []string{"chlorophyll absorbs light", "water is split"}},
			{Type: model.SectionTable, Title: "Stages", Rows: [][]string{
				{"Stage", "Location"},
				{"Light reactions", "Thylakoid"},
				{"Calvin cycle", "Stroma"},
			}},
			{Type: model.SectionCode, Title: "Equation", Language: "text", Content: "6CO2 + 6H2O -> C6H12O6 + 6O2\n"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := export.Markdown(sampleNote())

	require.Contains(t, md, "# Photosynthesis\n")
	require.Contains(t, md, "How plants turn light into sugar.")
	require.Contains(t, md, "## Overview\n")
	require.Contains(t, md, "- chlorophyll absorbs light\n- water is split\n")
	require.Contains(t, md, "| Stage | Location |\n| --- | --- |\n| Light reactions | Thylakoid |")
	require.Contains(t, md, "```text\n6CO2 + 6H2O -> C6H12O6 + 6O2\n```")
}

func TestMarkdownMinimalNote(t *testing.T) {
	md := export.Markdown(&model.Note{Title: "Untitled thoughts"})
	require.Equal(t, "# Untitled thoughts\n", md)
}

func TestMarkdownEmptyTableSkipped(t *testing.T) {
	md := export.Markdown(&model.Note{
		Title:    "Edge",
		Sections: []model.Section{{Type: model.SectionTable, Title: "Empty"}},
	})
	require.Contains(t, md, "## Empty\n")
	require.NotContains(t, md, "|")
}

func TestHTML(t *testing.T) {
	html, err := export.NewRenderer().HTML(sampleNote())
	require.NoError(t, err)

	require.Contains(t, html, "<h1 id=\"photosynthesis\">Photosynthesis</h1>")
	require.Contains(t, html, "<ul>")
	require.Contains(t, html, "<li>chlorophyll absorbs light</li>")
	require.Contains(t, html, "<table>")
	require.Contains(t, html, "<th>Stage</th>")
	require.Contains(t, html, "<code class=\"language-text\">")
}
