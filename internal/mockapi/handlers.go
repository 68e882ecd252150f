package mockapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notewind/notewind/internal/model"
	"github.com/notewind/notewind/internal/pkg/errcode"
	"github.com/notewind/notewind/internal/workflow"
)

func (s *Server) listNotes(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 8)
	notes := s.snapshotNotes(c.Query("userId"), c.Query("keyword"), c.Query("sourceType"))

	start := (page - 1) * limit
	if start < 0 {
		start = 0
	}
	if start > len(notes) {
		start = len(notes)
	}
	end := start + limit
	if end > len(notes) {
		end = len(notes)
	}
	success(c, gin.H{"notes": notes[start:end]})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if value := c.Query(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func (s *Server) getNote(c *gin.Context) {
	s.mu.Lock()
	note, ok := s.notes[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, errcode.ErrNotFound, "note not found")
		return
	}
	success(c, gin.H{"note": note})
}

func (s *Server) deleteNote(c *gin.Context) {
	s.mu.Lock()
	_, ok := s.notes[c.Param("id")]
	delete(s.notes, c.Param("id"))
	for _, folder := range s.folders {
		kept := folder.Notes[:0]
		for _, note := range folder.Notes {
			if note.ID != c.Param("id") {
				kept = append(kept, note)
			}
		}
		folder.Notes = kept
	}
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, errcode.ErrNotFound, "note not found")
		return
	}
	success(c, gin.H{"deleted": true})
}

type youtubeRequest struct {
	UserID   string `json:"userId"`
	Link     string `json:"link"`
	FolderID string `json:"folderId"`
	Interest string `json:"interest"`
}

func (s *Server) createFromYouTube(c *gin.Context) {
	var req youtubeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.UserID == "" {
		fail(c, http.StatusBadRequest, errcode.ErrInvalid, "userId required")
		return
	}
	videoID, ok := workflow.ExtractVideoID(req.Link)
	if !ok {
		fail(c, http.StatusBadRequest, errcode.ErrBadSourceURL, "The video link could not be processed.")
		return
	}
	note := s.buildNote(req.UserID, "YouTube Video "+videoID, req.Link, model.SourceYouTube)
	s.insertNote(note)
	s.attachToFolder(req.FolderID, note)
	success(c, gin.H{"note": note})
}

func (s *Server) createFromPDF(c *gin.Context) {
	s.createFromUpload(c, "pdf", model.SourcePDF)
}

func (s *Server) createFromAudio(c *gin.Context) {
	s.createFromUpload(c, "audio", model.SourceAudio)
}

func (s *Server) createFromUpload(c *gin.Context, field string, sourceType model.SourceType) {
	userID := c.PostForm("userId")
	if userID == "" {
		fail(c, http.StatusBadRequest, errcode.ErrInvalid, "userId required")
		return
	}
	header, err := c.FormFile(field)
	if err != nil {
		fail(c, http.StatusBadRequest, errcode.ErrInvalidFile, fmt.Sprintf("%s file required", field))
		return
	}
	file, err := header.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, errcode.ErrInvalidFile, "unreadable upload")
		return
	}
	defer file.Close()
	if _, err := io.Copy(io.Discard, file); err != nil {
		fail(c, http.StatusBadRequest, errcode.ErrInvalidFile, "unreadable upload")
		return
	}
	note := s.buildNote(userID, header.Filename, header.Filename, sourceType)
	s.insertNote(note)
	s.attachToFolder(c.PostForm("folderId"), note)
	success(c, gin.H{"note": note})
}

type textRequest struct {
	UserID   string `json:"userId"`
	Text     string `json:"text"`
	FolderID string `json:"folderId"`
	Interest string `json:"interest"`
}

func (s *Server) createFromText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.UserID == "" {
		fail(c, http.StatusBadRequest, errcode.ErrInvalid, "userId required")
		return
	}
	if utf8.RuneCountInString(req.Text) < workflow.MinTextChars {
		fail(c, http.StatusBadRequest, errcode.ErrTextTooShort, "Text must be at least 100 characters.")
		return
	}
	title := req.Text
	if utf8.RuneCountInString(title) > 40 {
		title = string([]rune(title)[:40])
	}
	note := s.buildNote(req.UserID, strings.TrimSpace(title), "text", model.SourceText)
	s.insertNote(note)
	s.attachToFolder(req.FolderID, note)
	success(c, gin.H{"note": note})
}

func (s *Server) buildNote(userID, title, source string, sourceType model.SourceType) *model.Note {
	return &model.Note{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      title,
		Summary:    "Summary of " + title,
		Source:     source,
		SourceType: sourceType,
		CreateDate: s.now().UnixMilli(),
		Sections: []model.Section{
			{Type: model.SectionText, Title: "Overview", Content: "Overview of " + title},
			{Type: model.SectionList, Title: "Key Points", Items: []string{"point one", "point two"}},
		},
	}
}

type mindMapRequest struct {
	NoteID string `json:"noteId"`
}

func (s *Server) generateMindMap(c *gin.Context) {
	var req mindMapRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NoteID == "" {
		fail(c, http.StatusBadRequest, errcode.ErrInvalid, "noteId required")
		return
	}
	s.mu.Lock()
	note, ok := s.notes[req.NoteID]
	if ok && note.MindMap == nil {
		nodes := []model.MindMapNode{{ID: "root", Label: note.Title, Type: model.NodeRoot}}
		for i, section := range note.Sections {
			if section.Title == "" {
				continue
			}
			nodes = append(nodes, model.MindMapNode{
				ID:       fmt.Sprintf("n%d", i+1),
				Label:    section.Title,
				Type:     model.NodeConcept,
				ParentID: "root",
			})
		}
		note.MindMap = &model.MindMap{Root: "root", Nodes: nodes}
	}
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, errcode.ErrNotFound, "note not found")
		return
	}
	success(c, gin.H{"mindmap": note.MindMap})
}

func (s *Server) updateStreak(c *gin.Context) {
	userID := c.Param("id")
	today := s.now().UTC().Format("2006-01-02")
	s.mu.Lock()
	last := s.streaks[userID]
	done := last == today
	if !done {
		s.streaks[userID] = today
	}
	s.mu.Unlock()
	next := s.now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	success(c, model.StreakResult{
		StreakUpdated:         !done,
		AlreadyCompletedToday: done,
		NextAvailableAt:       next.Format(time.RFC3339),
	})
}
