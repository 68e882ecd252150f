// Package mockapi is an in-memory stand-in for the notewind backend. It
// implements the wire contract the client depends on, for tests and for
// `notewind mock` during development. No AI runs here: summaries and
// mind maps are deterministic placeholders.
package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notewind/notewind/internal/model"
)

type Server struct {
	mu      sync.Mutex
	notes   map[string]*model.Note
	folders map[string]*model.Folder
	streaks map[string]string // userID -> last completed day (YYYY-MM-DD)
	now     func() time.Time
}

type Option func(*Server)

// WithClock injects a clock for streak-day tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		notes:   make(map[string]*model.Note),
		folders: make(map[string]*model.Folder),
		streaks: make(map[string]string),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed preloads notes, bypassing the creation endpoints.
func (s *Server) Seed(notes ...model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range notes {
		note := notes[i]
		if note.ID == "" {
			note.ID = uuid.NewString()
		}
		s.notes[note.ID] = &note
	}
}

// Engine builds the gin engine with every route the client calls.
func (s *Server) Engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.Register(&engine.RouterGroup)
	return engine
}

// Register mounts every route on the given group.
func (s *Server) Register(group *gin.RouterGroup) {
	group.GET("/notes", s.listNotes)
	group.GET("/notes/:id", s.getNote)
	group.DELETE("/notes/:id", s.deleteNote)
	group.POST("/notes/youtube", s.createFromYouTube)
	group.POST("/notes/pdf", s.createFromPDF)
	group.POST("/notes/audio", s.createFromAudio)
	group.POST("/notes/text", s.createFromText)
	group.POST("/notes/mindmap", s.generateMindMap)
	group.POST("/users/:id/streak", s.updateStreak)
	group.POST("/folders", s.createFolder)
	group.GET("/folders", s.listFolders)
	group.DELETE("/folders/:id", s.deleteFolder)
	group.POST("/folders/:id/notes", s.addNoteToFolder)
	group.DELETE("/folders/:id/notes/:noteId", s.removeNoteFromFolder)
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func (s *Server) insertNote(note *model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.ID] = note
}

// snapshotNotes returns the matching notes newest-first.
func (s *Server) snapshotNotes(userID, keyword, sourceType string) []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Note, 0, len(s.notes))
	needle := strings.ToLower(keyword)
	for _, note := range s.notes {
		if userID != "" && note.UserID != userID {
			continue
		}
		if sourceType != "" && string(note.SourceType) != sourceType {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(note.Title), needle) &&
			!strings.Contains(strings.ToLower(note.Summary), needle) {
			continue
		}
		out = append(out, *note)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreateDate != out[j].CreateDate {
			return out[i].CreateDate > out[j].CreateDate
		}
		return out[i].ID > out[j].ID
	})
	return out
}
