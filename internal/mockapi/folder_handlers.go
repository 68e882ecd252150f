package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notewind/notewind/internal/model"
	"github.com/notewind/notewind/internal/pkg/errcode"
)

type folderRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Color  string `json:"color"`
}

func (s *Server) createFolder(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.UserID == "" || req.Title == "" {
		fail(c, http.StatusBadRequest, errcode.ErrInvalid, "userId and title required")
		return
	}
	folder := &model.Folder{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		Title:      req.Title,
		Color:      req.Color,
		CreateDate: s.now().UnixMilli(),
	}
	s.mu.Lock()
	s.folders[folder.ID] = folder
	s.mu.Unlock()
	success(c, gin.H{"folder": folder})
}

func (s *Server) listFolders(c *gin.Context) {
	userID := c.Query("userId")
	s.mu.Lock()
	out := make([]model.Folder, 0, len(s.folders))
	for _, folder := range s.folders {
		if userID == "" || folder.UserID == userID {
			out = append(out, *folder)
		}
	}
	s.mu.Unlock()
	success(c, gin.H{"folders": out})
}

func (s *Server) deleteFolder(c *gin.Context) {
	s.mu.Lock()
	_, ok := s.folders[c.Param("id")]
	delete(s.folders, c.Param("id"))
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, errcode.ErrNotFound, "folder not found")
		return
	}
	// Deleting a folder never deletes its notes.
	success(c, gin.H{"deleted": true})
}

type membershipRequest struct {
	NoteID string `json:"noteId"`
}

func (s *Server) addNoteToFolder(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NoteID == "" {
		fail(c, http.StatusBadRequest, errcode.ErrInvalid, "noteId required")
		return
	}
	s.mu.Lock()
	folder, ok := s.folders[c.Param("id")]
	note, noteOK := s.notes[req.NoteID]
	if ok && noteOK {
		folder.Notes = append(folder.Notes, *note)
	}
	s.mu.Unlock()
	if !ok || !noteOK {
		fail(c, http.StatusNotFound, errcode.ErrNotFound, "folder or note not found")
		return
	}
	success(c, gin.H{"folder": folder})
}

func (s *Server) removeNoteFromFolder(c *gin.Context) {
	s.mu.Lock()
	folder, ok := s.folders[c.Param("id")]
	if ok {
		kept := folder.Notes[:0]
		for _, note := range folder.Notes {
			if note.ID != c.Param("noteId") {
				kept = append(kept, note)
			}
		}
		folder.Notes = kept
	}
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, errcode.ErrNotFound, "folder not found")
		return
	}
	success(c, gin.H{"folder": folder})
}

// attachToFolder links a freshly created note when the creation carried a
// folder hint. Unknown folder ids are ignored, matching the backend.
func (s *Server) attachToFolder(folderID string, note *model.Note) {
	if folderID == "" {
		return
	}
	s.mu.Lock()
	if folder, ok := s.folders[folderID]; ok {
		folder.Notes = append(folder.Notes, *note)
	}
	s.mu.Unlock()
}
