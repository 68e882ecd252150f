package workflow

import (
	"context"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/notewind/notewind/internal/api"
	"github.com/notewind/notewind/internal/model"
	appErr "github.com/notewind/notewind/internal/pkg/errors"
)

const (
	MinTextChars     = 100
	MinAudioDuration = 120 * time.Second
)

// INoteCreator is the slice of the API client the workflows submit to.
type INoteCreator interface {
	CreateFromYouTube(ctx context.Context, in api.YouTubeCreateInput) (*model.Note, error)
	CreateFromPDF(ctx context.Context, in api.FileCreateInput) (*model.Note, error)
	CreateFromAudio(ctx context.Context, in api.FileCreateInput) (*model.Note, error)
	CreateFromText(ctx context.Context, in api.TextCreateInput) (*model.Note, error)
}

type YouTubeInput struct {
	Link     string
	FolderID string
	Interest string
}

type PDFUpload struct {
	FileName string
	Data     []byte
	FolderID string
}

type AudioUpload struct {
	FileName string
	Data     []byte
	Duration time.Duration
	FolderID string
}

type TextInput struct {
	Text     string
	FolderID string
	Interest string
}

// Matches the standard watch, shortened and embed URL forms and captures
// the 11-character video id.
var youtubeIDPattern = regexp.MustCompile(`^https?://(?:www\.)?(?:youtube\.com/(?:watch\?(?:[^#]*&)?v=|embed/)|youtu\.be/)([A-Za-z0-9_-]{11})(?:[?&#].*)?$`)

// ExtractVideoID pulls the video id out of a YouTube URL.
func ExtractVideoID(link string) (string, bool) {
	m := youtubeIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func requireOwner(owner func() string) error {
	if owner() == "" {
		return validation(appErr.ErrNoSession, "Please sign in to create notes.")
	}
	return nil
}

func NewYouTubeWorkflow(creator INoteCreator, owner func() string, opts ...Option[YouTubeInput]) *Workflow[YouTubeInput] {
	validate := func(in YouTubeInput) error {
		if err := requireOwner(owner); err != nil {
			return err
		}
		if _, ok := ExtractVideoID(in.Link); !ok {
			return validation(appErr.ErrBadSourceURL, "Please enter a valid YouTube link.")
		}
		return nil
	}
	submit := func(ctx context.Context, in YouTubeInput) (*model.Note, error) {
		return creator.CreateFromYouTube(ctx, api.YouTubeCreateInput{
			UserID:   owner(),
			Link:     in.Link,
			FolderID: in.FolderID,
			Interest: in.Interest,
		})
	}
	return newWorkflow("YouTube", "Failed to create note from YouTube. Please try again.", validate, submit, opts...)
}

func NewPDFWorkflow(creator INoteCreator, owner func() string, opts ...Option[PDFUpload]) *Workflow[PDFUpload] {
	validate := func(in PDFUpload) error {
		if err := requireOwner(owner); err != nil {
			return err
		}
		if in.FileName == "" || len(in.Data) == 0 {
			return validation(appErr.ErrInvalid, "Please choose a PDF file to upload.")
		}
		return nil
	}
	submit := func(ctx context.Context, in PDFUpload) (*model.Note, error) {
		return creator.CreateFromPDF(ctx, api.FileCreateInput{
			UserID:   owner(),
			FileName: in.FileName,
			Data:     in.Data,
			FolderID: in.FolderID,
		})
	}
	return newWorkflow("PDF", "Failed to create note from PDF. Please try again.", validate, submit, opts...)
}

func NewAudioWorkflow(creator INoteCreator, owner func() string, opts ...Option[AudioUpload]) *Workflow[AudioUpload] {
	validate := func(in AudioUpload) error {
		if err := requireOwner(owner); err != nil {
			return err
		}
		if in.FileName == "" || len(in.Data) == 0 {
			return validation(appErr.ErrInvalid, "Please record or choose an audio clip.")
		}
		if in.Duration < MinAudioDuration {
			return validation(appErr.ErrInputTooShort, "Please record at least 2 minutes of audio.")
		}
		return nil
	}
	submit := func(ctx context.Context, in AudioUpload) (*model.Note, error) {
		return creator.CreateFromAudio(ctx, api.FileCreateInput{
			UserID:   owner(),
			FileName: in.FileName,
			Data:     in.Data,
			FolderID: in.FolderID,
		})
	}
	return newWorkflow("Audio", "Failed to create note from audio. Please try again.", validate, submit, opts...)
}

func NewTextWorkflow(creator INoteCreator, owner func() string, opts ...Option[TextInput]) *Workflow[TextInput] {
	validate := func(in TextInput) error {
		if err := requireOwner(owner); err != nil {
			return err
		}
		if utf8.RuneCountInString(in.Text) < MinTextChars {
			return validation(appErr.ErrInputTooShort, "Please provide at least 100 characters of text.")
		}
		return nil
	}
	submit := func(ctx context.Context, in TextInput) (*model.Note, error) {
		return creator.CreateFromText(ctx, api.TextCreateInput{
			UserID:   owner(),
			Text:     in.Text,
			FolderID: in.FolderID,
			Interest: in.Interest,
		})
	}
	return newWorkflow("Text", "Failed to create note from text. Please try again.", validate, submit, opts...)
}
