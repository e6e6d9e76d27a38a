package client

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
	"github.com/pageza/recipe-video-analyzer/backend/internal/recipe"
)

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("an upload is already in progress")
	// ErrNoFile is returned when nothing was selected.
	ErrNoFile = errors.New("no file selected")
)

// Uploader sends one video and returns the decoded reply
type Uploader interface {
	Upload(ctx context.Context, fileName string, r io.Reader) (map[string]any, error)
}

// Session is the state behind an upload form: one outstanding request at a time.
type Session struct {
	uploader Uploader

	mu       sync.Mutex
	selected string
	loading  bool
	response map[string]any
	err      string
}

// NewSession creates a new Session instance
func NewSession(u Uploader) *Session {
	return &Session{uploader: u}
}

// Select records the chosen file name and clears the previous outcome
func (s *Session) Select(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = name
	s.response = nil
	s.err = ""
}

// Submit uploads r. It refuses without side effects while another upload runs
// or when no file was given.
func (s *Session) Submit(ctx context.Context, name string, r io.Reader) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	if name == "" || r == nil {
		s.mu.Unlock()
		return ErrNoFile
	}
	s.selected = name
	s.loading = true
	s.response = nil
	s.err = ""
	s.mu.Unlock()

	resp, err := s.uploader.Upload(ctx, name, r)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return nil
	}
	s.response = resp
	return nil
}

// Loading reports whether an upload is in flight
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// RecipeView is a recipe extracted from a successful response
type RecipeView struct {
	Data   model.RecipeData
	Object map[string]any
}

// Result says what a UI should render
type Result struct {
	Selected string
	Loading  bool
	// Recipe is set when the response carried an extractable recipe
	Recipe *RecipeView
	// Raw is the whole response when no recipe could be extracted
	Raw map[string]any
	// Error is the transport failure text, shown independently
	Error string
}

// View derives the rendering decision from the current state
func (s *Session) View() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Render(s.response, s.err, s.selected, s.loading)
}

// Render applies the display rules to a response and an error text
func Render(response map[string]any, errText, selected string, loading bool) Result {
	res := Result{Selected: selected, Loading: loading, Error: errText}
	if response == nil {
		return res
	}
	if status, _ := response["status"].(string); status == model.StatusSuccess {
		if text, ok := response["gemini_response"].(string); ok {
			if obj, ok := recipe.Extract(text); ok {
				res.Recipe = &RecipeView{Data: recipe.View(obj), Object: obj}
				return res
			}
		}
	}
	res.Raw = response
	return res
}
