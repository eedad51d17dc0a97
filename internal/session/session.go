package session

import (
	"errors"
	"sync"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/catalog"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/logger"
)

// Mode selects how incoming text is turned into an AI request.
type Mode string

const (
	ModePrompt Mode = "PROMPT"
	ModeCommit Mode = "COMMIT"
	ModeChat   Mode = "CHAT"
)

var ErrModelNotFound = errors.New("model not found in catalog")

// Store holds the process-wide mutable settings: the active mode and the
// active model id. The active model always refers to a catalog entry.
// Reads and writes are mutex-guarded; composition snapshots the pair once
// per exchange so a later switch cannot relabel an in-flight request.
type Store struct {
	mu      sync.Mutex
	mode    Mode
	modelID string
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog, defaultModel string, log logger.Logger) *Store {
	modelID := defaultModel
	if !cat.Has(defaultModel) {
		modelID = cat.First().ID
		log.WithFields(logger.Fields{
			"default_model": defaultModel,
			"fallback":      modelID,
		}).Warn("Default model not in catalog, using first catalog entry")
	}

	return &Store{
		mode:    ModePrompt,
		modelID: modelID,
		catalog: cat,
	}
}

func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Store) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

func (s *Store) ModelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modelID
}

// SetModel switches the active model to id. The id must match a catalog
// entry exactly; otherwise the state is unchanged and ErrModelNotFound is
// returned.
func (s *Store) SetModel(id string) error {
	if !s.catalog.Has(id) {
		return ErrModelNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modelID = id
	return nil
}

// Snapshot returns the current mode and model as one consistent pair.
func (s *Store) Snapshot() (Mode, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode, s.modelID
}

func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}
