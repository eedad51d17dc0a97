package catalog

import (
	"fmt"
	"os"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/logger"
)

// Entry describes one selectable remote model.
type Entry struct {
	ID    string `koanf:"id"`
	Name  string `koanf:"name"`
	Notes string `koanf:"notes"`
}

// Catalog is the immutable, ordered set of models the bot may switch between.
type Catalog struct {
	entries []Entry
	byID    map[string]Entry
}

// Load reads the model catalog from a TOML file with [[models]] entries.
// A missing or malformed file degrades to a single entry synthesized from
// defaultModel. A well-formed file declaring zero models is an error: that
// is a broken configuration, not an empty preference.
func Load(path, defaultModel string, log logger.Logger) (*Catalog, error) {
	if path == "" {
		return fallback(defaultModel), nil
	}

	if _, err := os.Stat(path); err != nil {
		log.WithError(err).WithField("path", path).Warn("Models file not found, using default model only")
		return fallback(defaultModel), nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		log.WithError(err).WithField("path", path).Warn("Failed to parse models file, using default model only")
		return fallback(defaultModel), nil
	}

	var entries []Entry
	if err := k.Unmarshal("models", &entries); err != nil {
		log.WithError(err).WithField("path", path).Warn("Failed to decode models file, using default model only")
		return fallback(defaultModel), nil
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("models file %s declares no models", path)
	}

	byID := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("models file %s contains an entry without id", path)
		}
		if _, exists := byID[entry.ID]; exists {
			return nil, fmt.Errorf("models file %s declares model %q twice", path, entry.ID)
		}
		byID[entry.ID] = entry
	}

	log.WithFields(logger.Fields{
		"path":   path,
		"models": len(entries),
	}).Info("Model catalog loaded")

	return &Catalog{entries: entries, byID: byID}, nil
}

func fallback(defaultModel string) *Catalog {
	entry := Entry{ID: defaultModel, Name: defaultModel}
	return &Catalog{
		entries: []Entry{entry},
		byID:    map[string]Entry{defaultModel: entry},
	}
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Catalog) Get(id string) (Entry, bool) {
	entry, ok := c.byID[id]
	return entry, ok
}

// Entries returns the catalog in declaration order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry{}, c.entries...)
}

func (c *Catalog) First() Entry {
	return c.entries[0]
}
