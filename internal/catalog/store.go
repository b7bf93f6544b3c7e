package catalog

import (
	"os"
	"path/filepath"

	"steuer-chat/internal/config"

	"github.com/sirupsen/logrus"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Store resolves and loads a catalog file from disk, falling back to the
// embedded default when no file is found.
type Store struct {
	CatalogFile string
}

// NewStore creates a store for the given catalog file name. An empty name
// means "catalog.yaml" in the standard locations.
func NewStore(catalogFile string) *Store {
	return &Store{CatalogFile: catalogFile}
}

// FindConfigFile looks for a catalog file in standard locations.
func (s *Store) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "steuer-chat", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load returns the catalog from disk, or the embedded default when the
// file does not exist. A file that exists but fails to parse is an error,
// not a silent fallback.
func (s *Store) Load() (*Catalog, error) {
	filename := s.CatalogFile
	if filename == "" {
		filename = "catalog.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Catalog file not found, using embedded default: %s", filename)
			return Default(), nil
		}
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded deduction catalog from %s", filePath)
	return cat, nil
}
