package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xhad/holocron/internal/models"
)

// MalformedError reports a corpus artifact that exists but does not
// deserialize to an array of characters. Distinct from plain I/O errors
// so callers can tell "re-run extraction" apart from "fix the disk".
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("corpus file %s is malformed: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Store persists the extracted character set as a JSON artifact so the
// encode and import stages can be re-run without re-scraping the source.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Write serializes the characters as an indented JSON array, keeping the
// artifact human-inspectable.
func (s *Store) Write(characters []models.Character) error {
	if characters == nil {
		characters = []models.Character{}
	}

	data, err := json.MarshalIndent(characters, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize corpus: %v", err)
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %v", err)
	}

	return nil
}

func (s *Store) Read() ([]models.Character, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %v", err)
	}

	var characters []models.Character
	if err := json.Unmarshal(data, &characters); err != nil {
		return nil, &MalformedError{Path: s.path, Err: err}
	}

	return characters, nil
}
