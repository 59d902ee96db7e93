package types

import (
	"context"
	"encoding/json"
	"io"

	"github.com/xhad/holocron/internal/models"
)

// Core interfaces
type Extractor interface {
	Extract(ctx context.Context) ([]models.Character, error)
}

type CorpusStore interface {
	Write(characters []models.Character) error
	Read() ([]models.Character, error)
}

type Encoder interface {
	Encode(w io.Writer, characters []models.Character) error
	WriteFile(path string, characters []models.Character) error
}

type Indexer interface {
	CreateIndex(ctx context.Context, name string, settings []byte) error
	BulkImport(ctx context.Context, name string, payload io.Reader) error
}

type Searcher interface {
	Search(ctx context.Context, index string, text string) (json.RawMessage, error)
}
