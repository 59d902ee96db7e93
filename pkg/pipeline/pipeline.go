package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xhad/holocron/internal/types"
)

type Stage string

const (
	StageCreateIndex Stage = "create index"
	StageExtract     Stage = "extract"
	StagePersist     Stage = "persist corpus"
	StageEncode      Stage = "encode bulk payload"
	StageImport      Stage = "bulk import"
)

// Backend is the search engine seen from the pipeline: index lifecycle
// plus query.
type Backend interface {
	types.Indexer
	types.Searcher
}

type Config struct {
	Index        string
	SettingsPath string
	BulkPath     string
	OnStage      func(stage Stage)
}

type IngestStats struct {
	Records int
}

// Pipeline sequences the ingestion stages strictly in order and fails
// the whole run on the first failing stage. There is no rollback: an
// index created before a later failure is left in place.
type Pipeline struct {
	config    Config
	extractor types.Extractor
	store     types.CorpusStore
	encoder   types.Encoder
	backend   Backend
}

func New(config Config, extractor types.Extractor, store types.CorpusStore, encoder types.Encoder, backend Backend) *Pipeline {
	return &Pipeline{
		config:    config,
		extractor: extractor,
		store:     store,
		encoder:   encoder,
		backend:   backend,
	}
}

// Setup creates the index from the settings artifact. Settings problems
// (missing file, malformed JSON) are caught before any network call.
func (p *Pipeline) Setup(ctx context.Context) error {
	p.stage(StageCreateIndex)

	settings, err := os.ReadFile(p.config.SettingsPath)
	if err != nil {
		return fmt.Errorf("failed to read index settings: %v", err)
	}
	if !json.Valid(settings) {
		return fmt.Errorf("index settings %s is not valid JSON", p.config.SettingsPath)
	}

	if err := p.backend.CreateIndex(ctx, p.config.Index, settings); err != nil {
		return err
	}

	return nil
}

// Ingest runs the full pipeline: create index, extract, persist the
// corpus artifact, encode the bulk artifact, then stream it to the
// backend.
func (p *Pipeline) Ingest(ctx context.Context) (*IngestStats, error) {
	if err := p.Setup(ctx); err != nil {
		return nil, err
	}

	p.stage(StageExtract)
	characters, err := p.extractor.Extract(ctx)
	if err != nil {
		return nil, err
	}

	p.stage(StagePersist)
	if err := p.store.Write(characters); err != nil {
		return nil, err
	}

	// The encode stage consumes the corpus artifact, not the in-memory
	// slice, same as a re-run from disk.
	characters, err = p.store.Read()
	if err != nil {
		return nil, err
	}

	p.stage(StageEncode)
	if err := p.encoder.WriteFile(p.config.BulkPath, characters); err != nil {
		return nil, err
	}

	p.stage(StageImport)
	payload, err := os.Open(p.config.BulkPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open bulk file: %v", err)
	}
	defer payload.Close()

	if err := p.backend.BulkImport(ctx, p.config.Index, payload); err != nil {
		return nil, err
	}

	return &IngestStats{Records: len(characters)}, nil
}

// Search routes free text to the backend and returns its raw result
// document.
func (p *Pipeline) Search(ctx context.Context, text string) (json.RawMessage, error) {
	return p.backend.Search(ctx, p.config.Index, text)
}

func (p *Pipeline) stage(stage Stage) {
	if p.config.OnStage != nil {
		p.config.OnStage(stage)
	}
}
