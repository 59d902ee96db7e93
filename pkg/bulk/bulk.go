package bulk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/xhad/holocron/internal/models"
)

// action is the metadata line preceding each document line in the bulk
// payload.
type action struct {
	Index actionMeta `json:"index"`
}

type actionMeta struct {
	Index string `json:"_index"`
	ID    string `json:"_id"`
}

// Encoder turns a character corpus into the backend's newline-delimited
// bulk format: one metadata line, then one document line, per character.
// Every document gets a fresh random identifier, so repeated imports add
// documents rather than overwrite them.
type Encoder struct {
	index string
	newID func() string
}

func NewEncoder(index string) *Encoder {
	return &Encoder{
		index: index,
		newID: func() string { return uuid.NewString() },
	}
}

// Encode writes the full payload for characters to w. An empty corpus
// writes nothing, which the backend accepts as a zero-operation request.
func (e *Encoder) Encode(w io.Writer, characters []models.Character) error {
	for i := range characters {
		pair, err := e.encodePair(&characters[i])
		if err != nil {
			return err
		}
		if _, err := w.Write(pair); err != nil {
			return fmt.Errorf("failed to write bulk payload: %v", err)
		}
	}
	return nil
}

// WriteFile persists the payload as the bulk artifact file.
func (e *Encoder) WriteFile(path string, characters []models.Character) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bulk file: %v", err)
	}
	defer file.Close()

	if err := e.Encode(file, characters); err != nil {
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write bulk file: %v", err)
	}
	return nil
}

// Reader returns a lazy payload producer: each metadata/document pair is
// marshalled only when the transport asks for more bytes, so peak memory
// stays bounded no matter how large the corpus is.
func (e *Encoder) Reader(characters []models.Character) io.Reader {
	return &payloadReader{encoder: e, characters: characters}
}

func (e *Encoder) encodePair(character *models.Character) ([]byte, error) {
	var buf bytes.Buffer

	meta, err := json.Marshal(action{Index: actionMeta{Index: e.index, ID: e.newID()}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode bulk action: %v", err)
	}
	buf.Write(meta)
	buf.WriteByte('\n')

	doc, err := json.Marshal(character)
	if err != nil {
		return nil, fmt.Errorf("failed to encode character: %v", err)
	}
	buf.Write(doc)
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

type payloadReader struct {
	encoder    *Encoder
	characters []models.Character
	next       int
	buf        bytes.Buffer
	err        error
}

func (r *payloadReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	for r.buf.Len() == 0 {
		if r.next >= len(r.characters) {
			return 0, io.EOF
		}

		pair, err := r.encoder.encodePair(&r.characters[r.next])
		if err != nil {
			r.err = err
			return 0, err
		}
		r.buf.Write(pair)
		r.next++
	}

	return r.buf.Read(p)
}
