package notes

import (
	"bytes"
	"encoding/json"

	"github.com/idilsaglam/notes/internal/model"
)

// Encode serializes the collection into its persisted form: a compact JSON
// array of {title,text,color,id} objects. A nil collection encodes as [].
func Encode(notes []model.Note) ([]byte, error) {
	if notes == nil {
		notes = []model.Note{}
	}
	return json.Marshal(notes)
}

// Decode parses the persisted form. A JSON null or blank input decodes to an
// empty collection.
func Decode(data []byte) ([]model.Note, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Note{}, nil
	}
	var notes []model.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}
