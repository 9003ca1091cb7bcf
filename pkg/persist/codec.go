package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is the wire layout of a persisted snapshot.
type Document struct {
	Notes         []NoteDocument `json:"notes" yaml:"notes"`
	SortBy        string         `json:"sortBy" yaml:"sortBy"`
	SortDirection string         `json:"sortDirection" yaml:"sortDirection"`
}

// NoteDocument is the wire layout of a note. Timestamps are ISO-8601
// strings with nanosecond precision.
type NoteDocument struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Content   string   `json:"content" yaml:"content"`
	CreatedAt string   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string   `json:"updatedAt" yaml:"updatedAt"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Codec defines how a Document is turned into bytes and back.
type Codec interface {
	Name() string
	Marshal(doc Document) ([]byte, error)
	Unmarshal(data []byte, doc *Document) error
}

// CodecFor returns the codec registered under name ("json" or "yaml").
func CodecFor(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	}
	return nil, fmt.Errorf("unknown codec: %s", name)
}

// --- JSON Codec ---

// JSONCodec handles the default JSON layout.
type JSONCodec struct {
	// Indent pretty-prints the output.
	Indent bool
}

func (JSONCodec) Name() string { return "json" }

func (c JSONCodec) Marshal(doc Document) ([]byte, error) {
	if c.Indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// Unmarshal accepts exactly one JSON object; trailing data and a bare
// null are rejected.
func (JSONCodec) Unmarshal(data []byte, doc *Document) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("invalid json: document is not an object")
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid json: trailing data after document")
	}
	return nil
}

// --- YAML Codec ---

// YAMLCodec stores the snapshot as YAML, handy for hand-edited data dirs.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal accepts exactly one YAML mapping document.
func (YAMLCodec) Unmarshal(data []byte, doc *Document) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := decoder.Decode(&root); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		return fmt.Errorf("invalid yaml: more than one document")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 || root.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("invalid yaml: document is not a mapping")
	}
	if err := root.Content[0].Decode(doc); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return nil
}
