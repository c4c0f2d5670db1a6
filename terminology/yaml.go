package terminology

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gofhir/codes/pkg/vocabulary"
)

// vocabularyFile is one YAML document describing a vocabulary.
type vocabularyFile struct {
	Name       string      `yaml:"name"`
	URL        string      `yaml:"url"`
	System     string      `yaml:"system,omitempty"`
	Extensible bool        `yaml:"extensible,omitempty"`
	Codes      []codeEntry `yaml:"codes"`
}

type codeEntry struct {
	Code       string `yaml:"code"`
	Display    string `yaml:"display,omitempty"`
	Definition string `yaml:"definition,omitempty"`
}

// LoadYAML parses one or more YAML documents, each describing a
// vocabulary. Unknown keys are rejected. Options override the values in
// the file; WithName only makes sense for a single document.
func LoadYAML(data []byte, opts ...Option) ([]*vocabulary.Vocabulary[string], error) {
	o := newOptions(opts)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var out []*vocabulary.Vocabulary[string]
	for doc := 0; ; doc++ {
		var f vocabularyFile
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse YAML document %d: %w", doc, err)
		}

		v, err := f.vocabulary(o)
		if err != nil {
			return nil, fmt.Errorf("YAML document %d: %w", doc, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no vocabulary found in YAML")
	}
	return out, nil
}

func (f *vocabularyFile) vocabulary(o *options) (*vocabulary.Vocabulary[string], error) {
	name := f.Name
	if o.name != "" {
		name = o.name
	}
	if name == "" {
		name = f.URL
	}
	if name == "" {
		return nil, fmt.Errorf("vocabulary has neither name nor url")
	}

	entries := make([]vocabulary.Entry[string], 0, len(f.Codes))
	for _, c := range f.Codes {
		entries = append(entries, vocabulary.Entry[string]{
			Member:     c.Code,
			Wire:       c.Code,
			Display:    c.Display,
			Definition: c.Definition,
		})
	}
	return vocabulary.Define(name, f.URL, entries,
		vocabulary.WithSystem(f.System),
		vocabulary.WithExtensible(f.Extensible || o.extensible))
}
