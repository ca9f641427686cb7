package host

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/d-fournier/wrappy/errors"
)

// Document is the on-disk form of a round, as exported by the host compiler.
type Document struct {
	Types    []TypeElement `yaml:"types,omitempty" json:"types,omitempty" toml:"types,omitempty"`
	Requests []Request     `yaml:"requests,omitempty" json:"requests,omitempty" toml:"requests,omitempty"`
}

// Format identifies a descriptor document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.WithHint(
			errors.NewInvalidRequestError("unsupported descriptor file %s", path),
			"descriptor files must end in .yaml, .yml, .json or .toml")
	}
}

// Decode parses one document. Unknown keys are rejected in every format.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "failed to parse YAML descriptors")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "failed to parse JSON descriptors")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse TOML descriptors")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.NewInvalidRequestError("unknown TOML keys: %v", undecoded)
		}
	default:
		return nil, errors.NewInvalidRequestError("unknown descriptor format %q", format)
	}

	return &doc, nil
}

// LoadFiles reads and merges descriptor documents into a single round.
// Types and requests keep their order: file by file, then within each file.
func LoadFiles(fs afero.Fs, paths ...string) (*Round, error) {
	if len(paths) == 0 {
		return nil, errors.NewInvalidRequestError("no descriptor files given")
	}

	var merged Document
	for _, path := range paths {
		doc, err := LoadDocument(fs, path)
		if err != nil {
			return nil, err
		}
		for _, t := range doc.Types {
			if t.Locus.File == "" {
				t.Locus.File = path
			}
			merged.Types = append(merged.Types, t)
		}
		for _, req := range doc.Requests {
			if req.Site.Locus.File == "" {
				req.Site.Locus.File = path
			}
			merged.Requests = append(merged.Requests, req)
		}
	}

	round, err := NewRound(merged.Types, merged.Requests)
	if err != nil {
		return nil, errors.Wrap(err, "invalid round")
	}
	return round, nil
}

// LoadDocument reads one descriptor document.
func LoadDocument(fs afero.Fs, path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return doc, nil
}
