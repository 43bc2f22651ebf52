package store

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/pkg/fileutil"
)

// Format is an export file encoding.
type Format string

// Supported export formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension. A path without an
// extension is JSON.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Wrapf(errors.ErrUnknownFormat, "extension %q", ext)
	}
}

func writeExport(path string, f Format, doc *ExportDocument) error {
	switch f {
	case FormatJSON:
		return fileutil.AtomicWriteJSON(path, doc)
	case FormatYAML:
		return fileutil.AtomicWriteYAML(path, doc)
	case FormatTOML:
		return fileutil.AtomicWriteTOML(path, newTOMLExport(doc))
	default:
		return errors.Wrapf(errors.ErrUnknownFormat, "format %q", f)
	}
}

func decodeExport(data []byte, f Format) (*ExportDocument, error) {
	var doc ExportDocument
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		var in tomlExport
		if err = toml.NewDecoder(bytes.NewReader(data)).Decode(&in); err == nil {
			err = in.into(&doc)
		}
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "format %q", f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s import", f)
	}
	return &doc, nil
}

// tomlRecord mirrors Record for TOML. go-toml encodes a *time.Time through
// its TextMarshaler as a quoted string, so SavedAt is held as an interface
// that carries a time.Time and encodes as a native datetime.
type tomlRecord struct {
	Name      string `toml:"name"`
	Installed bool   `toml:"installed"`
	Platform  string `toml:"platform"`
	Version   string `toml:"version,omitempty"`
	Source    string `toml:"source,omitempty"`
	SavedAt   any    `toml:"savedAt,omitempty"`
}

type tomlExport struct {
	Apps         []tomlRecord `toml:"apps"`
	ExportedAt   time.Time    `toml:"exportedAt"`
	ExportedFrom string       `toml:"exportedFrom"`
}

func newTOMLExport(doc *ExportDocument) *tomlExport {
	out := &tomlExport{
		Apps:         make([]tomlRecord, len(doc.Apps)),
		ExportedAt:   doc.ExportedAt,
		ExportedFrom: doc.ExportedFrom,
	}
	for i, r := range doc.Apps {
		tr := tomlRecord{
			Name:      r.Name,
			Installed: r.Installed,
			Platform:  string(r.Platform),
			Version:   r.Version,
			Source:    r.Source,
		}
		if r.SavedAt != nil {
			tr.SavedAt = r.SavedAt.UTC()
		}
		out.Apps[i] = tr
	}
	return out
}

func (e *tomlExport) into(doc *ExportDocument) error {
	doc.ExportedAt = e.ExportedAt
	doc.ExportedFrom = e.ExportedFrom
	doc.Apps = make([]Record, len(e.Apps))
	for i, tr := range e.Apps {
		savedAt, err := tomlTime(tr.SavedAt)
		if err != nil {
			return errors.Wrapf(err, "apps[%d].savedAt", i)
		}
		doc.Apps[i] = Record{
			Name:      tr.Name,
			Installed: tr.Installed,
			Platform:  platform.Tag(tr.Platform),
			Version:   tr.Version,
			Source:    tr.Source,
			SavedAt:   savedAt,
		}
	}
	return nil
}

// tomlTime accepts an offset datetime, a local datetime taken as UTC, or an
// RFC 3339 string.
func tomlTime(v any) (*time.Time, error) {
	var t time.Time
	switch x := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		t = x
	case toml.LocalDateTime:
		t = x.AsTime(time.UTC)
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, x)
		if err != nil {
			return nil, errors.Wrap(err, "parsing timestamp")
		}
		t = parsed
	default:
		return nil, errors.Newf("unsupported timestamp type %T", v)
	}
	return &t, nil
}
