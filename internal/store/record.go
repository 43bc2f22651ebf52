package store

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
)

// SchemaVersion is the only document version this store reads and writes.
const SchemaVersion = "1.0.0"

// Record is one application entry, either detected or saved.
type Record struct {
	// Name identifies the software as reported by its source.
	Name string `json:"name" yaml:"name" toml:"name" validate:"required,max=512"`

	// Installed is true when detection confirmed presence at scan time.
	Installed bool `json:"installed" yaml:"installed" toml:"installed"`

	// Platform is the tag of the strategy that produced the record.
	Platform platform.Tag `json:"platform" yaml:"platform" toml:"platform" validate:"omitempty,oneof=darwin win32 linux unknown"`

	// Version is the bundle or package version when the source reports one.
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`

	// Source names the detection tier that produced the record.
	Source string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`

	// SavedAt is assigned by the store when the record is persisted.
	SavedAt *time.Time `json:"savedAt,omitempty" yaml:"savedAt,omitempty" toml:"savedAt,omitempty"`
}

// Document is the persisted store file.
type Document struct {
	Apps        []Record  `json:"apps"`
	LastUpdated time.Time `json:"lastUpdated"`
	Version     string    `json:"version"`
}

// ExportDocument is the shape of export files. It shares apps with Document
// and adds provenance.
type ExportDocument struct {
	Apps         []Record  `json:"apps" yaml:"apps" toml:"apps"`
	ExportedAt   time.Time `json:"exportedAt" yaml:"exportedAt" toml:"exportedAt"`
	ExportedFrom string    `json:"exportedFrom" yaml:"exportedFrom" toml:"exportedFrom"`
}

// NewDocument returns an empty document stamped with now.
func NewDocument(now time.Time) *Document {
	return &Document{
		Apps:        []Record{},
		LastUpdated: now,
		Version:     SchemaVersion,
	}
}

// rawDocument tolerates a missing apps list and a version of any JSON type.
type rawDocument struct {
	Apps        []Record        `json:"apps"`
	LastUpdated time.Time       `json:"lastUpdated"`
	Version     json.RawMessage `json:"version"`
}

func parseDocument(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCorruptStore, err.Error())
	}

	doc := &Document{
		Apps:        raw.Apps,
		LastUpdated: raw.LastUpdated,
		Version:     SchemaVersion,
	}
	if doc.Apps == nil {
		doc.Apps = []Record{}
	}
	var v string
	if err := json.Unmarshal(raw.Version, &v); err == nil && v != "" {
		doc.Version = v
	}
	return doc, nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate reports whether r can be persisted.
func (r Record) Validate() error {
	if err := recordValidator().Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.Wrapf(errors.ErrInvalidRecord, "%q: field %s failed %q", r.Name, fe.Field(), fe.Tag())
		}
		return errors.Wrap(errors.ErrInvalidRecord, err.Error())
	}
	return nil
}

// Names returns the names of records in order.
func Names(records []Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}

// Dedupe collapses records sharing a name. The first occurrence keeps its
// position and the last occurrence supplies its value.
func Dedupe(records []Record) []Record {
	index := make(map[string]int, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if i, ok := index[r.Name]; ok {
			out[i] = r
			continue
		}
		index[r.Name] = len(out)
		out = append(out, r)
	}
	return out
}
