package employee

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Request paths shared by both revisions of the service.
const (
	PathProbe   = "/"
	PathCreate  = "/postdata"
	PathList    = "/getdata"
	PathUpdate  = "/putdata"
	PathDelete  = "/deletedata"
	FilterParam = "employee_id"
)

// Schema names accepted by Lookup.
const (
	SchemaFlat       = "flat"
	SchemaStructured = "structured"
)

var (
	// ErrNotRecord means a JSON document is valid but does not describe a record.
	ErrNotRecord = errors.New("payload is not an employee record")
	// ErrMissingList means a list response lacks the schema's collection key.
	ErrMissingList = errors.New("payload is missing the employee list")
)

// Schema describes one revision of the remote service: its columns, its JSON
// shape and where record identifiers go in update and delete requests.
type Schema interface {
	Name() string
	// Columns lists the table headings; the identifier is always first.
	Columns() []string
	Row(rec Record) []string
	FromRow(values []string) (Record, error)

	ListKey() string
	Encode(rec Record) ([]byte, error)
	DecodeRecord(raw []byte) (Record, error)
	DecodeList(raw []byte) ([]Record, error)

	UpdatePath(id string) string
	DeletePath(id string) string
	// DeleteBody returns nil when the identifier travels in the path.
	DeleteBody(id string) ([]byte, error)
}

// Lookup resolves a schema by name. An empty name selects the structured schema.
func Lookup(name string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SchemaStructured, "v2":
		return Structured, nil
	case SchemaFlat, "legacy", "v1":
		return Flat, nil
	default:
		return nil, fmt.Errorf("unknown schema %q", name)
	}
}

// FormColumns returns the columns a user fills in when adding a record.
func FormColumns(s Schema) []string {
	return s.Columns()[1:]
}

// FromForm maps add-form values (FormColumns order) onto a Record with the given id.
func FromForm(s Schema, id string, values []string) (Record, error) {
	row := make([]string, 0, len(values)+1)
	row = append(row, id)
	row = append(row, values...)
	return s.FromRow(row)
}

type column struct {
	title string
	get   func(Record) string
	set   func(*Record, string) error
}

func textColumn(title string, field func(*Record) *string) column {
	return column{
		title: title,
		get: func(r Record) string {
			return *field(&r)
		},
		set: func(r *Record, v string) error {
			*field(r) = v
			return nil
		},
	}
}

var (
	idColumn = column{
		title: "ID",
		get:   func(r Record) string { return r.ID },
		set: func(r *Record, v string) error {
			r.ID = strings.TrimSpace(v)
			return nil
		},
	}
	ageColumn = column{
		title: "Age",
		get:   func(r Record) string { return strconv.Itoa(r.Age) },
		set: func(r *Record, v string) error {
			age, err := ParseAge(v)
			if err != nil {
				return err
			}
			r.Age = age
			return nil
		},
	}
	titleColumn    = textColumn("Title", func(r *Record) *string { return &r.Title })
	address1Column = textColumn("Address 1", func(r *Record) *string { return &r.Address.Line1 })
	address2Column = textColumn("Address 2", func(r *Record) *string { return &r.Address.Line2 })
	miscColumn     = textColumn("Misc", func(r *Record) *string { return &r.Misc })
)

type columnSet []column

func (cs columnSet) titles() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.title
	}
	return out
}

func (cs columnSet) row(rec Record) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.get(rec)
	}
	return out
}

func (cs columnSet) record(values []string) (Record, error) {
	if len(values) != len(cs) {
		return Record{}, fmt.Errorf("expected %d columns, got %d", len(cs), len(values))
	}
	var rec Record
	for i, c := range cs {
		if err := c.set(&rec, values[i]); err != nil {
			return Record{}, &FieldError{Column: c.title, Err: err}
		}
	}
	return rec, nil
}

// decodeList pulls key out of a JSON object and decodes each object element.
// Elements that are not JSON objects, or that fail to decode, are skipped so
// one bad row cannot hide the rest of the listing.
func decodeList(raw []byte, key string, decode func([]byte) (Record, error)) ([]Record, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	items, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("%w: key %q", ErrMissingList, key)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(items, &elems); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	out := make([]Record, 0, len(elems))
	for i, elem := range elems {
		if !isObject(elem) {
			continue
		}
		rec, err := decode(elem)
		if err != nil {
			log.Warn().Err(err).Str("list", key).Int("index", i).Msg("skipping undecodable record")
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// requireKey reports ErrNotRecord unless raw is an object holding key.
func requireKey(raw []byte, key string) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if _, ok := probe[key]; !ok {
		return ErrNotRecord
	}
	return nil
}

func isObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
