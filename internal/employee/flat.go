package employee

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Flat is the legacy revision: a single name field, two address lines, the
// identifier carried in the delete body and an "Employees" list key.
var Flat Schema = flatSchema{}

type flatSchema struct{}

var flatColumns = columnSet{
	idColumn,
	textColumn("Name", func(r *Record) *string { return &r.Name.First }),
	ageColumn,
	titleColumn,
	address1Column,
	address2Column,
	miscColumn,
}

type flatAddress struct {
	Line1 text `json:"Address 1"`
	Line2 text `json:"Address 2"`
}

type flatRecord struct {
	ID      idText      `json:"ID"`
	Name    text        `json:"Name"`
	Age     ageText     `json:"Age"`
	Title   text        `json:"Title"`
	Address flatAddress `json:"Address"`
	Misc    text        `json:"Misc"`
}

// FlatDelete is the body of a legacy delete request.
type FlatDelete struct {
	ID idText `json:"ID"`
}

func (flatSchema) Name() string      { return SchemaFlat }
func (flatSchema) Columns() []string { return flatColumns.titles() }
func (flatSchema) ListKey() string   { return "Employees" }

func (flatSchema) Row(rec Record) []string {
	rec.Name = Name{First: rec.Name.Full()}
	return flatColumns.row(rec)
}

func (flatSchema) FromRow(values []string) (Record, error) {
	return flatColumns.record(values)
}

func (flatSchema) Encode(rec Record) ([]byte, error) {
	return json.Marshal(flatRecord{
		ID:    idText(rec.ID),
		Name:  text(rec.Name.Full()),
		Age:   ageText(rec.Age),
		Title: text(rec.Title),
		Address: flatAddress{
			Line1: text(rec.Address.Line1),
			Line2: text(rec.Address.Line2),
		},
		Misc: text(rec.Misc),
	})
}

func (s flatSchema) DecodeRecord(raw []byte) (Record, error) {
	if err := requireKey(raw, "ID"); err != nil {
		return Record{}, err
	}
	var wire flatRecord
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return Record{
		ID:    string(wire.ID),
		Name:  Name{First: string(wire.Name)},
		Age:   int(wire.Age),
		Title: string(wire.Title),
		Address: Address{
			Line1: string(wire.Address.Line1),
			Line2: string(wire.Address.Line2),
		},
		Misc: string(wire.Misc),
	}, nil
}

func (s flatSchema) DecodeList(raw []byte) ([]Record, error) {
	return decodeList(raw, s.ListKey(), s.DecodeRecord)
}

func (flatSchema) UpdatePath(string) string { return PathUpdate }
func (flatSchema) DeletePath(string) string { return PathDelete }

func (flatSchema) DeleteBody(id string) ([]byte, error) {
	return json.Marshal(FlatDelete{ID: idText(id)})
}

// ParseFlatDelete extracts the identifier from a legacy delete body.
func ParseFlatDelete(raw []byte) (string, error) {
	var body FlatDelete
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("decode delete body: %w", err)
	}
	if body.ID == "" {
		return "", fmt.Errorf("delete body has no ID")
	}
	return string(body.ID), nil
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
