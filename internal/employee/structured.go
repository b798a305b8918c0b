package employee

import (
	"encoding/json"
	"fmt"
)

// Structured is the current revision: first/middle/last name, a country
// field, the identifier in update and delete paths and an "employees" list key.
var Structured Schema = structuredSchema{}

type structuredSchema struct{}

var structuredColumns = columnSet{
	idColumn,
	textColumn("First Name", func(r *Record) *string { return &r.Name.First }),
	textColumn("Middle Name", func(r *Record) *string { return &r.Name.Middle }),
	textColumn("Last Name", func(r *Record) *string { return &r.Name.Last }),
	ageColumn,
	titleColumn,
	address1Column,
	address2Column,
	textColumn("Country", func(r *Record) *string { return &r.Address.Country }),
	miscColumn,
}

type structuredName struct {
	First  text `json:"first_name"`
	Middle text `json:"middle_name"`
	Last   text `json:"last_name"`
}

type structuredAddress struct {
	Line1   text `json:"address_1"`
	Line2   text `json:"address_2"`
	Country text `json:"country"`
}

type structuredRecord struct {
	ID      idNumber          `json:"employee_id"`
	Name    structuredName    `json:"name"`
	Age     ageNumber         `json:"age"`
	Title   text              `json:"title"`
	Address structuredAddress `json:"address"`
	Misc    text              `json:"misc"`
}

func (structuredSchema) Name() string      { return SchemaStructured }
func (structuredSchema) Columns() []string { return structuredColumns.titles() }
func (structuredSchema) ListKey() string   { return "employees" }

func (structuredSchema) Row(rec Record) []string {
	return structuredColumns.row(rec)
}

func (structuredSchema) FromRow(values []string) (Record, error) {
	return structuredColumns.record(values)
}

func (structuredSchema) Encode(rec Record) ([]byte, error) {
	return json.Marshal(structuredRecord{
		ID: idNumber(rec.ID),
		Name: structuredName{
			First:  text(rec.Name.First),
			Middle: text(rec.Name.Middle),
			Last:   text(rec.Name.Last),
		},
		Age:   ageNumber(rec.Age),
		Title: text(rec.Title),
		Address: structuredAddress{
			Line1:   text(rec.Address.Line1),
			Line2:   text(rec.Address.Line2),
			Country: text(rec.Address.Country),
		},
		Misc: text(rec.Misc),
	})
}

func (structuredSchema) DecodeRecord(raw []byte) (Record, error) {
	if err := requireKey(raw, "employee_id"); err != nil {
		return Record{}, err
	}
	var wire structuredRecord
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return Record{
		ID: string(wire.ID),
		Name: Name{
			First:  string(wire.Name.First),
			Middle: string(wire.Name.Middle),
			Last:   string(wire.Name.Last),
		},
		Age:   int(wire.Age),
		Title: string(wire.Title),
		Address: Address{
			Line1:   string(wire.Address.Line1),
			Line2:   string(wire.Address.Line2),
			Country: string(wire.Address.Country),
		},
		Misc: string(wire.Misc),
	}, nil
}

func (s structuredSchema) DecodeList(raw []byte) ([]Record, error) {
	return decodeList(raw, s.ListKey(), s.DecodeRecord)
}

func (structuredSchema) UpdatePath(id string) string { return itemPath(PathUpdate, id) }
func (structuredSchema) DeletePath(id string) string { return itemPath(PathDelete, id) }

func (structuredSchema) DeleteBody(string) ([]byte, error) { return nil, nil }
