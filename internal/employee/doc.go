// Package employee defines the employee record and the two revisions of the
// remote service's wire format.
//
// # Schemas
//
// Two schemas are supported:
//
//   - Flat: {"ID", "Name", "Age", "Title", "Address": {"Address 1", "Address 2"}, "Misc"},
//     listed under "Employees", updated with PUT /putdata and deleted with
//     DELETE /deletedata carrying {"ID": id}.
//   - Structured: {"employee_id", "name": {...}, "age", "title", "address": {...}, "misc"},
//     listed under "employees", with the identifier appended to the update and
//     delete paths.
//
// A Schema also maps records to table rows and back. Column text is the only
// user input; the mapping coerces a blank age to zero and otherwise performs no
// validation.
//
// # Identifiers
//
// Record identity is an opaque string. NewID produces a YYYYMMDDHHMMSS
// timestamp so the same value is valid for the structured schema, which
// expects an integer. Decoders accept identifiers as JSON strings or numbers.
//
// # Lenient lists
//
// DecodeList keeps every row it can. Text fields accept any JSON value, an age
// that is not a whole number becomes 0, and an element that still fails to
// decode is logged and skipped rather than failing the listing.
package employee
