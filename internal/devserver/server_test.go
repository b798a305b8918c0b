package devserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/five82/roster/internal/employee"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_StructuredCRUD(t *testing.T) {
	s := New(employee.Structured)

	if got := do(t, s, http.MethodGet, "/", ""); got.Code != http.StatusOK {
		t.Fatalf("probe status = %d, want 200", got.Code)
	}

	created := do(t, s, http.MethodPost, "/postdata", `{"employee_id": 7, "name": {"first_name": "Grace"}, "age": 40}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", created.Code, created.Body)
	}
	dup := do(t, s, http.MethodPost, "/postdata", `{"employee_id": 7}`)
	if dup.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409", dup.Code)
	}

	updated := do(t, s, http.MethodPut, "/putdata/7", `{"employee_id": 7, "name": {"first_name": "Grace", "last_name": "Hopper"}, "age": 41}`)
	if updated.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", updated.Code, updated.Body)
	}
	recs := s.Records()
	if len(recs) != 1 || recs[0].Name.Last != "Hopper" || recs[0].Age != 41 {
		t.Fatalf("records after update = %#v", recs)
	}

	missing := do(t, s, http.MethodPut, "/putdata/8", `{"employee_id": 8}`)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("update missing status = %d, want 404", missing.Code)
	}

	listed := do(t, s, http.MethodGet, "/getdata?employee_id=7", "")
	var payload map[string][]json.RawMessage
	if err := json.Unmarshal(listed.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(payload["employees"]) != 1 {
		t.Fatalf("filtered list = %s, want one employee", listed.Body)
	}
	none := do(t, s, http.MethodGet, "/getdata?employee_id=99", "")
	if !strings.Contains(none.Body.String(), `"employees":[]`) {
		t.Fatalf("filtered list = %s, want empty employees", none.Body)
	}

	deleted := do(t, s, http.MethodDelete, "/deletedata/7", "")
	if deleted.Code != http.StatusOK {
		t.Fatalf("delete status = %d", deleted.Code)
	}
	if len(s.Records()) != 0 {
		t.Fatalf("records after delete = %#v", s.Records())
	}
	again := do(t, s, http.MethodDelete, "/deletedata/7", "")
	if again.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", again.Code)
	}
}

func TestServer_FlatRoutes(t *testing.T) {
	s := New(employee.Flat)
	s.Seed(employee.Record{ID: "1", Name: employee.Name{First: "Alan Turing"}})

	listed := do(t, s, http.MethodGet, "/getdata", "")
	if !strings.Contains(listed.Body.String(), `"Employees"`) {
		t.Fatalf("flat list = %s, want Employees key", listed.Body)
	}

	updated := do(t, s, http.MethodPut, "/putdata", `{"ID": "1", "Name": "Alan M. Turing", "Age": "41"}`)
	if updated.Code != http.StatusOK {
		t.Fatalf("flat update status = %d, body %s", updated.Code, updated.Body)
	}
	if got := s.Records()[0]; got.Name.First != "Alan M. Turing" || got.Age != 41 {
		t.Fatalf("record after update = %#v", got)
	}

	if got := do(t, s, http.MethodPut, "/putdata/1", `{"ID": "1"}`); got.Code == http.StatusOK {
		t.Fatalf("flat server accepted structured update path")
	}

	bad := do(t, s, http.MethodDelete, "/deletedata", `{}`)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("delete without ID status = %d, want 400", bad.Code)
	}
	deleted := do(t, s, http.MethodDelete, "/deletedata", `{"ID": "1"}`)
	if deleted.Code != http.StatusOK || len(s.Records()) != 0 {
		t.Fatalf("flat delete status = %d, records %#v", deleted.Code, s.Records())
	}
}

func TestServer_RejectsNonRecordBody(t *testing.T) {
	s := New(nil)
	got := do(t, s, http.MethodPost, "/postdata", `{"hello": "world"}`)
	if got.Code != http.StatusBadRequest {
		t.Fatalf("create status = %d, want 400", got.Code)
	}
}
