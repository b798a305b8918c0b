package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/five82/roster/internal/employee"
)

// DefaultAddress is used when no server address has been configured.
const DefaultAddress = "127.0.0.1:8000"

// Endpoint is the explicit target of a client call: where the service lives
// and which revision of its schema it speaks. The application shell owns the
// current Endpoint and passes it into every call.
type Endpoint struct {
	Base   *url.URL
	Schema employee.Schema
}

// NewEndpoint parses a user supplied address. A bare host:port gets an http
// scheme; path, query and fragment are dropped. A nil schema selects
// employee.Structured.
func NewEndpoint(address string, schema employee.Schema) (Endpoint, error) {
	base, err := parseBaseURL(address)
	if err != nil {
		return Endpoint{}, err
	}
	if schema == nil {
		schema = employee.Structured
	}
	return Endpoint{Base: base, Schema: schema}, nil
}

// Address returns the host:port form kept in the settings file.
func (e Endpoint) Address() string {
	if e.Base == nil {
		return ""
	}
	if e.Base.Scheme == "http" {
		return e.Base.Host
	}
	return e.Base.String()
}

func (e Endpoint) String() string {
	if e.Base == nil {
		return ""
	}
	return e.Base.String()
}

func (e Endpoint) valid() error {
	if e.Base == nil {
		return fmt.Errorf("endpoint has no base url")
	}
	if e.Schema == nil {
		return fmt.Errorf("endpoint has no schema")
	}
	return nil
}

func parseBaseURL(address string) (*url.URL, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		trimmed = DefaultAddress
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server address %q: %w", address, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server address %q: missing host", address)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
