// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing HTTP request data into form
// drafts. Bodies may be form-encoded, as sent by HTMX, or JSON.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/form"
)

// MaxBodyBytes caps request bodies; an expense draft is a handful of short
// fields.
const MaxBodyBytes = 64 << 10

// ErrBodyTooLarge is returned by Parse when the body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]interface{}
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(w http.ResponseWriter, r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body == nil {
		return p
	}

	p.body, p.err = io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(p.err, &tooLarge) {
		p.err = ErrBodyTooLarge
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if p.IsJSONContent() || p.body[0] == '{' {
		p.jsonData = make(map[string]interface{})
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = fmt.Errorf("decode json body: %w", err)
			return p.err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	if p.err != nil {
		p.err = fmt.Errorf("decode form body: %w", p.err)
	}
	return p.err
}

// Get returns a sanitized string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// Has reports whether key was present in the body.
func (p *RequestBodyParser) Has(key string) bool {
	if p.jsonData != nil {
		_, ok := p.jsonData[key]
		return ok
	}
	return p.formData != nil && p.formData.Has(key)
}

// IsJSONContent reports whether the Content-Type announces JSON.
func (p *RequestBodyParser) IsJSONContent() bool {
	return strings.HasPrefix(strings.ToLower(p.contentType), "application/json")
}

// stringValue converts an interface{} to string.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ParseDraft builds a draft from every form field. A missing isRecurring
// means an unchecked box.
func ParseDraft(p *RequestBodyParser) core.Draft {
	return core.Draft{
		Description: p.Get(core.FieldDescription),
		Date:        p.Get(core.FieldDate),
		Category:    knownCategory(p.Get(core.FieldCategory)),
		Amount:      p.Get(core.FieldAmount),
		Recurring:   form.ParseToggle(p.Get(core.FieldRecurring)),
	}
}

// FieldEdit is a single keystroke: one field and its new value.
type FieldEdit struct {
	Field string
	Value string
}

// ParseFieldEdit returns the edit carried by a {"field", "value"} body.
func ParseFieldEdit(p *RequestBodyParser) (FieldEdit, bool) {
	if !p.Has("field") {
		return FieldEdit{}, false
	}
	edit := FieldEdit{Field: p.Get("field"), Value: p.Get("value")}
	if edit.Field == core.FieldCategory {
		edit.Value = knownCategory(edit.Value)
	}
	return edit, true
}

// knownCategory blanks values outside the category selector, so a posted
// category the page never offered fails as missing.
func knownCategory(v string) string {
	if !core.Category(v).Known() {
		return ""
	}
	return v
}
