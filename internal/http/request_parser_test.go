package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expensetracker/internal/core"
)

func newParser(t *testing.T, contentType, body string) *RequestBodyParser {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	p := NewRequestBodyParser(httptest.NewRecorder(), req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p
}

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        core.Draft
	}{
		{
			name:        "form encoded",
			contentType: "application/x-www-form-urlencoded",
			body:        "description=+Gas+&date=2024-05-08&category=gas&amount=80&isRecurring=on",
			want:        core.Draft{Description: "Gas", Date: "2024-05-08", Category: "gas", Amount: "80", Recurring: true},
		},
		{
			name:        "unchecked box is absent",
			contentType: "application/x-www-form-urlencoded",
			body:        "description=Gas&amount=80",
			want:        core.Draft{Description: "Gas", Amount: "80"},
		},
		{
			name:        "json with numbers and booleans",
			contentType: "application/json",
			body:        `{"description":"Gas","amount":12.5,"isRecurring":false}`,
			want:        core.Draft{Description: "Gas", Amount: "12.5"},
		},
		{
			name: "json detected without content type",
			body: `{"category":"misc","isRecurring":"true"}`,
			want: core.Draft{Category: "misc", Recurring: true},
		},
		{
			name:        "category outside the selector is blanked",
			contentType: "application/x-www-form-urlencoded",
			body:        "description=Boat&category=yachts&amount=9",
			want:        core.Draft{Description: "Boat", Amount: "9"},
		},
		{
			name:        "control characters stripped",
			contentType: "application/x-www-form-urlencoded",
			body:        "description=Ga%00s",
			want:        core.Draft{Description: "Gas"},
		},
		{
			name: "empty body",
			want: core.Draft{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDraft(newParser(t, tt.contentType, tt.body))
			if got != tt.want {
				t.Errorf("ParseDraft = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFieldEdit(t *testing.T) {
	p := newParser(t, "application/x-www-form-urlencoded", "field=amount&value=+42+")
	edit, ok := ParseFieldEdit(p)
	if !ok || edit != (FieldEdit{Field: "amount", Value: "42"}) {
		t.Fatalf("ParseFieldEdit = %+v, %v", edit, ok)
	}

	edit, _ = ParseFieldEdit(newParser(t, "application/x-www-form-urlencoded", "field=category&value=yachts"))
	if edit != (FieldEdit{Field: "category"}) {
		t.Fatalf("unknown category edit = %+v, want blank value", edit)
	}

	if _, ok := ParseFieldEdit(newParser(t, "application/x-www-form-urlencoded", "amount=42")); ok {
		t.Fatal("a full form is not a field edit")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := map[string]string{
		"  hello ":    "hello",
		"a\x01b":      "ab",
		"tab\there":   "tab\there",
		"":            "",
		" \t\n ":      "",
		"café ☕":      "café ☕",
	}
	for in, want := range tests {
		if got := sanitizeInput(in); got != want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", in, got, want)
		}
	}
}
