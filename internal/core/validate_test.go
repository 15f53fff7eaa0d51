package core

import (
	"strings"
	"testing"
	"time"
)

var validationNow = time.Date(2024, 5, 8, 16, 0, 26, 0, time.UTC)

func TestValidateSuccessDefaults(t *testing.T) {
	// description, category and amount only; date and recurring unset
	e, errs := Validate(Draft{Description: "Gas", Category: "gas", Amount: "80"}, validationNow)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if e.Description != "Gas" || e.Category != Gas || e.Amount.String() != "80" {
		t.Fatalf("unexpected record: %+v", e)
	}
	if !e.Date.Equal(validationNow) {
		t.Fatalf("date = %v, want validation time %v", e.Date, validationNow)
	}
	if e.Recurring {
		t.Fatalf("recurring should default to false")
	}
}

func TestValidateKeepsDateAndRecurring(t *testing.T) {
	e, errs := Validate(Draft{
		Description: "Insurance",
		Date:        "2024-01-31",
		Category:    "insurance",
		Amount:      "120.40",
		Recurring:   true,
	}, validationNow)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if e.Date.ISO() != "2024-01-31" {
		t.Fatalf("date = %s", e.Date.ISO())
	}
	if !e.Recurring {
		t.Fatalf("recurring lost")
	}
	if e.Amount.String() != "120.4" {
		t.Fatalf("amount = %s", e.Amount)
	}
}

func TestValidateUnparseableDateFallsBackToNow(t *testing.T) {
	e, errs := Validate(Draft{Description: "x", Date: "08/05/2024", Category: "misc", Amount: "1"}, validationNow)
	if errs != nil {
		t.Fatalf("date must never fail, got %v", errs)
	}
	if !e.Date.Equal(validationNow) {
		t.Fatalf("date = %v, want now", e.Date)
	}
}

func TestValidateFieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  FieldErrors
	}{
		{
			name:  "empty description",
			draft: Draft{Description: "", Category: "gas", Amount: "80"},
			want:  FieldErrors{{FieldDescription, MsgDescriptionRequired}},
		},
		{
			name:  "description too long",
			draft: Draft{Description: strings.Repeat("a", 26), Category: "gas", Amount: "80"},
			want:  FieldErrors{{FieldDescription, MsgDescriptionTooLong}},
		},
		{
			name:  "category unset",
			draft: Draft{Description: "Gas", Amount: "80"},
			want:  FieldErrors{{FieldCategory, MsgCategoryRequired}},
		},
		{
			name:  "amount empty",
			draft: Draft{Description: "Gas", Category: "gas"},
			want:  FieldErrors{{FieldAmount, MsgAmountRequired}},
		},
		{
			name:  "amount not numeric",
			draft: Draft{Description: "Gas", Category: "gas", Amount: "abc"},
			want:  FieldErrors{{FieldAmount, MsgAmountRequired}},
		},
		{
			name:  "amount exponent too wide",
			draft: Draft{Description: "Gas", Category: "gas", Amount: "1e5000000"},
			want:  FieldErrors{{FieldAmount, MsgAmountRequired}},
		},
		{
			name:  "everything missing in field order",
			draft: Draft{},
			want: FieldErrors{
				{FieldDescription, MsgDescriptionRequired},
				{FieldCategory, MsgCategoryRequired},
				{FieldAmount, MsgAmountRequired},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Validate(tt.draft, validationNow)
			if len(errs) != len(tt.want) {
				t.Fatalf("errors = %v, want %v", errs, tt.want)
			}
			for i := range tt.want {
				if errs[i] != tt.want[i] {
					t.Errorf("error %d = %+v, want %+v", i, errs[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateDescriptionCountsCharacters(t *testing.T) {
	// 25 multi-byte characters is still within the limit
	desc := strings.Repeat("é", MaxDescriptionLength)
	if _, errs := Validate(Draft{Description: desc, Category: "misc", Amount: "1"}, validationNow); errs != nil {
		t.Fatalf("25 characters should pass, got %v", errs)
	}
	if _, errs := Validate(Draft{Description: desc + "é", Category: "misc", Amount: "1"}, validationNow); !errs.Has(FieldDescription) {
		t.Fatalf("26 characters should fail")
	}
}

func TestValidateNoAmountRangeCheck(t *testing.T) {
	for _, amt := range []string{"0", "-5", "0.001"} {
		if _, errs := Validate(Draft{Description: "x", Category: "misc", Amount: amt}, validationNow); errs != nil {
			t.Fatalf("amount %q should pass, got %v", amt, errs)
		}
	}
}

func TestFieldErrorsHelpers(t *testing.T) {
	errs := FieldErrors{{FieldAmount, MsgAmountRequired}}
	if errs.Get(FieldAmount) != MsgAmountRequired {
		t.Fatalf("Get(amount) = %q", errs.Get(FieldAmount))
	}
	if errs.Has(FieldDescription) {
		t.Fatalf("description should be valid")
	}
	if !strings.Contains(errs.Error(), "Amount is required") {
		t.Fatalf("Error() = %q", errs.Error())
	}
}
