package core

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Form field names, in the order the form lays them out.
const (
	FieldDescription = "description"
	FieldDate        = "date"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldRecurring   = "isRecurring"
)

// MaxDescriptionLength is counted in characters, not bytes.
const MaxDescriptionLength = 25

const (
	MsgDescriptionRequired = "Description is required"
	MsgDescriptionTooLong  = "Description is too long"
	MsgCategoryRequired    = "Category is required"
	MsgAmountRequired      = "Amount is required"
)

var fieldOrder = []string{FieldDescription, FieldDate, FieldCategory, FieldAmount, FieldRecurring}

type (
	// Draft is the raw, not yet validated form input.
	Draft struct {
		Description string
		Date        string
		Category    string
		Amount      string
		Recurring   bool
	}

	// FieldError is a validation failure tied to one input field.
	FieldError struct {
		Field   string
		Message string
	}

	// FieldErrors is ordered by form field order.
	FieldErrors []FieldError

	// schema is the normalized draft the declarative rules run against.
	schema struct {
		Description string `form:"description" validate:"required,max=25"`
		Category    string `form:"category" validate:"required"`
		Amount      string `form:"amount" validate:"required"`
	}
)

// messages maps "field/tag" to the fixed message shown beside the field.
var messages = map[string]string{
	FieldDescription + "/required": MsgDescriptionRequired,
	FieldDescription + "/max":      MsgDescriptionTooLong,
	FieldCategory + "/required":    MsgCategoryRequired,
	FieldAmount + "/required":      MsgAmountRequired,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Get returns the message for field, or "" when the field is valid.
func (fe FieldErrors) Get(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Has reports whether field failed validation.
func (fe FieldErrors) Has(field string) bool {
	return fe.Get(field) != ""
}

// Validate checks a draft against the expense schema and returns the
// normalized record. now is used as the date when the draft has none.
//
// An amount that does not parse is treated as absent. A date that does not
// parse is treated as absent too, so date never fails.
func Validate(d Draft, now time.Time) (Expense, FieldErrors) {
	s := schema{
		Description: d.Description,
		Category:    d.Category,
	}
	// Non-numeric or oversized input is blanked so that it fails as missing.
	amount, err := ParseAmount(d.Amount)
	if err == nil {
		s.Amount = d.Amount
	}

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// Only reachable on a programming error in schema.
			panic(err)
		}
		return Expense{}, toFieldErrors(verrs)
	}

	return Expense{
		Date:        normalizeDate(d.Date, now),
		Description: s.Description,
		Category:    Category(s.Category),
		Amount:      amount,
		Recurring:   d.Recurring,
	}, nil
}

func normalizeDate(raw string, now time.Time) Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{Time: now}
	}
	t, err := time.ParseInLocation(DateLayout, raw, now.Location())
	if err != nil {
		return Date{Time: now}
	}
	return Date{Time: t}
}

func toFieldErrors(verrs validator.ValidationErrors) FieldErrors {
	byField := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := byField[field]; seen {
			continue
		}
		msg, ok := messages[field+"/"+fe.Tag()]
		if !ok {
			msg = field + " is invalid"
		}
		byField[field] = msg
	}
	out := make(FieldErrors, 0, len(byField))
	for _, f := range fieldOrder {
		if msg, ok := byField[f]; ok {
			out = append(out, FieldError{Field: f, Message: msg})
		}
	}
	return out
}
