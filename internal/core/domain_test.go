package core

import "testing"

func TestCategoriesClosedSet(t *testing.T) {
	opts := Categories()
	if len(opts) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(opts))
	}
	want := []Category{Groceries, Gas, Insurance, Utilities, Restaurants, Entertainment, Misc}
	for i, c := range want {
		if opts[i].Value != c {
			t.Fatalf("option %d = %q, want %q", i, opts[i].Value, c)
		}
		if !c.Known() {
			t.Fatalf("%q should be known", c)
		}
	}
	if Category("travel").Known() {
		t.Fatalf("travel should not be a known category")
	}

	// Callers get a copy.
	opts[0].Label = "changed"
	if Categories()[0].Label != "Groceries" {
		t.Fatalf("Categories leaked its backing array")
	}
}

func TestDateISO(t *testing.T) {
	if got := NewDate(2024, 5, 8).ISO(); got != "2024-05-08" {
		t.Fatalf("ISO = %q", got)
	}
	if got := (Date{}).ISO(); got != "" {
		t.Fatalf("zero date ISO = %q, want empty", got)
	}
	if !(Date{}).IsEmpty() {
		t.Fatalf("zero date should be empty")
	}
}
