package model

import (
	"testing"
)

func TestKeyOfCollapsesEquivalentRecords(t *testing.T) {
	s := StartupSchema()

	a := KeyOf(Record{"name": "Acme Inc.", "website": "www.acme.com"}, s)
	b := KeyOf(Record{"name": "acme inc", "website": "https://acme.com"}, s)

	if a != b {
		t.Errorf("equivalent records produced different keys: %+v vs %+v", a, b)
	}
	if a.Name != "acme" {
		t.Errorf("key name = %q, want %q", a.Name, "acme")
	}
	if a.Website != "https://acme.com" {
		t.Errorf("key website = %q, want %q", a.Website, "https://acme.com")
	}
}

func TestKeyOfSeparatesDistinctRecords(t *testing.T) {
	s := StartupSchema()

	a := KeyOf(Record{"name": "Acme", "website": "acme.com"}, s)
	b := KeyOf(Record{"name": "Acme", "website": "acme.io"}, s)

	if a == b {
		t.Error("records with different websites must not share a key")
	}
}

func TestSchemaAccessors(t *testing.T) {
	s := StartupSchema()
	r := Record{"name": "Acme", "website": "acme.com"}

	if got := s.NameOf(r); got != "Acme" {
		t.Errorf("NameOf = %q, want Acme", got)
	}
	if got := s.WebsiteOf(r); got != "acme.com" {
		t.Errorf("WebsiteOf = %q, want acme.com", got)
	}

	noURLs := &Schema{NameColumn: "name"}
	if got := noURLs.WebsiteOf(r); got != "" {
		t.Errorf("WebsiteOf without URL columns = %q, want empty", got)
	}
}
