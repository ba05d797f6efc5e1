// pkg/model/key.go
package model

import (
	"strings"

	"github.com/startuppulse/ecosystem-ingress/pkg/normalize"
)

// Key is the normalized natural key identifying one entity across
// sources: the case-folded standardized name plus the canonical
// website. "Acme Inc." at "www.acme.com" and "acme inc" at
// "https://acme.com" share a key.
type Key struct {
	Name    string
	Website string
}

// KeyOf derives the natural key for a record under its schema.
func KeyOf(r Record, s *Schema) Key {
	return Key{
		Name:    strings.ToLower(normalize.Name(s.NameOf(r))),
		Website: normalize.URL(s.WebsiteOf(r)),
	}
}
