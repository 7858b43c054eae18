// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// Filter narrows a harvest client-side. Keys are Record field names,
// values are candidate substrings. A record is kept when at least one
// (field, substring) pair matches — OR across all pairs, not AND per
// key. Matching is case-insensitive; for sequence fields any element
// may match. An empty Filter keeps everything.
type Filter map[string][]string

// filterFields enumerates the Record field names a Filter may key on.
var filterFields = map[string]bool{
	"id":                true,
	"url":               true,
	"title":             true,
	"abstract":          true,
	"categories":        true,
	"doi":               true,
	"created":           true,
	"updated":           true,
	"authors":           true,
	"authors_fullnames": true,
	"affiliation":       true,
}

// Validate rejects filter keys that are not Record field names.
func (f Filter) Validate() error {
	for field := range f {
		if !filterFields[field] {
			return fmt.Errorf("unknown filter field %q", field)
		}
	}
	return nil
}

// Matches reports whether r survives the filter.
func (f Filter) Matches(r types.Record) bool {
	if len(f) == 0 {
		return true
	}
	for field, subs := range f {
		for _, sub := range subs {
			sub = strings.ToLower(sub)
			for _, v := range fieldValues(r, field) {
				if strings.Contains(v, sub) {
					return true
				}
			}
		}
	}
	return false
}

// fieldValues returns the normalized values of a Record field as a
// slice: one element for scalars, the slice itself for sequences.
func fieldValues(r types.Record, field string) []string {
	switch field {
	case "id":
		return []string{r.ID}
	case "url":
		return []string{r.URL}
	case "title":
		return []string{r.Title}
	case "abstract":
		return []string{r.Abstract}
	case "categories":
		return []string{r.Categories}
	case "doi":
		return []string{r.DOI}
	case "created":
		return []string{r.Created}
	case "updated":
		return []string{r.Updated}
	case "authors":
		return r.Authors
	case "authors_fullnames":
		return r.AuthorsFullnames
	case "affiliation":
		return r.Affiliation
	default:
		return nil
	}
}
