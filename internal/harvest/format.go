// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// FormatTable writes records as a human-readable table to w.
func FormatTable(records []types.Record, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	fmt.Fprintf(w, "%-18s  %-10s  %-52s  %-20s  %s\n",
		"ID", "Created", "Title", "Authors", "Categories")
	fmt.Fprintln(w, strings.Repeat("-", 118))

	for _, r := range records {
		title := r.Title
		if len(title) > 52 {
			title = title[:49] + "..."
		}
		fmt.Fprintf(w, "%-18s  %-10s  %-52s  %-20s  %s\n",
			r.ID, r.Created, title, formatAuthors(r.Authors), r.Categories)
	}

	fmt.Fprintf(w, "\n%d records\n", len(records))
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(records []types.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
