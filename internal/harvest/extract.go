// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-harvest/internal/oai"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// absURLBase is the abstract page prefix a Record's URL is derived from.
const absURLBase = "https://arxiv.org/abs/"

// listRecordsEnvelope is the ListRecords response envelope with the
// arXiv metadata payload decoded inline.
type listRecordsEnvelope struct {
	Error   *oai.Error          `xml:"error"`
	Records []recordFragment    `xml:"ListRecords>record"`
	Token   oai.ResumptionToken `xml:"ListRecords>resumptionToken"`
}

// recordFragment is one record subtree of a harvested page.
type recordFragment struct {
	Metadata arxivMetadata `xml:"metadata>arXiv"`
}

// arXiv metadata XML structures (namespace http://arxiv.org/OAI/arXiv/).
type arxivMetadata struct {
	ID         string           `xml:"id"`
	Created    string           `xml:"created"`
	Updated    string           `xml:"updated"`
	Title      string           `xml:"title"`
	Categories string           `xml:"categories"`
	DOI        string           `xml:"doi"`
	Abstract   string           `xml:"abstract"`
	Authors    []authorFragment `xml:"authors>author"`
}

// authorFragment uses pointers where the distinction between an absent
// element and empty text matters: a missing keyname is a malformed
// record, and a missing affiliation discards the whole affiliation list.
type authorFragment struct {
	Keyname     *string `xml:"keyname"`
	Forenames   string  `xml:"forenames"`
	Affiliation *string `xml:"affiliation"`
}

// normalize trims, lowercases, and replaces embedded newlines with
// single spaces. Missing scalar fields arrive as "" and stay "".
func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "\n", " ")
}

// extractRecord maps one arXiv metadata fragment to a Record. Scalar
// extraction never fails; a missing author keyname does.
func extractRecord(meta arxivMetadata) (types.Record, error) {
	r := types.Record{
		ID:         normalize(meta.ID),
		Title:      normalize(meta.Title),
		Abstract:   normalize(meta.Abstract),
		Categories: normalize(meta.Categories),
		DOI:        normalize(meta.DOI),
		Created:    normalize(meta.Created),
		Updated:    normalize(meta.Updated),
	}
	r.URL = absURLBase + r.ID

	for i, a := range meta.Authors {
		if a.Keyname == nil {
			return types.Record{}, fmt.Errorf("record %s: author %d has no keyname", r.ID, i)
		}
		last := strings.ToLower(*a.Keyname)
		first := strings.ToLower(a.Forenames)
		r.Authors = append(r.Authors, last)
		r.AuthorsFullnames = append(r.AuthorsFullnames, strings.TrimSpace(first+" "+last))
	}

	// Affiliations are all-or-nothing: one author without the element
	// empties the list for the whole record.
	affs := make([]string, 0, len(meta.Authors))
	for _, a := range meta.Authors {
		if a.Affiliation == nil {
			affs = affs[:0]
			break
		}
		affs = append(affs, strings.ToLower(*a.Affiliation))
	}
	if len(affs) > 0 {
		r.Affiliation = affs
	}

	return r, nil
}
