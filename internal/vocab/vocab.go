// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab validates category codes against the arXiv set
// vocabulary, fetched via the OAI-PMH ListSets verb with a built-in
// fallback table. Harvesting never depends on the remote listing
// succeeding.
package vocab

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/arxiv-harvest/internal/httputil"
	"github.com/pdiddy/arxiv-harvest/internal/oai"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// APIBase is the arXiv OAI-PMH endpoint. Declared as a var so tests can
// substitute an httptest server.
var APIBase = "https://export.arxiv.org/oai2"

// ErrInvalidCategory marks a category code absent from the vocabulary.
var ErrInvalidCategory = errors.New("unknown category code")

// Categories fetches the set vocabulary via ListSets and returns a map
// from setSpec to setName. Throttling responses are retried a bounded
// number of times (cfg.MaxRetries, default 5). arXiv returns all sets
// in one page; a resumption token here is not followed.
func Categories(ctx context.Context, client *http.Client, cfg types.VocabConfig) (map[string]string, error) {
	url, err := oai.Request{BaseURL: APIBase, Verb: "ListSets"}.URL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("ListSets request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ListSets returned HTTP %d", resp.StatusCode)
	}

	var env oai.ListSetsEnvelope
	if err := xml.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing ListSets response: %w", err)
	}
	if env.Error != nil {
		return nil, *env.Error
	}

	sets := make(map[string]string, len(env.Sets))
	for _, s := range env.Sets {
		sets[s.Spec] = s.Name
	}
	return sets, nil
}

// Validate reports whether code is present in the known vocabulary.
func Validate(code string, known map[string]string) error {
	if _, ok := known[code]; ok {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidCategory, code)
}
