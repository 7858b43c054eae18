// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest retrieves bibliographic records from the arXiv OAI-PMH
// endpoint, one resumption-token page at a time, and filters them
// client-side.
package harvest

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/arxiv-harvest/internal/httputil"
	"github.com/pdiddy/arxiv-harvest/internal/oai"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// APIBase is the arXiv OAI-PMH endpoint. Declared as a var so tests can
// substitute an httptest server.
var APIBase = "https://export.arxiv.org/oai2"

// metadataPrefix selects the arXiv-native metadata format.
const metadataPrefix = "arXiv"

const (
	defaultWait          = 30 * time.Second
	defaultProgressEvery = 90 * time.Second
)

// Harvester drives the paginated ListRecords exchange. A Harvester is
// stateless between calls; independent harvests may run concurrently.
type Harvester struct {
	Client    *http.Client
	UserAgent string
}

// Options holds the parameters of one harvest.
type Options struct {
	// Category is the arXiv set to harvest (e.g. "physics:astro-ph").
	Category string

	// From and Until are inclusive ISO date bounds ("YYYY-MM-DD"),
	// passed verbatim; empty means the server-side default range.
	From  string
	Until string

	// Filter narrows the result client-side; empty keeps everything.
	Filter Filter

	// Wait is the throttle delay when the server sends no Retry-After
	// header (default 30s).
	Wait time.Duration

	// ProgressEvery is the interval between progress lines, in loop
	// time excluding throttle sleeps (default 90s).
	ProgressEvery time.Duration

	// Timeout is a soft deadline on cumulative loop time excluding
	// throttle sleeps. nil means unlimited; reaching it returns the
	// partial result with no error. A zero Timeout stops after the
	// first page.
	Timeout *time.Duration
}

// Harvest retrieves every record of the category within the date bounds,
// following resumption tokens until the stream ends. Records are
// returned in server delivery order, with no deduplication. Status and
// progress lines go to w.
//
// Throttling responses (HTTP 503, 429) are retried indefinitely against
// the same URL, sleeping the server's advisory Retry-After delay when
// present. Any other transport failure, non-200 status, or XML parse
// failure is fatal and no partial result is returned.
func (h *Harvester) Harvest(ctx context.Context, opts Options, w io.Writer) ([]types.Record, error) {
	if err := opts.Filter.Validate(); err != nil {
		return nil, err
	}

	wait := opts.Wait
	if wait <= 0 {
		wait = defaultWait
	}
	progressEvery := opts.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = defaultProgressEvery
	}

	url, err := oai.Request{
		BaseURL:        APIBase,
		Verb:           "ListRecords",
		MetadataPrefix: metadataPrefix,
		Set:            opts.Category,
		From:           opts.From,
		Until:          opts.Until,
	}.URL()
	if err != nil {
		return nil, err
	}

	var records []types.Record
	var elapsed, sinceProgress time.Duration
	start := time.Now()

	for {
		pageStart := time.Now()

		resp, err := h.get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("arXiv OAI request: %w", err)
		}

		if httputil.Throttled(resp) {
			delay := httputil.RetryDelay(resp, wait)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			fmt.Fprintf(w, "throttled (HTTP %d), retrying in %v\n", resp.StatusCode, delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			// Same URL; pageStart is re-stamped so the sleep stays out
			// of the elapsed-time accounting.
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("arXiv OAI returned HTTP %d", resp.StatusCode)
		}

		var env listRecordsEnvelope
		err = xml.NewDecoder(resp.Body).Decode(&env)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing ListRecords response: %w", err)
		}

		if env.Error != nil {
			if oai.NoRecordsMatch(*env.Error) {
				break
			}
			return nil, *env.Error
		}

		// An empty page is the natural end of the stream, token or not.
		if len(env.Records) == 0 {
			break
		}

		for _, frag := range env.Records {
			rec, err := extractRecord(frag.Metadata)
			if err != nil {
				return nil, err
			}
			if opts.Filter.Matches(rec) {
				records = append(records, rec)
			}
		}

		if env.Token.Value == "" {
			break
		}
		url, err = oai.Request{
			BaseURL:         APIBase,
			Verb:            "ListRecords",
			ResumptionToken: env.Token.Value,
		}.URL()
		if err != nil {
			return nil, err
		}

		pageDur := time.Since(pageStart)

		sinceProgress += pageDur
		if sinceProgress > progressEvery {
			latest := ""
			if len(records) > 0 {
				latest = records[len(records)-1].Created
			}
			fmt.Fprintf(w, "records fetched so far: %d (latest created %s)\n", len(records), latest)
			sinceProgress = 0
		}

		elapsed += pageDur
		if opts.Timeout != nil && elapsed >= *opts.Timeout {
			fmt.Fprintf(w, "soft timeout reached, returning %d records\n", len(records))
			return records, nil
		}
	}

	fmt.Fprintf(w, "fetched %d records in %.1fs\n", len(records), time.Since(start).Seconds())
	return records, nil
}

func (h *Harvester) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}
