package harvest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const pageOneXML = `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
  <responseDate>2024-01-01T00:00:00Z</responseDate>
  <ListRecords>
    <record>
      <header><identifier>oai:arXiv.org:2301.07041</identifier></header>
      <metadata>
        <arXiv xmlns="http://arxiv.org/OAI/arXiv/">
          <id>2301.07041</id>
          <created>2023-01-17</created>
          <title>Deep Learning</title>
          <categories>cs.LG</categories>
          <authors><author><keyname>Smith</keyname><forenames>Jane</forenames></author></authors>
        </arXiv>
      </metadata>
    </record>
    <record>
      <header><identifier>oai:arXiv.org:2301.07042</identifier></header>
      <metadata>
        <arXiv xmlns="http://arxiv.org/OAI/arXiv/">
          <id>2301.07042</id>
          <created>2023-01-18</created>
          <title>Cosmology</title>
          <categories>astro-ph.CO</categories>
          <authors><author><keyname>Jones</keyname></author></authors>
        </arXiv>
      </metadata>
    </record>
    <resumptionToken cursor="0" completeListSize="3">4810|1001</resumptionToken>
  </ListRecords>
</OAI-PMH>`

const pageTwoXML = `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
  <responseDate>2024-01-01T00:00:00Z</responseDate>
  <ListRecords>
    <record>
      <header><identifier>oai:arXiv.org:2301.07043</identifier></header>
      <metadata>
        <arXiv xmlns="http://arxiv.org/OAI/arXiv/">
          <id>2301.07043</id>
          <created>2023-01-19</created>
          <title>Quantum Gravity</title>
          <categories>gr-qc</categories>
          <authors><author><keyname>Doe</keyname></author></authors>
        </arXiv>
      </metadata>
    </record>
  </ListRecords>
</OAI-PMH>`

// withTestServer points the harvester at a local server for the duration
// of one test.
func withTestServer(t *testing.T, handler http.Handler) *Harvester {
	t.Helper()
	ts := httptest.NewServer(handler)
	old := APIBase
	APIBase = ts.URL
	t.Cleanup(func() {
		APIBase = old
		ts.Close()
	})
	return &Harvester{Client: ts.Client()}
}

// twoPageHandler serves pageOneXML for the initial request and
// pageTwoXML for the resumption request.
func twoPageHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		if token := r.URL.Query().Get("resumptionToken"); token != "" {
			if token != "4810|1001" {
				t.Errorf("resumptionToken = %q, want %q", token, "4810|1001")
			}
			if r.URL.Query().Get("set") != "" || r.URL.Query().Get("metadataPrefix") != "" {
				t.Error("resumption request should carry the token only")
			}
			fmt.Fprint(w, pageTwoXML)
			return
		}
		fmt.Fprint(w, pageOneXML)
	})
}

func TestHarvestAllPagesInOrder(t *testing.T) {
	h := withTestServer(t, twoPageHandler(t))

	var buf strings.Builder
	records, err := h.Harvest(context.Background(), Options{Category: "physics"}, &buf)
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}

	want := []string{"2301.07041", "2301.07042", "2301.07043"}
	if len(records) != len(want) {
		t.Fatalf("len(records) = %d, want %d", len(records), len(want))
	}
	for i, id := range want {
		if records[i].ID != id {
			t.Errorf("records[%d].ID = %q, want %q (server order must be preserved)", i, records[i].ID, id)
		}
	}
}

func TestHarvestInitialURLParameters(t *testing.T) {
	var sawQuery atomic.Value
	h := withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawQuery.Store(r.URL.Query())
		fmt.Fprint(w, pageTwoXML)
	}))

	var buf strings.Builder
	_, err := h.Harvest(context.Background(), Options{
		Category: "physics:astro-ph",
		From:     "2017-12-23",
		Until:    "2017-12-25",
	}, &buf)
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}

	q := sawQuery.Load().(url.Values)
	for key, want := range map[string]string{
		"verb":           "ListRecords",
		"metadataPrefix": "arXiv",
		"set":            "physics:astro-ph",
		"from":           "2017-12-23",
		"until":          "2017-12-25",
	} {
		if got := q[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %q = %v, want %q", key, got, want)
		}
	}
}

func TestHarvestFilterApplied(t *testing.T) {
	h := withTestServer(t, twoPageHandler(t))

	var buf strings.Builder
	records, err := h.Harvest(context.Background(), Options{
		Category: "physics",
		Filter:   Filter{"title": {"learning"}},
	}, &buf)
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}
	if len(records) != 1 || records[0].Title != "deep learning" {
		t.Errorf("records = %+v, want only the matching record", records)
	}
}

func TestHarvestThrottleRetriesSameURL(t *testing.T) {
	var calls int32
	h := withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, pageTwoXML)
	}))

	var buf strings.Builder
	records, err := h.Harvest(context.Background(), Options{Category: "physics", Wait: time.Millisecond}, &buf)
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1 (no records lost across the retry)", len(records))
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want exactly one retry", calls)
	}
	if !strings.Contains(buf.String(), "throttled") {
		t.Error("status output should mention the throttle")
	}
}

func TestHarvestSoftTimeoutReturnsPartial(t *testing.T) {
	h := withTestServer(t, twoPageHandler(t))

	zero := time.Duration(0)
	var buf strings.Builder
	records, err := h.Harvest(context.Background(), Options{Category: "physics", Timeout: &zero}, &buf)
	if err != nil {
		t.Fatalf("soft timeout is not an error: %v", err)
	}
	// Page one only: partial, not empty.
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2 (first page only)", len(records))
	}
	if !strings.Contains(buf.String(), "soft timeout") {
		t.Error("status output should mention the soft timeout")
	}
}

func TestHarvestStopsWithoutToken(t *testing.T) {
	var calls int32
	h := withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, pageTwoXML)
	}))

	var buf strings.Builder
	records, err := h.Harvest(context.Background(), Options{Category: "physics"}, &buf)
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1", len(records))
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("calls = %d, absent token should end the loop", calls)
	}
}

func TestHarvestStopsOnEmptyPageDespiteToken(t *testing.T) {
	const emptyWithToken = `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
  <ListRecords>
    <resumptionToken>4810|2001</resumptionToken>
  </ListRecords>
</OAI-PMH>`

	var calls int32
	h := withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, emptyWithToken)
	}))

	var buf strings.Builder
	records, err := h.Harvest(context.Background(), Options{Category: "physics"}, &buf)
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("calls = %d, an empty page ends the stream even with a token", calls)
	}
}

func TestHarvestNoRecordsMatch(t *testing.T) {
	const noMatch = `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
  <error code="noRecordsMatch">no records match the request</error>
</OAI-PMH>`

	h := withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, noMatch)
	}))

	var buf strings.Builder
	records, err := h.Harvest(context.Background(), Options{Category: "physics"}, &buf)
	if err != nil {
		t.Fatalf("noRecordsMatch is an empty result, not an error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestHarvestProtocolErrorIsFatal(t *testing.T) {
	const badArgument = `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
  <error code="badArgument">set is unknown</error>
</OAI-PMH>`

	h := withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, badArgument)
	}))

	var buf strings.Builder
	_, err := h.Harvest(context.Background(), Options{Category: "nope"}, &buf)
	if err == nil || !strings.Contains(err.Error(), "badArgument") {
		t.Errorf("expected protocol error, got: %v", err)
	}
}

func TestHarvestHTTPErrorIsFatal(t *testing.T) {
	h := withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	var buf strings.Builder
	_, err := h.Harvest(context.Background(), Options{Category: "physics"}, &buf)
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("expected HTTP error, got: %v", err)
	}
}

func TestHarvestMalformedXMLIsFatal(t *testing.T) {
	h := withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<OAI-PMH><ListRecords>")
	}))

	var buf strings.Builder
	_, err := h.Harvest(context.Background(), Options{Category: "physics"}, &buf)
	if err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("expected parse error, got: %v", err)
	}
}

func TestHarvestMissingKeynameIsFatal(t *testing.T) {
	const noKeyname = `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
  <ListRecords>
    <record>
      <metadata>
        <arXiv xmlns="http://arxiv.org/OAI/arXiv/">
          <id>2301.07041</id>
          <authors><author><forenames>Jane</forenames></author></authors>
        </arXiv>
      </metadata>
    </record>
  </ListRecords>
</OAI-PMH>`

	h := withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, noKeyname)
	}))

	var buf strings.Builder
	_, err := h.Harvest(context.Background(), Options{Category: "physics"}, &buf)
	if err == nil || !strings.Contains(err.Error(), "keyname") {
		t.Errorf("expected keyname error, got: %v", err)
	}
}

func TestHarvestInvalidFilterRejected(t *testing.T) {
	h := &Harvester{}
	var buf strings.Builder
	_, err := h.Harvest(context.Background(), Options{
		Category: "physics",
		Filter:   Filter{"subject": {"x"}},
	}, &buf)
	if err == nil || !strings.Contains(err.Error(), "subject") {
		t.Errorf("expected filter validation error, got: %v", err)
	}
}
