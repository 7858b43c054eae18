// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package oai builds OAI-PMH v2 protocol requests and decodes the shared
// parts of the response envelope. Only the two verbs the harvester needs
// (ListRecords, ListSets) are supported.
package oai

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrNoBaseURL = errors.New("oai: a base URL is required")
	ErrNoVerb    = errors.New("oai: no verb")
	ErrBadVerb   = errors.New("oai: unsupported verb")
)

// verbs lists the protocol verbs this client issues.
var verbs = map[string]bool{
	"ListRecords": true,
	"ListSets":    true,
}

// Request holds the parameters of one OAI-PMH request. Only the
// ResumptionToken field changes between pages of a list request.
type Request struct {
	BaseURL        string
	Verb           string
	MetadataPrefix string
	Set            string
	From           string
	Until          string

	// ResumptionToken is exclusive: when set, all other list arguments
	// are dropped (3.5, flow control). The server keys its pagination
	// state by the token alone.
	ResumptionToken string
}

// URL returns the absolute request URL. Date bounds are passed through
// verbatim; the caller supplies ISO "YYYY-MM-DD" strings.
func (r Request) URL() (string, error) {
	if r.BaseURL == "" {
		return "", ErrNoBaseURL
	}
	if r.Verb == "" {
		return "", ErrNoVerb
	}
	if !verbs[r.Verb] {
		return "", ErrBadVerb
	}

	values := url.Values{}
	values.Add("verb", r.Verb)

	if r.ResumptionToken != "" {
		values.Add("resumptionToken", r.ResumptionToken)
		return fmt.Sprintf("%s?%s", r.BaseURL, values.Encode()), nil
	}

	maybeAdd := func(k, v string) {
		if v != "" {
			values.Add(k, v)
		}
	}
	if r.Verb == "ListRecords" {
		maybeAdd("metadataPrefix", r.MetadataPrefix)
		maybeAdd("set", r.Set)
		maybeAdd("from", r.From)
		maybeAdd("until", r.Until)
	}
	return fmt.Sprintf("%s?%s", r.BaseURL, values.Encode()), nil
}
