// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-harvest pipeline.
package types

// Record is one bibliographic entry harvested from the arXiv OAI-PMH
// endpoint. All scalar fields are normalized: trimmed, lowercased, with
// embedded newlines replaced by single spaces. A Record is never mutated
// after extraction.
type Record struct {
	// ID is the bare arXiv identifier (e.g. "2301.07041" or "hep-th/9901001").
	ID string `json:"id" yaml:"id"`

	// URL is the abstract page, derived from ID.
	URL string `json:"url" yaml:"url"`

	// Title is the normalized paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the normalized abstract text.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Categories is the space-separated category list as sent by arXiv.
	Categories string `json:"categories" yaml:"categories"`

	// DOI is the registered DOI, or "" when none exists.
	DOI string `json:"doi" yaml:"doi"`

	// Created is the submission date ("YYYY-MM-DD").
	Created string `json:"created" yaml:"created"`

	// Updated is the date of the latest revision, or "" for v1-only papers.
	Updated string `json:"updated" yaml:"updated"`

	// Authors lists author last names in document order.
	Authors []string `json:"authors" yaml:"authors"`

	// AuthorsFullnames lists "forenames keyname" strings, parallel to Authors.
	AuthorsFullnames []string `json:"authors_fullnames" yaml:"authors_fullnames"`

	// Affiliation lists one affiliation per author, or is empty when any
	// author lacks one.
	Affiliation []string `json:"affiliation" yaml:"affiliation"`
}
