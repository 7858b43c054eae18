// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package oai

import "fmt"

// Error is an OAI-PMH protocol error element, returned inside an HTTP
// 200 envelope (e.g. badArgument, noRecordsMatch).
type Error struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

func (e Error) Error() string {
	return fmt.Sprintf("oai: %s: %s", e.Code, e.Message)
}

// NoRecordsMatch reports whether err is the protocol's empty-result
// condition, which callers treat as an empty list rather than a failure.
func NoRecordsMatch(err error) bool {
	oaiErr, ok := err.(Error)
	return ok && oaiErr.Code == "noRecordsMatch"
}

// ResumptionToken is the flow-control element of list responses (3.5).
// An absent element or empty chardata means the list is complete.
type ResumptionToken struct {
	Value            string `xml:",chardata"`
	Cursor           string `xml:"cursor,attr"`
	CompleteListSize string `xml:"completeListSize,attr"`
}

// Set is one entry of a ListSets response.
type Set struct {
	Spec string `xml:"setSpec"`
	Name string `xml:"setName"`
}

// ListSetsEnvelope is the response envelope of a ListSets request.
type ListSetsEnvelope struct {
	Error *Error          `xml:"error"`
	Sets  []Set           `xml:"ListSets>set"`
	Token ResumptionToken `xml:"ListSets>resumptionToken"`
}
