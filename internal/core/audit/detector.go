// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import "strings"

// DefaultMarker is the attribute signature the editor renders on a resolved mention.
const DefaultMarker = `data-type="mention"`

// Detector flags descriptions with unresolved "@" references.
//
// Every rendered mention is assumed to consume exactly one "@". A description
// is unresolved when it holds more "@" characters than rendered markers. A
// literal "@" in prose ("5@home") is therefore indistinguishable from a broken
// reference and is flagged too.
type Detector struct {
	marker string
}

// NewDetector builds a detector for marker, or [DefaultMarker] when empty.
func NewDetector(marker string) Detector {
	if marker == "" {
		marker = DefaultMarker
	}
	return Detector{marker: marker}
}

// Marker returns the signature this detector counts.
func (d Detector) Marker() string { return d.marker }

// Counts returns the raw "@" count and the rendered marker count.
func (d Detector) Counts(description string) (at, markers int) {
	return strings.Count(description, "@"), strings.Count(description, d.marker)
}

// Unresolved reports whether description has more "@" than markers.
func (d Detector) Unresolved(description string) bool {
	at, markers := d.Counts(description)
	return at > markers
}
