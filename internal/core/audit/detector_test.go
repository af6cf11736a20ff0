// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/grimoire/internal/core/audit"
)

/*
TestDetector_Unresolved covers the count comparison, including its known blind spot.
*/
func TestDetector_Unresolved(t *testing.T) {
	detector := audit.NewDetector("")

	tests := []struct {
		name        string
		description string
		at          int
		markers     int
		flagged     bool
	}{
		{
			name:        "one_unresolved_one_rendered",
			description: `See @Fireball and <span data-type="mention" data-id="1">@Fireball</span>`,
			at:          2, markers: 1, flagged: true,
		},
		{
			name:        "fully_rendered",
			description: `<span data-type="mention">@Fireball</span>`,
			at:          1, markers: 1, flagged: false,
		},
		{
			name:        "no_markers",
			description: "Cost is 5@home",
			at:          1, markers: 0, flagged: true,
		},
		{
			name:        "no_at_at_all",
			description: "A bright streak flashes.",
			at:          0, markers: 0, flagged: false,
		},
		{
			name:        "marker_without_at",
			description: `<span data-type="mention">Fireball</span>`,
			at:          0, markers: 1, flagged: false,
		},
		{
			// Known limitation: an intentional "@" in prose next to a
			// resolved mention is reported as unresolved.
			name:        "literal_at_in_prose_is_flagged",
			description: `Email dm@example.com about <span data-type="mention">@Shield</span>`,
			at:          2, markers: 1, flagged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at, markers := detector.Counts(tt.description)
			assert.Equal(t, tt.at, at)
			assert.Equal(t, tt.markers, markers)
			assert.Equal(t, tt.flagged, detector.Unresolved(tt.description))
		})
	}
}

/*
TestDetector_CustomMarker verifies the marker is configuration, not markup knowledge.
*/
func TestDetector_CustomMarker(t *testing.T) {
	detector := audit.NewDetector(`class="ref"`)
	assert.Equal(t, `class="ref"`, detector.Marker())

	assert.False(t, detector.Unresolved(`<a class="ref">@Shield</a>`))
	assert.True(t, detector.Unresolved(`<span data-type="mention">@Shield</span>`))
}
