// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package audit finds catalog records whose descriptions contain "@"
// references the editor never resolved into mention links.
package audit

import (
	"context"

	"github.com/taibuivan/grimoire/internal/core/entity"
)

// MentionIssue is one flagged record, with enough data to display it and
// re-fetch it for editing.
type MentionIssue struct {
	ID          string        `json:"_id"`
	Type        string        `json:"type"`
	Kind        entity.Kind   `json:"kind"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Source      string        `json:"source"`
	Status      entity.Status `json:"status"`
}

// CandidateSource lists the records of a kind whose description contains
// at least one "@". Returning extra records is harmless; the detector is exact.
type CandidateSource interface {
	ListMentionCandidates(ctx context.Context, kind entity.Kind) ([]entity.Unified, error)
}
