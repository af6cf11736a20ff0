// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/taibuivan/grimoire/internal/core/entity"
)

// Repository persists catalog records. Deleted records are invisible to
// every read.
type Repository interface {
	List(ctx context.Context, kind entity.Kind) ([]Record, error)
	Get(ctx context.Context, kind entity.Kind, id string) (*Record, error)
	Create(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error
	Delete(ctx context.Context, kind entity.Kind, id string) error

	// ListMentionCandidates returns the records whose description contains "@".
	ListMentionCandidates(ctx context.Context, kind entity.Kind) ([]entity.Unified, error)
}
