// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/internal/platform/ctxutil"
)

type Service struct {
	source   CandidateSource
	detector Detector
	issues   *prometheus.GaugeVec
}

// NewService builds an audit service. issues may be nil.
func NewService(source CandidateSource, detector Detector, issues *prometheus.GaugeVec) *Service {
	return &Service{source: source, detector: detector, issues: issues}
}

// Audit scans kinds (all kinds when empty) and returns the flagged records
// ordered by kind, then name. Type labels are localized to lang.
//
// Unlike search, a failed scan fails the audit: a partial report would read
// as "no issues" for the collection that could not be read.
func (service *Service) Audit(ctx context.Context, lang string, kinds []entity.Kind) ([]MentionIssue, error) {
	if len(kinds) == 0 {
		kinds = entity.Kinds
	}
	kinds = uniqueKinds(kinds)

	found := make([][]MentionIssue, len(kinds))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		group.Go(func() error {
			candidates, err := service.source.ListMentionCandidates(groupCtx, kind)
			if err != nil {
				return fmt.Errorf("audit: scan %s: %w", kind.Collection(), err)
			}
			found[i] = service.inspect(kind, lang, candidates)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	issues := make([]MentionIssue, 0)
	for i, kind := range kinds {
		issues = append(issues, found[i]...)
		if service.issues != nil {
			service.issues.WithLabelValues(string(kind)).Set(float64(len(found[i])))
		}
	}

	slices.SortStableFunc(issues, func(a, b MentionIssue) int {
		if order := kindOrder(a.Kind) - kindOrder(b.Kind); order != 0 {
			return order
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	ctxutil.GetLogger(ctx).InfoContext(ctx, "mention_audit_completed",
		slog.Int("kinds", len(kinds)),
		slog.Int("issues", len(issues)),
	)
	return issues, nil
}

// uniqueKinds drops repeated kinds, keeping first-seen order.
func uniqueKinds(kinds []entity.Kind) []entity.Kind {
	unique := make([]entity.Kind, 0, len(kinds))
	for _, kind := range kinds {
		if !slices.Contains(unique, kind) {
			unique = append(unique, kind)
		}
	}
	return unique
}

func (service *Service) inspect(kind entity.Kind, lang string, candidates []entity.Unified) []MentionIssue {
	var issues []MentionIssue
	for _, candidate := range candidates {
		if !service.detector.Unresolved(candidate.Description) {
			continue
		}
		issues = append(issues, MentionIssue{
			ID:          candidate.ID,
			Type:        kind.Label(lang),
			Kind:        kind,
			Name:        candidate.Name,
			Description: candidate.Description,
			Source:      candidate.Source,
			Status:      candidate.Status.OrDefault(),
		})
	}
	return issues
}

func kindOrder(kind entity.Kind) int {
	return slices.Index(entity.Kinds, kind)
}
