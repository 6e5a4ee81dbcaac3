package lifecycle

import (
	"context"
	"time"

	"github.com/beansdev/beans/internal/index"
	"github.com/beansdev/beans/internal/types"
)

// TidyReport summarizes what a Tidy pass did.
type TidyReport struct {
	Archived       []string
	ClaimsReleased []string
	Warnings       []index.Warning
}

// Tidy performs three batch-maintenance steps: archiving closed active
// beans, releasing claims older than staleAfter, and rebuilding the
// index. staleAfter <= 0 skips claim release entirely: zero means tidy
// never auto-releases claims.
func (e *Engine) Tidy(ctx context.Context, staleAfter time.Duration) (TidyReport, error) {
	var report TidyReport

	paths, err := e.Store.WalkActive()
	if err != nil {
		return report, err
	}

	now := e.now()
	for _, path := range paths {
		b, form, err := e.Store.LoadPath(path, false)
		if err != nil {
			return report, err
		}

		if b.Status == types.StatusClosed {
			if _, err := e.Store.Archive(path, closedAtOr(b, now)); err != nil {
				return report, err
			}
			report.Archived = append(report.Archived, b.ID)
			continue
		}

		if staleAfter > 0 && b.Status == types.StatusInProgress && b.ClaimedAt != nil {
			if now.Sub(*b.ClaimedAt) > staleAfter {
				b.Status = types.StatusOpen
				b.ClaimedBy = ""
				b.ClaimedAt = nil
				b.UpdatedAt = now
				if _, err := e.Store.Save(b, form); err != nil {
					return report, err
				}
				report.ClaimsReleased = append(report.ClaimsReleased, b.ID)
			}
		}
	}

	idx, warnings, err := index.Build(ctx, e.Store, true)
	if err != nil {
		return report, err
	}
	if err := index.Save(e.Store.IndexPath(), idx); err != nil {
		return report, err
	}
	report.Warnings = warnings
	return report, nil
}

func closedAtOr(b *types.Bean, fallback time.Time) time.Time {
	if b.ClosedAt != nil {
		return *b.ClosedAt
	}
	return fallback
}
