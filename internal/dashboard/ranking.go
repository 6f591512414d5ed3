package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

const defaultTopProjects = 5

// TopPerformingProjects ranks every project by paid revenue and returns the
// first limit entries (default 5). Summaries are computed concurrently, one
// goroutine per project, and settle independently: a failed summary is
// logged and ranked with zero metrics instead of failing the batch.
func (s *Service) TopPerformingProjects(ctx context.Context, limit int) ([]ProjectRankEntry, error) {
	if limit <= 0 {
		limit = defaultTopProjects
	}

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list projects: %w", err)
	}

	// Each goroutine writes only its own slot; entries is merged after all
	// summaries settle.
	entries := make([]ProjectRankEntry, len(projects))
	var wg sync.WaitGroup
	for i, project := range projects {
		wg.Add(1)
		go func(i int, project Project) {
			defer wg.Done()
			entry := ProjectRankEntry{
				ProjectID:     project.ID,
				ProjectName:   project.Name,
				ProjectNumber: project.Number,
			}
			summary, err := s.projects.Summarize(ctx, project.ID)
			if err != nil {
				s.logger.Warn("project summary failed, ranking with zero metrics",
					slog.String("project_id", project.ID.String()),
					slog.Any("error", err))
			} else {
				entry.Revenue = summary.PaidTotal
				entry.Expenses = summary.ExpensesTotal
				entry.Profit = summary.Profit
				entry.ProfitMargin = summary.ProfitMargin
			}
			entries[i] = entry
		}(i, project)
	}
	wg.Wait()

	// Stable sort keeps fetch order for revenue ties.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Revenue > entries[j].Revenue
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
