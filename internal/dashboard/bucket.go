package dashboard

import "time"

type monthKey struct {
	year  int
	month time.Month
}

func monthKeyOf(t time.Time) monthKey {
	return monthKey{year: t.Year(), month: t.Month()}
}

// monthlyTotals buckets records into one slot per calendar month of
// [start, end] inclusive. Seeding walks month by month so boundary months
// are neither skipped nor duplicated; records dated outside the range miss
// every seeded key and are ignored. The emitted series follows seeding
// order, which is ascending by (year, month).
func monthlyTotals[R any](records []R, dateOf func(R) time.Time, valueOf func(R) float64, start, end time.Time) []MonthlyDataPoint {
	totals := make(map[monthKey]float64)
	var order []monthKey

	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(last) {
		key := monthKeyOf(cursor)
		totals[key] = 0
		order = append(order, key)
		cursor = cursor.AddDate(0, 1, 0)
	}

	for _, record := range records {
		at := dateOf(record)
		if at.IsZero() {
			continue
		}
		key := monthKeyOf(at)
		if _, ok := totals[key]; !ok {
			continue
		}
		totals[key] += valueOf(record)
	}

	points := make([]MonthlyDataPoint, 0, len(order))
	for _, key := range order {
		points = append(points, MonthlyDataPoint{Month: int(key.month), Year: key.year, Value: totals[key]})
	}
	return points
}
