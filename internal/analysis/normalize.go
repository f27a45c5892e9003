// Package analysis implements the in-memory transforms behind the
// dashboard pages: base-100 rebasing of price series, top-N coin
// selection, and summary statistics.
package analysis

import (
	"fmt"
	"sort"

	"crossmarket/internal/domain"
)

// Frame holds a set of series rebased to base 100 and aligned on a shared
// date axis. Series[id][i] belongs to Dates[i]; a nil entry marks a date
// where that asset has no observation (a gap, never zero). Excluded lists
// the ids that had no observation at all inside the requested range.
type Frame struct {
	Dates    []string
	Series   map[string][]*float64
	Excluded []string
}

// Normalize rebases every series to 100 at its own first observation
// inside [start, end] and aligns all series on the sorted union of their
// observation dates. Empty bounds are open-ended. A zero or negative base
// value is rejected with InvalidDataError because dividing by it would
// produce nonsense ratios.
func Normalize(series map[string][]domain.PricePoint, start, end string) (Frame, error) {
	bounds := domain.DateRange{Start: start, End: end}

	inRange := make(map[string][]domain.PricePoint, len(series))
	dateSet := make(map[string]struct{})
	var excluded []string

	for id, points := range series {
		var kept []domain.PricePoint
		for _, p := range points {
			if bounds.Contains(p.Date) {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			excluded = append(excluded, id)
			continue
		}
		// Inputs are normally date-ascending already; sorting here keeps
		// the base-value pick correct for callers that are not.
		sort.Slice(kept, func(i, j int) bool { return kept[i].Date < kept[j].Date })
		inRange[id] = kept
		for _, p := range kept {
			dateSet[p.Date] = struct{}{}
		}
	}
	sort.Strings(excluded)

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	index := make(map[string]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	out := make(map[string][]*float64, len(inRange))
	for id, points := range inRange {
		base := points[0].Value
		if base <= 0 {
			return Frame{}, &domain.InvalidDataError{
				Asset:  id,
				Reason: fmt.Sprintf("base value %v at %s cannot anchor a base-100 series", base, points[0].Date),
			}
		}
		row := make([]*float64, len(dates))
		for _, p := range points {
			// p.Value/base is exactly 1 at the base point, so the first
			// rebased value is exactly 100.
			v := p.Value / base * 100
			row[index[p.Date]] = &v
		}
		out[id] = row
	}

	return Frame{Dates: dates, Series: out, Excluded: excluded}, nil
}
