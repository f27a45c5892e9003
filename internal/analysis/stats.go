package analysis

import (
	"math"

	"crossmarket/internal/domain"
)

// SeriesStats summarizes one price series over an observed window.
type SeriesStats struct {
	Current float64 // last value by date
	High    float64
	Low     float64
	Average float64
	Count   int
}

// Summarize computes SeriesStats in a single pass over date-ascending
// points. Empty input yields the zero value with Count 0.
func Summarize(points []domain.PricePoint) SeriesStats {
	if len(points) == 0 {
		return SeriesStats{}
	}

	s := SeriesStats{Low: math.MaxFloat64}
	sum := 0.0
	for _, p := range points {
		s.Count++
		sum += p.Value
		if p.Value > s.High {
			s.High = p.Value
		}
		if p.Value < s.Low {
			s.Low = p.Value
		}
		s.Current = p.Value
	}
	s.Average = sum / float64(s.Count)
	return s
}
