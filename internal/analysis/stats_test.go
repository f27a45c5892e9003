package analysis

import (
	"testing"

	"crossmarket/internal/domain"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]domain.PricePoint{
		{Date: "2025-01-01", Value: 50},
		{Date: "2025-01-02", Value: 70},
		{Date: "2025-01-03", Value: 60},
	})

	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.Current != 60 {
		t.Errorf("Current = %v, want 60 (last by date)", s.Current)
	}
	if s.High != 70 {
		t.Errorf("High = %v, want 70", s.High)
	}
	if s.Low != 50 {
		t.Errorf("Low = %v, want 50", s.Low)
	}
	if s.Average != 60 {
		t.Errorf("Average = %v, want 60", s.Average)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.Current != 0 || s.High != 0 || s.Low != 0 || s.Average != 0 {
		t.Errorf("Summarize(nil) = %+v, want all zero", s)
	}
}

func TestSummarizeSinglePoint(t *testing.T) {
	s := Summarize([]domain.PricePoint{{Date: "2025-01-01", Value: 42.5}})
	if s.Count != 1 || s.Current != 42.5 || s.High != 42.5 || s.Low != 42.5 || s.Average != 42.5 {
		t.Errorf("Summarize single = %+v, want all fields 42.5", s)
	}
}
