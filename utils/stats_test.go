package utils

import (
	"math"
	"testing"
	"time"
)

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 100, 500*time.Millisecond)
	if s.GenerationsPerSecond != 2 {
		t.Fatalf("gen/sec = %v, want 2", s.GenerationsPerSecond)
	}
	if s.AveragePopulation != 100 {
		t.Fatalf("average = %v, want 100", s.AveragePopulation)
	}

	s.Update(2, 200, 0)
	if math.Abs(s.AveragePopulation-110) > 1e-9 {
		t.Fatalf("average = %v, want 110", s.AveragePopulation)
	}
	if s.TotalGenerations != 2 || s.ActiveCells != 200 {
		t.Fatalf("stats = %+v", s)
	}

	s.Reset()
	if s.TotalGenerations != 0 || s.AveragePopulation != 0 || s.StartTime.IsZero() {
		t.Fatalf("after Reset stats = %+v", s)
	}
}
