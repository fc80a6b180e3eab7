package rules

import "testing"

func TestApplyConwayRules(t *testing.T) {
	tests := []struct {
		name      string
		neighbors int
		alive     bool
		want      bool
	}{
		{"live with 0 dies", 0, true, false},
		{"live with 1 dies", 1, true, false},
		{"live with 2 survives", 2, true, true},
		{"live with 3 survives", 3, true, true},
		{"live with 4 dies", 4, true, false},
		{"live with 8 dies", 8, true, false},
		{"dead with 2 stays dead", 2, false, false},
		{"dead with 3 is born", 3, false, true},
		{"dead with 4 stays dead", 4, false, false},
		{"dead with 0 stays dead", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyConwayRules(tt.neighbors, tt.alive); got != tt.want {
				t.Fatalf("ApplyConwayRules(%d, %v) = %v, want %v", tt.neighbors, tt.alive, got, tt.want)
			}
		})
	}
}

func TestNeighborOffsetsExcludeCenter(t *testing.T) {
	seen := map[[2]int]bool{}
	for _, off := range NeighborOffsets {
		if off == [2]int{0, 0} {
			t.Fatal("offsets must not include the cell itself")
		}
		if seen[off] {
			t.Fatalf("duplicate offset %v", off)
		}
		seen[off] = true
	}
}
