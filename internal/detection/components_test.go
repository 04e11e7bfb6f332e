package detection

import (
	"context"
	"errors"
	"testing"
)

func TestExtractComponents_SingleBlock(t *testing.T) {
	m := backgroundMap(40, 40)
	carve(m, 10, 12, 10, 10)

	got, err := ExtractComponents(m, DefaultParams())
	if err != nil {
		t.Fatalf("ExtractComponents failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 component, got %d", len(got))
	}
	want := Component{Row: 10, Col: 12, Size: 100}
	if got[0] != want {
		t.Errorf("component = %+v, want %+v", got[0], want)
	}
}

func TestExtractComponents_NoCandidates(t *testing.T) {
	_, err := ExtractComponents(backgroundMap(30, 30), DefaultParams())
	if !errors.Is(err, ErrNoComponents) {
		t.Errorf("Expected ErrNoComponents, got %v", err)
	}
}

func TestExtractComponents_IgnoresUnwrittenBorder(t *testing.T) {
	m, err := Binarize(context.Background(), uniformRaster(30, 30, 200), singleWorker())
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}

	_, err = ExtractComponents(m, DefaultParams())
	if !errors.Is(err, ErrNoComponents) {
		t.Errorf("Expected border band to be ignored, got %v", err)
	}
}

func TestExtractComponents_DoesNotModifyMap(t *testing.T) {
	m := backgroundMap(40, 40)
	carve(m, 5, 5, 8, 9)
	before := m.Clone()

	if _, err := ExtractComponents(m, DefaultParams()); err != nil {
		t.Fatalf("ExtractComponents failed: %v", err)
	}
	for i := range m.Cells {
		if m.Cells[i] != before.Cells[i] {
			t.Fatalf("cell %d changed during extraction", i)
		}
	}
}

func TestFindComponents_AnchorIsFirstInScanOrder(t *testing.T) {
	m := backgroundMap(30, 30)
	// an L: vertical bar at col 10 rows 8..15, foot row 15 cols 4..10
	carve(m, 8, 10, 8, 1)
	carve(m, 15, 4, 1, 7)

	got := FindComponents(m, 5)
	if len(got) != 1 {
		t.Fatalf("Expected 1 component, got %d", len(got))
	}
	want := Component{Row: 8, Col: 10, Size: 8 + 6}
	if got[0] != want {
		t.Errorf("component = %+v, want %+v", got[0], want)
	}
}

func TestFindComponents_FourConnectivity(t *testing.T) {
	m := backgroundMap(20, 20)
	// diagonal neighbours are separate components
	m.Set(5, 5, Candidate)
	m.Set(6, 6, Candidate)
	m.Set(7, 7, Candidate)

	got := FindComponents(m, 5)
	if len(got) != 3 {
		t.Fatalf("Expected 3 components, got %d: %+v", len(got), got)
	}
	for _, c := range got {
		if c.Size != 1 {
			t.Errorf("component %+v: expected size 1", c)
		}
	}
}

func TestFindComponents_ScanBand(t *testing.T) {
	m := backgroundMap(20, 20)
	// rows/cols 0..1 are below the band; 15 is the last anchor row/col,
	// 16 reachable by traversal only, 17..19 unreachable
	m.Set(1, 8, Candidate)
	m.Set(8, 1, Candidate)
	carve(m, 15, 8, 4, 1)
	m.Set(16, 12, Candidate)
	carve(m, 8, 17, 1, 3)

	got := FindComponents(m, 5)
	if len(got) != 1 {
		t.Fatalf("Expected 1 component, got %d: %+v", len(got), got)
	}
	want := Component{Row: 15, Col: 8, Size: 2}
	if got[0] != want {
		t.Errorf("component = %+v, want %+v", got[0], want)
	}
}

func TestFindComponents_LargeRegion(t *testing.T) {
	// one region spanning the whole band; must not exhaust the stack
	m := NewBinaryMap(200, 200)

	got := FindComponents(m, 5)
	if len(got) != 1 {
		t.Fatalf("Expected 1 component, got %d", len(got))
	}
	// band rows/cols 2..196 inclusive
	if want := 195 * 195; got[0].Size != want {
		t.Errorf("size = %d, want %d", got[0].Size, want)
	}
	if got[0].Row != 2 || got[0].Col != 2 {
		t.Errorf("anchor = (%d,%d), want (2,2)", got[0].Row, got[0].Col)
	}
}

func TestSelectCandidates(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name string
		in   []Component
		want []Component
	}{
		{
			name: "keeps sizes inside the band",
			in:   []Component{{1, 1, 10}, {2, 2, 100}, {3, 3, 499}, {4, 4, 500}, {5, 5, 50}},
			want: []Component{{2, 2, 100}, {3, 3, 499}},
		},
		{
			name: "falls back to largest",
			in:   []Component{{1, 1, 10}, {2, 2, 20}, {3, 3, 5}},
			want: []Component{{2, 2, 20}},
		},
		{
			name: "largest tie keeps first",
			in:   []Component{{1, 1, 900}, {2, 2, 900}},
			want: []Component{{1, 1, 900}},
		},
		{
			name: "single component outside band",
			in:   []Component{{7, 7, 3}},
			want: []Component{{7, 7, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectCandidates(tt.in, p)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelectCandidates_Empty(t *testing.T) {
	_, err := SelectCandidates(nil, DefaultParams())
	if !errors.Is(err, ErrNoComponents) {
		t.Errorf("Expected ErrNoComponents, got %v", err)
	}
}
