package detection

import "testing"

func TestProbeWhitePatch(t *testing.T) {
	r := uniformRaster(60, 60, 10)
	r.Set(30, 49, 200, 200, 200) // 19 to the right: last probed pixel
	r.Set(50, 30, 200, 200, 200) // 20 below: just out of reach
	r.Set(30, 20, 120, 120, 120) // not strictly above the threshold

	tests := []struct {
		d    Direction
		want bool
	}{
		{Right, true},
		{Down, false},
		{Left, false},
		{Up, false},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := ProbeWhitePatch(r, 30, 30, tt.d, 20, 120); got != tt.want {
				t.Errorf("ProbeWhitePatch(%s) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestProbeWhitePatch_StartsAtAnchor(t *testing.T) {
	r := uniformRaster(10, 10, 10)
	r.Set(5, 5, 255, 255, 255)

	for _, d := range directions {
		if !ProbeWhitePatch(r, 5, 5, d, 20, 120) {
			t.Errorf("%s: expected bright anchor to count", d)
		}
	}
}

func TestProbeWhitePatch_LeavesImage(t *testing.T) {
	// bright pixels exist only on the far side; rays must not wrap around
	r := uniformRaster(30, 30, 10)
	fillRect(r, 25, 0, 5, 30, 220)

	if ProbeWhitePatch(r, 3, 10, Up, 20, 120) {
		t.Error("Up: expected not found when the ray exits the image")
	}
	if ProbeWhitePatch(r, 10, 3, Left, 20, 120) {
		t.Error("Left: expected not found when the ray exits the image")
	}
	if !ProbeWhitePatch(r, 10, 10, Down, 20, 120) {
		t.Error("Down: expected bright band to be found")
	}
}

func TestScoreBoundaries_AllSides(t *testing.T) {
	r := uniformRaster(60, 60, 10)
	r.Set(35, 30, 200, 200, 200)
	r.Set(25, 30, 200, 200, 200)
	r.Set(30, 35, 200, 200, 200)
	r.Set(30, 25, 200, 200, 200)

	scored := ScoreBoundaries(r, []Component{{Row: 30, Col: 30, Size: 100}}, DefaultParams())
	if len(scored) != 1 {
		t.Fatalf("Expected 1 scored component, got %d", len(scored))
	}
	if scored[0].Score != 4 {
		t.Errorf("score = %d, want 4", scored[0].Score)
	}
	if scored[0].Found != [4]bool{true, true, true, true} {
		t.Errorf("found = %v, want all directions", scored[0].Found)
	}
}

func TestScoreBoundaries_PartialAndNone(t *testing.T) {
	r := uniformRaster(60, 60, 10)
	r.Set(40, 10, 200, 200, 200) // below the first anchor only

	scored := ScoreBoundaries(r, []Component{
		{Row: 30, Col: 10, Size: 60},
		{Row: 30, Col: 45, Size: 60},
	}, DefaultParams())

	if scored[0].Score != 1 || !scored[0].Found[Down] {
		t.Errorf("first = %+v, want score 1 downward", scored[0])
	}
	if scored[1].Score != 0 {
		t.Errorf("second score = %d, want 0", scored[1].Score)
	}
}

func TestBestCandidate(t *testing.T) {
	scored := []ScoredComponent{
		{Component: Component{Row: 1, Col: 1, Size: 60}, Score: 2},
		{Component: Component{Row: 2, Col: 2, Size: 60}, Score: 3},
		{Component: Component{Row: 3, Col: 3, Size: 60}, Score: 3},
		{Component: Component{Row: 4, Col: 4, Size: 60}, Score: 1},
	}

	best, ok := BestCandidate(scored)
	if !ok {
		t.Fatal("Expected a best candidate")
	}
	if best.Row != 2 || best.Score != 3 {
		t.Errorf("best = %+v, want first of the tied top scores", best)
	}
}

func TestBestCandidate_AllZero(t *testing.T) {
	scored := []ScoredComponent{
		{Component: Component{Row: 9, Col: 9, Size: 60}},
		{Component: Component{Row: 8, Col: 8, Size: 60}},
	}

	best, ok := BestCandidate(scored)
	if !ok || best.Row != 9 {
		t.Errorf("best = %+v ok=%v, want first entry", best, ok)
	}
}

func TestBestCandidate_Empty(t *testing.T) {
	if _, ok := BestCandidate(nil); ok {
		t.Error("Expected ok=false for empty input")
	}
}

func TestDirectionString(t *testing.T) {
	want := map[Direction]string{Down: "down", Right: "right", Up: "up", Left: "left", Direction(9): "unknown"}
	for d, s := range want {
		if d.String() != s {
			t.Errorf("Direction(%d).String() = %q, want %q", int(d), d.String(), s)
		}
	}
}
