package scoring

import "testing"

func TestRatingExactValues(t *testing.T) {
	cases := []struct {
		name       string
		emails     int
		phones     int
		whatsapps  int
		hasAddress bool
		expected   float64
	}{
		{"no signals", 0, 0, 0, false, 1.0},
		{"single email", 1, 0, 0, false, 1.8},
		{"single phone", 0, 1, 0, false, 1.6},
		{"single whatsapp", 0, 0, 1, false, 1.4},
		{"address only", 0, 0, 0, true, 1.5},
		{"one of each", 1, 1, 1, true, 3.3},
		{"two emails one phone", 2, 1, 0, false, 3.2},
		{"channel ceilings", 10, 10, 10, false, 5.0},
		{"everything maxed", 10, 10, 10, true, 5.0},
	}

	for _, tc := range cases {
		if got := Rating(tc.emails, tc.phones, tc.whatsapps, tc.hasAddress); got != tc.expected {
			t.Fatalf("%s: Rating = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestRatingCeilingsPerChannel(t *testing.T) {
	// Three emails hit the 2.0 email ceiling; more emails add nothing.
	if Rating(3, 0, 0, false) != Rating(30, 0, 0, false) {
		t.Fatalf("expected email contribution to cap")
	}
	if got := Rating(3, 0, 0, false); got != 3.0 {
		t.Fatalf("expected capped email score 3.0, got %v", got)
	}
	if got := Rating(0, 3, 0, false); got != 2.5 {
		t.Fatalf("expected capped phone score 2.5, got %v", got)
	}
	if got := Rating(0, 0, 3, false); got != 2.0 {
		t.Fatalf("expected capped whatsapp score 2.0, got %v", got)
	}
}

func TestRatingMonotonic(t *testing.T) {
	prev := 0.0
	for i := 0; i <= 5; i++ {
		got := Rating(i, i, i, i > 0)
		if got < prev {
			t.Fatalf("rating decreased at %d signals: %v < %v", i, got, prev)
		}
		prev = got
	}
}
