package cooldown

import (
	"testing"

	"github.com/louisbranch/crucible/internal/core/timeline"
)

func TestAvailableFresh(t *testing.T) {
	var g Group
	for _, charges := range []uint8{0, 1, 2, 5} {
		if !g.Available(30000, charges) {
			t.Fatalf("Available(30000, %d) = false on fresh group", charges)
		}
	}
}

func TestRechargeLaw(t *testing.T) {
	const cd timeline.Time = 30000

	tests := []struct {
		name    string
		charges uint8
	}{
		{"single charge", 1},
		{"two charges", 2},
		{"three charges", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Group

			// Consuming every charge back-to-back exhausts the group.
			for i := uint8(0); i < tt.charges; i++ {
				if !g.Available(cd, tt.charges) {
					t.Fatalf("Available() = false before charge %d consumed", i+1)
				}
				g.Apply(cd, tt.charges)
			}
			if g.Available(cd, tt.charges) {
				t.Fatal("Available() = true with every charge consumed")
			}

			// One full cooldown restores exactly one charge.
			g.Advance(cd - 1)
			if g.Available(cd, tt.charges) {
				t.Fatal("Available() = true one tick early")
			}
			g.Advance(1)
			if !g.Available(cd, tt.charges) {
				t.Fatal("Available() = false after a full cooldown")
			}

			// The rest of the debt pays off by the stated bound.
			g.Advance(cd * timeline.Time(tt.charges-1))
			var fresh Group
			if g != fresh {
				t.Fatalf("debt = %d after full recharge, want 0", g.debt)
			}
		})
	}
}

func TestApplySaturates(t *testing.T) {
	const cd timeline.Time = 60000
	var g Group

	for i := 0; i < 5; i++ {
		g.Apply(cd, 2)
	}
	if g.debt != 2*cd {
		t.Fatalf("debt = %d after over-application, want cap %d", g.debt, 2*cd)
	}

	// The wait is still a single cooldown for the first charge back.
	g.Advance(cd)
	if !g.Available(cd, 2) {
		t.Fatal("Available() = false one cooldown after saturation")
	}
}

func TestAdvanceSaturates(t *testing.T) {
	var g Group
	g.Apply(2500, 1)
	g.Advance(1 << 30)

	if g.debt != 0 {
		t.Fatalf("debt = %d after huge advance, want 0", g.debt)
	}
	if !g.Available(2500, 1) {
		t.Fatal("Available() = false after huge advance")
	}
}

func TestReadyIn(t *testing.T) {
	const cd timeline.Time = 2500
	var g Group

	if got := g.ReadyIn(cd, 1); got != 0 {
		t.Fatalf("ReadyIn() = %d on fresh group, want 0", got)
	}

	g.Apply(cd, 1)
	if got := g.ReadyIn(cd, 1); got != cd {
		t.Fatalf("ReadyIn() = %d after apply, want %d", got, cd)
	}

	g.Advance(1000)
	if got := g.ReadyIn(cd, 1); got != 1500 {
		t.Fatalf("ReadyIn() = %d, want 1500", got)
	}
}

func TestReadyInWithCharges(t *testing.T) {
	const cd timeline.Time = 60000
	var g Group

	g.Apply(cd, 2)
	if got := g.ReadyIn(cd, 2); got != 0 {
		t.Fatalf("ReadyIn() = %d with one charge left, want 0", got)
	}

	g.Apply(cd, 2)
	if got := g.ReadyIn(cd, 2); got != cd {
		t.Fatalf("ReadyIn() = %d with both charges spent, want %d", got, cd)
	}
}
