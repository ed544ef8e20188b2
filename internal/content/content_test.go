package content

import (
	"testing"

	"github.com/louisbranch/crucible/internal/combat"
	apperrors "github.com/louisbranch/crucible/internal/errors"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	mod, err := tables.LevelMod(90)
	if err != nil {
		t.Fatalf("LevelMod(90) error = %v", err)
	}
	if mod.Sub != 400 || mod.Div != 1900 {
		t.Fatalf("LevelMod(90) = %+v, want sub 400 div 1900", mod)
	}

	if got := len(tables.Levels()); got != 6 {
		t.Fatalf("len(Levels()) = %d, want 6", got)
	}
}

func TestLevelModUnknown(t *testing.T) {
	tables := MustLoad()

	_, err := tables.LevelMod(1)
	if !apperrors.IsCode(err, apperrors.CodeContentLevelUnknown) {
		t.Fatalf("LevelMod(1) error = %v, want %s", err, apperrors.CodeContentLevelUnknown)
	}
}

func TestScaleDurationBaseline(t *testing.T) {
	s := NewSpeedScaler(MustLoad())

	// Speed at the level baseline grants nothing.
	info := combat.DurationInfo{Level: 90, Speed: 400, HastePct: 100}
	if got := s.ScaleDuration(2500, info); got != 2500 {
		t.Fatalf("ScaleDuration(2500) = %d, want 2500", got)
	}

	// Below baseline never slows the action down.
	info.Speed = 100
	if got := s.ScaleDuration(2500, info); got != 2500 {
		t.Fatalf("ScaleDuration(2500) below baseline = %d, want 2500", got)
	}
}

func TestScaleDurationSpeed(t *testing.T) {
	s := NewSpeedScaler(MustLoad())

	// One full divisor above baseline grants 130 per-mille.
	info := combat.DurationInfo{Level: 90, Speed: 2300, HastePct: 100}
	if got := s.ScaleDuration(2500, info); got != 2175 {
		t.Fatalf("ScaleDuration(2500) = %d, want 2175", got)
	}
}

func TestScaleDurationHaste(t *testing.T) {
	s := NewSpeedScaler(MustLoad())

	info := combat.DurationInfo{Level: 90, Speed: 400, HastePct: 80}
	if got := s.ScaleDuration(2500, info); got != 2000 {
		t.Fatalf("ScaleDuration(2500) with 20%% haste = %d, want 2000", got)
	}

	// Speed and haste compound, flooring between steps.
	info.Speed = 2300
	if got := s.ScaleDuration(2500, info); got != 1740 {
		t.Fatalf("ScaleDuration(2500) speed+haste = %d, want 1740", got)
	}
}

func TestScaleDurationUnknownLevel(t *testing.T) {
	s := NewSpeedScaler(MustLoad())

	// Levels without coefficients scale by haste alone.
	info := combat.DurationInfo{Level: 13, Speed: 9999, HastePct: 80}
	if got := s.ScaleDuration(2500, info); got != 2000 {
		t.Fatalf("ScaleDuration(2500) = %d, want 2000", got)
	}
}
