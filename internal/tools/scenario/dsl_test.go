package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/crucible/internal/errors"
)

func TestLoadScenarioBuildsSteps(t *testing.T) {
	path := writeScenarioFixture(t, `-- Setup
local scene = Scenario.new("duel")
scene:actor("Rynn", {job = "blade", level = 90})
scene:enemy("Dummy", {hp = 500000})
scene:engage("Rynn", "Dummy")

-- Rotation
scene:cast("Rynn", "Slash")
scene:advance(1000)
scene:expect_damage({source = "Rynn", amount = 200})

return scene
`)

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "duel" {
		t.Fatalf("name = %q, want duel", scenario.Name)
	}

	want := []string{"actor", "enemy", "engage", "cast", "advance", "expect_damage"}
	if len(scenario.Steps) != len(want) {
		t.Fatalf("steps = %d, want %d", len(scenario.Steps), len(want))
	}
	for i, kind := range want {
		if scenario.Steps[i].Kind != kind {
			t.Fatalf("step %d kind = %q, want %q", i, scenario.Steps[i].Kind, kind)
		}
	}

	actor := scenario.Steps[0]
	if actor.Args["name"] != "Rynn" || actor.Args["job"] != "blade" {
		t.Fatalf("actor args = %v, want name Rynn job blade", actor.Args)
	}
	if actor.Args["level"] != 90 {
		t.Fatalf("actor level = %v, want 90", actor.Args["level"])
	}

	cast := scenario.Steps[3]
	if cast.Args["actor"] != "Rynn" || cast.Args["action"] != "Slash" {
		t.Fatalf("cast args = %v, want actor Rynn action Slash", cast.Args)
	}
}

func TestCastChainingRecordsExpectedCode(t *testing.T) {
	path := writeScenarioFixture(t, `local scene = Scenario.new("chain")
scene:actor("Rynn", {job = "blade"})

-- Cleave without its combo should bounce
scene:cast("Rynn", "Cleave"):expect("CAST_COMBO_REQUIRED")

return scene
`)

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if len(scenario.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(scenario.Steps))
	}

	cast := scenario.Steps[1]
	if cast.Kind != "cast" {
		t.Fatalf("step kind = %q, want cast", cast.Kind)
	}
	if cast.Args["expect"] != "CAST_COMBO_REQUIRED" {
		t.Fatalf("expect = %v, want CAST_COMBO_REQUIRED", cast.Args["expect"])
	}
}

func TestLoadScenarioNameFallsBackToFile(t *testing.T) {
	path := writeScenarioFixture(t, `return Scenario.new()`)

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "scenario" {
		t.Fatalf("name = %q, want scenario", scenario.Name)
	}
}

func TestLoadScenarioRequiresScenarioReturn(t *testing.T) {
	path := writeScenarioFixture(t, `return 42`)

	_, err := LoadScenarioFromFile(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "must return Scenario") {
		t.Fatalf("error = %q, want must return Scenario", err.Error())
	}
}

func TestLoadScenarioFromString(t *testing.T) {
	scenario, err := LoadScenarioFromString("inline", `local scene = Scenario.new()
scene:advance(2500)
return scene
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "inline" {
		t.Fatalf("name = %q, want inline", scenario.Name)
	}
	if len(scenario.Steps) != 1 || scenario.Steps[0].Kind != "advance" {
		t.Fatalf("steps = %+v, want one advance", scenario.Steps)
	}
	if scenario.Steps[0].Args["ms"] != 2500 {
		t.Fatalf("ms = %v, want 2500", scenario.Steps[0].Args["ms"])
	}
}

func TestLoadScenarioReportsParseCode(t *testing.T) {
	_, err := LoadScenarioFromString("bad", `this is not lua`)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsCode(err, apperrors.CodeScenarioParse) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeScenarioParse)
	}
}

func writeScenarioFixture(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.lua")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}
