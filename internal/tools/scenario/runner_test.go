package scenario

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/crucible/internal/errors"

	_ "github.com/louisbranch/crucible/internal/systems/blade"
	_ "github.com/louisbranch/crucible/internal/systems/ember"
)

func runScript(t *testing.T, cfg Config, source string) (*Result, error) {
	t.Helper()

	scenario, err := LoadScenarioFromString(t.Name(), source)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	return NewRunner(cfg).RunScenario(context.Background(), scenario)
}

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	return cfg
}

func TestRunScenarioBaseline(t *testing.T) {
	result, err := runScript(t, quietConfig(), `local scene = Scenario.new("baseline")
scene:actor("Rynn", {job = "blade"})
scene:enemy("Dummy")
scene:engage("Rynn", "Dummy")
scene:cast("Rynn", "Slash")
scene:advance(1000)
scene:expect_damage({source = "Rynn", action = "Slash", amount = 200, at = 400, count = 1})
scene:expect_hp({target = "Dummy", hp = 999800})
return scene
`)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("failures = %v, want none", result.Failures)
	}
	if result.Duration != 1000 {
		t.Fatalf("duration = %d, want 1000", result.Duration)
	}
	if result.Report.TotalDamage != 200 {
		t.Fatalf("total damage = %d, want 200", result.Report.TotalDamage)
	}
}

func TestRunScenarioExpectedRejection(t *testing.T) {
	result, err := runScript(t, quietConfig(), `local scene = Scenario.new("rejection")
scene:actor("Rynn", {job = "blade"})
scene:enemy("Dummy")
scene:engage("Rynn", "Dummy")
scene:cast("Rynn", "Cleave"):expect("CAST_COMBO_REQUIRED")
return scene
`)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("failures = %v, want none", result.Failures)
	}
}

func TestRunScenarioStrictFailureNamesStep(t *testing.T) {
	_, err := runScript(t, quietConfig(), `local scene = Scenario.new("strict")
scene:actor("Rynn", {job = "blade"})
scene:enemy("Dummy")
scene:engage("Rynn", "Dummy")
scene:cast("Rynn", "Slash")
scene:advance(1000)
scene:expect_damage({source = "Rynn", amount = 999})
return scene
`)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsCode(err, apperrors.CodeScenarioAssertion) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeScenarioAssertion)
	}
	if !strings.Contains(err.Error(), "step 6 (expect_damage)") {
		t.Fatalf("error = %q, want step 6 (expect_damage)", err.Error())
	}
}

func TestRunScenarioLogOnlyCollectsFailures(t *testing.T) {
	cfg := quietConfig()
	cfg.Assertions = AssertionLogOnly

	result, err := runScript(t, cfg, `local scene = Scenario.new("logonly")
scene:actor("Rynn", {job = "blade"})
scene:enemy("Dummy")
scene:engage("Rynn", "Dummy")
scene:cast("Rynn", "Slash")
scene:advance(1000)
scene:expect_damage({source = "Rynn", amount = 999})
scene:expect_hp({target = "Dummy", hp = 1})
return scene
`)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if len(result.Failures) != 2 {
		t.Fatalf("failures = %d, want both recorded: %v", len(result.Failures), result.Failures)
	}
}

func TestRunScenarioDoT(t *testing.T) {
	result, err := runScript(t, quietConfig(), `local scene = Scenario.new("searing")
scene:actor("Sable", {job = "ember"})
scene:enemy("Dummy")
scene:engage("Sable", "Dummy")
scene:cast("Sable", "Flashfire")
scene:advance(10000)
scene:expect_status({target = "Dummy", status = "Searing", source = "Sable"})
scene:expect_damage({source = "Sable", status = "Searing", count = 3, amount = 40})
scene:expect_damage({source = "Sable", action = "Flashfire", count = 1, amount = 120})
return scene
`)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("failures = %v, want none", result.Failures)
	}
}

func TestRunScenarioFlankPositional(t *testing.T) {
	result, err := runScript(t, quietConfig(), `local scene = Scenario.new("flank")
scene:actor("Rynn", {job = "blade", x = 0, y = -1})
scene:enemy("Dummy", {x = 0, y = 0})
scene:engage("Rynn", "Dummy")

-- Five slashes bank 50 momentum
scene:cast("Rynn", "Slash")
scene:advance(2500)
scene:cast("Rynn", "Slash")
scene:advance(2500)
scene:cast("Rynn", "Slash")
scene:advance(2500)
scene:cast("Rynn", "Slash")
scene:advance(2500)
scene:cast("Rynn", "Slash")
scene:advance(2500)

-- Step to the side and spend it
scene:move("Rynn", {x = 2, y = 0})
scene:cast("Rynn", "Execute")
scene:advance(1000)
scene:expect_damage({source = "Rynn", action = "Execute", amount = 340, count = 1})
return scene
`)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("failures = %v, want none", result.Failures)
	}
	if result.Report.TotalDamage != 5*200+340 {
		t.Fatalf("total damage = %d, want %d", result.Report.TotalDamage, 5*200+340)
	}
}

func TestRunScenarioSeededRolls(t *testing.T) {
	result, err := runScript(t, quietConfig(), `local scene = Scenario.new("seeded")
scene:seed(7)
scene:actor("Rynn", {job = "blade", crit = 1000, direct = 1000})
scene:enemy("Dummy")
scene:engage("Rynn", "Dummy")
scene:cast("Rynn", "Slash")
scene:advance(1000)
scene:expect_damage({source = "Rynn", action = "Slash", count = 1, amount = 350})
return scene
`)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("failures = %v, want none", result.Failures)
	}
}

func TestRunScenarioUnknownActionIsHard(t *testing.T) {
	cfg := quietConfig()
	cfg.Assertions = AssertionLogOnly

	_, err := runScript(t, cfg, `local scene = Scenario.new("unknown")
scene:actor("Rynn", {job = "blade"})
scene:enemy("Dummy")
scene:engage("Rynn", "Dummy")
scene:cast("Rynn", "Moonfall")
return scene
`)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsCode(err, apperrors.CodeScenarioStep) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeScenarioStep)
	}
}

func TestRunScenarioUnknownJob(t *testing.T) {
	_, err := runScript(t, quietConfig(), `local scene = Scenario.new("nojob")
scene:actor("Rynn", {job = "bard"})
return scene
`)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `unknown job "bard"`) {
		t.Fatalf("error = %q, want unknown job", err.Error())
	}
}

func TestRunScenarioSeedAfterSpawnFails(t *testing.T) {
	_, err := runScript(t, quietConfig(), `local scene = Scenario.new("lateseed")
scene:actor("Rynn", {job = "blade"})
scene:seed(7)
return scene
`)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "seed must precede") {
		t.Fatalf("error = %q, want seed must precede", err.Error())
	}
}
