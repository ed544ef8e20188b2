package scenario

import (
	"fmt"

	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/encounter"
	apperrors "github.com/louisbranch/crucible/internal/errors"
	"github.com/louisbranch/crucible/internal/systems"
)

func (r *Runner) runStep(state *scenarioState, step Step) error {
	switch step.Kind {
	case "seed":
		return r.runSeed(state, step)
	case "actor":
		return r.runActor(state, step)
	case "enemy":
		return r.runEnemy(state, step)
	case "engage":
		return r.runEngage(state, step)
	case "target":
		return r.runTarget(state, step)
	case "move":
		return r.runMove(state, step)
	case "face":
		return r.runFace(state, step)
	case "cast":
		return r.runCast(state, step)
	case "advance":
		return r.runAdvance(state, step)
	case "run":
		return r.runDrain(state, step)
	case "report":
		return r.runReport(state)
	case "expect_damage":
		return r.runExpectDamage(state, step)
	case "expect_status":
		return r.runExpectStatus(state, step)
	case "expect_hp":
		return r.runExpectHP(state, step)
	default:
		return stepErrorf("unknown step kind %q", step.Kind)
	}
}

// ensureEncounter builds the encounter on first use so a leading seed
// step can still pick the roll policy.
func (r *Runner) ensureEncounter(state *scenarioState) *encounter.Encounter {
	if state.enc == nil {
		cfg := encounter.Config{Registry: r.registry, Seed: state.seed}
		if !state.seeded {
			cfg.Rng = combat.NeverRng()
		}
		state.enc = encounter.New(cfg)
	}
	return state.enc
}

func (r *Runner) runSeed(state *scenarioState, step Step) error {
	if state.enc != nil {
		return stepErrorf("seed must precede the first actor")
	}
	value, ok := readInt(step.Args, "value")
	if !ok {
		return stepErrorf("seed requires a value")
	}
	state.seed = int64(value)
	state.seeded = true
	return nil
}

func (r *Runner) runActor(state *scenarioState, step Step) error {
	enc := r.ensureEncounter(state)
	name := requiredString(step.Args, "name")
	if name == "" {
		return stepErrorf("actor name is required")
	}
	if _, exists := state.actors[name]; exists {
		return stepErrorf("name %q is already taken", name)
	}

	jobName := optionalString(step.Args, "job", "")
	if jobName == "" {
		return stepErrorf("actor %q requires a job", name)
	}
	job := r.registry.FindName(jobName)
	if job == nil {
		return stepErrorf("unknown job %q", jobName)
	}

	cfg := encounter.ActorConfig{
		Name:    name,
		Job:     job.ID(),
		Version: optionalString(step.Args, "version", ""),
		Level:   uint8(optionalInt(step.Args, "level", 0)),
		Stats: status.Stats{
			Power:      int32(optionalInt(step.Args, "power", 0)),
			Speed:      int32(optionalInt(step.Args, "speed", 0)),
			CritRate:   int32(optionalInt(step.Args, "crit", 0)),
			DirectRate: int32(optionalInt(step.Args, "direct", 0)),
		},
		HP:       int64(optionalInt(step.Args, "hp", 0)),
		MP:       int32(optionalInt(step.Args, "mp", 0)),
		Position: readVec(step.Args, "x", "y"),
	}
	if facing, ok := readFacing(step.Args); ok {
		cfg.Facing = facing
	}

	h, err := enc.AddActor(cfg)
	if err != nil {
		return err
	}
	state.actors[name] = h
	state.jobs[name] = job
	return nil
}

func (r *Runner) runEnemy(state *scenarioState, step Step) error {
	enc := r.ensureEncounter(state)
	name := requiredString(step.Args, "name")
	if name == "" {
		return stepErrorf("enemy name is required")
	}
	if _, exists := state.actors[name]; exists {
		return stepErrorf("name %q is already taken", name)
	}

	cfg := encounter.EnemyConfig{
		Name:     name,
		HP:       int64(optionalInt(step.Args, "hp", 0)),
		Level:    uint8(optionalInt(step.Args, "level", 0)),
		Position: readVec(step.Args, "x", "y"),
	}
	if facing, ok := readFacing(step.Args); ok {
		cfg.Facing = facing
	}

	state.actors[name] = enc.AddEnemy(cfg)
	return nil
}

func (r *Runner) runEngage(state *scenarioState, step Step) error {
	source, err := state.handle(step.Args, "source")
	if err != nil {
		return err
	}
	target, err := state.handle(step.Args, "target")
	if err != nil {
		return err
	}
	return state.enc.Engage(source, target)
}

func (r *Runner) runTarget(state *scenarioState, step Step) error {
	source, err := state.handle(step.Args, "source")
	if err != nil {
		return err
	}
	target, err := state.handle(step.Args, "target")
	if err != nil {
		return err
	}
	return state.enc.SetTarget(source, target)
}

func (r *Runner) runMove(state *scenarioState, step Step) error {
	h, err := state.handle(step.Args, "name")
	if err != nil {
		return err
	}
	return state.enc.SetPosition(h, readVec(step.Args, "x", "y"))
}

func (r *Runner) runFace(state *scenarioState, step Step) error {
	h, err := state.handle(step.Args, "name")
	if err != nil {
		return err
	}
	return state.enc.SetFacing(h, readVec(step.Args, "x", "y"))
}

func (r *Runner) runCast(state *scenarioState, step Step) error {
	actorName := requiredString(step.Args, "actor")
	actionName := requiredString(step.Args, "action")
	if actorName == "" || actionName == "" {
		return stepErrorf("cast requires an actor and an action")
	}
	h, err := state.handle(step.Args, "actor")
	if err != nil {
		return err
	}
	job, ok := state.jobs[actorName]
	if !ok {
		return stepErrorf("%q has no job to cast with", actorName)
	}
	action, ok := systems.ActionByName(job, actionName)
	if !ok {
		return stepErrorf("job %s has no action %q", job.Name(), actionName)
	}

	castErr := state.enc.Cast(h, action)
	expect := optionalString(step.Args, "expect", "")
	if expect == "" {
		if castErr != nil {
			return state.asserts.Assertf("cast %s %s rejected: %v", actorName, actionName, castErr)
		}
		return nil
	}

	want := apperrors.Code(expect)
	if castErr == nil {
		return state.asserts.Assertf("cast %s %s succeeded, want rejection %s", actorName, actionName, want)
	}
	if got := apperrors.GetCode(castErr); got != want {
		return state.asserts.Assertf("cast %s %s rejected with %s, want %s", actorName, actionName, got, want)
	}
	return nil
}

func (r *Runner) runAdvance(state *scenarioState, step Step) error {
	ms, ok := readInt(step.Args, "ms")
	if !ok || ms < 0 {
		return stepErrorf("advance requires a non-negative ms")
	}
	enc := r.ensureEncounter(state)
	enc.RunUntil(enc.Time() + timeline.Time(ms))
	return nil
}

func (r *Runner) runDrain(state *scenarioState, step Step) error {
	enc := r.ensureEncounter(state)
	limit := optionalInt(step.Args, "limit", state.limit)
	if _, err := enc.RunToCompletion(limit); err != nil {
		return err
	}
	return nil
}

func (r *Runner) runReport(state *scenarioState) error {
	if state.enc == nil {
		return stepErrorf("report before any actors")
	}
	rep := state.enc.Report()
	r.logger.Printf("report: %dms, %d damage, %.1f dps", rep.Duration, rep.TotalDamage, rep.DPS)
	for _, actor := range rep.Actors {
		r.logger.Printf("  %s (%s): %d damage, %.1f dps", actor.Name, actor.Job, actor.TotalDamage, actor.DPS)
		for _, action := range actor.Actions {
			r.logger.Printf("    %s: %d hits, %d crit, %d direct, max %d",
				action.Name, action.Hits, action.Crits, action.Directs, action.MaxHit)
		}
	}
	return nil
}

func (r *Runner) runExpectDamage(state *scenarioState, step Step) error {
	if state.enc == nil {
		return stepErrorf("expect_damage before any actors")
	}
	rows, err := state.matchDamage(step.Args)
	if err != nil {
		return err
	}

	if count, ok := readInt(step.Args, "count"); ok {
		if len(rows) != count {
			return state.asserts.Assertf("damage rows = %d, want %d", len(rows), count)
		}
	} else if len(rows) == 0 {
		return state.asserts.Assertf("no damage rows matched")
	}

	if amount, ok := readInt(step.Args, "amount"); ok {
		for _, row := range rows {
			if int(row.Amount) != amount {
				return state.asserts.Assertf("damage = %d at %dms, want %d", row.Amount, row.Time, amount)
			}
		}
	}
	if total, ok := readInt(step.Args, "total"); ok {
		var sum int64
		for _, row := range rows {
			sum += int64(row.Amount)
		}
		if sum != int64(total) {
			return state.asserts.Assertf("total damage = %d, want %d", sum, total)
		}
	}
	if at, ok := readInt(step.Args, "at"); ok {
		if len(rows) == 0 {
			return state.asserts.Assertf("no damage row at %dms", at)
		}
		if rows[0].Time != timeline.Time(at) {
			return state.asserts.Assertf("first damage at %dms, want %dms", rows[0].Time, at)
		}
	}
	return nil
}

func (r *Runner) runExpectStatus(state *scenarioState, step Step) error {
	if state.enc == nil {
		return stepErrorf("expect_status before any actors")
	}
	targetName := requiredString(step.Args, "target")
	statusName := requiredString(step.Args, "status")
	if targetName == "" || statusName == "" {
		return stepErrorf("expect_status requires a target and a status")
	}
	h, err := state.handle(step.Args, "target")
	if err != nil {
		return err
	}
	desc, ok := status.Find(statusName)
	if !ok {
		return stepErrorf("unknown status %q", statusName)
	}
	a, ok := state.enc.Actor(h)
	if !ok {
		return stepErrorf("actor %q despawned", targetName)
	}

	var instance status.Instance
	var present bool
	if sourceName := optionalString(step.Args, "source", ""); sourceName != "" {
		source, err := state.handle(step.Args, "source")
		if err != nil {
			return err
		}
		instance, present = a.Statuses().Get(source, desc.ID)
	} else {
		for _, candidate := range a.Statuses().Active(nil) {
			if candidate.Desc.ID == desc.ID {
				instance, present = candidate, true
				break
			}
		}
	}

	wantActive := optionalBool(step.Args, "active", true)
	if present != wantActive {
		if wantActive {
			return state.asserts.Assertf("%s is missing %s", targetName, desc.Name)
		}
		return state.asserts.Assertf("%s still carries %s", targetName, desc.Name)
	}
	if !present {
		return nil
	}

	if stacks, ok := readInt(step.Args, "stacks"); ok && int(instance.Stacks) != stacks {
		return state.asserts.Assertf("%s %s stacks = %d, want %d", targetName, desc.Name, instance.Stacks, stacks)
	}
	if remaining, ok := readInt(step.Args, "remaining"); ok && instance.Remaining != timeline.Time(remaining) {
		return state.asserts.Assertf("%s %s remaining = %dms, want %dms", targetName, desc.Name, instance.Remaining, remaining)
	}
	return nil
}

func (r *Runner) runExpectHP(state *scenarioState, step Step) error {
	if state.enc == nil {
		return stepErrorf("expect_hp before any actors")
	}
	targetName := requiredString(step.Args, "target")
	if targetName == "" {
		return stepErrorf("expect_hp requires a target")
	}
	h, err := state.handle(step.Args, "target")
	if err != nil {
		return err
	}
	hp, ok := state.enc.HP(h)
	if !ok {
		return stepErrorf("actor %q despawned", targetName)
	}

	checked := false
	if want, ok := readInt(step.Args, "hp"); ok {
		checked = true
		if hp != int64(want) {
			return state.asserts.Assertf("%s hp = %d, want %d", targetName, hp, want)
		}
	}
	if below, ok := readInt(step.Args, "below"); ok {
		checked = true
		if hp >= int64(below) {
			return state.asserts.Assertf("%s hp = %d, want below %d", targetName, hp, below)
		}
	}
	if !checked {
		return stepErrorf("expect_hp requires hp or below")
	}
	return nil
}

// matchDamage filters journal damage and tick rows by the step's
// source, target, action, and status arguments.
func (state *scenarioState) matchDamage(args map[string]any) ([]encounter.Entry, error) {
	var (
		source, target             arena.Handle
		filterSource, filterTarget bool
		action                     combat.ActionID
		filterAction               bool
		statusID                   status.ID
		filterStatus               bool
	)

	if optionalString(args, "source", "") != "" {
		h, err := state.handle(args, "source")
		if err != nil {
			return nil, err
		}
		source, filterSource = h, true
	}
	if optionalString(args, "target", "") != "" {
		h, err := state.handle(args, "target")
		if err != nil {
			return nil, err
		}
		target, filterTarget = h, true
	}
	if name := optionalString(args, "action", ""); name != "" {
		job, ok := state.jobs[optionalString(args, "source", "")]
		if !ok {
			return nil, stepErrorf("action filter requires a source with a job")
		}
		id, ok := systems.ActionByName(job, name)
		if !ok {
			return nil, stepErrorf("job %s has no action %q", job.Name(), name)
		}
		action, filterAction = id, true
	}
	if name := optionalString(args, "status", ""); name != "" {
		desc, ok := status.Find(name)
		if !ok {
			return nil, stepErrorf("unknown status %q", name)
		}
		statusID, filterStatus = desc.ID, true
	}

	var rows []encounter.Entry
	for _, row := range state.enc.Journal() {
		if row.Kind != encounter.EntryDamage && row.Kind != encounter.EntryTick {
			continue
		}
		if filterSource && row.Source != source {
			continue
		}
		if filterTarget && row.Target != target {
			continue
		}
		if filterAction && (row.Kind != encounter.EntryDamage || row.Action != action) {
			continue
		}
		if filterStatus && (row.Kind != encounter.EntryTick || row.Status != statusID) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// handle resolves the actor name under key to its arena handle.
func (state *scenarioState) handle(args map[string]any, key string) (arena.Handle, error) {
	name := requiredString(args, key)
	if name == "" {
		return arena.Handle{}, stepErrorf("%s name is required", key)
	}
	h, ok := state.actors[name]
	if !ok {
		return arena.Handle{}, stepErrorf("unknown actor %q", name)
	}
	return h, nil
}

func stepErrorf(format string, args ...any) error {
	return apperrors.New(apperrors.CodeScenarioStep, fmt.Sprintf(format, args...))
}
