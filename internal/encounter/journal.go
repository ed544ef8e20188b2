package encounter

import (
	"sort"

	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
	apperrors "github.com/louisbranch/crucible/internal/errors"
)

// EntryKind tags a journal row.
type EntryKind uint8

const (
	EntryCast EntryKind = iota + 1
	EntryDamage
	EntryTick
	EntryStatusApply
	EntryStatusRefresh
	EntryStatusRemove
	EntryStatusExpire
	EntryReject
)

// String returns the kind's name for logs and scenario output.
func (k EntryKind) String() string {
	switch k {
	case EntryCast:
		return "cast"
	case EntryDamage:
		return "damage"
	case EntryTick:
		return "tick"
	case EntryStatusApply:
		return "status-apply"
	case EntryStatusRefresh:
		return "status-refresh"
	case EntryStatusRemove:
		return "status-remove"
	case EntryStatusExpire:
		return "status-expire"
	case EntryReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Entry is one journal row. Which fields are set depends on Kind:
// damage and tick rows carry Amount and the roll outcomes, status rows
// carry Status and Stacks, reject rows carry the rejection Code.
type Entry struct {
	Time     timeline.Time
	Kind     EntryKind
	Source   arena.Handle
	Target   arena.Handle
	Action   combat.ActionID
	Status   status.ID
	Amount   int32
	Stacks   uint8
	Critical bool
	Direct   bool
	Code     apperrors.Code
}

// Report aggregates an encounter's journal into per-actor and
// per-action damage totals.
type Report struct {
	Duration    timeline.Time
	TotalDamage int64
	DPS         float64
	Actors      []ActorReport
}

// ActorReport is one source's share of the damage done.
type ActorReport struct {
	Handle      arena.Handle
	Name        string
	Job         string
	TotalDamage int64
	DPS         float64
	Actions     []ActionTotals
}

// ActionTotals aggregates the hits of one action, or of one periodic
// effect for tick rows.
type ActionTotals struct {
	Name        string
	Hits        int
	Crits       int
	Directs     int
	TotalDamage int64
	MaxHit      int32
}

// Journal returns the rows recorded so far, oldest first. Callers must
// not mutate the returned slice.
func (e *Encounter) Journal() []Entry {
	return e.journal
}

// Report folds the journal's damage rows into totals. DPS is damage
// per second over the encounter clock.
func (e *Encounter) Report() Report {
	rep := Report{Duration: e.clock}

	type actionKey struct {
		action combat.ActionID
		status status.ID
	}
	perActor := make(map[arena.Handle]*ActorReport)
	perAction := make(map[arena.Handle]map[actionKey]*ActionTotals)
	var order []arena.Handle

	for _, row := range e.journal {
		if row.Kind != EntryDamage && row.Kind != EntryTick {
			continue
		}
		ar, ok := perActor[row.Source]
		if !ok {
			ar = &ActorReport{Handle: row.Source, Name: row.Source.String()}
			if a, live := e.actor(row.Source); live {
				ar.Name = a.name
				if a.job != nil {
					ar.Job = a.job.Name()
				}
			}
			perActor[row.Source] = ar
			perAction[row.Source] = make(map[actionKey]*ActionTotals)
			order = append(order, row.Source)
		}

		key := actionKey{action: row.Action, status: row.Status}
		at, ok := perAction[row.Source][key]
		if !ok {
			at = &ActionTotals{Name: e.rowName(row)}
			perAction[row.Source][key] = at
		}

		at.Hits++
		at.TotalDamage += int64(row.Amount)
		if row.Amount > at.MaxHit {
			at.MaxHit = row.Amount
		}
		if row.Critical {
			at.Crits++
		}
		if row.Direct {
			at.Directs++
		}
		ar.TotalDamage += int64(row.Amount)
		rep.TotalDamage += int64(row.Amount)
	}

	seconds := float64(e.clock) / 1000
	for _, h := range order {
		ar := perActor[h]
		if seconds > 0 {
			ar.DPS = float64(ar.TotalDamage) / seconds
		}
		for _, at := range perAction[h] {
			ar.Actions = append(ar.Actions, *at)
		}
		sort.Slice(ar.Actions, func(i, j int) bool {
			return ar.Actions[i].Name < ar.Actions[j].Name
		})
		rep.Actors = append(rep.Actors, *ar)
	}
	if seconds > 0 {
		rep.DPS = float64(rep.TotalDamage) / seconds
	}
	return rep
}

// rowName resolves the display name of a damage row: the action's name
// for direct hits, the owning status's for ticks.
func (e *Encounter) rowName(row Entry) string {
	if row.Kind == EntryTick {
		if desc, ok := status.Lookup(row.Status); ok {
			return desc.Name
		}
		return "tick"
	}
	if a, ok := e.actor(row.Source); ok && a.job != nil {
		if name := a.job.ActionName(row.Action); name != "" {
			return name
		}
	}
	return "unknown"
}

func (e *Encounter) record(row Entry) {
	row.Time = e.clock
	e.journal = append(e.journal, row)
}
