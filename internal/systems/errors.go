package systems

import (
	"strconv"

	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/timeline"
	apperrors "github.com/louisbranch/crucible/internal/errors"
)

// Rejection constructors shared by job checks. A failed check reports
// exactly one of these through the sink.

// UnknownActionError rejects an action the job does not know.
func UnknownActionError(action combat.ActionID) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeCastUnknownAction, "action is not part of this job", map[string]string{
		"Action": strconv.Itoa(int(action)),
	})
}

// CooldownUnreadyError rejects a cast whose cooldown group has no
// charge ready.
func CooldownUnreadyError(readyIn timeline.Time) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeCastCooldownUnready, "action cooldown has no charge ready", map[string]string{
		"ReadyIn": strconv.FormatUint(uint64(readyIn), 10),
	})
}

// InsufficientResourceError rejects a cast the actor cannot pay for.
func InsufficientResourceError(resource string, have, need int32) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeCastInsufficientResource, "insufficient "+resource, map[string]string{
		"Resource": resource,
		"Have":     strconv.FormatInt(int64(have), 10),
		"Need":     strconv.FormatInt(int64(need), 10),
	})
}

// StatusRequiredError rejects a cast missing a required effect.
func StatusRequiredError(name string) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeCastStatusRequired, "required effect is not active", map[string]string{
		"Status": name,
	})
}

// ComboRequiredError rejects a cast whose combo step is not armed.
func ComboRequiredError(step string) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeCastComboRequired, "combo step is not armed", map[string]string{
		"Step": step,
	})
}

// TargetInvalidError rejects a cast with no legal target.
func TargetInvalidError() *apperrors.Error {
	return apperrors.New(apperrors.CodeCastTargetInvalid, "no valid target for this action")
}

// NotInCombatError rejects a cast that is only legal in combat.
func NotInCombatError() *apperrors.Error {
	return apperrors.New(apperrors.CodeCastNotInCombat, "action requires combat")
}
