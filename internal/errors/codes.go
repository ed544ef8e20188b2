package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Cast validation errors
	CodeCastUnknownAction        Code = "CAST_UNKNOWN_ACTION"
	CodeCastCooldownUnready      Code = "CAST_COOLDOWN_UNREADY"
	CodeCastInsufficientResource Code = "CAST_INSUFFICIENT_RESOURCE"
	CodeCastStatusRequired       Code = "CAST_STATUS_REQUIRED"
	CodeCastComboRequired        Code = "CAST_COMBO_REQUIRED"
	CodeCastTargetInvalid        Code = "CAST_TARGET_INVALID"
	CodeCastNotInCombat          Code = "CAST_NOT_IN_COMBAT"
	CodeCastBusy                 Code = "CAST_BUSY"

	// Actor/job errors
	CodeActorNotFound Code = "ACTOR_NOT_FOUND"
	CodeJobUnknown    Code = "JOB_UNKNOWN"

	// Encounter errors
	CodeEncounterEventLimit Code = "ENCOUNTER_EVENT_LIMIT"

	// Scenario tooling errors
	CodeScenarioParse     Code = "SCENARIO_PARSE_FAILED"
	CodeScenarioStep      Code = "SCENARIO_STEP_INVALID"
	CodeScenarioAssertion Code = "SCENARIO_ASSERTION_FAILED"

	// Balance table errors
	CodeContentParse        Code = "CONTENT_PARSE_FAILED"
	CodeContentLevelUnknown Code = "CONTENT_LEVEL_UNKNOWN"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeCastUnknownAction,
		CodeCastTargetInvalid,
		CodeJobUnknown,
		CodeScenarioParse,
		CodeScenarioStep,
		CodeContentParse,
		CodeContentLevelUnknown,
		CodeSeedOutOfRange:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeCastCooldownUnready,
		CodeCastInsufficientResource,
		CodeCastStatusRequired,
		CodeCastComboRequired,
		CodeCastNotInCombat,
		CodeCastBusy,
		CodeScenarioAssertion:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeActorNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
