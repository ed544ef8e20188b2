package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeCastUnknownAction        = "CAST_UNKNOWN_ACTION"
	CodeCastCooldownUnready      = "CAST_COOLDOWN_UNREADY"
	CodeCastInsufficientResource = "CAST_INSUFFICIENT_RESOURCE"
	CodeCastStatusRequired       = "CAST_STATUS_REQUIRED"
	CodeCastComboRequired        = "CAST_COMBO_REQUIRED"
	CodeCastTargetInvalid        = "CAST_TARGET_INVALID"
	CodeCastNotInCombat          = "CAST_NOT_IN_COMBAT"
	CodeCastBusy                 = "CAST_BUSY"
	CodeActorNotFound            = "ACTOR_NOT_FOUND"
	CodeJobUnknown               = "JOB_UNKNOWN"
	CodeEncounterEventLimit      = "ENCOUNTER_EVENT_LIMIT"
	CodeScenarioParse            = "SCENARIO_PARSE_FAILED"
	CodeScenarioStep             = "SCENARIO_STEP_INVALID"
	CodeScenarioAssertion        = "SCENARIO_ASSERTION_FAILED"
	CodeContentParse             = "CONTENT_PARSE_FAILED"
	CodeContentLevelUnknown      = "CONTENT_LEVEL_UNKNOWN"
	CodeSeedOutOfRange           = "SEED_OUT_OF_RANGE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Cast validation errors
		CodeCastUnknownAction:        "Action {{.Action}} is not known to this job",
		CodeCastCooldownUnready:      "Action is on cooldown for another {{.ReadyIn}}ms",
		CodeCastInsufficientResource: "Insufficient {{.Resource}}: have {{.Have}}, need {{.Need}}",
		CodeCastStatusRequired:       "Requires the {{.Status}} effect to be active",
		CodeCastComboRequired:        "Requires {{.Step}} as the previous combo step",
		CodeCastTargetInvalid:        "No valid target for this action",
		CodeCastNotInCombat:          "This action can only be used in combat",
		CodeCastBusy:                 "Another action is still resolving",

		// Actor/job errors
		CodeActorNotFound: "The actor was not found",
		CodeJobUnknown:    "Job {{.Job}} is not registered",

		// Encounter errors
		CodeEncounterEventLimit: "The encounter exceeded its event limit",

		// Scenario tooling errors
		CodeScenarioParse:     "The scenario script failed to parse",
		CodeScenarioStep:      "Scenario step {{.Step}} is invalid",
		CodeScenarioAssertion: "Scenario assertion failed: {{.Detail}}",

		// Balance table errors
		CodeContentParse:        "Balance tables failed to parse",
		CodeContentLevelUnknown: "Level {{.Level}} has no balance coefficients",

		// Random/seed errors
		CodeSeedOutOfRange: "Random seed is out of valid range",
	},
}
