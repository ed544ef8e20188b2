// Package scenario loads Lua fight scripts and replays them against an
// in-process encounter. Scripts spawn actors, cast by name, advance the
// clock, and assert on the damage journal; the runner reports unmet
// expectations per its assertion mode.
package scenario

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	apperrors "github.com/louisbranch/crucible/internal/errors"
)

const (
	scenarioTypeName   = "scenario"
	castActionTypeName = "cast_action"
)

// Scenario is a parsed fight script: a name plus the ordered steps the
// Lua builder recorded.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted operation. Kind selects the runner behavior and
// Args carries the arguments passed from Lua.
type Step struct {
	Kind string
	Args map[string]any
}

// castAction lets a cast chain its expected rejection:
//
//	scene:cast("Rynn", "Cleave"):expect("CAST_COMBO_REQUIRED")
type castAction struct {
	scenario  *Scenario
	stepIndex int
}

// LoadScenarioFromFile runs a Lua scenario script and returns the
// scenario it builds. The script must return the Scenario userdata; an
// unnamed scenario takes its file name.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerLuaTypes(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScenarioParse, "load lua", err)
	}
	scenario, err := finishLoad(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadScenarioFromString parses an inline scenario script. Callers
// without a file, like MCP tool requests, feed source directly; name
// backfills an unnamed scenario.
func LoadScenarioFromString(name, source string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerLuaTypes(state)

	if err := state.Load(strings.NewReader(source), name, ""); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScenarioParse, "load lua", err)
	}
	scenario, err := finishLoad(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = name
	}
	return scenario, nil
}

// finishLoad runs the loaded chunk and pulls the returned Scenario off
// the stack.
func finishLoad(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScenarioParse, "run lua", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, apperrors.New(apperrors.CodeScenarioParse, "scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, apperrors.New(apperrors.CodeScenarioParse, "scenario script returned invalid Scenario")
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	registerScenarioType(state)
	registerCastActionType(state)
	registerScenarioConstructor(state)
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerCastActionType(state *lua.State) {
	lua.NewMetaTable(state, castActionTypeName)
	state.NewTable()
	lua.SetFunctions(state, castActionMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "seed", Function: scenarioSeed},
	{Name: "actor", Function: scenarioActor},
	{Name: "enemy", Function: scenarioEnemy},
	{Name: "engage", Function: scenarioEngage},
	{Name: "target", Function: scenarioTarget},
	{Name: "move", Function: scenarioMove},
	{Name: "face", Function: scenarioFace},
	{Name: "cast", Function: scenarioCast},
	{Name: "advance", Function: scenarioAdvance},
	{Name: "run", Function: scenarioRun},
	{Name: "report", Function: scenarioReport},
	{Name: "expect_damage", Function: scenarioExpectDamage},
	{Name: "expect_status", Function: scenarioExpectStatus},
	{Name: "expect_hp", Function: scenarioExpectHP},
}

func scenarioSeed(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckInteger(state, 2)
	appendStep(scenario, "seed", map[string]any{"value": value})
	return 0
}

func scenarioActor(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	opts := optionalTable(state, 3)
	data := map[string]any{"name": name}
	for key, value := range opts {
		data[key] = value
	}
	appendStep(scenario, "actor", data)
	return 0
}

func scenarioEnemy(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	opts := optionalTable(state, 3)
	data := map[string]any{"name": name}
	for key, value := range opts {
		data[key] = value
	}
	appendStep(scenario, "enemy", data)
	return 0
}

func scenarioEngage(state *lua.State) int {
	scenario := checkScenario(state)
	source := lua.CheckString(state, 2)
	target := lua.CheckString(state, 3)
	appendStep(scenario, "engage", map[string]any{"source": source, "target": target})
	return 0
}

func scenarioTarget(state *lua.State) int {
	scenario := checkScenario(state)
	source := lua.CheckString(state, 2)
	target := lua.CheckString(state, 3)
	appendStep(scenario, "target", map[string]any{"source": source, "target": target})
	return 0
}

func scenarioMove(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	lua.CheckType(state, 3, lua.TypeTable)
	data := tableToMap(state, 3)
	data["name"] = name
	appendStep(scenario, "move", data)
	return 0
}

func scenarioFace(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	lua.CheckType(state, 3, lua.TypeTable)
	data := tableToMap(state, 3)
	data["name"] = name
	appendStep(scenario, "face", data)
	return 0
}

func scenarioCast(state *lua.State) int {
	scenario := checkScenario(state)
	actor := lua.CheckString(state, 2)
	action := lua.CheckString(state, 3)
	stepIndex := appendStep(scenario, "cast", map[string]any{"actor": actor, "action": action})
	state.PushUserData(&castAction{scenario: scenario, stepIndex: stepIndex})
	lua.SetMetaTableNamed(state, castActionTypeName)
	return 1
}

func scenarioAdvance(state *lua.State) int {
	scenario := checkScenario(state)
	ms := lua.CheckInteger(state, 2)
	appendStep(scenario, "advance", map[string]any{"ms": ms})
	return 0
}

func scenarioRun(state *lua.State) int {
	scenario := checkScenario(state)
	opts := optionalTable(state, 2)
	appendStep(scenario, "run", opts)
	return 0
}

func scenarioReport(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "report", nil)
	return 0
}

func scenarioExpectDamage(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	data := tableToMap(state, 2)
	appendStep(scenario, "expect_damage", data)
	return 0
}

func scenarioExpectStatus(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	data := tableToMap(state, 2)
	appendStep(scenario, "expect_status", data)
	return 0
}

func scenarioExpectHP(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	data := tableToMap(state, 2)
	appendStep(scenario, "expect_hp", data)
	return 0
}

var castActionMethods = []lua.RegistryFunction{
	{Name: "expect", Function: castActionExpect},
}

func castActionExpect(state *lua.State) int {
	ud := lua.CheckUserData(state, 1, castActionTypeName)
	action, ok := ud.(*castAction)
	if !ok || action == nil {
		lua.Errorf(state, "invalid cast action")
		return 0
	}
	code := lua.CheckString(state, 2)
	if action.stepIndex < 0 || action.stepIndex >= len(action.scenario.Steps) {
		lua.Errorf(state, "cast action is out of range")
		return 0
	}
	step := &action.scenario.Steps[action.stepIndex]
	if step.Args == nil {
		step.Args = map[string]any{}
	}
	step.Args["expect"] = code
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) int {
	if scenario == nil {
		return -1
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
	return len(scenario.Steps) - 1
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	case lua.TypeUserData:
		return state.ToUserData(index)
	default:
		return nil
	}
}

func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
