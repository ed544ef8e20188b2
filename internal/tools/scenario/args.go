package scenario

import (
	"strings"

	"github.com/louisbranch/crucible/internal/encounter"
)

// Step args come from Lua tables, so numbers arrive as int or float64
// and everything is optional until a step says otherwise.

func requiredString(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return strings.TrimSpace(value)
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key].(string)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

func readInt(args map[string]any, key string) (int, bool) {
	switch value := args[key].(type) {
	case int:
		return value, true
	case float64:
		return int(value), true
	default:
		return 0, false
	}
}

func optionalInt(args map[string]any, key string, fallback int) int {
	if value, ok := readInt(args, key); ok {
		return value
	}
	return fallback
}

func optionalBool(args map[string]any, key string, fallback bool) bool {
	if value, ok := args[key].(bool); ok {
		return value
	}
	return fallback
}

func readNumber(args map[string]any, key string) (float64, bool) {
	switch value := args[key].(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	default:
		return 0, false
	}
}

func readVec(args map[string]any, xKey, yKey string) encounter.Vec2 {
	x, _ := readNumber(args, xKey)
	y, _ := readNumber(args, yKey)
	return encounter.Vec2{X: x, Y: y}
}

// readFacing reads the facing_x and facing_y pair. Absent keys leave
// the spawn default in place.
func readFacing(args map[string]any) (encounter.Vec2, bool) {
	x, okX := readNumber(args, "facing_x")
	y, okY := readNumber(args, "facing_y")
	if !okX && !okY {
		return encounter.Vec2{}, false
	}
	return encounter.Vec2{X: x, Y: y}, true
}
