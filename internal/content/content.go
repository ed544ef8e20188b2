// Package content loads the embedded balance tables the simulation
// reads at startup: level coefficients for sub-stat scaling. Tables
// are parsed once and queried as plain lookups, never on the hot path.
package content

import (
	"embed"
	"strconv"

	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/crucible/internal/errors"
)

//go:embed data/*.yaml
var dataFS embed.FS

// LevelMod holds the coefficients of one level row. Sub is the
// baseline a sub-stat must exceed to grant a bonus; Div converts the
// excess into per-mille scalar units.
type LevelMod struct {
	Level uint8 `yaml:"level"`
	Sub   int32 `yaml:"sub"`
	Div   int32 `yaml:"div"`
}

// Tables is the parsed balance data.
type Tables struct {
	levels map[uint8]LevelMod
}

type levelFile struct {
	Levels []LevelMod `yaml:"levels"`
}

// Load parses the embedded balance tables.
func Load() (*Tables, error) {
	raw, err := dataFS.ReadFile("data/levels.yaml")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeContentParse, "read level table", err)
	}

	var file levelFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeContentParse, "parse level table", err)
	}
	if len(file.Levels) == 0 {
		return nil, apperrors.New(apperrors.CodeContentParse, "level table is empty")
	}

	levels := make(map[uint8]LevelMod, len(file.Levels))
	for _, row := range file.Levels {
		if row.Level == 0 || row.Div <= 0 {
			return nil, apperrors.WithMetadata(apperrors.CodeContentParse, "invalid level row", map[string]string{
				"Level": strconv.Itoa(int(row.Level)),
			})
		}
		if _, exists := levels[row.Level]; exists {
			return nil, apperrors.WithMetadata(apperrors.CodeContentParse, "duplicate level row", map[string]string{
				"Level": strconv.Itoa(int(row.Level)),
			})
		}
		levels[row.Level] = row
	}
	return &Tables{levels: levels}, nil
}

// MustLoad parses the embedded tables and panics on failure. The data
// ships with the binary, so a failure is a build defect.
func MustLoad() *Tables {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

// LevelMod returns the coefficients for level.
func (t *Tables) LevelMod(level uint8) (LevelMod, error) {
	mod, ok := t.levels[level]
	if !ok {
		return LevelMod{}, apperrors.WithMetadata(apperrors.CodeContentLevelUnknown, "no coefficients for level", map[string]string{
			"Level": strconv.Itoa(int(level)),
		})
	}
	return mod, nil
}

// Levels returns every level with coefficients, unordered.
func (t *Tables) Levels() []uint8 {
	out := make([]uint8, 0, len(t.levels))
	for level := range t.levels {
		out = append(out, level)
	}
	return out
}
