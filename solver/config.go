package solver

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config carries every tunable knob from spec.md §6. Values are plain
// fields rather than a cobra flag set so the library has no CLI
// dependency; cmd/timetable-solve builds its Config with LoadConfig and
// has no per-knob flags.
type Config struct {
	ConflictPenaltyWeight  float64 `mapstructure:"conflict_penalty_weight"`
	ProximityPenaltyWeight float64 `mapstructure:"proximity_penalty_weight"`

	MaxIgnoredGapWidth float64 `mapstructure:"max_ignored_gap_width"`

	ConflictPenaltyThreshold  int     `mapstructure:"conflict_penalty_threshold"`
	ProximityPenaltyThreshold float64 `mapstructure:"proximity_penalty_threshold"`

	UnassignedRoomPenalty   int `mapstructure:"unassigned_room_penalty"`
	InstructorOverlapWeight int `mapstructure:"instructor_overlap_weight"`

	LCConflict  float64 `mapstructure:"lc_conflict"`
	LCProximity float64 `mapstructure:"lc_proximity"`
	LCSwitch    float64 `mapstructure:"lc_switch"`

	PriorityPenalty   float64 `mapstructure:"priority_penalty"`
	PriorityBVoC      float64 `mapstructure:"priority_bvoc"`
	PriorityEdgeWeight float64 `mapstructure:"priority_edge_weight"`
	PriorityEdgeCount  float64 `mapstructure:"priority_edge_count"`
	PriorityBadEdges   float64 `mapstructure:"priority_bad_edges"`

	NumVerticesToExpand int `mapstructure:"num_vertices_to_expand"`
	NumColorsPerVertex  int `mapstructure:"num_colors_per_vertex"`
	MaxQueueLength      int `mapstructure:"max_queue_length"`

	ImproverPasses int `mapstructure:"improver_passes"`

	CertifyMaxComponentSize int `mapstructure:"certify_max_component_size"`
}

// DefaultConfig returns the knob table defaults from spec.md §3/§4/§6.
func DefaultConfig() Config {
	return Config{
		ConflictPenaltyWeight:  25,
		ProximityPenaltyWeight: 1,

		MaxIgnoredGapWidth: MaxIgnoredGapWidth,

		ConflictPenaltyThreshold:  15,
		ProximityPenaltyThreshold: 1000,

		UnassignedRoomPenalty:   UnassignedRoomPenalty,
		InstructorOverlapWeight: InstructorOverlapWeight,

		LCConflict:  20,
		LCProximity: 1,
		LCSwitch:    18,

		PriorityPenalty:    50,
		PriorityBVoC:       200,
		PriorityEdgeWeight: 5,
		PriorityEdgeCount:  38,
		PriorityBadEdges:   23,

		NumVerticesToExpand: 1,
		NumColorsPerVertex:  2,
		MaxQueueLength:      5,

		ImproverPasses: 10,

		CertifyMaxComponentSize: 20,
	}
}

// LoadConfig starts from DefaultConfig and overlays a config file if one is
// found at path (or, when path is empty, a "timetable-solve" file in "."
// or "$HOME"), the way cobra_cli.go layers an optional JSON/YAML file
// under its flags. When path is empty, finding no file is not an error; an
// explicit path that cannot be read is, and so is a malformed file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("timetable-solve")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && path == "" {
			return cfg, nil
		}
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
