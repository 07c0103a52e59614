package experiments

import (
	"errors"
	"fmt"
	"os"
	"time"

	"scrim/engine"
	"scrim/game"
	"scrim/searcher"
	"scrim/utils"

	"gopkg.in/yaml.v3"
)

// Config describes a regression experiment: which scrims to play, how long, and the
// budgets of both searchers.
type Config struct {
	Trials      int                   `yaml:"trials"`
	Turns       int                   `yaml:"turns"`   // Joint moves played per trial
	Horizon     int                   `yaml:"horizon"` // Turns each search looks ahead
	Concurrency int                   `yaml:"concurrency"`
	Params      game.EvaluationParams `yaml:"params"`
	Engine      EngineConfig          `yaml:"engine"`
	MCTS        MCTSConfig            `yaml:"mcts"`
	Scenarios   []Scenario            `yaml:"scenarios"`
}

type EngineConfig struct {
	TimeLimit           time.Duration `yaml:"time_limit"`
	IterationLimit      int           `yaml:"iteration_limit"`
	RepetitionThreshold int           `yaml:"repetition_threshold"`
	AllowNoOps          bool          `yaml:"allow_no_ops"`
}

type MCTSConfig struct {
	Duration        time.Duration `yaml:"duration"`
	Iterations      int           `yaml:"iterations"`
	Cutoff          int           `yaml:"cutoff"`
	BiasedActions   int           `yaml:"biased_actions"`
	BiasProbability float64       `yaml:"bias_probability"`
	UtilityScale    float64       `yaml:"utility_scale"`
}

// Scenario is a starting board drawn as rows of tokens, see game.ParseMap.
type Scenario struct {
	Name       string   `yaml:"name"`
	Rows       []string `yaml:"rows"`
	Turn       int      `yaml:"turn"`
	KillThreat bool     `yaml:"kill_threat"`
}

func DefaultConfig() Config {
	return Config{
		Trials:      20,
		Turns:       6,
		Horizon:     4,
		Concurrency: 4,
		Params:      game.DefaultEvaluationParams(),
		Engine: EngineConfig{
			TimeLimit:           100 * time.Millisecond,
			RepetitionThreshold: game.DefaultRepetitionThreshold,
			AllowNoOps:          true,
		},
		MCTS: MCTSConfig{
			Iterations:      500,
			Cutoff:          searcher.DefaultCutoff,
			BiasedActions:   searcher.DefaultBiasedActions,
			BiasProbability: searcher.DefaultBiasProbability,
			UtilityScale:    searcher.DefaultUtilityScale,
		},
		Scenarios: []Scenario{
			{Name: "symmetric_pair", Rows: []string{"a11 . . . b11"}},
		},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys left out keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Trials <= 0 || c.Turns <= 0 || c.Horizon <= 0 {
		return errors.New("trials, turns and horizon must be positive")
	}
	if c.MCTS.Duration <= 0 && c.MCTS.Iterations <= 0 {
		return errors.New("mcts needs a duration or iterations")
	}
	if len(c.Scenarios) == 0 {
		return errors.New("no scenarios")
	}
	names := make([]string, 0, len(c.Scenarios))
	for _, scenario := range c.Scenarios {
		if utils.FindIndex(names, scenario.Name) >= 0 {
			return fmt.Errorf("duplicate scenario %q", scenario.Name)
		}
		if _, err := game.ParseMap(scenario.Rows); err != nil {
			return fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		names = append(names, scenario.Name)
	}
	return nil
}

// Scenario looks a scenario up by name.
func (c Config) Scenario(name string) (Scenario, bool) {
	for _, scenario := range c.Scenarios {
		if scenario.Name == name {
			return scenario, true
		}
	}
	return Scenario{}, false
}

func (c Config) engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithParams(c.Params),
		engine.WithTimeLimit(c.Engine.TimeLimit),
		engine.WithIterationLimit(c.Engine.IterationLimit),
		engine.WithRepetitionThreshold(c.Engine.RepetitionThreshold),
		engine.WithNoOps(c.Engine.AllowNoOps, c.Engine.AllowNoOps),
	}
}

func (c Config) createMCTS(seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithSeed(seed),
		searcher.WithBiasedActions(c.MCTS.BiasedActions),
		searcher.WithBiasProbability(c.MCTS.BiasProbability),
		searcher.WithUtilityScale(c.MCTS.UtilityScale),
		searcher.WithMetrics(),
	}
	if c.MCTS.Iterations > 0 {
		options = append(options, searcher.WithIterations(c.MCTS.Iterations))
	}
	if c.MCTS.Duration > 0 {
		options = append(options, searcher.WithDuration(c.MCTS.Duration))
	}
	if c.MCTS.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(c.MCTS.Cutoff))
	}
	return searcher.NewMCTS(options...)
}
