package experiments

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"scrim/engine"
	"scrim/experiments/metrics"
	"scrim/game"
	"scrim/searcher/agent"
	"scrim/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

const (
	MCTSWin       = "mcts"
	BruteForceWin = "brute_force"
	Draw          = "draw"
)

// Arena plays MCTS against the brute-force engine on full scrims.
type Arena struct {
	cfg Config
}

func NewArena(cfg Config) *Arena {
	return &Arena{cfg: cfg}
}

// Report collects the trials of one scenario.
type Report struct {
	Scenario string
	Trials   []metrics.TrialRecord
	Moves    []metrics.MoveRecord
}

// Outcomes counts trial outcomes won by at least margin econ.
func (r *Report) Outcomes(margin int) (mcts, bruteForce, draws int) {
	for _, trial := range r.Trials {
		switch {
		case trial.FinalValue >= margin && trial.FinalValue > 0:
			mcts++
		case -trial.FinalValue >= margin && trial.FinalValue < 0:
			bruteForce++
		default:
			draws++
		}
	}
	return mcts, bruteForce, draws
}

// MeanAbsValue is the average econ swing of a trial, whoever won it.
func (r *Report) MeanAbsValue() float64 {
	if len(r.Trials) == 0 {
		return 0
	}
	sum := 0
	for _, trial := range r.Trials {
		sum += utils.Abs(trial.FinalValue)
	}
	return float64(sum) / float64(len(r.Trials))
}

// Run plays trials of the scenario concurrently. MCTS alternates sides by trial and
// the starting turn parity is drawn per trial, so neither side keeps move priority.
func (a *Arena) Run(ctx context.Context, scenario Scenario, trials int) (*Report, error) {
	report := &Report{Scenario: scenario.Name}
	var mu sync.Mutex

	log.Info().Msgf("starting %d trials of scenario %s...", trials, scenario.Name)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.cfg.Concurrency, 1))
	for i := 0; i < trials; i++ {
		id, mctsSide := i+1, i%2
		seed := frand.Uint64n(math.MaxUint64)
		parity := frand.Intn(2)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			trial, moves, err := a.runTrial(scenario, mctsSide, seed, parity)
			if err != nil {
				return fmt.Errorf("trial %d of %s: %w", id, scenario.Name, err)
			}

			mu.Lock()
			defer mu.Unlock()
			report.Trials = append(report.Trials, metrics.TrialRecord{ID: id, TrialMetric: trial})
			for _, move := range moves {
				report.Moves = append(report.Moves, metrics.MoveRecord{Trial: id, MoveMetric: move})
			}
			log.Info().Msgf("completed trial %d of %s: %s by %d", id, scenario.Name, trial.Outcome, trial.FinalValue)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed scenario %s", scenario.Name)
	return report, nil
}

// runTrial plays one scrim on a board of its own. Both sides search from the live
// board each turn; the chosen moves are then applied as one joint move.
func (a *Arena) runTrial(scenario Scenario, mctsSide int, seed uint64, parity int) (metrics.TrialMetric, []metrics.MoveMetric, error) {
	m, err := game.ParseMap(scenario.Rows)
	if err != nil {
		return metrics.TrialMetric{}, nil, err
	}

	agents := [2]agent.Agent{}
	agents[mctsSide] = agent.NewEvaluationAgent(a.cfg.createMCTS(seed))
	agents[1-mctsSide] = agent.NewBruteForceAgent()

	trial := metrics.TrialMetric{Scenario: scenario.Name, Seed: seed, MCTSSide: mctsSide, StartTime: time.Now()}
	start := economy(m, mctsSide)
	turn := scenario.Turn + parity
	var moves []metrics.MoveMetric

	for trial.Turns < a.cfg.Turns {
		var chosen [2]game.Move
		for player, ag := range agents {
			e := a.newEngine(m, player, turn, scenario.KillThreat)
			joint, metric, err := ag.FindMove(e, a.cfg.Horizon)
			if err != nil {
				return trial, moves, err
			}
			chosen[player] = joint.Friendly
			moves = append(moves, metrics.MoveMetric{
				Turn:         turn,
				Player:       player,
				Searcher:     ag.Name(),
				Move:         joint.Friendly.String(),
				SearchMetric: metric,
			})
		}

		referee := a.newEngine(m, game.Friendly, turn, false)
		state := referee.NextState(referee.Prepare(1), chosen[game.Friendly], chosen[game.Enemy])
		advance(m, state)
		trial.Turns++
		turn++
		if state.IsCaptured() {
			break
		}
	}

	trial.EndTime = time.Now()
	trial.Duration = trial.EndTime.Sub(trial.StartTime)
	trial.FinalValue = economy(m, mctsSide) - start
	switch {
	case trial.FinalValue > 0:
		trial.Outcome = MCTSWin
	case trial.FinalValue < 0:
		trial.Outcome = BruteForceWin
	default:
		trial.Outcome = Draw
	}
	return trial, moves, nil
}

// newEngine sets up a scan from player's point of view over the live board.
func (a *Arena) newEngine(m *game.Map, player, turn int, killThreat bool) *engine.ArmyEngine {
	options := append(a.cfg.engineOptions(), engine.WithKillThreat(killThreat, killThreat))
	return engine.NewArmyEngine(m, armies(m, player), armies(m, 1-player), player, 1-player, turn, options...)
}

func armies(m *game.Map, player int) []*game.Army {
	var result []*game.Army
	for _, tile := range m.Tiles {
		if tile.Player == player && tile.Army > 1 {
			result = append(result, game.NewArmy(tile))
		}
	}
	return result
}

// advance writes a simulated turn back onto the live board.
func advance(m *game.Map, state *game.BoardState) {
	for tile, sim := range state.SimTiles {
		m.Tiles[tile.ID].Army = sim.Army
		m.Tiles[tile.ID].Player = sim.Player
	}
}

// economy is player's tiles and cities minus the opponent's, cities weighted as in
// the scrim value.
func economy(m *game.Map, player int) int {
	diff := 0
	for _, tile := range m.Tiles {
		weight := 1
		if tile.IsCity || tile.IsGeneral {
			weight = 25
		}
		switch tile.Player {
		case player:
			diff += weight
		case 1 - player:
			diff -= weight
		}
	}
	return diff
}

// RunExperiment plays every scenario of the config and stores the records under dir.
func RunExperiment(ctx context.Context, cfg Config, name, dir string) ([]*Report, error) {
	arena := NewArena(cfg)
	var reports []*Report
	var trialRecords []metrics.TrialRecord
	var moveRecords []metrics.MoveRecord

	log.Info().Msgf("starting %s experiment...", name)
	for _, scenario := range cfg.Scenarios {
		report, err := arena.Run(ctx, scenario, cfg.Trials)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)

		// Trial IDs restart per scenario
		offset := len(trialRecords)
		for _, trial := range report.Trials {
			trial.ID += offset
			trialRecords = append(trialRecords, trial)
		}
		for _, move := range report.Moves {
			move.Trial += offset
			moveRecords = append(moveRecords, move)
		}

		mcts, bruteForce, draws := report.Outcomes(1)
		log.Info().Msgf("scenario %s: mcts %d, brute force %d, draws %d, mean swing %.2f",
			scenario.Name, mcts, bruteForce, draws, report.MeanAbsValue())
	}
	log.Info().Msgf("completed %s experiment", name)

	if dir == "" {
		return reports, nil
	}
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return reports, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteTrialRecords(trialRecords); err != nil {
		return reports, fmt.Errorf("failed to write trial records: %w", err)
	}
	log.Info().Msg("stored trial records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return reports, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return reports, nil
}
