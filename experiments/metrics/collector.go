package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration      time.Duration
	Iterations    int
	Cutoff        int
	BiasedActions int
	FullPlayouts  int // Playouts that reached a terminal state before the cutoff
	BiasedSteps   int
}

type MoveMetric struct {
	Turn     int
	Player   int
	Searcher string // Which agent chose the move
	Move     string
	SearchMetric
}

type TrialMetric struct {
	Scenario   string
	Seed       uint64
	MCTSSide   int // Player the MCTS searcher played
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Turns      int // Turns actually played
	FinalValue int // Econ gained by the MCTS side over the trial
	Outcome    string
}

type Collector interface {
	Start(cutoff, biasedActions int)
	AddIteration()
	AddFullPlayout()
	AddBiasedStep()
	Complete() SearchMetric
}

type collector struct {
	cutoff        int
	biasedActions int
	startTime     time.Time
	iterations    atomic.Int32
	fullPlayouts  atomic.Int32
	biasedSteps   atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(cutoff, biasedActions int) {
	m.startTime = time.Now()
	m.cutoff = cutoff
	m.biasedActions = biasedActions
	m.iterations.Store(0)
	m.fullPlayouts.Store(0)
	m.biasedSteps.Store(0)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddBiasedStep() {
	m.biasedSteps.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:      time.Since(m.startTime),
		Iterations:    int(m.iterations.Load()),
		Cutoff:        m.cutoff,
		BiasedActions: m.biasedActions,
		FullPlayouts:  int(m.fullPlayouts.Load()),
		BiasedSteps:   int(m.biasedSteps.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(cutoff, biasedActions int) {}
func (m *dummyCollector) AddIteration()                   {}
func (m *dummyCollector) AddFullPlayout()                 {}
func (m *dummyCollector) AddBiasedStep()                  {}
func (m *dummyCollector) Complete() SearchMetric          { return SearchMetric{} }
