package metrics

import (
	"sync/atomic"
	"time"

	"chessmcts/game"
)

type SearchMetric struct {
	Goroutines   int
	Iterations   int
	Cutoff       int
	Exploration  float64
	Duration     time.Duration
	Episodes     int
	FullPlayouts int
	IsTreeReset  bool
}

type MoveMetric struct {
	Step   int
	Player game.Player
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player // game.NoPlayer for a draw or an unfinished game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, iterations, cutoff int, exploration float64)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	iterations   int
	cutoff       int
	exploration  float64
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) Start(goroutines, iterations, cutoff int, exploration float64) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.iterations = iterations
	m.cutoff = cutoff
	m.exploration = exploration
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Iterations:   m.iterations,
		Cutoff:       m.cutoff,
		Exploration:  m.exploration,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, iterations, cutoff int, exploration float64) {}
func (m *dummyCollector) SetTreeReset(value bool)                                      {}
func (m *dummyCollector) AddFullPlayout()                                              {}
func (m *dummyCollector) AddEpisode()                                                  {}
func (m *dummyCollector) Complete() SearchMetric                                       { return SearchMetric{} }
