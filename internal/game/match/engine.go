package match

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/scheduler"
)

// TileKind says which face of a pair a tile carries.
type TileKind int

const (
	KindTerm TileKind = iota
	KindDefinition
)

// Tile is one face of a pair. Exactly two tiles share a PairID: one term
// tile and one definition tile.
type Tile struct {
	ID      int
	Content string
	Kind    TileKind
	PairID  int
	Matched bool
}

// Config holds the tunable parameters of a game.
type Config struct {
	// MaxPairs caps how many pairs one game is built from.
	MaxPairs int

	// MatchSettle is the pause before a matched pair locks in.
	MatchSettle time.Duration

	// MismatchSettle is the pause before a mismatched pair flips back. It
	// is longer than MatchSettle so the player can read both faces.
	MismatchSettle time.Duration
}

// DefaultConfig returns the standard game parameters.
func DefaultConfig() Config {
	return Config{
		MaxPairs:       4,
		MatchSettle:    400 * time.Millisecond,
		MismatchSettle: 900 * time.Millisecond,
	}
}

// State is a point-in-time snapshot of the game board.
type State struct {
	Tiles    []Tile
	Selected []int
	Moves    int
	Matches  int
}

// Complete reports whether every produced pair has been matched. It is
// derived from the counters on each read, never stored. An empty board
// (extraction yielded nothing) is never complete.
func (s State) Complete() bool {
	return len(s.Tiles) > 0 && s.Matches == len(s.Tiles)/2
}

// Engine runs one matching game at a time. All methods serialize behind
// one mutex; deferred pair resolution re-enters through the same mutex
// and is dropped when the session generation has moved on.
type Engine struct {
	mu     sync.Mutex
	cfg    Config
	rng    *rand.Rand
	sched  scheduler.Scheduler
	logger *slog.Logger

	session uint64

	tiles    []Tile
	selected []int
	moves    int
	matches  int

	settleHandle scheduler.Handle
}

// NewEngine creates an engine with an empty board. Call Init to build
// tiles from study material. A nil scheduler falls back to the wall
// clock, a nil rng to a time-seeded source, and a nil logger to
// slog.Default.
func NewEngine(cfg Config, sched scheduler.Scheduler, rng *rand.Rand, logger *slog.Logger) *Engine {
	if sched == nil {
		sched = scheduler.NewReal()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		cfg:    cfg,
		rng:    rng,
		sched:  sched,
		logger: logger.With(slog.String("component", "match_engine")),
	}
}

// Init builds a fresh board from the given study material: up to
// cfg.MaxPairs pairs via the game-specific extraction, two tiles per
// pair, shuffled once. Counters reset and any pending resolution from the
// previous board is invalidated. Callers re-invoke Init whenever the
// source notes change and on explicit restart.
//
// A shortfall (extraction produced fewer pairs than MaxPairs) is not an
// error; the smaller board still completes once all its tiles match.
func (e *Engine) Init(notes []domain.Note, flashcards []domain.Flashcard) {
	pairs := domain.ExtractGamePairs(notes, flashcards)
	if len(pairs) > e.cfg.MaxPairs {
		pairs = pairs[:e.cfg.MaxPairs]
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session++
	if e.settleHandle != nil {
		e.settleHandle.Cancel()
		e.settleHandle = nil
	}

	tiles := make([]Tile, 0, len(pairs)*2)
	for pairID, p := range pairs {
		tiles = append(tiles,
			Tile{Content: p.Term, Kind: KindTerm, PairID: pairID},
			Tile{Content: p.Definition, Kind: KindDefinition, PairID: pairID},
		)
	}
	e.rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	for i := range tiles {
		tiles[i].ID = i
	}

	e.tiles = tiles
	e.selected = nil
	e.moves = 0
	e.matches = 0

	e.logger.Debug("board initialized",
		slog.Int("pairs", len(pairs)),
		slog.Int("tiles", len(tiles)))
}

// Select flips the tile with the given id face-up. Invalid selections
// (unknown id, two tiles already pending resolution, an already matched
// tile, or the tile already face-up) are silently ignored.
//
// The second selection of a pair counts one move and schedules the
// resolution: a match locks both tiles in after the short settle, a
// mismatch flips both back after the longer settle.
func (e *Engine) Select(tileID int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tileID < 0 || tileID >= len(e.tiles) {
		return
	}
	if len(e.selected) >= 2 {
		return
	}
	if e.tiles[tileID].Matched {
		return
	}
	for _, id := range e.selected {
		if id == tileID {
			return
		}
	}

	e.selected = append(e.selected, tileID)
	if len(e.selected) < 2 {
		return
	}

	e.moves++
	first, second := e.selected[0], e.selected[1]
	matched := e.tiles[first].PairID == e.tiles[second].PairID

	delay := e.cfg.MismatchSettle
	if matched {
		delay = e.cfg.MatchSettle
	}

	session := e.session
	e.settleHandle = e.sched.AfterFunc(delay, func() {
		e.resolve(session, first, second, matched)
	})
}

// resolve finishes a pending pair after its settle delay. A resolution
// scheduled by an earlier board generation is discarded.
func (e *Engine) resolve(session uint64, first, second int, matched bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if session != e.session {
		return
	}

	if matched {
		e.tiles[first].Matched = true
		e.tiles[second].Matched = true
		e.matches++
	}
	e.selected = nil
	e.settleHandle = nil
}

// Stop invalidates any pending resolution. The board stays readable.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session++
	if e.settleHandle != nil {
		e.settleHandle.Cancel()
		e.settleHandle = nil
	}
}

// State returns a snapshot of the board.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	tiles := make([]Tile, len(e.tiles))
	copy(tiles, e.tiles)
	selected := make([]int, len(e.selected))
	copy(selected, e.selected)

	return State{
		Tiles:    tiles,
		Selected: selected,
		Moves:    e.moves,
		Matches:  e.matches,
	}
}
