package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type GameStatus int8

const (
	StatusPlaying GameStatus = iota
	StatusWon
	StatusLost
)

func (s GameStatus) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "playing"
	}
}

// GameState owns one board: the mine layout, precomputed neighbor counts
// and the player-knowledge grid. All mutation goes through OpenCell,
// FlagCell, ChordCell and Forfeit; callers only ever see copies of the
// player grid. A GameState is not safe for concurrent use.
type GameState struct {
	GameParams
	Dead, Won bool
	mines     []bool // real mine positions, fixed after NewGame
	counts    []int8 // mined neighbors per safe cell, fixed after NewGame
	player    Grid   // player knowledge
}

// NewGame buries MineCount mines at uniformly random cells and precomputes
// every safe cell's neighbor count. Randomness comes from the caller so a
// seeded source replays the same layout.
func NewGame(params GameParams, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	w, h, mineCount := params.Unpack()

	/*
	 * Rejection sampling: draw a cell, re-draw if it is already mined.
	 * Validate guarantees at least one free cell remains, so this
	 * terminates even on near-full boards.
	 */
	grid := make([]bool, w*h)
	for placed := 0; placed < mineCount; {
		i := r.IntN(len(grid))
		if !grid[i] {
			grid[i] = true
			placed++
		}
	}

	s := newGameFromLayout(params, grid)
	Log.WithFields(logrus.Fields{
		"seed": params.Seed(),
	}).Debug("generated board")
	return s, nil
}

// newGameFromLayout wraps an explicit mine layout. Tests use it directly to
// pin down boards.
func newGameFromLayout(params GameParams, grid []bool) *GameState {
	w, h, _ := params.Unpack()

	counts := make([]int8, w*h)
	for y := range h {
		for x := range w {
			i := y*w + x
			if grid[i] {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					xx, yy := x+dx, y+dy
					if 0 <= xx && xx < w && 0 <= yy && yy < h &&
						grid[yy*w+xx] {
						counts[i]++
					}
				}
			}
		}
	}

	player := make(Grid, w*h)
	for i := range player {
		player[i] = Unknown
	}

	return &GameState{
		GameParams: params,
		mines:      grid,
		counts:     counts,
		player:     player,
	}
}

// Status derives the game status; it is never stored separately from the
// Dead/Won flags OpenCell maintains.
func (s *GameState) Status() GameStatus {
	switch {
	case s.Dead:
		return StatusLost
	case s.Won:
		return StatusWon
	default:
		return StatusPlaying
	}
}

// Snapshot copies the player-knowledge grid; mutating the copy does not
// touch the live board.
func (s *GameState) Snapshot() Grid {
	g := make(Grid, len(s.player))
	copy(g, s.player)
	return g
}

// OpenCell reveals a cell and returns the resulting status. Opening a
// covered zero-count cell opens its whole zero-connected region
// breadth-first; opening a mine loses the game and exposes every mine.
// Out-of-bounds, flagged and already open cells are no-ops, as is any call
// once the game is over.
func (s *GameState) OpenCell(x, y int) GameStatus {
	if s.Dead || s.Won || !s.PointInBounds(x, y) {
		return s.Status()
	}
	i := y*s.Width + x
	if s.player[i] != Unknown {
		return s.Status()
	}

	if s.mines[i] {
		/*
		 * The player has landed on a mine. Bad luck. Expose the mine
		 * that killed them along with all the others, but leave flags
		 * and safe cells exactly as the player left them.
		 */
		s.Dead = true
		s.player[i] = ExplodedMine
		for j, mined := range s.mines {
			if mined && s.player[j] == Unknown {
				s.player[j] = UnflaggedMine
			}
		}
		return StatusLost
	}

	/*
	 * A safe cell. Open it, then flood outwards from zero-count cells
	 * with an explicit queue. Cells are marked open before their
	 * neighbors are enqueued, so each cell enters the queue at most
	 * once and termination needs no guard beyond the queue draining.
	 * Flagged cells block propagation just as they block a manual open.
	 */
	s.player[i] = CellState(s.counts[i])
	queue := []int{i}
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]
		if s.counts[j] != 0 {
			continue
		}
		jx, jy := j%s.Width, j/s.Width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				xx, yy := jx+dx, jy+dy
				if !s.PointInBounds(xx, yy) {
					continue
				}
				n := yy*s.Width + xx
				if s.player[n] == Unknown {
					s.player[n] = CellState(s.counts[n])
					queue = append(queue, n)
				}
			}
		}
	}

	/*
	 * Finally see whether every safe cell is now open. Mines stay
	 * covered on a won board unless flagged; mark them so the final
	 * grid reads complete.
	 */
	if s.player.OpenCount() == s.Width*s.Height-s.MineCount {
		s.Won = true
		for j, mined := range s.mines {
			if mined && s.player[j] == Unknown {
				s.player[j] = UnflaggedMine
			}
		}
	}

	return s.Status()
}

// FlagCell toggles the flag on a covered cell. Open cells, out-of-bounds
// coordinates and finished games are no-ops. Flags never affect status.
func (s *GameState) FlagCell(x, y int) {
	if s.Dead || s.Won || !s.PointInBounds(x, y) {
		return
	}
	i := y*s.Width + x
	switch s.player[i] {
	case Unknown:
		s.player[i] = Flagged
	case Flagged:
		s.player[i] = Unknown
	}
}

// ChordCell opens every unflagged covered neighbor of an open cell whose
// flagged-neighbor count matches its number, stopping early if one of the
// opens ends the game.
func (s *GameState) ChordCell(x, y int) GameStatus {
	if s.Dead || s.Won || !s.PointInBounds(x, y) {
		return s.Status()
	}
	c := s.player[y*s.Width+x]
	if !c.Open() {
		return s.Status()
	}

	flags := 0
	covered := make([][2]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if !s.PointInBounds(xx, yy) {
				continue
			}
			switch s.player[yy*s.Width+xx] {
			case Flagged:
				flags++
			case Unknown:
				covered = append(covered, [2]int{xx, yy})
			}
		}
	}

	if flags == int(c) {
		for _, p := range covered {
			s.OpenCell(p[0], p[1])
			if s.Dead || s.Won {
				break
			}
		}
	}
	return s.Status()
}

// Forfeit concedes a live game and fills in the end-of-game markers:
// correct and wrong flags, unflagged mines, and the counts of any safe
// cells the player never opened.
func (s *GameState) Forfeit() {
	if s.Dead || s.Won {
		return
	}
	s.Dead = true
	for i, mined := range s.mines {
		switch s.player[i] {
		case Flagged:
			if mined {
				s.player[i] = CorrectFlag
			} else {
				s.player[i] = WrongFlag
			}
		case Unknown:
			if mined {
				s.player[i] = UnflaggedMine
			} else {
				s.player[i] = CellState(s.counts[i])
			}
		}
	}
}
