package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown       CellState = -2
	Flagged       CellState = -1
	CorrectFlag   CellState = 64
	ExplodedMine  CellState = 65
	WrongFlag     CellState = 66
	UnflaggedMine CellState = 67
	/*
	 * Each item in a `Grid` is one of the following values:
	 *
	 * 	- 0 to 8 mean the cell is open and has a surrounding mine
	 * 	  count.
	 *
	 *  - -1 means the cell is covered and flagged.
	 *
	 *  - -2 means the cell is covered.
	 *
	 * 	- 64 means the cell held a correctly placed flag, shown when
	 * 	  the game was conceded.
	 *
	 * 	- 65 means the cell had a mine revealed and this was the one
	 * 	  the player hit.
	 *
	 * 	- 66 means the cell has a crossed-out mine because the player
	 * 	  had incorrectly flagged it.
	 *
	 * 	- 67 means the cell had a mine revealed at the end of the
	 * 	  game that the player never flagged.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "."
	case s == Flagged, s == CorrectFlag:
		return "*"
	case s == ExplodedMine:
		return "X"
	case s == WrongFlag:
		return "x"
	case s == UnflaggedMine:
		return "o"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Open reports whether the cell has been revealed as safe.
func (s CellState) Open() bool {
	return 0 <= s && s <= 8
}

// Grid is the player-knowledge snapshot handed to presentation layers. It
// never leaks an unrevealed mine position while the game is live; the
// >= 64 markers appear only once the game is over.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")

	}
	return b.String()
}

// OpenCount is the number of revealed safe cells.
func (g Grid) OpenCount() (n int) {
	for _, s := range g {
		if s.Open() {
			n++
		}
	}
	return
}
