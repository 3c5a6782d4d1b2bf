package mines

import (
	"fmt"
	"strings"
)

// GameParams describe a board: its dimensions and the number of mines
// buried in it.
type GameParams struct {
	Width, Height, MineCount int
}

// Presets are the difficulty triples most front ends offer. The engine
// accepts any valid triple; these are just the well-known ones.
var Presets = map[string]GameParams{
	"beginner":     {Width: 8, Height: 8, MineCount: 10},
	"intermediate": {Width: 12, Height: 12, MineCount: 20},
	"expert":       {Width: 16, Height: 16, MineCount: 40},
}

// Preset resolves a named difficulty.
func Preset(name string) (GameParams, bool) {
	p, ok := Presets[strings.ToLower(name)]
	return p, ok
}

type InvalidParamsError struct {
	GameParams
}

// [InvalidParamsError] implements [error]
func (e InvalidParamsError) Error() string {
	switch {
	case e.Width < 1:
		return fmt.Sprintf("cannot create a board of width %d", e.Width)
	case e.Height < 1:
		return fmt.Sprintf("cannot create a board of height %d", e.Height)
	case e.MineCount <= 0:
		return fmt.Sprintf("cannot create a board with %d mines", e.MineCount)
	case e.MineCount >= e.Width*e.Height:
		return fmt.Sprintf(
			"%d mines leave no safe cell on a %dx%d board",
			e.MineCount, e.Width, e.Height,
		)
	default:
		return "invalid game params"
	}
}

// Validate reports whether the triple can produce a playable board: positive
// dimensions and a mine count that leaves at least one safe cell.
func (p GameParams) Validate() error {
	if p.Width < 1 || p.Height < 1 ||
		p.MineCount <= 0 || p.MineCount >= p.Width*p.Height {
		return InvalidParamsError{p}
	}
	return nil
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Seed is the compact w:h:m form used in URLs and by the CLI.
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = %q, n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}
