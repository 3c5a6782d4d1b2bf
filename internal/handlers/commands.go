package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/okulov/sweeper/internal/mines"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g":  0, // current grid, no mutation
	"o":  2, // open x y
	"f":  2, // flag x y
	"c":  2, // chord x y
	"ff": 0, // forfeit
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func executeCommand(s *mines.GameState, c string) error {
	parts := strings.Split(strings.TrimSpace(c), " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "g":
		return nil
	case "ff":
		s.Forfeit()
		return nil
	}

	x, y, err := parseXY(parts[1:])
	if err != nil {
		return err
	}
	if !s.PointInBounds(x, y) {
		return errors.New("invalid cell coordinates")
	}
	switch parts[0] {
	case "o":
		s.OpenCell(x, y)
	case "f":
		s.FlagCell(x, y)
	case "c":
		s.ChordCell(x, y)
	}
	return nil
}
