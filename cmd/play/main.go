// Terminal front end for the board engine. Commands:
//
//	o x y	open a cell
//	f x y	flag/unflag a cell
//	c x y	chord an open numbered cell
//	ff	forfeit
//	q	quit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/okulov/sweeper/internal/mines"
)

var log = logrus.New()

var (
	preset = flag.String("preset", "beginner", "difficulty preset")
	seed   = flag.String("seed", "", "custom board as w:h:m (overrides -preset)")
	rng    = flag.Uint64("rng", 0, "rng seed for a reproducible layout (0 = random)")
)

func gameParams() (mines.GameParams, error) {
	if *seed != "" {
		p, err := mines.ParseSeed(*seed)
		if err != nil {
			return mines.GameParams{}, err
		}
		return *p, nil
	}
	p, ok := mines.Preset(*preset)
	if !ok {
		return mines.GameParams{}, fmt.Errorf("unknown preset %q", *preset)
	}
	return p, nil
}

func createRand() *rand.Rand {
	if *rng != 0 {
		return rand.New(rand.NewPCG(*rng, *rng))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func parseXY(parts []string) (x int, y int, ok bool) {
	if len(parts) != 2 {
		return 0, 0, false
	}
	x, errX := strconv.Atoi(parts[0])
	y, errY := strconv.Atoi(parts[1])
	return x, y, errX == nil && errY == nil
}

func main() {
	flag.Parse()

	params, err := gameParams()
	if err != nil {
		log.Fatal(err)
	}

	state, err := mines.NewGame(params, createRand())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s board, %d mines\n", params.Seed(), params.MineCount)
	fmt.Print(state.Snapshot().ToString(params.Width))

	scanner := bufio.NewScanner(os.Stdin)
	for state.Status() == mines.StatusPlaying {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "q":
			return
		case "ff":
			state.Forfeit()
		case "o":
			if x, y, ok := parseXY(parts[1:]); ok {
				state.OpenCell(x, y)
			}
		case "f":
			if x, y, ok := parseXY(parts[1:]); ok {
				state.FlagCell(x, y)
			}
		case "c":
			if x, y, ok := parseXY(parts[1:]); ok {
				state.ChordCell(x, y)
			}
		default:
			fmt.Println("commands: o x y | f x y | c x y | ff | q")
			continue
		}
		fmt.Print(state.Snapshot().ToString(params.Width))
	}

	switch state.Status() {
	case mines.StatusWon:
		fmt.Println("cleared!")
	case mines.StatusLost:
		fmt.Println("boom.")
	}
}
