// Command selfplay lets the computer play both sides from a layout and
// prints the final position.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/benbeisheim/xxlchess-backend/internal/ai"
	"github.com/benbeisheim/xxlchess-backend/internal/config"
	"github.com/benbeisheim/xxlchess-backend/internal/model"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	maxPlies := flag.Int("plies", 400, "stop after this many plies")
	seed := flag.Uint64("seed", 0, "selector seed; 0 picks a random one")
	verbose := flag.Bool("v", false, "print the board after every ply")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	board, err := cfg.Board()
	if err != nil {
		log.Fatalf("layout: %v", err)
	}

	selector := ai.NewRandomSelector()
	if *seed != 0 {
		selector = ai.NewSelector(*seed)
	}

	game := model.NewGame("selfplay", model.GameOptions{Board: board})
	for _, color := range []model.PlayerColor{model.PlayerColorWhite, model.PlayerColorBlack} {
		if err := game.TakeSeat(model.ComputerPlayerID, color); err != nil {
			log.Fatalf("seat %s: %v", color, err)
		}
	}

	plies := 0
	for ; plies < *maxPlies && game.ComputerToMove(); plies++ {
		if err := game.PlayComputerMove(selector.GetMove); err != nil {
			if errors.Is(err, ai.ErrNoMoves) {
				break
			}
			log.Fatalf("ply %d: %v", plies+1, err)
		}
		if *verbose {
			state := game.GetState()
			fmt.Printf("%d. %s %v -> %v\n%s\n", plies+1, state.LastPly.Piece.Color, state.LastPly.From, state.LastPly.To, state.Board)
		}
	}

	state := game.GetState()
	fmt.Print(state.Board)
	result := "unfinished"
	if state.Resolve != nil {
		result = *state.Resolve
	}
	if state.Winner != nil {
		result += ", " + string(*state.Winner) + " wins"
	}
	fmt.Printf("%d plies: %s\n", plies, result)
	if state.Resolve == nil {
		os.Exit(1)
	}
}
