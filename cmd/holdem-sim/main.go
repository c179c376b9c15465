package main

import (
	"fmt"
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/ph4n70mr1ddl3r/holdem/internal/game"
	"github.com/ph4n70mr1ddl3r/holdem/internal/randutil"
)

type CLI struct {
	Hands      int   `default:"10000" help:"Number of hands to simulate"`
	SmallBlind int   `default:"5" help:"Small blind"`
	BigBlind   int   `default:"10" help:"Big blind"`
	Chips      int   `default:"1000" help:"Starting stack for both seats"`
	Seed       int64 `default:"0" help:"RNG seed (0 for random)"`
	Verbose    bool  `short:"v" help:"Verbose logging"`
}

// Stats accumulates outcomes across simulated hands.
type Stats struct {
	Hands        int
	Showdowns    int
	Uncontested  int
	Busts        int
	SeatWins     [2]int
	Chops        int
	MaxPot       int
	TotalPot     int
	InvariantErr int
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	logger := log.New(os.Stderr)
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Simulating heads-up hands",
		"hands", cli.Hands,
		"stakes", fmt.Sprintf("%d/%d", cli.SmallBlind, cli.BigBlind),
		"chips", cli.Chips,
		"seed", seed)

	rng := randutil.New(seed)
	cfg := game.Config{SmallBlind: cli.SmallBlind, BigBlind: cli.BigBlind, StartingChips: cli.Chips}

	stats := &Stats{}
	table, err := newTable(cfg, seed)
	if err != nil {
		logger.Error("Failed to create table", "error", err)
		kctx.Exit(1)
	}

	for stats.Hands < cli.Hands {
		snap, events, err := table.StartHand()
		if err != nil {
			// A busted seat: fresh stacks, play on.
			stats.Busts++
			table, err = newTable(cfg, seed+int64(stats.Busts))
			if err != nil {
				logger.Error("Failed to recreate table", "error", err)
				kctx.Exit(1)
			}
			continue
		}

		for table.HandInProgress() {
			snap = table.Snapshot()
			seat := snap.ToAct
			legal, err := table.LegalActionsFor(seat)
			if err != nil {
				logger.Error("Legal action lookup failed", "error", err)
				kctx.Exit(1)
			}

			action := pickAction(rng, seat, legal)
			snap, events, err = table.Apply(action)
			if err != nil {
				stats.InvariantErr++
				logger.Error("Engine rejected a generated action", "error", err, "action", action.Kind)
				break
			}
		}

		record(stats, snap, events, logger)
	}

	report(stats)
}

func newTable(cfg game.Config, seed int64) (*game.Table, error) {
	table, err := game.NewTable(cfg, randutil.New(seed))
	if err != nil {
		return nil, err
	}
	if _, err := table.AddPlayer("sim-0", "Sim0"); err != nil {
		return nil, err
	}
	if _, err := table.AddPlayer("sim-1", "Sim1"); err != nil {
		return nil, err
	}
	return table, nil
}

// pickAction chooses a weighted random legal action: mostly passive,
// occasionally aggressive, rare folds when checking is free.
func pickAction(rng *rand.Rand, seat int, legal game.LegalActions) game.PlayerAction {
	roll := rng.IntN(100)

	switch {
	case legal.Contains(game.Check) && roll < 60:
		return game.CheckAction(seat)
	case legal.Contains(game.Call) && roll < 60:
		return game.PlayerAction{Seat: seat, Kind: game.Call}
	case legal.Contains(game.Bet) && roll < 85:
		amount := legal.MinBet + rng.IntN(legal.MaxBet-legal.MinBet+1)
		return game.PlayerAction{Seat: seat, Kind: game.Bet, Amount: amount}
	case legal.Contains(game.Raise) && roll < 85:
		amount := legal.MinRaiseTo + rng.IntN(legal.MaxBet-legal.MinRaiseTo+1)
		return game.PlayerAction{Seat: seat, Kind: game.Raise, Amount: amount}
	case roll < 90 && legal.Contains(game.AllInAction):
		return game.PlayerAction{Seat: seat, Kind: game.AllInAction}
	case legal.Contains(game.Check):
		return game.CheckAction(seat)
	default:
		return game.FoldAction(seat)
	}
}

func record(stats *Stats, snap game.Snapshot, events []game.GameEvent, logger *log.Logger) {
	stats.Hands++

	var awards []game.PotAward
	sawShowdown := false
	for _, e := range events {
		switch ev := e.(type) {
		case game.ShowdownEvent:
			sawShowdown = true
			awards = ev.Awards
		case game.HandCompleteEvent:
			if awards == nil {
				awards = ev.Awards
			}
		}
	}

	if sawShowdown {
		stats.Showdowns++
	} else {
		stats.Uncontested++
	}

	pot := 0
	winners := map[int]bool{}
	for _, a := range awards {
		pot += a.Amount
		for _, w := range a.Winners {
			winners[w] = true
		}
	}
	stats.TotalPot += pot
	if pot > stats.MaxPot {
		stats.MaxPot = pot
	}
	switch {
	case winners[0] && winners[1]:
		stats.Chops++
	case winners[0]:
		stats.SeatWins[0]++
	case winners[1]:
		stats.SeatWins[1]++
	}

	logger.Debug("hand complete",
		"hand", snap.HandNumber,
		"pot", pot,
		"showdown", sawShowdown,
		"chips0", snap.Players[0].Chips,
		"chips1", snap.Players[1].Chips)
}

func report(stats *Stats) {
	fmt.Printf("\nSimulation complete\n")
	fmt.Printf("  hands:        %d\n", stats.Hands)
	fmt.Printf("  showdowns:    %d (%.1f%%)\n", stats.Showdowns, pct(stats.Showdowns, stats.Hands))
	fmt.Printf("  uncontested:  %d (%.1f%%)\n", stats.Uncontested, pct(stats.Uncontested, stats.Hands))
	fmt.Printf("  seat 0 wins:  %d\n", stats.SeatWins[0])
	fmt.Printf("  seat 1 wins:  %d\n", stats.SeatWins[1])
	fmt.Printf("  chopped pots: %d\n", stats.Chops)
	fmt.Printf("  busts:        %d\n", stats.Busts)
	fmt.Printf("  avg pot:      %.1f\n", float64(stats.TotalPot)/float64(max(stats.Hands, 1)))
	fmt.Printf("  max pot:      %d\n", stats.MaxPot)
	if stats.InvariantErr > 0 {
		fmt.Printf("  ENGINE ERRORS: %d\n", stats.InvariantErr)
	}
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
