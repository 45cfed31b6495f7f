package main

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-trainer/internal/ai"
	"github.com/lox/holdem-trainer/internal/config"
	"github.com/lox/holdem-trainer/internal/game"
	"github.com/lox/holdem-trainer/internal/randutil"
	"github.com/lox/holdem-trainer/internal/stats"
)

// SimulateCmd plays full AI-vs-AI games with no delays. It doubles as a
// stress harness: every hand checks that chips are conserved, and any hand
// that fails to resolve aborts the run.
type SimulateCmd struct {
	Games    int    `default:"100" help:"Number of games to play"`
	Seed     int64  `default:"0" help:"RNG seed (0 for time-based)"`
	Parallel int    `default:"4" help:"Games played concurrently"`
	Config   string `default:"holdem-trainer.hcl" help:"Path to HCL config file"`
	Verbose  bool   `help:"Debug logging"`
}

type gameResult struct {
	Champion string
	Hands    int
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	fmt.Printf("Simulating %d games, %d seats, seed %d\n", c.Games, cfg.Table.Seats, c.Seed)

	// Derive an independent seed per game up front so results are
	// reproducible regardless of scheduling order.
	master := randutil.New(c.Seed)
	seeds := make([]int64, c.Games)
	for i := range seeds {
		seeds[i] = master.Int64()
	}

	var (
		mu      sync.Mutex
		wins    = make(map[string]int)
		hands   int
		started = time.Now()
	)

	var g errgroup.Group
	g.SetLimit(c.Parallel)
	for i := 0; i < c.Games; i++ {
		seed := seeds[i]
		g.Go(func() error {
			result, err := playGame(cfg, seed, logger)
			if err != nil {
				return fmt.Errorf("game with seed %d: %w", seed, err)
			}
			mu.Lock()
			wins[result.Champion]++
			hands += result.Hands
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSummary(wins, c.Games, hands, time.Since(started))
	return nil
}

// playGame runs one game to elimination and verifies chip conservation
// after every hand.
func playGame(cfg *config.Config, seed int64, logger *log.Logger) (gameResult, error) {
	rng := randutil.New(seed)
	eng := game.NewEngine(rng, logger, tableConfig(cfg))

	policies := make([]*ai.Policy, cfg.Table.Seats)
	profile := ai.Profile{
		Aggression:     cfg.AI.Aggression,
		BluffFrequency: cfg.AI.BluffFrequency,
	}
	for seat := range policies {
		policies[seat] = ai.NewPolicy(rng, logger, profile)
	}

	expected := cfg.Table.Seats * cfg.Table.Stack

	const maxHands = 10000
	for hand := 0; hand < maxHands; hand++ {
		h := eng.StartHand()
		if h == nil {
			champ := eng.Table().Champion()
			if champ == nil {
				return gameResult{}, fmt.Errorf("game over with no champion")
			}
			return gameResult{Champion: champ.Name, Hands: eng.Table().HandNum}, nil
		}

		if err := playHand(eng, policies); err != nil {
			return gameResult{}, err
		}

		if total := eng.Table().TotalChips(); total != expected {
			return gameResult{}, fmt.Errorf("chip conservation broken after hand %d: have %d, want %d",
				eng.Table().HandNum, total, expected)
		}
	}
	return gameResult{}, fmt.Errorf("game did not finish within %d hands", maxHands)
}

// playHand drives one hand to completion with every seat on its policy.
func playHand(eng *game.Engine, policies []*ai.Policy) error {
	const maxActions = 500
	for i := 0; i < maxActions; i++ {
		h := eng.Hand()
		if h == nil || h.Complete {
			return nil
		}
		seat := h.Active
		if seat < 0 {
			return fmt.Errorf("hand %d stalled with no active seat", eng.Table().HandNum)
		}
		d := policies[seat].Decide(h, seat, opponentStats(eng, h, seat))
		eng.ApplyAction(seat, d.Action, d.Amount)
	}
	return fmt.Errorf("hand %d exceeded %d actions", eng.Table().HandNum, maxActions)
}

// opponentStats picks the tracked tendencies of the seat's nearest live
// opponent, the same read the policy uses against a human.
func opponentStats(eng *game.Engine, h *game.HandState, seat int) stats.PlayerStats {
	n := len(h.Players)
	for i := 1; i < n; i++ {
		p := h.Players[(seat+i)%n]
		if p.InHand() {
			return eng.StatsFor(p.Name)
		}
	}
	return eng.StatsFor(h.Players[seat].Name)
}

func tableConfig(cfg *config.Config) game.TableConfig {
	stacks := make([]int, cfg.Table.Seats)
	for i := range stacks {
		stacks[i] = cfg.Table.Stack
	}
	schedule := make([]game.BlindLevel, len(cfg.Blinds.Levels))
	for i, lvl := range cfg.Blinds.Levels {
		schedule[i] = game.BlindLevel{Small: lvl.Small, Big: lvl.Big}
	}
	return game.TableConfig{
		Stacks:        stacks,
		HumanSeat:     -1,
		Schedule:      schedule,
		HandsPerLevel: cfg.Blinds.HandsPerLevel,
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	winnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func printSummary(wins map[string]int, games, hands int, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(titleStyle.Render("=== SIMULATION RESULTS ==="))
	fmt.Printf("Games: %d, hands: %d, time: %v (%.1f hands/sec)\n",
		games, hands, elapsed.Round(time.Millisecond),
		float64(hands)/elapsed.Seconds())

	names := make([]string, 0, len(wins))
	for name := range wins {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return wins[names[i]] > wins[names[j]] })

	for _, name := range names {
		pct := float64(wins[name]) / float64(games) * 100
		fmt.Printf("%s %s\n",
			winnerStyle.Render(fmt.Sprintf("%-12s", name)),
			faintStyle.Render(fmt.Sprintf("%4d wins (%.1f%%)", wins[name], pct)))
	}
}
