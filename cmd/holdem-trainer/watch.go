package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-trainer/internal/ai"
	"github.com/lox/holdem-trainer/internal/config"
	"github.com/lox/holdem-trainer/internal/deck"
	"github.com/lox/holdem-trainer/internal/game"
	"github.com/lox/holdem-trainer/internal/randutil"
)

// WatchCmd plays one game with every seat on a policy, pacing decisions
// through the thinking scheduler and printing the audit log as it grows.
type WatchCmd struct {
	Seed    int64  `default:"0" help:"RNG seed (0 for time-based)"`
	Hands   int    `default:"0" help:"Stop after this many hands (0 plays to elimination)"`
	Config  string `default:"holdem-trainer.hcl" help:"Path to HCL config file"`
	Verbose bool   `help:"Debug logging"`
}

var (
	handStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	posStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(6)
	adviceStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	boardStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

func (c *WatchCmd) Run() error {
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

	rng := randutil.New(c.Seed)
	eng := game.NewEngine(rng, logger, tableConfig(cfg))
	sched := ai.NewScheduler(quartz.NewReal(), logger)
	defer sched.Cancel()

	policies := make([]*ai.Policy, cfg.Table.Seats)
	profile := ai.Profile{
		Aggression:     cfg.AI.Aggression,
		BluffFrequency: cfg.AI.BluffFrequency,
	}
	for seat := range policies {
		policies[seat] = ai.NewPolicy(rng, logger, profile)
	}

	minThink := time.Duration(cfg.AI.MinThinkMillis) * time.Millisecond
	maxThink := time.Duration(cfg.AI.MaxThinkMillis) * time.Millisecond

	for hand := 0; c.Hands == 0 || hand < c.Hands; hand++ {
		h := eng.StartHand()
		if h == nil {
			break
		}

		blinds := eng.Table().Blinds()
		fmt.Println()
		fmt.Println(handStyle.Render(fmt.Sprintf("--- Hand %d (blinds %d/%d) ---",
			eng.Table().HandNum, blinds.Small, blinds.Big)))

		printed := 0
		printed = printLog(h, printed)

		street := h.Street
		for !h.Complete {
			seat := h.Active
			if seat < 0 {
				break
			}

			d := policies[seat].Decide(h, seat, opponentStats(eng, h, seat))

			think := minThink
			if maxThink > minThink {
				think += time.Duration(rng.Int64N(int64(maxThink - minThink)))
			}
			gen := eng.Generation()
			done := make(chan struct{})
			sched.Schedule(think,
				func() bool { return eng.Generation() == gen && eng.ActiveSeat() == seat },
				func() {
					eng.ApplyAction(seat, d.Action, d.Amount)
					close(done)
				})
			<-done

			printed = printLog(h, printed)
			if h.Street != street {
				street = h.Street
				if len(h.Board) > 0 && street <= game.River {
					fmt.Printf("  %s %s\n", street, boardStyle.Render(formatBoard(h.Board)))
				}
			}
		}
		printed = printLog(h, printed)
		printStacks(eng.Table())
	}

	if champ := eng.Table().Champion(); champ != nil {
		fmt.Println()
		fmt.Println(winnerStyle.Render(fmt.Sprintf("%s wins the game after %d hands",
			champ.Name, eng.Table().HandNum)))
	}
	printTendencies(eng)
	return nil
}

// printLog prints log entries appended since the last call and returns the
// new high-water mark.
func printLog(h *game.HandState, from int) int {
	for _, entry := range h.Log[from:] {
		line := fmt.Sprintf("  %s %s", posStyle.Render(entry.Position.String()), entry.Message)
		if entry.Strength > 0 {
			line += " " + adviceStyle.Render(fmt.Sprintf("(advice: %s, strength %.0f)",
				entry.Advice, entry.Strength))
		}
		fmt.Println(line)
	}
	return len(h.Log)
}

func printStacks(t *game.Table) {
	parts := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		parts = append(parts, fmt.Sprintf("%s %d", p.Name, p.Chips))
	}
	fmt.Println(faintStyle.Render("  stacks: " + strings.Join(parts, ", ")))
}

func printTendencies(eng *game.Engine) {
	fmt.Println()
	fmt.Println(titleStyle.Render("=== TENDENCIES ==="))
	for _, p := range eng.Table().Players {
		s := eng.StatsFor(p.Name)
		if s.HandsDealt == 0 {
			continue
		}
		fmt.Printf("%-12s VPIP %.0f%%  PFR %.0f%%  AF %.1f\n",
			p.Name, s.VPIP()*100, s.PFR()*100, s.AggressionFactor)
	}
}

func formatBoard(board []deck.Card) string {
	parts := make([]string, len(board))
	for i, c := range board {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
