package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pokereval/enum"
	"github.com/lox/pokereval/handrange"
	"github.com/lox/pokereval/poker"
	"github.com/lox/pokereval/solver"
)

type CLI struct {
	LogLevel string `help:"Set the log-level" enum:"debug,info,warn,error" default:"info"`

	Equity EquityCmd `cmd:"" help:"Calculate equity for specific hands"`
	Range  RangeCmd  `cmd:"" help:"Expand a range expression and run range-vs-range equity"`
	Solve  SolveCmd  `cmd:"" help:"Train a CFR solver on Kuhn poker"`
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	handStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	percentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokereval"),
		kong.Description("Poker analytics: equity enumeration, ranges, and CFR solving"),
		kong.BindTo(signalContext(), (*context.Context)(nil)),
	)

	level, err := log.ParseLevel(cli.LogLevel)
	if err == nil {
		log.SetLevel(level)
	}

	ctx.FatalIfErrorf(ctx.Run())
}

func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()
	return ctx
}

type EquityCmd struct {
	Hands      []string `arg:"" help:"Player hands, e.g. 'AsKs' 'QdQh'" required:""`
	Board      string   `short:"b" help:"Community board cards (e.g. 'Td7s8h')"`
	Dead       string   `short:"d" help:"Dead cards removed from the deck"`
	Game       string   `short:"g" help:"Game code" default:"holdem"`
	MonteCarlo bool     `short:"m" help:"Sample instead of exhaustive enumeration"`
	Iterations int64    `short:"i" help:"Monte Carlo iterations" default:"100000"`
	Seed       int64    `help:"Random seed for reproducible sampling"`
}

func (c *EquityCmd) Run(ctx context.Context) error {
	game, err := enum.ParseGame(c.Game)
	if err != nil {
		return err
	}

	hands := make([]poker.CardMask, 0, len(c.Hands))
	for i, s := range c.Hands {
		m, _, err := poker.ParseMask(s)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands = append(hands, m)
	}

	var board, dead poker.CardMask
	if c.Board != "" {
		if board, _, err = poker.ParseMask(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}
	if c.Dead != "" {
		if dead, _, err = poker.ParseMask(c.Dead); err != nil {
			return fmt.Errorf("dead: %w", err)
		}
	}

	start := time.Now()
	res, err := enum.Calculate(ctx, hands, enum.CalculateOptions{
		Game:       game,
		Board:      board,
		Dead:       dead,
		MonteCarlo: c.MonteCarlo,
		Iterations: c.Iterations,
		Seed:       c.Seed,
	})
	if err != nil {
		return err
	}
	log.Debug("equity query finished", "samples", res.Samples, "duration", time.Since(start))

	params := game.Params()
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s — %d rollouts", params.Name, res.Samples)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if params.HasLoPot && params.HasHiPot {
		fmt.Fprintln(w, "HAND\tWIN\tTIE\tLOSE\tWIN LO\tSCOOP\tEV")
	} else {
		fmt.Fprintln(w, "HAND\tWIN\tTIE\tLOSE\tEV")
	}
	for _, p := range res.Players {
		if params.HasLoPot && params.HasHiPot {
			fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%.2f%%\t%.2f%%\t%.2f%%\t%.4f\n",
				handStyle.Render(p.Hand.String()),
				percentStyle.Render(fmt.Sprintf("%.2f%%", p.WinPct*100)),
				p.TiePct*100, p.LosePct*100, p.WinLoPct*100, p.ScoopPct*100, p.EV)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%.2f%%\t%.4f\n",
				handStyle.Render(p.Hand.String()),
				percentStyle.Render(fmt.Sprintf("%.2f%%", p.WinPct*100)),
				p.TiePct*100, p.LosePct*100, p.EV)
		}
	}
	return w.Flush()
}

type RangeCmd struct {
	Hero       string `arg:"" help:"Hero range, e.g. 'JJ+,AKs'"`
	Villain    string `arg:"" optional:"" help:"Villain range for equity (omit to just expand)"`
	Board      string `short:"b" help:"Community board cards"`
	Iterations int64  `short:"i" help:"Monte Carlo iterations" default:"10000"`
	Seed       int64  `help:"Random seed"`
}

func (c *RangeCmd) Run(ctx context.Context) error {
	hero, err := handrange.Parse(c.Hero)
	if err != nil {
		return fmt.Errorf("hero range: %w", err)
	}

	if c.Villain == "" {
		fmt.Printf("%s expands to %d combos\n", handStyle.Render(c.Hero), hero.Len())
		combos := make([]string, 0, hero.Len())
		for _, combo := range hero.Combos() {
			combos = append(combos, combo.Mask.String())
		}
		fmt.Println(strings.Join(combos, " "))
		return nil
	}

	villain, err := handrange.Parse(c.Villain)
	if err != nil {
		return fmt.Errorf("villain range: %w", err)
	}

	var board poker.CardMask
	if c.Board != "" {
		if board, _, err = poker.ParseMask(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	res, err := enum.RangeEquity(ctx, hero, villain, board, c.Iterations, c.Seed)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s vs %s (%d samples)", c.Hero, c.Villain, res.Samples)))
	fmt.Printf("equity %s  win %d  tie %d  lose %d\n",
		percentStyle.Render(fmt.Sprintf("%.2f%%", res.Equity*100)),
		res.Wins, res.Ties, res.Losses)
	return nil
}

type SolveCmd struct {
	Iterations int    `short:"i" help:"Training iterations" default:"10000"`
	Checkpoint string `short:"c" help:"Checkpoint path to save (and resume from, if present)"`
	Profile    string `short:"p" help:"Tree-profile HCL file to validate and log"`
	DCFR       bool   `help:"Use the DCFR discount schedule"`
	External   bool   `help:"Use external-sampling MCCFR"`
	Seed       int64  `help:"Training seed" default:"1"`
}

func (c *SolveCmd) Run(ctx context.Context) error {
	if c.Profile != "" {
		profiles, err := solver.LoadTreeProfiles(c.Profile)
		if err != nil {
			return fmt.Errorf("tree profiles: %w", err)
		}
		log.Info("loaded tree profiles", "count", len(profiles.Profiles))
	}

	var s *solver.Solver
	var err error
	if c.Checkpoint != "" {
		if _, statErr := os.Stat(c.Checkpoint); statErr == nil {
			s, err = solver.LoadCheckpoint(c.Checkpoint, c.Seed)
			if err != nil {
				return err
			}
			log.Info("resumed from checkpoint", "iteration", s.Iteration())
		}
	}
	if s == nil {
		cfg := solver.Config{NumPlayers: 2, CFRPlus: true, LinearPower: 1, Seed: c.Seed}
		if c.DCFR {
			cfg.DCFR = true
			cfg.Alpha, cfg.Beta, cfg.Gamma = solver.DefaultDCFR()
		}
		if c.External {
			cfg.Sampling = solver.ExternalSampling
		}
		if s, err = solver.New(cfg); err != nil {
			return err
		}
	}

	root := solver.NewKuhn()
	logEvery := max(c.Iterations/10, 1)
	err = s.Train(ctx, root, c.Iterations, func(p solver.Progress) {
		if p.Iteration%logEvery == 0 {
			log.Info("training", "iteration", p.Iteration, "infosets", p.Infosets)
		}
	})
	if err != nil {
		return err
	}

	conv := s.NashConv(root)
	fmt.Println(headerStyle.Render("Kuhn poker averaged strategy"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INFOSET\tCHECK/FOLD\tBET/CALL")
	table := s.StrategyTable()
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		strat := table[key]
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\n", key, strat[solver.KuhnCheck], strat[solver.KuhnBet])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("NashConv after %d iterations: %s\n", s.Iteration(),
		percentStyle.Render(fmt.Sprintf("%.5f", conv)))

	if c.Checkpoint != "" {
		if err := s.SaveCheckpoint(c.Checkpoint); err != nil {
			return err
		}
		log.Info("checkpoint saved", "path", c.Checkpoint)
	}
	return nil
}
