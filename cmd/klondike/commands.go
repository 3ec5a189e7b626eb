package main

import (
	"fmt"

	"github.com/jason-s-yu/klondike/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	logLevel   string

	// simulate
	numGames   int
	workers    int
	seed       uint64
	maxTurns   int
	reportDir  string
	noSave     bool
	verify     bool
	stacking   bool
	noProgress bool

	// play
	quiet      bool
	jsonEvents bool
	noColor    bool

	// stats
	recentLimit int

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "klondike",
		Short: "Klondike solitaire engine, heuristic agent and batch simulator",
		Long: `klondike deals and plays solitaire games with a greedy heuristic agent.
Use "simulate" to measure the agent over many deals and "play" to watch one.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	simulateCmd = &cobra.Command{
		Use:     "simulate",
		Short:   "Play a batch of games and report the results",
		Aliases: []string{"sim"},
		Args:    cobra.NoArgs,
		RunE:    runSimulate, // Defined in cmd_simulate.go
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play one game and show the board after every move",
		Args:  cobra.NoArgs,
		RunE:  runPlay, // Defined in cmd_play.go
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show stored batches and cumulative totals",
		Args:  cobra.NoArgs,
		RunE:  runStats, // Defined in cmd_stats.go
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "klondike.yaml", "path to a YAML or JSON config file")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.Uint64Var(&seed, "seed", 0, "deal seed; 0 picks one from the clock")
	pf.IntVar(&maxTurns, "max-turns", 0, "turn ceiling per game")
	pf.BoolVar(&stacking, "stacking", false, "let the reserve hold the whole stock instead of one card")

	sf := simulateCmd.Flags()
	sf.IntVarP(&numGames, "games", "n", 0, "number of games to play")
	sf.IntVarP(&workers, "workers", "w", 0, "concurrent games; 0 uses every CPU")
	sf.StringVar(&reportDir, "report-dir", "", "directory for report files")
	sf.BoolVar(&noSave, "no-save", false, "skip report files and stores")
	sf.BoolVar(&verify, "verify", false, "check engine invariants after every move")
	sf.BoolVar(&noProgress, "no-progress", false, "do not print progress lines")

	plf := playCmd.Flags()
	plf.BoolVarP(&quiet, "quiet", "q", false, "only print the final result")
	plf.BoolVar(&jsonEvents, "json", false, "print game events as JSON lines instead of boards")
	plf.BoolVar(&noColor, "no-color", false, "disable coloured cards")

	statsCmd.Flags().IntVar(&recentLimit, "limit", 10, "number of recent batches to list")

	rootCmd.AddCommand(simulateCmd, playCmd, statsCmd)
}

// loadConfig reads the config file and environment, then applies any flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, &c)
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	c.ConfigureLogger(logrus.StandardLogger())
	cfg = c
	return nil
}

// applyFlags overrides c with every flag changed on cmd's command line.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("log-level") {
		c.Log.Level = logLevel
	}
	if changed("seed") {
		c.Sim.Seed = seed
	}
	if changed("max-turns") {
		c.Sim.MaxTurns = maxTurns
	}
	if changed("stacking") && stacking {
		c.Rules.ReserveCapacity = 0
	}
	if changed("games") {
		c.Sim.Games = numGames
	}
	if changed("workers") {
		c.Sim.Workers = workers
	}
	if changed("report-dir") {
		c.Report.Dir = reportDir
	}
	if changed("no-save") && noSave {
		c.Report.Save = false
		c.Report.Cumulative = false
		c.Store = config.StoreConfig{}
	}
	if changed("verify") {
		c.Sim.VerifyInvariants = verify
	}
}
