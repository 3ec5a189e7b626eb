package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/jason-s-yu/klondike/internal/game"
	"github.com/jason-s-yu/klondike/internal/render"
	"github.com/jason-s-yu/klondike/internal/sim"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s := cfg.Sim.Seed
	if s == 0 {
		s = sim.TimeSeed()
	}
	g := game.NewKlondikeGame(s, game.Options{
		Rules:            cfg.Rules,
		Agent:            cfg.Agent,
		MaxTurns:         cfg.Sim.MaxTurns,
		VerifyInvariants: cfg.Sim.VerifyInvariants,
		SyncState:        jsonEvents,
	})
	g.Log = logrus.StandardLogger()

	out := cmd.OutOrStdout()
	r := render.NewRenderer(out, !noColor)
	switch {
	case jsonEvents:
		enc := json.NewEncoder(out)
		g.BroadcastFn = func(ev game.GameEvent) {
			if err := enc.Encode(ev); err != nil {
				logrus.Errorf("Game %s: encode event: %v", g.ID, err)
			}
		}
	case !quiet:
		g.BroadcastFn = func(ev game.GameEvent) {
			switch ev.Type {
			case game.EventGameStart:
				fmt.Fprintf(out, "Game %s, seed %d\n\n", g.ID, g.Seed)
				r.Board(&g.Engine)
			case game.EventMove:
				fmt.Fprintf(out, "\nTurn %d [%s]: %s\n", ev.Turn, ev.Tag, ev.Description)
				r.Board(&g.Engine)
			}
		}
	}

	res, err := g.Run(ctx)
	if err != nil {
		return err
	}
	if jsonEvents {
		return nil
	}
	fmt.Fprintln(out)
	r.GameOver(&g.Engine, string(res.Outcome), string(res.Cause), res.Turns)
	return nil
}
