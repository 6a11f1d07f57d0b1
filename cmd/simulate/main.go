// Package main runs seeded batches of automated encounters and prints balance figures.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/geoquest/internal/config"
	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
	"github.com/cory-johannsen/geoquest/internal/game/gamedata"
	"github.com/cory-johannsen/geoquest/internal/game/simulate"
	"github.com/cory-johannsen/geoquest/internal/observability"
	"github.com/cory-johannsen/geoquest/internal/scripting"
)

func main() {
	start := time.Now()

	classes := flag.String("classes", "fighter,wizard,rogue,cleric", "comma-separated classes to simulate")
	monsters := flag.String("monsters", "", "comma-separated monster templates; empty = all")
	level := flag.Int("level", 3, "character level")
	tier := flag.String("tier", "", "tier override for every monster")
	n := flag.Int("n", 200, "encounters per class and monster pair")
	seed := flag.Uint64("seed", 1, "base seed")
	workers := flag.Int("workers", 8, "parallel encounters")
	dataDir := flag.String("data", "", "content directory; empty = embedded tables")
	verbose := flag.Bool("v", false, "log every dice roll")
	flag.Parse()

	logCfg := config.LoggingConfig{Level: "warn", Format: "console"}
	if *verbose {
		logCfg.Level = "debug"
	}
	logger, err := observability.NewLogger(logCfg, "simulate")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = observability.Sync(logger) }()

	var data *gamedata.Data
	if *dataDir != "" {
		data, err = gamedata.LoadDir(*dataDir)
	} else {
		data, err = gamedata.Load()
	}
	if err != nil {
		logger.Fatal("loading game data", zap.Error(err))
	}

	var parsedTier combat.Tier
	if *tier != "" {
		if parsedTier, err = combat.ParseTier(*tier); err != nil {
			logger.Fatal("parsing tier", zap.Error(err))
		}
	}

	scriptMgr := scripting.NewManager(dice.NewLoggedRoller(dice.NewSeededSource(*seed), logger), logger, 0)
	defer scriptMgr.Close()
	if data.Scripts != nil {
		if err := scriptMgr.LoadTree(data.Scripts, "."); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
	}

	names := data.Monsters.Names()
	if *monsters != "" {
		names = split(*monsters)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLASS\tMONSTER\tWIN%\tDEFEAT\tSTALLED\tROUNDS\tHP LEFT\tXP/FIGHT")
	ctx := context.Background()
	for _, c := range split(*classes) {
		class, err := character.ParseClass(c)
		if err != nil {
			logger.Fatal("parsing class", zap.Error(err))
		}
		for _, name := range names {
			rep, err := simulate.Run(ctx, data, scriptMgr, simulate.Config{
				Class: class, Level: *level, Monster: name, Tier: parsedTier,
				Encounters: *n, Seed: *seed, Workers: *workers,
			}, logger)
			if err != nil {
				logger.Fatal("simulating", zap.String("class", c), zap.String("monster", name), zap.Error(err))
			}
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%d\t%d\t%.1f\t%.0f%%\t%d\n",
				class, name, rep.WinRate()*100, rep.Defeats, rep.Stalled,
				rep.AvgRounds, rep.AvgHealth*100, rep.Experience/rep.Encounters)
		}
	}
	_ = w.Flush()
	fmt.Fprintf(os.Stdout, "level=%d n=%d seed=%d [%s]\n", *level, *n, *seed, time.Since(start))
}

func split(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
