package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"aresrules.dev/internal/config"
	"aresrules.dev/internal/persistence/archive"
	"aresrules.dev/internal/persistence/indexdb"
	persistlog "aresrules.dev/internal/persistence/log"
	"aresrules.dev/internal/persistence/snapshot"
	"aresrules.dev/internal/sim/game"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/player"
	"aresrules.dev/internal/sim/tuning"
)

func main() {
	var env config.Sim
	if err := config.ParseEnv(&env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var (
		gameID      = flag.String("game", env.GameID, "game id")
		dataDir     = flag.String("data", env.DataDir, "runtime data directory")
		tuningPath  = flag.String("tuning", env.TuningPath, "path to tuning.yaml (default: built-in tuning)")
		players     = flag.Int("players", env.Players, "number of players (1-5)")
		hazards     = flag.Bool("hazards", env.Hazards, "enable Ares hazards")
		disableDB   = flag.Bool("disable_db", env.DisableDB, "disable the sqlite index")
		generations = flag.Int("generations", 8, "generations to play")
		seed        = flag.Int64("seed", 0, "override the tuning seed (0 keeps it)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[aressim] ", log.LstdFlags|log.Lmicroseconds)

	if *players < 1 || *players > 5 {
		logger.Fatalf("players must be 1-5, got %d", *players)
	}

	tune := tuning.Defaults()
	if tp := strings.TrimSpace(*tuningPath); tp != "" {
		t, err := tuning.Load(tp)
		if err != nil {
			logger.Fatalf("load tuning: %v", err)
		}
		tune = t
	}
	if *seed != 0 {
		tune.Seed = *seed
	}

	gameDir := filepath.Join(*dataDir, "games", *gameID)
	if err := os.MkdirAll(gameDir, 0o755); err != nil {
		logger.Fatalf("mkdir: %v", err)
	}

	glog := persistlog.NewGameLogger(gameDir, *gameID)
	// A fresh game restarts log sequence numbers.
	if err := os.Remove(glog.Path()); err != nil && !os.IsNotExist(err) {
		logger.Fatalf("reset game log: %v", err)
	}
	defer glog.Close()
	sinks := []gamelog.Sink{glog}

	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		var err error
		idx, err = indexdb.OpenSQLite(filepath.Join(gameDir, "index.sqlite"))
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		defer func() {
			if err := idx.Close(); err != nil {
				logger.Printf("close index: %v", err)
			}
		}()
		if err := idx.UpsertTuning(*gameID, tune); err != nil {
			logger.Printf("index tuning: %v", err)
		}
		sinks = append(sinks, idx.EntrySink(*gameID))
	}

	g, err := game.New(*gameID, newPlayers(*players), game.Options{
		Ares:    true,
		Hazards: *hazards,
		Tuning:  tune,
		Sinks:   sinks,
	})
	if err != nil {
		logger.Fatalf("new game: %v", err)
	}
	logger.Printf("game=%s players=%d hazards=%v seed=%d", g.ID, *players, *hazards, tune.Seed)

	var (
		lastPath string
		lastSnap snapshot.SnapshotV1
	)
	s := &script{g: g, logger: logger}
	s.afterGeneration = func(gen int) error {
		snap, err := g.ExportSnapshot()
		if err != nil {
			return err
		}
		path := filepath.Join(gameDir, "snapshots", fmt.Sprintf("%d.snap.zst", gen))
		if err := snapshot.WriteSnapshot(path, snap); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		lastPath, lastSnap = path, snap
		idx.RecordSnapshot(path, snap)
		idx.RecordAresState(g.ID, g.AresData())
		logger.Printf("gen %d: temperature=%d oxygen=%d oceans=%d snapshot=%s",
			gen, g.Temperature(), g.OxygenLevel(), g.Board().OceanCount(), path)
		return nil
	}
	if err := s.run(*generations); err != nil {
		logger.Fatalf("run: %v", err)
	}
	if lastPath != "" {
		dst, err := archive.ArchiveGameSnapshot(gameDir, lastPath, lastSnap)
		if err != nil {
			logger.Printf("archive snapshot: %v", err)
		} else {
			logger.Printf("archived %s terraformed=%v", dst, archive.Terraformed(lastSnap))
		}
	}
	if err := g.GameLog().Err(); err != nil {
		logger.Printf("log sinks: %v", err)
	}

	for _, p := range g.Players() {
		logger.Printf("%s tr=%d mc=%d", p.ID, p.TerraformRating(), p.Resource(player.MegaCredits))
	}
	logger.Printf("placements=%d skipped=%d log=%s entries=%d", s.placed, s.skipped, glog.Path(), g.GameLog().Len())
}
