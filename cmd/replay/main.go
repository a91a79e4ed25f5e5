package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"aresrules.dev/internal/config"
	persistlog "aresrules.dev/internal/persistence/log"
	"aresrules.dev/internal/persistence/snapshot"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/game"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/tuning"
)

func main() {
	var env config.Replay
	if err := config.ParseEnv(&env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var (
		snapPath   = flag.String("snapshot", "", "path to .snap.zst")
		logPath    = flag.String("log", "", "game log .jsonl.zst (default: <data>/games/<game>/gamelog/gamelog-<game>.jsonl.zst)")
		tuningPath = flag.String("tuning", "", "tuning.yaml the game ran with (default: built-in tuning)")
		tail       = flag.Int("tail", 10, "print the last n log entries")
	)
	flag.Parse()

	if *snapPath == "" {
		fmt.Fprintln(os.Stderr, "missing -snapshot")
		os.Exit(2)
	}

	snap, err := snapshot.ReadSnapshot(*snapPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read snapshot:", err)
		os.Exit(1)
	}
	fmt.Print(summarize(snap))

	tune := tuning.Defaults()
	if tp := strings.TrimSpace(*tuningPath); tp != "" {
		if tune, err = tuning.Load(tp); err != nil {
			fmt.Fprintln(os.Stderr, "load tuning:", err)
			os.Exit(1)
		}
	}
	if err := roundTrip(snap, tune); err != nil {
		fmt.Fprintln(os.Stderr, "import snapshot:", err)
		os.Exit(1)
	}
	fmt.Println("import ok")

	lp := strings.TrimSpace(*logPath)
	if lp == "" {
		gameDir := filepath.Join(env.DataDir, "games", snap.Header.GameID)
		lp = persistlog.NewGameLogger(gameDir, snap.Header.GameID).Path()
	}
	entries, err := persistlog.ReadEntries(lp)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("no game log at", lp)
			return
		}
		fmt.Fprintln(os.Stderr, "read log:", err)
		os.Exit(1)
	}
	if err := checkEntries(entries); err != nil {
		fmt.Fprintln(os.Stderr, "log:", err)
		os.Exit(1)
	}
	fmt.Printf("log ok: %d entries\n", len(entries))
	start := len(entries) - *tail
	if start < 0 {
		start = 0
	}
	for _, e := range entries[start:] {
		fmt.Printf("  #%d %s\n", e.Seq, e.Render())
	}
}

func summarize(snap snapshot.SnapshotV1) string {
	var b strings.Builder
	fmt.Fprintf(&b, "snapshot v%d game=%s generation=%d phase=%s seed=%d temperature=%d oxygen=%d\n",
		snap.Header.Version, snap.Header.GameID, snap.Header.Generation, snap.Phase, snap.Seed, snap.Temperature, snap.Oxygen)

	if a := snap.Ares; a.Active {
		h := a.Hazards
		fmt.Fprintf(&b, "ares hazards=%v erosion=%s storms_removed=%s severe_erosion=%s severe_storms=%s\n",
			a.IncludeHazards, gateString(h.ErosionOceanCount), gateString(h.RemoveDustStormsOceanCount),
			gateString(h.SevereErosionTemperature), gateString(h.SevereDustStormOxygen))
		for _, m := range a.Milestones {
			fmt.Fprintf(&b, "  milestone %s=%d\n", m.PlayerID, m.Count)
		}
	}

	kinds := map[string]int{}
	for _, t := range snap.Tiles {
		kinds[t.Kind]++
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Fprintf(&b, "tiles=%d", len(snap.Tiles))
	for _, k := range names {
		label := k
		if tk, err := board.ParseTileKind(k); err == nil {
			label = tk.String()
		}
		fmt.Fprintf(&b, " %s:%d", label, kinds[k])
	}
	b.WriteByte('\n')

	for _, p := range snap.Players {
		fmt.Fprintf(&b, "  player %s (%s) tr=%d mc=%d\n", p.ID, p.Name, p.TerraformRating, p.Resources[0])
	}
	return b.String()
}

func gateString(g snapshot.GateV1) string {
	state := "open"
	if !g.Available {
		state = "fired"
	}
	return fmt.Sprintf("%d/%s", g.Threshold, state)
}

// roundTrip rebuilds the game from snap and checks it exports the same state.
func roundTrip(snap snapshot.SnapshotV1, tune tuning.Tuning) error {
	g, err := game.ImportSnapshot(snap, game.Options{Tuning: tune})
	if err != nil {
		return err
	}
	again, err := g.ExportSnapshot()
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(normalize(snap), normalize(again)) {
		return fmt.Errorf("re-exported state differs from snapshot")
	}
	return nil
}

func normalize(s snapshot.SnapshotV1) snapshot.SnapshotV1 {
	if s.Tiles == nil {
		s.Tiles = []snapshot.TileV1{}
	}
	if s.Ares.Milestones == nil {
		s.Ares.Milestones = []snapshot.MilestoneV1{}
	}
	return s
}

// checkEntries requires sequence numbers 1..n with no gaps.
func checkEntries(entries []gamelog.Entry) error {
	for i, e := range entries {
		if want := uint64(i + 1); e.Seq != want {
			return fmt.Errorf("entry %d has seq %d, want %d", i, e.Seq, want)
		}
	}
	return nil
}
