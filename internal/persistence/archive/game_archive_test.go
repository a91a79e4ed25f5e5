package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"aresrules.dev/internal/persistence/snapshot"
)

func TestArchiveGameSnapshot(t *testing.T) {
	dir := t.TempDir()
	snap := snapshot.SnapshotV1{
		Header:      snapshot.Header{Version: snapshot.Version, GameID: "g1", Generation: 7},
		Seed:        42,
		Temperature: 8,
		Oxygen:      14,
		Tiles:       []snapshot.TileV1{{Space: "04", Kind: "OCEAN"}, {Space: "12", Kind: "CITY", Owner: "p1"}},
	}
	src := filepath.Join(dir, "snapshots", "7.snap.zst")
	if err := snapshot.WriteSnapshot(src, snap); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	dst, err := ArchiveGameSnapshot(dir, src, snap)
	if err != nil {
		t.Fatalf("ArchiveGameSnapshot: %v", err)
	}
	if want := filepath.Join(dir, "archives", "generation_007", "7.snap.zst"); dst != want {
		t.Fatalf("dst=%q want %q", dst, want)
	}
	got, err := snapshot.ReadSnapshot(dst)
	if err != nil {
		t.Fatalf("ReadSnapshot archived copy: %v", err)
	}
	if got.Header != snap.Header {
		t.Fatalf("header=%+v want %+v", got.Header, snap.Header)
	}

	b, err := os.ReadFile(filepath.Join(filepath.Dir(dst), "meta.json"))
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	var meta GameArchiveMeta
	if err := json.Unmarshal(b, &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta.GameID != "g1" || meta.Generation != 7 || meta.Seed != 42 || meta.Oceans != 1 || meta.Terraformed {
		t.Fatalf("meta mismatch: %+v", meta)
	}
}

func TestArchiveGameSnapshot_RequiresGeneration(t *testing.T) {
	if _, err := ArchiveGameSnapshot(t.TempDir(), "x", snapshot.SnapshotV1{}); err == nil {
		t.Fatalf("expected error for generation 0")
	}
}

func TestTerraformed(t *testing.T) {
	snap := snapshot.SnapshotV1{Temperature: 8, Oxygen: 14}
	for i := 0; i < 9; i++ {
		snap.Tiles = append(snap.Tiles, snapshot.TileV1{Kind: "OCEAN"})
	}
	if !Terraformed(snap) {
		t.Fatalf("expected terraformed")
	}
	snap.Oxygen = 13
	if Terraformed(snap) {
		t.Fatalf("oxygen below max must not count as terraformed")
	}
}
