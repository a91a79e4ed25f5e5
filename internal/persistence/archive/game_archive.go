package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"aresrules.dev/internal/persistence/snapshot"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/game"
)

type GameArchiveMeta struct {
	GameID      string `json:"game_id"`
	Generation  int    `json:"generation"`
	Seed        int64  `json:"seed"`
	Snapshot    string `json:"snapshot"`
	CreatedAt   string `json:"created_at"`
	Temperature int    `json:"temperature"`
	Oxygen      int    `json:"oxygen"`
	Oceans      int    `json:"oceans"`
	Terraformed bool   `json:"terraformed"`
}

// Terraformed reports whether every global parameter in snap is at its maximum.
func Terraformed(snap snapshot.SnapshotV1) bool {
	return snap.Temperature >= game.MaxTemperature && snap.Oxygen >= game.MaxOxygen && oceans(snap) >= board.MaxOceans
}

func oceans(snap snapshot.SnapshotV1) int {
	n := 0
	for _, t := range snap.Tiles {
		if k, err := board.ParseTileKind(t.Kind); err == nil && board.IsOcean(k) {
			n++
		}
	}
	return n
}

// ArchiveGameSnapshot copies the last snapshot of a game into
// `gameDir/archives/generation_<NNN>/` next to a meta.json.
func ArchiveGameSnapshot(gameDir, snapshotPath string, snap snapshot.SnapshotV1) (archivedPath string, err error) {
	if snap.Header.Generation <= 0 {
		return "", fmt.Errorf("archive: snapshot has no generation")
	}
	archiveDir := filepath.Join(gameDir, "archives", fmt.Sprintf("generation_%03d", snap.Header.Generation))
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(archiveDir, filepath.Base(snapshotPath))
	if err := copyFile(snapshotPath, dst); err != nil {
		return "", err
	}

	meta := GameArchiveMeta{
		GameID:      snap.Header.GameID,
		Generation:  snap.Header.Generation,
		Seed:        snap.Seed,
		Snapshot:    filepath.Base(dst),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		Temperature: snap.Temperature,
		Oxygen:      snap.Oxygen,
		Oceans:      oceans(snap),
		Terraformed: Terraformed(snap),
	}
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(archiveDir, "meta.json"), b, 0o644); err != nil {
		return "", err
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
