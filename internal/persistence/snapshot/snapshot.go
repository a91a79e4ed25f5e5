package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"aresrules.dev/internal/protocol"
)

const Version = 1

type Header struct {
	Version    int    `json:"version"`
	GameID     string `json:"game_id"`
	Generation int    `json:"generation,omitempty"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed        int64  `json:"seed"`
	Phase       string `json:"phase,omitempty"`
	Temperature int    `json:"temperature"`
	Oxygen      int    `json:"oxygen"`

	Ares    AresV1     `json:"ares"`
	Tiles   []TileV1   `json:"tiles"`
	Claims  []ClaimV1  `json:"claims,omitempty"`
	Players []PlayerV1 `json:"players,omitempty"`

	// DealerDrawn is how many cards the hazard dealer has dealt; replay redeals to the same point.
	DealerDrawn int `json:"dealer_drawn,omitempty"`

	// DealerStacked holds cards stacked on the deck but not dealt yet, top first.
	DealerStacked []int `json:"dealer_stacked,omitempty"`
}

type GateV1 struct {
	Threshold int  `json:"threshold"`
	Available bool `json:"available"`
}

type HazardsV1 struct {
	ErosionOceanCount          GateV1 `json:"erosion_ocean_count"`
	RemoveDustStormsOceanCount GateV1 `json:"remove_dust_storms_ocean_count"`
	SevereErosionTemperature   GateV1 `json:"severe_erosion_temperature"`
	SevereDustStormOxygen      GateV1 `json:"severe_dust_storm_oxygen"`
}

type MilestoneV1 struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

type AresV1 struct {
	Active         bool          `json:"active"`
	IncludeHazards bool          `json:"include_hazards"`
	Hazards        HazardsV1     `json:"hazards"`
	Milestones     []MilestoneV1 `json:"milestones"`
}

// TileV1 is one occupied or claimed space.
type TileV1 struct {
	Space           string   `json:"space"`
	Kind            string   `json:"kind"`
	Owner           string   `json:"owner,omitempty"`
	ProtectedHazard bool     `json:"protected_hazard,omitempty"`
	Bonuses         []string `json:"adjacency_bonuses,omitempty"`
	Cost            int      `json:"adjacency_cost,omitempty"`
}

// ClaimV1 is an empty land space reserved for a player.
type ClaimV1 struct {
	Space string `json:"space"`
	Owner string `json:"owner"`
}

type CardV1 struct {
	Name         string `json:"name"`
	ResourceType string `json:"resource_type,omitempty"`
	Resources    int    `json:"resources,omitempty"`
}

type PlayerV1 struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	TerraformRating int      `json:"terraform_rating"`
	Resources       [6]int   `json:"resources"`
	Production      [6]int   `json:"production"`
	CardsInHand     int      `json:"cards_in_hand,omitempty"`
	HeatAsMC        bool     `json:"heat_as_megacredits,omitempty"`
	Corporation     *CardV1  `json:"corporation,omitempty"`
	PlayedCards     []CardV1 `json:"played_cards,omitempty"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if snap.Header.Version == 0 {
		snap.Header.Version = Version
	}
	// The schema rejects null arrays.
	if snap.Tiles == nil {
		snap.Tiles = []TileV1{}
	}
	if snap.Ares.Milestones == nil {
		snap.Ares.Milestones = []MilestoneV1{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	if err := writeLine(bw, snap.Header); err != nil {
		enc.Close()
		return err
	}
	if err := writeLine(bw, snap); err != nil {
		enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func writeLine(w *bufio.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

func open(path string) (*bufio.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	closeFn := func() {
		dec.Close()
		f.Close()
	}
	return bufio.NewReaderSize(dec, 256*1024), closeFn, nil
}

func readLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadBytes('\n')
	if errors.Is(err, io.EOF) && len(line) > 0 {
		return line, nil
	}
	return line, err
}

// ReadHeader reads only the header line.
func ReadHeader(path string) (Header, error) {
	var h Header
	br, closeFn, err := open(path)
	if err != nil {
		return h, err
	}
	defer closeFn()
	line, err := readLine(br)
	if err != nil {
		return h, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("decode header: %w", err)
	}
	return h, nil
}

// ReadSnapshot reads and schema-validates the body. The header line is
// checked against the body header.
func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	br, closeFn, err := open(path)
	if err != nil {
		return snap, err
	}
	defer closeFn()

	hline, err := readLine(br)
	if err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(hline, &h); err != nil {
		return snap, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != Version {
		return snap, fmt.Errorf("unsupported snapshot version %d", h.Version)
	}

	body, err := readLine(br)
	if err != nil {
		return snap, fmt.Errorf("read body: %w", err)
	}
	if err := protocol.ValidateSnapshot(body); err != nil {
		return snap, err
	}
	if err := json.Unmarshal(body, &snap); err != nil {
		return snap, fmt.Errorf("json decode: %w", err)
	}
	if snap.Header != h {
		return snap, fmt.Errorf("header mismatch: file %+v, body %+v", h, snap.Header)
	}
	return snap, nil
}
