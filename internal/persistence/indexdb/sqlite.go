package indexdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"aresrules.dev/internal/persistence/snapshot"
	"aresrules.dev/internal/sim/ares"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/tuning"
)

// SQLiteIndex is a secondary, queryable copy of what a game wrote to its
// log and snapshots. Writes are queued and applied by one goroutine; the
// zstd log and snapshot files remain the source of truth.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	// mu orders sends on ch against close(ch).
	mu     sync.RWMutex
	closed atomic.Bool

	dropEntry     atomic.Uint64
	dropAresState atomic.Uint64
	dropSnapshot  atomic.Uint64
}

type Stats struct {
	QueueDepth         int
	QueueCapacity      int
	DropEntryTotal     uint64
	DropAresStateTotal uint64
	DropSnapshotTotal  uint64
}

type reqKind int

const (
	reqEntry reqKind = iota + 1
	reqAresState
	reqSnapshot
)

type req struct {
	kind   reqKind
	gameID string

	entry    gamelog.Entry
	state    aresStateRow
	snapshot snapshotRow
}

type gateRow struct {
	Name      string
	Threshold int
	Available bool
}

type aresStateRow struct {
	Gates      []gateRow
	Milestones []ares.MilestoneCount
}

type snapshotRow struct {
	Generation  int
	Path        string
	Seed        int64
	Temperature int
	Oxygen      int
	Tiles       int
	Hazards     int
	Players     int
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tuning (
			game_id TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS log_entries (
			game_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			message TEXT NOT NULL,
			args_json TEXT NOT NULL,
			rendered TEXT NOT NULL,
			PRIMARY KEY (game_id, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS hazard_gates (
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			threshold INTEGER NOT NULL,
			available INTEGER NOT NULL,
			PRIMARY KEY (game_id, name)
		);`,
		`CREATE TABLE IF NOT EXISTS milestones (
			game_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (game_id, player_id)
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			game_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			path TEXT NOT NULL,
			seed INTEGER NOT NULL,
			temperature INTEGER NOT NULL,
			oxygen INTEGER NOT NULL,
			tiles INTEGER NOT NULL,
			hazards INTEGER NOT NULL,
			players INTEGER NOT NULL,
			PRIMARY KEY (game_id, generation)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_log_entries_game ON log_entries(game_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close drains the queue, commits and closes the database.
func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		s.closed.Store(true)
		close(s.ch)
		s.mu.Unlock()
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		QueueDepth:         len(s.ch),
		QueueCapacity:      cap(s.ch),
		DropEntryTotal:     s.dropEntry.Load(),
		DropAresStateTotal: s.dropAresState.Load(),
		DropSnapshotTotal:  s.dropSnapshot.Load(),
	}
}

func (s *SQLiteIndex) enqueue(r req, drops *atomic.Uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed.Load() {
		return
	}
	select {
	case s.ch <- r:
	default:
		// Drop if the indexer falls behind.
		drops.Add(1)
	}
}

type entrySink struct {
	s      *SQLiteIndex
	gameID string
}

func (e entrySink) WriteEntry(entry gamelog.Entry) error {
	if e.s == nil || e.s.closed.Load() {
		return nil
	}
	e.s.enqueue(req{kind: reqEntry, gameID: e.gameID, entry: entry}, &e.s.dropEntry)
	return nil
}

// EntrySink indexes every game log entry of gameID.
func (s *SQLiteIndex) EntrySink(gameID string) gamelog.Sink {
	return entrySink{s: s, gameID: gameID}
}

// RecordAresState upserts the hazard gates and milestone counts of a game.
func (s *SQLiteIndex) RecordAresState(gameID string, d *ares.Data) {
	if s == nil || s.closed.Load() || d == nil {
		return
	}
	st := aresStateRow{
		Gates: []gateRow{
			{"erosion_ocean_count", d.Hazards.ErosionOceanCount.Threshold, d.Hazards.ErosionOceanCount.Available},
			{"remove_dust_storms_ocean_count", d.Hazards.RemoveDustStormsOceanCount.Threshold, d.Hazards.RemoveDustStormsOceanCount.Available},
			{"severe_erosion_temperature", d.Hazards.SevereErosionTemperature.Threshold, d.Hazards.SevereErosionTemperature.Available},
			{"severe_dust_storm_oxygen", d.Hazards.SevereDustStormOxygen.Threshold, d.Hazards.SevereDustStormOxygen.Available},
		},
		Milestones: append([]ares.MilestoneCount(nil), d.Milestones...),
	}
	s.enqueue(req{kind: reqAresState, gameID: gameID, state: st}, &s.dropAresState)
}

func (s *SQLiteIndex) RecordSnapshot(path string, snap snapshot.SnapshotV1) {
	if s == nil || s.closed.Load() {
		return
	}
	r := snapshotRow{
		Generation:  snap.Header.Generation,
		Path:        path,
		Seed:        snap.Seed,
		Temperature: snap.Temperature,
		Oxygen:      snap.Oxygen,
		Tiles:       len(snap.Tiles),
		Players:     len(snap.Players),
	}
	for _, t := range snap.Tiles {
		if k, err := board.ParseTileKind(t.Kind); err == nil && ares.SeverityOf(k) != ares.SeverityNone {
			r.Hazards++
		}
	}
	s.enqueue(req{kind: reqSnapshot, gameID: snap.Header.GameID, snapshot: r}, &s.dropSnapshot)
}

// UpsertTuning stores the tuning a game runs with as canonical JSON, keyed
// by its digest. It writes synchronously on the writer's only connection, so
// call it before queuing writes.
func (s *SQLiteIndex) UpsertTuning(gameID string, tune tuning.Tuning) error {
	if s == nil {
		return nil
	}
	b, err := json.Marshal(tune)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(b)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO tuning(game_id,digest,json,updated_at) VALUES(?,?,?,?)`,
		gameID, hex.EncodeToString(sum[:]), string(b), now); err != nil {
		return err
	}
	return tx.Commit()
}

// batch groups queued writes into one transaction, committed every
// maxOps statements or maxWait, whichever comes first.
type batch struct {
	db      *sql.DB
	tx      *sql.Tx
	ops     int
	started time.Time

	maxOps  int
	maxWait time.Duration
}

func (b *batch) open() bool {
	if b.tx != nil {
		return true
	}
	tx, err := b.db.BeginTx(context.Background(), nil)
	if err != nil {
		time.Sleep(50 * time.Millisecond)
		return false
	}
	b.tx, b.ops, b.started = tx, 0, time.Now()
	return true
}

func (b *batch) exec(st *sql.Stmt, args ...any) bool {
	if st == nil || b.tx == nil {
		return b.tx != nil
	}
	if _, err := b.tx.Stmt(st).Exec(args...); err != nil {
		// One bad row discards the whole batch.
		_ = b.tx.Rollback()
		b.tx = nil
		return false
	}
	b.ops++
	return true
}

func (b *batch) flush(force bool) {
	if b.tx == nil {
		return
	}
	if force || b.ops >= b.maxOps || time.Since(b.started) >= b.maxWait {
		_ = b.tx.Commit()
		b.tx = nil
	}
}

func (s *SQLiteIndex) loop() {
	insertEntry, _ := s.db.Prepare(`INSERT OR REPLACE INTO log_entries(game_id,seq,message,args_json,rendered) VALUES(?,?,?,?,?)`)
	upsertGate, _ := s.db.Prepare(`INSERT OR REPLACE INTO hazard_gates(game_id,name,threshold,available) VALUES(?,?,?,?)`)
	upsertMilestone, _ := s.db.Prepare(`INSERT OR REPLACE INTO milestones(game_id,player_id,count) VALUES(?,?,?)`)
	insertSnapshot, _ := s.db.Prepare(`INSERT OR REPLACE INTO snapshots(game_id,generation,path,seed,temperature,oxygen,tiles,hazards,players) VALUES(?,?,?,?,?,?,?,?,?)`)
	defer func() {
		for _, st := range []*sql.Stmt{insertEntry, upsertGate, upsertMilestone, insertSnapshot} {
			if st != nil {
				_ = st.Close()
			}
		}
	}()

	b := &batch{db: s.db, maxOps: 2000, maxWait: 2 * time.Second}
	for r := range s.ch {
		if !b.open() {
			continue
		}
		switch r.kind {
		case reqEntry:
			args, _ := json.Marshal(r.entry.Args)
			if len(r.entry.Args) == 0 {
				args = []byte("[]")
			}
			b.exec(insertEntry, r.gameID, int64(r.entry.Seq), r.entry.Message, string(args), r.entry.Render())

		case reqAresState:
			ok := true
			for _, g := range r.state.Gates {
				if ok = b.exec(upsertGate, r.gameID, g.Name, g.Threshold, g.Available); !ok {
					break
				}
			}
			for _, m := range r.state.Milestones {
				if !ok {
					break
				}
				ok = b.exec(upsertMilestone, r.gameID, m.PlayerID, m.Count)
			}

		case reqSnapshot:
			sn := r.snapshot
			b.exec(insertSnapshot, r.gameID, sn.Generation, sn.Path, sn.Seed, sn.Temperature, sn.Oxygen, sn.Tiles, sn.Hazards, sn.Players)
		}
		b.flush(false)
	}
	b.flush(true)
}
