package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"aresrules.dev/internal/sim/gamelog"
)

// JSONLZstdWriter appends JSON lines to zstd-compressed files, one file per segment.
type JSONLZstdWriter struct {
	baseDir string
	prefix  string
	segment func() string

	mu     sync.Mutex
	curSeg string
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
}

// NewJSONLZstdWriter rotates to a new file whenever segment returns a new key.
func NewJSONLZstdWriter(baseDir, prefix string, segment func() string) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		baseDir: baseDir,
		prefix:  prefix,
		segment: segment,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	seg := w.segment()
	if seg != w.curSeg || w.w == nil {
		if err := w.rotateLocked(seg); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *JSONLZstdWriter) rotateLocked(seg string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	path := w.PathFor(seg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	w.curSeg = seg
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err1
}

func (w *JSONLZstdWriter) PathFor(seg string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, seg))
}

// GameLogger streams game log entries for one game. It is a gamelog.Sink.
type GameLogger struct {
	w      *JSONLZstdWriter
	gameID string
}

func NewGameLogger(dataDir, gameID string) *GameLogger {
	return &GameLogger{
		w:      NewJSONLZstdWriter(filepath.Join(dataDir, "gamelog"), "gamelog", func() string { return gameID }),
		gameID: gameID,
	}
}

func (l *GameLogger) WriteEntry(e gamelog.Entry) error { return l.w.Write(e) }
func (l *GameLogger) Path() string                     { return l.w.PathFor(l.gameID) }
func (l *GameLogger) Close() error                     { return l.w.Close() }

// ReadEntries decodes every entry in a game log file. Appended sessions are
// separate zstd frames and are read in order.
func ReadEntries(path string) ([]gamelog.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []gamelog.Entry
	jd := json.NewDecoder(dec)
	for {
		var e gamelog.Entry
		if err := jd.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("decode entry %d: %w", len(out)+1, err)
		}
		out = append(out, e)
	}
}
