package gamelog

import (
	"errors"
	"strconv"
	"strings"
)

type ArgKind string

const (
	ArgPlayer ArgKind = "player"
	ArgNumber ArgKind = "number"
	ArgString ArgKind = "string"
	ArgCard   ArgKind = "card"
)

type Arg struct {
	Kind  ArgKind `json:"kind"`
	Value string  `json:"value"`
}

func Player(id string) Arg  { return Arg{Kind: ArgPlayer, Value: id} }
func Number(n int) Arg      { return Arg{Kind: ArgNumber, Value: strconv.Itoa(n)} }
func String(s string) Arg   { return Arg{Kind: ArgString, Value: s} }
func CardName(s string) Arg { return Arg{Kind: ArgCard, Value: s} }

// Entry is one templated message. Placeholders are ${0}, ${1}, ...
type Entry struct {
	Seq     uint64 `json:"seq"`
	Message string `json:"message"`
	Args    []Arg  `json:"args,omitempty"`
}

func (e Entry) Render() string {
	out := e.Message
	for i := len(e.Args) - 1; i >= 0; i-- {
		out = strings.ReplaceAll(out, "${"+strconv.Itoa(i)+"}", e.Args[i].Value)
	}
	return out
}

type Sink interface {
	WriteEntry(Entry) error
}

// Log is append-only. Sink failures never block appends; they are kept for Err.
type Log struct {
	entries []Entry
	next    uint64
	sinks   []Sink
	sinkErr error
}

func New(sinks ...Sink) *Log {
	return &Log{next: 1, sinks: sinks}
}

func (l *Log) AddSink(s Sink) { l.sinks = append(l.sinks, s) }

func (l *Log) Append(msg string, args ...Arg) Entry {
	e := Entry{Seq: l.next, Message: msg, Args: append([]Arg(nil), args...)}
	l.next++
	l.entries = append(l.entries, e)
	for _, s := range l.sinks {
		if err := s.WriteEntry(e); err != nil {
			l.sinkErr = errors.Join(l.sinkErr, err)
		}
	}
	return e
}

func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

func (l *Log) Len() int { return len(l.entries) }

// Err reports every sink error seen so far.
func (l *Log) Err() error { return l.sinkErr }
