// Package journal records every command the AI issues so that a session
// can be stored, inspected and replayed. Two runs from the same seed must
// produce the same journal digest.
package journal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/kingdom-ai/pkg/battle"
	"github.com/freeeve/kingdom-ai/pkg/world"
)

// Kind tells world commands from battle turns.
type Kind string

const (
	KindWorld  Kind = "world"
	KindBattle Kind = "battle"
)

// Entry is one journaled decision.
type Entry struct {
	Session string         `json:"session"`
	Seq     uint64         `json:"seq"`
	Day     int            `json:"day"`
	Kind    Kind           `json:"kind"`
	World   *world.Action  `json:"world,omitempty"`
	Unit    uint32         `json:"unit,omitempty"`
	Battle  battle.Actions `json:"battle,omitempty"`
	Err     string         `json:"err,omitempty"`
}

// Sink stores entries.
type Sink interface {
	Write(ctx context.Context, e Entry) error
}

// MultiSink writes every entry to each sink in order.
type MultiSink []Sink

// Write forwards e to all sinks and joins their errors.
func (m MultiSink) Write(ctx context.Context, e Entry) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder sits between the AI and the real executor. It forwards each
// command unchanged and journals it. Sink failures are logged and never
// reach the AI.
type Recorder struct {
	ctx     context.Context
	session string
	next    world.Executor
	sink    Sink

	mu   sync.Mutex
	seq  uint64
	day  int
	hash hash.Hash
}

// NewRecorder wraps next. A nil sink only keeps the digest.
func NewRecorder(ctx context.Context, session string, next world.Executor, sink Sink) *Recorder {
	if next == nil {
		panic("journal: NewRecorder requires an executor")
	}
	return &Recorder{ctx: ctx, session: session, next: next, sink: sink, hash: sha256.New()}
}

// SetDay stamps following entries with the game day.
func (r *Recorder) SetDay(day int) {
	r.mu.Lock()
	r.day = day
	r.mu.Unlock()
}

// Execute applies the command and journals it with the executor's verdict.
func (r *Recorder) Execute(a world.Action) error {
	err := r.next.Execute(a)
	r.record(Entry{Kind: KindWorld, World: &a, Err: errString(err)})
	return err
}

// RecordBattle journals the actions planned for one unit turn and the
// error, if any, of applying them.
func (r *Recorder) RecordBattle(unit uint32, actions battle.Actions, err error) {
	r.record(Entry{Kind: KindBattle, Unit: unit, Battle: actions, Err: errString(err)})
}

// Len returns the number of entries recorded.
func (r *Recorder) Len() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Digest is the hex SHA-256 over the entries recorded so far. The session
// name is not part of it.
func (r *Recorder) Digest() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return hex.EncodeToString(r.hash.Sum(nil))
}

func (r *Recorder) record(e Entry) {
	r.mu.Lock()
	r.seq++
	e.Seq = r.seq
	e.Day = r.day
	if line, err := json.Marshal(e); err == nil {
		r.hash.Write(line)
		r.hash.Write([]byte{'\n'})
	} else {
		log.Error().Err(err).Uint64("seq", e.Seq).Msg("Failed to encode journal entry")
	}
	r.mu.Unlock()

	if r.sink == nil {
		return
	}
	e.Session = r.session
	if err := r.sink.Write(r.ctx, e); err != nil {
		log.Warn().Err(err).Str("session", r.session).Uint64("seq", e.Seq).Msg("Journal write failed")
	}
}

// Digest hashes entries the way a Recorder does, for comparing a stored
// journal with a live run.
func Digest(entries []Entry) (string, error) {
	h := sha256.New()
	for _, e := range entries {
		e.Session = ""
		line, err := json.Marshal(e)
		if err != nil {
			return "", fmt.Errorf("encode entry %d: %w", e.Seq, err)
		}
		h.Write(line)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
