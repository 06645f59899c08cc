package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/freeeve/kingdom-ai/internal/ai"
	"github.com/freeeve/kingdom-ai/internal/journal"
	"github.com/freeeve/kingdom-ai/internal/logger"
	"github.com/freeeve/kingdom-ai/pkg/battle"
	"github.com/freeeve/kingdom-ai/pkg/world"
)

// maxBattleRounds ends a stalled battle.
const maxBattleRounds = 50

type sessionConfig struct {
	Name       string
	Scenario   string
	Battle     string
	Days       int
	Seed       int64
	Difficulty string
	Tuning     ai.Tuning
}

// SessionResult summarizes one run.
type SessionResult struct {
	Session      string         `json:"session"`
	Seed         int64          `json:"seed"`
	Days         int            `json:"days"`
	Commands     uint64         `json:"commands"`
	Gold         map[string]int `json:"gold"`
	Heroes       map[string]int `json:"heroes"`
	BattleRounds int            `json:"battle_rounds,omitempty"`
	BattleWinner string         `json:"battle_winner,omitempty"`
	Retreated    string         `json:"retreated,omitempty"`
	Digest       string         `json:"digest"`
}

// runSession plays the configured days and battle, journaling every
// decision to sink. A nil sink only computes the digest.
func runSession(ctx context.Context, cfg sessionConfig, sink journal.Sink) (*SessionResult, error) {
	l := logger.ForSession(cfg.Name)
	w, err := world.LoadScenario(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	rec := journal.NewRecorder(ctx, cfg.Name, w, sink)
	strategy := ai.StrategyForDifficulty(cfg.Difficulty, ai.Deps{
		World:      w,
		Executor:   rec,
		Pathfinder: world.NewGridPathfinder(w),
		Rand:       ai.NewRand(cfg.Seed),
		Tuning:     cfg.Tuning,
	})
	w.AddObserver(strategy)

	res := &SessionResult{
		Session: cfg.Name,
		Seed:    cfg.Seed,
		Gold:    make(map[string]int),
		Heroes:  make(map[string]int),
	}
	for day := 0; day < cfg.Days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("day %d: %w", w.Day, err)
		}
		rec.SetDay(w.Day)
		for _, k := range w.Kingdoms {
			if k.AI && !k.Lost {
				strategy.KingdomTurn(k)
			}
		}
		w.NewDay()
		res.Days++
	}
	for _, k := range w.Kingdoms {
		res.Gold[k.Color.String()] = k.Gold
		res.Heroes[k.Color.String()] = len(k.Heroes)
	}

	if cfg.Battle != "" {
		rec.SetDay(w.Day)
		arena, err := battle.LoadArena(cfg.Battle)
		if err != nil {
			return nil, err
		}
		if err := playBattle(ctx, l, arena, strategy, rec); err != nil {
			return nil, err
		}
		res.BattleRounds = arena.Round
		if c := arena.Winner(); c != world.ColorNone {
			res.BattleWinner = c.String()
		}
		if arena.Retreated != world.ColorNone {
			res.Retreated = arena.Retreated.String()
		}
	}

	res.Commands = rec.Len()
	res.Digest = rec.Digest()
	l.Info().
		Int("days", res.Days).
		Uint64("commands", res.Commands).
		Str("digest", res.Digest).
		Msg("Session completed")
	return res, nil
}

// playBattle lets the strategy command both sides until one is gone or the
// round limit is hit.
func playBattle(ctx context.Context, l zerolog.Logger, arena *battle.Arena, s ai.Strategy, rec *journal.Recorder) error {
	for arena.Round < maxBattleRounds && !arena.IsOver() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("battle round %d: %w", arena.Round, err)
		}
		u := arena.NextUnit()
		if u == nil {
			arena.NewRound()
			continue
		}
		actions := s.BattleTurn(arena, u)
		err := arena.Apply(u, actions)
		if err != nil {
			l.Warn().Err(err).Uint32("unit", u.UID).Msg("Battle action rejected")
		}
		rec.RecordBattle(u.UID, actions, err)
	}
	return nil
}
