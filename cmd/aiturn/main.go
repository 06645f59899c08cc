// Command aiturn plays computer-controlled kingdoms through a scenario and
// an optional battle, journaling every decision.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/kingdom-ai/internal/ai"
	"github.com/freeeve/kingdom-ai/internal/config"
	"github.com/freeeve/kingdom-ai/internal/journal"
	"github.com/freeeve/kingdom-ai/internal/logger"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
	closeLog := logger.Init(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	code := run(ctx, cfg, os.Args[1:], os.Stdout)
	cancel()
	closeLog.Close()
	os.Exit(code)
}

// run parses args, plays the session and prints the result. It returns the
// process exit code.
func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) int {
	var (
		scenario   string
		battlePath string
		session    string
		tuningPath string
		difficulty string
		days       int
		seed       int64
		verify     bool
		jsonOut    bool
	)

	fs := flag.NewFlagSet("aiturn", flag.ContinueOnError)
	fs.StringVar(&scenario, "scenario", "", "World scenario YAML (required)")
	fs.StringVar(&battlePath, "battle", "", "Battle scenario YAML to fight after the last day")
	fs.StringVar(&session, "session", "", "Journal session name (default <scenario>-<seed>)")
	fs.StringVar(&tuningPath, "tuning", cfg.TuningPath, "AI weights YAML")
	fs.StringVar(&difficulty, "difficulty", cfg.Difficulty, "Strategy: normal or passive")
	fs.IntVar(&days, "days", 7, "Days to play")
	fs.Int64Var(&seed, "seed", cfg.Seed, "Random seed")
	fs.BoolVar(&verify, "verify", false, "Replay with the same seed and compare journal digests")
	fs.BoolVar(&jsonOut, "json", false, "Output the result as JSON")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if scenario == "" {
		fs.Usage()
		return exitUsage
	}
	if session == "" {
		session = fmt.Sprintf("%s-%d", strings.TrimSuffix(filepath.Base(scenario), filepath.Ext(scenario)), seed)
	}

	tuning := ai.DefaultTuning()
	if tuningPath != "" {
		var err error
		if tuning, err = ai.LoadTuning(tuningPath); err != nil {
			log.Error().Err(err).Msg("Tuning load failed")
			return exitUsage
		}
	}

	sink, closers, err := openSinks(ctx, cfg, session)
	if err != nil {
		log.Error().Err(err).Msg("Journal setup failed")
		return exitUsage
	}

	sc := sessionConfig{
		Name:       session,
		Scenario:   scenario,
		Battle:     battlePath,
		Days:       days,
		Seed:       seed,
		Difficulty: difficulty,
		Tuning:     tuning,
	}
	res, err := runSession(ctx, sc, sink)
	for _, c := range closers {
		if cerr := c.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Journal close failed")
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("Session failed")
		return exitFailure
	}

	mismatch := false
	if verify {
		replay, err := runSession(ctx, sc, nil)
		if err != nil {
			log.Error().Err(err).Msg("Replay failed")
			return exitFailure
		}
		mismatch = replay.Digest != res.Digest
		if mismatch {
			log.Error().Str("first", res.Digest).Str("replay", replay.Digest).Msg("Replay diverged")
		} else {
			log.Info().Str("digest", res.Digest).Msg("Replay matches")
		}
	}

	if jsonOut {
		printJSON(out, res)
	} else {
		printSummary(out, res)
	}
	if mismatch {
		return exitFailure
	}
	return exitOK
}

// openSinks builds the journal targets named in cfg. With none configured
// the session only keeps a digest.
func openSinks(ctx context.Context, cfg *config.Config, session string) (journal.Sink, []io.Closer, error) {
	var (
		sinks   journal.MultiSink
		closers []io.Closer
	)
	fail := func(err error) (journal.Sink, []io.Closer, error) {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, nil, err
	}

	if cfg.JournalDir != "" {
		z, err := journal.NewZstdSink(filepath.Join(cfg.JournalDir, session+".jsonl.zst"))
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, z)
		closers = append(closers, z)
	}
	if cfg.JournalSQLite != "" {
		db, err := journal.OpenSQLite(cfg.JournalSQLite)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, db)
		s, err := journal.NewSQLSink(ctx, db, journal.DialectSQLite)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
	}
	if cfg.JournalPostgresURL != "" {
		db, err := journal.OpenPostgres(cfg.JournalPostgresURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, db)
		s, err := journal.NewSQLSink(ctx, db, journal.DialectPostgres)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
	}
	if cfg.JournalRedisURL != "" {
		r, err := journal.NewRedisSink(ctx, cfg.JournalRedisURL)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, r)
		closers = append(closers, r)
	}

	if len(sinks) == 0 {
		return nil, nil, nil
	}
	log.Info().Int("sinks", len(sinks)).Str("session", session).Msg("Journal enabled")
	return sinks, closers, nil
}

func printSummary(out io.Writer, r *SessionResult) {
	fmt.Fprintf(out, "\nSession %s (seed %d, %d days, %d commands):\n", r.Session, r.Seed, r.Days, r.Commands)

	colors := make([]string, 0, len(r.Gold))
	for c := range r.Gold {
		colors = append(colors, c)
	}
	sort.Strings(colors)
	for _, c := range colors {
		fmt.Fprintf(out, "  %-8s gold %6d  heroes %d\n", c, r.Gold[c], r.Heroes[c])
	}
	if r.BattleRounds > 0 || r.BattleWinner != "" {
		winner := r.BattleWinner
		if winner == "" {
			winner = "none"
		}
		fmt.Fprintf(out, "  battle: %d rounds, winner %s", r.BattleRounds, winner)
		if r.Retreated != "" {
			fmt.Fprintf(out, " (%s retreated)", r.Retreated)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "  digest %s\n", r.Digest)
}

func printJSON(out io.Writer, r *SessionResult) {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		log.Error().Err(err).Msg("Failed to encode result")
	}
}
