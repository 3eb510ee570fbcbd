// Package main provides the dpscalc binary, which evaluates expected damage
// and rotation potency for one or more character sheets against a party.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dpscalc/internal/config"
	"github.com/cory-johannsen/dpscalc/internal/evaluator"
	"github.com/cory-johannsen/dpscalc/internal/game/character"
	"github.com/cory-johannsen/dpscalc/internal/game/combat"
	"github.com/cory-johannsen/dpscalc/internal/game/rotation"
	"github.com/cory-johannsen/dpscalc/internal/game/ruleset"
	"github.com/cory-johannsen/dpscalc/internal/observability"
)

// rateFlag is an optional float flag; it is unset until parsed.
type rateFlag struct {
	value *float64
}

func (r *rateFlag) String() string {
	if r.value == nil {
		return ""
	}
	return strconv.FormatFloat(*r.value, 'g', -1, 64)
}

func (r *rateFlag) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing rate %q: %w", s, err)
	}
	r.value = &f
	return nil
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	sheets := flag.String("sheet", "content/sheets/sch.yaml", "comma-separated character sheet YAML files")
	partyList := flag.String("party", "WAR,SCH,DRG,BRD", "comma-separated party job IDs")
	potency := flag.Int("potency", 300, "skill potency")
	dot := flag.Bool("dot", false, "evaluate the skill as a damage-over-time effect")
	window := flag.Float64("window", -1, "fight length in seconds for the window estimate; <0 = use config")
	var critRate, dhRate rateFlag
	flag.Var(&critRate, "crit-rate", "override the stat-derived crit rate")
	flag.Var(&dhRate, "dh-rate", "override the stat-derived direct-hit rate")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	reg := ruleset.Default()
	if err := reg.LoadDirectories(cfg.Content.BuffsDir, cfg.Content.JobsDir); err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Debug("catalog loaded", zap.Int("jobs", len(reg.Jobs())))

	members, err := reg.ResolveJobs(splitList(*partyList))
	if err != nil {
		logger.Fatal("resolving party", zap.Error(err))
	}

	windowSeconds := cfg.Rotation.WindowSeconds
	if *window >= 0 {
		windowSeconds = *window
	}
	opts := rotation.Options{
		CasterTax:          cfg.Rotation.CasterTax,
		BurstPerMinute:     cfg.Rotation.BurstPerMinute,
		FillerCastsOmitted: cfg.Rotation.FillerCastsOmitted,
	}

	var reqs []evaluator.Request
	for _, path := range splitList(*sheets) {
		c, err := character.LoadSheet(path, reg)
		if err != nil {
			logger.Fatal("loading sheet", zap.String("path", path), zap.Error(err))
		}
		reqs = append(reqs, evaluator.Request{
			Character:     c,
			Party:         members,
			Skill:         combat.Skill{Potency: *potency, DoT: *dot},
			CritRate:      critRate.value,
			DHRate:        dhRate.value,
			Rotation:      opts,
			WindowSeconds: windowSeconds,
		})
	}

	ev := evaluator.New(logger, cfg.Evaluator.Workers)
	results, err := ev.EvaluateAll(context.Background(), reqs)
	if err != nil {
		logger.Fatal("evaluating", zap.Error(err))
	}

	for _, res := range results {
		fmt.Fprintln(os.Stdout, formatResult(res, windowSeconds))
	}
	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func formatResult(res evaluator.Result, windowSeconds float64) string {
	line := fmt.Sprintf("%s (%s): dps=%.3f gcd=%.2f", res.Name, res.Job, res.DPS, res.GCD)
	if !res.HasRotation {
		return line
	}
	line += fmt.Sprintf(" pps=%.3f cycle=%.2fs cycle_potency=%.1f", res.PPS, res.CycleSeconds, res.CyclePotency)
	if windowSeconds > 0 {
		line += fmt.Sprintf(" window_potency(%gs)=%.1f", windowSeconds, res.WindowPotency)
	}
	return line
}
