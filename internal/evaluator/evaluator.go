// Package evaluator is the calling layer around the numeric core: it
// validates requests, evaluates damage and rotation output, and runs batches
// in parallel.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/dpscalc/internal/game/character"
	"github.com/cory-johannsen/dpscalc/internal/game/combat"
	"github.com/cory-johannsen/dpscalc/internal/game/party"
	"github.com/cory-johannsen/dpscalc/internal/game/rotation"
	"github.com/cory-johannsen/dpscalc/internal/game/ruleset"
)

// Request is one character evaluation.
type Request struct {
	Character *character.Stats
	Party     []*ruleset.Job
	Skill     combat.Skill
	// CritRate and DHRate override the stat-derived rates when non-nil.
	CritRate *float64
	DHRate   *float64
	Rotation rotation.Options
	// WindowSeconds enables the fight-length estimate when > 0.
	WindowSeconds float64
}

// Result is the outcome of one Request.
type Result struct {
	Name      string
	Job       ruleset.JobID
	DPS       float64
	GCD       float64
	DoTScalar float64

	// HasRotation is false when the job has no rotation model; the rotation
	// fields are then zero.
	HasRotation   bool
	PPS           float64
	CycleSeconds  float64
	CyclePotency  float64
	WindowPotency float64
}

// Validate rejects inputs for which the numeric core would produce
// degenerate output.
//
// Postcondition: Returns nil or an error describing all violations.
func Validate(req Request) error {
	var errs []string
	c := req.Character
	if c == nil {
		return errors.New("request validation failed: character must not be nil")
	}
	if c.Job == nil {
		errs = append(errs, "character job must not be nil")
	}
	if c.WeaponDamage < 0 {
		errs = append(errs, fmt.Sprintf("weapon damage must be >= 0, got %d", c.WeaponDamage))
	}
	v := c.Values()
	for _, f := range []struct {
		name  string
		value int
	}{
		{"main", v.MainStat},
		{"det", v.Determination},
		{"crit", v.CriticalHit},
		{"dh", v.DirectHit},
		{"speed", v.Speed},
		{"ten", v.Tenacity},
		{"pie", v.Piety},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Sprintf("stat %s must be >= 0, got %d", f.name, f.value))
		}
	}
	if req.Skill.Potency < 0 {
		errs = append(errs, fmt.Sprintf("potency must be >= 0, got %d", req.Skill.Potency))
	}
	if r := req.CritRate; r != nil && (*r < 0 || *r > 1) {
		errs = append(errs, fmt.Sprintf("crit rate must be in [0, 1], got %v", *r))
	}
	if r := req.DHRate; r != nil && (*r < 0 || *r > 1) {
		errs = append(errs, fmt.Sprintf("dh rate must be in [0, 1], got %v", *r))
	}
	if req.Rotation.CasterTax < 0 {
		errs = append(errs, fmt.Sprintf("caster tax must be >= 0, got %v", req.Rotation.CasterTax))
	}
	if gcd := c.GCD(); gcd <= req.Rotation.CasterTax {
		errs = append(errs, fmt.Sprintf("gcd %v must exceed caster tax %v", gcd, req.Rotation.CasterTax))
	}
	if req.Rotation.BurstPerMinute < 0 {
		errs = append(errs, fmt.Sprintf("burst per minute must be >= 0, got %d", req.Rotation.BurstPerMinute))
	}
	if req.Rotation.FillerCastsOmitted < 0 {
		errs = append(errs, fmt.Sprintf("filler casts omitted must be >= 0, got %d", req.Rotation.FillerCastsOmitted))
	} else if m, ok := rotationFor(c); ok && c.GCD() > req.Rotation.CasterTax && req.Rotation.CasterTax >= 0 {
		if limit := m.MaxFillerCastsOmitted(c, req.Rotation.CasterTax); req.Rotation.FillerCastsOmitted > limit {
			errs = append(errs, fmt.Sprintf("filler casts omitted must be <= %d for this cadence, got %d", limit, req.Rotation.FillerCastsOmitted))
		}
	}
	if req.WindowSeconds < 0 {
		errs = append(errs, fmt.Sprintf("window must be >= 0 seconds, got %v", req.WindowSeconds))
	}
	if len(errs) > 0 {
		return fmt.Errorf("request validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// rotationFor returns the rotation model of c's job, if it has one.
func rotationFor(c *character.Stats) (rotation.Model, bool) {
	if c.Job == nil {
		return nil, false
	}
	return rotation.ForJob(c.Job.ID)
}

// Evaluator runs requests against a damage engine.
type Evaluator struct {
	engine  *combat.Engine
	logger  *zap.Logger
	workers int
}

// New returns an Evaluator that runs at most workers evaluations at once.
//
// Precondition: workers >= 1; logger may be nil.
func New(logger *zap.Logger, workers int) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		panic(fmt.Sprintf("evaluator.New: precondition violated: workers must be >= 1, got %d", workers))
	}
	return &Evaluator{
		engine:  combat.NewEngine(logger.Named("combat")),
		logger:  logger,
		workers: workers,
	}
}

// Evaluate validates req and computes its Result.
//
// Postcondition: Returns a Result or a validation/context error.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := Validate(req); err != nil {
		return Result{}, err
	}

	c := req.Character
	comp := party.Build(req.Party)

	var opts []combat.Option
	if req.CritRate != nil {
		opts = append(opts, combat.WithCritRate(*req.CritRate))
	}
	if req.DHRate != nil {
		opts = append(opts, combat.WithDirectHitRate(*req.DHRate))
	}

	res := Result{
		Name:      c.Name,
		Job:       c.Job.ID,
		DPS:       e.engine.ExpectedDamage(c, req.Skill, comp, opts...),
		GCD:       c.GCD(),
		DoTScalar: c.DoTScalar(),
	}

	if m, ok := rotationFor(c); ok {
		res.HasRotation = true
		res.CycleSeconds = m.CycleDuration(c, req.Rotation.CasterTax)
		res.CyclePotency = m.TotalPotency(c, req.Rotation)
		res.PPS = m.PPS(c, req.Rotation)
		if req.WindowSeconds > 0 {
			res.WindowPotency = m.TotalPotencyOverWindow(c, req.WindowSeconds, req.Rotation.CasterTax)
		}
	}

	e.logger.Debug("evaluated",
		zap.String("name", res.Name),
		zap.String("job", string(res.Job)),
		zap.Int("party_size", comp.Size()),
		zap.Int("n_roles", comp.NRoles()),
		zap.Float64("dps", res.DPS),
		zap.Float64("gcd", res.GCD),
		zap.Bool("has_rotation", res.HasRotation),
		zap.Float64("pps", res.PPS),
	)
	return res, nil
}

// EvaluateAll evaluates reqs concurrently and returns results in input order.
//
// Postcondition: Returns one Result per request, or the first error
// encountered; remaining evaluations are cancelled on error.
func (e *Evaluator) EvaluateAll(ctx context.Context, reqs []Request) ([]Result, error) {
	e.logger.Info("evaluating batch",
		zap.Int("requests", len(reqs)),
		zap.Int("workers", e.workers),
	)

	results := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range reqs {
		i := i
		g.Go(func() error {
			res, err := e.Evaluate(gctx, reqs[i])
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info("batch complete", zap.Int("results", len(results)))
	return results, nil
}
