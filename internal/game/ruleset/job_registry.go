package ruleset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownJob is returned when a job ID is not registered.
	ErrUnknownJob = errors.New("unknown job")
	// ErrUnknownBuff is returned when a buff ID is not registered.
	ErrUnknownBuff = errors.New("unknown buff")
)

// Registry provides lookup of jobs and raid buffs by ID.
//
// A Registry is populated once at startup and read-only afterwards; it is not
// safe for concurrent registration.
type Registry struct {
	jobs  map[JobID]*Job
	buffs map[BuffID]*Buff
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{
		jobs:  make(map[JobID]*Job),
		buffs: make(map[BuffID]*Buff),
	}
}

// RegisterBuff adds a Buff to the registry.
//
// Precondition: buff must be non-nil with a non-empty ID.
// Postcondition: if called multiple times with the same ID, the last call wins,
// and jobs already registered that grant the buff see the new definition.
func (r *Registry) RegisterBuff(buff *Buff) {
	if buff == nil {
		panic("Registry.RegisterBuff: precondition violated: buff must be non-nil")
	}
	if buff.ID == "" {
		panic("Registry.RegisterBuff: precondition violated: buff ID must be non-empty")
	}
	_, replaced := r.buffs[buff.ID]
	r.buffs[buff.ID] = buff
	if replaced {
		r.rebindBuff(buff)
	}
}

// rebindBuff points every registered job's raid buff entry for buff.ID at buff.
// Jobs are updated in place so callers holding a *Job observe the override.
func (r *Registry) rebindBuff(buff *Buff) {
	for _, j := range r.jobs {
		for i, b := range j.RaidBuffs {
			if b.ID == buff.ID {
				j.RaidBuffs[i] = buff
			}
		}
	}
}

// RegisterJob resolves def's raid buffs and adds the resulting Job.
//
// Precondition: def must be non-nil with a non-empty ID.
// Postcondition: Returns an error wrapping ErrUnknownBuff if any referenced
// buff is not registered; otherwise the job is retrievable via Job(def.ID).
func (r *Registry) RegisterJob(def *JobDef) error {
	if def == nil {
		panic("Registry.RegisterJob: precondition violated: def must be non-nil")
	}
	if def.ID == "" {
		panic("Registry.RegisterJob: precondition violated: job ID must be non-empty")
	}
	buffs := make([]*Buff, 0, len(def.RaidBuffs))
	for _, id := range def.RaidBuffs {
		b, ok := r.buffs[id]
		if !ok {
			return fmt.Errorf("job %s: %w %q", def.ID, ErrUnknownBuff, id)
		}
		buffs = append(buffs, b)
	}
	name := def.Name
	if name == "" {
		name = string(def.ID)
	}
	r.jobs[def.ID] = &Job{
		ID:        def.ID,
		Name:      name,
		Modifier:  def.Modifier,
		Role:      def.Role,
		RaidBuffs: buffs,
	}
	return nil
}

// Merge registers buffs first, then jobs, so job definitions may reference
// buffs from the same batch.
//
// Postcondition: Returns the first registration error, leaving earlier
// registrations in place.
func (r *Registry) Merge(buffs []*Buff, jobs []*JobDef) error {
	for _, b := range buffs {
		r.RegisterBuff(b)
	}
	for _, j := range jobs {
		if err := r.RegisterJob(j); err != nil {
			return err
		}
	}
	return nil
}

// Job returns the Job for id, if registered.
func (r *Registry) Job(id JobID) (*Job, bool) {
	j, ok := r.jobs[id]
	return j, ok
}

// Buff returns the Buff for id, if registered.
func (r *Registry) Buff(id BuffID) (*Buff, bool) {
	b, ok := r.buffs[id]
	return b, ok
}

// ResolveJobs looks up each ID in order, case-insensitively. Duplicates are
// kept.
//
// Postcondition: Returns one Job per ID or an error wrapping ErrUnknownJob.
func (r *Registry) ResolveJobs(ids []string) ([]*Job, error) {
	jobs := make([]*Job, 0, len(ids))
	for _, raw := range ids {
		id := JobID(strings.ToUpper(strings.TrimSpace(raw)))
		j, ok := r.jobs[id]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownJob, raw)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// Jobs returns a snapshot of all registered jobs sorted by ID.
func (r *Registry) Jobs() []*Job {
	out := make([]*Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

// LoadDirectories merges buff and job YAML definitions from the given
// directories into r. An empty path is skipped. A buff file reusing a
// registered ID overrides that buff for every job that grants it.
//
// Postcondition: Returns nil or the first load/registration error.
func (r *Registry) LoadDirectories(buffsDir, jobsDir string) error {
	var (
		buffs []*Buff
		jobs  []*JobDef
		err   error
	)
	if buffsDir != "" {
		if buffs, err = LoadBuffs(buffsDir); err != nil {
			return err
		}
	}
	if jobsDir != "" {
		if jobs, err = LoadJobs(jobsDir); err != nil {
			return err
		}
	}
	return r.Merge(buffs, jobs)
}
