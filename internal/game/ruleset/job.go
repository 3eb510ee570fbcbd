package ruleset

// JobID identifies a job, e.g. "SCH".
type JobID string

// Job is an immutable job descriptor.
//
// RaidBuffs is resolved against a Registry; it lists the buffs the job brings
// to any party it joins.
type Job struct {
	ID        JobID
	Name      string
	Modifier  int
	Role      Role
	RaidBuffs []*Buff
}

// JobDef is the YAML form of a Job, with buffs referenced by ID.
//
// Precondition: ID, Modifier, and Role must be non-zero after loading.
type JobDef struct {
	ID        JobID    `yaml:"id"`
	Name      string   `yaml:"name"`
	Modifier  int      `yaml:"modifier"`
	Role      Role     `yaml:"role"`
	RaidBuffs []BuffID `yaml:"raid_buffs"`
}
