package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dpscalc/internal/game/party"
	"github.com/cory-johannsen/dpscalc/internal/game/ruleset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefault_ContainsCatalog(t *testing.T) {
	reg := ruleset.Default()
	assert.Len(t, reg.Jobs(), 17)

	sch, ok := reg.Job(ruleset.SCH)
	require.True(t, ok)
	assert.Equal(t, 115, sch.Modifier)
	assert.Equal(t, ruleset.RoleHealer, sch.Role)
	require.Len(t, sch.RaidBuffs, 1)
	assert.Equal(t, ruleset.Chain, sch.RaidBuffs[0].ID)

	brd, ok := reg.Job(ruleset.BRD)
	require.True(t, ok)
	assert.Len(t, brd.RaidBuffs, 3)

	sam, ok := reg.Job(ruleset.SAM)
	require.True(t, ok)
	assert.Equal(t, 112, sam.Modifier)
	assert.Empty(t, sam.RaidBuffs)
}

func TestDefault_ReturnsIndependentRegistries(t *testing.T) {
	a := ruleset.Default()
	b := ruleset.Default()
	a.RegisterBuff(&ruleset.Buff{ID: "EXTRA", CooldownSec: 60})
	_, ok := b.Buff("EXTRA")
	assert.False(t, ok)
}

func TestBuff_AverageEffect(t *testing.T) {
	reg := ruleset.Default()
	chain, _ := reg.Buff(ruleset.Chain)
	assert.InDelta(t, 0.0125, chain.AverageEffect(), 1e-15)
	bv, _ := reg.Buff(ruleset.BattleVoice)
	assert.InDelta(t, 0.2*20/180, bv.AverageEffect(), 1e-15)
}

func TestBuff_Families(t *testing.T) {
	reg := ruleset.Default()
	for id, want := range map[ruleset.BuffID]ruleset.Family{
		ruleset.Chain:       ruleset.FamilyCrit,
		ruleset.Litany:      ruleset.FamilyCrit,
		ruleset.BardCrit:    ruleset.FamilyCrit,
		ruleset.Devilment:   ruleset.FamilyCrit,
		ruleset.BattleVoice: ruleset.FamilyDirectHit,
		ruleset.BardDH:      ruleset.FamilyDirectHit,
		ruleset.Divination:  ruleset.FamilyNone,
		ruleset.Technical:   ruleset.FamilyNone,
	} {
		b, ok := reg.Buff(id)
		require.True(t, ok, "buff %s", id)
		assert.Equal(t, want, b.Family, "buff %s", id)
	}
}

func TestMustJob(t *testing.T) {
	assert.Equal(t, ruleset.RoleTank, ruleset.MustJob(ruleset.WAR).Role)
	assert.Panics(t, func() { ruleset.MustJob("XYZ") })
}

func TestRegistry_ResolveJobs(t *testing.T) {
	reg := ruleset.Default()
	jobs, err := reg.ResolveJobs([]string{"sch", " WAR ", "SCH"})
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, ruleset.SCH, jobs[0].ID)
	assert.Equal(t, ruleset.WAR, jobs[1].ID)
	assert.Same(t, jobs[0], jobs[2])
}

func TestRegistry_ResolveJobs_Unknown(t *testing.T) {
	_, err := ruleset.Default().ResolveJobs([]string{"SCH", "FOO"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ruleset.ErrUnknownJob)
	assert.Contains(t, err.Error(), "FOO")
}

func TestRegistry_RegisterJob_UnknownBuff(t *testing.T) {
	reg := ruleset.NewRegistry()
	err := reg.RegisterJob(&ruleset.JobDef{ID: "VPR", Modifier: 100, Role: ruleset.RoleMelee, RaidBuffs: []ruleset.BuffID{"NOPE"}})
	assert.ErrorIs(t, err, ruleset.ErrUnknownBuff)
	_, ok := reg.Job("VPR")
	assert.False(t, ok)
}

func TestRegistry_RegisterJob_DefaultsName(t *testing.T) {
	reg := ruleset.NewRegistry()
	require.NoError(t, reg.RegisterJob(&ruleset.JobDef{ID: "VPR", Modifier: 100, Role: ruleset.RoleMelee}))
	j, ok := reg.Job("VPR")
	require.True(t, ok)
	assert.Equal(t, "VPR", j.Name)
}

func TestRegistry_Register_Preconditions(t *testing.T) {
	reg := ruleset.NewRegistry()
	assert.Panics(t, func() { reg.RegisterBuff(nil) })
	assert.Panics(t, func() { reg.RegisterBuff(&ruleset.Buff{}) })
	assert.Panics(t, func() { _ = reg.RegisterJob(nil) })
	assert.Panics(t, func() { _ = reg.RegisterJob(&ruleset.JobDef{}) })
}

func TestRole_StringAndParse(t *testing.T) {
	for _, r := range []ruleset.Role{ruleset.RoleTank, ruleset.RoleHealer, ruleset.RoleMelee, ruleset.RoleRanged, ruleset.RoleCaster} {
		parsed, err := ruleset.ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	_, err := ruleset.ParseRole("bard")
	assert.Error(t, err)
	assert.Equal(t, "Role(9)", ruleset.Role(9).String())
}

func TestLoadDirectories(t *testing.T) {
	buffDir := t.TempDir()
	jobDir := t.TempDir()
	writeFile(t, filepath.Join(buffDir, "starry.yaml"), `
id: STARRY
name: Starry Muse
multiplier: 0.05
duration_sec: 20
cooldown_sec: 120
`)
	writeFile(t, filepath.Join(buffDir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(jobDir, "pct.yml"), `
id: PCT
name: Pictomancer
modifier: 115
role: caster
raid_buffs:
  - STARRY
`)
	reg := ruleset.Default()
	require.NoError(t, reg.LoadDirectories(buffDir, jobDir))

	pct, ok := reg.Job("PCT")
	require.True(t, ok)
	assert.Equal(t, ruleset.RoleCaster, pct.Role)
	require.Len(t, pct.RaidBuffs, 1)
	assert.Equal(t, ruleset.FamilyNone, pct.RaidBuffs[0].Family)
	assert.InDelta(t, 0.05*20/120, pct.RaidBuffs[0].AverageEffect(), 1e-15)
}

func TestLoadDirectories_OverridesBuiltinBuff(t *testing.T) {
	buffDir := t.TempDir()
	writeFile(t, filepath.Join(buffDir, "chain.yaml"), `
id: CHAIN
name: Chain Stratagem
multiplier: 0.5
duration_sec: 20
cooldown_sec: 120
family: crit
`)
	reg := ruleset.Default()
	sch, ok := reg.Job(ruleset.SCH)
	require.True(t, ok)

	require.NoError(t, reg.LoadDirectories(buffDir, ""))

	chain, ok := reg.Buff(ruleset.Chain)
	require.True(t, ok)
	assert.Equal(t, 0.5, chain.Multiplier)
	require.Len(t, sch.RaidBuffs, 1)
	assert.Same(t, chain, sch.RaidBuffs[0])

	resolved, err := reg.ResolveJobs([]string{"SCH"})
	require.NoError(t, err)
	comp := party.Build(resolved)
	require.Len(t, comp.RaidBuffs(), 1)
	assert.Equal(t, 0.5, comp.RaidBuffs()[0].Multiplier)
	assert.InDelta(t, 0.5*20.0/120.0, comp.RaidBuffs()[0].AverageEffect(), 1e-12)

	// Other registries built from the catalog are untouched.
	fresh, _ := ruleset.Default().Buff(ruleset.Chain)
	assert.Equal(t, 0.1, fresh.Multiplier)
}

func TestRegistry_RegisterBuff_ReplacesInJobs(t *testing.T) {
	reg := ruleset.NewRegistry()
	reg.RegisterBuff(&ruleset.Buff{ID: "B", Multiplier: 0.1, CooldownSec: 60})
	require.NoError(t, reg.RegisterJob(&ruleset.JobDef{ID: "J", Role: ruleset.RoleMelee, RaidBuffs: []ruleset.BuffID{"B"}}))

	replacement := &ruleset.Buff{ID: "B", Multiplier: 0.3, CooldownSec: 60}
	reg.RegisterBuff(replacement)

	j, ok := reg.Job("J")
	require.True(t, ok)
	assert.Same(t, replacement, j.RaidBuffs[0])
}

func TestLoadDirectories_EmptyPathsAreSkipped(t *testing.T) {
	reg := ruleset.Default()
	require.NoError(t, reg.LoadDirectories("", ""))
	assert.Len(t, reg.Jobs(), 17)
}

func TestLoadBuffs_ParsesFamily(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yaml"), `
id: MUG
multiplier: 0.05
duration_sec: 20
cooldown_sec: 120
family: crit
`)
	buffs, err := ruleset.LoadBuffs(dir)
	require.NoError(t, err)
	require.Len(t, buffs, 1)
	assert.Equal(t, ruleset.FamilyCrit, buffs[0].Family)
}

func TestLoadBuffs_UnknownFamily(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yaml"), "id: X\nfamily: haste\ncooldown_sec: 1\n")
	_, err := ruleset.LoadBuffs(dir)
	assert.Error(t, err)
}

func TestLoadJobs_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "j.yaml"), "id: X\nrole: tank\nmodifier: 100\nhit_points: 5\n")
	_, err := ruleset.LoadJobs(dir)
	assert.Error(t, err)
}

func TestLoadJobs_UnknownRole(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "j.yaml"), "id: X\nrole: bard\nmodifier: 100\n")
	_, err := ruleset.LoadJobs(dir)
	assert.Error(t, err)
}

func TestLoadJobs_NonexistentDir(t *testing.T) {
	_, err := ruleset.LoadJobs("/nonexistent/path/that/does/not/exist")
	assert.Error(t, err)
}

func TestProperty_AverageEffectScalesWithMultiplier(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dur := rapid.IntRange(1, 60).Draw(rt, "duration")
		cd := rapid.IntRange(1, 300).Draw(rt, "cooldown")
		m := rapid.Float64Range(0, 1).Draw(rt, "multiplier")
		lo := (&ruleset.Buff{Multiplier: m, DurationSec: dur, CooldownSec: cd}).AverageEffect()
		hi := (&ruleset.Buff{Multiplier: m * 2, DurationSec: dur, CooldownSec: cd}).AverageEffect()
		if hi < lo {
			rt.Fatalf("average effect decreased: %v -> %v", lo, hi)
		}
	})
}
