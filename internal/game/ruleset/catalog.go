package ruleset

// Built-in buff IDs.
const (
	Chain       BuffID = "CHAIN"
	Divination  BuffID = "DIV"
	Trick       BuffID = "TRICK"
	Litany      BuffID = "LITANY"
	Brotherhood BuffID = "BROTHERHOOD"
	BattleVoice BuffID = "BV"
	BardCrit    BuffID = "BARD_CRIT"
	BardDH      BuffID = "BARD_DH"
	Technical   BuffID = "TECH"
	Devotion    BuffID = "DEVOTION"
	Embolden    BuffID = "EMBOLDEN"
	Card        BuffID = "CARD"
	LordLady    BuffID = "LORD_LADY"
	DSightSelf  BuffID = "DSIGHT_SELF"
	DSightOther BuffID = "DSIGHT_OTHER"
	Devilment   BuffID = "DEVILMENT"
)

// Built-in job IDs.
const (
	SCH JobID = "SCH"
	AST JobID = "AST"
	WHM JobID = "WHM"
	PLD JobID = "PLD"
	WAR JobID = "WAR"
	DRK JobID = "DRK"
	GNB JobID = "GNB"
	NIN JobID = "NIN"
	DRG JobID = "DRG"
	MNK JobID = "MNK"
	SAM JobID = "SAM"
	MCH JobID = "MCH"
	DNC JobID = "DNC"
	BRD JobID = "BRD"
	SMN JobID = "SMN"
	BLM JobID = "BLM"
	RDM JobID = "RDM"
)

// builtinBuffs returns the built-in buff catalog. Devilment raises both rates
// in game but is counted once, as crit.
func builtinBuffs() []*Buff {
	return []*Buff{
		{ID: Chain, Name: "Chain Stratagem", Multiplier: 0.1, DurationSec: 15, CooldownSec: 120, Family: FamilyCrit},
		{ID: Divination, Name: "Divination", Multiplier: 0.06, DurationSec: 15, CooldownSec: 120},
		{ID: Trick, Name: "Trick Attack", Multiplier: 0.05, DurationSec: 15, CooldownSec: 60},
		{ID: Litany, Name: "Battle Litany", Multiplier: 0.1, DurationSec: 20, CooldownSec: 180, Family: FamilyCrit},
		{ID: Brotherhood, Name: "Brotherhood", Multiplier: 0.05, DurationSec: 15, CooldownSec: 90},
		{ID: BattleVoice, Name: "Battle Voice", Multiplier: 0.2, DurationSec: 20, CooldownSec: 180, Family: FamilyDirectHit},
		{ID: BardCrit, Name: "The Wanderer's Minuet", Multiplier: 0.02, DurationSec: 30, CooldownSec: 80, Family: FamilyCrit},
		{ID: BardDH, Name: "Army's Paeon", Multiplier: 0.03, DurationSec: 20, CooldownSec: 80, Family: FamilyDirectHit},
		{ID: Technical, Name: "Technical Finish", Multiplier: 0.05, DurationSec: 20, CooldownSec: 120},
		{ID: Devotion, Name: "Devotion", Multiplier: 0.05, DurationSec: 15, CooldownSec: 180},
		{ID: Embolden, Name: "Embolden", Multiplier: 0.1, DurationSec: 20, CooldownSec: 120},
		{ID: Card, Name: "Card", Multiplier: 0.06, DurationSec: 15, CooldownSec: 30},
		{ID: LordLady, Name: "Lord/Lady of Crowns", Multiplier: 0.08, DurationSec: 15, CooldownSec: 30},
		{ID: DSightSelf, Name: "Dragon Sight (self)", Multiplier: 0.1, DurationSec: 20, CooldownSec: 120},
		{ID: DSightOther, Name: "Dragon Sight (partner)", Multiplier: 0.05, DurationSec: 20, CooldownSec: 120},
		{ID: Devilment, Name: "Devilment", Multiplier: 0.2, DurationSec: 20, CooldownSec: 120, Family: FamilyCrit},
	}
}

// builtinJobs returns the built-in job catalog.
// Job modifiers from https://www.akhmorning.com/allagan-studies/modifiers/
func builtinJobs() []*JobDef {
	return []*JobDef{
		{ID: SCH, Name: "Scholar", Modifier: 115, Role: RoleHealer, RaidBuffs: []BuffID{Chain}},
		{ID: AST, Name: "Astrologian", Modifier: 115, Role: RoleHealer, RaidBuffs: []BuffID{Divination}},
		{ID: WHM, Name: "White Mage", Modifier: 115, Role: RoleHealer},
		{ID: PLD, Name: "Paladin", Modifier: 110, Role: RoleTank},
		{ID: WAR, Name: "Warrior", Modifier: 110, Role: RoleTank},
		{ID: DRK, Name: "Dark Knight", Modifier: 110, Role: RoleTank},
		{ID: GNB, Name: "Gunbreaker", Modifier: 110, Role: RoleTank},
		{ID: NIN, Name: "Ninja", Modifier: 110, Role: RoleMelee, RaidBuffs: []BuffID{Trick}},
		{ID: DRG, Name: "Dragoon", Modifier: 115, Role: RoleMelee, RaidBuffs: []BuffID{Litany}},
		{ID: MNK, Name: "Monk", Modifier: 110, Role: RoleMelee, RaidBuffs: []BuffID{Brotherhood}},
		{ID: SAM, Name: "Samurai", Modifier: 112, Role: RoleMelee},
		{ID: MCH, Name: "Machinist", Modifier: 115, Role: RoleRanged},
		{ID: DNC, Name: "Dancer", Modifier: 115, Role: RoleRanged, RaidBuffs: []BuffID{Technical}},
		{ID: BRD, Name: "Bard", Modifier: 115, Role: RoleRanged, RaidBuffs: []BuffID{BattleVoice, BardCrit, BardDH}},
		{ID: SMN, Name: "Summoner", Modifier: 115, Role: RoleCaster, RaidBuffs: []BuffID{Devotion}},
		{ID: BLM, Name: "Black Mage", Modifier: 115, Role: RoleCaster},
		{ID: RDM, Name: "Red Mage", Modifier: 115, Role: RoleCaster, RaidBuffs: []BuffID{Embolden}},
	}
}

// Default returns a new Registry populated with the built-in catalog.
//
// Postcondition: Returns a non-nil Registry containing every built-in job and buff.
func Default() *Registry {
	r := NewRegistry()
	if err := r.Merge(builtinBuffs(), builtinJobs()); err != nil {
		panic("ruleset.Default: built-in catalog is inconsistent: " + err.Error())
	}
	return r
}

// MustJob returns the job for id from the built-in catalog.
//
// Precondition: id must be a built-in job ID.
func MustJob(id JobID) *Job {
	j, ok := defaultRegistry.Job(id)
	if !ok {
		panic("ruleset.MustJob: precondition violated: unknown job " + string(id))
	}
	return j
}

var defaultRegistry = Default()
