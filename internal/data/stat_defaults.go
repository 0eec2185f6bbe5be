package data

// Stat keys referenced by the simulation. Other keys may exist in config and
// are carried through the aggregator untouched.
const (
	StatMaxHP       = "maxHp"
	StatHPRegen     = "hpRegen"
	StatDamage      = "damage"
	StatAttackSpeed = "attackSpeed"
	StatCritChance  = "critChance"
	StatRange       = "range"
	StatArmor       = "armor"
	StatDodge       = "dodge"
	StatSpeed       = "speed"
	StatXPGain      = "xpGain"
	StatPickupRange = "pickupRange"

	StatLevel     = "level"
	StatCurrentHP = "currentHp"
	StatXP        = "xp"
)

func floatPtr(v float64) *float64 { return &v }

// defaultStatRows is the minimal stat set used when no source is available.
var defaultStatRows = []StatRow{
	{Category: "primary", Order: 1, Key: StatMaxHP, DisplayName: "Max HP", IsPercent: false, BaseValue: 10, MinValue: floatPtr(1), Emoji: "❤"},
	{Category: "primary", Order: 2, Key: StatHPRegen, DisplayName: "HP Regeneration", BaseValue: 0, MinValue: floatPtr(0)},
	{Category: "primary", Order: 3, Key: StatDamage, DisplayName: "Damage", IsPercent: true, BaseValue: 0, MinValue: floatPtr(-90)},
	{Category: "primary", Order: 4, Key: StatAttackSpeed, DisplayName: "Attack Speed", IsPercent: true, BaseValue: 0, MinValue: floatPtr(-90)},
	{Category: "primary", Order: 5, Key: StatCritChance, DisplayName: "Crit Chance", IsPercent: true, BaseValue: 0, MinValue: floatPtr(0), MaxValue: floatPtr(100)},
	{Category: "primary", Order: 6, Key: StatRange, DisplayName: "Range", BaseValue: 0, MinValue: floatPtr(-200)},
	{Category: "primary", Order: 7, Key: StatArmor, DisplayName: "Armor", IsPercent: true, BaseValue: 0, MinValue: floatPtr(-100), MaxValue: floatPtr(90)},
	{Category: "primary", Order: 8, Key: StatDodge, DisplayName: "Dodge", IsPercent: true, BaseValue: 0, MinValue: floatPtr(0), MaxValue: floatPtr(60)},
	{Category: "primary", Order: 9, Key: StatSpeed, DisplayName: "Speed", IsPercent: true, BaseValue: 0, MinValue: floatPtr(-90)},
	{Category: "secondary", Order: 1, Key: StatXPGain, DisplayName: "XP Gain", IsPercent: true, BaseValue: 0, MinValue: floatPtr(-100)},
	{Category: "secondary", Order: 2, Key: StatPickupRange, DisplayName: "Pickup Range", BaseValue: 100, MinValue: floatPtr(0)},
	{Category: "core", Order: 1, Key: StatLevel, DisplayName: "Level", HideInPanel: true, BaseValue: 0, MinValue: floatPtr(0)},
	{Category: "core", Order: 2, Key: StatCurrentHP, DisplayName: "HP", HideInPanel: true, BaseValue: 10, MinValue: floatPtr(0)},
	{Category: "core", Order: 3, Key: StatXP, DisplayName: "XP", HideInPanel: true, BaseValue: 0, MinValue: floatPtr(0)},
}

// DefaultStatRows returns a copy of the built-in stat rows.
func DefaultStatRows() []StatRow {
	out := make([]StatRow, len(defaultStatRows))
	copy(out, defaultStatRows)
	return out
}

// defaultXPRows follows xpRequired(L) = (L+3)^2.
var defaultXPRows = []XPRow{
	{Level: 1, XPRequired: 16, CumulativeXP: 16},
	{Level: 2, XPRequired: 25, CumulativeXP: 41},
	{Level: 3, XPRequired: 36, CumulativeXP: 77},
	{Level: 4, XPRequired: 49, CumulativeXP: 126},
	{Level: 5, XPRequired: 64, CumulativeXP: 190},
	{Level: 6, XPRequired: 81, CumulativeXP: 271},
	{Level: 7, XPRequired: 100, CumulativeXP: 371},
	{Level: 8, XPRequired: 121, CumulativeXP: 492},
	{Level: 9, XPRequired: 144, CumulativeXP: 636},
	{Level: 10, XPRequired: 169, CumulativeXP: 805},
	{Level: 11, XPRequired: 196, CumulativeXP: 1001},
	{Level: 12, XPRequired: 225, CumulativeXP: 1226},
	{Level: 13, XPRequired: 256, CumulativeXP: 1482},
	{Level: 14, XPRequired: 289, CumulativeXP: 1771},
	{Level: 15, XPRequired: 324, CumulativeXP: 2095},
}

// DefaultXPRows returns a copy of the built-in experience rows.
func DefaultXPRows() []XPRow {
	out := make([]XPRow, len(defaultXPRows))
	copy(out, defaultXPRows)
	return out
}

// defaultBodyPartRows is a small starter catalog.
var defaultBodyPartRows = []BodyPartRow{
	{ID: "chitin_head", DisplayName: "Chitin Head", Type: "head", ImageRef: "parts/chitin_head.png", Scale: 1,
		Stats: map[string]float64{StatArmor: 5, StatMaxHP: 2}},
	{ID: "spined_arm", DisplayName: "Spined Arm", Type: "arms", ImageRef: "parts/spined_arm.png", Scale: 1,
		Stats: map[string]float64{StatDamage: 10, StatAttackSpeed: 5}},
	{ID: "long_legs", DisplayName: "Long Legs", Type: "legs", ImageRef: "parts/long_legs.png", Scale: 1.1,
		Stats: map[string]float64{StatSpeed: 10, StatDodge: 3}},
	{ID: "eye_stalk", DisplayName: "Eye Stalk", Type: "head", ImageRef: "parts/eye_stalk.png", Scale: 0.9,
		Stats: map[string]float64{StatRange: 50, StatCritChance: 5}},
	{ID: "fat_torso", DisplayName: "Fat Torso", Type: "torso", ImageRef: "parts/fat_torso.png", Scale: 1.2,
		Stats: map[string]float64{StatMaxHP: 8, StatSpeed: -5, StatHPRegen: 1}},
}

// DefaultBodyPartRows returns a copy of the built-in body-part rows.
func DefaultBodyPartRows() []BodyPartRow {
	out := make([]BodyPartRow, len(defaultBodyPartRows))
	for i, r := range defaultBodyPartRows {
		r.Stats = copyStats(r.Stats)
		out[i] = r
	}
	return out
}

// DefaultWaveRows are the first few wave durations; later waves use the fallback.
var defaultWaveRows = []WaveRow{
	{WaveIndex: 1, DurationSeconds: 20},
	{WaveIndex: 2, DurationSeconds: 25},
	{WaveIndex: 3, DurationSeconds: 30},
}

// DefaultWaveRows returns a copy of the built-in wave rows.
func DefaultWaveRows() []WaveRow {
	out := make([]WaveRow, len(defaultWaveRows))
	copy(out, defaultWaveRows)
	return out
}

func copyStats(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
