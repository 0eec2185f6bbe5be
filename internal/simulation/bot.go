package simulation

import (
	"log/slog"

	"github.com/udisondev/soma/internal/data"
	"github.com/udisondev/soma/internal/model"
)

// levelUpChoice is one stat bonus the bot may pick on level-up.
type levelUpChoice struct {
	key   string
	delta float64
}

var defaultChoices = []levelUpChoice{
	{data.StatDamage, 10},
	{data.StatAttackSpeed, 10},
	{data.StatMaxHP, 2},
	{data.StatArmor, 5},
	{data.StatSpeed, 5},
	{data.StatRange, 20},
}

// Bot plays a session without a human: it kites away from close enemies,
// spends level-ups round-robin and equips a random body part between waves.
type Bot struct {
	rng         model.RNG
	panicRadius float64
	choices     []levelUpChoice
	next        int
}

// NewBot creates a bot that flees enemies closer than panicRadius.
func NewBot(rng model.RNG, panicRadius float64) *Bot {
	return &Bot{rng: rng, panicRadius: panicRadius, choices: defaultChoices}
}

// Input returns the move intent for the next frame.
func (b *Bot) Input(s *Session) InputState {
	pos := s.player.Position
	var (
		threat  *model.Enemy
		bestDSq = b.panicRadius * b.panicRadius
	)
	for _, e := range s.enemies {
		if !e.IsAlive() {
			continue
		}
		if dSq := pos.DistanceSquared(e.Position); dSq < bestDSq {
			threat, bestDSq = e, dSq
		}
	}
	if threat == nil {
		return InputState{}
	}
	return InputState{Move: pos.Sub(threat.Position)}
}

// SpendLevelUps applies every pending level-up.
func (b *Bot) SpendLevelUps(s *Session) {
	for s.PendingLevelUps() > 0 {
		c := b.choices[b.next%len(b.choices)]
		b.next++
		if err := s.ApplyLevelUpChoice(c.key, c.delta); err != nil {
			slog.Warn("bot level-up choice rejected", "stat", c.key, "err", err)
			return
		}
	}
}

// EquipRandom puts on a random body part from the catalog.
func (b *Bot) EquipRandom(s *Session) {
	ids := s.provider.BodyParts.IDs()
	if len(ids) == 0 {
		return
	}
	id := ids[int(b.rng.Float64()*float64(len(ids)))%len(ids)]
	if err := s.Equip(id); err != nil {
		slog.Warn("bot equip failed", "part", id, "err", err)
	}
}
