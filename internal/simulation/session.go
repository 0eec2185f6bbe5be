package simulation

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/soma/internal/config"
	"github.com/udisondev/soma/internal/data"
	"github.com/udisondev/soma/internal/game/combat"
	"github.com/udisondev/soma/internal/model"
	"github.com/udisondev/soma/internal/scripting"
	"github.com/udisondev/soma/internal/spawn"
)

var (
	ErrPlayerDead        = errors.New("player is dead")
	ErrNoPendingLevelUp  = errors.New("no pending level-up")
	ErrUnknownStat       = errors.New("unknown stat")
	ErrUnknownBodyPart   = errors.New("unknown body part")
	ErrWaveInProgress    = errors.New("wave in progress")
	ErrLevelUpCoreStat   = errors.New("core stats cannot be raised by level-up")
	ErrInvalidLevelDelta = errors.New("level-up delta must be positive")
)

// InputState is the player's intent for one frame. Move is a direction;
// its length is ignored and a zero vector means standing still.
type InputState struct {
	Move model.Vec2
}

// TickResult is everything a frame produced for the presentation layer.
type TickResult struct {
	Damage        []model.DamageEvent
	Deaths        []model.DeathStarted
	Spawned       []model.SpawnResolved
	LeveledUp     bool
	LevelsGained  int
	WaveCompleted bool
	PlayerDied    bool
}

// Session is one run: a player, its enemies and projectiles, the spawn
// director and the combat resolver. Not safe for concurrent use; the
// configuration tables in provider are shared read-only.
type Session struct {
	cfg      config.Simulation
	provider *data.Provider
	scripts  *scripting.Engine

	player      *model.Player
	enemies     []*model.Enemy
	projectiles []*model.Projectile

	director *spawn.Director
	resolver *combat.Resolver

	phase          Phase
	wave           int
	waveElapsedMs  float64
	waveDurationMs float64
	template       model.EnemyTemplate

	nextEnemyID     uint32
	pendingLevelUps int
	kills           int
}

// NewSession creates an idle session with the player in the middle of the
// world. scripts may be nil.
func NewSession(cfg config.Simulation, provider *data.Provider, rng model.RNG, scripts *scripting.Engine) *Session {
	player := model.NewPlayer(provider.Stats, model.PlayerParams{
		Position:          model.Vec2{X: cfg.World.Width / 2, Y: cfg.World.Height / 2},
		Width:             cfg.Player.Width,
		Height:            cfg.Player.Height,
		BaseSpeed:         cfg.Player.BaseSpeed,
		InvulnerabilityMs: float64(cfg.Player.InvulnerabilityMs),
	}, rng)
	for _, w := range cfg.Player.Weapons {
		player.AddWeapon(model.NewWeapon(w.ID, float64(w.CooldownMs), w.Range, w.BaseDamage, w.ProjectileSpeed))
	}

	return &Session{
		cfg:      cfg,
		provider: provider,
		scripts:  scripts,
		player:   player,
		director: spawn.NewDirector(spawnConfig(cfg.Spawn), rng),
		resolver: combat.NewResolver(combatConfig(cfg.Combat), rng),
	}
}

// Bounds returns the configured world area.
func (s *Session) Bounds() model.Bounds {
	return model.Bounds{Width: s.cfg.World.Width, Height: s.cfg.World.Height}
}

// Player returns the session's player.
func (s *Session) Player() *model.Player { return s.player }

// Enemies returns the live enemy roster. Callers must not modify it.
func (s *Session) Enemies() []*model.Enemy { return s.enemies }

// Projectiles returns projectiles in flight. Callers must not modify it.
func (s *Session) Projectiles() []*model.Projectile { return s.projectiles }

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Wave returns the current or last played wave, 0 before the first.
func (s *Session) Wave() int { return s.wave }

// Kills returns enemies killed over the whole session.
func (s *Session) Kills() int { return s.kills }

// WaveRemainingMs returns time left in the running wave.
func (s *Session) WaveRemainingMs() float64 {
	if s.phase != PhaseWave {
		return 0
	}
	return math.Max(0, s.waveDurationMs-s.waveElapsedMs)
}

// SetHitObserver forwards a projectile hit observer to the resolver.
func (s *Session) SetHitObserver(fn func(combat.HitResult)) {
	s.resolver.SetHitObserver(fn)
}

// StartWave begins wave n (values below 1 start wave 1). Any leftover
// enemies, projectiles and indicators are discarded.
func (s *Session) StartWave(n int) error {
	if s.phase == PhaseDead {
		return ErrPlayerDead
	}
	n = max(1, n)

	s.clearField()
	s.wave = n
	s.phase = PhaseWave
	s.waveElapsedMs = 0
	s.waveDurationMs = float64(s.waveSeconds(n)) * 1000
	s.template = s.scripts.EnemyStats(n, EnemyTemplateForWave(s.cfg.Enemy, n))
	s.director.SetTargetEnemyCount(s.cfg.Spawn.TargetForWave(n))

	slog.Info("wave started",
		"wave", n,
		"durationMs", s.waveDurationMs,
		"target", s.director.TargetEnemyCount(),
		"enemyHP", s.template.MaxHP)
	return nil
}

// StartNextWave begins the wave after the last one. Fails while a wave runs.
func (s *Session) StartNextWave() error {
	if s.phase == PhaseWave {
		return ErrWaveInProgress
	}
	return s.StartWave(s.wave + 1)
}

func (s *Session) waveSeconds(n int) int {
	if sec, ok := s.scripts.WaveSeconds(n); ok {
		return sec
	}
	return s.provider.Waves.Seconds(n)
}

func (s *Session) clearField() {
	s.director.Cleanup()
	s.enemies = nil
	s.projectiles = nil
}

// Tick advances the session by dtMs.
//
// Order: movement (player, then enemies) → weapons and projectiles →
// collisions and removal → spawn director → XP and leveling → wave timer.
// Between waves only the player moves and regenerates.
func (s *Session) Tick(dtMs float64, in InputState, bounds model.Bounds) TickResult {
	var res TickResult
	if s.phase == PhaseDead || s.player.IsDead() {
		res.PlayerDied = true
		return res
	}
	if !(dtMs > 0) || math.IsInf(dtMs, 0) {
		return res
	}

	s.player.Update(dtMs)
	s.movePlayer(dtMs, in, bounds)
	if s.phase != PhaseWave {
		return res
	}
	for _, e := range s.enemies {
		e.MoveToward(s.player.Position, dtMs)
	}

	s.enemies = s.resolver.UpdateDeaths(s.enemies, dtMs)
	s.projectiles = s.resolver.FireWeapons(s.player, s.enemies, s.projectiles, dtMs)

	var hits []model.DamageEvent
	s.projectiles, hits, res.Deaths = s.resolver.UpdateProjectiles(s.projectiles, s.enemies, bounds, dtMs)
	res.Damage = append(hits, s.resolver.ApplyContactDamage(s.player, s.enemies)...)
	s.kills += len(res.Deaths)

	if s.player.IsDead() {
		s.phase = PhaseDead
		res.PlayerDied = true
		slog.Info("player died", "wave", s.wave, "level", s.player.Level(), "kills", s.kills)
		return res
	}

	promotions := s.director.Update(dtMs, combat.CountAlive(s.enemies), s.player.Footprint(), bounds)
	for _, p := range promotions {
		res.Spawned = append(res.Spawned, s.spawnEnemy(p))
	}

	xpGain := s.player.Stats().Total(data.StatXPGain)
	for _, d := range res.Deaths {
		res.LevelsGained += combat.RewardExperience(s.player, s.provider.XP, combat.CalcXPReward(d.XPValue, xpGain))
	}
	if res.LevelsGained > 0 {
		res.LeveledUp = true
		s.pendingLevelUps += res.LevelsGained
	}

	s.waveElapsedMs += dtMs
	if s.waveElapsedMs >= s.waveDurationMs {
		s.completeWave()
		res.WaveCompleted = true
	}
	return res
}

func (s *Session) movePlayer(dtMs float64, in InputState, bounds model.Bounds) {
	dir, ok := in.Move.Normalized()
	if !ok {
		return
	}
	step := s.player.Speed() * dtMs / 1000
	fp := s.player.Footprint()
	s.player.Position = bounds.ClampRect(s.player.Position.Add(dir.Scale(step)), fp.HalfW, fp.HalfH)
}

func (s *Session) spawnEnemy(p spawn.Promotion) model.SpawnResolved {
	s.nextEnemyID++
	e := model.NewEnemy(s.nextEnemyID, s.template, p.Position)
	s.enemies = append(s.enemies, e)

	slog.Debug("enemy spawned",
		"enemyID", e.ID,
		"indicatorID", p.IndicatorID,
		"relocations", p.Relocations,
		"kind", e.Kind)

	return model.SpawnResolved{
		EnemyID:     e.ID,
		IndicatorID: p.IndicatorID,
		Kind:        e.Kind,
		Position:    e.Position,
	}
}

func (s *Session) completeWave() {
	slog.Info("wave completed",
		"wave", s.wave,
		"kills", s.kills,
		"level", s.player.Level(),
		"hp", s.player.Health())
	s.clearField()
	s.phase = PhaseIdle
}

// StatsSnapshot returns every stat total of the player for display.
func (s *Session) StatsSnapshot() map[string]float64 {
	return s.player.Stats().TotalsSnapshot()
}

// SpawnDirectorDebug returns the director's diagnostic state.
func (s *Session) SpawnDirectorDebug() spawn.DebugInfo {
	return s.director.Debug()
}

// PendingLevelUps returns level-up choices not yet applied.
func (s *Session) PendingLevelUps() int { return s.pendingLevelUps }

// ApplyLevelUpChoice spends one pending level-up on a permanent stat bonus.
func (s *Session) ApplyLevelUpChoice(key string, delta float64) error {
	if s.pendingLevelUps == 0 {
		return ErrNoPendingLevelUp
	}
	def, ok := s.provider.Stats.Definition(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStat, key)
	}
	if def.Category == data.CategoryCore {
		return fmt.Errorf("%w: %q", ErrLevelUpCoreStat, key)
	}
	if !(delta > 0) {
		return ErrInvalidLevelDelta
	}

	s.player.Stats().AddLevelUp(key, delta)
	s.pendingLevelUps--
	if key == data.StatMaxHP {
		s.player.Heal(delta)
	}

	slog.Debug("level-up choice applied", "stat", key, "delta", delta, "pending", s.pendingLevelUps)
	return nil
}

// Equip puts the body part with id on the player, replacing whatever was in
// its slot.
func (s *Session) Equip(bodyPartID string) error {
	part, ok := s.provider.BodyParts.Get(bodyPartID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBodyPart, bodyPartID)
	}
	if prev := s.player.Equip(part); prev != nil {
		slog.Debug("body part replaced", "slot", part.Type, "old", prev.ID, "new", part.ID)
	}
	return nil
}

// Unequip empties slot. Returns false if it was already empty.
func (s *Session) Unequip(slot string) bool {
	return s.player.Unequip(slot) != nil
}
