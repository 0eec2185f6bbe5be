package combat

import "github.com/udisondev/soma/internal/model"

// NearestTarget returns the closest living, non-dying enemy within maxRange
// of from. Ties keep the first enemy in roster order. Returns nil if none.
func NearestTarget(from model.Vec2, enemies []*model.Enemy, maxRange float64) *model.Enemy {
	if maxRange < 0 {
		return nil
	}
	limit := maxRange * maxRange

	var best *model.Enemy
	bestDist := limit
	for _, e := range enemies {
		if e == nil || !e.IsAlive() {
			continue
		}
		d := from.DistanceSquared(e.Position)
		if d > limit {
			continue
		}
		if best == nil || d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}

// CountAlive returns the number of living, non-dying enemies.
func CountAlive(enemies []*model.Enemy) int {
	n := 0
	for _, e := range enemies {
		if e != nil && e.IsAlive() {
			n++
		}
	}
	return n
}
