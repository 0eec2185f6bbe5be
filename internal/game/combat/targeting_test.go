package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/soma/internal/model"
)

func enemyAt(id uint32, x, y float64) *model.Enemy {
	return model.NewEnemy(id, model.EnemyTemplate{
		Kind:            "slug",
		MaxHP:           10,
		ContactDamage:   1,
		Speed:           50,
		Width:           20,
		Height:          20,
		XPValue:         3,
		DeathDurationMs: 300,
	}, model.Vec2{X: x, Y: y})
}

func TestNearestTarget(t *testing.T) {
	origin := model.Vec2{}
	far := enemyAt(1, 200, 0)
	near := enemyAt(2, 0, 100)
	outOfRange := enemyAt(3, 10, 500)

	got := NearestTarget(origin, []*model.Enemy{far, near, outOfRange}, 300)
	assert.Same(t, near, got)
}

func TestNearestTargetTiesKeepFirst(t *testing.T) {
	a := enemyAt(1, 100, 0)
	b := enemyAt(2, 0, 100)
	c := enemyAt(3, -100, 0)

	got := NearestTarget(model.Vec2{}, []*model.Enemy{a, b, c}, 300)
	assert.Same(t, a, got)

	got = NearestTarget(model.Vec2{}, []*model.Enemy{c, b, a}, 300)
	assert.Same(t, c, got)
}

func TestNearestTargetRangeIsInclusive(t *testing.T) {
	e := enemyAt(1, 300, 0)
	assert.Same(t, e, NearestTarget(model.Vec2{}, []*model.Enemy{e}, 300))
	assert.Nil(t, NearestTarget(model.Vec2{}, []*model.Enemy{e}, 299.9))
}

func TestNearestTargetSkipsDying(t *testing.T) {
	dying := enemyAt(1, 10, 0)
	dying.TakeDamage(100)
	alive := enemyAt(2, 50, 0)

	enemies := []*model.Enemy{dying, alive}
	assert.Same(t, alive, NearestTarget(model.Vec2{}, enemies, 300))
	assert.Equal(t, 1, CountAlive(enemies))
}

func TestNearestTargetEmpty(t *testing.T) {
	assert.Nil(t, NearestTarget(model.Vec2{}, nil, 300))
	assert.Nil(t, NearestTarget(model.Vec2{}, []*model.Enemy{enemyAt(1, 0, 0)}, -1))
}
