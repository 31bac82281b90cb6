package impulse2d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bramblekeep/impulse2d/vec"
)

func TestEventBus_EmitsCollisionEnterThenStay(t *testing.T) {
	w := NewWorld(DefaultConfig())
	ground := w.NewBox(math.Inf(1), 10, 1, vec.Vec2{X: 0, Y: -0.5})
	ground.SetFriction(0.8)
	box := w.NewBox(1, 1, 1, vec.Vec2{X: 0, Y: 0.5})
	box.SetFriction(0.8)

	var seen []EventType
	w.Events().Subscribe(CollisionEnter, func(e Event) { seen = append(seen, e.Type()) })
	w.Events().Subscribe(CollisionStay, func(e Event) { seen = append(seen, e.Type()) })

	dt := 1.0 / 60
	for i := 0; i < 5; i++ {
		w.Step(dt)
	}

	assert.Contains(t, seen, CollisionEnter)
	assert.Contains(t, seen, CollisionStay)
}

func TestEventBus_TriggerBodyEmitsTriggerNotCollision(t *testing.T) {
	w := NewWorld(DefaultConfig())
	trigger := w.NewBox(math.Inf(1), 10, 1, vec.Vec2{X: 0, Y: -0.5})
	trigger.SetTrigger(true)
	box := w.NewBox(1, 1, 1, vec.Vec2{X: 0, Y: 0.2})

	var collisionSeen, triggerSeen bool
	w.Events().Subscribe(CollisionEnter, func(e Event) { collisionSeen = true })
	w.Events().Subscribe(TriggerEnter, func(e Event) { triggerSeen = true })

	w.Step(1.0 / 60)

	assert.False(t, collisionSeen)
	assert.True(t, triggerSeen)
}

func TestEventBus_SleepEmitsOnceOnTransition(t *testing.T) {
	w := NewWorld(DefaultConfig())
	w.SleepDuration = 0.01
	w.SleepVelocityThreshold = 0.5
	w.Gravity = vec.Zero2
	box := w.NewBox(1, 1, 1, vec.Zero2)
	box.SetVelocity(vec.Zero2)

	sleepCount := 0
	w.Events().Subscribe(BodySleep, func(e Event) { sleepCount++ })

	dt := 1.0 / 60
	for i := 0; i < 10; i++ {
		w.Step(dt)
	}

	assert.Equal(t, 1, sleepCount)
}
