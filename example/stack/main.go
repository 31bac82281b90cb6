// Command stack drops a short stack of boxes onto static ground and
// prints their settled positions, exercising the solver end to end
// without any rendering.
package main

import (
	"fmt"
	"math"

	"github.com/bramblekeep/impulse2d"
	"github.com/bramblekeep/impulse2d/vec"
)

func main() {
	world := impulse2d.NewWorld(impulse2d.DefaultConfig())
	world.Events().Subscribe(impulse2d.CollisionEnter, func(ev impulse2d.Event) {
		fmt.Println("collision enter")
	})

	ground := world.NewBox(math.Inf(1), 20, 1, vec.Vec2{X: 0, Y: -0.5})
	ground.SetFriction(0.8)

	for i := 0; i < 4; i++ {
		b := world.NewBox(1, 1, 1, vec.Vec2{X: 0.05 * float64(i), Y: float64(i) * 1.01})
		b.SetFriction(0.8)
	}

	const dt = 1.0 / 60.0
	for step := 0; step < 300; step++ {
		world.Step(dt)
	}

	for i, b := range world.Bodies[1:] {
		fmt.Printf("box %d: position=%v angular=%v\n", i, b.Position, b.AngularVelocity)
	}
}
