package demo

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rigid2d/internal/body"
	"github.com/tomz197/rigid2d/internal/color"
	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/forces"
	"github.com/tomz197/rigid2d/internal/input"
	"github.com/tomz197/rigid2d/internal/polygon"
	"github.com/tomz197/rigid2d/internal/scene"
	"github.com/tomz197/rigid2d/internal/vector"
)

// kind tags breakout bodies through their payload.
type kind uint8

const (
	kindWall kind = iota
	kindPaddle
	kindBall
	kindBrick
	kindBullet
	kindPowerUp
)

const (
	initialLives   = 3
	brickPoints    = 10
	bulletSpeed    = 60.0
	bulletCooldown = 0.3
	paddleY        = 6.0
	paddleHeight   = 2.0
	brickGap       = 1.0
)

// Bricks step through the palette when shot and disappear after the last
// color.
var brickPalette = []color.RGB{color.Red, color.Orange, color.Yellow, color.Green}

// Breakout is a paddle game. The ball bounces off walls, paddle and bricks
// and breaks bricks on contact; bullets fired with space wear bricks down one
// color at a time. Broken bricks sometimes drop a power-up that speeds the
// ball up when caught with the paddle.
type Breakout struct {
	rng    *rand.Rand
	logger *log.Logger
	sc     *scene.Scene

	paddle   *body.Body
	top      *body.Body
	walls    []*body.Body
	ball     *body.Body
	bricks   []*body.Body
	bullets  []*body.Body
	powerUps []*body.Body
	drops    []vector.Vector

	lives    int
	score    int
	cooldown float64
}

// NewBreakout builds the breakout demo.
func NewBreakout(rng *rand.Rand, logger *log.Logger) Demo {
	d := &Breakout{rng: rng, logger: orDiscard(logger)}
	d.reset()
	return d
}

func (d *Breakout) reset() {
	if d.sc != nil {
		d.sc.Release()
	}
	d.sc = newScene(d.logger)
	d.ball = nil
	d.bricks, d.bullets, d.powerUps, d.drops = nil, nil, nil, nil
	d.lives = initialLives
	d.score = 0
	d.cooldown = 0

	// The bottom wall is left out so a missed ball falls through.
	d.walls = boxWalls(config.ViewWidth, config.ViewHeight, config.BounceWallThickness)[1:]
	d.top = d.walls[0]
	for _, w := range d.walls {
		d.sc.AddBody(w)
	}

	d.paddle = body.NewWithInfo(
		polygon.Rect(config.BreakoutPaddleWidth, paddleHeight, vector.New(config.ViewWidth/2, paddleY)),
		body.InfiniteMass, color.White, kindPaddle, nil)
	d.sc.AddBody(d.paddle)

	inner := config.ViewWidth - 2*config.BounceWallThickness
	w := inner / config.BreakoutColumns
	topY := config.ViewHeight - config.BounceWallThickness - 6
	for row := range config.BreakoutRows {
		y := topY - float64(row)*(config.BreakoutBrickHeight+brickGap)
		c := brickPalette[row%len(brickPalette)]
		for col := range config.BreakoutColumns {
			x := config.BounceWallThickness + w*(float64(col)+0.5)
			brick := body.NewWithInfo(
				polygon.Rect(w-brickGap, config.BreakoutBrickHeight, vector.New(x, y)),
				body.InfiniteMass, c, kindBrick, d.brickBroken)
			d.sc.AddBody(brick)
			d.bricks = append(d.bricks, brick)
		}
	}
}

func (d *Breakout) brickBroken(any) {
	d.score += brickPoints
}

func (d *Breakout) launchBall() {
	start := d.paddle.Centroid().Add(vector.New(0, paddleHeight/2+config.BreakoutBallRadius+0.5))
	ball := body.NewWithInfo(polygon.Regular(8, config.BreakoutBallRadius, start), 1, color.White, kindBall, nil)
	dir := vector.New(uniform(d.rng, -0.6, 0.6), 1).Normalize()
	ball.SetVelocity(dir.Scale(config.BreakoutBallSpeed))
	d.sc.AddBody(ball)
	d.ball = ball

	for _, w := range d.walls {
		forces.PhysicsCollision(d.sc, config.BreakoutElasticity, ball, w)
	}
	forces.PhysicsCollision(d.sc, config.BreakoutElasticity, ball, d.paddle)
	for _, brick := range d.bricks {
		forces.PhysicsCollision(d.sc, config.BreakoutElasticity, ball, brick)
		forces.Collision(d.sc, ball, brick, d.ballHitBrick)
	}
	for _, pu := range d.powerUps {
		forces.SpeedBoostCollision(d.sc, config.BreakoutBoostFactor, pu, d.paddle, ball)
	}
	d.logger.Debug("ball launched", "lives", d.lives)
}

// ballHitBrick runs inside a tick, so new bodies are queued for Update.
func (d *Breakout) ballHitBrick(_, brick *body.Body, _ vector.Vector) {
	brick.Remove()
	if d.rng.Float64() < config.BreakoutBoostChance {
		d.drops = append(d.drops, brick.Centroid())
	}
}

func (d *Breakout) fireBullet() {
	start := d.paddle.Centroid().Add(vector.New(0, paddleHeight))
	bullet := body.NewWithInfo(polygon.Rect(0.6, 2, start), 1, color.Yellow, kindBullet, nil)
	bullet.SetVelocity(vector.New(0, bulletSpeed))
	d.sc.AddBody(bullet)
	d.bullets = append(d.bullets, bullet)

	for _, brick := range d.bricks {
		forces.ColorIncrementCollision(d.sc, bullet, brick, brickPalette)
	}
	forces.SingleDestructiveCollision(d.sc, bullet, d.top)
	for _, pu := range d.powerUps {
		forces.DestructiveCollision(d.sc, bullet, pu)
	}
}

func (d *Breakout) dropPowerUp(at vector.Vector) {
	pu := body.NewWithInfo(polygon.Regular(4, 1.5, at), 1, color.Fuchsia, kindPowerUp, nil)
	pu.SetVelocity(vector.New(0, -config.BreakoutPowerUpSpeed))
	d.sc.AddBody(pu)
	d.powerUps = append(d.powerUps, pu)

	if d.ball != nil {
		forces.SpeedBoostCollision(d.sc, config.BreakoutBoostFactor, pu, d.paddle, d.ball)
	}
	for _, bullet := range d.bullets {
		forces.DestructiveCollision(d.sc, bullet, pu)
	}
}

func (d *Breakout) over() bool {
	return d.lives == 0 || len(d.bricks) == 0
}

func (d *Breakout) Name() string        { return "breakout" }
func (d *Breakout) Scene() *scene.Scene { return d.sc }

func (d *Breakout) Update(in input.Input, dt float64) {
	d.prune()
	if d.over() {
		if in.Space {
			d.reset()
		}
		return
	}

	var dx float64
	if in.Left {
		dx -= config.BreakoutPaddleSpeed * dt
	}
	if in.Right {
		dx += config.BreakoutPaddleSpeed * dt
	}
	if dx != 0 {
		half := config.BreakoutPaddleWidth / 2
		c := d.paddle.Centroid()
		x := min(max(c.X+dx, config.BounceWallThickness+half), config.ViewWidth-config.BounceWallThickness-half)
		d.paddle.SetCentroid(vector.New(x, c.Y))
	}

	d.cooldown -= dt
	if in.Space {
		switch {
		case d.ball == nil:
			d.launchBall()
		case d.cooldown <= 0:
			d.fireBullet()
			d.cooldown = bulletCooldown
		}
	}

	for _, at := range d.drops {
		d.dropPowerUp(at)
	}
	d.drops = d.drops[:0]
}

// prune forgets swept bodies and removes the ones that left the field.
func (d *Breakout) prune() {
	if d.ball != nil && (d.ball.IsRemoved() || d.ball.Centroid().Y < 0) {
		d.ball.Remove()
		d.ball = nil
		d.lives--
		d.logger.Debug("ball lost", "lives", d.lives)
	}
	outside := func(b *body.Body) bool {
		y := b.Centroid().Y
		if y < 0 || y > config.ViewHeight {
			b.Remove()
		}
		return b.IsRemoved()
	}
	d.bullets = slices.DeleteFunc(d.bullets, outside)
	d.powerUps = slices.DeleteFunc(d.powerUps, outside)
	d.bricks = slices.DeleteFunc(d.bricks, (*body.Body).IsRemoved)
}

// count returns the live bodies tagged k.
func (d *Breakout) count(k kind) int {
	n := 0
	for i := range d.sc.Len() {
		b := d.sc.Body(i)
		if tag, ok := b.Info().(kind); ok && tag == k && !b.IsRemoved() {
			n++
		}
	}
	return n
}

func (d *Breakout) Status() string {
	status := fmt.Sprintf("lives %d  score %d  bricks %d", d.lives, d.score, d.count(kindBrick))
	switch {
	case len(d.bricks) == 0:
		return status + "  cleared! space to restart"
	case d.lives == 0:
		return status + "  game over, space to restart"
	case d.ball == nil:
		return status + "  space to launch"
	}
	return status
}

func (d *Breakout) Release() { d.sc.Release() }
