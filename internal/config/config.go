package config

import "time"

// Frame timing.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	// MaxTickSeconds caps the simulated step after a stalled frame.
	MaxTickSeconds = 0.05
)

// Logical view size. Scenes are laid out in these units with y pointing up;
// the canvas scales them to whatever terminal is attached.
const (
	ViewWidth  = 120.0
	ViewHeight = 80.0
)

// Environment variables read by the front-ends.
const (
	EnvDemo     = "RIGID2D_DEMO"
	EnvSeed     = "RIGID2D_SEED"
	EnvLogLevel = "RIGID2D_LOG_LEVEL"
)

// N-body demo
const (
	NBodyCount      = 12
	NBodyGravity    = 40.0
	NBodyMinRadius  = 2.0
	NBodyMaxRadius  = 4.5
	NBodyMaxSpeed   = 6.0
	NBodyStarPoints = 4
)

// Damping demo
const (
	DampingCount     = 8
	DampingSpringK   = 6.0
	DampingMaxGamma  = 3.0
	DampingRadius    = 3.0
	DampingAmplitude = 22.0
	DampingHueRate   = 0.6 // radians per second
)

// Bounce demo
const (
	BounceCount         = 10
	BounceRadius        = 3.0
	BounceElasticity    = 1.0
	BounceImpulseChance = 0.02
	BounceMaxImpulse    = 25.0
	BounceWallThickness = 4.0
)

// Breakout demo
const (
	BreakoutRows         = 4
	BreakoutColumns      = 10
	BreakoutBrickHeight  = 3.0
	BreakoutPaddleWidth  = 18.0
	BreakoutPaddleSpeed  = 70.0
	BreakoutBallSpeed    = 40.0
	BreakoutBallRadius   = 1.5
	BreakoutElasticity   = 1.0
	BreakoutBoostFactor  = 1.25
	BreakoutBoostChance  = 0.15
	BreakoutPowerUpSpeed = 12.0
)

// Sessions
const (
	// IdleTimeout disconnects remote sessions without key presses.
	IdleTimeout = 2 * time.Minute
	// ShutdownGrace is how long the SSH server waits for sessions to end.
	ShutdownGrace = 5 * time.Second
)
