package game

import "time"

// Window defaults.
const (
	WindowTitle  = "citydrive"
	WindowWidth  = 1280
	WindowHeight = 720
)

// One simulation tick per rendered frame; long stalls are clamped.
const MaxFrameDT = 0.1

const (
	HUDRefresh    = 100 * time.Millisecond
	CrashSoundGap = 0.4 // seconds between thumps while pinned against a wall
	RainPointSize = 2.0
)

// Clear colour.
const SkyR, SkyG, SkyB = 0.04, 0.05, 0.08
