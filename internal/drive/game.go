package drive

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Game owns one simulation. It is not safe for concurrent use; a single
// goroutine must drive Tick and everything else.
type Game struct {
	cfg Config
	log *zap.Logger

	Layout *CityLayout
	Index  *CollisionIndex
	Rain   *Rain
	Camera *FollowCamera
	Sched  *Scheduler
	Bus    *EventBus

	spawner *Spawner
	item    Item
	vehicle *Vehicle

	compass      Direction
	compassValid bool
	lastPickup   string
	tick         uint64
}

func NewGame(cfg Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := GenerateCity(cfg.Seed, cfg.HalfExtent, cfg.BlockSpacing, SimplexNoise(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("generate city: %w", err)
	}

	g := &Game{
		cfg:    cfg,
		log:    log,
		Layout: layout,
		Index:  NewCollisionIndex(layout.Primitives, !cfg.LinearQueries),
		Rain:   NewRain(cfg.RainDrops, cfg.RainArea, cfg.Seed^0x57A7),
		Camera: NewFollowCamera(cfg.Profile.Camera, cfg.Viewport),
		Sched:  NewScheduler(),
		Bus:    NewEventBus(),
	}

	extent := cfg.SpawnHalfExtent
	if extent == 0 {
		_, extent = layout.Bounds()
	}
	g.spawner = NewSpawner(cfg.Seed^0xB0B, g.Index, extent, cfg.MaxSpawnAttempts)

	log.Info("city generated",
		zap.Uint64("seed", cfg.Seed),
		zap.Int("buildings", len(layout.Buildings)),
		zap.String("profile", cfg.Profile.Name),
	)

	g.spawnItem()
	return g, nil
}

// AttachVehicle places a vehicle at the origin facing +Z.
func (g *Game) AttachVehicle(spec VehicleSpec) error {
	return g.AttachVehicleAt(spec, Pose{})
}

func (g *Game) AttachVehicleAt(spec VehicleSpec, pose Pose) error {
	ctrl, err := NewController(g.cfg.Profile, g.Sched)
	if err != nil {
		return fmt.Errorf("attach vehicle: %w", err)
	}
	if dt, ok := ctrl.(*Drivetrain); ok {
		dt.OnShift = func(from, to int) {
			g.Bus.Emit(Event{Type: EventGearShift, Gear: to, Position: g.vehicle.Pose.Position})
		}
	}
	g.vehicle = NewVehicle(spec, ctrl, g.cfg.Profile.ScaleTurnBySpeed, pose)
	g.Camera.Follow(g.vehicle.Pose)
	g.updateCompass()

	g.log.Info("vehicle attached", zap.String("model", spec.Name), zap.String("controller", string(g.cfg.Profile.Controller)))
	g.Bus.Emit(Event{Type: EventVehicleAttached, Position: g.vehicle.Pose.Position})
	return nil
}

// Vehicle returns nil until a vehicle is attached.
func (g *Game) Vehicle() *Vehicle { return g.vehicle }

func (g *Game) Item() Item { return g.item }

func (g *Game) Now() float64 { return g.Sched.Now() }

func (g *Game) Config() Config { return g.cfg }

// Compass returns the current direction toward the item; ok is false while
// there is no vehicle or no active item.
func (g *Game) Compass() (Direction, bool) { return g.compass, g.compassValid }

// LastPickup is the formatted time of the most recent pickup.
func (g *Game) LastPickup() string { return g.lastPickup }

// PlaceItem replaces the current item with an active one at pos.
func (g *Game) PlaceItem(pos mgl64.Vec3) {
	g.item = Item{Position: pos, Active: true, SpawnedAt: g.Now()}
	g.Bus.Emit(Event{Type: EventItemSpawned, Position: pos})
	g.updateCompass()
}

// Resize forwards a new display size to the camera.
func (g *Game) Resize(w, h int) {
	if !g.Camera.Resize(w, h) {
		g.log.Debug("ignoring resize", zap.Int("width", w), zap.Int("height", h))
	}
}

// Tick advances the game by one frame of dt seconds.
func (g *Game) Tick(in InputState, dt float64) {
	g.tick++
	g.Sched.Advance(dt)

	if v := g.vehicle; v != nil {
		v.Ctrl.Update(in)
		if v.Integrate(in, g.Index) {
			g.Bus.Emit(Event{Type: EventCollision, Position: v.Pose.Position})
		}
		g.Camera.Follow(v.Pose)
		g.updateCompass()
		g.checkPickup()
	}

	g.Rain.Update()
}

func (g *Game) spawnItem() {
	pos, err := g.spawner.Sample()
	if err != nil {
		g.log.Warn("item spawn failed, retrying", zap.Error(err), zap.Float64("retry_in", RespawnDelay))
		g.Sched.After(RespawnDelay, g.spawnItem)
		return
	}
	g.log.Debug("item spawned", zap.Float64("x", pos[0]), zap.Float64("z", pos[2]))
	g.PlaceItem(pos)
}

func (g *Game) checkPickup() {
	if !g.item.Active || !g.vehicle.Bounds().Intersects(g.item.PickupBounds()) {
		return
	}
	elapsed := g.Now() - g.item.SpawnedAt
	g.item.Active = false
	g.lastPickup = FormatElapsed(elapsed)
	g.updateCompass()

	g.log.Info("item collected", zap.String("time", g.lastPickup))
	g.Bus.Emit(Event{Type: EventItemCollected, Position: g.item.Position, Elapsed: elapsed, Text: g.lastPickup})
	g.Sched.After(RespawnDelay, g.spawnItem)
}

func (g *Game) updateCompass() {
	if g.vehicle == nil || !g.item.Active {
		g.compassValid = false
		return
	}
	d := CompassDirection(g.vehicle.Pose, g.item.Position)
	if g.compassValid && d == g.compass {
		return
	}
	g.compass, g.compassValid = d, true
	g.Bus.Emit(Event{Type: EventCompassChanged, Text: d.Glyph(), Position: g.item.Position})
}
