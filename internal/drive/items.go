package drive

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Item is the pickup. Only one exists at a time.
type Item struct {
	Position  mgl64.Vec3 `json:"position" msgpack:"position"`
	Active    bool       `json:"active" msgpack:"active"`
	SpawnedAt float64    `json:"spawned_at" msgpack:"spawned_at"`
}

// ItemBounds is the visible cube of an item centred at pos. Spawning keeps
// it clear of buildings.
func ItemBounds(pos mgl64.Vec3) AABB {
	h := ItemSize / 2
	return BoxAround(pos, mgl64.Vec3{h, h, h})
}

func (it Item) Bounds() AABB { return ItemBounds(it.Position) }

// PickupBounds boxes the pickup sphere of radius ItemPickupRadius, so a
// vehicle collects the item slightly before touching the cube.
func (it Item) PickupBounds() AABB {
	r := ItemPickupRadius
	return BoxAround(it.Position, mgl64.Vec3{r, r, r})
}

// Spawner places items by rejection sampling against a collision index.
type Spawner struct {
	rng         *Rand
	idx         *CollisionIndex
	extent      float64
	maxAttempts int
}

func NewSpawner(seed uint64, idx *CollisionIndex, extent float64, maxAttempts int) *Spawner {
	if maxAttempts <= 0 {
		maxAttempts = MaxSpawnAttempts
	}
	return &Spawner{rng: NewRand(seed), idx: idx, extent: extent, maxAttempts: maxAttempts}
}

// Sample draws positions in [-extent, extent)² until one is clear of every
// primitive.
func (s *Spawner) Sample() (mgl64.Vec3, error) {
	for i := 0; i < s.maxAttempts; i++ {
		pos := mgl64.Vec3{s.rng.RangeF(-s.extent, s.extent), ItemHeight, s.rng.RangeF(-s.extent, s.extent)}
		if s.extent == 0 {
			pos[0], pos[2] = 0, 0
		}
		if !s.Blocked(pos) {
			return pos, nil
		}
	}
	return mgl64.Vec3{}, fmt.Errorf("%w: %d attempts", ErrNoFreeSpot, s.maxAttempts)
}

// Blocked reports whether an item at pos would overlap a primitive.
func (s *Spawner) Blocked(pos mgl64.Vec3) bool {
	return s.idx.QueryAny(PointProbe(ItemBounds(pos)))
}

// FormatElapsed renders a pickup time in seconds with two decimals.
func FormatElapsed(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%.2f", sec)
}
