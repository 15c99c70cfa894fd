package drive

import "github.com/go-gl/mathgl/mgl64"

type EventType int

const (
	EventVehicleAttached EventType = iota
	EventItemSpawned
	EventItemCollected
	EventCollision
	EventGearShift
	EventCompassChanged
)

func (t EventType) String() string {
	switch t {
	case EventVehicleAttached:
		return "vehicle_attached"
	case EventItemSpawned:
		return "item_spawned"
	case EventItemCollected:
		return "item_collected"
	case EventCollision:
		return "collision"
	case EventGearShift:
		return "gear_shift"
	case EventCompassChanged:
		return "compass_changed"
	}
	return "unknown"
}

type Event struct {
	Type     EventType
	Position mgl64.Vec3
	Elapsed  float64 // seconds, for item pickups
	Text     string  // UI text: formatted pickup time or compass glyph
	Gear     int
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
