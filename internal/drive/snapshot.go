package drive

import "github.com/go-gl/mathgl/mgl64"

// Snapshot is the read-only view of one tick for renderers and UI.
type Snapshot struct {
	Tick    uint64       `json:"tick" msgpack:"tick"`
	Time    float64      `json:"time" msgpack:"time"`
	Vehicle *VehicleView `json:"vehicle,omitempty" msgpack:"vehicle,omitempty"`
	Item    Item         `json:"item" msgpack:"item"`
	Camera  CameraView   `json:"camera" msgpack:"camera"`

	// Compass is the arrow glyph, empty when there is nothing to point at.
	Compass    string `json:"compass" msgpack:"compass"`
	LastPickup string `json:"last_pickup" msgpack:"last_pickup"`
}

type VehicleView struct {
	Pose   Pose            `json:"pose" msgpack:"pose"`
	Engine DrivetrainState `json:"engine" msgpack:"engine"`
	Spec   VehicleSpec     `json:"spec" msgpack:"spec"`
}

type CameraView struct {
	Position mgl64.Vec3 `json:"position" msgpack:"position"`
	LookAt   mgl64.Vec3 `json:"look_at" msgpack:"look_at"`
	Viewport Viewport   `json:"viewport" msgpack:"viewport"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Time:       g.Now(),
		Item:       g.item,
		LastPickup: g.lastPickup,
		Camera: CameraView{
			Position: g.Camera.Position,
			LookAt:   g.Camera.LookAt,
			Viewport: g.Camera.Viewport,
		},
	}
	if d, ok := g.Compass(); ok {
		s.Compass = d.Glyph()
	}
	if v := g.vehicle; v != nil {
		s.Vehicle = &VehicleView{Pose: v.Pose, Engine: v.Ctrl.State(), Spec: v.Spec}
	}
	return s
}
