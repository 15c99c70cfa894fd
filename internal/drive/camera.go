package drive

import "github.com/go-gl/mathgl/mgl64"

// Viewport describes the display surface and projection.
type Viewport struct {
	Width  int     `json:"width" msgpack:"width"`
	Height int     `json:"height" msgpack:"height"`
	FovY   float64 `json:"fov_y" msgpack:"fov_y"` // degrees
	Near   float64 `json:"near" msgpack:"near"`
	Far    float64 `json:"far" msgpack:"far"`
}

func (v Viewport) Aspect() float64 {
	if v.Height <= 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// FollowCamera trails a pose with first-order smoothing on both the eye
// and the look-at point.
type FollowCamera struct {
	Position mgl64.Vec3
	LookAt   mgl64.Vec3
	Viewport Viewport

	offset  mgl64.Vec3
	lerp    float64
	snapped bool
}

func NewFollowCamera(t CameraTuning, vp Viewport) *FollowCamera {
	return &FollowCamera{
		Viewport: vp,
		offset:   mgl64.Vec3{t.Offset[0], t.Offset[1], t.Offset[2]},
		lerp:     t.Lerp,
	}
}

// Target returns the eye and look-at points the camera is easing toward.
func (c *FollowCamera) Target(p Pose) (eye, look mgl64.Vec3) {
	eye = p.Position.Add(p.Rotation().Rotate(c.offset))
	return eye, p.Position
}

// Follow eases the camera toward the pose; the first call snaps.
func (c *FollowCamera) Follow(p Pose) {
	eye, look := c.Target(p)
	if !c.snapped {
		c.Position, c.LookAt = eye, look
		c.snapped = true
		return
	}
	c.Position = c.Position.Add(eye.Sub(c.Position).Mul(c.lerp))
	c.LookAt = c.LookAt.Add(look.Sub(c.LookAt).Mul(c.lerp))
}

// Resize updates the viewport. Non-positive sizes are ignored.
func (c *FollowCamera) Resize(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	c.Viewport.Width, c.Viewport.Height = w, h
	return true
}

func (c *FollowCamera) Projection() mgl64.Mat4 {
	v := c.Viewport
	return mgl64.Perspective(mgl64.DegToRad(v.FovY), v.Aspect(), v.Near, v.Far)
}

func (c *FollowCamera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.LookAt, upAxis)
}
