package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"citydrive/internal/drive"
	"citydrive/internal/scene"
)

var (
	lightDir   = mgl32.Vec3{-0.4, -1, -0.3}.Normalize()
	fogColor   = mgl32.Vec3{SkyR, SkyG, SkyB}
	fogDensity = float32(0.00012)
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// mesh is one static interleaved vertex buffer.
type mesh struct {
	vao, vbo uint32
	count    int32
}

func newMesh(buf []float32) mesh {
	var m mesh
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(buf) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STATIC_DRAW)
	}

	stride := int32(scene.FloatsPerVertex * 4)
	for loc := uint32(0); loc < 3; loc++ {
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 3, gl.FLOAT, false, stride, glOffset(int(loc)*3*4))
	}
	gl.BindVertexArray(0)
	m.count = scene.VertexCount(buf)
	return m
}

func (m *mesh) draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

func (m *mesh) destroy() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	*m = mesh{}
}

type Renderer struct {
	meshProg    uint32
	uProj       int32
	uView       int32
	uModel      int32
	uLightDir   int32
	uFogColor   int32
	uFogDensity int32
	uEmissive   int32

	rainProg       uint32
	rainUProj      int32
	rainUView      int32
	rainUPointSize int32
	rainUColor     int32
	rainVAO        uint32
	rainVBO        uint32
	rainCap        int

	city    mesh
	vehicle mesh
	item    mesh

	vehicleSpec drive.VehicleSpec
	identity    mgl32.Mat4
}

func NewRenderer() (*Renderer, error) {
	meshProg, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	rainProg, err := linkProgram(rainVertSrc, rainFragSrc)
	if err != nil {
		gl.DeleteProgram(meshProg)
		return nil, fmt.Errorf("rain program: %w", err)
	}

	r := &Renderer{
		meshProg:    meshProg,
		uProj:       uniform(meshProg, "uProj"),
		uView:       uniform(meshProg, "uView"),
		uModel:      uniform(meshProg, "uModel"),
		uLightDir:   uniform(meshProg, "uLightDir"),
		uFogColor:   uniform(meshProg, "uFogColor"),
		uFogDensity: uniform(meshProg, "uFogDensity"),
		uEmissive:   uniform(meshProg, "uEmissive"),

		rainProg:       rainProg,
		rainUProj:      uniform(rainProg, "uProj"),
		rainUView:      uniform(rainProg, "uView"),
		rainUPointSize: uniform(rainProg, "uPointSize"),
		rainUColor:     uniform(rainProg, "uColor"),

		item:     newMesh(scene.ItemMesh()),
		identity: mgl32.Ident4(),
	}

	gl.GenVertexArrays(1, &r.rainVAO)
	gl.GenBuffers(1, &r.rainVBO)
	gl.BindVertexArray(r.rainVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.rainVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, glOffset(0))
	gl.BindVertexArray(0)

	return r, nil
}

// UploadCity replaces the static city geometry.
func (r *Renderer) UploadCity(layout *drive.CityLayout) {
	r.city.destroy()
	r.city = newMesh(scene.CityMesh(layout))
}

// setVehicle rebuilds the vehicle mesh when the model changes.
func (r *Renderer) setVehicle(spec drive.VehicleSpec) {
	if r.vehicle.count > 0 && spec == r.vehicleSpec {
		return
	}
	r.vehicle.destroy()
	r.vehicle = newMesh(scene.VehicleMesh(spec))
	r.vehicleSpec = spec
}

func (r *Renderer) uploadRain(pos []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.rainVBO)
	if len(pos) > r.rainCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(pos)*4, gl.Ptr(pos), gl.STREAM_DRAW)
		r.rainCap = len(pos)
		return
	}
	if len(pos) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(pos)*4, gl.Ptr(pos))
	}
}

// Draw renders one frame of g into the current framebuffer.
func (r *Renderer) Draw(g *drive.Game, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(SkyR, SkyG, SkyB, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj := scene.Mat32(g.Camera.Projection())
	view := scene.Mat32(g.Camera.View())

	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.UseProgram(r.meshProg)
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.Uniform3fv(r.uLightDir, 1, &lightDir[0])
	gl.Uniform3fv(r.uFogColor, 1, &fogColor[0])
	gl.Uniform1f(r.uFogDensity, fogDensity)

	gl.Uniform1f(r.uEmissive, 0)
	gl.UniformMatrix4fv(r.uModel, 1, false, &r.identity[0])
	r.city.draw()

	if v := g.Vehicle(); v != nil {
		r.setVehicle(v.Spec)
		model := scene.VehicleModel(v.Pose)
		gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
		r.vehicle.draw()
	}

	if it := g.Item(); it.Active {
		model := scene.ItemModel(it.Position, g.Now())
		gl.Uniform1f(r.uEmissive, 0.7)
		gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
		r.item.draw()
	}

	r.drawRain(g.Rain, proj, view)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawRain(rain *drive.Rain, proj, view mgl32.Mat4) {
	if rain.Len() == 0 {
		return
	}
	r.uploadRain(rain.Positions)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	gl.UseProgram(r.rainProg)
	gl.UniformMatrix4fv(r.rainUProj, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.rainUView, 1, false, &view[0])
	gl.Uniform1f(r.rainUPointSize, RainPointSize)
	gl.Uniform3fv(r.rainUColor, 1, &scene.RainColor[0])
	gl.BindVertexArray(r.rainVAO)
	gl.DrawArrays(gl.POINTS, 0, int32(rain.Len()))
	gl.DepthMask(true)
}

func (r *Renderer) Destroy() {
	r.city.destroy()
	r.vehicle.destroy()
	r.item.destroy()
	gl.DeleteBuffers(1, &r.rainVBO)
	gl.DeleteVertexArrays(1, &r.rainVAO)
	gl.DeleteProgram(r.meshProg)
	gl.DeleteProgram(r.rainProg)
}
