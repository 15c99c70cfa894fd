package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh vertex shader: interleaved position/normal/colour, per-draw model matrix.
const meshVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec3 aColor;

uniform mat4 uProj;
uniform mat4 uView;
uniform mat4 uModel;

out vec3 vNormal;
out vec3 vColor;
out float vDepth;

void main() {
    vec4 world = uModel * vec4(aPos, 1.0);
    vec4 eye = uView * world;
    vNormal = mat3(uModel) * aNormal;
    vColor = aColor;
    vDepth = -eye.z;
    gl_Position = uProj * eye;
}
` + "\x00"

// Mesh fragment shader: one directional light, ambient floor and distance fog.
const meshFragSrc = `#version 410 core

uniform vec3 uLightDir;
uniform vec3 uFogColor;
uniform float uFogDensity;
uniform float uEmissive;

in vec3 vNormal;
in vec3 vColor;
in float vDepth;
out vec4 FragColor;

void main() {
    float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
    vec3 lit = vColor * (0.35 + 0.65 * diffuse);
    lit = mix(lit, vColor, uEmissive);
    float fog = 1.0 - exp(-uFogDensity * vDepth * vDepth);
    FragColor = vec4(mix(lit, uFogColor, clamp(fog, 0.0, 1.0)), 1.0);
}
` + "\x00"

// Rain vertex shader: world-space points from a flat xyz buffer.
const rainVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;

uniform mat4 uProj;
uniform mat4 uView;
uniform float uPointSize;

out float vDepth;

void main() {
    vec4 eye = uView * vec4(aPos, 1.0);
    vDepth = -eye.z;
    gl_Position = uProj * eye;
    gl_PointSize = max(1.0, uPointSize * 20.0 / max(vDepth, 1.0));
}
` + "\x00"

const rainFragSrc = `#version 410 core

uniform vec3 uColor;

in float vDepth;
out vec4 FragColor;

void main() {
    float a = clamp(1.0 - vDepth / 150.0, 0.0, 1.0) * 0.6;
    FragColor = vec4(uColor, a);
}
` + "\x00"

// infoLog reads a shader or program log through the matching getters.
func infoLog(obj uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(obj, gl.INFO_LOG_LENGTH, &n)
	buf := strings.Repeat("\x00", int(n+1))
	getLog(obj, n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func compileShader(source string, kind uint32) (uint32, error) {
	sh := gl.CreateShader(kind)
	src, free := gl.Strs(source)
	gl.ShaderSource(sh, 1, src, nil)
	free()
	gl.CompileShader(sh)

	var ok int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(sh, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("compile shader: %s", msg)
	}
	return sh, nil
}

// linkProgram builds a program from vertex and fragment sources. The
// shader objects are released whether or not linking succeeds.
func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	var shaders [2]uint32
	for i, st := range []struct {
		src  string
		kind uint32
	}{{vertSrc, gl.VERTEX_SHADER}, {fragSrc, gl.FRAGMENT_SHADER}} {
		sh, err := compileShader(st.src, st.kind)
		if err != nil {
			for _, prev := range shaders[:i] {
				gl.DeleteShader(prev)
			}
			return 0, err
		}
		shaders[i] = sh
	}

	prog := gl.CreateProgram()
	for _, sh := range shaders {
		gl.AttachShader(prog, sh)
	}
	gl.LinkProgram(prog)
	for _, sh := range shaders {
		gl.DetachShader(prog, sh)
		gl.DeleteShader(sh)
	}

	var ok int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(prog, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link program: %s", msg)
	}
	return prog, nil
}

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}
