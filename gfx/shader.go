package gfx

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Shader is a compiled shader and the locations of the variables it declares.
// Locations are -1 until the owning program is linked.
type Shader struct {
	ShaderID           uint32
	UniformLocations   map[string]int32
	AttributeLocations map[string]int32
}

// ShaderConfig is used to create new shaders
type ShaderConfig struct {
	Source         string
	Typ            ShaderType
	AttributeNames []string
	UniformNames   []string
}

// ShaderType tells NewShader what type of shader it's creating.
type ShaderType int

// Types of shaders
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
)

func (t ShaderType) glType() (uint32, error) {
	switch t {
	case VertexShaderType:
		return gl.VERTEX_SHADER, nil
	case FragmentShaderType:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("unknown shader type %d", int(t))
}

// NewShader compiles a shader but does not attach it to a program.
func NewShader(cfg *ShaderConfig) (*Shader, error) {
	id, err := compileShader(cfg.Source, cfg.Typ)
	if err != nil {
		return nil, err
	}
	uloc := make(map[string]int32, len(cfg.UniformNames))
	for _, un := range cfg.UniformNames {
		uloc[un] = -1
	}
	aloc := make(map[string]int32, len(cfg.AttributeNames))
	for _, an := range cfg.AttributeNames {
		aloc[an] = -1
	}
	return &Shader{ShaderID: id, UniformLocations: uloc, AttributeLocations: aloc}, nil
}

func compileShader(src string, typ ShaderType) (uint32, error) {
	glType, err := typ.glType()
	if err != nil {
		return 0, err
	}
	shaderID := gl.CreateShader(glType)

	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shaderID, 1, csources, nil)
	free()
	gl.CompileShader(shaderID)

	var status int32
	gl.GetShaderiv(shaderID, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shaderID, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shaderID, logLength, nil, gl.Str(log))
		gl.DeleteShader(shaderID)

		return 0, fmt.Errorf("failed to compile %v: %v", src, log)
	}

	return shaderID, nil
}
