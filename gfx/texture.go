package gfx

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureConfig is a configuration for creating a new TextureObject
type TextureConfig struct {
	Image       *image.RGBA
	UniformName string
	// Mode is the min/mag filter, gl.LINEAR when zero.
	Mode int32
}

// TextureObject is a 2D texture backed by an RGBA image of fixed size.
type TextureObject struct {
	texID  uint32
	texLoc int32
	size   image.Point
}

// AddTextureObject creates a texture the size of cfg.Image, uploads the image
// and binds it to texture unit 0 of the named sampler uniform.
func (c *Context) AddTextureObject(cfg *TextureConfig) (*TextureObject, error) {
	texLoc, err := c.GetUniformLocation(cfg.UniformName)
	if err != nil {
		return nil, err
	}
	mode := cfg.Mode
	if mode == 0 {
		mode = gl.LINEAR
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	size := cfg.Image.Rect.Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(size.X), int32(size.Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(cfg.Image.Pix))

	gl.Uniform1i(texLoc, 0)

	tex := &TextureObject{texID: texID, texLoc: texLoc, size: size}
	c.textures = append(c.textures, tex)
	return tex, nil
}

// Update uploads img, which must match the texture's size.
func (t *TextureObject) Update(img *image.RGBA) error {
	if img.Rect.Size() != t.size {
		return fmt.Errorf("texture is %v, image is %v", t.size, img.Rect.Size())
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.texID)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
		int32(t.size.X), int32(t.size.Y),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	return nil
}
