// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texview

import (
	"errors"
	"fmt"

	"github.com/gogpu/fractal/interactive"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Common errors returned by Uploader operations.
var (
	// ErrNilTexture is returned when a nil TextureUpdater is passed.
	ErrNilTexture = errors.New("texview: nil TextureUpdater")

	// ErrUnsupportedFormat is returned for texture formats other than
	// RGBA8Unorm and BGRA8Unorm.
	ErrUnsupportedFormat = errors.New("texview: unsupported texture format")

	// ErrBufferSize is returned when an RGB buffer is not a whole number
	// of pixels.
	ErrBufferSize = errors.New("texview: RGB buffer length is not a multiple of 3")
)

// Option configures an Uploader.
type Option func(*Uploader)

// WithFormat sets the texel layout of the target texture. The default is
// RGBA8Unorm.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(u *Uploader) {
		u.format = f
	}
}

// Uploader copies frames into a texture.
//
// Uploader is NOT safe for concurrent use; drive it from the render thread.
type Uploader struct {
	tex     gpucontext.TextureUpdater
	format  gputypes.TextureFormat
	staging []byte
	uploads uint64
}

// NewUploader returns an uploader for tex.
func NewUploader(tex gpucontext.TextureUpdater, opts ...Option) (*Uploader, error) {
	if tex == nil {
		return nil, ErrNilTexture
	}
	u := &Uploader{tex: tex, format: gputypes.TextureFormatRGBA8Unorm}
	for _, opt := range opts {
		opt(u)
	}
	if !supported(u.format) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, u.format)
	}
	return u, nil
}

// Format returns the texel layout the uploader writes.
func (u *Uploader) Format() gputypes.TextureFormat {
	return u.format
}

// Uploads returns how many frames were uploaded.
func (u *Uploader) Uploads() uint64 {
	return u.uploads
}

// Upload writes f into the texture.
func (u *Uploader) Upload(f interactive.Frame) error {
	staging, err := ExpandRGB(u.staging, f.Pixels, u.format)
	if err != nil {
		return err
	}
	u.staging = staging
	if err := u.tex.UpdateData(staging); err != nil {
		return fmt.Errorf("texview: texture update failed: %w", err)
	}
	u.uploads++
	return nil
}

// Present polls p once and uploads the frame if one was accepted. It
// reports whether the texture changed.
func (u *Uploader) Present(p *interactive.Presenter) (bool, error) {
	f, ok := p.Poll()
	if !ok {
		return false, nil
	}
	if err := u.Upload(f); err != nil {
		return false, err
	}
	return true, nil
}

// ExpandRGB converts packed RGB pixels to opaque 4-byte texels in format,
// reusing dst when it has room.
func ExpandRGB(dst, src []byte, format gputypes.TextureFormat) ([]byte, error) {
	if !supported(format) {
		return dst, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if len(src)%3 != 0 {
		return dst, fmt.Errorf("%w: got %d bytes", ErrBufferSize, len(src))
	}

	n := len(src) / 3 * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	// Offsets of red and blue within a texel.
	ri, bi := 0, 2
	if format == gputypes.TextureFormatBGRA8Unorm {
		ri, bi = 2, 0
	}
	for i, j := 0, 0; i < len(src); i, j = i+3, j+4 {
		dst[j+ri] = src[i]
		dst[j+1] = src[i+1]
		dst[j+bi] = src[i+2]
		dst[j+3] = 0xff
	}
	return dst, nil
}

func supported(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatRGBA8Unorm || f == gputypes.TextureFormatBGRA8Unorm
}
