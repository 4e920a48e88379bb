package hal

import "sync"

// hostFramebuffer is double-buffered: the board draws into back and Present
// publishes it as the frame the window shows.
type hostFramebuffer struct {
	width  int
	height int
	stride int
	back   []byte

	mu     sync.Mutex
	front  []byte
	frames uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		back:   make([]byte, stride*height),
		front:  make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.back }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.back, rgb565(r, g, b))
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.back)
	f.frames++
	return nil
}

// frontRGBA expands the last presented frame into dst (RGBA, 4 bytes per
// pixel) unless it is still the frame numbered seen. It returns the number
// of the frame dst now holds.
func (f *hostFramebuffer) frontRGBA(dst []byte, seen uint64) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.frames == seen {
		return seen
	}
	expandRGB565(dst, f.front)
	return f.frames
}
