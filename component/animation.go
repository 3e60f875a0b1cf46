package component

import (
	"math"
	"sort"
)

// FrameCallback is invoked when an animation enters a frame.
type FrameCallback func(anim *Animation, frame int)

// Animation is a frame clock for a spritesheet clip. It knows nothing about
// images; renderers read Frame() and slice their own sheet.
type Animation struct {
	Name       string
	FrameCount int
	FPS        int
	Loop       bool

	current     int
	tick        int
	ticksPerFrm int
	entered     bool
	done        bool
	callbacks   map[int][]FrameCallback
}

// NewAnimation creates an Animation. `fps` is frames per second for the
// animation (defaults to 12 if <= 0). `loop` controls whether the animation
// should wrap.
func NewAnimation(name string, frameCount, fps int, loop bool) *Animation {
	if frameCount < 0 {
		frameCount = 0
	}
	if fps <= 0 {
		fps = 12
	}
	return &Animation{
		Name:        name,
		FrameCount:  frameCount,
		FPS:         fps,
		Loop:        loop,
		ticksPerFrm: int(math.Max(1, math.Round(60.0/float64(fps)))),
	}
}

// AddFrameCallback registers fn for the given frame index. Out of range
// frames are ignored.
func (a *Animation) AddFrameCallback(frame int, fn FrameCallback) {
	if a == nil || fn == nil || frame < 0 || frame >= a.FrameCount {
		return
	}
	if a.callbacks == nil {
		a.callbacks = make(map[int][]FrameCallback)
	}
	a.callbacks[frame] = append(a.callbacks[frame], fn)
}

// ClearFrameCallbacks drops every registered frame callback.
func (a *Animation) ClearFrameCallbacks() {
	if a == nil {
		return
	}
	a.callbacks = nil
}

// CallbackFrames returns the frames that have callbacks, ascending.
func (a *Animation) CallbackFrames() []int {
	if a == nil {
		return nil
	}
	frames := make([]int, 0, len(a.callbacks))
	for f := range a.callbacks {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// Update advances the animation according to the configured FPS. Call once per
// game update (typically 60 times per second). The first update after
// creation, Reset or SetFrame enters the current frame.
func (a *Animation) Update() {
	if a == nil || a.FrameCount == 0 {
		return
	}
	if !a.entered {
		a.entered = true
		a.enter(a.current)
		return
	}
	if a.done {
		return
	}
	a.tick++
	if a.tick < a.ticksPerFrm {
		return
	}
	a.tick = 0
	next := a.current + 1
	if next >= a.FrameCount {
		if !a.Loop {
			a.done = true
			return
		}
		next = 0
	}
	a.current = next
	a.enter(next)
}

func (a *Animation) enter(frame int) {
	for _, fn := range a.callbacks[frame] {
		fn(a, frame)
	}
}

// Reset sets the animation back to the first frame.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.current = 0
	a.tick = 0
	a.entered = false
	a.done = false
}

// SetFrame jumps to a specific frame index.
func (a *Animation) SetFrame(i int) {
	if a == nil || a.FrameCount == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= a.FrameCount {
		i = a.FrameCount - 1
	}
	a.current = i
	a.tick = 0
	a.entered = false
	a.done = false
}

// Frame returns the current frame index.
func (a *Animation) Frame() int {
	if a == nil {
		return 0
	}
	return a.current
}

// Done reports whether a non-looping animation has finished.
func (a *Animation) Done() bool {
	return a != nil && a.done
}

// TicksPerFrame returns how many updates each frame is held for.
func (a *Animation) TicksPerFrame() int {
	if a == nil {
		return 0
	}
	return a.ticksPerFrm
}
