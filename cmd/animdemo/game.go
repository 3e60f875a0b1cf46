package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/animevents/animevent"
	"github.com/milk9111/animevents/diag"
	"github.com/milk9111/animevents/ecs"
	"github.com/milk9111/animevents/ecs/component"
	ecssystem "github.com/milk9111/animevents/ecs/system"
	"github.com/milk9111/animevents/prefabs"
	"github.com/milk9111/animevents/script"
	"github.com/milk9111/animevents/system"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 480
	screenHeight = 270
	logLines     = 8
	flashTicks   = 6
)

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

var palette = []color.RGBA{
	colornames.Steelblue,
	colornames.Seagreen,
	colornames.Goldenrod,
	colornames.Indianred,
	colornames.Mediumpurple,
	colornames.Darkorange,
	colornames.Teal,
	colornames.Slategray,
}

type Game struct {
	clipName string
	world    *ecs.World
	knight   ecs.Entity
	animator *system.Animator
	sheet    *ebiten.Image
	log      diag.Logger
	watcher  *prefabs.Watcher

	mu      sync.Mutex
	fired   []string
	flash   int
	frames  int
	pending *prefabs.AnimationSpec
}

func NewGame(clipName, bindingsName string, logger diag.Logger) (*Game, error) {
	spec, err := prefabs.LoadAnimationSpec(clipName)
	if err != nil {
		return nil, err
	}
	bindings, err := prefabs.LoadBindingSpec(bindingsName)
	if err != nil {
		return nil, err
	}

	g := &Game{clipName: clipName, world: ecs.NewWorld(), log: logger}
	g.world.AddSystem(ecssystem.NewAnimationSystem())

	g.animator, err = system.NewAnimator(spec, nil)
	if err != nil {
		return nil, err
	}
	g.animator.Trace = g.trace

	g.knight = ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, g.knight, component.AnimationComponent, g.animator); err != nil {
		return nil, err
	}
	reg, err := ecs.AttachAnimationEvents(g.world, g.knight, animevent.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if _, err := script.Bind(reg, bindings, nil, script.WithLogger(logger)); err != nil {
		return nil, err
	}

	g.sheet = buildSheet(spec)
	return g, nil
}

// Watch reloads the clip spec when it changes on disk. The new spec is applied
// on the next Update.
func (g *Game) Watch(dir string) error {
	w, err := prefabs.NewWatcher(dir)
	if err != nil {
		return err
	}
	g.watcher = w
	lastMod, _ := prefabs.ModTime(g.clipName)
	go func() {
		for path := range w.Events {
			if !strings.HasSuffix(path, g.clipName) {
				continue
			}
			mod, ok := prefabs.ModTime(g.clipName)
			if !ok || !mod.After(lastMod) {
				continue
			}
			lastMod = mod
			spec, err := prefabs.LoadAnimationSpec(g.clipName)
			if err != nil {
				g.log.Errorf("reload %s: %v", path, err)
				continue
			}
			g.mu.Lock()
			g.pending = spec
			g.mu.Unlock()
		}
	}()
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) trace(clip string, frame int, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fired = append(g.fired, fmt.Sprintf("%6d %s[%d] %s", g.frames, clip, frame, name))
	if len(g.fired) > logLines {
		g.fired = g.fired[len(g.fired)-logLines:]
	}
	g.flash = flashTicks
}

func (g *Game) Update() error {
	g.frames++

	g.mu.Lock()
	spec := g.pending
	g.pending = nil
	g.mu.Unlock()
	if spec != nil {
		if err := g.animator.Load(spec); err != nil {
			g.log.Errorf("reload %s: %v", g.clipName, err)
		} else {
			g.sheet.Deallocate()
			g.sheet = buildSheet(spec)
			g.log.Infof("reloaded %s", g.clipName)
		}
	}

	clips := g.animator.Clips()
	for i, name := range clips {
		if i >= len(digitKeys) {
			break
		}
		if inpututil.IsKeyJustPressed(digitKeys[i]) {
			_ = g.animator.Play(name)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		name, _ := g.animator.Current()
		_ = g.animator.Play(name)
	}

	g.world.Update()

	g.mu.Lock()
	if g.flash > 0 {
		g.flash--
	}
	g.mu.Unlock()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	flash := g.flash
	fired := append([]string(nil), g.fired...)
	g.mu.Unlock()

	if flash > 0 {
		screen.Fill(colornames.Darkslategray)
	}

	name, anim := g.animator.Current()
	if def, ok := g.animator.Clip(name); ok && anim != nil {
		x := (def.ColStart + anim.Frame()) * def.FrameW
		y := def.Row * def.FrameH
		frame := g.sheet.SubImage(image.Rect(x, y, x+def.FrameW, y+def.FrameH)).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(3, 3)
		op.GeoM.Translate(float64(screenWidth/2-def.FrameW*3/2), float64(screenHeight/2-def.FrameH*3/2))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(frame, op)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TPS: %.1f  clip: %s  keys 1-%d switch, space restarts\n", ebiten.ActualTPS(), name, len(g.animator.Clips()))
	for _, line := range fired {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// buildSheet paints a placeholder spritesheet laid out the way the spec
// describes: one row per clip, frames left to right.
func buildSheet(spec *prefabs.AnimationSpec) *ebiten.Image {
	w, h := 1, 1
	for _, def := range spec.Defs {
		if r := (def.ColStart + def.FrameCount) * def.FrameW; r > w {
			w = r
		}
		if b := (def.Row + 1) * def.FrameH; b > h {
			h = b
		}
	}
	sheet := ebiten.NewImage(w, h)
	for _, def := range spec.Defs {
		for f := 0; f < def.FrameCount; f++ {
			x := (def.ColStart + f) * def.FrameW
			y := def.Row * def.FrameH
			c := palette[(def.Row+f)%len(palette)]
			// body shrinks and grows across the clip so frames are visible
			inset := f % (def.FrameW/4 + 1)
			cell := image.Rect(x+inset, y+inset, x+def.FrameW-inset, y+def.FrameH-inset)
			sheet.SubImage(cell).(*ebiten.Image).Fill(c)
		}
	}
	return sheet
}
