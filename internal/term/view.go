// Package term draws the scene top-down in a terminal and feeds mouse drags
// back into the game.
package term

import (
	"context"
	"image"
	"image/color"
	"math"
	"time"

	"go-ball-capture/internal/app"
	"go-ball-capture/internal/backdrop"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/input"
	"go-ball-capture/internal/types"
	"go-ball-capture/pkg/render"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const (
	creatureGlyph = '@'
	ballGlyph     = 'o'
	particleGlyph = '*'
)

// View renders one game onto a tcell screen.
type View struct {
	game       *app.Game
	screen     tcell.Screen
	background image.Image
	fitted     *image.RGBA
	width      int
	height     int
	buttons    tcell.ButtonMask
	logger     *zap.Logger
}

// NewView creates a view; background may be nil.
func NewView(screen tcell.Screen, game *app.Game, background image.Image, logger *zap.Logger) *View {
	v := &View{
		game:       game,
		screen:     screen,
		background: background,
		logger:     logger,
	}
	v.Resize()
	return v
}

// Resize refits the background and the pointer viewport to the screen size.
func (v *View) Resize() {
	v.width, v.height = v.screen.Size()
	v.game.SetViewport(float64(v.width), float64(v.height))
	if v.background != nil {
		v.fitted = backdrop.Fit(v.background, v.width, v.height)
	} else {
		v.fitted = backdrop.Solid(config.BackgroundColor, v.width, v.height)
	}
}

func (v *View) projection() render.TopDown {
	return render.TopDown{
		Width:  float64(v.width),
		Height: float64(v.height),
		UnitX:  config.TerminalCellsPerUnitX,
		UnitZ:  config.TerminalCellsPerUnitZ,
	}
}

// Project maps a world position to a terminal cell, looking down the y axis.
func (v *View) Project(p mgl64.Vec3) (int, int) {
	col, row := v.projection().Project(p)
	return int(math.Floor(col)), int(math.Floor(row))
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				v.logger.Info("reset requested")
				v.game.Reset()
			}
		}
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
		v.Resize()
	}
	return true
}

// handleMouse turns tcell's button state snapshots into press, move and
// release events.
func (v *View) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pe := input.PointerEvent{Button: input.ButtonPrimary, X: float64(x), Y: float64(y)}
	was := v.buttons&tcell.Button1 != 0
	now := ev.Buttons()&tcell.Button1 != 0
	v.buttons = ev.Buttons()

	switch {
	case now && !was:
		v.game.PointerDown(pe)
	case now && was:
		v.game.PointerMove(pe)
	case !now && was:
		v.game.PointerUp(pe)
	}
}

// Draw paints the background, the shadow plane, the models, the particles
// and the status line.
func (v *View) Draw() {
	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			v.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(toTcell(v.fitted.RGBAAt(x, y))))
		}
	}

	fx0, fy0, fx1, fy1 := v.projection().Square(config.PlaneSize)
	x0, y0 := int(math.Floor(fx0)), int(math.Floor(fy0))
	x1, y1 := int(math.Floor(fx1)), int(math.Floor(fy1))
	for y := max(y0, 0); y < min(y1, v.height); y++ {
		for x := max(x0, 0); x < min(x1, v.width); x++ {
			bg := render.DarkenColor(v.fitted.RGBAAt(x, y))
			v.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(toTcell(bg)))
		}
	}

	for _, burst := range v.game.ECS.Particles {
		for _, p := range burst.Points {
			v.put(p, particleGlyph, burst.Color)
		}
	}
	glyphs := []struct {
		role  types.Role
		glyph rune
	}{{types.RoleCreature, creatureGlyph}, {types.RoleBall, ballGlyph}}
	for _, g := range glyphs {
		tr, model, ok := v.game.Entity(g.role)
		if !ok || len(model.Nodes) == 0 {
			continue
		}
		v.put(tr.Position, g.glyph, render.Shade(*model.Nodes[0].Material))
	}

	v.text(0, 0, v.game.StatusLine())
	v.text(0, v.height-1, "drag to throw · r reset · q quit")
	v.screen.Show()
}

func (v *View) put(p mgl64.Vec3, glyph rune, c color.RGBA) {
	x, y := v.Project(p)
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return
	}
	_, _, style, _ := v.screen.GetContent(x, y)
	v.screen.SetContent(x, y, glyph, nil, style.Foreground(toTcell(c)).Bold(true))
}

func (v *View) text(x, y int, s string) {
	style := tcell.StyleDefault.Foreground(toTcell(config.HUDTextColor)).Background(tcell.ColorBlack)
	for _, r := range s {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run drives the game at hz until ctx is cancelled or the user quits.
func (v *View) Run(ctx context.Context, hz int) error {
	if hz <= 0 {
		hz = config.TargetFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	v.screen.EnableMouse()
	defer v.screen.DisableMouse()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	v.game.Start()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			v.game.Update(now.Sub(last).Seconds())
			last = now
			v.Draw()
		}
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
