// Package topdown is a flat 2D window onto the scene drawn with ebiten. It
// looks down the y axis like the terminal view, at pixel resolution.
package topdown

import (
	"context"
	"fmt"
	"image"
	"time"

	"go-ball-capture/internal/app"
	"go-ball-capture/internal/backdrop"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/input"
	"go-ball-capture/internal/types"
	"go-ball-capture/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

const helpText = "drag to throw · r reset · q quit"

// Радиусы фигур в мировых единицах
const (
	creatureRadius = 0.45
	ballRadius     = 0.2
)

// AppGame implements ebiten.Game.
type AppGame struct {
	ctx            context.Context
	game           *app.Game
	background     image.Image
	fitted         *ebiten.Image
	fittedW        int
	fittedH        int
	width          int
	height         int
	lastCursor     image.Point
	lastUpdateTime time.Time
	logger         *zap.Logger
}

// NewAppGame wraps a started game. background may be nil. Update returns
// ebiten.Termination once ctx is done.
func NewAppGame(ctx context.Context, game *app.Game, background image.Image, logger *zap.Logger) *AppGame {
	return &AppGame{
		ctx:            ctx,
		game:           game,
		background:     background,
		width:          config.ScreenWidth,
		height:         config.ScreenHeight,
		lastUpdateTime: time.Now(),
		logger:         logger,
	}
}

func (a *AppGame) Update() error {
	if a.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.logger.Info("reset requested")
		a.game.Reset()
	}

	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	a.lastUpdateTime = now

	a.handlePointer()
	a.game.Update(deltaTime)
	return nil
}

// handlePointer turns ebiten's mouse state into press, move and release.
func (a *AppGame) handlePointer() {
	x, y := ebiten.CursorPosition()
	ev := input.PointerEvent{Button: input.ButtonPrimary, X: float64(x), Y: float64(y)}
	cursor := image.Pt(x, y)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		a.game.PointerDown(ev)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		a.game.PointerUp(ev)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if cursor != a.lastCursor {
			a.game.PointerMove(ev)
		}
	}
	a.lastCursor = cursor
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.drawBackground(screen)

	proj := a.projection()
	x0, y0, x1, y1 := proj.Square(config.PlaneSize)
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), config.PlaneColor, false)

	for _, burst := range a.game.ECS.Particles {
		r := float32(burst.Size / 2 * config.TopDownPixelsPerUnit)
		for _, p := range burst.Points {
			x, y := proj.Project(p)
			vector.DrawFilledCircle(screen, float32(x), float32(y), r, burst.Color, true)
		}
	}

	shapes := []struct {
		role   types.Role
		radius float64
	}{{types.RoleCreature, creatureRadius}, {types.RoleBall, ballRadius}}
	for _, s := range shapes {
		tr, model, ok := a.game.Entity(s.role)
		if !ok || len(model.Nodes) == 0 {
			continue
		}
		x, y := proj.Project(tr.Position)
		r := float32(s.radius * tr.Scale * config.TopDownPixelsPerUnit)
		vector.DrawFilledCircle(screen, float32(x), float32(y), r, render.Shade(*model.Nodes[0].Material), true)
	}

	ebitenutil.DebugPrintAt(screen, a.game.StatusLine(), 8, 8)
	ebitenutil.DebugPrintAt(screen, helpText, 8, a.height-20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f fps", ebiten.ActualFPS()), a.width-64, 8)
}

// drawBackground refits the background after the window size changed.
func (a *AppGame) drawBackground(screen *ebiten.Image) {
	if a.background == nil {
		screen.Fill(config.BackgroundColor)
		return
	}
	if a.fitted == nil || a.fittedW != a.width || a.fittedH != a.height {
		if a.fitted != nil {
			a.fitted.Deallocate()
		}
		a.fitted = ebiten.NewImageFromImage(backdrop.Fit(a.background, a.width, a.height))
		a.fittedW, a.fittedH = a.width, a.height
	}
	screen.DrawImage(a.fitted, nil)
}

// Layout follows the window size one to one.
func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.game.SetViewport(float64(a.width), float64(a.height))
	}
	return outsideWidth, outsideHeight
}

func (a *AppGame) projection() render.TopDown {
	return render.TopDown{
		Width:  float64(a.width),
		Height: float64(a.height),
		UnitX:  config.TopDownPixelsPerUnit,
		UnitZ:  config.TopDownPixelsPerUnit,
	}
}
