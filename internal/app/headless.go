package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go-ball-capture/internal/event"
	"go-ball-capture/internal/input"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Drag is a scripted pointer gesture in client pixels.
type Drag struct {
	From mgl64.Vec2
	To   mgl64.Vec2
}

// ParseDrag reads a drag written as "x0,y0,x1,y1" in client pixels. An empty
// string means no drag.
func ParseDrag(s string) (*Drag, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, errors.Errorf("drag %q: want x0,y0,x1,y1", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "drag %q", s)
		}
		v[i] = f
	}
	return &Drag{From: mgl64.Vec2{v[0], v[1]}, To: mgl64.Vec2{v[2], v[3]}}, nil
}

// HeadlessConfig drives the scene without a window.
type HeadlessConfig struct {
	Hz    int           // wall-clock tick rate
	Ticks uint64        // stop after this many ticks, 0 runs until ctx is done
	Step  time.Duration // simulated time per tick, defaults to 1/Hz
	Drag  *Drag         // performed once the models are in the scene
}

type eventCounter struct {
	counts map[event.EventType]int
}

func (c *eventCounter) OnEvent(e event.Event) {
	c.counts[e.Type]++
}

// HeadlessReport summarizes what happened during a headless run.
type HeadlessReport struct {
	Ticks    uint64
	Events   map[event.EventType]int
	Phase    Phase
	GameTime time.Duration
}

// RunHeadless loads the scene, optionally performs one drag and steps the
// game on a ticker until Ticks is reached or ctx is cancelled.
func RunHeadless(ctx context.Context, g *Game, cfg HeadlessConfig) (HeadlessReport, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return HeadlessReport{}, errors.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	if cfg.Step <= 0 {
		cfg.Step = d
	}

	counter := &eventCounter{counts: make(map[event.EventType]int)}
	g.EventDispatcher.SubscribeAll(counter)
	defer g.EventDispatcher.UnsubscribeAll(counter)

	report := HeadlessReport{Events: counter.counts}

	g.Start()
	if err := g.Registry.Await(ctx); err != nil {
		return report, errors.Wrap(err, "wait for models")
	}
	if cfg.Drag != nil {
		g.logger.Info("performing scripted drag",
			zap.Float64s("from", cfg.Drag.From[:]),
			zap.Float64s("to", cfg.Drag.To[:]))
		g.PointerDown(input.PointerEvent{Button: input.ButtonPrimary, X: cfg.Drag.From.X(), Y: cfg.Drag.From.Y()})
		g.PointerMove(input.PointerEvent{Button: input.ButtonPrimary, X: cfg.Drag.To.X(), Y: cfg.Drag.To.Y()})
		g.PointerUp(input.PointerEvent{Button: input.ButtonPrimary, X: cfg.Drag.To.X(), Y: cfg.Drag.To.Y()})
	}

	t := time.NewTicker(d)
	defer t.Stop()

	finish := func() HeadlessReport {
		report.Phase = g.Phase()
		report.GameTime = g.GameTime()
		return report
	}
	for {
		select {
		case <-ctx.Done():
			return finish(), ctx.Err()
		case <-t.C:
			g.Step(cfg.Step)
			report.Ticks++
			if cfg.Ticks > 0 && report.Ticks >= cfg.Ticks {
				return finish(), nil
			}
		}
	}
}
