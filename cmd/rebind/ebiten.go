package main

import (
	"context"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dshills/rebind/internal/app"
	"github.com/dshills/rebind/internal/input/device/ebitendev"
)

const (
	windowWidth  = 800
	windowHeight = 480
)

type ebitenGame struct {
	ctx context.Context
	app *app.Application
	dev *ebitendev.Device
}

func (g *ebitenGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.dev.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.app.NextProfile()
	}
	if err := g.app.Frame(g.ctx); err != nil {
		return ebiten.Termination
	}
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, strings.Join(g.app.Lines(), "\n"))
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// runEbiten opens a window showing the session until it is closed or ctx
// is cancelled.
func runEbiten(ctx context.Context, a *app.Application, dev *ebitendev.Device) error {
	ebiten.SetWindowTitle("rebind")
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&ebitenGame{ctx: ctx, app: a, dev: dev})
}
