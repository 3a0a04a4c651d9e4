package grove

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// OnUpdate, if set, is called once per frame after the stage has
	// processed input. A non-nil error stops the game loop.
	OnUpdate func() error
	// Draw, if set, renders the frame. The stage itself draws nothing.
	Draw func(screen *ebiten.Image)
}

type game struct {
	stage *Stage
	cfg   RunConfig
}

func (g *game) Update() error {
	g.stage.Update()
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives stage from the Ebitengine game loop until
// the window is closed or OnUpdate returns an error.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{stage: stage, cfg: cfg})
}
