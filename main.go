package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"net/http"
	_ "net/http/pprof"

	_ "github.com/silbinarywolf/preferdiscretegpu"

	eb "github.com/hajimehoshi/ebiten/v2"
)

var (
	ScreenWidth  float64 = 1280
	ScreenHeight float64 = 800
)

var ErrorLogger *log.Logger = log.New(os.Stderr, "ERROR: ", log.Lshortfile)
var InfoLogger *log.Logger = log.New(os.Stdout, "INFO: ", log.Lshortfile)

var (
	FlagPProf    bool
	FlagProjects string
	FlagTheme    string
	FlagTuning   string
	FlagSeed     int64
	FlagFish     int
)

func init() {
	flag.BoolVar(&FlagPProf, "pprof", false, "enable pprof")
	flag.StringVar(&FlagProjects, "projects", "", "path to a projects json feed")
	flag.StringVar(&FlagTheme, "theme", "", "path to a theme json file")
	flag.StringVar(&FlagTuning, "tuning", "", "path to a tuning json file")
	flag.Int64Var(&FlagSeed, "seed", 0, "fish rng seed (0 = time)")
	flag.IntVar(&FlagFish, "fish", 0, "fish count override")
	flag.BoolVar(&FlagForceLowTier, "lowtier", false, "force the low fidelity water path")
}

type App struct {
	ShowDebugConsole bool

	Game *Game
}

func NewApp() (*App, error) {
	a := new(App)

	game, err := NewGame(ScreenWidth, ScreenHeight, FlagSeed)
	if err != nil {
		return nil, err
	}
	a.Game = game

	return a, nil
}

func (a *App) Update() error {
	ClearDebugMsgs()

	// ==========================
	// update global timer
	// ==========================
	UpdateGlobalTimer()

	DebugPrint("FPS", fmt.Sprintf("%.2f", eb.ActualFPS()))
	DebugPrint("TPS", fmt.Sprintf("%.2f", eb.ActualTPS()))

	if IsKeyJustPressed(ShowDebugConsoleKey) {
		a.ShowDebugConsole = !a.ShowDebugConsole
	}

	return a.Game.Update()
}

func (a *App) Draw(dst *eb.Image) {
	a.Game.Draw(dst)

	if a.ShowDebugConsole {
		DrawDebugMsgs(dst)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	ScreenWidth = f64(outsideWidth)
	ScreenHeight = f64(outsideHeight)

	return a.Game.Layout(outsideWidth, outsideHeight)
}

func main() {
	flag.Parse()

	if FlagPProf {
		go func() {
			InfoLogger.Print("initializing pprof")
			InfoLogger.Print(http.ListenAndServe("localhost:6060", nil))
		}()
	}

	InitClipboardManager()
	InitInputManager()

	if FlagTuning != "" {
		LoadTuningTable(FlagTuning)
	}
	if FlagTheme != "" {
		LoadTheme(FlagTheme)
	}
	if FlagFish > 0 {
		TheTuningTable.FishCount = FlagFish
	}

	LoadAssets()
	LoadProjectFeed(FlagProjects)

	app, err := NewApp()
	if err != nil {
		ErrorLogger.Fatalf("failed to start : %v", err)
	}

	eb.SetVsyncEnabled(true)
	eb.SetWindowSize(int(ScreenWidth), int(ScreenHeight))
	eb.SetWindowResizingMode(eb.WindowResizingModeEnabled)
	eb.SetWindowTitle("portfolio")

	if err := eb.RunGame(app); err != nil {
		panic(err)
	}
}
