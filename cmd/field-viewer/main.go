package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/wiltonos/field-viz/pkg/field"
	"github.com/wiltonos/field-viz/pkg/geometry"
	"github.com/wiltonos/field-viz/pkg/vizengine"
)

var (
	headlessFlag = flag.Bool("headless", false, "Run without a local window (Xvfb rendering active)")
	renderWidth  = flag.Int("width", 1920, "Internal rendering width")
	renderHeight = flag.Int("height", 1080, "Internal rendering height")
	windowWidth  = flag.Int("window-width", 1280, "Initial window width (non-headless only)")
	windowHeight = flag.Int("window-height", 720, "Initial window height (non-headless only)")
	tpsFlag      = flag.Int("tps", 30, "Ticks per second (engine updates)")
	serverFlag   = flag.String("server", "", "Field server websocket URL (empty runs a local synthetic source)")
	seedFlag     = flag.Int64("seed", 0, "Synthetic source seed (0 uses the clock)")
	cadenceFlag  = flag.Duration("cadence", 1500*time.Millisecond, "Synthetic source emit cadence")
	tagFlag      = flag.String("pattern", "", "Pin a single pattern instead of cycling (e.g. flower_of_life)")
	cycleFlag    = flag.Duration("cycle", 20*time.Second, "How often to rotate the active pattern")
	audioDir     = flag.String("audio-dir", "", "Directory of mp3 files for ambient audio (empty disables)")
	captureDir   = flag.String("capture-dir", "", "Directory for periodic PNG frame captures (empty disables)")
	captureEvery = flag.Duration("capture-every", time.Minute, "Interval between frame captures")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	engine := vizengine.NewEngine(*renderWidth, *renderHeight)
	engine.FPS = *tpsFlag
	engine.CycleEvery = *cycleFlag
	engine.FrameCaptureDir = *captureDir
	engine.CaptureEvery = *captureEvery

	if *tagFlag != "" {
		tag, err := geometry.ParseTag(*tagFlag)
		if err != nil {
			log.Fatalf("Bad -pattern value: %v", err)
		}
		engine.SetTag(tag)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stopSource func()
	if *serverFlag != "" {
		client := field.NewClient(*serverFlag, engine.SetSample)
		go client.Run(ctx)
		stopSource = cancel
	} else {
		seed := *seedFlag
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gen := field.NewGenerator(seed)
		stopSource = gen.Run(*cadenceFlag, engine.SetSample)
		log.Printf("Running with local synthetic field source (seed %d)", seed)
	}
	defer stopSource()

	var player *vizengine.AmbientPlayer
	if *audioDir != "" {
		player = engine.StartAmbientAudio(*audioDir)
		defer player.Shutdown()
	}

	go engine.StartMetricsLoop()

	ebiten.SetTPS(*tpsFlag)
	if *headlessFlag {
		log.Println("Running in HEADLESS mode (Rendering active).")
	} else {
		ebiten.SetWindowSize(*windowWidth, *windowHeight)
		ebiten.SetWindowTitle("WiltonOS Field Viewer")
	}
	if err := ebiten.RunGame(engine); err != nil {
		log.Fatal(err)
	}
}
