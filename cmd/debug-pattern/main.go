package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/wiltonos/field-viz/pkg/geometry"
	"github.com/wiltonos/field-viz/pkg/render"
)

var (
	tagFlag       = flag.String("pattern", "all", "Pattern tag to render, or 'all'")
	sizeFlag      = flag.Int("size", 800, "Output image size in pixels (square)")
	coherenceFlag = flag.Float64("coherence", 0.85, "Coherence value used for coloring")
	rotationFlag  = flag.Float64("rotation", 0, "Rotation in radians")
	outFlag       = flag.String("out", ".", "Output directory")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var tags []geometry.Tag
	if strings.EqualFold(*tagFlag, "all") {
		tags = geometry.Tags()
	} else {
		tag, err := geometry.ParseTag(*tagFlag)
		if err != nil {
			log.Fatalf("Bad -pattern value: %v", err)
		}
		tags = []geometry.Tag{tag}
	}

	if err := os.MkdirAll(*outFlag, 0o755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	renderer := geometry.NewRenderer()
	renderer.SetCoherence(*coherenceFlag)

	size := *sizeFlag
	for _, tag := range tags {
		surface := render.NewImageSurface(size, size)
		surface.Clear(color.RGBA{8, 10, 15, 255})

		center := float64(size) / 2
		radius := float64(size) * 0.4
		renderer.Render(surface, tag, center, center, radius, *rotationFlag)

		path := fmt.Sprintf("%s/%s.png", *outFlag, tag)
		if err := writePNG(path, surface); err != nil {
			log.Fatalf("Error writing %s: %v", path, err)
		}
		log.Printf("Rendered %s", path)
	}
}

func writePNG(path string, surface *render.ImageSurface) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, surface.Image())
}
