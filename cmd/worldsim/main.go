// Command worldsim generates a world and runs a scripted camera flight
// over it, exercising chunk streaming the way a game client would.
// Streaming statistics go to stderr and, with -diag-dir, to a
// compressed per-run JSONL file.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/dan-garden/2dcraft-sub000/internal/config"
	"github.com/dan-garden/2dcraft-sub000/internal/diag"
	"github.com/dan-garden/2dcraft-sub000/internal/world"
	"github.com/dan-garden/2dcraft-sub000/pkg/content"
)

func main() {
	cfg := config.DefaultConfig()

	cfgPath := flag.String("config", "", "JSON config file")
	frames := flag.Int("frames", 600, "number of frames to simulate")
	speed := flag.Float64("speed", 4, "camera speed in blocks per second")
	fps := flag.Float64("fps", 30, "simulated frames per second")

	flag.StringVar(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "chunk edge length in blocks")
	flag.IntVar(&cfg.ViewWidth, "view-width", cfg.ViewWidth, "viewport width in blocks")
	flag.IntVar(&cfg.ViewHeight, "view-height", cfg.ViewHeight, "viewport height in blocks")
	flag.IntVar(&cfg.Margin, "margin", cfg.Margin, "extra chunk ring around the viewport")
	flag.IntVar(&cfg.QueueBudget, "queue-budget", cfg.QueueBudget, "chunks generated per frame")
	flag.IntVar(&cfg.SpawnRadius, "spawn-radius", cfg.SpawnRadius, "force-loaded radius at spawn, in chunks")
	flag.IntVar(&cfg.MinSurface, "min-surface", cfg.MinSurface, "lowest surface height")
	flag.IntVar(&cfg.MaxSurface, "max-surface", cfg.MaxSurface, "highest surface height")
	flag.IntVar(&cfg.TransitionWidth, "transition-width", cfg.TransitionWidth, "biome height blend width in blocks")
	flag.StringVar(&cfg.ContentPack, "content-pack", cfg.ContentPack, "yaml content pack path")
	flag.StringVar(&cfg.DiagDir, "diag-dir", cfg.DiagDir, "diagnostics output directory")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *cfgPath != "" {
		fromFile, err := config.LoadFile(*cfgPath)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	reg := content.DefaultRegistry()
	if cfg.ContentPack != "" {
		if err := reg.LoadPackFile(cfg.ContentPack); err != nil {
			log.Error("load content pack", "path", cfg.ContentPack, "error", err)
			os.Exit(1)
		}
		log.Info("content pack applied", "path", cfg.ContentPack)
	}
	table, err := reg.Freeze()
	if err != nil {
		log.Error("freeze content", "error", err)
		os.Exit(1)
	}

	w, err := world.New(table, world.Options{
		Seed:            cfg.Seed,
		ChunkSize:       cfg.ChunkSize,
		MinSurface:      cfg.MinSurface,
		MaxSurface:      cfg.MaxSurface,
		TransitionWidth: cfg.TransitionWidth,
		ViewWidth:       float64(cfg.ViewWidth),
		ViewHeight:      float64(cfg.ViewHeight),
		Margin:          cfg.Margin,
		QueueBudget:     cfg.QueueBudget,
	}, log)
	if err != nil {
		log.Error("build world", "error", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	var rec *diag.Recorder
	if cfg.DiagDir != "" {
		rec, err = diag.NewRecorder(cfg.DiagDir, runID)
		if err != nil {
			log.Error("open diagnostics", "error", err)
			os.Exit(1)
		}
		defer rec.Close()
		log.Info("recording diagnostics", "path", rec.Path())
	}

	camX, camY := w.Spawn(0, cfg.SpawnRadius)
	log.Info("world ready",
		"run", runID,
		"seed", cfg.Seed,
		"spawn_x", camX, "spawn_y", camY,
		"biome", w.BiomeAt(int(camX), int(camY)).Name)

	// Fly right along the terrain, following the surface.
	dt := 1.0 / *fps
	vx := *speed
	for frame := 0; frame < *frames; frame++ {
		camX += vx * dt
		camY = float64(w.HeightAt(int(camX)) + 4)

		w.Step(camX, camY, vx, 0)

		if rec != nil {
			m := w.Manager()
			err := rec.Record(diag.FrameStats{
				Frame:     frame,
				CamX:      camX,
				CamY:      camY,
				Direction: m.Direction().String(),
				QueueLen:  m.QueueLen(),
				Visible:   m.VisibleCount(),
				Loaded:    m.LoadedCount(),
				Modified:  len(w.ModifiedBlocks()),
			})
			if err != nil {
				log.Error("record frame", "frame", frame, "error", err)
				os.Exit(1)
			}
		}
	}

	m := w.Manager()
	log.Info("simulation finished",
		"frames", *frames,
		"final_x", camX,
		"loaded", m.LoadedCount(),
		"visible", m.VisibleCount(),
		"queued", m.QueueLen())
}
