package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/audio"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/config"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/download"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/httpx"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/ingest"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/library"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/pathname"
)

func main() {
	var (
		fileFlag    = flag.String("file", "", "Local audio file to ingest")
		sourceFlag  = flag.String("source", "", "Remote source identifier (URL or video ID)")
		configFlag  = flag.String("config", "", "Path to config file")
		rootFlag    = flag.String("root", "", "Library root directory (overrides config)")
		adapterFlag = flag.String("adapter", "", "Download adapter (overrides config)")
		dryRunFlag  = flag.Bool("dry-run", false, "Inspect without storing")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	if *fileFlag == "" && *sourceFlag == "" {
		fmt.Println("navidrome-ingest - place audio tracks on the canonical library layout")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  navidrome-ingest -file <path> [options]")
		fmt.Println("  navidrome-ingest -source <identifier> [options]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	settings, err := config.Load(*configFlag)
	if err != nil {
		log.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *rootFlag != "" {
		settings.RootDirectory = *rootFlag
	}
	if *adapterFlag != "" {
		settings.DownloadAdapter = *adapterFlag
	}
	if err := settings.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("interrupted, cancelling")
		cancel()
	}()

	pipeline, err := buildPipeline(settings, log)
	if err != nil {
		log.Error("assembling pipeline", "error", err)
		os.Exit(1)
	}

	src := ingest.Source{Name: *sourceFlag, Remote: *sourceFlag}
	if *fileFlag != "" {
		data, err := os.ReadFile(*fileFlag)
		if err != nil {
			log.Error("reading upload", "file", *fileFlag, "error", err)
			os.Exit(1)
		}
		src = ingest.Source{Name: *fileFlag, Upload: data}
	}

	data, err := pipeline.Acquire(ctx, src)
	if err != nil {
		log.Error("acquiring source", "source", src.Name, "error", err)
		os.Exit(1)
	}

	info, meta, err := pipeline.Inspect(data)
	if err != nil {
		log.Error("inspecting container", "source", src.Name, "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s - %s (%s)\n", meta.Artist(), meta.Title, meta.Album)
	fmt.Printf("  %ds, %d kbps, %d Hz, %s\n",
		info.DurationSeconds, info.BitrateKbps, info.SampleRateHz, info.Mode)

	if *dryRunFlag {
		fmt.Println("[dry run - not storing]")
		return
	}

	path, err := pipeline.Store(data, meta)
	if err != nil {
		log.Error("storing track", "source", src.Name, "error", err)
		os.Exit(1)
	}
	fmt.Printf("stored at %s\n", path)
}

func buildPipeline(settings *config.Settings, log *slog.Logger) (*ingest.Pipeline, error) {
	codec, err := audio.NewCodec(settings.FileExtension)
	if err != nil {
		return nil, err
	}

	client := httpx.NewClient(time.Duration(settings.HTTPTimeoutSeconds) * time.Second)
	adapter, err := download.Select(settings.DownloadAdapter, settings, client, log)
	if err != nil {
		return nil, err
	}

	builder := pathname.NewBuilder(settings.RootDirectory, settings.FileExtension)
	files := library.NewManager(settings.RootDirectory, log)
	covers := audio.NewImageService(settings.CoverImageSize)

	return ingest.New(builder, files, codec, audio.NewExtractor(), covers, adapter, log), nil
}
