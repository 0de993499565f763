//go:build !(js && wasm)

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/voxelsplace/shipvox/config"
	"github.com/voxelsplace/shipvox/logging"
	"github.com/voxelsplace/shipvox/utils"
	"github.com/voxelsplace/shipvox/voxel"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

func usage() {
	fmt.Println("Usage: shipvox <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  layout input.json                               (lay a ship out and print bounds, counts and digest)")
	fmt.Println("  frame input.json [viewports.yaml] [WxH]         (frame every viewport and print the camera states)")
	fmt.Println("  view input.json                                 (interactive terminal viewer: arrows orbit, +/- zoom, r reload, q quit)")
	fmt.Println("  digest input1.json [input2.json ...]            (print the layout digest of each ship)")
	fmt.Println("  genship <amount> <output_dir> [zst]             (generate N random ship descriptions)")
	fmt.Println("Input files ending in .zst are zstd compressed. Settings are read from")
	fmt.Println("shipvox.{json,yaml,toml} in $SHIPVOX_CONFIG_DIR (default .) and SHIPVOX_* variables.")
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

// newLogger writes to stderr, or to cfg.LogFile when set. The viewer owns the
// terminal, so it logs nowhere without a log file.
func newLogger(cfg config.Config, interactive bool) (zerolog.Logger, func(), error) {
	if cfg.LogFile == "" {
		if interactive {
			return zerolog.Nop(), func() {}, nil
		}
		return logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, cfg.LogLevel, cfg.LogFormat), func() { f.Close() }, nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	configDir := os.Getenv("SHIPVOX_CONFIG_DIR")
	if configDir == "" {
		configDir = "."
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		fail(err)
	}
	opts := voxel.Options{CubeExtent: cfg.CubeExtent}

	log, closeLog, err := newLogger(cfg, os.Args[1] == "view")
	if err != nil {
		fail(err)
	}
	defer closeLog()
	log.Debug().Str("command", os.Args[1]).Str("configDir", configDir).Msg("starting")

	switch os.Args[1] {
	case "layout":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunLayout(os.Args[2], opts, os.Stdout); err != nil {
			fail(err)
		}
	case "frame":
		if len(os.Args) < 3 || len(os.Args) > 5 {
			usage()
			os.Exit(1)
		}
		viewports := cfg.ViewportsFile
		w, h := defaultWidth, defaultHeight
		for _, arg := range os.Args[3:] {
			var pw, ph int
			if n, _ := fmt.Sscanf(arg, "%dx%d", &pw, &ph); n == 2 {
				w, h = pw, ph
				continue
			}
			viewports = arg
		}
		if err := utils.RunFrame(os.Args[2], viewports, w, h, opts, os.Stdout); err != nil {
			fail(err)
		}
	case "view":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunView(os.Args[2], cfg, log); err != nil {
			fail(err)
		}
		return
	case "digest":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunDigest(os.Args[2:], opts, os.Stdout); err != nil {
			fail(err)
		}
	case "genship":
		if len(os.Args) != 4 && len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		var amt int
		if _, err := fmt.Sscan(os.Args[2], &amt); err != nil {
			fail(err)
		}
		compress := len(os.Args) == 5 && os.Args[4] == "zst"
		if err := utils.RunGenerateShips(amt, os.Args[3], compress); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
