package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/docopt/docopt-go"
	"github.com/joho/godotenv"

	"github.com/hrishi7/lingocare-studio/internal/config"
	"github.com/hrishi7/lingocare-studio/internal/curriculum"
	"github.com/hrishi7/lingocare-studio/internal/generate"
	"github.com/hrishi7/lingocare-studio/internal/identity"
	"github.com/hrishi7/lingocare-studio/internal/logging"
)

const StudioVersion = "0.1.0"

func main() {
	usage := `Lingocare curriculum studio.

Streams a curriculum generation from a document upload and prints the tree
as it materializes. The default service URL is http://localhost:8080.

Usage:
    studio generate --file=<path> [--api_url=<url>] [--no-stream] [--out=<path>]
    studio health [--api_url=<url>]

Options:
    -h --help          Show this screen.
    --version          Show version.
    --file=<path>      Document to upload (PDF).
    --api_url=<url>    Override the service base URL.
    --no-stream        Use the single-response endpoint instead of streaming.
    --out=<path>       Write the final curriculum JSON to this file.`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], StudioVersion)
	if err != nil {
		panic(err)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg := loadConfig(opts)

	logger, err := logging.New(os.Getenv("STUDIO_LOG_MODE"))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	store := curriculum.NewStore(identity.Random{})
	gen := generate.New(cfg, store, logger)

	if health, _ := opts.Bool("health"); health {
		runHealth(gen)
		return
	}
	runGenerate(gen, opts)
}

func loadConfig(opts docopt.Opts) *config.Config {
	cfgPath := os.Getenv("STUDIO_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	if url, _ := opts.String("--api_url"); url != "" {
		cfg.API.BaseURL = url
	}
	return cfg
}

func runHealth(gen *generate.Generator) {
	status, err := gen.Health(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "service unreachable: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("status: %s\nprovider: %s\ntimestamp: %s\n", status.Status, status.AIProvider, status.Timestamp)
}

func runGenerate(gen *generate.Generator, opts docopt.Opts) {
	path, _ := opts.String("--file")
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open upload: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var (
		tree *curriculum.Curriculum
		name = filepath.Base(path)
		ctx  = context.Background()
	)

	if noStream, _ := opts.Bool("--no-stream"); noStream {
		tree, err = gen.FromUploadSync(ctx, f, name)
	} else {
		tree, err = gen.FromUpload(ctx, f, name, func(s generate.Status) {
			fmt.Printf("[%3d%%] %-22s %s (%d modules)\n", s.Percent, s.Stage, s.Message, s.Modules)
		})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	printTree(tree)

	if out, _ := opts.String("--out"); out != "" {
		data, err := json.MarshalIndent(tree, "", "  ")
		if err == nil {
			err = os.WriteFile(out, data, 0o644)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot write %s: %v\n", out, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", out)
	}
}

func printTree(c *curriculum.Curriculum) {
	fmt.Printf("\n%s\n", c.Title)
	for _, m := range c.Modules {
		fmt.Printf("  %s\n", m.Title)
		for _, tp := range m.Topics {
			fmt.Printf("    %s\n", tp.Title)
			for _, l := range tp.Lessons {
				fmt.Printf("      %s\n", l.Title)
			}
		}
	}
}
