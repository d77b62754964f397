package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-autocorrect/api"
	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/cli"
	"github.com/gcbaptista/go-autocorrect/internal/corpusfile"
	"github.com/gcbaptista/go-autocorrect/internal/engine"
	"github.com/gcbaptista/go-autocorrect/internal/ipc"
	"github.com/gcbaptista/go-autocorrect/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Define command-line flags
	var (
		help           = flag.Bool("help", false, "Show help message")
		version        = flag.Bool("version", false, "Show version information")
		configPath     = flag.String("config", "", "Path to the TOML configuration file (built-in defaults when empty)")
		port           = flag.Int("port", 0, "Port to run the server on (overrides config)")
		maxUploadMB    = flag.Int("max-upload", 0, "Maximum corpus upload size in MB (overrides config)")
		debug          = flag.Bool("debug", false, "Enable debug logging")
		corpusPath     = flag.String("corpus", "", "Corpus text file to load at startup")
		corpusName     = flag.String("name", "", "Name of the startup corpus (defaults to the file name)")
		maxSuggestions = flag.Int("max-suggestions", 0, "Suggestions per query (overrides config)")
		interactive    = flag.Bool("cli", false, "Run the interactive prompt on the startup corpus instead of the server")
		ipcMode        = flag.Bool("ipc", false, "Serve msgpack requests on stdin/stdout instead of the server")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Autocorrect - Single-word spelling correction from a reference corpus\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                              # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --corpus big.txt --cli       # Interactive prompt over big.txt\n", os.Args[0])
		fmt.Printf("  %s --corpus big.txt --ipc       # msgpack requests on stdin/stdout\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Autocorrect v1.0.0\n")
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyFlagOverrides(cfg, *port, *maxUploadMB, *maxSuggestions)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger.Configure(cfg.Server.LogLevel, *debug)

	eng := engine.NewEngine(cfg.Server.JobWorkers)
	defer eng.Stop()

	startupCorpus := ""
	if *corpusPath != "" {
		startupCorpus = *corpusName
		if startupCorpus == "" {
			startupCorpus = strings.TrimSuffix(filepath.Base(*corpusPath), filepath.Ext(*corpusPath))
		}
		if _, err := corpusfile.LoadInto(eng, cfg.CorpusDefaults(startupCorpus), *corpusPath); err != nil {
			log.Fatalf("Failed to load corpus: %v", err)
		}
	}

	switch {
	case *interactive || *ipcMode:
		if startupCorpus == "" {
			log.Fatalf("-cli and -ipc need a corpus file (-corpus)")
		}
		if *interactive {
			err = cli.NewPrompt(eng, startupCorpus, 0, os.Stdin, os.Stdout).Run()
		} else {
			err = ipc.NewServer(eng, startupCorpus, os.Stdin, os.Stdout).Serve()
		}
		if err != nil {
			eng.Stop()
			log.Fatalf("%v", err)
		}
	default:
		if err := runServer(cfg, eng); err != nil {
			eng.Stop()
			log.Fatalf("Server error: %v", err)
		}
	}
}

func applyFlagOverrides(cfg *config.Config, port, maxUploadMB, maxSuggestions int) {
	if port > 0 {
		cfg.Server.Port = port
	}
	if maxUploadMB > 0 {
		cfg.Server.MaxUploadMB = maxUploadMB
	}
	if maxSuggestions > 0 {
		cfg.Corpus.MaxSuggestions = maxSuggestions
	}
}

// runServer serves the HTTP API until SIGINT or SIGTERM.
func runServer(cfg *config.Config, eng *engine.Engine) error {
	serverLog := logger.New("http")

	gin.SetMode(gin.ReleaseMode)
	if log.GetLevel() <= log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestIDMiddleware())
	router.Use(api.RequestLoggerMiddleware(serverLog))
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(cfg.MaxUploadBytes()))
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	api.SetupRoutes(router, eng, cfg)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		serverLog.Infof("Starting server on port %d...", cfg.Server.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	serverLog.Infof("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
