// Command terrain-server serves composited wilderness terrain over HTTP. It
// reads the builder geometry catalog from sqlite, fetches base terrain from
// the upstream generator, and answers point and rectangle queries.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/LuminariMUD/wildeditor-sub001/internal/api"
	"github.com/LuminariMUD/wildeditor-sub001/internal/config"
	"github.com/LuminariMUD/wildeditor-sub001/internal/geomstore"
	"github.com/LuminariMUD/wildeditor-sub001/internal/oracle"
	"github.com/LuminariMUD/wildeditor-sub001/internal/rediscache"
	"github.com/LuminariMUD/wildeditor-sub001/internal/timeutil"
	"github.com/LuminariMUD/wildeditor-sub001/internal/version"
	"github.com/LuminariMUD/wildeditor-sub001/internal/wilderness"
)

var (
	listen     = flag.String("listen", ":8080", "Listen address")
	dbPath     = flag.String("db", "geometry.db", "Path to the geometry catalog database")
	configPath = flag.String("config", "", "Path to a tuning config JSON file (optional)")
	oracleURL  = flag.String("oracle", "", "Base URL of the terrain generator service")
	devMode    = flag.Bool("dev", false, "Run with a built-in deterministic oracle instead of the generator")
	fixtures   = flag.String("fixtures", "", "JSON fixture file for the dev oracle (optional)")
)

func main() {
	flag.Parse()

	// .env is optional; flags and real env win.
	_ = godotenv.Load()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	tuning := config.EmptyTuningConfig()
	if *configPath != "" {
		var err error
		tuning, err = config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load tuning config: %v", err)
		}
	}

	store, err := geomstore.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open geometry catalog: %v", err)
	}
	defer store.Close()

	// Sector table totality is a startup check; a hole here must never
	// surface mid-request.
	compositor, err := wilderness.NewCompositor(wilderness.DefaultSectorTable(), wilderness.Limits{
		ElevationMin:   tuning.GetElevationMin(),
		ElevationMax:   tuning.GetElevationMax(),
		TemperatureMin: tuning.GetTemperatureMin(),
		TemperatureMax: tuning.GetTemperatureMax(),
	})
	if err != nil {
		log.Fatalf("Startup validation failed: %v", err)
	}

	var source wilderness.Oracle
	if *devMode {
		source = loadDevOracle(*fixtures)
	} else {
		if *oracleURL == "" {
			*oracleURL = os.Getenv("ORACLE_URL")
		}
		if *oracleURL == "" {
			log.Fatal("Oracle URL is required (set -oracle or ORACLE_URL), or pass -dev")
		}
		source = oracle.NewClient(nil, *oracleURL)
	}

	var cache wilderness.Cache
	if rc := rediscache.OpenFromEnv(); rc != nil {
		log.Printf("Using Redis sample cache at %s", os.Getenv("REDIS_ADDR"))
		cache = rc
	} else {
		cache = wilderness.NewMemoryCache(timeutil.RealClock{})
	}

	holder := wilderness.NewSnapshotHolder()
	poller := geomstore.NewPoller(store, holder, tuning.GetPollInterval(), timeutil.RealClock{})

	eval := wilderness.NewEvaluator(holder, source, compositor, cache, wilderness.EvaluatorConfig{
		MaxBatchPoints: tuning.GetMaxBatchPoints(),
		Workers:        tuning.GetWorkerPoolSize(),
		CacheTTL:       tuning.GetCacheTTL(),
	})

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load the catalog before serving so the first request sees real geometry.
	if err := poller.RefreshNow(ctx); err != nil {
		log.Fatalf("Failed to load geometry snapshot: %v", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("geometry poller stopped: %v", err)
		}
	}()

	apiServer := api.NewServer(eval, tuning)
	mux := apiServer.ServeMux()
	store.AttachAdminRoutes(mux)

	httpServer := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(mux),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("terrain-server %s listening on %s", version.Version, *listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Print("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	wg.Wait()
}

// loadDevOracle builds the deterministic dev-mode oracle, optionally seeded
// from a JSON fixtures file mapping coordinates to samples.
func loadDevOracle(path string) wilderness.Oracle {
	fx := &oracle.Fixture{
		Samples: make(map[wilderness.Coordinate]wilderness.BaseTerrainSample),
		Default: wilderness.BaseTerrainSample{
			Elevation:   120,
			Temperature: 18,
			Moisture:    128,
			Sector:      wilderness.SectorField,
			SectorName:  "Field",
		},
	}
	if path == "" {
		return fx
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to open fixtures file: %v", err)
	}
	var entries []struct {
		X      int                         `json:"x"`
		Y      int                         `json:"y"`
		Sample wilderness.BaseTerrainSample `json:"sample"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("failed to parse fixtures file: %v", err)
	}
	for _, e := range entries {
		fx.Samples[wilderness.Coordinate{X: e.X, Y: e.Y}] = e.Sample
	}
	return fx
}
