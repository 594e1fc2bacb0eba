package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"geocache-router/internal/database"
	"geocache-router/internal/distance"
	"geocache-router/internal/geojson"
	"geocache-router/internal/gpx"
	"geocache-router/internal/models"
	"geocache-router/internal/route"
	"geocache-router/internal/search"
	"geocache-router/internal/sqlite"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(args []string) error {
	godotenv.Load()

	fs := flag.NewFlagSet("gcrouter", flag.ExitOnError)
	waypointsFile := fs.String("waypoints", getEnv("GCROUTER_WAYPOINTS", "waypoints.gpx"), "GPX waypoint source file")
	dbPath := fs.String("db", os.Getenv("GCROUTER_DB"), "SQLite database path (default: app directory)")
	outDir := fs.String("out", os.Getenv("GCROUTER_ROUTES_DIR"), "route output directory (default: app directory)")
	seed := fs.Int64("seed", 0, "shuffle seed for reproducible plans (default: time-based)")
	useTabu := fs.Bool("tabu", false, "refine a manually-specified path with tabu search instead of hill climbing")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: gcrouter [flags] [waypoint names...]\n\n")
		fmt.Fprintf(fs.Output(), "With no waypoint names the full random-restart search runs.\n")
		fmt.Fprintf(fs.Output(), "With names, they form the interior of a manual Start-...-Finish path\n")
		fmt.Fprintf(fs.Output(), "that is refined directly.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry, err := gpx.Load(*waypointsFile)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d waypoints from %s", len(registry), *waypointsFile)

	matrix := distance.Build(registry)
	evaluator := route.NewEvaluator(matrix, registry)

	path := *dbPath
	if path == "" {
		path, err = database.GetDBPath()
		if err != nil {
			return err
		}
	}
	store, err := sqlite.New(path)
	if err != nil {
		return err
	}
	defer store.Close()

	settings, err := store.Settings().Get(ctx)
	if err != nil {
		return err
	}
	budget := models.BudgetFromSettings(settings)
	log.Printf("Budget: distance=%.0fm elevation=%.0fm (speed=%.1fkm/h hours=%.1f)",
		budget.MaxDistanceMeters, budget.MaxElevationGainMeters,
		settings.HikingSpeedKmh, settings.TimeBudgetHours)

	shuffleSeed := *seed
	if shuffleSeed == 0 {
		shuffleSeed = time.Now().UnixNano()
	}

	var result *models.PathResult
	optimizer := "plan"

	if manual := fs.Args(); len(manual) > 0 {
		result, optimizer, err = refineManual(ctx, evaluator, registry, budget, manual, *useTabu)
	} else {
		planner := search.NewPlanner(evaluator, budget, search.PlannerConfig{
			WindowSize: settings.WindowSize,
			Stride:     settings.WindowStride,
			Seed:       shuffleSeed,
		}, search.LogObserver{})
		result, err = planner.Plan(ctx)
	}
	if err != nil {
		return err
	}

	routesDir := *outDir
	if routesDir == "" {
		routesDir, err = database.GetRoutesDir()
		if err != nil {
			return err
		}
	}
	writer, err := geojson.NewWriter(routesDir)
	if err != nil {
		return err
	}
	outputFile, err := writer.Write(result, registry)
	if err != nil {
		return err
	}

	if _, err := store.Runs().Create(ctx, &models.Run{
		Path:                result.Path,
		Score:               result.Score,
		DistanceMeters:      result.DistanceMeters,
		ElevationGainMeters: result.ElevationGainMeters,
		Optimizer:           optimizer,
		OutputFile:          outputFile,
	}); err != nil {
		return err
	}

	fmt.Printf("Route: %s\n", result.Path.Key())
	fmt.Printf("Score: %d points, distance %.0f m, elevation gain %.0f m\n",
		result.Score, result.DistanceMeters, result.ElevationGainMeters)
	if !route.Feasible(result, budget) {
		fmt.Printf("Warning: route violates the search budget\n")
	}
	fmt.Printf("Written to %s\n", outputFile)
	return nil
}

// refineManual wraps the given interior waypoint names in Start/Finish
// and refines the resulting path directly.
func refineManual(
	ctx context.Context,
	evaluator *route.Evaluator,
	registry models.Registry,
	budget models.SearchBudget,
	interior []string,
	useTabu bool,
) (*models.PathResult, string, error) {
	seen := make(map[string]struct{}, len(interior))
	for _, name := range interior {
		if name == models.StartName || name == models.FinishName {
			return nil, "", fmt.Errorf("manual path lists interior waypoints only; %q is implied", name)
		}
		if _, err := registry.Get(name); err != nil {
			return nil, "", err
		}
		if _, dup := seen[name]; dup {
			return nil, "", fmt.Errorf("manual path names %q twice; each waypoint can be visited once", name)
		}
		seen[name] = struct{}{}
	}

	manual := make(models.Path, 0, len(interior)+2)
	manual = append(manual, models.StartName)
	manual = append(manual, interior...)
	manual = append(manual, models.FinishName)

	if useTabu {
		ts := search.NewTabuSearch(evaluator, budget, search.TabuConfig{}, search.LogObserver{})
		result, err := ts.Optimize(ctx, manual)
		return result, "tabu", err
	}

	hc := search.NewHillClimber(evaluator, budget, search.LogObserver{})
	result, err := hc.Refine(ctx, manual)
	return result, "hillclimb", err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
