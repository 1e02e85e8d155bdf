package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"smartroute-service/internal/adapters/mapview"
	"smartroute-service/internal/adapters/output"
	"smartroute-service/internal/adapters/repositories"
	"smartroute-service/internal/config"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/ports"
	"smartroute-service/internal/services"
	"time"

	"github.com/joho/godotenv"
)

// Exit status when some shipments could not be placed; the partial plan is
// still written.
const exitUnassignable = 2

// planner is the one-shot form of the service: workbook in, trip file out.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	workbook := flag.String("workbook", config.Get("WORKBOOK_PATH", "data/SmartRoute Optimizer.xlsx"), "planning workbook")
	outDir := flag.String("out", config.Get("OUTPUT_DIR", "data/output"), "output directory")
	format := flag.String("format", "xlsx", "trip file format: xlsx or csv")
	withMap := flag.Bool("map", false, "also write trip_visualization.html")
	policyPath := flag.String("policy", config.Get("FLEET_POLICY_PATH", ""), "fleet policy YAML")
	defaultTimeout, err := config.GetDuration("PLAN_TIMEOUT", config.DefaultPlanTimeout)
	if err != nil {
		log.Fatal(err)
	}
	timeout := flag.Duration("timeout", defaultTimeout, "planning timeout")
	flag.Parse()

	code, err := run(*workbook, *outDir, *format, *policyPath, *withMap, *timeout)
	if err != nil {
		log.Print(err)
	}
	os.Exit(code)
}

func run(workbook, outDir, format, policyPath string, withMap bool, timeout time.Duration) (int, error) {
	var writer ports.TripWriter
	switch format {
	case "xlsx":
		writer = output.XLSXTripWriter{}
	case "csv":
		writer = output.CSVTripWriter{}
	default:
		return 1, fmt.Errorf("unsupported format %q", format)
	}

	policy, err := config.LoadFleetPolicy(policyPath)
	if err != nil {
		return 1, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	plan, err := services.PlanTrips(ctx, services.PlanTripsRequest{Priority: policy.Priority}, repositories.NewWorkbookSource(workbook))

	var unassignable *domain.UnassignableShipmentsError
	if err != nil && !errors.As(err, &unassignable) {
		return 1, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 1, fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(outDir, writer.FileName())
	if err := writeFile(path, func(f *os.File) error { return writer.WriteTrips(f, plan) }); err != nil {
		return 1, err
	}
	log.Printf("Wrote %s trips=%d", path, len(plan.Trips))

	if withMap {
		mapPath := filepath.Join(outDir, "trip_visualization.html")
		renderer := &mapview.LeafletRenderer{Policy: policy, Order: services.VisitOrder}
		if err := writeFile(mapPath, func(f *os.File) error { return renderer.RenderMap(f, plan) }); err != nil {
			return 1, err
		}
		log.Printf("Wrote %s", mapPath)
	}

	if unassignable != nil {
		return exitUnassignable, unassignable
	}
	return 0, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}
