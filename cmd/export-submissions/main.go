// Command export-submissions writes the filtered lead list to a CSV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"instabarakat-leads/config"
	"instabarakat-leads/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var (
		out     string
		query   services.FilterQuery
		timeout time.Duration
	)

	flag.StringVar(&out, "out", "", "output file (default <product>-submissions-<date>.csv)")
	flag.StringVar(&query.StartDate, "start", "", "first day to include (YYYY-MM-DD)")
	flag.StringVar(&query.EndDate, "end", "", "last day to include (YYYY-MM-DD)")
	flag.StringVar(&query.Search, "search", "", "case-insensitive match on name, contact or income")
	flag.StringVar(&query.Status, "status", "", "pending, approved, rejected or contacted")
	flag.DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	flag.Parse()

	filter, warnings := services.ParseFilter(query, cfg.Location)
	for _, w := range warnings {
		log.Fatalf("bad filter: %s", w.String())
	}

	clock := services.NewMonotonicClock(nil)
	store, err := services.OpenSubmissionStore(cfg, clock)
	if err != nil {
		log.Fatalf("failed to open record store: %v", err)
	}
	svc := services.NewSubmissionService(store, nil, clock)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	review, err := svc.Review(ctx, filter)
	if err != nil {
		log.Fatalf("failed to load submissions: %v", err)
	}

	if out == "" {
		out = services.ExportFilename(cfg.ProductName, time.Now().In(cfg.Location))
	}
	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("failed to create %s: %v", out, err)
	}
	if err := services.WriteSubmissionsCSV(f, review.Filtered, cfg.Location); err != nil {
		f.Close()
		log.Fatalf("export failed: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("failed to close %s: %v", out, err)
	}

	fmt.Printf("Exported %d of %d submissions to %s\n", review.Stats.Filtered, review.Stats.Total, out)
}
