package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/storefront-core/internal/models/m_cart"
	"github.com/light-bringer/storefront-core/internal/pkg/clock"
	"github.com/light-bringer/storefront-core/internal/pkg/committer"
)

// deleteBatchSize bounds mutations per commit.
const deleteBatchSize = 500

// Config for the cart pruning job.
type Config struct {
	SpannerDB     string
	RetentionDays int
	ShopDomain    string
	DryRun        bool
}

// staleCart is one record past retention.
type staleCart struct {
	StorageKey string
	ShopDomain string
	UpdatedAt  time.Time
}

func main() {
	// Parse command-line flags
	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", os.Getenv("SPANNER_DATABASE"), "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&config.RetentionDays, "retention", 90, "Delete carts not updated for this many days")
	flag.StringVar(&config.ShopDomain, "shop", "", "Only prune carts of this shop")
	flag.BoolVar(&config.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	if config.SpannerDB == "" {
		log.Fatal("Error: -database flag or SPANNER_DATABASE is required")
	}
	if config.RetentionDays < 1 {
		log.Fatal("Error: -retention must be at least 1")
	}

	ctx := context.Background()

	if err := pruneCarts(ctx, config, clock.NewRealClock()); err != nil {
		log.Fatalf("Prune failed: %v", err)
	}

	log.Println("Prune completed successfully")
}

func pruneCarts(ctx context.Context, config Config, clk clock.Clock) error {
	// Create Spanner client
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	cutoff := clock.RetentionCutoff(clk, config.RetentionDays)

	log.Printf("Starting cart prune...")
	log.Printf("  Cutoff: %s (retention: %d days)", cutoff.Format(time.RFC3339), config.RetentionDays)
	if config.ShopDomain != "" {
		log.Printf("  Shop: %s", config.ShopDomain)
	}
	log.Printf("  Dry run: %v", config.DryRun)

	stale, err := findStaleCarts(ctx, client, staleStatement(cutoff, config.ShopDomain))
	if err != nil {
		return err
	}

	if len(stale) == 0 {
		log.Println("No stale carts to delete")
		return nil
	}

	if config.DryRun {
		for _, c := range stale {
			log.Printf("  Would delete %s (%s, updated %s)", c.StorageKey, c.ShopDomain, c.UpdatedAt.Format(time.RFC3339))
		}
		log.Printf("DRY RUN: Would delete %d carts", len(stale))
		log.Println("Run without -dry-run to actually delete carts")
		return nil
	}

	return deleteCarts(ctx, committer.NewCommitter(client), stale)
}

// staleStatement selects records last updated before cutoff.
func staleStatement(cutoff time.Time, shopDomain string) spanner.Statement {
	sql := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s < @cutoff",
		m_cart.StorageKey, m_cart.ShopDomain, m_cart.UpdatedAt, m_cart.TableName, m_cart.UpdatedAt)
	params := map[string]interface{}{"cutoff": cutoff}

	if shopDomain != "" {
		sql += fmt.Sprintf(" AND %s = @shop", m_cart.ShopDomain)
		params["shop"] = shopDomain
	}
	sql += " ORDER BY " + m_cart.UpdatedAt

	return spanner.Statement{SQL: sql, Params: params}
}

func findStaleCarts(ctx context.Context, client *spanner.Client, stmt spanner.Statement) ([]staleCart, error) {
	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var stale []staleCart
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return stale, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query carts: %w", err)
		}

		var c staleCart
		if err := row.Columns(&c.StorageKey, &c.ShopDomain, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		stale = append(stale, c)
	}
}

func deleteCarts(ctx context.Context, comm *committer.Committer, stale []staleCart) error {
	model := m_cart.NewModel()
	deleted := 0

	for _, batch := range batches(stale, deleteBatchSize) {
		plan := committer.NewPlan()
		for _, c := range batch {
			plan.Add(model.DeleteMut(c.StorageKey))
		}
		if err := comm.Apply(ctx, plan); err != nil {
			return fmt.Errorf("failed to delete carts after %d deletions: %w", deleted, err)
		}
		deleted += plan.Count()
		log.Printf("Deleted %d/%d carts", deleted, len(stale))
	}

	return nil
}

func batches(stale []staleCart, size int) [][]staleCart {
	var out [][]staleCart
	for start := 0; start < len(stale); start += size {
		end := start + size
		if end > len(stale) {
			end = len(stale)
		}
		out = append(out, stale[start:end])
	}
	return out
}
