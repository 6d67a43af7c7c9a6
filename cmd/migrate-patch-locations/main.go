package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/platform/config"
	firestoreclient "github.com/weiwei-tsao/space-missions-dashboard/internal/platform/firestore"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/util"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to Firestore")
	flag.Parse()

	ctx := context.Background()

	// Load environment variables
	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()

	log.Printf("Connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)

	mode := "LIVE"
	if *dryRun {
		mode = "DRY-RUN"
	}

	fmt.Printf("\n=== Location Patch Migration [%s] ===\n", mode)
	fmt.Println("==========================================")

	if err := patchLocations(ctx, client, *dryRun); err != nil {
		log.Fatalf("Failed to patch locations: %v", err)
	}

	fmt.Println("==========================================")
	fmt.Println("Migration completed!")
}

func patchLocations(ctx context.Context, client *firestore.Client, dryRun bool) error {
	fmt.Println("\nScanning missions collection...")

	docs, err := client.Collection("missions").Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("failed to get missions: %w", err)
	}

	total := len(docs)
	fmt.Printf("Found %d mission documents\n", total)
	if total == 0 {
		fmt.Println("No missions to process")
		return nil
	}

	var toUpdate []updateItem
	for _, doc := range docs {
		var m model.MissionRecord
		if err := doc.DataTo(&m); err != nil {
			log.Printf("Warning: failed to parse doc %s: %v", doc.Ref.ID, err)
			continue
		}
		if !util.NeedsPatch(m.Location) {
			continue
		}
		toUpdate = append(toUpdate, updateItem{ref: doc.Ref, location: m.Location})

		if dryRun && len(toUpdate) <= 5 {
			fmt.Printf("\n--- Sample %d: %s %s ---\n", len(toUpdate), m.Company, m.Datum)
			fmt.Printf("BEFORE: %q\n", m.Location)
			fmt.Printf("AFTER:  %q\n", util.PatchLocation(m.Location))
		}
	}

	fmt.Printf("\n=== Analysis Summary ===\n")
	fmt.Printf("Total documents:  %d\n", total)
	fmt.Printf("Need patch:       %d\n", len(toUpdate))
	fmt.Printf("Already correct:  %d\n", total-len(toUpdate))

	if len(toUpdate) == 0 {
		fmt.Println("\nNo documents need patching!")
		return nil
	}

	if dryRun {
		fmt.Printf("\n[DRY-RUN] Would update %d documents. Run without --dry-run to apply changes.\n", len(toUpdate))
		return nil
	}

	fmt.Printf("\nPatching %d documents...\n", len(toUpdate))

	const batchSize = 100
	updated := 0
	for i := 0; i < len(toUpdate); i += batchSize {
		end := min(i+batchSize, len(toUpdate))

		batch := client.Batch()
		for _, item := range toUpdate[i:end] {
			batch.Update(item.ref, []firestore.Update{
				{Path: "location", Value: util.PatchLocation(item.location)},
			})
			updated++
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit batch: %w", err)
		}
		fmt.Printf("  Progress: %d/%d documents patched\n", updated, len(toUpdate))
	}

	fmt.Printf("\nPatched %d documents\n", updated)
	return nil
}

type updateItem struct {
	ref      *firestore.DocumentRef
	location string
}
