package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/business/dataset"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/platform/config"
	firestoreclient "github.com/weiwei-tsao/space-missions-dashboard/internal/platform/firestore"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/repository"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Read the CSV files and print counts without writing to Firestore")
	flag.Parse()

	ctx := context.Background()

	// Load environment variables
	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	src := dataset.NewCSVSource(cfg.MissionsCSV, cfg.LatLongCSV)
	missions, err := src.FetchMissions(ctx)
	if err != nil {
		log.Fatalf("Failed to read missions: %v", err)
	}
	coords, err := src.FetchCoordinates(ctx)
	if err != nil {
		log.Fatalf("Failed to read coordinates: %v", err)
	}

	fmt.Println("Seeding Firestore with the space missions dataset...")
	fmt.Println("========================================")
	fmt.Printf("Missions:    %d rows from %s\n", len(missions), cfg.MissionsCSV)
	fmt.Printf("Coordinates: %d rows from %s\n", len(coords), cfg.LatLongCSV)

	if *dryRun {
		fmt.Println("\n[DRY-RUN] Nothing written. Run without --dry-run to upload.")
		return
	}

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()

	log.Printf("Connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)

	repo := repository.NewMissionRepository(client)

	fmt.Println("\n[1/2] Writing locations collection...")
	if err := repo.BatchUpsertCoordinates(ctx, coords); err != nil {
		log.Fatalf("Failed to seed locations: %v", err)
	}

	fmt.Println("[2/2] Writing missions collection...")
	if err := repo.BatchUpsertMissions(ctx, missions); err != nil {
		log.Fatalf("Failed to seed missions: %v", err)
	}

	fmt.Println("========================================")
	fmt.Println("Seeding completed successfully!")
}
