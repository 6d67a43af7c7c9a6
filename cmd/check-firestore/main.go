package main

import (
	"context"
	"encoding/json"
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
	sample := flag.Int("sample", 1, "Number of joined missions to print")
	flag.Parse()

	ctx := context.Background()
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

	if err := firestoreclient.Ping(ctx, client); err != nil {
		log.Fatalf("Firestore ping failed: %v", err)
	}
	fmt.Printf("Connected to %s using %s credentials\n\n", cfg.FirebaseProjectID, credsSource)

	data, stats, err := dataset.Load(ctx, repository.NewMissionRepository(client))
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	fmt.Printf("missions:     %d\n", stats.Missions)
	fmt.Printf("locations:    %d\n", stats.Coordinates)
	fmt.Printf("joined:       %d\n", stats.Joined)
	fmt.Printf("dropped:      %d\n", stats.Dropped)
	fmt.Printf("patched:      %d\n", stats.Patched)
	fmt.Printf("back-filled:  %d\n", stats.Backfilled)
	fmt.Printf("undated:      %d\n", stats.Undated)
	fmt.Printf("countries:    %v\n", data.Countries())

	records := data.Records()
	for i := 0; i < *sample && i < len(records); i++ {
		out, err := json.MarshalIndent(records[i], "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal: %v", err)
		}
		fmt.Printf("\nSample %d:\n%s\n", i+1, out)
	}
}
