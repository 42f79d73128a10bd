// Command resetdb wipes all aid data for development environments.
// Refuses to run unless RESET_CONFIRM=yes.
package main

import (
	"context"
	"log"
	"os"

	"aid-backend/internal/config"
	"aid-backend/internal/db"
)

var tables = []string{
	"admin_action_logs",
	"alerts",
	"tasks",
	"distribution_requests",
	"couriers",
	"package_templates",
	"beneficiaries",
	"families",
	"organizations",
	"users",
}

func main() {
	if os.Getenv("RESET_CONFIRM") != "yes" {
		log.Fatal("refusing to reset: set RESET_CONFIRM=yes")
	}

	cfg := config.Load()
	pool := db.Connect(cfg)
	defer pool.Close()

	ctx := context.Background()
	for _, table := range tables {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			log.Fatalf("truncate %s failed: %v", table, err)
		}
		log.Printf("truncated %s", table)
	}
	log.Println("reset complete")
}
