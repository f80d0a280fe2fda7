package main

import (
	"context"
	"fmt"
	"log"

	"library-admin/internal/config"
	"library-admin/internal/db"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Audit Log")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DELETE the recorded admin activity!")
	fmt.Println("Library data on the REST backend is not touched.")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("🔄 Resetting audit log...")

	if _, err := pool.Exec(ctx, "TRUNCATE TABLE admin_action_logs RESTART IDENTITY"); err != nil {
		log.Fatalf("Failed to truncate admin_action_logs: %v\n", err)
	}
	fmt.Println("  ✓ Cleared admin_action_logs")

	fmt.Println()
	fmt.Println("✅ Audit log reset successful!")
}
