package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/repository"
)

func main() {
	keep := flag.Duration("keep", 90*24*time.Hour, "how long audit entries are retained")
	flag.Parse()
	if *keep <= 0 {
		log.Fatal("-keep must be positive")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(database.Options{DSN: cfg.DatabaseURL}, zap.NewNop())
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	cutoff := time.Now().UTC().Add(-*keep)
	n, err := repository.NewAuditRepository(db).Prune(context.Background(), cutoff)
	if err != nil {
		log.Fatalf("prune audit_logs failed: %v", err)
	}
	log.Printf("audit prune completed: audit_logs=%d older_than=%s", n, cutoff.Format(time.RFC3339))
}
