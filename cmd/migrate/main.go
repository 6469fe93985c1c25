// Command migrate applies or inspects the embedded schema migrations.
//
// Usage:
//
//	migrate [--driver=postgres|sqlite] [up|down|status]
//
// The postgres driver reads DATABASE_DSN; the sqlite driver reads
// SQLITE_PATH (default featureboard.db). The driver defaults to
// STORE_DRIVER, then postgres.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/heartmarshall/featureboard-backend/migrations"
)

func main() {
	driver := flag.String("driver", envOr("STORE_DRIVER", migrations.Postgres), "store driver: postgres or sqlite")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	db, err := open(*driver)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	provider, err := migrations.NewProvider(db, *driver)
	if err != nil {
		log.Fatal(err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		for _, r := range results {
			fmt.Printf("applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		fmt.Printf("%d migration(s) applied.\n", len(results))
	case "down":
		r, err := provider.Down(ctx)
		if err != nil {
			log.Fatalf("migrate down: %v", err)
		}
		fmt.Printf("rolled back %s\n", r.Source.Path)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatalf("migrate status: %v", err)
		}
		for _, s := range statuses {
			fmt.Printf("%-8s %s\n", s.State, s.Source.Path)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want up, down or status)\n", command)
		os.Exit(1)
	}
}

func open(driver string) (*sql.DB, error) {
	switch driver {
	case migrations.Postgres:
		dsn := os.Getenv("DATABASE_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_DSN environment variable is required")
		}
		return sql.Open("pgx", dsn)
	case migrations.SQLite:
		return sql.Open("sqlite", envOr("SQLITE_PATH", "featureboard.db"))
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
