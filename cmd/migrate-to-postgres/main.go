// migrate-to-postgres copies the combat history database from SQLite to
// PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/grimhallow.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user grimhallow \
//	    -pg-password grimhallow \
//	    -pg-database grimhallow
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/grimhallow/grimhallow/internal/config"
	"github.com/grimhallow/grimhallow/internal/history"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/grimhallow.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "grimhallow", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "grimhallow", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Migration Tool")
	log.Println("====================================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	sqliteDB, err := sql.Open("sqlite", *sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer sqliteDB.Close()
	if err := sqliteDB.Ping(); err != nil {
		log.Fatalf("Failed to connect to SQLite database: %v", err)
	}

	pgConfig := config.HistoryConfig{
		Driver: "postgres",
		Postgres: config.PostgresConfig{
			Host:     *pgHost,
			Port:     *pgPort,
			User:     *pgUser,
			Password: *pgPassword,
			Database: *pgDatabase,
			SSLMode:  *pgSSLMode,
		},
	}

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	// Opening the store creates the schema on the PostgreSQL side.
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	store, err := history.Open(pgConfig)
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL store: %v", err)
	}
	defer store.Close()
	pgDB := store.DB()

	tables := []struct {
		name    string
		migrate func(*sql.DB, *sql.DB, bool) (int64, error)
	}{
		{"combats", migrateCombats},
		{"death_news", migrateDeathNews},
		{"saves", migrateSaves},
	}

	start := time.Now()
	var total int64
	for _, table := range tables {
		log.Printf("Migrating %s...", table.name)
		count, err := table.migrate(sqliteDB, pgDB, *dryRun)
		if err != nil {
			log.Fatalf("Failed to migrate %s: %v", table.name, err)
		}
		log.Printf("  %s: %d rows", table.name, count)
		total += count
	}

	log.Printf("Migration complete: %d rows in %s", total, time.Since(start).Round(time.Millisecond))
	if *dryRun {
		log.Println("Dry run finished - run again without -dry-run to migrate")
	}
}

func migrateCombats(src, dst *sql.DB, dryRun bool) (int64, error) {
	rows, err := src.Query(`
		SELECT id, fought_at, outcome, rounds, damage_dealt, damage_taken,
			defeated, xp_earned, gold_earned, drops, xp_lost, gold_lost, gold_spent
		FROM combats
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, outcome, defeated, drops string
		var foughtAt time.Time
		var rounds, dealt, taken, xp, gold, xpLost, goldLost, goldSpent int
		if err := rows.Scan(&id, &foughtAt, &outcome, &rounds, &dealt, &taken,
			&defeated, &xp, &gold, &drops, &xpLost, &goldLost, &goldSpent); err != nil {
			return count, err
		}
		if !dryRun {
			_, err := dst.Exec(`
				INSERT INTO combats (
					id, fought_at, outcome, rounds, damage_dealt, damage_taken,
					defeated, xp_earned, gold_earned, drops, xp_lost, gold_lost, gold_spent
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
				ON CONFLICT (id) DO NOTHING
			`, id, foughtAt, outcome, rounds, dealt, taken,
				defeated, xp, gold, drops, xpLost, goldLost, goldSpent)
			if err != nil {
				return count, fmt.Errorf("combat %s: %w", id, err)
			}
		}
		count++
	}
	return count, rows.Err()
}

func migrateDeathNews(src, dst *sql.DB, dryRun bool) (int64, error) {
	rows, err := src.Query(`SELECT victim, slayer, died_at FROM death_news ORDER BY id`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var victim, slayer string
		var diedAt time.Time
		if err := rows.Scan(&victim, &slayer, &diedAt); err != nil {
			return count, err
		}
		if !dryRun {
			_, err := dst.Exec(`
				INSERT INTO death_news (victim, slayer, died_at) VALUES ($1, $2, $3)
			`, victim, slayer, diedAt)
			if err != nil {
				return count, fmt.Errorf("death of %s: %w", victim, err)
			}
		}
		count++
	}
	return count, rows.Err()
}

func migrateSaves(src, dst *sql.DB, dryRun bool) (int64, error) {
	rows, err := src.Query(`
		SELECT name, class, level, experience, hp, max_hp, mana, max_mana,
			stamina, max_stamina, gold, bank_gold, alignment, saved_at
		FROM saves
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var name, class string
		var level, xp, hp, maxHP, mana, maxMana, stamina, maxStamina, gold, bankGold, alignment int
		var savedAt time.Time
		if err := rows.Scan(&name, &class, &level, &xp, &hp, &maxHP, &mana, &maxMana,
			&stamina, &maxStamina, &gold, &bankGold, &alignment, &savedAt); err != nil {
			return count, err
		}
		if !dryRun {
			_, err := dst.Exec(`
				INSERT INTO saves (
					name, class, level, experience, hp, max_hp, mana, max_mana,
					stamina, max_stamina, gold, bank_gold, alignment, saved_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
				ON CONFLICT (name) DO UPDATE SET
					class = excluded.class,
					level = excluded.level,
					experience = excluded.experience,
					hp = excluded.hp,
					max_hp = excluded.max_hp,
					mana = excluded.mana,
					max_mana = excluded.max_mana,
					stamina = excluded.stamina,
					max_stamina = excluded.max_stamina,
					gold = excluded.gold,
					bank_gold = excluded.bank_gold,
					alignment = excluded.alignment,
					saved_at = excluded.saved_at
			`, name, class, level, xp, hp, maxHP, mana, maxMana,
				stamina, maxStamina, gold, bankGold, alignment, savedAt)
			if err != nil {
				return count, fmt.Errorf("save %s: %w", name, err)
			}
		}
		count++
	}
	return count, rows.Err()
}
