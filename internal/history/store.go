// Package history persists combat outcomes, death news, and character
// autosaves to SQLite or PostgreSQL.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/grimhallow/grimhallow/internal/combat"
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/config"
)

// Store wraps the database connection and provides persistence operations.
// It satisfies the combat engine's event sink.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the configured database, runs init statements, and
// creates the schema if it does not exist.
func Open(cfg config.HistoryConfig) (*Store, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	dsn, err := buildDSN(dialect, cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	s := &Store{db: db, dialect: dialect}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

func buildDSN(dialect Dialect, cfg config.HistoryConfig) (string, error) {
	switch dialect.(type) {
	case *PostgresDialect:
		pg := cfg.Postgres
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode), nil
	default:
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
		return cfg.SQLitePath, nil
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying sql.DB for advanced operations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// migrate creates the schema if it doesn't exist.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS combats (
			id TEXT PRIMARY KEY,
			fought_at TIMESTAMP NOT NULL,
			outcome TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			damage_dealt INTEGER NOT NULL,
			damage_taken INTEGER NOT NULL,
			defeated TEXT NOT NULL DEFAULT '',
			xp_earned INTEGER NOT NULL DEFAULT 0,
			gold_earned INTEGER NOT NULL DEFAULT 0,
			drops TEXT NOT NULL DEFAULT '',
			xp_lost INTEGER NOT NULL DEFAULT 0,
			gold_lost INTEGER NOT NULL DEFAULT 0,
			gold_spent INTEGER NOT NULL DEFAULT 0
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS death_news (
			id %s,
			victim TEXT NOT NULL,
			slayer TEXT NOT NULL,
			died_at TIMESTAMP NOT NULL
		)`, s.dialect.AutoIncrementPK()),

		`CREATE TABLE IF NOT EXISTS saves (
			name TEXT PRIMARY KEY,
			class TEXT NOT NULL,
			level INTEGER NOT NULL,
			experience INTEGER NOT NULL,
			hp INTEGER NOT NULL,
			max_hp INTEGER NOT NULL,
			mana INTEGER NOT NULL,
			max_mana INTEGER NOT NULL,
			stamina INTEGER NOT NULL,
			max_stamina INTEGER NOT NULL,
			gold INTEGER NOT NULL,
			bank_gold INTEGER NOT NULL,
			alignment INTEGER NOT NULL,
			saved_at TIMESTAMP NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_combats_fought_at ON combats(fought_at)`,
		`CREATE INDEX IF NOT EXISTS idx_death_news_died_at ON death_news(died_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// TrackCombat records a finished encounter.
func (s *Store) TrackCombat(result *combat.CombatResult) error {
	query := rebind(s.dialect, `
		INSERT INTO combats (
			id, fought_at, outcome, rounds, damage_dealt, damage_taken,
			defeated, xp_earned, gold_earned, drops, xp_lost, gold_lost, gold_spent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.Exec(query,
		result.ID.String(), time.Now(), result.Outcome.String(), result.Rounds,
		result.DamageDealt, result.DamageTaken,
		strings.Join(result.DefeatedMonsters, ","),
		result.XPEarned, result.GoldEarned,
		strings.Join(result.Drops, ","),
		result.XPLost, result.GoldLost, result.GoldSpent,
	)
	return err
}

// WriteDeathNews records a character death for the town crier.
func (s *Store) WriteDeathNews(victim, slayer string) error {
	query := rebind(s.dialect, `
		INSERT INTO death_news (victim, slayer, died_at) VALUES (?, ?, ?)
	`)
	_, err := s.db.Exec(query, victim, slayer, time.Now())
	return err
}

// AutoSave upserts the surviving sheet fields of a combatant.
func (s *Store) AutoSave(c *combatant.Combatant) error {
	query := rebind(s.dialect, `
		INSERT INTO saves (
			name, class, level, experience, hp, max_hp, mana, max_mana,
			stamina, max_stamina, gold, bank_gold, alignment, saved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
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
	`)
	_, err := s.db.Exec(query,
		c.Name, string(c.Class), c.Level, c.Experience,
		c.HP, c.MaxHP, c.Mana, c.MaxMana, c.Stamina, c.MaxStamina,
		c.Gold, c.BankGold, int(c.Alignment), time.Now(),
	)
	return err
}

// CombatRecord is a stored encounter summary.
type CombatRecord struct {
	ID          string
	FoughtAt    time.Time
	Outcome     string
	Rounds      int
	DamageDealt int
	DamageTaken int
	Defeated    []string
	XPEarned    int
	GoldEarned  int
	Drops       []string
	XPLost      int
	GoldLost    int
	GoldSpent   int
}

// RecentCombats returns the most recent encounters, newest first.
func (s *Store) RecentCombats(limit int) ([]CombatRecord, error) {
	query := rebind(s.dialect, `
		SELECT id, fought_at, outcome, rounds, damage_dealt, damage_taken,
			defeated, xp_earned, gold_earned, drops, xp_lost, gold_lost, gold_spent
		FROM combats
		ORDER BY fought_at DESC
		LIMIT ?
	`)
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []CombatRecord
	for rows.Next() {
		var r CombatRecord
		var defeated, drops string
		if err := rows.Scan(&r.ID, &r.FoughtAt, &r.Outcome, &r.Rounds,
			&r.DamageDealt, &r.DamageTaken, &defeated,
			&r.XPEarned, &r.GoldEarned, &drops,
			&r.XPLost, &r.GoldLost, &r.GoldSpent); err != nil {
			return nil, err
		}
		r.Defeated = splitList(defeated)
		r.Drops = splitList(drops)
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeathNotice is one entry of the death news feed.
type DeathNotice struct {
	ID     int64
	Victim string
	Slayer string
	DiedAt time.Time
}

// RecentDeaths returns the most recent death notices, newest first.
func (s *Store) RecentDeaths(limit int) ([]DeathNotice, error) {
	query := rebind(s.dialect, `
		SELECT id, victim, slayer, died_at
		FROM death_news
		ORDER BY died_at DESC, id DESC
		LIMIT ?
	`)
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []DeathNotice
	for rows.Next() {
		var n DeathNotice
		if err := rows.Scan(&n.ID, &n.Victim, &n.Slayer, &n.DiedAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// Save is a stored character sheet snapshot.
type Save struct {
	Name       string
	Class      string
	Level      int
	Experience int
	HP         int
	MaxHP      int
	Mana       int
	MaxMana    int
	Stamina    int
	MaxStamina int
	Gold       int
	BankGold   int
	Alignment  int
	SavedAt    time.Time
}

// LoadSave returns the stored sheet for a character, or nil if never saved.
func (s *Store) LoadSave(name string) (*Save, error) {
	query := rebind(s.dialect, `
		SELECT name, class, level, experience, hp, max_hp, mana, max_mana,
			stamina, max_stamina, gold, bank_gold, alignment, saved_at
		FROM saves
		WHERE name = ?
	`)
	row := s.db.QueryRow(query, name)

	save := &Save{}
	err := row.Scan(&save.Name, &save.Class, &save.Level, &save.Experience,
		&save.HP, &save.MaxHP, &save.Mana, &save.MaxMana,
		&save.Stamina, &save.MaxStamina,
		&save.Gold, &save.BankGold, &save.Alignment, &save.SavedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return save, nil
}

func splitList(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
