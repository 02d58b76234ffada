package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fintrack/internal/config"
	"fintrack/internal/db"
	"fintrack/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Schema migrations and palette seeding for fintrack",
	}
	root.AddCommand(upCmd(), seedCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect() *sqlx.DB {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	return database
}

func upCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			database := connect()
			defer database.Close()
			if err := applyAll(database, dir); err != nil {
				log.Fatalf("migrate: %v", err)
			}
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory holding *.sql migration files")
	return cmd
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the shared colour palette",
		Run: func(cmd *cobra.Command, args []string) {
			database := connect()
			defer database.Close()
			if err := seedColours(cmd.Context(), database, file); err != nil {
				log.Fatalf("seed: %v", err)
			}
		},
	}
	cmd.Flags().StringVar(&file, "file", "migrations/colours.yaml", "palette file")
	return cmd
}

func applyAll(database *sqlx.DB, dir string) error {
	if _, err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (filename text primary key, applied_at timestamptz default now())`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, file := range files {
		filename := filepath.Base(file)
		var exists bool
		if err := database.Get(&exists, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`, filename); err != nil {
			return fmt.Errorf("read migration state: %w", err)
		}
		if exists {
			continue
		}
		if err := applyFile(database, file); err != nil {
			return fmt.Errorf("apply %s: %w", filename, err)
		}
		if _, err := database.Exec(`INSERT INTO schema_migrations (filename) VALUES ($1)`, filename); err != nil {
			return fmt.Errorf("record migration %s: %w", filename, err)
		}
		fmt.Printf("applied %s\n", filename)
	}
	return nil
}

func applyFile(database *sqlx.DB, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sections := strings.Split(string(content), "-- +migrate Down")
	if len(sections) == 0 {
		return nil
	}
	for _, stmt := range splitSQL(sections[0]) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func splitSQL(sqlText string) []string {
	var statements []string
	var current strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(sqlText))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		current.WriteString(line)
		current.WriteRune('\n')
		if strings.Contains(line, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}
	return statements
}

type palette struct {
	Colours []struct {
		Name string `yaml:"name"`
		Code string `yaml:"code"`
	} `yaml:"colours"`
}

func seedColours(ctx context.Context, database *sqlx.DB, file string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	var p palette
	if err := yaml.Unmarshal(content, &p); err != nil {
		return fmt.Errorf("parse palette: %w", err)
	}
	colours := store.NewColourStore(database)
	for _, c := range p.Colours {
		if err := colours.Seed(ctx, database, c.Name, []byte(c.Code)); err != nil {
			return fmt.Errorf("seed %s: %w", c.Name, err)
		}
		fmt.Printf("seeded colour %s\n", c.Name)
	}
	return nil
}
