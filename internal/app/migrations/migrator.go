package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/sharesuki/internal/pkg/logger"
)

//go:embed postgres/*.sql sqlite/*.sql
var scripts embed.FS

// Runner executes migration bookkeeping against one database dialect.
type Runner interface {
	// EnsureVersionTable creates the schema_migrations table if needed.
	EnsureVersionTable(ctx context.Context) error
	// IsApplied reports whether version was already recorded.
	IsApplied(ctx context.Context, version string) (bool, error)
	// Apply runs script and records version in a single transaction.
	Apply(ctx context.Context, version, script string) error
}

// Migrator manages database migrations
type Migrator struct {
	runner  Runner
	dialect string
	log     zerolog.Logger
}

// NewMigrator creates a migrator that applies the embedded scripts for dialect
// ("postgres" or "sqlite") through runner.
func NewMigrator(runner Runner, dialect string) *Migrator {
	return &Migrator{
		runner:  runner,
		dialect: dialect,
		log:     logger.Component(logger.Get(), "migrator"),
	}
}

// Up applies every pending migration in filename order and returns how many
// were applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.runner.EnsureVersionTable(ctx); err != nil {
		return 0, fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	files, err := m.scriptNames()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, name := range files {
		ok, err := m.migrateFile(ctx, name)
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}

	return applied, nil
}

// Pending lists migration versions that have not been applied yet.
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	if err := m.runner.EnsureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	files, err := m.scriptNames()
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, name := range files {
		version := versionOf(name)
		ok, err := m.runner.IsApplied(ctx, version)
		if err != nil {
			return nil, fmt.Errorf("failed to check migration status: %w", err)
		}
		if !ok {
			pending = append(pending, version)
		}
	}
	return pending, nil
}

func (m *Migrator) migrateFile(ctx context.Context, name string) (bool, error) {
	version := versionOf(name)

	applied, err := m.runner.IsApplied(ctx, version)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	if applied {
		m.log.Debug().Str("file", name).Msg("Migration already applied, skipping")
		return false, nil
	}

	content, err := fs.ReadFile(scripts, path.Join(m.dialect, name))
	if err != nil {
		return false, fmt.Errorf("failed to read migration file: %w", err)
	}

	if err := m.runner.Apply(ctx, version, string(content)); err != nil {
		return false, fmt.Errorf("error occurred during SQL migration %s: %w", name, err)
	}

	m.log.Info().Str("file", name).Str("dialect", m.dialect).Msg("Migration applied")
	return true, nil
}

func (m *Migrator) scriptNames() ([]string, error) {
	entries, err := fs.ReadDir(scripts, m.dialect)
	if err != nil {
		return nil, fmt.Errorf("no migrations for dialect %q: %w", m.dialect, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

// versionOf extracts the version prefix ("001_init.sql" => "001").
func versionOf(filename string) string {
	return strings.SplitN(filename, "_", 2)[0]
}
