package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/storefront-core/internal/config"
)

// migrationsTable records applied migration files so reruns skip them.
const migrationsTable = "schema_migrations"

const defaultDatabase = "projects/test-project/instances/dev-instance/databases/storefront-db"

// target is a parsed database path.
type target struct {
	Project  string
	Instance string
	Database string
}

func (t target) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", t.Project, t.Instance)
}

func (t target) databasePath() string {
	return t.instancePath() + "/databases/" + t.Database
}

// parseDatabasePath splits projects/P/instances/I/databases/D.
func parseDatabasePath(path string) (target, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return target{}, fmt.Errorf("database %q is not projects/PROJECT/instances/INSTANCE/databases/DATABASE", path)
	}
	for _, p := range []string{parts[1], parts[3], parts[5]} {
		if p == "" {
			return target{}, fmt.Errorf("database %q has an empty segment", path)
		}
	}
	return target{Project: parts[1], Instance: parts[3], Database: parts[5]}, nil
}

func main() {
	cfg := config.Load()
	dbDefault := cfg.SpannerDB
	if dbDefault == "" {
		dbDefault = defaultDatabase
	}

	dbFlag := flag.String("database", dbDefault, "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	migrateDir := flag.String("migrations", "migrations", "Directory containing migration SQL files")
	statusOnly := flag.Bool("status", false, "List pending migrations without applying them")
	flag.Parse()

	tgt, err := parseDatabasePath(*dbFlag)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	emulator := os.Getenv("SPANNER_EMULATOR_HOST") != ""
	if emulator {
		log.Printf("Using Spanner emulator at %s", os.Getenv("SPANNER_EMULATOR_HOST"))
	}

	ctx := context.Background()
	m := &migrator{target: tgt, dir: *migrateDir, emulator: emulator}
	if err := m.run(ctx, *statusOnly); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// migrator brings one database up to the migrations directory.
type migrator struct {
	target   target
	dir      string
	emulator bool
	admin    *database.DatabaseAdminClient
}

func (m *migrator) run(ctx context.Context, statusOnly bool) error {
	if m.emulator {
		if err := m.ensureInstance(ctx); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()
	m.admin = admin

	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		log.Printf("No migration files in %s", m.dir)
		return nil
	}

	if err := m.updateDDL(ctx, []string{
		"CREATE TABLE IF NOT EXISTS " + migrationsTable + " (name STRING(255) NOT NULL, applied_at TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp=true)) PRIMARY KEY (name)",
	}); err != nil {
		return fmt.Errorf("failed to create %s: %w", migrationsTable, err)
	}

	client, err := spanner.NewClient(ctx, m.target.databasePath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	applied, err := appliedMigrations(ctx, client)
	if err != nil {
		return err
	}

	pending := pendingMigrations(files, applied)
	if len(pending) == 0 {
		log.Println("Schema is up to date")
		return nil
	}
	if statusOnly {
		for _, file := range pending {
			log.Printf("  pending: %s", filepath.Base(file))
		}
		return nil
	}

	for _, file := range pending {
		if err := m.apply(ctx, client, file); err != nil {
			return err
		}
	}
	log.Printf("Applied %d migration(s)", len(pending))
	return nil
}

// ensureInstance creates the emulator instance on first run.
func (m *migrator) ensureInstance(ctx context.Context) error {
	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.target.instancePath()})
	if err == nil || status.Code(err) != codes.NotFound {
		return err
	}

	log.Printf("Creating instance %s...", m.target.Instance)
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + m.target.Project,
		InstanceId: m.target.Instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.target.Project),
			DisplayName: "Storefront development",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to wait for instance: %w", err)
	}
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context) error {
	_, err := m.admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.target.databasePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check database: %w", err)
	}

	log.Printf("Creating database %s...", m.target.Database)
	op, err := m.admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.target.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.target.Database),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// apply runs one file's DDL and records it.
func (m *migrator) apply(ctx context.Context, client *spanner.Client, file string) error {
	name := filepath.Base(file)
	log.Printf("Applying %s...", name)

	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file, err)
	}

	if statements := splitDDLStatements(string(content)); len(statements) > 0 {
		if err := m.updateDDL(ctx, statements); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
	}

	_, err = client.Apply(ctx, []*spanner.Mutation{
		spanner.Insert(migrationsTable, []string{"name", "applied_at"}, []interface{}{name, spanner.CommitTimestamp}),
	})
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", name, err)
	}
	return nil
}

func (m *migrator) updateDDL(ctx context.Context, statements []string) error {
	op, err := m.admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   m.target.databasePath(),
		Statements: statements,
	})
	if err != nil {
		return fmt.Errorf("failed to start DDL update: %w", err)
	}
	return op.Wait(ctx)
}

func appliedMigrations(ctx context.Context, client *spanner.Client) (map[string]bool, error) {
	iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT name FROM " + migrationsTable})
	defer iter.Stop()

	applied := make(map[string]bool)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return applied, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", migrationsTable, err)
		}
		var name string
		if err := row.Columns(&name); err != nil {
			return nil, fmt.Errorf("failed to parse migration name: %w", err)
		}
		applied[name] = true
	}
}

// pendingMigrations returns files not yet applied, in name order.
func pendingMigrations(files []string, applied map[string]bool) []string {
	var pending []string
	for _, file := range files {
		if !applied[filepath.Base(file)] {
			pending = append(pending, file)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return filepath.Base(pending[i]) < filepath.Base(pending[j])
	})
	return pending
}

// splitDDLStatements drops comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		kept = append(kept, line)
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
