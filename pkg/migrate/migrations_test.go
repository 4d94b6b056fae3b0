package migrate

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate test file")
	}
	return filepath.Join(filepath.Dir(file), "migrations")
}

func TestShippedMigrationsValidate(t *testing.T) {
	if err := ValidateDir(migrationsDir(t)); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestValidateDirRejectsBadName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "001_bad.sql", "-- +goose Up\n-- +goose Down\n")

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected error for short version prefix")
	}
}

func TestValidateDirRejectsMissingHeaders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20250301120000_no_down.sql", "-- +goose Up\nSELECT 1;\n")

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected error for missing goose Down header")
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Genre Index!")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if filepath.Ext(path) != ".sql" {
		t.Fatalf("unexpected path %q", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}
