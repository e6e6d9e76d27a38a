package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-video-analyzer/backend/config"
	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
	"github.com/pageza/recipe-video-analyzer/backend/internal/testhelpers"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{Environment: config.Test, SQLitePath: filepath.Join(t.TempDir(), "records.db")}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	assert.NoError(t, HealthCheck(db)(context.Background()))

	rec := &model.AnalysisRecord{FileName: "a.mp4", Status: model.StatusSuccess}
	require.NoError(t, db.Create(rec).Error)

	var count int64
	require.NoError(t, db.Model(&model.AnalysisRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpen_NotConfigured(t *testing.T) {
	_, err := Open(&config.Config{})
	assert.Error(t, err)
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "001_a_rollback.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}

	files, err := MigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, files)
}

func TestApplyAndRollbackMigrations(t *testing.T) {
	gdb := testhelpers.SetupTestPostgres(t)
	db, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, gdb.Migrator().DropTable(&model.AnalysisRecord{}))

	dir := filepath.Join("..", "..", "migrations")

	applied, err := ApplyMigrations(db, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_analysis_records.sql"}, applied)

	applied, err = ApplyMigrations(db, dir)
	require.NoError(t, err)
	assert.Empty(t, applied)

	rec := &model.AnalysisRecord{FileName: "a.mp4", Status: model.StatusSuccess}
	require.NoError(t, gdb.Create(rec).Error)

	name, err := RollbackLast(db, dir)
	require.NoError(t, err)
	assert.Equal(t, "001_create_analysis_records.sql", name)
	assert.False(t, gdb.Migrator().HasTable("analysis_records"))

	_, err = RollbackLast(db, dir)
	assert.ErrorIs(t, err, ErrNoMigrations)
}
