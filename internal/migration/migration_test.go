package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS() fstest.MapFS {
	return fstest.MapFS{
		"001_init.sql": &fstest.MapFile{
			Data: []byte(`CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`),
		},
		"002_add_color.sql": &fstest.MapFile{
			Data: []byte(`ALTER TABLE widgets ADD COLUMN color TEXT NOT NULL DEFAULT '';`),
		},
	}
}

func TestApplyMigrations(t *testing.T) {
	t.Run("fresh database applies everything", func(t *testing.T) {
		db := newTestDB(t)
		runner := NewRunner(db, migrationFS())

		applied, err := runner.ApplyMigrations(nil)
		if err != nil {
			t.Fatalf("ApplyMigrations() failed: %v", err)
		}
		if applied != 2 {
			t.Errorf("applied = %d, want 2", applied)
		}

		version, err := runner.GetCurrentVersion()
		if err != nil {
			t.Fatalf("GetCurrentVersion() failed: %v", err)
		}
		if version != 2 {
			t.Errorf("version = %d, want 2", version)
		}

		if _, err := db.Exec(`INSERT INTO widgets (name, color) VALUES ('gear', 'red')`); err != nil {
			t.Errorf("migrated schema rejected insert: %v", err)
		}
	})

	t.Run("reapply is a no-op", func(t *testing.T) {
		db := newTestDB(t)
		runner := NewRunner(db, migrationFS())
		if _, err := runner.ApplyMigrations(nil); err != nil {
			t.Fatalf("ApplyMigrations() failed: %v", err)
		}

		applied, err := runner.ApplyMigrations(nil)
		if err != nil {
			t.Fatalf("second ApplyMigrations() failed: %v", err)
		}
		if applied != 0 {
			t.Errorf("applied = %d on up-to-date schema, want 0", applied)
		}
	})

	t.Run("partial apply resumes where it stopped", func(t *testing.T) {
		db := newTestDB(t)
		onlyFirst := fstest.MapFS{"001_init.sql": migrationFS()["001_init.sql"]}
		if _, err := NewRunner(db, onlyFirst).ApplyMigrations(nil); err != nil {
			t.Fatalf("ApplyMigrations() failed: %v", err)
		}

		applied, err := NewRunner(db, migrationFS()).ApplyMigrations(nil)
		if err != nil {
			t.Fatalf("resumed ApplyMigrations() failed: %v", err)
		}
		if applied != 1 {
			t.Errorf("applied = %d, want only the pending migration", applied)
		}
	})

	t.Run("failed migration leaves version unchanged", func(t *testing.T) {
		db := newTestDB(t)
		broken := migrationFS()
		broken["002_add_color.sql"] = &fstest.MapFile{Data: []byte(`THIS IS NOT SQL;`)}

		runner := NewRunner(db, broken)
		applied, err := runner.ApplyMigrations(nil)
		if err == nil {
			t.Fatal("ApplyMigrations() = nil error, want failure on broken migration")
		}
		if applied != 1 {
			t.Errorf("applied = %d, want 1 before the failure", applied)
		}

		version, err := runner.GetCurrentVersion()
		if err != nil {
			t.Fatalf("GetCurrentVersion() failed: %v", err)
		}
		if version != 1 {
			t.Errorf("version = %d after failed migration, want 1", version)
		}
	})
}

func TestValidateVersion(t *testing.T) {
	t.Run("current schema passes", func(t *testing.T) {
		db := newTestDB(t)
		runner := NewRunner(db, migrationFS())
		if _, err := runner.ApplyMigrations(nil); err != nil {
			t.Fatalf("ApplyMigrations() failed: %v", err)
		}
		if err := runner.ValidateVersion(); err != nil {
			t.Errorf("ValidateVersion() failed: %v", err)
		}
	})

	t.Run("schema newer than binary fails", func(t *testing.T) {
		db := newTestDB(t)
		if _, err := NewRunner(db, migrationFS()).ApplyMigrations(nil); err != nil {
			t.Fatalf("ApplyMigrations() failed: %v", err)
		}

		onlyFirst := fstest.MapFS{"001_init.sql": migrationFS()["001_init.sql"]}
		if err := NewRunner(db, onlyFirst).ValidateVersion(); err == nil {
			t.Error("ValidateVersion() = nil error, want failure for newer schema")
		}
	})
}

func TestReadMigrationFiles(t *testing.T) {
	t.Run("sorted by version", func(t *testing.T) {
		db := newTestDB(t)
		fsys := fstest.MapFS{
			"002_b.sql": &fstest.MapFile{Data: []byte(`SELECT 2;`)},
			"001_a.sql": &fstest.MapFile{Data: []byte(`SELECT 1;`)},
			"010_c.sql": &fstest.MapFile{Data: []byte(`SELECT 10;`)},
		}
		migs, err := NewRunner(db, fsys).ReadMigrationFiles()
		if err != nil {
			t.Fatalf("ReadMigrationFiles() failed: %v", err)
		}
		want := []int{1, 2, 10}
		if len(migs) != len(want) {
			t.Fatalf("got %d migrations, want %d", len(migs), len(want))
		}
		for i, v := range want {
			if migs[i].Version != v {
				t.Errorf("migs[%d].Version = %d, want %d", i, migs[i].Version, v)
			}
		}
	})

	t.Run("bad filename rejected", func(t *testing.T) {
		db := newTestDB(t)
		fsys := fstest.MapFS{"init.sql": &fstest.MapFile{Data: []byte(`SELECT 1;`)}}
		if _, err := NewRunner(db, fsys).ReadMigrationFiles(); err == nil {
			t.Error("ReadMigrationFiles() = nil error, want failure for missing version prefix")
		}
	})

	t.Run("duplicate version rejected", func(t *testing.T) {
		db := newTestDB(t)
		fsys := fstest.MapFS{
			"001_a.sql": &fstest.MapFile{Data: []byte(`SELECT 1;`)},
			"001_b.sql": &fstest.MapFile{Data: []byte(`SELECT 1;`)},
		}
		if _, err := NewRunner(db, fsys).ReadMigrationFiles(); err == nil {
			t.Error("ReadMigrationFiles() = nil error, want failure for duplicate version")
		}
	})
}
