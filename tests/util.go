package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/student"
	"github.com/trezcool/campus/storage/database"
)

// PrepareDB opens a migrated, in-memory SQLite database closed at the end of the test.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conf := &core.Config{Database: core.DatabaseConfig{Engine: database.EngineSQLite, Path: ":memory:"}}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err = database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name string,
	age int,
	email, year string,
	gpa float64,
	skills ...string,
) student.Student {
	t.Helper()
	std, err := repo.CreateStudent(context.Background(), student.Student{
		Name:   name,
		Age:    age,
		Email:  email,
		GPA:    gpa,
		Major:  "Computer Science",
		Year:   year,
		Skills: skills,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}
