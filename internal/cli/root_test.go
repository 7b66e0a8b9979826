package cli

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/storage"
)

func TestResolveDate_Explicit(t *testing.T) {
	date, err := ResolveDate("2024-03-15", "UTC")
	if err != nil {
		t.Fatalf("ResolveDate failed: %v", err)
	}
	if date.Format("2006-01-02") != "2024-03-15" {
		t.Errorf("ResolveDate = %s", date)
	}
	if date.Hour() != 0 || date.Minute() != 0 {
		t.Errorf("ResolveDate should land at midnight, got %s", date)
	}
}

func TestResolveDate_Invalid(t *testing.T) {
	if _, err := ResolveDate("15/03/2024", "UTC"); err == nil {
		t.Error("Expected error for non-ISO date")
	}
	if _, err := ResolveDate("2024-03-15", "Not/AZone"); err == nil {
		t.Error("Expected error for unknown timezone")
	}
}

func TestFindSubject_ByIDAndName(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "studyplan.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}

	subject := models.Subject{ID: "s1", Name: "Linear Algebra", Priority: models.PriorityHigh}
	if err := store.AddSubject(subject); err != nil {
		t.Fatal(err)
	}

	byID, err := FindSubject(store, "s1")
	if err != nil || byID.Name != "Linear Algebra" {
		t.Errorf("FindSubject by ID = %+v, %v", byID, err)
	}

	byName, err := FindSubject(store, "linear algebra")
	if err != nil || byName.ID != "s1" {
		t.Errorf("FindSubject by name = %+v, %v", byName, err)
	}

	if _, err := FindSubject(store, "chemistry"); err == nil {
		t.Error("Expected error for unknown subject")
	}
}
