package loader

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"f1standings/pkg/config"
	"f1standings/pkg/model"
	"f1standings/pkg/store"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}
	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoadXLSXReadsRequiredColumns(t *testing.T) {
	path := writeWorkbook(t, "Results", [][]interface{}{
		{"Season", "driver", "Race", "Round", "Standing", "TotalPoints", "Team"},
		{2024, "Max Verstappen", "Bahrain Grand Prix", 1, 1, 26, "Red Bull"},
		{2024, "Lando Norris", "Bahrain Grand Prix", 1, 6, 12.5, "McLaren"},
		{},
		{2024, "Max Verstappen", "Saudi Arabian Grand Prix", "2", "1.0", "51", "Red Bull"},
	})

	results, err := LoadXLSX(path, "")
	if err != nil {
		t.Fatalf("LoadXLSX returned error: %v", err)
	}
	want := model.Results{
		{Driver: "Max Verstappen", Race: "Bahrain Grand Prix", Round: 1, Standing: 1, TotalPoints: 26},
		{Driver: "Lando Norris", Race: "Bahrain Grand Prix", Round: 1, Standing: 6, TotalPoints: 12.5},
		{Driver: "Max Verstappen", Race: "Saudi Arabian Grand Prix", Round: 2, Standing: 1, TotalPoints: 51},
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d rows, got %d (%+v)", len(want), len(results), results)
	}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("row %d: got %+v want %+v", i, results[i], want[i])
		}
	}
}

func TestLoadXLSXMissingColumn(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Driver", "Race", "Round", "Standing"},
		{"Max Verstappen", "Bahrain Grand Prix", 1, 1},
	})
	_, err := LoadXLSX(path, "")
	if err == nil || !strings.Contains(err.Error(), `missing column "TotalPoints"`) {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestLoadXLSXBadNumberNamesRow(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Driver", "Race", "Round", "Standing", "TotalPoints"},
		{"Max Verstappen", "Bahrain Grand Prix", 1, "first", 26},
	})
	_, err := LoadXLSX(path, "")
	if err == nil || !strings.Contains(err.Error(), "row 2") || !strings.Contains(err.Error(), "Standing") {
		t.Fatalf("expected row/column in error, got %v", err)
	}
}

func TestLoadXLSXUnknownSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Driver", "Race", "Round", "Standing", "TotalPoints"},
	})
	if _, err := LoadXLSX(path, "Nope"); err == nil {
		t.Fatal("expected error for unknown sheet")
	}
}

func TestLoadPrefersDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "season.db")
	s, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	stored := model.Results{
		{Driver: "Max Verstappen", Race: "Bahrain Grand Prix", Round: 1, Standing: 1, TotalPoints: 26},
	}
	if err := s.ReplaceResults(context.Background(), stored); err != nil {
		t.Fatalf("replace results: %v", err)
	}
	s.Close()

	results, err := Load(context.Background(), config.Data{Path: "does-not-exist.xlsx", Database: dbPath})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(results) != 1 || results[0] != stored[0] {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestLoadSeasonRejectsEmptyRoster(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Driver", "Race", "Round", "Standing", "TotalPoints"},
		{"Fernando Alonso", "Bahrain Grand Prix", 1, 9, 2},
	})
	cfg := config.Default()
	cfg.Data.Path = path
	if _, err := LoadSeason(context.Background(), &cfg); err == nil {
		t.Fatal("expected error when no roster driver has results")
	}
}
