package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/uniscout/internal/database"
	"github.com/nao1215/uniscout/internal/model"
)

func seedHistory(t *testing.T, dir string) {
	t.Helper()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	c := &model.Comparison{
		RunID:     "3f2c9a1e-0000-4000-8000-000000000001",
		MissionID: "transfer-2026",
		Generated: time.Now(),
		Rows: []model.ComparisonRow{
			{University: "Universidad Politecnica de Madrid", MatchPct: 66.67, FinalScore: 71.5},
			{University: "Universitat Politecnica de Valencia", MatchPct: 50, FinalScore: 64.25},
		},
	}
	if err := db.SaveComparison(context.Background(), c); err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}
}

func executeHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewHistoryCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("reports an empty cache", func(t *testing.T) {
		t.Parallel()
		out, err := executeHistory(t, "--cache-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No results yet") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("lists every institution", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir)

		out, err := executeHistory(t, "--cache-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Universidad Politecnica de Madrid", "Universitat Politecnica de Valencia", "3f2c9a1e", "71.50"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("filters by university", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir)

		out, err := executeHistory(t, "--cache-dir", dir, "Universitat Politecnica de Valencia")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out, "Madrid") {
			t.Errorf("expected Madrid to be filtered out, got:\n%s", out)
		}
		if !strings.Contains(out, "64.25") {
			t.Errorf("expected Valencia row, got:\n%s", out)
		}
	})

	t.Run("says so when nothing matches", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir)

		out, err := executeHistory(t, "--cache-dir", dir, "Universidad de Nowhere")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No results found") {
			t.Errorf("unexpected output %q", out)
		}
	})
}

func TestShortRunID(t *testing.T) {
	t.Parallel()

	if got := shortRunID("3f2c9a1e-0000-4000-8000-000000000001"); got != "3f2c9a1e" {
		t.Errorf("shortRunID = %q", got)
	}
	if got := shortRunID("run1"); got != "run1" {
		t.Errorf("shortRunID = %q", got)
	}
}
