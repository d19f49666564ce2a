package store

import (
	"context"
	"path/filepath"
	"testing"

	"f1standings/pkg/model"
)

func TestReplaceResultsKeepsOrderAndReplaces(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	first := model.Results{
		{Driver: "Lando Norris", Race: "Saudi Arabian Grand Prix", Round: 2, Standing: 3, TotalPoints: 28},
		{Driver: "Max Verstappen", Race: "Bahrain Grand Prix", Round: 1, Standing: 1, TotalPoints: 26},
	}
	if err := s.ReplaceResults(ctx, first); err != nil {
		t.Fatalf("ReplaceResults: %v", err)
	}
	got, err := s.ListResults(ctx)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(got) != 2 || got[0] != first[0] || got[1] != first[1] {
		t.Fatalf("unexpected rows %+v", got)
	}

	second := model.Results{
		{Driver: "Oscar Piastri", Race: "Monaco", Round: 8, Standing: 3, TotalPoints: 124.5},
	}
	if err := s.ReplaceResults(ctx, second); err != nil {
		t.Fatalf("ReplaceResults: %v", err)
	}
	got, err = s.ListResults(ctx)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(got) != 1 || got[0] != second[0] {
		t.Fatalf("expected replacement, got %+v", got)
	}
}

func TestSubscribers(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "subscribers.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	for _, id := range []int64{42, 7, 42} {
		if err := s.AddSubscriber(ctx, id); err != nil {
			t.Fatalf("AddSubscriber(%d): %v", id, err)
		}
	}
	ids, err := s.ListSubscribers(ctx)
	if err != nil {
		t.Fatalf("ListSubscribers: %v", err)
	}
	if len(ids) != 2 || ids[0] != 7 || ids[1] != 42 {
		t.Fatalf("unexpected subscribers %v", ids)
	}

	removed, err := s.RemoveSubscriber(ctx, 7)
	if err != nil || !removed {
		t.Fatalf("RemoveSubscriber(7) = %v, %v", removed, err)
	}
	removed, err = s.RemoveSubscriber(ctx, 7)
	if err != nil || removed {
		t.Fatalf("second RemoveSubscriber(7) = %v, %v", removed, err)
	}
}
