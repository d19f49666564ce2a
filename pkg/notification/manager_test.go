package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"f1standings/pkg/model"
	"f1standings/pkg/standings"

	"github.com/nikoksr/notify"
)

type staticLister []int64

func (l staticLister) ListSubscribers(ctx context.Context) ([]int64, error) {
	return l, nil
}

type recordingService struct {
	subject string
	message string
	err     error
}

func (r *recordingService) Send(ctx context.Context, subject, message string) error {
	r.subject = subject
	r.message = message
	return r.err
}

func testSeason() (*standings.Season, model.Roster) {
	roster := model.Roster{
		{Name: "Max Verstappen", Color: "#213448"},
		{Name: "Lando Norris", Color: "#EB5B00"},
	}
	results := model.Results{
		{Driver: "Max Verstappen", Race: "Bahrain Grand Prix", Round: 1, Standing: 1, TotalPoints: 26},
		{Driver: "Lando Norris", Race: "Bahrain Grand Prix", Round: 1, Standing: 6, TotalPoints: 8},
	}
	return standings.Prepare(results, roster, standings.DefaultRaceNameLength), roster
}

func TestNotifyStandingsSendsToSubscribers(t *testing.T) {
	season, roster := testSeason()
	service := &recordingService{}
	var receivers []int64
	m := NewManager(staticLister{42, 7}, func(chatIDs []int64) (notify.Notifier, error) {
		receivers = chatIDs
		return service, nil
	})

	n, err := m.NotifyStandings(context.Background(), season, roster)
	if err != nil {
		t.Fatalf("NotifyStandings: %v", err)
	}
	if n != 2 || len(receivers) != 2 {
		t.Fatalf("expected 2 receivers, got %d (%v)", n, receivers)
	}
	if service.subject != subjectStandings {
		t.Fatalf("unexpected subject %q", service.subject)
	}
	if !strings.Contains(service.message, "<pre>") || !strings.Contains(service.message, "MVE") {
		t.Fatalf("unexpected message %q", service.message)
	}
}

func TestNotifyStandingsWithoutSubscribers(t *testing.T) {
	season, roster := testSeason()
	m := NewManager(staticLister{}, func(chatIDs []int64) (notify.Notifier, error) {
		t.Fatal("no notifier should be built without subscribers")
		return nil, nil
	})
	n, err := m.NotifyStandings(context.Background(), season, roster)
	if err != nil || n != 0 {
		t.Fatalf("expected no notification, got %d, %v", n, err)
	}
}

func TestNotifyStandingsReportsSendError(t *testing.T) {
	season, roster := testSeason()
	service := &recordingService{err: errors.New("boom")}
	m := NewManager(staticLister{1}, func(chatIDs []int64) (notify.Notifier, error) {
		return service, nil
	})
	if _, err := m.NotifyStandings(context.Background(), season, roster); err == nil {
		t.Fatal("expected send error")
	}
}
