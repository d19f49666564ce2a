package notification

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log"

	"f1standings/pkg/model"
	"f1standings/pkg/scoreboard"
	"f1standings/pkg/standings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"
	"github.com/nikoksr/notify/service/telegram"
	"github.com/pkg/errors"
)

const subjectStandings = "🏁 Standings updated"

type Lister interface {
	ListSubscribers(ctx context.Context) ([]int64, error)
}

// ServiceBuilder returns the notifier delivering to chatIDs.
type ServiceBuilder func(chatIDs []int64) (notify.Notifier, error)

type Manager struct {
	lister Lister
	build  ServiceBuilder
}

func NewManager(lister Lister, build ServiceBuilder) *Manager {
	return &Manager{
		lister: lister,
		build:  build,
	}
}

// TelegramService sends through the Telegram bot identified by token.
func TelegramService(token string) ServiceBuilder {
	return func(chatIDs []int64) (notify.Notifier, error) {
		tg, err := telegram.New(token)
		if err != nil {
			return nil, errors.Wrap(err, "telegram notifier")
		}
		tg.SetParseMode(tgbotapi.ModeHTML)
		tg.AddReceivers(chatIDs...)
		return tg, nil
	}
}

// NotifyStandings sends the standings after the last round to every
// subscriber. It returns how many chats were notified.
func (m *Manager) NotifyStandings(ctx context.Context, season *standings.Season, roster model.Roster) (int, error) {
	chatIDs, err := m.lister.ListSubscribers(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "list subscribers")
	}
	if len(chatIDs) == 0 || season.Len() == 0 {
		return 0, nil
	}
	log.Printf("Sending standings to %d telegram chats\n", len(chatIDs))

	service, err := m.build(chatIDs)
	if err != nil {
		return 0, err
	}
	n := notify.NewWithServices(service)
	if err := n.Send(ctx, subjectStandings, StandingsMessage(season, roster)); err != nil {
		return 0, errors.Wrap(err, "send standings")
	}
	return len(chatIDs), nil
}

// StandingsMessage renders the standings after the last round as HTML.
func StandingsMessage(season *standings.Season, roster model.Roster) string {
	round := season.Len()
	if round == 0 {
		return "No races"
	}
	var b bytes.Buffer
	scoreboard.Compact(&b, scoreboard.Entries(season, roster, round))
	title := fmt.Sprintf("Round %d/%d · %s", round, season.Len(), season.Races()[round-1])
	return fmt.Sprintf("%s\n<pre>%s</pre>", html.EscapeString(title), html.EscapeString(b.String()))
}
