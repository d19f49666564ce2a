package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	commandSubscribe   = "subscribe"
	commandUnsubscribe = "unsubscribe"
)

type Subscriptions interface {
	AddSubscriber(ctx context.Context, chatID int64) error
	RemoveSubscriber(ctx context.Context, chatID int64) (bool, error)
}

// SubscriptionsApp lets a chat opt in to the standings sent after each import.
type SubscriptionsApp struct {
	bot  Sender
	subs Subscriptions
}

func NewSubscriptionsApp(bot Sender, subs Subscriptions) *SubscriptionsApp {
	return &SubscriptionsApp{
		bot:  bot,
		subs: subs,
	}
}

func (sa *SubscriptionsApp) AcceptCommand(command, args string) (bool, func(ctx context.Context, chatId int64) error) {
	switch command {
	case commandSubscribe:
		return true, sa.subscribe()
	case commandUnsubscribe:
		return true, sa.unsubscribe()
	}
	return false, nil
}

func (sa *SubscriptionsApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	return false, nil
}

func (sa *SubscriptionsApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	return false, nil
}

func (sa *SubscriptionsApp) subscribe() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if err := sa.subs.AddSubscriber(ctx, chatId); err != nil {
			return err
		}
		_, err := sa.bot.Send(tgbotapi.NewMessage(chatId, "🔔 You will get the standings whenever new results are imported."))
		return err
	}
}

func (sa *SubscriptionsApp) unsubscribe() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		removed, err := sa.subs.RemoveSubscriber(ctx, chatId)
		if err != nil {
			return err
		}
		text := "🔕 Notifications disabled."
		if !removed {
			text = "This chat was not subscribed."
		}
		_, err = sa.bot.Send(tgbotapi.NewMessage(chatId, text))
		return err
	}
}
