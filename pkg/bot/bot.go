package bot

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

type Bot struct {
	api *tgbotapi.BotAPI
	app Accepter
}

// New connects to Telegram with token. The app is built with the connected
// API so it can reply.
func New(token string, debug bool, build func(Sender) Accepter) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "connect to telegram")
	}
	api.Debug = debug
	log.Printf("Authorized on account %s\n", api.Self.UserName)
	return &Bot{api: api, app: build(api)}, nil
}

// Run receives updates until ctx is done.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Println("Start listening for updates. Press Ctrl-C to stop it")
	defer b.api.StopReceivingUpdates()

	receiveUpdates(ctx, b.app, updates)
}

func receiveUpdates(ctx context.Context, app Accepter, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			handleUpdate(ctx, app, update)
		}
	}
}

func handleUpdate(ctx context.Context, app Accepter, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		handleMessage(ctx, app, update.Message)
	case update.CallbackQuery != nil:
		accept, handler := app.AcceptCallback(update.CallbackQuery)
		if !accept {
			return
		}
		if err := handler(ctx, update.CallbackQuery); err != nil {
			log.Printf("An error occured: %s", err.Error())
		}
	}
}

func handleMessage(ctx context.Context, app Accepter, message *tgbotapi.Message) {
	user := message.From
	if user == nil {
		return
	}
	log.Printf("%s wrote %s", user.FirstName, message.Text)

	var accept bool
	var handler func(ctx context.Context, chatId int64) error
	if message.IsCommand() {
		accept, handler = app.AcceptCommand(message.Command(), message.CommandArguments())
	} else {
		accept, handler = app.AcceptButton(message.Text)
	}
	if !accept {
		return
	}
	if err := handler(ctx, message.Chat.ID); err != nil {
		log.Printf("An error occured: %s", err.Error())
	}
}
