package bot

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"f1standings/pkg/chart"
	"f1standings/pkg/model"
	"f1standings/pkg/standings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	commandChart = "chart"
	commandTable = "table"
	buttonChart  = "Chart"
	buttonTable  = "Table"
)

type StandingsApp struct {
	bot    Sender
	season *standings.Season
	roster model.Roster
	opts   chart.Options
}

func NewStandingsApp(bot Sender, season *standings.Season, roster model.Roster, opts chart.Options) *StandingsApp {
	return &StandingsApp{
		bot:    bot,
		season: season,
		roster: roster,
		opts:   opts,
	}
}

func (sa *StandingsApp) AcceptCommand(command, args string) (bool, func(ctx context.Context, chatId int64) error) {
	switch command {
	case commandChart:
		return true, sa.renderChart(args)
	case commandTable:
		return true, sa.renderTable(args)
	}
	return false, nil
}

func (sa *StandingsApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	switch button {
	case buttonChart:
		return true, sa.renderChart("")
	case buttonTable:
		return true, sa.renderTable("")
	}
	return false, nil
}

func (sa *StandingsApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	if !strings.HasPrefix(query.Data, callbackRound+":") {
		return false, nil
	}
	return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
		if _, err := sa.bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
			log.Println("callback:", err)
		}
		round, ok := parsePager(query.Data, sa.season.Len())
		if !ok || query.Message == nil {
			return nil
		}
		text, keyboard := TableTextMarkup(sa.season, sa.roster, round)
		msg := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = &keyboard
		_, err := sa.bot.Send(msg)
		return err
	}
}

func (sa *StandingsApp) replyError(chatId int64, err error) error {
	_, sendErr := sa.bot.Send(tgbotapi.NewMessage(chatId, err.Error()))
	return sendErr
}

func (sa *StandingsApp) renderChart(args string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		round, err := parseRound(args, sa.season.Len())
		if err != nil {
			return sa.replyError(chatId, err)
		}
		fig := chart.Draw(sa.season, sa.roster, sa.opts, round)
		var b bytes.Buffer
		if err := chart.Render(&b, fig, chart.FormatPNG); err != nil {
			return err
		}
		photo := tgbotapi.NewPhoto(chatId, tgbotapi.FileBytes{
			Name:  fmt.Sprintf("standings_round_%d.png", round),
			Bytes: b.Bytes(),
		})
		photo.Caption = fmt.Sprintf("Round %d/%d · %s", round, sa.season.Len(), sa.season.Races()[round-1])
		_, err = sa.bot.Send(photo)
		return err
	}
}

func (sa *StandingsApp) renderTable(args string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		round, err := parseRound(args, sa.season.Len())
		if err != nil {
			return sa.replyError(chatId, err)
		}
		text, keyboard := TableTextMarkup(sa.season, sa.roster, round)
		msg := tgbotapi.NewMessage(chatId, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = keyboard
		_, err = sa.bot.Send(msg)
		return err
	}
}
