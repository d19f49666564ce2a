package bot

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"f1standings/pkg/model"
	"f1standings/pkg/scoreboard"
	"f1standings/pkg/standings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackRound = "round"
	pagerPrev     = "prev"
	pagerNext     = "next"
)

var codeEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`")

// TableTextMarkup renders the standings after round as a MarkdownV2 code
// block together with the prev/next pager.
func TableTextMarkup(season *standings.Season, roster model.Roster, round int) (text string, markup tgbotapi.InlineKeyboardMarkup) {
	total := season.Len()
	round = season.Clamp(round)

	title := "No races"
	if round > 0 {
		title = fmt.Sprintf("Round %d/%d · %s", round, total, season.Races()[round-1])
	}
	var b bytes.Buffer
	scoreboard.Compact(&b, scoreboard.Entries(season, roster, round))
	text = fmt.Sprintf("```\n%s\n\n%s```", codeEscaper.Replace(title), codeEscaper.Replace(b.String()))

	var row []tgbotapi.InlineKeyboardButton
	if round > 1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Previous", fmt.Sprintf("%s:%s:%d", callbackRound, pagerPrev, round)))
	}
	if round < total {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next", fmt.Sprintf("%s:%s:%d", callbackRound, pagerNext, round)))
	}
	markup = tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	if len(row) > 0 {
		markup = tgbotapi.NewInlineKeyboardMarkup(row)
	}
	return
}

// parsePager reads "round:<prev|next>:<n>" and returns the round to show.
func parsePager(data string, total int) (int, bool) {
	split := strings.Split(data, ":")
	if len(split) != 3 || split[0] != callbackRound {
		return 0, false
	}
	current, err := strconv.Atoi(split[2])
	if err != nil {
		return 0, false
	}
	target := current
	switch split[1] {
	case pagerPrev:
		target--
	case pagerNext:
		target++
	default:
		return 0, false
	}
	if target < 1 || target > total {
		return 0, false
	}
	return target, true
}

// parseRound reads an optional round argument. Empty means the whole season.
func parseRound(args string, total int) (int, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return total, nil
	}
	round, err := strconv.Atoi(args)
	if err != nil || round < 1 || round > total {
		return 0, fmt.Errorf("round must be a number between 1 and %d", total)
	}
	return round, nil
}
