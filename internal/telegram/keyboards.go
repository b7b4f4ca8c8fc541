package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cook-companion/internal/recipes"
)

// Reply keyboard buttons. Users may also type the label without the emoji.
const (
	btnCookAI   = "🤖 Cook companion AI"
	btnFindList = "📚 Find recipes by list"
	btnAdmin    = "⚙️ /admin"
	btnHome     = "🏠 Back to Home"
)

// Callback payloads.
const (
	cbAdminAdd     = "admin_add"
	cbAdminReview  = "admin_review"
	recipePrefix   = "recipe_"
	commentsPrefix = "show_comments_"
)

type menuAction int

const (
	actionNone menuAction = iota
	actionCookAI
	actionFindList
	actionAdmin
	actionHome
)

// parseMenuAction maps reply keyboard text to an action.
func parseMenuAction(text string) menuAction {
	switch strings.TrimSpace(text) {
	case btnCookAI, "Cook companion AI":
		return actionCookAI
	case btnFindList, "Find recipes by list":
		return actionFindList
	case btnAdmin:
		return actionAdmin
	case btnHome, "Back to Home":
		return actionHome
	}
	return actionNone
}

func mainKeyboard(isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCookAI),
			tgbotapi.NewKeyboardButton(btnFindList),
		),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAdmin)))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func homeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnHome)))
	kb.ResizeKeyboard = true
	return kb
}

func adminPanel() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("➕ Add recipe", cbAdminAdd)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💬 Review comments", cbAdminReview)),
	)
}

// recipeList has one button per recipe, keyed by position.
func recipeList(rs []recipes.Recipe) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rs))
	for i, r := range rs {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 "+r.DisplayTitle(), recipePrefix+strconv.Itoa(i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func showCommentsButton(idx int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📝 Show Comments", fmt.Sprintf("%s%d", commentsPrefix, idx))),
	)
}

// parseIndex reads the recipe index after prefix.
func parseIndex(data, prefix string) (int, error) {
	raw := strings.TrimPrefix(data, prefix)
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid recipe index %q", raw)
	}
	return idx, nil
}
