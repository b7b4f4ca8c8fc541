package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cook-companion/internal/chef"
	"cook-companion/internal/recipes"
	"cook-companion/internal/session"
	"cook-companion/internal/worker"
)

const (
	welcomeText = "🍽️ Glad to assist you today! Choose an option:\n" +
		"🤖 Cook companion AI\n" +
		"📚 Find recipes by list\n\n" +
		"Send /help for more info."
	helpText = "🍳 *Welcome to Cooking Bot!*\n\n" +
		"Use the bot to get recipe suggestions from a photo or from saved recipes.\n\n" +
		"🤖 *Cook companion AI* - Send a photo of your available ingredients.\n" +
		"📚 *Find recipes by list* - Browse saved recipes from the database.\n\n" +
		"⚙️ Admins can use /admin to add recipes or review comments."
	homeText        = "🏠 Welcome back! Choose an option:"
	deniedText      = "You are not authorized to use admin commands."
	fallbackText    = "I didn't understand that. Send /help for available commands."
	adminPanelText  = "⚙️ Admin panel:"
	askPhotoText    = "Glad to assist you today. Send me a photo of available ingredients and I will provide possible recipes."
	photoFirstText  = "If you'd like a recipe from a photo, first choose 'Cook companion AI' from the menu."
	noRecipesText   = "No recipes available yet."
	recipeListText  = "📚 *Available Recipes*\n\nSelect a recipe to view details:"
	askCommentText  = "💬 Please leave your feedback or comment about this recipe:"
	askFollowupText = "💬 Ask me anything about these recipes! (cooking tips, substitutions, variations, etc.)"
	askTitleText    = "📝 First, send the recipe *title*:"
	noCommentsText  = "No comments yet."
	busyText        = "⏳ I'm busy with other requests right now. Please try again in a moment."
	photoFailedText = "Sorry, I couldn't download your photo. Please try again."
	saveFailedText  = "Sorry, I couldn't save that right now. Please try again later."
	commentThanks   = "Thank you for your comment! 🙏\n\n🏠 Returning to Home..."
	feedbackThanks  = "Thank you for your feedback! 🙏\n\n🏠 Returning to Home..."
	processingPhoto = "🔍 Processing your photo... this may take a few seconds."
	processingList  = "🔍 Processing your ingredients... this may take a few seconds."
)

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	uid := msg.From.ID
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, welcomeText, mainKeyboard(b.isAdmin(uid)))
	case "help":
		b.sendMarkdown(msg.Chat.ID, helpText, nil)
	case "admin":
		b.showAdminPanel(msg.Chat.ID, uid)
	case "cancel":
		b.goHome(msg.Chat.ID, uid)
	default:
		b.sendMessage(msg.Chat.ID, fallbackText, mainKeyboard(b.isAdmin(uid)))
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	uid := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	action := parseMenuAction(text)

	if action == actionHome {
		b.goHome(chatID, uid)
		return
	}

	state := b.sessions.Get(uid)
	if session.InAdminFlow(state) {
		b.handleAdminInput(chatID, uid, state, text)
		return
	}

	switch action {
	case actionCookAI:
		b.sessions.Set(uid, session.AwaitingPhoto{})
		b.sendMessage(chatID, askPhotoText, nil)
		return
	case actionFindList:
		b.showRecipeList(chatID, uid)
		return
	case actionAdmin:
		b.showAdminPanel(chatID, uid)
		return
	}

	switch st := state.(type) {
	case session.Chatting:
		b.submitFollowup(ctx, chatID, uid, text, st)
	case session.AwaitingComment:
		idx := st.RecipeIndex
		b.saveComment(chatID, uid, recipes.Comment{User: displayName(msg.From, uid), UserID: uid, Text: text, RecipeIdx: &idx}, commentThanks)
	case session.Browsing:
		b.saveComment(chatID, uid, recipes.Comment{User: displayName(msg.From, uid), UserID: uid, Text: text}, feedbackThanks)
	case session.AwaitingPhoto:
		b.submitIngredients(ctx, chatID, uid, text)
	default:
		b.sendMessage(chatID, fallbackText, mainKeyboard(b.isAdmin(uid)))
	}
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	uid := msg.From.ID
	chatID := msg.Chat.ID
	if _, ok := b.sessions.Get(uid).(session.AwaitingPhoto); !ok {
		b.sendMessage(chatID, photoFirstText, nil)
		return
	}
	if !b.chef.Available() {
		b.sendMessage(chatID, chef.UnavailableMessage, nil)
		return
	}
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	b.sendMessage(chatID, processingPhoto, nil)
	b.submit(ctx, chatID, func(ctx context.Context) {
		img, err := b.photos.FetchPhoto(ctx, fileID)
		if err != nil {
			log.Printf("❌ photo download for user %d failed: %v", uid, err)
			b.sendMessage(chatID, photoFailedText, nil)
			return
		}
		b.deliverSuggestions(chatID, uid, b.chef.SuggestFromImage(ctx, uid, img))
	})
}

func (b *Bot) submitIngredients(ctx context.Context, chatID, uid int64, ingredients string) {
	if !b.chef.Available() {
		b.sendMessage(chatID, chef.UnavailableMessage, nil)
		return
	}
	b.sendMessage(chatID, processingList, nil)
	b.submit(ctx, chatID, func(ctx context.Context) {
		b.deliverSuggestions(chatID, uid, b.chef.SuggestFromText(ctx, uid, ingredients))
	})
}

// deliverSuggestions runs on a worker once the model has answered.
func (b *Bot) deliverSuggestions(chatID, uid int64, result string) {
	b.sendLong(chatID, tidyMarkdown(result))
	next := session.Chatting{Context: result}
	advanced := b.sessions.Advance(uid, session.AwaitingPhoto{}, next)
	if !advanced {
		// Another suggestion got there first; follow-ups refer to the newest one.
		if cur, ok := b.sessions.Get(uid).(session.Chatting); ok {
			advanced = b.sessions.Advance(uid, cur, next)
		}
	}
	if !advanced {
		log.Printf("ℹ️ user %d left the photo step before suggestions arrived", uid)
		return
	}
	b.sendMessage(chatID, askFollowupText, homeKeyboard())
}

func (b *Bot) submitFollowup(ctx context.Context, chatID, uid int64, question string, st session.Chatting) {
	b.submit(ctx, chatID, func(ctx context.Context) {
		answer := b.chef.AnswerFollowup(ctx, uid, question, st.Context)
		parts := paginate(tidyMarkdown(answer), maxMessageRunes)
		for i, part := range parts {
			var markup interface{}
			if i == len(parts)-1 {
				markup = homeKeyboard()
			}
			b.sendMarkdown(chatID, part, markup)
		}
	})
}

func (b *Bot) submit(ctx context.Context, chatID int64, task worker.Task) {
	// Tasks outlive the update loop so pool.Close can drain them on shutdown.
	if err := b.exec.Submit(context.WithoutCancel(ctx), task); err != nil {
		log.Printf("⚠️ could not queue AI task for chat %d: %v", chatID, err)
		b.sendMessage(chatID, busyText, nil)
	}
}

func (b *Bot) goHome(chatID, uid int64) {
	b.sessions.Clear(uid)
	b.sendMessage(chatID, homeText, mainKeyboard(b.isAdmin(uid)))
}

func (b *Bot) showRecipeList(chatID, uid int64) {
	rs := b.loadRecipes()
	if len(rs) == 0 {
		b.sendMessage(chatID, noRecipesText, nil)
		return
	}
	b.sendMarkdown(chatID, recipeListText, recipeList(rs))
	b.sessions.Set(uid, session.Browsing{})
}

func (b *Bot) saveComment(chatID, uid int64, c recipes.Comment, thanks string) {
	b.sessions.Clear(uid)
	if err := b.store.AppendComment(c); err != nil {
		log.Printf("❌ failed to save comment from user %d: %v", uid, err)
		b.sendMessage(chatID, saveFailedText, mainKeyboard(b.isAdmin(uid)))
		return
	}
	b.sendMessage(chatID, thanks, mainKeyboard(b.isAdmin(uid)))
}

func (b *Bot) showAdminPanel(chatID, uid int64) {
	if !b.isAdmin(uid) {
		b.sendMessage(chatID, deniedText, nil)
		return
	}
	b.sendMessage(chatID, adminPanelText, adminPanel())
}

// handleAdminInput captures the title and then the body of a new recipe.
func (b *Bot) handleAdminInput(chatID, uid int64, state session.State, text string) {
	if !b.isAdmin(uid) {
		b.sessions.Clear(uid)
		b.sendMessage(chatID, deniedText, nil)
		return
	}
	switch st := state.(type) {
	case session.AwaitingTitle:
		b.sessions.Set(uid, session.AwaitingText{Title: text})
		b.sendMarkdown(chatID, fmt.Sprintf("✅ Title: *%s*\n\nNow send the full recipe text (ingredients and instructions):", text), nil)
	case session.AwaitingText:
		title := st.Title
		if title == "" {
			title = "Untitled Recipe"
		}
		b.sessions.Clear(uid)
		if err := b.store.AppendRecipe(recipes.Recipe{AddedBy: uid, Title: title, Text: text}); err != nil {
			log.Printf("❌ failed to save recipe %q from admin %d: %v", title, uid, err)
			b.sendMessage(chatID, saveFailedText, mainKeyboard(true))
			return
		}
		log.Printf("📗 admin %d added recipe %q", uid, title)
		b.sendMarkdown(chatID, fmt.Sprintf("Recipe \"*%s*\" saved successfully! ✅", title), mainKeyboard(true))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	b.answerCallback(cb)
	uid := cb.From.ID
	chatID := uid
	if cb.Message != nil && cb.Message.Chat != nil {
		chatID = cb.Message.Chat.ID
	}

	switch data := cb.Data; {
	case data == cbAdminAdd:
		if !b.isAdmin(uid) {
			b.sendMessage(chatID, deniedText, nil)
			return
		}
		b.sessions.Set(uid, session.AwaitingTitle{})
		b.sendMarkdown(chatID, askTitleText, nil)
	case data == cbAdminReview:
		if !b.isAdmin(uid) {
			b.sendMessage(chatID, deniedText, nil)
			return
		}
		b.reviewComments(chatID)
	case strings.HasPrefix(data, recipePrefix):
		b.showRecipe(chatID, uid, data)
	case strings.HasPrefix(data, commentsPrefix):
		b.showRecipeComments(chatID, data)
	default:
		log.Printf("ℹ️ ignoring unknown callback %q from user %d", data, uid)
	}
}

func (b *Bot) showRecipe(chatID, uid int64, data string) {
	r, idx, err := b.lookupRecipe(data, recipePrefix)
	if err != nil {
		b.sendMessage(chatID, "Error loading recipe: "+err.Error(), nil)
		return
	}
	b.sendLong(chatID, fmt.Sprintf("*%s*\n\n%s", r.DisplayTitle(), r.Text))
	b.sendMessage(chatID, askCommentText, showCommentsButton(idx))
	b.sessions.Set(uid, session.AwaitingComment{RecipeIndex: idx})
}

func (b *Bot) showRecipeComments(chatID int64, data string) {
	r, idx, err := b.lookupRecipe(data, commentsPrefix)
	if err != nil {
		b.sendMessage(chatID, "Error loading comments: "+err.Error(), nil)
		return
	}
	comments, err := b.store.ListComments()
	if err != nil {
		log.Printf("⚠️ comments unreadable, showing none: %v", err)
	}
	linked := recipes.CommentsFor(comments, idx)
	header := fmt.Sprintf("📝 *Comments for %s*\n\n", r.DisplayTitle())
	if len(linked) == 0 {
		b.sendMarkdown(chatID, header+"No comments yet. Be the first to leave feedback!", nil)
		return
	}
	var sb strings.Builder
	sb.WriteString(header)
	for i, c := range linked {
		user := c.User
		if user == "" {
			user = "Anonymous"
		}
		fmt.Fprintf(&sb, "%d. *%s*: %s\n\n", i+1, user, c.Text)
	}
	b.sendLong(chatID, strings.TrimRight(sb.String(), "\n"))
}

func (b *Bot) reviewComments(chatID int64) {
	comments, err := b.store.ListComments()
	if err != nil {
		log.Printf("⚠️ comments unreadable, showing none: %v", err)
	}
	if len(comments) == 0 {
		b.sendMessage(chatID, noCommentsText, nil)
		return
	}
	entries := make([]string, len(comments))
	for i, c := range comments {
		user := c.User
		if user == "" {
			user = "unknown"
		}
		entries[i] = user + ": " + c.Text
	}
	for _, part := range paginate("Comments:\n"+strings.Join(entries, "\n---\n"), maxMessageRunes) {
		b.sendMessage(chatID, part, nil)
	}
}

var errRecipeNotFound = errors.New("recipe not found")

func (b *Bot) lookupRecipe(data, prefix string) (recipes.Recipe, int, error) {
	idx, err := parseIndex(data, prefix)
	if err != nil {
		return recipes.Recipe{}, 0, err
	}
	rs := b.loadRecipes()
	if idx < 0 || idx >= len(rs) {
		return recipes.Recipe{}, 0, fmt.Errorf("%w: index %d", errRecipeNotFound, idx)
	}
	return rs[idx], idx, nil
}

func (b *Bot) loadRecipes() []recipes.Recipe {
	rs, err := b.store.ListRecipes()
	if err != nil {
		log.Printf("⚠️ recipes unreadable, treating as empty: %v", err)
	}
	return rs
}
