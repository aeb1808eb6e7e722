package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/pkg/prometheus"
)

const (
	correlationIDKey = "correlation_id"
	chatIDKey        = "chat_id"
	commandKey       = "command"
	errorKey         = "error"
	successKey       = "success"
	topicKey         = "topic"
	delay            = time.Millisecond * 100
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if update.CallbackQuery.Message == nil {
			return
		}
		b.handleCallback(ctx, update.CallbackQuery.Message.Chat.ID,
			update.CallbackQuery.Data, update.CallbackQuery.ID)

	case update.Message == nil:
		return

	case update.Message.WebAppData != nil:
		b.handleRegistration(ctx, update.Message.Chat.ID, update.Message.WebAppData.Data)

	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message.Chat.ID, update.Message.Command())

	default:
		b.handleFreeText(ctx, update.Message.Chat.ID, strings.TrimSpace(update.Message.Text))
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	startTime := time.Now()
	defer func() {
		prometheus.CommandDuration.WithLabelValues(command).Observe(time.Since(startTime).Seconds())
	}()

	status := successKey
	defer func() {
		prometheus.CommandCounter.WithLabelValues(command, status).Inc()
	}()

	ctx = context.WithValue(ctx, correlationIDKey, b.GetCorrelationID(ctx, chatID))

	b.log.Info(
		"command received", chatIDKey, chatID, commandKey, command,
		correlationIDKey, ctx.Value(correlationIDKey))

	switch command {
	case "start":
		b.handleStart(ctx, chatID)
	case "help":
		b.SendMessage(ctx, chatID, msgHelp)
	default:
		status = errorKey
		b.SendMessage(ctx, chatID, msgUnknownCommand)
	}
}

// handleStart opens a fresh session for registered users and points unknown
// users at the registration WebApp. Any in-flight session is discarded.
func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	b.clearSession(ctx, chatID)

	account, err := b.accounts.FindByTelegramID(ctx, chatID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		b.log.Info("registration required", chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, domain.ErrUnregisteredUser)
		b.SendMessageWithKeyboard(ctx, chatID, msgRegistrationPrompt, b.registrationKeyboard())
		return
	}
	if err != nil {
		b.log.Error("account lookup failed", chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey), errorKey, err)
		b.SendMessage(ctx, chatID, msgInternalError)
		return
	}

	stats, err := b.accounts.Statistics(ctx, account.ID)
	if err != nil {
		b.log.Error("statistics lookup failed", chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey), errorKey, err)
	}

	state := &domain.SessionState{
		Step:    StepLanguage,
		Request: domain.DeckRequest{UserID: chatID},
	}
	if err := b.SetState(ctx, chatID, state); err != nil {
		b.log.Error("session create failed", chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey), errorKey, err)
		b.SendMessage(ctx, chatID, msgInternalError)
		return
	}
	prometheus.ActiveSessions.Inc()

	b.SendMessageWithKeyboard(ctx, chatID, msgGreeting(account.FullName, stats), languageKeyboard())
}

func (b *Bot) handleCallback(ctx context.Context, chatID int64, data string, callbackID string) {
	ctx = context.WithValue(ctx, correlationIDKey, b.GetCorrelationID(ctx, chatID))
	state := b.GetStateByID(ctx, chatID)

	switch {
	case data == callbackStats:
		b.AnswerCallbackQuery(callbackID, "")
		b.handleStats(ctx, chatID)

	case strings.HasPrefix(data, prefixLanguage):
		if err := applyLanguageChoice(state, data); err != nil {
			b.rejectChoice(ctx, chatID, callbackID, data, err)
			return
		}
		b.AnswerCallbackQuery(callbackID, msgLanguageConfirmed(state.Request.Language))
		b.SendMessageWithKeyboard(ctx, chatID, msgChooseSlideCount, slideCountKeyboard())

	case strings.HasPrefix(data, prefixSlides):
		count, err := applySlideCountChoice(state, data)
		if err != nil {
			b.rejectChoice(ctx, chatID, callbackID, data, err)
			return
		}
		b.AnswerCallbackQuery(callbackID, fmt.Sprintf("%d slayd tanlandi ✓", count))
		b.SendMessage(ctx, chatID, msgSlideCountConfirmed(count))
		b.sendThemeOffers(ctx, chatID)

	case strings.HasPrefix(data, prefixTheme):
		theme, err := applyThemeChoice(state, b.themes, data)
		if err != nil {
			b.rejectChoice(ctx, chatID, callbackID, data, err)
			return
		}
		b.AnswerCallbackQuery(callbackID, "Fon tanlandi ✓")
		b.SendMessage(ctx, chatID, msgTopicPrompt(theme.Label))

	default:
		b.rejectChoice(ctx, chatID, callbackID, data, domain.ErrInvalidChoice)
	}
}

// rejectChoice answers a callback that does not fit the current step. The
// session is left exactly as it was.
func (b *Bot) rejectChoice(ctx context.Context, chatID int64, callbackID, data string, err error) {
	b.log.Debug("choice rejected",
		chatIDKey, chatID,
		"data", data,
		correlationIDKey, ctx.Value(correlationIDKey),
		errorKey, err)
	b.AnswerCallbackQuery(callbackID, "")
	b.SendMessage(ctx, chatID, msgRestartHint)
}

// sendThemeOffers presents every catalog theme as its own preview photo
// with a select button, in catalog order.
func (b *Bot) sendThemeOffers(ctx context.Context, chatID int64) {
	for _, theme := range b.themes.List() {
		image, err := b.preview(theme)
		if err != nil {
			b.log.Error("preview render failed",
				chatIDKey, chatID,
				"theme", theme.ID,
				correlationIDKey, ctx.Value(correlationIDKey),
				errorKey, err)
			continue
		}

		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(msgThemeOfferButton, prefixTheme+theme.ID),
			),
		)
		b.SendImage(ctx, chatID, image, theme.Label, &keyboard)
		time.Sleep(delay)
	}
}

func (b *Bot) handleFreeText(ctx context.Context, chatID int64, text string) {
	ctx = context.WithValue(ctx, correlationIDKey, b.GetCorrelationID(ctx, chatID))
	state := b.GetStateByID(ctx, chatID)

	if err := applyTopic(state, text); err != nil {
		b.log.Debug("free text outside topic step",
			chatIDKey, chatID,
			"state.Step", state.Step,
			correlationIDKey, ctx.Value(correlationIDKey))
		b.SendMessage(ctx, chatID, msgRestartHint)
		return
	}

	b.handleTopic(ctx, chatID, state)
}

// handleTopic runs the generation pipeline for a fully populated request:
// synthesize -> compose -> deliver -> record. Either failure is terminal
// for the session; the user is told to start over.
func (b *Bot) handleTopic(ctx context.Context, chatID int64, state *domain.SessionState) {
	startTime := time.Now()
	defer func() {
		prometheus.CommandDuration.WithLabelValues("generate").Observe(time.Since(startTime).Seconds())
	}()

	status := successKey
	defer func() {
		prometheus.CommandCounter.WithLabelValues("generate", status).Inc()
	}()

	request := state.Request
	b.SendMessage(ctx, chatID, msgProgress(request.Language, request.Topic, request.SlideCount))

	specs, err := b.planner.Synthesize(ctx, request.Topic, request.Language, request.SlideCount)
	if err != nil {
		status = errorKey
		b.log.Error("content synthesis failed",
			chatIDKey, chatID,
			topicKey, request.Topic,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err)
		b.SendMessage(ctx, chatID, msgGenerationFailed(request.Language))
		b.clearSession(ctx, chatID)
		return
	}

	theme, err := b.themes.Get(request.ThemeID)
	if err != nil {
		status = errorKey
		b.log.Error("theme resolution failed",
			chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err)
		b.SendMessage(ctx, chatID, msgCompositionFailed(request.Language))
		b.clearSession(ctx, chatID)
		return
	}

	path, err := b.builder.Compose(ctx, specs, theme, chatID)
	if err != nil {
		status = errorKey
		b.log.Error("deck composition failed",
			chatIDKey, chatID,
			topicKey, request.Topic,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err)
		b.SendMessage(ctx, chatID, msgCompositionFailed(request.Language))
		b.clearSession(ctx, chatID)
		return
	}

	sendErr := b.SendDocument(ctx, chatID, path, msgDeckReady(request.Language, request.Topic, request.SlideCount))
	// The artifact is not retained either way.
	if err := os.Remove(path); err != nil {
		b.log.Warn("artifact cleanup failed", chatIDKey, chatID, errorKey, err)
	}
	if sendErr != nil {
		status = errorKey
		b.SendMessage(ctx, chatID, msgCompositionFailed(request.Language))
		b.clearSession(ctx, chatID)
		return
	}

	b.recordOutcome(ctx, chatID, request)
	prometheus.DecksGenerated.WithLabelValues(string(request.Language)).Inc()

	b.log.Info("deck delivered",
		chatIDKey, chatID,
		topicKey, request.Topic,
		"slides", request.SlideCount,
		correlationIDKey, ctx.Value(correlationIDKey))

	b.SendMessage(ctx, chatID, msgCreateAnother(request.Language))
	b.clearSession(ctx, chatID)
}

// recordOutcome updates counters and history. Bookkeeping failures are
// logged but never surface to the user: the deck is already delivered.
func (b *Bot) recordOutcome(ctx context.Context, chatID int64, request domain.DeckRequest) {
	account, err := b.accounts.FindByTelegramID(ctx, chatID)
	if err != nil {
		b.log.Warn("account lookup for statistics failed", chatIDKey, chatID, errorKey, err)
		return
	}

	if err := b.accounts.IncrementPresentations(ctx, account.ID, request.SlideCount); err != nil {
		b.log.Warn("statistics update failed", chatIDKey, chatID, errorKey, err)
	}
	if err := b.accounts.RecordPresentation(ctx, account.ID, request); err != nil {
		b.log.Warn("presentation record failed", chatIDKey, chatID, errorKey, err)
	}
	description := fmt.Sprintf("Prezentatsiya yaratildi: %s (%d slayd)", request.Topic, request.SlideCount)
	if err := b.accounts.RecordActivity(ctx, account.ID, domain.ActivityCreateDeck, description); err != nil {
		b.log.Warn("activity record failed", chatIDKey, chatID, errorKey, err)
	}
}

// handleRegistration processes the WebApp registration form.
func (b *Bot) handleRegistration(ctx context.Context, chatID int64, payload string) {
	ctx = context.WithValue(ctx, correlationIDKey, b.GetCorrelationID(ctx, chatID))

	var profile domain.Profile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		b.log.Error("registration payload unreadable",
			chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err)
		b.SendMessage(ctx, chatID, msgRegistrationInvalid)
		return
	}
	if err := b.validate.Struct(profile); err != nil {
		b.log.Info("registration rejected",
			chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err)
		b.SendMessage(ctx, chatID, msgRegistrationInvalid)
		return
	}

	account, err := b.accounts.Create(ctx, chatID, profile)
	if errors.Is(err, domain.ErrDuplicateAccount) {
		b.SendMessage(ctx, chatID, msgRegistrationDuplicate)
		return
	}
	if err != nil {
		b.log.Error("account create failed",
			chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err)
		b.SendMessage(ctx, chatID, msgRegistrationInvalid)
		return
	}

	b.SendMessage(ctx, chatID,
		msgWelcome(account.FullName, account.Gmail, account.PhoneNumber, account.Age))
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	account, err := b.accounts.FindByTelegramID(ctx, chatID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		b.log.Info("registration required", chatIDKey, chatID,
			errorKey, domain.ErrUnregisteredUser)
		b.SendMessageWithKeyboard(ctx, chatID, msgRegistrationPrompt, b.registrationKeyboard())
		return
	}
	if err != nil {
		b.log.Error("account lookup failed", chatIDKey, chatID, errorKey, err)
		b.SendMessage(ctx, chatID, msgInternalError)
		return
	}

	stats, err := b.accounts.Statistics(ctx, account.ID)
	if err != nil {
		b.log.Error("statistics lookup failed", chatIDKey, chatID, errorKey, err)
		b.SendMessage(ctx, chatID, msgInternalError)
		return
	}
	b.SendMessage(ctx, chatID, msgStatistics(account, stats))
}

// clearSession drops the user's session and keeps the active-session gauge
// in step with it.
func (b *Bot) clearSession(ctx context.Context, chatID int64) {
	if state := b.GetStateByID(ctx, chatID); state.Step != "" {
		prometheus.ActiveSessions.Dec()
	}
	b.ResetUserState(ctx, chatID)
}

func (b *Bot) registrationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   "📝 Ro'yxatdan o'tish",
				WebApp: &tgbotapi.WebAppInfo{URL: b.webAppURL},
			},
		),
	)
}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇺🇿 O'zbekcha", prefixLanguage+string(domain.LanguageUz)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", prefixLanguage+string(domain.LanguageEn)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistikam", callbackStats),
		),
	)
}

func slideCountKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(domain.AllowedSlideCounts))
	for _, count := range domain.AllowedSlideCounts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%d slayd", count),
				prefixSlides+strconv.Itoa(count),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
