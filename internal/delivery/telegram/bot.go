package telegram

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/pkg/prometheus"
)

type Bot struct {
	*tgbotapi.BotAPI
	StateProvider
	accounts  domain.AccountRepository
	planner   ContentPlanner
	builder   DeckBuilder
	themes    ThemeProvider
	preview   PreviewRenderer
	validate  *validator.Validate
	webAppURL string
	baseCtx   context.Context
	log       *slog.Logger
}

func NewBot(ctx context.Context, config *configs.Config, states StateProvider,
	accounts domain.AccountRepository, planner ContentPlanner, builder DeckBuilder,
	themes ThemeProvider, preview PreviewRenderer, log *slog.Logger) (*Bot, error) {

	api, err := tgbotapi.NewBotAPI(config.TG.Token)
	if err != nil {
		return nil, err
	}
	api.Client = &http.Client{
		Timeout: config.TG.ConnectionTimeout,
	}

	return &Bot{
		BotAPI:        api,
		StateProvider: states,
		accounts:      accounts,
		planner:       planner,
		builder:       builder,
		themes:        themes,
		preview:       preview,
		validate:      validator.New(),
		webAppURL:     config.TG.WebAppURL,
		baseCtx:       ctx,
		log:           log,
	}, nil
}

// Run consumes the long-poll update stream until Stop. Each update is
// handled in its own goroutine so one user's slow pipeline never blocks
// another user's session.
func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.GetUpdatesChan(u)

	for update := range updates {
		go b.handleUpdate(b.baseCtx, update)
	}
}

func (b *Bot) Stop(ctx context.Context) {
	b.StopReceivingUpdates()
}

func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if len(text) > 4000 {
		text = text[:4000] + "..."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.Send(msg)
	if err != nil {
		b.log.ErrorContext(ctx, "message send failed", chatIDKey, chatID, errorKey, err)
		return err
	}
	prometheus.MessagesSent.WithLabelValues("text").Inc()
	return nil
}

func (b *Bot) SendMessageWithKeyboard(ctx context.Context, chatID int64, text string,
	keyboard tgbotapi.InlineKeyboardMarkup) error {

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.Send(msg)
	if err != nil {
		b.log.ErrorContext(ctx, "message send failed", chatIDKey, chatID, errorKey, err)
		return err
	}
	prometheus.MessagesSent.WithLabelValues("text").Inc()
	return nil
}

// SendImage delivers in-memory PNG bytes as a photo.
func (b *Bot) SendImage(ctx context.Context, chatID int64, image []byte, caption string,
	keyboard *tgbotapi.InlineKeyboardMarkup) error {

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "preview.png", Bytes: image})
	photo.Caption = caption
	if keyboard != nil {
		photo.ReplyMarkup = keyboard
	}
	_, err := b.Send(photo)
	if err != nil {
		b.log.ErrorContext(ctx, "photo send failed", chatIDKey, chatID, errorKey, err)
		return err
	}
	prometheus.MessagesSent.WithLabelValues("image").Inc()
	return nil
}

func (b *Bot) SendDocument(ctx context.Context, chatID int64, path, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	_, err := b.Send(doc)
	if err != nil {
		b.log.ErrorContext(ctx, "document send failed", chatIDKey, chatID, errorKey, err)
		return err
	}
	prometheus.MessagesSent.WithLabelValues("document").Inc()
	return nil
}

func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	cfg := tgbotapi.NewCallback(callbackID, text)
	_, err := b.Request(cfg)
	return err
}
