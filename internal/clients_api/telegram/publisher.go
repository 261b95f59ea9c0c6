// Package telegram delivers rendered charts to a Telegram chat.
// Sends go through a rate limiter, a circuit breaker and retry with backoff.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"accuracy-chart/internal/config"
	logging "accuracy-chart/internal/infra/log"
	"accuracy-chart/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNotConfigured is returned when the bot token or chat id is missing
var ErrNotConfigured = errors.New("telegram is not configured")

// MaxCaptionLength is Telegram's limit for photo captions
const MaxCaptionLength = 1024

// Sender is the part of *tgbotapi.BotAPI the publisher needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Publisher struct {
	sender         Sender
	chatID         string
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	retry          retry.Options
}

// NewPublisher builds a bot client from config
func NewPublisher(cfg config.TelegramConfig) (*Publisher, error) {
	if cfg.BotToken == "" || cfg.ChatID == "" {
		return nil, fmt.Errorf("%w: telegram.bot_token and telegram.chat_id are required", ErrNotConfigured)
	}
	timeout := 30 * time.Second
	if cfg.RequestTimeout > 0 {
		timeout = time.Duration(cfg.RequestTimeout) * time.Second
	}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logging.LogInfo("Telegram bot authorized", zap.String("username", bot.Self.UserName))

	return New(bot, cfg.ChatID, retry.Options{
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
	})
}

// New wraps any Sender; chatID is numeric or an @channel username
func New(sender Sender, chatID string, opts retry.Options) (*Publisher, error) {
	chatID = strings.TrimSpace(chatID)
	if sender == nil || chatID == "" {
		return nil, ErrNotConfigured
	}
	if _, err := photoFor(chatID, ""); err != nil {
		return nil, err
	}

	return &Publisher{
		sender:      sender,
		chatID:      chatID,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		circuitBreaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "TelegramSend",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		retry: opts,
	}, nil
}

func photoFor(chatID, path string) (tgbotapi.PhotoConfig, error) {
	file := tgbotapi.FilePath(path)
	if strings.HasPrefix(chatID, "@") {
		return tgbotapi.NewPhotoToChannel(chatID, file), nil
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return tgbotapi.PhotoConfig{}, fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}
	return tgbotapi.NewPhoto(id, file), nil
}

// PublishChart sends the PNG at path as a photo with caption
func (p *Publisher) PublishChart(ctx context.Context, path, caption string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("chart file %s: %w", path, err)
	}

	photo, err := photoFor(p.chatID, path)
	if err != nil {
		return err
	}
	photo.Caption = truncateCaption(caption)

	startTime := time.Now()
	attempt := 0
	err = retry.Do(ctx, p.retry, func() error {
		attempt++
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}
		_, err := p.circuitBreaker.Execute(func() (interface{}, error) {
			return p.sender.Send(photo)
		})
		if err != nil {
			logging.LogWarn("Telegram send attempt failed",
				zap.Int("attempt", attempt),
				zap.String("chat_id", p.chatID),
				zap.Error(err))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to send chart to telegram: %w", err)
	}

	logging.LogSuccess("Chart sent to Telegram",
		zap.String("chat_id", p.chatID),
		zap.String("path", path),
		zap.Int("attempts", attempt),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return nil
}

func truncateCaption(caption string) string {
	runes := []rune(caption)
	if len(runes) <= MaxCaptionLength {
		return caption
	}
	return string(runes[:MaxCaptionLength-1]) + "…"
}
