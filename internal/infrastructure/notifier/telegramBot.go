package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"mercado/internal/domain/entity"
	"mercado/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Announcement is a freshly published sale queued for the announcement
// channel.
type Announcement struct {
	Sale     entity.Sale
	ItemName string
}

// TelegramBot publishes sale announcements to a fixed channel. Publish
// failures are logged and dropped: an announcement never fails the sale that
// produced it.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run consumes announcements until the channel closes or the context ends.
func (b *TelegramBot) Run(ctx context.Context, announcements <-chan Announcement) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case announcement, ok := <-announcements:
			if !ok {
				return nil
			}

			if err := b.SendAnnouncement(ctx, announcement); err != nil {
				logger(ctx).Error("failed to publish announcement",
					"sale_uid", announcement.Sale.SaleUID,
					"error", err,
				)
			}
		}
	}
}

func (b *TelegramBot) SendAnnouncement(ctx context.Context, announcement Announcement) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		announcement.Sale.Summary(announcement.ItemName),
	)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain text message to the announcement channel.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	_, err := b.bot.SendMessage(ctx, tu.Message(tu.ID(b.chatID), text))
	return err
}
