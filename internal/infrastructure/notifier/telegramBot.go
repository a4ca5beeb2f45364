package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"ah_sniper/internal/domain/entity"
)

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

// Run forwards matched deals from the channel. Purchases arrive separately
// via SendPurchase from the ledger recorder.
func (b *TelegramBot) Run(ctx context.Context, deals <-chan entity.Deal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case deal, ok := <-deals:
			if !ok {
				return nil
			}
			if err := b.SendDeal(ctx, deal); err != nil {
				logger(ctx).Error("failed to send deal", "error", err)
			}
		}
	}
}

func (b *TelegramBot) SendDeal(ctx context.Context, deal entity.Deal) error {
	text := fmt.Sprintf(
		"🔥 <b>DEAL FOUND!</b>\n\n"+
			"🔑 <b>Key:</b> %s\n"+
			"📦 <b>Item:</b> %s\n"+
			"💰 <b>Unit Price:</b> %s\n"+
			"🧮 <b>Amount:</b> %d of %d wanted\n"+
			"💸 <b>Total:</b> %s",
		deal.Key.String(),
		deal.ItemLink,
		gold(deal.UnitPrice),
		deal.AvailableAmount,
		deal.WantedAmount,
		gold(deal.TotalPrice),
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	_, err := b.bot.SendMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func (b *TelegramBot) SendPurchase(ctx context.Context, purchase entity.Purchase) error {
	kind := "item"
	if purchase.Commodity {
		kind = "commodity"
	}

	text := fmt.Sprintf(
		"✅ <b>PURCHASE ISSUED</b>\n\n"+
			"🏰 <b>Realm:</b> %d\n"+
			"📦 <b>Item:</b> %s (%s)\n"+
			"🧮 <b>Amount:</b> %d\n"+
			"💸 <b>Total:</b> %s",
		purchase.ConnectedRealmID,
		purchase.ItemLink,
		kind,
		purchase.Amount,
		gold(purchase.TotalPrice),
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	_, err := b.bot.SendMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain text message.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}

// gold renders a copper amount as the familiar g/s/c triple.
func gold(copper int64) string {
	return fmt.Sprintf("%dg %ds %dc", copper/10000, (copper%10000)/100, copper%100)
}
