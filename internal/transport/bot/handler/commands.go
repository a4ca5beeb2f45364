package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"ah_sniper/internal/worker"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, startMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	views := h.registry.Views()
	if len(views) == 0 {
		return h.send(ctx, msg.Chat.ID, noSessions)
	}

	var b strings.Builder
	b.WriteString("📊 <b>Sessions</b>\n")

	for _, view := range views {
		fmt.Fprintf(&b, "\n🏰 <b>%d</b> - %s, deal %d/%d, %s\n",
			view.ConnectedRealmID,
			view.Status,
			view.DealIndex+1,
			view.TotalDeals,
			enabledStatus(view.Enabled),
		)
	}

	return h.sendHTML(ctx, msg.Chat.ID, b.String())
}

func (h *Handler) OnSession(ctx *th.Context, msg telego.Message) error {
	runner, chatID, err := h.resolveRunner(ctx, msg)
	if runner == nil {
		return err
	}

	view := runner.View()

	var b strings.Builder
	fmt.Fprintf(&b, "🏰 <b>Realm %d</b>\n\n", view.ConnectedRealmID)
	fmt.Fprintf(&b, "📍 <b>Status:</b> %s\n", view.Status)
	fmt.Fprintf(&b, "🛒 <b>Purchasing:</b> %s\n", enabledStatus(view.Enabled))
	fmt.Fprintf(&b, "📦 <b>Deals:</b> %d total, at %d\n", view.TotalDeals, view.DealIndex+1)

	if view.Current != nil {
		fmt.Fprintf(&b, "\n🔎 <b>Current:</b> %s\n", view.Current.ItemLink)
		fmt.Fprintf(&b, "💰 <b>Unit:</b> %d, total %d\n", view.Current.UnitPrice, view.Current.TotalPrice)
		fmt.Fprintf(&b, "🧮 <b>Amount:</b> %d of %d wanted\n", view.Current.AvailableAmount, view.Current.WantedAmount)
	}

	return h.sendHTML(ctx, chatID, b.String())
}

func (h *Handler) OnBuy(ctx *th.Context, msg telego.Message) error {
	runner, chatID, err := h.resolveRunner(ctx, msg)
	if runner == nil {
		return err
	}

	runner.Buy(ctx)

	return h.send(ctx, chatID, "🛒 buy issued")
}

func (h *Handler) OnSkip(ctx *th.Context, msg telego.Message) error {
	runner, chatID, err := h.resolveRunner(ctx, msg)
	if runner == nil {
		return err
	}

	runner.Skip(ctx)

	return h.send(ctx, chatID, "⏭ skipped")
}

func (h *Handler) OnPause(ctx *th.Context, msg telego.Message) error {
	runner, chatID, err := h.resolveRunner(ctx, msg)
	if runner == nil {
		return err
	}

	runner.SetEnabled(ctx, false)

	return h.send(ctx, chatID, "⏸ purchasing disabled")
}

func (h *Handler) OnResume(ctx *th.Context, msg telego.Message) error {
	runner, chatID, err := h.resolveRunner(ctx, msg)
	if runner == nil {
		return err
	}

	runner.SetEnabled(ctx, true)

	return h.send(ctx, chatID, "▶️ purchasing enabled")
}

func (h *Handler) OnScan(ctx *th.Context, msg telego.Message) error {
	realmID, ok, err := h.realmArgument(ctx, msg)
	if !ok {
		return err
	}

	task, err := worker.NewScanTask(realmID)
	if err != nil {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf("failed to build task: %v", err))
	}

	if _, err := h.enqueuer.EnqueueContext(ctx, task, asynqQueue(h.queue)...); err != nil {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf("failed to queue scan: %v", err))
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf("🔍 scan queued for realm %d", realmID))
}

// resolveRunner parses the realm argument and looks the runner up. A nil
// runner means the reply was already sent.
func (h *Handler) resolveRunner(ctx *th.Context, msg telego.Message) (*worker.Runner, int64, error) {
	realmID, ok, err := h.realmArgument(ctx, msg)
	if !ok {
		return nil, msg.Chat.ID, err
	}

	runner, found := h.registry.Get(realmID)
	if !found {
		return nil, msg.Chat.ID, h.send(ctx, msg.Chat.ID, sessionNotFound)
	}

	return runner, msg.Chat.ID, nil
}

func (h *Handler) realmArgument(ctx *th.Context, msg telego.Message) (int64, bool, error) {
	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		return 0, false, h.send(ctx, msg.Chat.ID, missingRealmArgument)
	}

	realmID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false, h.send(ctx, msg.Chat.ID, invalidRealmArgument)
	}

	return realmID, true, nil
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})

	return err
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}

func enabledStatus(enabled bool) string {
	if enabled {
		return "✅ on"
	}

	return "❌ off"
}
