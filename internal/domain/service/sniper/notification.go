package sniper

import (
	"context"
	"fmt"

	"ah_sniper/internal/domain/entity"
)

// NotificationKind tags the asynchronous events the host delivers to a
// session. The marketplace layer may fire these for things the session never
// asked about, repeat them, or reorder them: unsolicited ones are dropped
// against the pending bags.
type NotificationKind int

const (
	NotificationItemInfoReady NotificationKind = iota + 1
	NotificationKeyInfoReady
	NotificationItemResults
	NotificationCommodityResults
	NotificationThrottleReady
)

//nolint:gochecknoglobals
var notificationNames = map[NotificationKind]string{
	NotificationItemInfoReady:    "item_info_ready",
	NotificationKeyInfoReady:     "key_info_ready",
	NotificationItemResults:      "item_results",
	NotificationCommodityResults: "commodity_results",
	NotificationThrottleReady:    "throttle_ready",
}

func (k NotificationKind) String() string {
	if name, ok := notificationNames[k]; ok {
		return name
	}

	return "unknown"
}

type Notification struct {
	Kind NotificationKind

	// ItemID carries the subject of ItemInfoReady, KeyInfoReady and
	// CommodityResults notifications.
	ItemID int64

	// Key carries the subject of ItemResults notifications.
	Key entity.SearchKey
}

func ItemInfoReady(itemID int64) Notification {
	return Notification{Kind: NotificationItemInfoReady, ItemID: itemID}
}

func KeyInfoReady(itemID int64) Notification {
	return Notification{Kind: NotificationKeyInfoReady, ItemID: itemID}
}

func ItemResults(key entity.SearchKey) Notification {
	return Notification{Kind: NotificationItemResults, Key: key}
}

func CommodityResults(itemID int64) Notification {
	return Notification{Kind: NotificationCommodityResults, ItemID: itemID}
}

func ThrottleReady() Notification {
	return Notification{Kind: NotificationThrottleReady}
}

// Handle dispatches one notification. The host must deliver notifications
// serially; all state mutations complete before Handle returns.
func (s *Session) Handle(ctx context.Context, n Notification) error {
	switch n.Kind {
	case NotificationItemInfoReady:
		s.onItemInfoReady(ctx, n.ItemID)
	case NotificationKeyInfoReady:
		s.onKeyInfoReady(ctx, n.ItemID)
	case NotificationItemResults:
		s.onItemResults(ctx, n.Key)
	case NotificationCommodityResults:
		s.onCommodityResults(ctx, n.ItemID)
	case NotificationThrottleReady:
		s.onThrottleReady(ctx)
	default:
		return fmt.Errorf("unknown notification kind %d", n.Kind)
	}

	return nil
}
