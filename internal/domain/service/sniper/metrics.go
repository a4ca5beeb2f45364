package sniper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	dealsMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_deals_matched_total",
		Help: "Candidates confirmed against live marketplace results.",
	})

	dealsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_deals_skipped_total",
		Help: "Deals abandoned by user skip or insufficient funds.",
	})

	searchesDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_searches_dispatched_total",
		Help: "Marketplace searches issued.",
	})

	purchasesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sniper_purchases_total",
		Help: "Completed purchase actions.",
	}, []string{"kind"})

	droppedNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sniper_notifications_dropped_total",
		Help: "Unsolicited or duplicate notifications ignored.",
	}, []string{"kind"})
)
