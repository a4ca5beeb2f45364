package sniper

// Status is the session's pipeline/sequencer state. Transitions are strictly
// linear through the resolution stages, then cycle through the purchase
// states until every deal is consumed.
type Status int

const (
	StatusInitializing Status = iota
	StatusLoading
	StatusWaitingForItemInfo
	StatusReady
	StatusWaitingForItemKey
	StatusReadyForSearch
	StatusSearchInitialized
	StatusWaitingForSearchResults
	StatusReadyForPurchase
	StatusItemPurchaseInitialized
	StatusWaitingItemPurchaseConfirmation
	StatusCommodityPurchaseInitialized
	StatusWaitingCommodityPurchaseConfirmation
	StatusFinished
)

//nolint:gochecknoglobals
var statusNames = map[Status]string{
	StatusInitializing:                         "initializing",
	StatusLoading:                              "loading",
	StatusWaitingForItemInfo:                   "waiting_for_item_info",
	StatusReady:                                "ready",
	StatusWaitingForItemKey:                    "waiting_for_item_key",
	StatusReadyForSearch:                       "ready_for_search",
	StatusSearchInitialized:                    "search_initialized",
	StatusWaitingForSearchResults:              "waiting_for_search_results",
	StatusReadyForPurchase:                     "ready_for_purchase",
	StatusItemPurchaseInitialized:              "item_purchase_initialized",
	StatusWaitingItemPurchaseConfirmation:      "waiting_item_purchase_confirmation",
	StatusCommodityPurchaseInitialized:         "commodity_purchase_initialized",
	StatusWaitingCommodityPurchaseConfirmation: "waiting_commodity_purchase_confirmation",
	StatusFinished:                             "finished",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return "unknown"
}

// searching reports whether the session is in one of the key-preparation or
// search-dispatch stages that a disable must rewind.
func (s Status) searching() bool {
	switch s {
	case StatusWaitingForItemKey, StatusReadyForSearch, StatusSearchInitialized, StatusWaitingForSearchResults:
		return true
	default:
		return false
	}
}
