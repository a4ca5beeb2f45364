package sniper

type ButtonState struct {
	Enabled bool   `json:"enabled"`
	Visible bool   `json:"visible"`
	Label   string `json:"label"`
}

type Buttons struct {
	Primary   ButtonState `json:"primary"`
	Secondary ButtonState `json:"secondary"`
}

// Project is the pure mapping from session status to the action-surface
// description the rendering layer consumes. The Ready -> key-preparation
// side effect deliberately does NOT live here; see Session.setReady.
func Project(status Status, enabled bool) Buttons {
	switch status {
	case StatusInitializing, StatusLoading, StatusWaitingForItemInfo:
		return Buttons{
			Primary:   ButtonState{Enabled: false, Visible: true, Label: "Loading..."},
			Secondary: ButtonState{Enabled: false, Label: "Skip"},
		}
	case StatusReady, StatusWaitingForItemKey, StatusReadyForSearch,
		StatusSearchInitialized, StatusWaitingForSearchResults:
		return Buttons{
			Primary:   ButtonState{Enabled: false, Visible: true, Label: "Searching..."},
			Secondary: ButtonState{Enabled: false, Label: "Skip"},
		}
	case StatusReadyForPurchase:
		return Buttons{
			Primary:   ButtonState{Enabled: enabled, Visible: true, Label: "Buy"},
			Secondary: ButtonState{Enabled: enabled, Label: "Skip"},
		}
	case StatusItemPurchaseInitialized, StatusWaitingItemPurchaseConfirmation,
		StatusCommodityPurchaseInitialized, StatusWaitingCommodityPurchaseConfirmation:
		return Buttons{
			Primary:   ButtonState{Enabled: false, Visible: true, Label: "Buying..."},
			Secondary: ButtonState{Enabled: false, Label: "Skip"},
		}
	case StatusFinished:
		return Buttons{
			Primary:   ButtonState{Enabled: false, Visible: false, Label: "Done"},
			Secondary: ButtonState{Enabled: false, Label: "Close"},
		}
	default:
		return Buttons{}
	}
}
