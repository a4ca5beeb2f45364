// This file should be generated from an openapi specification and named
// types.gen.go.
package rest

// SessionView is the REST projection of one realm's sniper session.
type SessionView struct {
	ConnectedRealmID int64   `json:"connectedRealmId"`
	Status           string  `json:"status"`
	Enabled          bool    `json:"enabled"`
	DealIndex        int     `json:"dealIndex"`
	PurchaseIndex    int     `json:"purchaseIndex"`
	TotalDeals       int     `json:"totalDeals"`
	Current          *Deal   `json:"current,omitempty"`
	Buttons          Buttons `json:"buttons"`
}

type Deal struct {
	AuctionID       int64  `json:"auctionId"`
	ItemID          int64  `json:"itemId"`
	PetID           int64  `json:"petId,omitempty"`
	Commodity       bool   `json:"commodity"`
	Pet             bool   `json:"pet"`
	WantedAmount    int    `json:"wantedAmount"`
	AvailableAmount int    `json:"availableAmount"`
	PurchaseAmount  int    `json:"purchaseAmount"`
	UnitPrice       int64  `json:"unitPrice"`
	TotalPrice      int64  `json:"totalPrice"`
	ItemLink        string `json:"itemLink"`
}

type Button struct {
	Enabled bool   `json:"enabled"`
	Visible bool   `json:"visible"`
	Label   string `json:"label"`
}

type Buttons struct {
	Primary   Button `json:"primary"`
	Secondary Button `json:"secondary"`
}

type Purchase struct {
	ID               string `json:"id"`
	CreatedAt        string `json:"createdAt"`
	ConnectedRealmID int64  `json:"connectedRealmId"`
	AuctionID        int64  `json:"auctionId"`
	ItemID           int64  `json:"itemId"`
	PetID            int64  `json:"petId,omitempty"`
	Commodity        bool   `json:"commodity"`
	Amount           int    `json:"amount"`
	UnitPrice        int64  `json:"unitPrice"`
	TotalPrice       int64  `json:"totalPrice"`
	ItemLink         string `json:"itemLink"`
}

// Error is the error envelope.
type Error struct {
	Code ErrorCode `json:"code"`

	// Message is meant for UI display.
	Message string `json:"message"`
}

type ErrorCode string
