package server

import (
	"time"

	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/domain/service/sniper"
	"ah_sniper/pkg/rest"
)

func newRESTSessionView(view sniper.View) rest.SessionView {
	out := rest.SessionView{
		ConnectedRealmID: view.ConnectedRealmID,
		Status:           view.Status,
		Enabled:          view.Enabled,
		DealIndex:        view.DealIndex,
		PurchaseIndex:    view.PurchaseIndex,
		TotalDeals:       view.TotalDeals,
		Buttons:          newRESTButtons(view.Buttons),
	}

	if view.Current != nil {
		current := newRESTDeal(*view.Current)
		out.Current = &current
	}

	return out
}

func newRESTDeal(deal entity.Deal) rest.Deal {
	return rest.Deal{
		AuctionID:       deal.AuctionID,
		ItemID:          deal.ItemID,
		PetID:           deal.PetID,
		Commodity:       deal.IsCommodity,
		Pet:             deal.IsPet,
		WantedAmount:    deal.WantedAmount,
		AvailableAmount: deal.AvailableAmount,
		PurchaseAmount:  deal.PurchaseAmount,
		UnitPrice:       deal.UnitPrice,
		TotalPrice:      deal.TotalPrice,
		ItemLink:        deal.ItemLink,
	}
}

func newRESTButtons(buttons sniper.Buttons) rest.Buttons {
	return rest.Buttons{
		Primary:   newRESTButton(buttons.Primary),
		Secondary: newRESTButton(buttons.Secondary),
	}
}

func newRESTButton(button sniper.ButtonState) rest.Button {
	return rest.Button{
		Enabled: button.Enabled,
		Visible: button.Visible,
		Label:   button.Label,
	}
}

func newRESTPurchase(purchase entity.Purchase) rest.Purchase {
	return rest.Purchase{
		ID:               purchase.ID,
		CreatedAt:        purchase.CreatedAt.Format(time.RFC3339),
		ConnectedRealmID: purchase.ConnectedRealmID,
		AuctionID:        purchase.AuctionID,
		ItemID:           purchase.ItemID,
		PetID:            purchase.PetID,
		Commodity:        purchase.Commodity,
		Amount:           purchase.Amount,
		UnitPrice:        purchase.UnitPrice,
		TotalPrice:       purchase.TotalPrice,
		ItemLink:         purchase.ItemLink,
	}
}
