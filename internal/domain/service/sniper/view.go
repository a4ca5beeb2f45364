package sniper

import "ah_sniper/internal/domain/entity"

// View is a read-only snapshot for the REST surface and control bot.
type View struct {
	ConnectedRealmID int64        `json:"connected_realm_id"`
	Status           string       `json:"status"`
	Enabled          bool         `json:"enabled"`
	DealIndex        int          `json:"deal_index"`
	PurchaseIndex    int          `json:"purchase_index"`
	TotalDeals       int          `json:"total_deals"`
	Current          *entity.Deal `json:"current,omitempty"`
	Buttons          Buttons      `json:"buttons"`
}

func (s *Session) View() View {
	view := View{
		ConnectedRealmID: s.connectedRealmID,
		Status:           s.status.String(),
		Enabled:          s.enabled,
		DealIndex:        s.dealIndex,
		PurchaseIndex:    s.purchaseIndex,
		TotalDeals:       s.totalDeals,
		Buttons:          Project(s.status, s.enabled),
	}

	if s.current != nil {
		current := *s.current
		view.Current = &current
	}

	return view
}

// Deals copies the confirmed purchase plan in order.
func (s *Session) Deals() []entity.Deal {
	deals := make([]entity.Deal, 0, len(s.deals))
	for _, deal := range s.deals {
		deals = append(deals, *deal)
	}

	return deals
}
