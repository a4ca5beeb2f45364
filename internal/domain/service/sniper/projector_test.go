package sniper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ah_sniper/internal/domain/service/sniper"
)

func TestProject(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		status  sniper.Status
		enabled bool
		want    sniper.Buttons
	}{
		{
			name:    "Loading",
			status:  sniper.StatusLoading,
			enabled: true,
			want: sniper.Buttons{
				Primary:   sniper.ButtonState{Enabled: false, Visible: true, Label: "Loading..."},
				Secondary: sniper.ButtonState{Enabled: false, Label: "Skip"},
			},
		},
		{
			name:    "Searching",
			status:  sniper.StatusWaitingForSearchResults,
			enabled: true,
			want: sniper.Buttons{
				Primary:   sniper.ButtonState{Enabled: false, Visible: true, Label: "Searching..."},
				Secondary: sniper.ButtonState{Enabled: false, Label: "Skip"},
			},
		},
		{
			name:    "Ready for purchase, enabled",
			status:  sniper.StatusReadyForPurchase,
			enabled: true,
			want: sniper.Buttons{
				Primary:   sniper.ButtonState{Enabled: true, Visible: true, Label: "Buy"},
				Secondary: sniper.ButtonState{Enabled: true, Label: "Skip"},
			},
		},
		{
			name:    "Ready for purchase, disabled",
			status:  sniper.StatusReadyForPurchase,
			enabled: false,
			want: sniper.Buttons{
				Primary:   sniper.ButtonState{Enabled: false, Visible: true, Label: "Buy"},
				Secondary: sniper.ButtonState{Enabled: false, Label: "Skip"},
			},
		},
		{
			name:    "Purchase in flight",
			status:  sniper.StatusWaitingItemPurchaseConfirmation,
			enabled: true,
			want: sniper.Buttons{
				Primary:   sniper.ButtonState{Enabled: false, Visible: true, Label: "Buying..."},
				Secondary: sniper.ButtonState{Enabled: false, Label: "Skip"},
			},
		},
		{
			name:    "Finished",
			status:  sniper.StatusFinished,
			enabled: true,
			want: sniper.Buttons{
				Primary:   sniper.ButtonState{Enabled: false, Visible: false, Label: "Done"},
				Secondary: sniper.ButtonState{Enabled: false, Label: "Close"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, sniper.Project(tc.status, tc.enabled))
		})
	}
}
