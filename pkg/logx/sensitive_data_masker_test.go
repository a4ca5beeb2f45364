package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ah_sniper/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Client secret",
			input:  []byte(`{"client_id":"gsa","client_secret":"abc123"}`),
			output: []byte(`{"client_id":"gsa","client_secret":"[MASKED]"}`),
		},
		{
			name:   "Access token",
			input:  []byte(`{"access_token":"EUxardBOQ...","token_type":"bearer"}`),
			output: []byte(`{"access_token":"[MASKED]","token_type":"bearer"}`),
		},
		{
			name:   "Bot token",
			input:  []byte(`{"token":"110201543:AAHdqTcv"}`),
			output: []byte(`{"token":"[MASKED]"}`),
		},
		{
			name:   "Nothing sensitive",
			input:  []byte(`{"item_id":152510,"unit_price":98000}`),
			output: []byte(`{"item_id":152510,"unit_price":98000}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
