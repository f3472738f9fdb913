package respond_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
)

type payload struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"gte=0"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "Valid", body: `{"name":"Car A","age":3}`},
		{name: "Malformed", body: `{"name":`, wantErr: "invalid request body"},
		{name: "MissingRequired", body: `{"age":3}`, wantErr: "name failed on required"},
		{name: "Negative", body: `{"name":"x","age":-1}`, wantErr: "age failed on gte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload

			err := respond.Decode(r, &p)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFile(t *testing.T) {
	w := httptest.NewRecorder()

	respond.File(w, "fleet_report_Car A_20240501_000000.pdf", "application/pdf", []byte("%PDF"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="fleet_report_Car A_20240501_000000.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF", w.Body.String())
}

func TestPathID(t *testing.T) {
	id, ok := respond.PathID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		_, ok := respond.PathID(raw)
		assert.False(t, ok, raw)
	}
}
