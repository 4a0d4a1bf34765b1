package occupancy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmFromQuery(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{name: "confirmed", target: "/v1/occupants/occ-1?confirm=true", want: true},
		{name: "explicitly declined", target: "/v1/occupants/occ-1?confirm=false", want: false},
		{name: "missing parameter", target: "/v1/occupants/occ-1", want: false},
		{name: "malformed value", target: "/v1/occupants/occ-1?confirm=yes-please", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodDelete, tt.target, nil)

			assert.Equal(t, tt.want, confirmFromQuery(r).Confirm)
		})
	}
}
