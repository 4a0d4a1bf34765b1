package billing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stayin/internal/domains/billing/model"
	gDto "stayin/shared/dto"

	"github.com/stretchr/testify/assert"
)

func filterFields(group gDto.FilterGroup) []string {
	fields := make([]string, 0, len(group.Filters))

	for _, f := range group.Filters {
		if filter, ok := f.(gDto.Filter); ok {
			fields = append(fields, filter.Field)
		}
	}

	return fields
}

func TestRecordsFilter(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantFields []string
	}{
		{
			name:   "no filters",
			target: "/v1/billing/records",
		},
		{
			name:       "by table",
			target:     "/v1/billing/records?table=Table-3",
			wantFields: []string{model.FieldTableNumber},
		},
		{
			name:       "by bill number",
			target:     "/v1/billing/records?bill_number=4321",
			wantFields: []string{model.FieldBillNumber},
		},
		{
			name:       "by date",
			target:     "/v1/billing/records?date=2025-01-10",
			wantFields: []string{model.FieldDate},
		},
		{
			name:       "combined",
			target:     "/v1/billing/records?table=Table-3&bill_number=4321&date=2025-01-10",
			wantFields: []string{model.FieldTableNumber, model.FieldBillNumber, model.FieldDate},
		},
		{
			name:   "malformed bill number dropped",
			target: "/v1/billing/records?bill_number=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)

			group := recordsFilter(r)

			fields := filterFields(group)
			assert.Len(t, fields, len(tt.wantFields))

			for _, field := range tt.wantFields {
				assert.Contains(t, fields, field)
			}
		})
	}
}

func TestRecordsFilter_DateWhereClause(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/billing/records?date=2025-01-10", nil)

	group := recordsFilter(r)

	where, args := group.GetWhereClause()
	assert.Contains(t, where, "hotel_bills.date = :date")
	assert.Equal(t, "2025-01-10", args["date"])
}
