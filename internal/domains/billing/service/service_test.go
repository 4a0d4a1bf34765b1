package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stayin/config"
	"stayin/infras/otel/mocks"
	billingMocks "stayin/internal/domains/billing/mocks"
	"stayin/internal/domains/billing/model"
	"stayin/internal/domains/billing/model/dto"
	"stayin/internal/domains/billing/service"
	"stayin/internal/domains/billing/session"
	cacheMocks "stayin/shared/cache/mocks"
	gDto "stayin/shared/dto"
	"stayin/shared/failure"
)

func newService(t *testing.T) (service.Billing, *session.Manager, *billingMocks.MockBilling, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := billingMocks.NewMockBilling(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	sessions := session.NewManager()
	svc := service.New(sessions, mockRepo, mockCache, cfg, mockOtel)

	return svc, sessions, mockRepo, mockCache
}

func TestBillingService_SelectTable(t *testing.T) {
	svc, _, _, _ := newService(t)

	tests := []struct {
		name     string
		tableID  int
		wantErr  bool
		wantCode int
	}{
		{name: "valid table", tableID: 1},
		{name: "last table", tableID: 8},
		{name: "table zero", tableID: 0, wantErr: true, wantCode: http.StatusBadRequest},
		{name: "table out of range", tableID: 9, wantErr: true, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.SelectTable(context.Background(), tt.tableID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.tableID, res.TableID)
			assert.GreaterOrEqual(t, res.BillNumber, 1000)
			assert.LessOrEqual(t, res.BillNumber, 9999)
			assert.Contains(t, res.Receipt, "Stay-In Hotel")
		})
	}
}

func TestBillingService_GenerateBill(t *testing.T) {
	svc, sessions, _, _ := newService(t)

	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, dto.AddItemRequest{ItemName: "Coffee", Quantity: 2, CostPerItem: 3.50})
	assert.NoError(t, err)

	res, err := svc.GenerateBill(ctx, 1, dto.GenerateBillRequest{
		CustomerName:    "Ram",
		CustomerContact: "9876543210",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Ram", res.CustomerName)
	assert.Equal(t, "9876543210", res.CustomerContact)
	assert.Empty(t, res.LineItems)
	assert.Zero(t, res.GrandTotal)

	sess, err := sessions.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "Ram", sess.CustomerName)
	assert.Empty(t, sess.LineItems)
}

func TestBillingService_AddItem(t *testing.T) {
	svc, _, _, _ := newService(t)

	ctx := context.Background()

	res, err := svc.AddItem(ctx, 2, dto.AddItemRequest{ItemName: "Coffee", Quantity: 2, CostPerItem: 3.50})
	assert.NoError(t, err)
	assert.Len(t, res.LineItems, 1)
	assert.Equal(t, 7.00, res.LineItems[0].LineTotal)
	assert.Equal(t, 7.00, res.GrandTotal)

	res, err = svc.AddItem(ctx, 2, dto.AddItemRequest{ItemName: "Momo", Quantity: 1, CostPerItem: 120})
	assert.NoError(t, err)
	assert.Len(t, res.LineItems, 2)
	assert.Equal(t, 127.00, res.GrandTotal)
}

func TestBillingService_ComputeTotal(t *testing.T) {
	svc, _, _, _ := newService(t)

	ctx := context.Background()

	_, err := svc.ComputeTotal(ctx, 3)
	assert.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))

	_, err = svc.AddItem(ctx, 3, dto.AddItemRequest{ItemName: "Coffee", Quantity: 2, CostPerItem: 3.50})
	assert.NoError(t, err)

	res, err := svc.ComputeTotal(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, 7.00, res.GrandTotal)

	// idempotent, no state change
	again, err := svc.ComputeTotal(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, res.GrandTotal, again.GrandTotal)
}

func TestBillingService_ResetBill(t *testing.T) {
	svc, sessions, _, _ := newService(t)

	ctx := context.Background()

	_, err := svc.AddItem(ctx, 4, dto.AddItemRequest{ItemName: "Coffee", Quantity: 2, CostPerItem: 3.50})
	assert.NoError(t, err)

	_, err = svc.ResetBill(ctx, 4, dto.ConfirmRequest{})
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	before, err := sessions.Get(4)
	assert.NoError(t, err)
	assert.Len(t, before.LineItems, 1)

	res, err := svc.ResetBill(ctx, 4, dto.ConfirmRequest{Confirm: true})
	assert.NoError(t, err)
	assert.Empty(t, res.LineItems)
	assert.Zero(t, res.GrandTotal)
	assert.Empty(t, res.CustomerName)
}

func TestBillingService_SaveBill(t *testing.T) {
	ctx := context.Background()

	t.Run("empty bill", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.SaveBill(ctx, 5, dto.ConfirmRequest{Confirm: true})
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("confirmation required", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.AddItem(ctx, 5, dto.AddItemRequest{ItemName: "Coffee", Quantity: 2, CostPerItem: 3.50})
		assert.NoError(t, err)

		_, err = svc.SaveBill(ctx, 5, dto.ConfirmRequest{})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("one row per line item", func(t *testing.T) {
		svc, sessions, mockRepo, mockCache := newService(t)

		_, err := svc.GenerateBill(ctx, 5, dto.GenerateBillRequest{CustomerName: "Ram", CustomerContact: "9876543210"})
		assert.NoError(t, err)

		_, err = svc.AddItem(ctx, 5, dto.AddItemRequest{ItemName: "Coffee", Quantity: 2, CostPerItem: 3.50})
		assert.NoError(t, err)

		_, err = svc.AddItem(ctx, 5, dto.AddItemRequest{ItemName: "Momo", Quantity: 1, CostPerItem: 120})
		assert.NoError(t, err)

		sess, err := sessions.Get(5)
		assert.NoError(t, err)

		mockRepo.EXPECT().
			InsertBulk(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rows []model.LedgerRow) error {
				assert.Len(t, rows, 2)
				assert.Equal(t, "Table-5", rows[0].TableNumber)
				assert.Equal(t, "Coffee", rows[0].ItemName)
				assert.Equal(t, 2, rows[0].ItemQuantity)
				assert.Equal(t, 3.50, rows[0].CostPerItem)
				assert.Equal(t, 7.00, rows[0].TotalCost)
				assert.Equal(t, sess.BillNumber, rows[0].BillNumber)
				assert.Equal(t, "Momo", rows[1].ItemName)

				return nil
			})

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.SaveBill(ctx, 5, dto.ConfirmRequest{Confirm: true})
		assert.NoError(t, err)
		assert.Equal(t, 2, res.ItemsSaved)
		assert.Equal(t, sess.BillNumber, res.BillNumber)
	})

	t.Run("session kept after save, second save duplicates", func(t *testing.T) {
		svc, _, mockRepo, mockCache := newService(t)

		_, err := svc.AddItem(ctx, 5, dto.AddItemRequest{ItemName: "Coffee", Quantity: 2, CostPerItem: 3.50})
		assert.NoError(t, err)

		mockRepo.EXPECT().
			InsertBulk(gomock.Any(), gomock.Any()).
			Return(nil).
			Times(2)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		first, err := svc.SaveBill(ctx, 5, dto.ConfirmRequest{Confirm: true})
		assert.NoError(t, err)
		assert.Equal(t, 1, first.ItemsSaved)

		second, err := svc.SaveBill(ctx, 5, dto.ConfirmRequest{Confirm: true})
		assert.NoError(t, err)
		assert.Equal(t, 1, second.ItemsSaved)
		assert.Equal(t, first.BillNumber, second.BillNumber)
	})

	t.Run("persistence error", func(t *testing.T) {
		svc, _, mockRepo, _ := newService(t)

		_, err := svc.AddItem(ctx, 5, dto.AddItemRequest{ItemName: "Coffee", Quantity: 2, CostPerItem: 3.50})
		assert.NoError(t, err)

		mockRepo.EXPECT().
			InsertBulk(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err = svc.SaveBill(ctx, 5, dto.ConfirmRequest{Confirm: true})
		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestBillingService_Receipt(t *testing.T) {
	svc, _, _, _ := newService(t)

	ctx := context.Background()

	_, err := svc.GenerateBill(ctx, 6, dto.GenerateBillRequest{CustomerName: "Ram", CustomerContact: "9876543210"})
	assert.NoError(t, err)

	_, err = svc.AddItem(ctx, 6, dto.AddItemRequest{ItemName: "Coffee", Quantity: 2, CostPerItem: 3.50})
	assert.NoError(t, err)

	pdf, err := svc.Receipt(ctx, 6)
	assert.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestBillingService_Records(t *testing.T) {
	ctx := context.Background()

	rows := []model.LedgerRow{
		{
			ID:          "row-1",
			TableNumber: "Table-1",
			ItemName:    "Coffee",
			BillNumber:  4321,
		},
	}

	tests := []struct {
		name      string
		setupMock func(mockRepo *billingMocks.MockBilling, mockCache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantData  int
	}{
		{
			name: "cache hit",
			setupMock: func(_ *billingMocks.MockBilling, mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "cache miss, read from db",
			setupMock: func(mockRepo *billingMocks.MockBilling, mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(rows, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantData: 1,
		},
		{
			name: "count error",
			setupMock: func(mockRepo *billingMocks.MockBilling, mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
		{
			name: "get all error",
			setupMock: func(mockRepo *billingMocks.MockBilling, mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("get all error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, mockRepo, mockCache := newService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Records(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantData, res.TotalData)
			}
		})
	}
}
