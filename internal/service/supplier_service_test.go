package service

import (
	"context"
	"testing"
	"time"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"
	"jewelry_store/internal/repository/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupplierService(t *testing.T) (*supplierService, *mocks.MockSupplierRepository) {
	repo := mocks.NewMockSupplierRepository(gomock.NewController(t))
	svc := NewSupplierService(repo, "AF").(*supplierService)
	svc.now = fixedClock
	return svc, repo
}

func TestSupplierService_AddPurchase(t *testing.T) {
	svc, repo := newSupplierService(t)
	repo.EXPECT().FindByID(gomock.Any(), int64(2)).Return(&model.Supplier{ID: 2, Name: "Karim"}, nil)
	repo.EXPECT().AddPurchase(gomock.Any(), gomock.Any()).Return(nil)

	p, err := svc.AddPurchase(context.Background(), 2, model.SupplierPurchaseRequest{
		ProductName: " Bangle ",
		Gram:        d("50"),
		Karat:       21,
		Pasa:        d("0.5"),
		Wage:        d("200"),
		Paid:        d("150"),
		Currency:    model.CurrencyUSD,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bangle", p.ProductName)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), p.Date)
}

func TestSupplierService_AddPurchase_Rejects(t *testing.T) {
	tests := []struct {
		name string
		req  model.SupplierPurchaseRequest
	}{
		{"paid over wage", model.SupplierPurchaseRequest{Gram: d("1"), Wage: d("10"), Paid: d("11")}},
		{"zero gram", model.SupplierPurchaseRequest{Gram: d("0"), Wage: d("10")}},
		{"negative pasa", model.SupplierPurchaseRequest{Gram: d("1"), Pasa: d("-1")}},
		{"bad date", model.SupplierPurchaseRequest{Gram: d("1"), Date: "05/03/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newSupplierService(t)
			_, err := svc.AddPurchase(context.Background(), 2, tt.req)
			assert.ErrorIs(t, err, ledger.ErrValidation)
		})
	}
}

func TestSupplierService_AddPurchase_UnknownSupplier(t *testing.T) {
	svc, repo := newSupplierService(t)
	repo.EXPECT().FindByID(gomock.Any(), int64(2)).Return(nil, nil)

	_, err := svc.AddPurchase(context.Background(), 2, model.SupplierPurchaseRequest{Gram: d("1"), Wage: d("1")})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestCustomerService_CreateCustomer_NormalizesPhone(t *testing.T) {
	repo := mocks.NewMockCustomerRepository(gomock.NewController(t))
	svc := NewCustomerService(repo, "AF")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	c, err := svc.CreateCustomer(context.Background(), model.CustomerRequest{Name: "Ahmad", Phone: "070 123 4567"})
	require.NoError(t, err)
	assert.Equal(t, "+93701234567", c.Phone)

	_, err = svc.CreateCustomer(context.Background(), model.CustomerRequest{Name: "Ahmad", Phone: "12"})
	assert.ErrorIs(t, err, ledger.ErrValidation)
}
