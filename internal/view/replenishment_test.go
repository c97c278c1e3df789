package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motopecas/pos-core/internal/models"
	"github.com/motopecas/pos-core/internal/repo"
	"github.com/motopecas/pos-core/internal/view"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		minimum int
		want    view.StockStatus
	}{
		{"zero stock is critical", 0, 5, view.StatusCritical},
		{"zero stock critical even with zero minimum", 0, 0, view.StatusCritical},
		{"below minimum is low", 2, 5, view.StatusLow},
		{"exactly at minimum is low", 5, 5, view.StatusLow},
		{"above minimum is ok", 6, 5, view.StatusOK},
		{"any stock with zero minimum is ok", 1, 0, view.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view.Classify(tt.stock, tt.minimum))
		})
	}
}

func TestNeededQuantity(t *testing.T) {
	assert.Equal(t, 5, view.NeededQuantity(0, 5))
	assert.Equal(t, 3, view.NeededQuantity(2, 5))
	assert.Equal(t, 0, view.NeededQuantity(5, 5))
	assert.Equal(t, 0, view.NeededQuantity(9, 5))
}

func TestBuildReplenishment(t *testing.T) {
	products := []models.Product{
		{ID: 1, SKU: "A", Name: "out of stock", Quantity: 0, MinStock: 4},
		{ID: 2, SKU: "B", Name: "running low", Quantity: 3, MinStock: 4},
		{ID: 3, SKU: "C", Name: "healthy", Quantity: 10, MinStock: 4},
	}

	rows := view.BuildReplenishment(products)
	require.Len(t, rows, 3)
	assert.Equal(t, view.StatusCritical, rows[0].Status)
	assert.Equal(t, 4, rows[0].Needed)
	assert.Equal(t, view.StatusLow, rows[1].Status)
	assert.Equal(t, 1, rows[1].Needed)
	assert.Equal(t, view.StatusOK, rows[2].Status)
	assert.Equal(t, 0, rows[2].Needed)

	short := view.Shortages(rows)
	require.Len(t, short, 2)
	assert.Equal(t, 1, short[0].ProductID)
	assert.Equal(t, 2, short[1].ProductID)
}

func TestReplenishmentService_List(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	products.Put(models.Product{SKU: "A", Name: "out", Quantity: 0, MinStock: 2, Active: true})
	products.Put(models.Product{SKU: "B", Name: "fine", Quantity: 9, MinStock: 2, Active: true})
	products.Put(models.Product{SKU: "C", Name: "gone", Quantity: 0, MinStock: 2, Active: false})

	svc := view.NewReplenishmentService(products)

	rows, err := svc.List(false)
	require.NoError(t, err)
	require.Len(t, rows, 1, "inactive and healthy products are excluded")
	assert.Equal(t, 1, rows[0].ProductID)

	all, err := svc.List(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Reading the view must not change ledger state.
	again, err := svc.List(false)
	require.NoError(t, err)
	assert.Equal(t, rows, again)
}
