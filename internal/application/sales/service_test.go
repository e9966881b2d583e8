package sales

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
)

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	svc := NewService(
		&memTxRunner{store},
		&memSaleRepo{store},
		&memProductRepo{store},
		&memCustomerRepo{store},
		log,
	)
	return svc, store
}

func seedCustomer(store *memStore, id string) {
	store.customers[id] = &entity.Customer{
		ID: id, Document: "12345678", Names: "Ana", Surnames: "García", Active: true,
	}
}

func seedProduct(store *memStore, id string, stock int) *entity.Product {
	p := &entity.Product{
		ID:            id,
		Code:          "P-" + id,
		Name:          "Producto " + id,
		PurchasePrice: decimal.NewFromFloat(6.00),
		SalePrice:     decimal.NewFromFloat(10.50),
		Stock:         stock,
		MinStock:      2,
		Unit:          "unidad",
		Active:        true,
	}
	store.products[id] = p
	return p
}

func TestRegisterSale_DiscountsStockAndRecordsMovement(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 5)

	resp, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID:    "c1",
		DocumentType:  entity.DocTypeBoleta,
		PaymentMethod: entity.PaymentEfectivo,
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromFloat(10.50)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStateCompletada, resp.State)
	assert.Equal(t, 2, store.products["p1"].Stock)

	// Totales: 3 × 10.50 = 31.50; IGV 18% = 5.67; total 37.17
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromFloat(31.50)), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.Tax.Equal(decimal.NewFromFloat(5.67)), "tax %s", resp.Tax)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(37.17)), "total %s", resp.Total)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementSalida, mov.Type)
	assert.Equal(t, entity.MotiveVenta, mov.Motive)
	assert.Equal(t, 3, mov.Quantity)
	assert.Equal(t, 5, mov.StockBefore)
	assert.Equal(t, 2, mov.StockAfter)
	require.NotNil(t, mov.ReferenceID)
	assert.Equal(t, resp.ID, *mov.ReferenceID)
}

func TestRegisterSale_NumbersAreSequentialPerDocType(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 100)

	year := time.Now().Year()
	line := []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromFloat(10.50)}}

	first, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "c1", DocumentType: entity.DocTypeBoleta, PaymentMethod: entity.PaymentEfectivo, Lines: line,
	})
	require.NoError(t, err)
	second, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "c1", DocumentType: entity.DocTypeBoleta, PaymentMethod: entity.PaymentEfectivo, Lines: line,
	})
	require.NoError(t, err)
	invoice, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "c1", DocumentType: entity.DocTypeFactura, PaymentMethod: entity.PaymentTarjeta, Lines: line,
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("BOL-%d-0001", year), first.Number)
	assert.Equal(t, fmt.Sprintf("BOL-%d-0002", year), second.Number)
	assert.Equal(t, fmt.Sprintf("FAC-%d-0001", year), invoice.Number)
}

func TestRegisterSale_NumberingPastSequenceWidth(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 100)

	// La secuencia ya desbordó los 4 dígitos: el último número real es 10000,
	// aunque "BOL-AAAA-9999" sea el mayor en orden lexicográfico.
	year := time.Now().Year()
	store.sales["v-9999"] = &entity.Sale{
		ID: "v-9999", Number: fmt.Sprintf("BOL-%d-9999", year), State: entity.SaleStateCompletada,
	}
	store.sales["v-10000"] = &entity.Sale{
		ID: "v-10000", Number: fmt.Sprintf("BOL-%d-10000", year), State: entity.SaleStateCompletada,
	}

	resp, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID:    "c1",
		DocumentType:  entity.DocTypeBoleta,
		PaymentMethod: entity.PaymentEfectivo,
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromFloat(10.50)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("BOL-%d-10001", year), resp.Number)
}

func TestRegisterSale_InsufficientStockLeavesNoTrace(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 2)

	_, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID:    "c1",
		DocumentType:  entity.DocTypeTicket,
		PaymentMethod: entity.PaymentEfectivo,
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromFloat(10.50)},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Faltante())

	// Sin escrituras: ni venta, ni movimiento, ni stock tocado
	assert.Equal(t, 2, store.products["p1"].Stock)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
}

func TestRegisterSale_SecondLineFailureRollsBackFirstLine(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 10)
	seedProduct(store, "p2", 1)

	_, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID:    "c1",
		DocumentType:  entity.DocTypeBoleta,
		PaymentMethod: entity.PaymentEfectivo,
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 4, UnitPrice: decimal.NewFromFloat(10.50)},
			{ProductID: "p2", Quantity: 5, UnitPrice: decimal.NewFromFloat(8.00)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La primera línea ya había descontado: el rollback lo revierte
	assert.Equal(t, 10, store.products["p1"].Stock)
	assert.Equal(t, 1, store.products["p2"].Stock)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
}

func TestRegisterSale_ValidationErrors(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 5)

	okLine := []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromFloat(10.50)}}

	cases := []struct {
		name string
		in   dto.RegisterSaleRequest
	}{
		{"sin cliente", dto.RegisterSaleRequest{DocumentType: "boleta", PaymentMethod: "efectivo", Lines: okLine}},
		{"sin lineas", dto.RegisterSaleRequest{CustomerID: "c1", DocumentType: "boleta", PaymentMethod: "efectivo"}},
		{"comprobante invalido", dto.RegisterSaleRequest{CustomerID: "c1", DocumentType: "recibo", PaymentMethod: "efectivo", Lines: okLine}},
		{"pago invalido", dto.RegisterSaleRequest{CustomerID: "c1", DocumentType: "boleta", PaymentMethod: "cheque", Lines: okLine}},
		{"cantidad cero", dto.RegisterSaleRequest{CustomerID: "c1", DocumentType: "boleta", PaymentMethod: "efectivo",
			Lines: []dto.SaleLineRequest{{ProductID: "p1", Quantity: 0, UnitPrice: decimal.NewFromFloat(10.50)}}}},
		{"precio cero", dto.RegisterSaleRequest{CustomerID: "c1", DocumentType: "boleta", PaymentMethod: "efectivo",
			Lines: []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterSale(context.Background(), "u1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "nadie", DocumentType: "boleta", PaymentMethod: "efectivo", Lines: okLine,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnulSale_RestoresStockWithEntryMovement(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 5)

	sale, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID:    "c1",
		DocumentType:  entity.DocTypeBoleta,
		PaymentMethod: entity.PaymentEfectivo,
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromFloat(10.50)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, store.products["p1"].Stock)

	annulled, err := svc.AnnulSale(context.Background(), "u2", sale.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStateAnulada, annulled.State)
	assert.Equal(t, 5, store.products["p1"].Stock)
	assert.Equal(t, entity.SaleStateAnulada, store.sales[sale.ID].State)

	require.Len(t, store.movements, 2)
	entry := store.movements[1]
	assert.Equal(t, entity.MovementEntrada, entry.Type)
	assert.Equal(t, entity.MotiveAnulacion, entry.Motive)
	assert.Equal(t, 3, entry.Quantity)
	assert.Equal(t, 2, entry.StockBefore)
	assert.Equal(t, 5, entry.StockAfter)
}

func TestAnnulSale_OnlyFromCompleted(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 5)

	sale, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID:    "c1",
		DocumentType:  entity.DocTypeBoleta,
		PaymentMethod: entity.PaymentEfectivo,
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromFloat(10.50)},
		},
	})
	require.NoError(t, err)

	_, err = svc.AnnulSale(context.Background(), "u1", sale.ID)
	require.NoError(t, err)

	// Segunda anulación: estado inválido, el stock no se toca de nuevo
	_, err = svc.AnnulSale(context.Background(), "u1", sale.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	var stateErr *domain.InvalidStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, entity.SaleStateAnulada, stateErr.CurrentState)
	assert.Equal(t, "anular", stateErr.Operation)
	assert.Equal(t, 5, store.products["p1"].Stock)

	_, err = svc.AnnulSale(context.Background(), "u1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPeriodStats_ExcludesAnnulledAndBreaksDownByPayment(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 100)

	mk := func(payment string, qty int) *dto.SaleResponse {
		resp, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
			CustomerID:    "c1",
			DocumentType:  entity.DocTypeBoleta,
			PaymentMethod: payment,
			Lines: []dto.SaleLineRequest{
				{ProductID: "p1", Quantity: qty, UnitPrice: decimal.NewFromFloat(10.00)},
			},
		})
		require.NoError(t, err)
		return resp
	}

	mk(entity.PaymentEfectivo, 1) // 11.80
	mk(entity.PaymentEfectivo, 2) // 23.60
	card := mk(entity.PaymentTarjeta, 3)
	_, err := svc.AnnulSale(context.Background(), "u1", card.ID)
	require.NoError(t, err)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	stats, err := svc.PeriodStats(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalSales)
	assert.True(t, stats.TotalSold.Equal(decimal.NewFromFloat(35.40)), "total %s", stats.TotalSold)
	assert.True(t, stats.MinTicket.Equal(decimal.NewFromFloat(11.80)))
	assert.True(t, stats.MaxTicket.Equal(decimal.NewFromFloat(23.60)))
	assert.True(t, stats.AverageTicket.Equal(decimal.NewFromFloat(17.70)))

	require.Contains(t, stats.ByPayment, entity.PaymentEfectivo)
	assert.Equal(t, 2, stats.ByPayment[entity.PaymentEfectivo].Count)
	assert.NotContains(t, stats.ByPayment, entity.PaymentTarjeta)

	_, err = svc.PeriodStats(context.Background(), to, from)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDaySales_ListsAllButTotalsOnlyCompleted(t *testing.T) {
	svc, store := newTestService()
	seedCustomer(store, "c1")
	seedProduct(store, "p1", 100)

	line := []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromFloat(10.00)}}
	first, err := svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "c1", DocumentType: entity.DocTypeBoleta, PaymentMethod: entity.PaymentEfectivo, Lines: line,
	})
	require.NoError(t, err)
	_, err = svc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "c1", DocumentType: entity.DocTypeBoleta, PaymentMethod: entity.PaymentEfectivo, Lines: line,
	})
	require.NoError(t, err)
	_, err = svc.AnnulSale(context.Background(), "u1", first.ID)
	require.NoError(t, err)

	report, err := svc.DaySales(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Len(t, report.Sales, 2)
	assert.Equal(t, 1, report.Count)
	assert.True(t, report.Total.Equal(decimal.NewFromFloat(11.80)), "total %s", report.Total)
}
