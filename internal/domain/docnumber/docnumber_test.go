package docnumber_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/comercial-pro/internal/domain/docnumber"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

func TestSalePrefix(t *testing.T) {
	assert.Equal(t, "BOL", docnumber.SalePrefix(entity.DocTypeBoleta))
	assert.Equal(t, "FAC", docnumber.SalePrefix(entity.DocTypeFactura))
	assert.Equal(t, "TIC", docnumber.SalePrefix(entity.DocTypeTicket))
	assert.Equal(t, "VEN", docnumber.SalePrefix("desconocido"))
}

func TestNext_PrimerNumeroDelAnio(t *testing.T) {
	n, err := docnumber.Next("", "BOL", 2026, docnumber.SaleSeqWidth)
	require.NoError(t, err)
	assert.Equal(t, "BOL-2026-0001", n)

	n, err = docnumber.Next("", docnumber.PurchasePrefix, 2026, docnumber.PurchaseSeqWidth)
	require.NoError(t, err)
	assert.Equal(t, "COM-2026-001", n)
}

func TestNext_Incremental(t *testing.T) {
	n, err := docnumber.Next("FAC-2026-0041", "FAC", 2026, docnumber.SaleSeqWidth)
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-0042", n)

	n, err = docnumber.Next("COM-2026-009", "COM", 2026, docnumber.PurchaseSeqWidth)
	require.NoError(t, err)
	assert.Equal(t, "COM-2026-010", n)
}

// La secuencia debe ser estrictamente creciente y sin huecos al encadenar N
// generaciones dentro del mismo año.
func TestNext_SecuenciaSinHuecos(t *testing.T) {
	last := ""
	for i := 1; i <= 25; i++ {
		n, err := docnumber.Next(last, "TIC", 2026, docnumber.SaleSeqWidth)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("TIC-2026-%04d", i), n)
		last = n
	}
}

// Al cruzar el año el repositorio no encuentra números con el nuevo prefijo
// de año, pasa last vacío y la secuencia vuelve a 1.
func TestNext_ReinicioPorAnio(t *testing.T) {
	n, err := docnumber.Next("", "BOL", 2027, docnumber.SaleSeqWidth)
	require.NoError(t, err)
	assert.Equal(t, "BOL-2027-0001", n)
}

func TestNext_DesbordaAncho(t *testing.T) {
	// La secuencia puede superar el ancho mínimo sin truncarse.
	n, err := docnumber.Next("COM-2026-999", "COM", 2026, docnumber.PurchaseSeqWidth)
	require.NoError(t, err)
	assert.Equal(t, "COM-2026-1000", n)
}

func TestNext_NumeroPrevioMalformado(t *testing.T) {
	_, err := docnumber.Next("BOL-2026-XX", "BOL", 2026, docnumber.SaleSeqWidth)
	require.Error(t, err)
}
