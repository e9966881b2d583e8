// Package docnumber genera números de documento legibles con el formato
// {PREFIJO}-{AÑO}-{SECUENCIA}: la secuencia es incremental por prefijo y se
// reinicia en 1 cada año. Las ventas usan secuencia de 4 dígitos con prefijo
// según comprobante (BOL/FAC/TIC); las compras usan COM con 3 dígitos.
package docnumber

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

// Anchos de secuencia por tipo de documento.
const (
	SaleSeqWidth     = 4
	PurchaseSeqWidth = 3
)

// PurchasePrefix prefijo de los números de compra.
const PurchasePrefix = "COM"

// SalePrefix devuelve el prefijo según el tipo de comprobante.
// Tipos desconocidos caen en "VEN".
func SalePrefix(docType string) string {
	switch docType {
	case entity.DocTypeBoleta:
		return "BOL"
	case entity.DocTypeFactura:
		return "FAC"
	case entity.DocTypeTicket:
		return "TIC"
	default:
		return "VEN"
	}
}

// Next calcula el siguiente número a partir del último emitido para el mismo
// prefijo y año. Si last es vacío (primer documento del año) la secuencia
// inicia en 1. El año del número siempre es el recibido: un last de otro año
// no debe pasarse (el repositorio filtra por "PREFIJO-AÑO-%").
func Next(last, prefix string, year, width int) (string, error) {
	seq := 1
	if last != "" {
		parts := strings.Split(last, "-")
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			return "", fmt.Errorf("docnumber: número previo malformado %q: %w", last, err)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, width, seq), nil
}
