package csv_test

import (
	"bytes"
	stdcsv "encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/neomorfeo/tourify/internal/adapter/csv"
	"github.com/neomorfeo/tourify/internal/domain"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestWrite_RoundTripsThroughEncodingCSV(t *testing.T) {
	txs := []domain.Transaction{
		{
			ID: "t-2", Type: domain.TypeExpense, Category: "Arriendo",
			Description: `Oficina, piso 3 "central"`, Amount: 200000,
			Date: date(t, "2024-05-03"),
		},
		{
			ID: "t-1", Type: domain.TypeIncome, Category: "Tour Virtual",
			Description: "Pago cliente", Amount: 500000.5,
			Date: date(t, "2024-05-01"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, csv.Write(&buf, txs))

	records, err := stdcsv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Fecha", "Tipo", "Categoría", "Descripción", "Monto"},
		{"2024-05-03", "Gasto", "Arriendo", `Oficina, piso 3 "central"`, "200000"},
		{"2024-05-01", "Ingreso", "Tour Virtual", "Pago cliente", "500000.5"},
	}, records)
}

func TestWrite_AlwaysQuotesDescription(t *testing.T) {
	var buf bytes.Buffer
	err := csv.Write(&buf, []domain.Transaction{{
		Type: domain.TypeIncome, Category: "Fotografía", Description: "Sesión",
		Amount: 80000, Date: date(t, "2024-01-15"),
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Fecha,Tipo,Categoría,Descripción,Monto", lines[0])
	require.Equal(t, `2024-01-15,Ingreso,Fotografía,"Sesión",80000`, lines[1])
}

func TestWrite_EmptyListingHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, csv.Write(&buf, nil))
	require.Equal(t, "Fecha,Tipo,Categoría,Descripción,Monto\n", buf.String())
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC)
	require.Equal(t, "transacciones_2024-03-09.csv", csv.Filename(now))
}
