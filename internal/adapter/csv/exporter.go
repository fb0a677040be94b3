// Package csv renders transaction listings as spreadsheet-friendly CSV.
package csv

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/neomorfeo/tourify/internal/domain"
)

// ContentType is the media type served with an export.
const ContentType = "text/csv; charset=utf-8"

var header = []string{"Fecha", "Tipo", "Categoría", "Descripción", "Monto"}

// Filename returns the download name for an export produced at now.
func Filename(now time.Time) string {
	return "transacciones_" + now.UTC().Format(domain.DateLayout) + ".csv"
}

// Write renders txs in the given order. The description column is always
// quoted; every other column is quoted only when it needs to be.
func Write(w io.Writer, txs []domain.Transaction) error {
	bw := bufio.NewWriter(w)

	if err := writeLine(bw, header, -1); err != nil {
		return err
	}
	for _, t := range txs {
		row := []string{
			t.Date.UTC().Format(domain.DateLayout),
			typeLabel(t.Type),
			t.Category,
			t.Description,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
		}
		if err := writeLine(bw, row, 3); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func typeLabel(t domain.TransactionType) string {
	if t == domain.TypeIncome {
		return "Ingreso"
	}
	return "Gasto"
}

func writeLine(w *bufio.Writer, fields []string, alwaysQuoted int) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return fmt.Errorf("writing csv: %w", err)
			}
		}
		if i == alwaysQuoted || needsQuotes(f) {
			f = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		if _, err := w.WriteString(f); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func needsQuotes(f string) bool {
	if f == "" {
		return false
	}
	return f[0] == ' ' || strings.ContainsAny(f, ",\"\r\n")
}
