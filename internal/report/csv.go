package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sakif/shop-ledger/internal/model"
)

// CSV export of the sales ledger.
//
// WHY NOT encoding/csv?
// Spreadsheet tools are far more forgiving of CSV when every field is
// quoted, so the export quotes unconditionally. encoding/csv only
// quotes fields that need it and offers no always-quote switch, and the
// format here is a fixed five-column row — hand-writing it is shorter
// than fighting the library.

const csvHeader = `"Date","Product","Quantity","Unit Price","Total Price"`

// utf8BOM makes Excel detect the file as UTF-8 instead of guessing a
// legacy code page.
const utf8BOM = "\ufeff"

// CSVFileName is the download name for an export generated now.
func CSVFileName(now time.Time) string {
	return fmt.Sprintf("sales_report_%s.csv", now.Format(model.DateLayout))
}

// WriteCSV writes the export: BOM, header, then one row per sale whose
// product still resolves (dangling references are skipped, same as
// every other read of the ledger). Prices are rendered with exactly two
// decimals and no currency symbol so the column stays numeric.
func WriteCSV(w io.Writer, sales []model.Sale, products []model.Product) error {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, s := range sales {
		name, ok := names[s.ProductID]
		if !ok {
			continue
		}
		row := []string{
			quoteField(s.Date),
			quoteField(name),
			quoteField(fmt.Sprintf("%d", s.Quantity)),
			quoteField(fmt.Sprintf("%.2f", s.UnitPrice)),
			quoteField(fmt.Sprintf("%.2f", s.TotalPrice)),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("report: writing csv: %w", err)
	}
	return nil
}

// quoteField wraps a value in double quotes, doubling any embedded
// quote — the one escaping rule CSV has.
func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
