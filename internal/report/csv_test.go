package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/sakif/shop-ledger/internal/model"
)

func exportCSV(t *testing.T, sales []model.Sale, products []model.Product) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sales, products); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	return buf.String()
}

func TestWriteCSV_StartsWithBOMAndHeader(t *testing.T) {
	out := exportCSV(t, nil, nil)

	if !strings.HasPrefix(out, "\ufeff") {
		t.Error("export does not start with a UTF-8 BOM")
	}
	firstLine := strings.SplitN(strings.TrimPrefix(out, "\ufeff"), "\n", 2)[0]
	if firstLine != `"Date","Product","Quantity","Unit Price","Total Price"` {
		t.Errorf("header = %q", firstLine)
	}
}

// Every row parsed back from the output must reproduce the sale's
// date, product name, quantity, and both prices to two decimals.
func TestWriteCSV_RoundTrip(t *testing.T) {
	products := []model.Product{
		{ID: 1, Name: `Mug, "Deluxe"`}, // comma and quotes — the escaping cases
		{ID: 2, Name: "Pen"},
	}
	sales := []model.Sale{
		{ID: 10, ProductID: 1, Quantity: 2, UnitPrice: 90, TotalPrice: 180, Date: "2026-08-30"},
		{ID: 11, ProductID: 2, Quantity: 7, UnitPrice: 1.5, TotalPrice: 10.5, Date: "2026-08-31"},
	}

	out := strings.TrimPrefix(exportCSV(t, sales, products), "\ufeff")

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not parseable CSV: %v", err)
	}
	if len(records) != 3 { // header + 2 rows
		t.Fatalf("got %d records, want 3", len(records))
	}

	want := [][]string{
		{"2026-08-30", `Mug, "Deluxe"`, "2", "90.00", "180.00"},
		{"2026-08-31", "Pen", "7", "1.50", "10.50"},
	}
	for i, row := range records[1:] {
		for j, field := range want[i] {
			if row[j] != field {
				t.Errorf("row %d field %d = %q, want %q", i, j, row[j], field)
			}
		}
	}
}

func TestWriteCSV_SkipsDanglingReferences(t *testing.T) {
	products := []model.Product{{ID: 1, Name: "Kept"}}
	sales := []model.Sale{
		{ProductID: 1, Quantity: 1, Date: "2026-08-31"},
		{ProductID: 42, Quantity: 9, Date: "2026-08-31"}, // no such product
	}

	out := exportCSV(t, sales, products)
	if strings.Count(out, "\n") != 2 { // header + 1 row
		t.Errorf("expected exactly one data row, got output:\n%s", out)
	}
}

func TestWriteCSV_EveryFieldQuoted(t *testing.T) {
	products := []model.Product{{ID: 1, Name: "Plain"}}
	sales := []model.Sale{{ProductID: 1, Quantity: 3, UnitPrice: 2, TotalPrice: 6, Date: "2026-08-31"}}

	out := exportCSV(t, sales, products)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	dataRow := lines[len(lines)-1]
	if dataRow != `"2026-08-31","Plain","3","2.00","6.00"` {
		t.Errorf("data row = %q, want every field quoted", dataRow)
	}
}

func TestCSVFileName(t *testing.T) {
	now, _ := time.Parse(model.DateLayout, "2026-08-31")
	if got := CSVFileName(now); got != "sales_report_2026-08-31.csv" {
		t.Errorf("CSVFileName() = %q", got)
	}
}
