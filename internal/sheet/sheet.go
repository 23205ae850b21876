// Package sheet moves the product collection in and out of spreadsheet
// files.
//
// Export writes the current in-memory collection to an .xlsx worksheet.
// Import reads such a worksheet back into product drafts and creates each of
// them through the gateway, so imported rows round-trip through the server
// and the local cache only ever mirrors canonical records. Rows that fail
// validation are skipped and reported with their row numbers; a gateway
// failure stops the import at the failing row.
package sheet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kestrel7/stockpile/internal/catalog"
	"github.com/kestrel7/stockpile/internal/spiritx"
)

// SheetName is the worksheet products are written to and read from.
const SheetName = "Products"

var header = []string{"ID", "Title", "Description", "Price", "Image"}

// Export serializes products to an .xlsx file at path, ordered by ID.
func Export(products []catalog.Product, path string) error {
	sorted := make([]catalog.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, p := range sorted {
		row := []any{p.ID, p.Title, p.Description, p.PriceString(), p.Image}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}
	return nil
}

// SkippedRow reports a spreadsheet row that failed validation.
type SkippedRow struct {
	Row    int // 1-based worksheet row number
	Reason string
}

// ReadDrafts parses the worksheet at path into validated product drafts.
// Invalid rows are returned as SkippedRows rather than failing the whole
// file; fully blank rows are ignored silently.
func ReadDrafts(path string) ([]catalog.Draft, []SkippedRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	name := SheetName
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		name = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", name, err)
	}

	var drafts []catalog.Draft
	var skipped []SkippedRow
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if blankRow(row) {
			continue
		}

		draft := catalog.Draft{
			Title:       cell(row, 1),
			Description: cell(row, 2),
			Price:       cell(row, 3),
		}
		normalized, errs := draft.Validate()
		if errs != nil {
			skipped = append(skipped, SkippedRow{Row: i + 1, Reason: firstReason(errs)})
			continue
		}
		drafts = append(drafts, normalized)
	}
	return drafts, skipped, nil
}

// Summary reports what an import accomplished.
type Summary struct {
	Created int
	Skipped []SkippedRow
}

// Import reads drafts from path and creates each through the gateway,
// mirroring every canonical response into the store. It stops at the first
// gateway failure, reporting how many rows had been created by then.
func Import(ctx context.Context, gw spiritx.Gateway, store *catalog.Store, path string, categoryID int) (Summary, error) {
	drafts, skipped, err := ReadDrafts(path)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Skipped: skipped}
	for _, draft := range drafts {
		created, err := gw.CreateProduct(ctx, draft, categoryID)
		if err != nil {
			return summary, fmt.Errorf("import %q after %d created: %w", draft.Title, summary.Created, err)
		}
		store.Upsert(created)
		summary.Created++
	}
	return summary, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

func isHeader(row []string) bool {
	return cell(row, 0) == header[0] && cell(row, 1) == header[1]
}

func firstReason(errs catalog.FieldErrors) string {
	// Deterministic pick: report the lexicographically first field.
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	if len(fields) == 0 {
		return "invalid row"
	}
	return fields[0] + ": " + errs[fields[0]]
}

// ExportFileName suggests a file name for an export started at t.
func ExportFileName(t time.Time) string {
	return "products-" + t.Format("20060102-150405") + ".xlsx"
}
