package sheet

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kestrel7/stockpile/internal/catalog"
	"github.com/kestrel7/stockpile/internal/spiritx"
)

// fakeGateway implements spiritx.Gateway for import tests.
type fakeGateway struct {
	nextID  int64
	created []catalog.Draft
	failOn  string
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (spiritx.Credentials, error) {
	return spiritx.Credentials{}, errors.New("not implemented")
}

func (f *fakeGateway) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGateway) CreateProduct(ctx context.Context, draft catalog.Draft, categoryID int) (catalog.Product, error) {
	if f.failOn != "" && draft.Title == f.failOn {
		return catalog.Product{}, errors.New("gateway refused")
	}
	f.nextID++
	f.created = append(f.created, draft)
	price, err := catalog.ParsePrice(draft.Price)
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.Product{
		ID:          f.nextID,
		Title:       draft.Title,
		Description: draft.Description,
		Price:       price,
		CategoryID:  categoryID,
	}, nil
}

func (f *fakeGateway) UpdateProduct(ctx context.Context, id int64, changes catalog.Changes) (catalog.Product, error) {
	return catalog.Product{}, errors.New("not implemented")
}

func (f *fakeGateway) DeleteProduct(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(SheetName)
	require.NoError(t, err)
	for i, row := range rows {
		require.NoError(t, f.SetSheetRow(SheetName, cellRef(i+1), &row))
	}
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func cellRef(row int) string {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	return cell
}

func TestExport_WritesHeaderAndSortedRows(t *testing.T) {
	products := []catalog.Product{
		{ID: 2, Title: "Pillow", Price: decimal.RequireFromString("20.00")},
		{ID: 1, Title: "Blanket", Description: "Soft", Price: decimal.RequireFromString("10.00"), Image: "product/1.png"},
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, Export(products, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Title", "Description", "Price", "Image"}, rows[0])
	assert.Equal(t, []string{"1", "Blanket", "Soft", "10.00", "product/1.png"}, rows[1])
	assert.Equal(t, "Pillow", rows[2][1])
}

func TestReadDrafts_SkipsInvalidRows(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"ID", "Title", "Description", "Price", "Image"},
		{"", "Blanket", "Soft", "12.5", ""},
		{"", "", "no title", "5.00", ""},
		{"", "Mug", "", "abc", ""},
		{"", "", "", "", ""},
		{"", "Pillow", "", "20", ""},
	})

	drafts, skipped, err := ReadDrafts(path)
	require.NoError(t, err)

	require.Len(t, drafts, 2)
	assert.Equal(t, "Blanket", drafts[0].Title)
	assert.Equal(t, "12.50", drafts[0].Price, "price normalized on read")
	assert.Equal(t, "20.00", drafts[1].Price)

	require.Len(t, skipped, 2)
	assert.Equal(t, 3, skipped[0].Row)
	assert.Contains(t, skipped[0].Reason, "title")
	assert.Equal(t, 4, skipped[1].Row)
	assert.Contains(t, skipped[1].Reason, "price")
}

func TestImport_RoundTripsThroughGateway(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"ID", "Title", "Description", "Price", "Image"},
		{"", "Blanket", "Soft", "10.00", ""},
		{"", "Pillow", "", "20.00", ""},
	})

	gw := &fakeGateway{}
	store := catalog.NewStore()

	summary, err := Import(context.Background(), gw, store, path, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	assert.Empty(t, summary.Skipped)

	// The store holds the gateway's canonical records, not the raw rows.
	require.Equal(t, 2, store.Len())
	p, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Blanket", p.Title)
	assert.Equal(t, 99, p.CategoryID)
}

func TestImport_StopsAtGatewayFailure(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"ID", "Title", "Description", "Price", "Image"},
		{"", "Blanket", "", "10.00", ""},
		{"", "Cursed", "", "6.66", ""},
		{"", "Pillow", "", "20.00", ""},
	})

	gw := &fakeGateway{failOn: "Cursed"}
	store := catalog.NewStore()

	summary, err := Import(context.Background(), gw, store, path, 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cursed")
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, store.Len())
}
