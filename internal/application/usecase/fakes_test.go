package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	"github.com/tu-usuario/inventory-lite/internal/domain"
	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
	"github.com/tu-usuario/inventory-lite/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos. Replican el contrato de los repositorios
// SQLite (GetByID ausente → nil,nil; Update/Delete ausente → ErrNotFound) para
// que los casos de uso se prueben sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	nextID int64
	items  map[int64]entity.Item
	err    error // si está presente, todas las operaciones fallan con él
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]entity.Item)}
}

func (f *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) AdjustQuantity(_ context.Context, id, delta int64) (*entity.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if item.Quantity+delta < 0 {
		return nil, fmt.Errorf("%w: el ajuste dejaría las existencias en negativo", domain.ErrInvalidInput)
	}
	item.Quantity += delta
	item.UpdatedAt = time.Now()
	f.items[id] = item
	return &item, nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) List(_ context.Context, filter repository.ListFilter) ([]entity.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	q := strings.ToLower(filter.Query)
	out := make([]entity.Item, 0, len(f.items))
	for _, item := range f.items {
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Category), q) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

type fakeReportRepo struct {
	quantities []repository.NameQuantity
	values     []repository.NameValue
	totals     repository.StockTotals
	low        []entity.Item
	err        error

	gotThreshold int64 // último umbral con el que se llamó LowStock
}

func (f *fakeReportRepo) QuantityByItem(_ context.Context) ([]repository.NameQuantity, error) {
	return f.quantities, f.err
}

func (f *fakeReportRepo) ValueByItem(_ context.Context) ([]repository.NameValue, error) {
	return f.values, f.err
}

func (f *fakeReportRepo) Totals(_ context.Context) (repository.StockTotals, error) {
	return f.totals, f.err
}

func (f *fakeReportRepo) LowStock(_ context.Context, threshold int64) ([]entity.Item, error) {
	f.gotThreshold = threshold
	return f.low, f.err
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

type fakeCodec struct {
	rows      []usecase.SpreadsheetRow
	decodeErr error
	csvOut    []byte
	xlsxOut   []byte
}

func (f *fakeCodec) Decode(_ []byte) ([]usecase.SpreadsheetRow, error) {
	if f.decodeErr != nil {
		return nil, f.decodeErr
	}
	return f.rows, nil
}

func (f *fakeCodec) EncodeCSV(_ []entity.Item) ([]byte, error)  { return f.csvOut, nil }
func (f *fakeCodec) EncodeXLSX(_ []entity.Item) ([]byte, error) { return f.xlsxOut, nil }

var _ usecase.SpreadsheetCodec = (*fakeCodec)(nil)

type fakeGenerator struct {
	got usecase.StockReportData
	out []byte
	err error
}

func (f *fakeGenerator) GenerateStockReport(_ context.Context, data usecase.StockReportData) ([]byte, error) {
	f.got = data
	return f.out, f.err
}

var _ usecase.StockReportGenerator = (*fakeGenerator)(nil)
