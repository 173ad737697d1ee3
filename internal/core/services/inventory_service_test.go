package services

import (
	"context"
	"testing"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSupplierRepo struct {
	*memStore[models.Supplier]
}

func (r *fakeSupplierRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeSupplierRepo) ExistsByTaxID(_ context.Context, taxID string) (bool, error) {
	for _, s := range r.rows {
		if s.TaxID == taxID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSupplierRepo) List(_ context.Context, _ string, offset, limit int) ([]*models.Supplier, int64, error) {
	matched := r.all(nil)
	if offset >= len(matched) {
		return []*models.Supplier{}, int64(len(matched)), nil
	}
	return matched[offset:min(offset+limit, len(matched))], int64(len(matched)), nil
}

// fakeMaterialRepo applies movements the way the transactional repository does:
// on a copy of the row, written back only when the movement is accepted
type fakeMaterialRepo struct {
	*memStore[models.Material]
	movements []*models.MaterialMovement
}

func (r *fakeMaterialRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, m := range r.rows {
		if m.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMaterialRepo) List(_ context.Context, _ string, lowStockOnly bool, offset, limit int) ([]*models.Material, int64, error) {
	matched := r.all(func(m *models.Material) bool { return !lowStockOnly || m.IsLowStock() })
	if offset >= len(matched) {
		return []*models.Material{}, int64(len(matched)), nil
	}
	return matched[offset:min(offset+limit, len(matched))], int64(len(matched)), nil
}

func (r *fakeMaterialRepo) ApplyMovement(ctx context.Context, movement *models.MaterialMovement) (*models.Material, error) {
	row, err := r.GetByID(ctx, movement.MaterialID)
	if err != nil {
		return nil, err
	}
	material := *row
	if err := material.Apply(movement); err != nil {
		return nil, err
	}
	row.Stock = material.Stock
	r.movements = append(r.movements, movement)
	return &material, nil
}

func (r *fakeMaterialRepo) ListMovements(_ context.Context, materialID uint, offset, limit int) ([]*models.MaterialMovement, int64, error) {
	var matched []*models.MaterialMovement
	for _, m := range r.movements {
		if m.MaterialID == materialID {
			matched = append(matched, m)
		}
	}
	if offset >= len(matched) {
		return []*models.MaterialMovement{}, int64(len(matched)), nil
	}
	return matched[offset:min(offset+limit, len(matched))], int64(len(matched)), nil
}

type inventoryFixture struct {
	suppliers *fakeSupplierRepo
	materials *fakeMaterialRepo
}

func newInventoryFixture() *inventoryFixture {
	return &inventoryFixture{
		suppliers: &fakeSupplierRepo{newMemStore(func(s *models.Supplier) *uint { return &s.ID })},
		materials: &fakeMaterialRepo{memStore: newMemStore(func(m *models.Material) *uint { return &m.ID })},
	}
}

func (f *inventoryFixture) service() *InventoryService {
	return NewInventoryService(f.suppliers, f.materials)
}

func TestInventoryServiceSuppliers(t *testing.T) {
	ctx := context.Background()
	svc := newInventoryFixture().service()

	supplier, err := svc.CreateSupplier(ctx, &SupplierInput{TaxID: "900123456-1", Name: "Lonas del Valle"})
	require.NoError(t, err)
	assert.True(t, supplier.IsActive)

	_, err = svc.CreateSupplier(ctx, &SupplierInput{TaxID: "900123456-1", Name: "Copia"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	_, err = svc.CreateSupplier(ctx, &SupplierInput{Name: "Sin NIT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := svc.UpdateSupplier(ctx, supplier.ID, &SupplierInput{TaxID: "900123456-1", Name: "Lonas del Valle SAS", Category: " lonas "})
	require.NoError(t, err)
	assert.Equal(t, "lonas", updated.Category)

	require.NoError(t, svc.DeleteSupplier(ctx, supplier.ID))
	_, err = svc.GetSupplier(ctx, supplier.ID)
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}

func TestInventoryServiceMaterials(t *testing.T) {
	ctx := context.Background()
	fixture := newInventoryFixture()
	svc := fixture.service()

	supplier, err := svc.CreateSupplier(ctx, &SupplierInput{TaxID: "900123456-1", Name: "Lonas del Valle"})
	require.NoError(t, err)

	material, err := svc.CreateMaterial(ctx, &MaterialInput{Code: "LONA-PVC", Name: "Lona PVC", Unit: "m2", Stock: 10, MinStock: 4, SupplierID: &supplier.ID})
	require.NoError(t, err)
	assert.Equal(t, 10.0, material.Stock)

	tests := []struct {
		name  string
		input MaterialInput
		want  error
	}{
		{"duplicate code", MaterialInput{Code: "LONA-PVC", Name: "Otra", Unit: "m2"}, domain.ErrDuplicateEntry},
		{"negative opening stock", MaterialInput{Code: "X", Name: "X", Unit: "u", Stock: -1}, domain.ErrInvalidInput},
		{"negative minimum", MaterialInput{Code: "X", Name: "X", Unit: "u", MinStock: -1}, domain.ErrInvalidInput},
		{"missing unit", MaterialInput{Code: "X", Name: "X"}, domain.ErrInvalidInput},
		{"unknown supplier", MaterialInput{Code: "X", Name: "X", Unit: "u", SupplierID: uintPtr(99)}, domain.ErrSupplierNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateMaterial(ctx, &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = svc.UpdateMaterial(ctx, 99, &MaterialInput{Code: "X", Name: "X", Unit: "u"})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestInventoryServiceMovements(t *testing.T) {
	ctx := context.Background()
	fixture := newInventoryFixture()
	svc := fixture.service()

	material, err := svc.CreateMaterial(ctx, &MaterialInput{Code: "TUBO-2", Name: "Tubo galvanizado 2in", Unit: "u", Stock: 10, MinStock: 4})
	require.NoError(t, err)

	t.Run("in adds to stock", func(t *testing.T) {
		movement, updated, err := svc.RegisterMovement(ctx, material.ID, &MovementInput{MovementType: "in", Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, models.MovementIn, movement.MovementType)
		assert.Equal(t, 15.0, movement.StockAfter)
		assert.Equal(t, 15.0, updated.Stock)
	})

	t.Run("out larger than stock is rejected", func(t *testing.T) {
		_, _, err := svc.RegisterMovement(ctx, material.ID, &MovementInput{MovementType: "OUT", Quantity: 15.5})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		current, err := svc.GetMaterial(ctx, material.ID)
		require.NoError(t, err)
		assert.Equal(t, 15.0, current.Stock)
	})

	t.Run("out may empty the stock", func(t *testing.T) {
		movement, updated, err := svc.RegisterMovement(ctx, material.ID, &MovementInput{MovementType: "OUT", Quantity: 15, ProjectID: uintPtr(3)})
		require.NoError(t, err)
		assert.Zero(t, movement.StockAfter)
		assert.Zero(t, updated.Stock)
		assert.True(t, updated.IsLowStock())
	})

	t.Run("invalid movements", func(t *testing.T) {
		tests := []struct {
			name  string
			input MovementInput
		}{
			{"zero quantity", MovementInput{MovementType: "IN", Quantity: 0}},
			{"negative quantity", MovementInput{MovementType: "OUT", Quantity: -2}},
			{"unknown type", MovementInput{MovementType: "TRANSFER", Quantity: 1}},
		}
		for _, tt := range tests {
			_, _, err := svc.RegisterMovement(ctx, material.ID, &tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, tt.name)
		}
	})

	t.Run("unknown material", func(t *testing.T) {
		_, _, err := svc.RegisterMovement(ctx, 99, &MovementInput{MovementType: "IN", Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

		_, _, err = svc.ListMovements(ctx, 99, 0, 10)
		assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
	})

	movements, total, err := svc.ListMovements(ctx, material.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, movements, 2)

	low, _, err := svc.ListMaterials(ctx, "", true, 0, 10)
	require.NoError(t, err)
	assert.Len(t, low, 1)
}
