package services

import (
	"context"
	"testing"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEquipmentService(rows ...*models.EquipmentIssuance) (*EquipmentService, *fakeIssuanceRepo) {
	repo := newFakeIssuanceRepo(rows...)
	return NewEquipmentService(repo, fakeWorkers{7: true}, equipmentCatalog(), testEngine()), repo
}

func TestEquipmentServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("new issuance is active with derived expiry", func(t *testing.T) {
		svc, _ := newTestEquipmentService()

		view, err := svc.Create(ctx, &CreateIssuanceInput{WorkerID: 7, EquipmentTypeID: 2, IssueDate: "2025-04-01", Size: " L "})
		require.NoError(t, err)

		assert.Equal(t, models.IssuanceActive, view.Record.Status)
		assert.Equal(t, 1, view.Record.Quantity)
		assert.Equal(t, "L", view.Record.Size)
		require.NotNil(t, view.Record.ExpiryDate)
		assert.Equal(t, *day(2025, 6, 30), *view.Record.ExpiryDate)
		assert.Equal(t, vigency.StatusNearExpiry, view.Vigency.Status)
		assert.Equal(t, 15, view.Vigency.DaysRemaining)
	})

	t.Run("equipment without service life", func(t *testing.T) {
		svc, _ := newTestEquipmentService()

		view, err := svc.Create(ctx, &CreateIssuanceInput{WorkerID: 7, EquipmentTypeID: 3, IssueDate: "2025-04-01", Quantity: 2})
		require.NoError(t, err)
		assert.Nil(t, view.Record.ExpiryDate)
		assert.Equal(t, vigency.StatusUndetermined, view.Vigency.Status)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, _ := newTestEquipmentService()

		tests := []struct {
			name  string
			input CreateIssuanceInput
			want  error
		}{
			{"negative quantity", CreateIssuanceInput{WorkerID: 7, EquipmentTypeID: 1, Quantity: -1}, domain.ErrInvalidInput},
			{"unknown worker", CreateIssuanceInput{WorkerID: 1, EquipmentTypeID: 1}, domain.ErrWorkerNotFound},
			{"unknown equipment type", CreateIssuanceInput{WorkerID: 7, EquipmentTypeID: 42}, domain.ErrEquipmentTypeNotFound},
			{"malformed date", CreateIssuanceInput{WorkerID: 7, EquipmentTypeID: 1, IssueDate: "2025-13-01"}, domain.ErrInvalidInput},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Create(ctx, &tt.input)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})
}

func TestEquipmentServiceUpdate(t *testing.T) {
	ctx := context.Background()
	types := equipmentCatalog()

	svc, _ := newTestEquipmentService(&models.EquipmentIssuance{
		WorkerID:        7,
		EquipmentTypeID: 2,
		IssueDate:       day(2025, 4, 1),
		Quantity:        1,
		Status:          models.IssuanceActive,
		ExpiryDate:      day(2025, 6, 30),
		EquipmentType:   types[2],
	})

	view, err := svc.Update(ctx, 1, &UpdateIssuanceInput{Quantity: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, view.Record.Quantity)
	assert.Equal(t, *day(2025, 6, 30), *view.Record.ExpiryDate)

	view, err = svc.Update(ctx, 1, &UpdateIssuanceInput{EquipmentTypeID: uintPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, *day(2030, 3, 31), *view.Record.ExpiryDate)
	assert.Equal(t, vigency.StatusValid, view.Vigency.Status)

	_, err = svc.Update(ctx, 1, &UpdateIssuanceInput{Quantity: intPtr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(ctx, 9, &UpdateIssuanceInput{})
	assert.ErrorIs(t, err, domain.ErrIssuanceNotFound)
}

func TestEquipmentServiceChangeStatus(t *testing.T) {
	ctx := context.Background()
	types := equipmentCatalog()

	svc, repo := newTestEquipmentService(&models.EquipmentIssuance{
		WorkerID:        7,
		EquipmentTypeID: 1,
		IssueDate:       day(2025, 1, 1),
		Quantity:        1,
		Status:          models.IssuanceActive,
		EquipmentType:   types[1],
	})
	now := svc.engine.Now()

	view, err := svc.ChangeStatus(ctx, 1, &ChangeStatusInput{Status: "returned", Remark: "end of project"})
	require.NoError(t, err)
	assert.Equal(t, models.IssuanceReturned, view.Record.Status)
	assert.Equal(t, "end of project", view.Record.Remark)
	require.NotNil(t, view.Record.ReturnedAt)
	assert.Equal(t, now, *view.Record.ReturnedAt)
	assert.Equal(t, vigency.StatusInactive, view.Vigency.Status)

	// moving between inactive statuses keeps the first return time
	firstReturn := *repo.rows[1].ReturnedAt
	view, err = svc.ChangeStatus(ctx, 1, &ChangeStatusInput{Status: models.IssuanceDamaged})
	require.NoError(t, err)
	assert.Equal(t, firstReturn, *view.Record.ReturnedAt)
	assert.Equal(t, "end of project", view.Record.Remark)

	view, err = svc.ChangeStatus(ctx, 1, &ChangeStatusInput{Status: models.IssuanceActive})
	require.NoError(t, err)
	assert.Nil(t, view.Record.ReturnedAt)
	assert.Equal(t, vigency.StatusValid, view.Vigency.Status)

	_, err = svc.ChangeStatus(ctx, 1, &ChangeStatusInput{Status: "STOLEN"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ChangeStatus(ctx, 2, &ChangeStatusInput{Status: models.IssuanceLost})
	assert.ErrorIs(t, err, domain.ErrIssuanceNotFound)
}
