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

func newTestDocumentService(rows ...*models.Document) (*DocumentService, *fakeDocumentRepo) {
	repo := newFakeDocumentRepo(rows...)
	svc := NewDocumentService(repo, fakeWorkers{7: true}, documentCatalog(), testEngine())
	svc.newKey = func() string { return "doc-key-1" }
	return svc, repo
}

func TestDocumentServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid-until drives vigency", func(t *testing.T) {
		svc, _ := newTestDocumentService()

		view, err := svc.Create(ctx, &CreateDocumentInput{
			WorkerID:       uintPtr(7),
			DocumentTypeID: 2,
			Title:          " Examen de ingreso ",
			ValidUntil:     "2025-06-20",
		})
		require.NoError(t, err)

		assert.Equal(t, "Examen de ingreso", view.Record.Title)
		assert.Equal(t, "doc-key-1", view.Record.StorageKey)
		assert.Equal(t, svc.engine.Now(), view.Record.UploadedAt)
		assert.Equal(t, vigency.StatusNearExpiry, view.Vigency.Status)
		assert.Equal(t, 5, view.Vigency.DaysRemaining)
		assert.Equal(t, *day(2025, 6, 20), *view.Record.ExpiryDate())
	})

	t.Run("company document without vigency control", func(t *testing.T) {
		svc, _ := newTestDocumentService()

		view, err := svc.Create(ctx, &CreateDocumentInput{DocumentTypeID: 1, Title: "RUT", ValidUntil: "2020-01-01"})
		require.NoError(t, err)
		assert.Nil(t, view.Record.WorkerID)
		assert.Nil(t, view.Record.ExpiryDate())
		assert.Equal(t, vigency.StatusUndetermined, view.Vigency.Status)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, repo := newTestDocumentService()

		tests := []struct {
			name  string
			input CreateDocumentInput
			want  error
		}{
			{"blank title", CreateDocumentInput{DocumentTypeID: 1, Title: "  "}, domain.ErrInvalidInput},
			{"missing valid-until", CreateDocumentInput{DocumentTypeID: 2, Title: "Examen"}, domain.ErrInvalidInput},
			{"unknown worker", CreateDocumentInput{WorkerID: uintPtr(3), DocumentTypeID: 1, Title: "Cédula"}, domain.ErrWorkerNotFound},
			{"unknown document type", CreateDocumentInput{DocumentTypeID: 9, Title: "Otro"}, domain.ErrDocumentTypeNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Create(ctx, &tt.input)
				assert.ErrorIs(t, err, tt.want)
			})
		}
		assert.Empty(t, repo.rows)
	})
}

func TestDocumentServiceUpdate(t *testing.T) {
	ctx := context.Background()
	types := documentCatalog()

	stored := func() *models.Document {
		return &models.Document{
			WorkerID:       uintPtr(7),
			DocumentTypeID: 2,
			Title:          "Examen",
			StorageKey:     "k",
			ValidUntil:     day(2025, 1, 31),
			DocumentType:   types[2],
		}
	}

	t.Run("renewal moves the document back to valid", func(t *testing.T) {
		svc, _ := newTestDocumentService(stored())

		before, err := svc.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, vigency.StatusExpired, before.Vigency.Status)

		view, err := svc.Update(ctx, 1, &UpdateDocumentInput{ValidUntil: strPtr("2026-01-31")})
		require.NoError(t, err)
		assert.Equal(t, vigency.StatusValid, view.Vigency.Status)
	})

	t.Run("vigency-controlled type cannot lose its date", func(t *testing.T) {
		svc, _ := newTestDocumentService(stored())

		_, err := svc.Update(ctx, 1, &UpdateDocumentInput{ValidUntil: strPtr("")})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("switching to an uncontrolled type allows a blank date", func(t *testing.T) {
		svc, _ := newTestDocumentService(stored())

		view, err := svc.Update(ctx, 1, &UpdateDocumentInput{DocumentTypeID: uintPtr(1), ValidUntil: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, view.Record.ValidUntil)
		assert.Equal(t, vigency.StatusUndetermined, view.Vigency.Status)
	})

	t.Run("blank title", func(t *testing.T) {
		svc, _ := newTestDocumentService(stored())

		_, err := svc.Update(ctx, 1, &UpdateDocumentInput{Title: strPtr(" ")})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing document", func(t *testing.T) {
		svc, _ := newTestDocumentService()

		_, err := svc.Update(ctx, 1, &UpdateDocumentInput{})
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, 1), domain.ErrDocumentNotFound)
	})
}
