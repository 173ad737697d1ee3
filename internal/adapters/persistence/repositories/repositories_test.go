package repositories

import (
	"context"
	"testing"

	"tentworks-records/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type statement struct {
	sql  string
	vars []any
}

// dryRunDB builds MySQL statements without a server; nothing is executed,
// so every query finds no rows and every delete affects none
func dryRunDB(t *testing.T) (*gorm.DB, *[]statement) {
	t.Helper()

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "records:secret@tcp(127.0.0.1:3306)/records?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var statements []statement
	capture := func(tx *gorm.DB) {
		statements = append(statements, statement{sql: tx.Statement.SQL.String(), vars: tx.Statement.Vars})
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", capture))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test:capture_delete", capture))

	return db, &statements
}

func TestCatalogRepositoryGetByCode(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewCatalogRepository[models.CourseType](db)

	_, err := repo.GetByCode(context.Background(), "ALTURAS")
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	got := (*statements)[0]
	assert.Contains(t, got.sql, "FROM `course_types`")
	assert.Contains(t, got.sql, "code = ?")
	assert.Contains(t, got.sql, "LIMIT")
	assert.Contains(t, got.vars, "ALTURAS")
}

func TestAffiliationRepositoryDeleteByWorker(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewAffiliationRepository(db)

	// no row affected means the worker had no affiliation
	err := repo.DeleteByWorker(context.Background(), 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.Len(t, *statements, 1)
	got := (*statements)[0]
	assert.Contains(t, got.sql, "DELETE FROM `affiliations`")
	assert.Contains(t, got.sql, "worker_id = ?")
	assert.Contains(t, got.vars, uint(7))
}
