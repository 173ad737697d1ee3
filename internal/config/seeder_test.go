package config

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSeederLooksUpEachCatalogCode(t *testing.T) {
	// dry run: SQL is built but never sent, so every lookup comes back without error
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "records:secret@tcp(127.0.0.1:3306)/records?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var lookups []string
	var codes []any
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		lookups = append(lookups, tx.Statement.SQL.String())
		codes = append(codes, tx.Statement.Vars...)
	}))

	require.NoError(t, NewSeeder(db).Run(context.Background()))

	assert.Len(t, lookups, len(courseTypes())+len(equipmentTypes())+len(documentTypes()))
	for _, sql := range lookups {
		assert.True(t, strings.Contains(sql, "code = ?"), sql)
	}
	assert.Contains(t, lookups[0], "`course_types`")
	assert.Contains(t, lookups[len(lookups)-1], "`document_types`")
	assert.Contains(t, codes, "ALTURAS")
	assert.Contains(t, codes, "GAFAS")
	assert.Contains(t, codes, "POLIZA")
}
