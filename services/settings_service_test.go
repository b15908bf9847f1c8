package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

func settingsFixture(t *testing.T) *SettingsService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ColumnSetting{}))
	return NewSettingsService(db)
}

func TestGetColumnsDefaults(t *testing.T) {
	svc := settingsFixture(t)

	cols, err := svc.GetColumns("empresa-1")
	require.NoError(t, err)
	require.Len(t, cols, len(models.KanbanOrder))

	byStatus := make(map[models.Status]bool, len(cols))
	for _, cs := range cols {
		byStatus[cs.Status] = cs.Enabled
	}
	assert.True(t, byStatus[models.StatusReceived])
	assert.True(t, byStatus[models.StatusDelivered])
	assert.False(t, byStatus[models.StatusCancelled], "cancelados comeca oculto")
}

func TestSetColumnUpsert(t *testing.T) {
	svc := settingsFixture(t)

	require.NoError(t, svc.SetColumn("empresa-1", models.StatusCancelled, true))
	require.NoError(t, svc.SetColumn("empresa-1", models.StatusCancelled, false))
	require.NoError(t, svc.SetColumn("empresa-1", models.StatusCancelled, true))

	enabled, err := svc.EnabledSet("empresa-1")
	require.NoError(t, err)
	assert.True(t, enabled[models.StatusCancelled])

	// uma linha so por (empresa, status), nao tres
	var count int64
	require.NoError(t, svc.db.Model(&models.ColumnSetting{}).
		Where("company_id = ? AND status = ?", "empresa-1", models.StatusCancelled).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSettingsIsolatedPerCompany(t *testing.T) {
	svc := settingsFixture(t)

	require.NoError(t, svc.SetColumn("empresa-1", models.StatusDelivered, false))

	um, err := svc.EnabledSet("empresa-1")
	require.NoError(t, err)
	dois, err := svc.EnabledSet("empresa-2")
	require.NoError(t, err)

	assert.False(t, um[models.StatusDelivered])
	assert.True(t, dois[models.StatusDelivered])
}

func TestWatchNotifiedOnChange(t *testing.T) {
	svc := settingsFixture(t)

	var gotCompany string
	var gotSettings []models.ColumnSetting
	calls := 0
	svc.Watch(func(companyID string, settings []models.ColumnSetting) {
		calls++
		gotCompany = companyID
		gotSettings = settings
	})

	require.NoError(t, svc.SetColumn("empresa-1", models.StatusReady, false))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "empresa-1", gotCompany)
	require.Len(t, gotSettings, len(models.KanbanOrder))
	for _, cs := range gotSettings {
		if cs.Status == models.StatusReady {
			assert.False(t, cs.Enabled)
		}
	}
}
