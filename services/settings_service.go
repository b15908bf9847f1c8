package services

import (
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

// defaultEnabled colunas visiveis quando a empresa nunca configurou nada.
// Cancelados comeca oculto, igual ao dashboard original.
var defaultEnabled = map[models.Status]bool{
	models.StatusReceived:     true,
	models.StatusInProduction: true,
	models.StatusReady:        true,
	models.StatusDelivered:    true,
	models.StatusCancelled:    false,
}

// SettingsService store observavel da configuracao de colunas por
// empresa. Substitui o monkey-patch de localStorage do dashboard
// antigo: quem quiser reagir a mudanca registra um Watch.
type SettingsService struct {
	db *gorm.DB

	mu       sync.Mutex
	watchers []func(companyID string, settings []models.ColumnSetting)
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetColumns devolve a configuracao completa da empresa, preenchendo
// defaults para colunas nunca gravadas.
func (s *SettingsService) GetColumns(companyID string) ([]models.ColumnSetting, error) {
	var stored []models.ColumnSetting
	if err := s.db.Where("company_id = ?", companyID).Find(&stored).Error; err != nil {
		return nil, err
	}

	byStatus := make(map[models.Status]models.ColumnSetting, len(stored))
	for _, cs := range stored {
		byStatus[cs.Status] = cs
	}

	out := make([]models.ColumnSetting, 0, len(models.KanbanOrder))
	for _, st := range models.KanbanOrder {
		if cs, ok := byStatus[st]; ok {
			out = append(out, cs)
			continue
		}
		out = append(out, models.ColumnSetting{
			CompanyID: companyID,
			Status:    st,
			Enabled:   defaultEnabled[st],
		})
	}
	return out, nil
}

// SetColumn grava (upsert) uma coluna e notifica os watchers.
func (s *SettingsService) SetColumn(companyID string, status models.Status, enabled bool) error {
	setting := models.ColumnSetting{
		CompanyID: companyID,
		Status:    status,
		Enabled:   enabled,
		UpdatedAt: time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "status"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return err
	}

	settings, err := s.GetColumns(companyID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	watchers := append([]func(string, []models.ColumnSetting){}, s.watchers...)
	s.mu.Unlock()
	for _, fn := range watchers {
		fn(companyID, settings)
	}
	return nil
}

// EnabledSet mapa status -> habilitado para montar o ViewConfig.
func (s *SettingsService) EnabledSet(companyID string) (map[models.Status]bool, error) {
	settings, err := s.GetColumns(companyID)
	if err != nil {
		return nil, err
	}
	out := make(map[models.Status]bool, len(settings))
	for _, cs := range settings {
		out[cs.Status] = cs.Enabled
	}
	return out, nil
}

// Watch registra callback chamado a cada mudanca de configuracao.
// Cumpre o papel do evento de storage entre abas: a sincronizacao
// chega aos clientes via broadcast do hub, nunca por patch de builtin.
func (s *SettingsService) Watch(fn func(companyID string, settings []models.ColumnSetting)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}
