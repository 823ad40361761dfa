package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// Service сервис настроек арендатора
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get возвращает действующие настройки, при их отсутствии значения по умолчанию
func (s *Service) Get(ctx context.Context, tenantID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: tenant=%d", tenantID)

	settings, err := s.settingsRepo.GetSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrSettingsNotFound) {
			return models.FromDomainSettings(domain.DefaultTenantSettings(tenantID), true), nil
		}
		s.logger.Error("GetSettings: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings, false), nil
}

// Update валидирует и сохраняет настройки арендатора
func (s *Service) Update(ctx context.Context, tenantID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: tenant=%d", tenantID)

	settings := &domain.TenantSettings{
		TenantID:              tenantID,
		RescheduleWindowHours: req.RescheduleWindowHours,
	}

	if err := settings.Validate(); err != nil {
		s.logger.Warn("UpdateSettings: validation failed for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.settingsRepo.UpsertSettings(ctx, settings)
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: tenant=%d settings saved", tenantID)
	return models.FromDomainSettings(saved, false), nil
}
