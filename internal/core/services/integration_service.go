package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
)

// integrationService implements the IntegrationSvcFacade interface
type integrationService struct {
	BaseService
	integrationRepo portsrepo.IntegrationRepositoryFacade
	clientRepo      portsrepo.ClientReader
}

// NewIntegrationService creates a new integration service.
func NewIntegrationService(
	integrationRepo portsrepo.IntegrationRepositoryFacade,
	clientRepo portsrepo.ClientReader,
) portssvc.IntegrationSvcFacade {
	return &integrationService{
		integrationRepo: integrationRepo,
		clientRepo:      clientRepo,
	}
}

var _ portssvc.IntegrationSvcFacade = (*integrationService)(nil)

// ConnectIntegration stores the token set produced by the external OAuth
// connect flow. Reconnecting replaces any previous connection.
func (s *integrationService) ConnectIntegration(ctx context.Context, clientID string, req dto.ConnectIntegrationRequest, userID string) (*domain.Integration, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return nil, err
	}

	// One integration per client; drop the old one before storing the new.
	if err := s.integrationRepo.DeleteIntegrationByClientID(ctx, clientID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to replace existing integration", slog.String("client_id", clientID))
		return nil, err
	}

	now := time.Now()
	integration := domain.Integration{
		IntegrationID: uuid.NewString(),
		ClientID:      clientID,
		RealmID:       req.RealmID,
		AccessToken:   req.AccessToken,
		RefreshToken:  req.RefreshToken,
		ExpiresAt:     req.ExpiresAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.integrationRepo.SaveIntegration(ctx, integration); err != nil {
		s.LogError(ctx, err, "Failed to save integration", slog.String("client_id", clientID))
		return nil, err
	}

	s.LogInfo(ctx, "QuickBooks integration connected",
		slog.String("client_id", clientID),
		slog.String("realm_id", req.RealmID))
	return &integration, nil
}

func (s *integrationService) GetIntegrationStatus(ctx context.Context, clientID string) (*dto.IntegrationStatusResponse, error) {
	integration, err := s.integrationRepo.FindIntegrationByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.IntegrationStatusResponse{Connected: false}, nil
		}
		return nil, err
	}
	return &dto.IntegrationStatusResponse{
		Connected: true,
		RealmID:   integration.RealmID,
		ExpiresAt: integration.ExpiresAt,
	}, nil
}

func (s *integrationService) DisconnectIntegration(ctx context.Context, clientID string) error {
	if _, err := s.integrationRepo.FindIntegrationByClientID(ctx, clientID); err != nil {
		return err
	}
	if err := s.integrationRepo.DeleteIntegrationByClientID(ctx, clientID); err != nil {
		s.LogError(ctx, err, "Failed to disconnect integration", slog.String("client_id", clientID))
		return err
	}
	s.LogInfo(ctx, "QuickBooks integration disconnected", slog.String("client_id", clientID))
	return nil
}
