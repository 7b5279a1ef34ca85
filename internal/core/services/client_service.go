package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
)

// clientService implements the ClientSvcFacade interface
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
	statusRepo portsrepo.StatusReader
}

// NewClientService creates a new client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, statusRepo portsrepo.StatusReader) portssvc.ClientSvcFacade {
	return &clientService{
		clientRepo: clientRepo,
		statusRepo: statusRepo,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	// Validate status exists before placing the client in the pipeline.
	if _, err := s.statusRepo.FindStatusByID(ctx, req.StatusID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown status %s", apperrors.ErrValidation, req.StatusID)
		}
		return nil, err
	}

	now := time.Now()
	client := domain.Client{
		ClientID: uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		TaxForm:  req.TaxForm,
		StatusID: req.StatusID,
		Assignee: req.Assignee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("client_id", client.ClientID))
		return nil, err
	}

	s.LogInfo(ctx, "Client created successfully", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client by ID", slog.String("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, err
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		client.Name = *req.Name
		updated = true
	}
	if req.Email != nil {
		client.Email = *req.Email
		updated = true
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
		updated = true
	}
	if req.TaxForm != nil {
		client.TaxForm = *req.TaxForm
		updated = true
	}
	if req.StatusID != nil {
		if _, err := s.statusRepo.FindStatusByID(ctx, *req.StatusID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown status %s", apperrors.ErrValidation, *req.StatusID)
			}
			return nil, err
		}
		client.StatusID = *req.StatusID
		updated = true
	}
	if req.Assignee != nil {
		client.Assignee = *req.Assignee
		updated = true
	}
	if !updated {
		return client, nil
	}

	now := time.Now()
	client.LastUpdatedAt = now
	client.LastUpdatedBy = userID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string) error {
	if _, err := s.GetClientByID(ctx, clientID); err != nil {
		return err
	}
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		s.LogError(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		return err
	}
	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	return nil
}

// statusService implements the StatusSvcFacade interface
type statusService struct {
	BaseService
	statusRepo portsrepo.StatusRepositoryFacade
	clientRepo portsrepo.ClientReader
}

// NewStatusService creates a new pipeline status service.
func NewStatusService(statusRepo portsrepo.StatusRepositoryFacade, clientRepo portsrepo.ClientReader) portssvc.StatusSvcFacade {
	return &statusService{
		statusRepo: statusRepo,
		clientRepo: clientRepo,
	}
}

var _ portssvc.StatusSvcFacade = (*statusService)(nil)

func (s *statusService) CreateStatus(ctx context.Context, req dto.CreateStatusRequest, userID string) (*domain.Status, error) {
	now := time.Now()
	status := domain.Status{
		StatusID: uuid.NewString(),
		Title:    req.Title,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.statusRepo.SaveStatus(ctx, status); err != nil {
		s.LogError(ctx, err, "Failed to save status", slog.String("status_id", status.StatusID))
		return nil, err
	}
	return &status, nil
}

func (s *statusService) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	statuses, err := s.statusRepo.ListStatuses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list statuses")
		return nil, err
	}
	if statuses == nil {
		return []domain.Status{}, nil
	}
	return statuses, nil
}

func (s *statusService) UpdateStatus(ctx context.Context, statusID string, req dto.UpdateStatusRequest, userID string) (*domain.Status, error) {
	status, err := s.statusRepo.FindStatusByID(ctx, statusID)
	if err != nil {
		return nil, err
	}

	status.Title = req.Title
	now := time.Now()
	status.LastUpdatedAt = now
	status.LastUpdatedBy = userID

	if err := s.statusRepo.UpdateStatus(ctx, *status); err != nil {
		s.LogError(ctx, err, "Failed to update status", slog.String("status_id", statusID))
		return nil, err
	}
	return status, nil
}

func (s *statusService) DeleteStatus(ctx context.Context, statusID string) error {
	if _, err := s.statusRepo.FindStatusByID(ctx, statusID); err != nil {
		return err
	}

	count, err := s.clientRepo.CountClientsByStatus(ctx, statusID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count clients for status", slog.String("status_id", statusID))
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete status with %d clients", apperrors.ErrConflict, count)
	}

	return s.statusRepo.DeleteStatus(ctx, statusID)
}
