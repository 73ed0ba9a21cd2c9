package hub

import (
	"context"
	"fmt"

	"github.com/esyhub/staffpay-backend/internal/domain/hub"
)

type Service interface {
	CreateHub(ctx context.Context, req hub.CreateHubRequest) (hub.HubResponse, error)
	GetHub(ctx context.Context, id string) (hub.HubResponse, error)
	ListHubs(ctx context.Context) ([]hub.HubResponse, error)
	UpdateHub(ctx context.Context, req hub.UpdateHubRequest) (hub.HubResponse, error)
	DeleteHub(ctx context.Context, id string) error
}

type ServiceImpl struct {
	hubRepo hub.HubRepository
}

func NewService(hubRepo hub.HubRepository) Service {
	return &ServiceImpl{hubRepo: hubRepo}
}

func (s *ServiceImpl) CreateHub(ctx context.Context, req hub.CreateHubRequest) (hub.HubResponse, error) {
	if err := req.Validate(); err != nil {
		return hub.HubResponse{}, err
	}

	created, err := s.hubRepo.Create(ctx, hub.Hub{
		HubName:       req.HubName,
		HubCode:       req.HubCode,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		return hub.HubResponse{}, err
	}

	return hub.ToResponse(created), nil
}

func (s *ServiceImpl) GetHub(ctx context.Context, id string) (hub.HubResponse, error) {
	h, err := s.hubRepo.GetByID(ctx, id)
	if err != nil {
		return hub.HubResponse{}, err
	}
	return hub.ToResponse(h), nil
}

func (s *ServiceImpl) ListHubs(ctx context.Context) ([]hub.HubResponse, error) {
	hubs, err := s.hubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hubs: %w", err)
	}
	return hub.ToResponses(hubs), nil
}

func (s *ServiceImpl) UpdateHub(ctx context.Context, req hub.UpdateHubRequest) (hub.HubResponse, error) {
	if err := req.Validate(); err != nil {
		return hub.HubResponse{}, err
	}

	h, err := s.hubRepo.GetByID(ctx, req.ID)
	if err != nil {
		return hub.HubResponse{}, err
	}

	if req.HubName != nil {
		h.HubName = *req.HubName
	}
	if req.HubCode != nil {
		h.HubCode = *req.HubCode
	}
	if req.Location != nil {
		h.Location = *req.Location
	}
	if req.ContactNumber != nil {
		h.ContactNumber = *req.ContactNumber
	}

	if err := s.hubRepo.Update(ctx, h); err != nil {
		return hub.HubResponse{}, err
	}

	return hub.ToResponse(h), nil
}

func (s *ServiceImpl) DeleteHub(ctx context.Context, id string) error {
	if _, err := s.hubRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.hubRepo.Delete(ctx, id)
}
