package service

import (
	"context"
	"time"

	"github.com/dealdesk/dealdesk/internal/api/dto"
	"github.com/dealdesk/dealdesk/internal/types"
)

type LeadService interface {
	CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error)
	GetLead(ctx context.Context, id string) (*dto.LeadResponse, error)
	UpdateLead(ctx context.Context, id string, req dto.UpdateLeadRequest) (*dto.LeadResponse, error)
	DeleteLead(ctx context.Context, id string) error
	ListLeads(ctx context.Context, filter *types.LeadFilter) (*dto.ListLeadsResponse, error)
}

type leadService struct {
	ServiceParams
}

func NewLeadService(params ServiceParams) LeadService {
	return &leadService{ServiceParams: params}
}

func (s *leadService) CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l := req.ToLead(ctx)
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if err := s.LeadRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return &dto.LeadResponse{Lead: l}, nil
}

func (s *leadService) GetLead(ctx context.Context, id string) (*dto.LeadResponse, error) {
	l, err := s.LeadRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.LeadResponse{Lead: l}, nil
}

func (s *leadService) UpdateLead(ctx context.Context, id string, req dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.LeadRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Source != nil {
		l.Source = *req.Source
	}
	if req.Phone != nil {
		l.Phone = *req.Phone
	}
	if req.Status != nil {
		l.LeadStatus = *req.Status
	}
	l.UpdatedAt = time.Now().UTC()
	l.UpdatedBy = types.GetUserID(ctx)

	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.LeadRepo.Update(ctx, l); err != nil {
		return nil, err
	}
	return &dto.LeadResponse{Lead: l}, nil
}

func (s *leadService) DeleteLead(ctx context.Context, id string) error {
	if _, err := s.LeadRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.LeadRepo.Delete(ctx, id)
}

func (s *leadService) ListLeads(ctx context.Context, filter *types.LeadFilter) (*dto.ListLeadsResponse, error) {
	if filter == nil {
		filter = types.NewLeadFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	leads, err := s.LeadRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.LeadRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		items = append(items, &dto.LeadResponse{Lead: l})
	}

	return &dto.ListLeadsResponse{
		Items: items,
		Pagination: types.PaginationResponse{
			Total:  total,
			Limit:  filter.GetLimit(),
			Offset: filter.GetOffset(),
		},
	}, nil
}
