package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"
	"jewelry_store/internal/repository"
)

// RepairService tracks items left with the shop for repair
type RepairService interface {
	CreateRepair(ctx context.Context, req model.RepairRequest) (*model.Repair, error)
	GetRepair(ctx context.Context, id int64) (*model.Repair, error)
	ListRepairs(ctx context.Context, status *model.RepairStatus) ([]model.Repair, error)
	// UpdateStatus moves a repair forward; delivered stamps the delivery time.
	UpdateStatus(ctx context.Context, id int64, status model.RepairStatus) (*model.Repair, error)
	DeleteRepair(ctx context.Context, id int64) error
}

type repairService struct {
	repo        repository.RepairRepository
	phoneRegion string
	now         func() time.Time
}

// NewRepairService creates a new RepairService
func NewRepairService(repo repository.RepairRepository, phoneRegion string) RepairService {
	return &repairService{repo: repo, phoneRegion: phoneRegion, now: time.Now}
}

func (s *repairService) CreateRepair(ctx context.Context, req model.RepairRequest) (*model.Repair, error) {
	if req.Gram.IsNegative() || req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: gram and price cannot be negative", ledger.ErrValidation)
	}
	phone, err := contactPhone(req.CustomerPhone, s.phoneRegion)
	if err != nil {
		return nil, err
	}
	r := &model.Repair{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: phone,
		Item:          strings.TrimSpace(req.Item),
		Description:   req.Description,
		Gram:          req.Gram,
		Price:         req.Price,
		Currency:      req.Currency,
		Status:        model.RepairReceived,
		ReceivedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create repair in repo: %w", err)
	}
	return r, nil
}

func (s *repairService) GetRepair(ctx context.Context, id int64) (*model.Repair, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find repair by ID: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: repair %d", ledger.ErrNotFound, id)
	}
	return r, nil
}

func (s *repairService) ListRepairs(ctx context.Context, status *model.RepairStatus) ([]model.Repair, error) {
	repairs, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list repairs from repo: %w", err)
	}
	return repairs, nil
}

func (s *repairService) UpdateStatus(ctx context.Context, id int64, status model.RepairStatus) (*model.Repair, error) {
	r, err := s.GetRepair(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Status.CanMoveTo(status) {
		return nil, fmt.Errorf("%w: repair cannot move from %s to %s", ledger.ErrValidation, r.Status, status)
	}

	var deliveredAt *time.Time
	if status == model.RepairDelivered {
		now := s.now()
		deliveredAt = &now
	}
	if err := s.repo.UpdateStatus(ctx, id, status, deliveredAt); err != nil {
		return nil, fmt.Errorf("failed to update repair status: %w", err)
	}
	r.Status = status
	r.DeliveredAt = deliveredAt
	return r, nil
}

func (s *repairService) DeleteRepair(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete repair in repo: %w", err)
	}
	return nil
}
