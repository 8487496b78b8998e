package service

import (
	"context"
	"fmt"
	"time"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/google/uuid"
)

type SampleService struct {
	repo *repository.SampleRepository
}

func NewSampleService(repo *repository.SampleRepository) *SampleService {
	return &SampleService{repo: repo}
}

type CreateSampleRequest struct {
	Name        string       `json:"name" binding:"required"`
	Customer    string       `json:"customer"`
	Model       string       `json:"model"`
	Quantity    int          `json:"quantity"`
	YarnType    string       `json:"yarn_type"`
	WeightGrams float64      `json:"weight_grams"`
	Notes       string       `json:"notes"`
	Details     entity.JSONB `json:"details"`
	DueDate     *time.Time   `json:"due_date"`
}

type UpdateSampleRequest struct {
	Name        *string      `json:"name"`
	Customer    *string      `json:"customer"`
	Model       *string      `json:"model"`
	Quantity    *int         `json:"quantity"`
	YarnType    *string      `json:"yarn_type"`
	WeightGrams *float64     `json:"weight_grams"`
	Status      *string      `json:"status"`
	Notes       *string      `json:"notes"`
	Details     entity.JSONB `json:"details"`
	DueDate     *time.Time   `json:"due_date"`
}

func (s *SampleService) List(ctx context.Context, page, pageSize int, status string) ([]entity.Sample, int64, error) {
	return s.repo.List(ctx, page, pageSize, status)
}

func (s *SampleService) Get(ctx context.Context, id string) (*entity.Sample, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SampleService) Create(ctx context.Context, req *CreateSampleRequest, userID string) (*entity.Sample, error) {
	sample := &entity.Sample{
		ID:          uuid.New().String()[:32],
		Name:        req.Name,
		Customer:    req.Customer,
		Model:       req.Model,
		Quantity:    req.Quantity,
		YarnType:    req.YarnType,
		WeightGrams: req.WeightGrams,
		Status:      entity.SampleStatusPending,
		Notes:       req.Notes,
		Details:     req.Details,
		DueDate:     req.DueDate,
		CreatedBy:   userID,
	}
	if err := s.repo.Create(ctx, sample); err != nil {
		return nil, fmt.Errorf("numune oluşturulamadı: %w", err)
	}
	return sample, nil
}

func (s *SampleService) Update(ctx context.Context, id string, req *UpdateSampleRequest) (*entity.Sample, error) {
	sample, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sample.Name = *req.Name
	}
	if req.Customer != nil {
		sample.Customer = *req.Customer
	}
	if req.Model != nil {
		sample.Model = *req.Model
	}
	if req.Quantity != nil {
		sample.Quantity = *req.Quantity
	}
	if req.YarnType != nil {
		sample.YarnType = *req.YarnType
	}
	if req.WeightGrams != nil {
		sample.WeightGrams = *req.WeightGrams
	}
	if req.Status != nil {
		sample.Status = *req.Status
	}
	if req.Notes != nil {
		sample.Notes = *req.Notes
	}
	if req.Details != nil {
		sample.Details = req.Details
	}
	if req.DueDate != nil {
		sample.DueDate = req.DueDate
	}

	if err := s.repo.Update(ctx, sample); err != nil {
		return nil, fmt.Errorf("numune güncellenemedi: %w", err)
	}
	return sample, nil
}

func (s *SampleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("numune silinemedi: %w", err)
	}
	return nil
}
