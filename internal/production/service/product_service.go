package service

import (
	"context"
	"fmt"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/google/uuid"
)

type ProductService struct {
	repo *repository.ProductSpecRepository
}

func NewProductService(repo *repository.ProductSpecRepository) *ProductService {
	return &ProductService{repo: repo}
}

type CreateProductSpecRequest struct {
	Model        string            `json:"model" binding:"required"`
	Name         string            `json:"name" binding:"required"`
	YarnType     string            `json:"yarn_type"`
	MachineGauge string            `json:"machine_gauge"`
	Sizes        entity.JSONBArray `json:"sizes"`
	Colors       entity.JSONBArray `json:"colors"`
	Notes        string            `json:"notes"`
}

type UpdateProductSpecRequest struct {
	Name         *string           `json:"name"`
	YarnType     *string           `json:"yarn_type"`
	MachineGauge *string           `json:"machine_gauge"`
	Sizes        entity.JSONBArray `json:"sizes"`
	Colors       entity.JSONBArray `json:"colors"`
	Notes        *string           `json:"notes"`
}

func (s *ProductService) List(ctx context.Context) ([]entity.ProductSpec, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.ProductSpec, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, req *CreateProductSpecRequest, userID string) (*entity.ProductSpec, error) {
	spec := &entity.ProductSpec{
		ID:           uuid.New().String()[:32],
		Model:        req.Model,
		Name:         req.Name,
		YarnType:     req.YarnType,
		MachineGauge: req.MachineGauge,
		Sizes:        req.Sizes,
		Colors:       req.Colors,
		Notes:        req.Notes,
		CreatedBy:    userID,
	}
	if err := s.repo.Create(ctx, spec); err != nil {
		return nil, fmt.Errorf("ürün tanımı oluşturulamadı: %w", err)
	}
	return spec, nil
}

func (s *ProductService) Update(ctx context.Context, id string, req *UpdateProductSpecRequest) (*entity.ProductSpec, error) {
	spec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		spec.Name = *req.Name
	}
	if req.YarnType != nil {
		spec.YarnType = *req.YarnType
	}
	if req.MachineGauge != nil {
		spec.MachineGauge = *req.MachineGauge
	}
	if req.Sizes != nil {
		spec.Sizes = req.Sizes
	}
	if req.Colors != nil {
		spec.Colors = req.Colors
	}
	if req.Notes != nil {
		spec.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, spec); err != nil {
		return nil, fmt.Errorf("ürün tanımı güncellenemedi: %w", err)
	}
	return spec, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("ürün tanımı silinemedi: %w", err)
	}
	return nil
}
