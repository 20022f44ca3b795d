package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/repo"
	"storefront/internal/search"
)

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

type PatchProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
}

type CatalogService struct {
	Repo  *repo.GormRepo
	Index *search.Index
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: Product not found", ErrNotFound)
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	prod := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	}

	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		return nil, err
	}

	s.index(ctx, created)
	return created, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req PatchProductRequest, id uuid.UUID) (*models.Product, error) {
	prod, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		prod.Price = *req.Price
	}
	if req.Image != nil {
		prod.Image = *req.Image
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}

	s.index(ctx, prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: Product not found", ErrNotFound)
		}
		return err
	}

	if err := s.Index.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
	}
	return nil
}

// index is best-effort: the catalog stays authoritative even when the
// search backend is down or unconfigured.
func (s *CatalogService) index(ctx context.Context, prod *models.Product) {
	if err := s.Index.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "product_id", prod.ID, "error", err)
	}
}
