package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-it/printstock/internal/application/dto"
	"github.com/campus-it/printstock/internal/domain"
	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

// PrinterModelUseCase is the CRUD surface for printer models.
type PrinterModelUseCase struct {
	repo repository.PrinterModelRepository
}

// NewPrinterModelUseCase builds the use case.
func NewPrinterModelUseCase(repo repository.PrinterModelRepository) *PrinterModelUseCase {
	return &PrinterModelUseCase{repo: repo}
}

// Create creates a printer model.
func (uc *PrinterModelUseCase) Create(ctx context.Context, in dto.CreatePrinterModelRequest) (*dto.PrinterModelResponse, error) {
	if in.Vendor == "" || in.Model == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	pm := &entity.PrinterModel{
		ID:        uuid.New().String(),
		Vendor:    in.Vendor,
		Model:     in.Model,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, pm); err != nil {
		return nil, err
	}
	return toPrinterModelResponse(pm), nil
}

// GetByID returns a printer model or nil when absent.
func (uc *PrinterModelUseCase) GetByID(ctx context.Context, id string) (*dto.PrinterModelResponse, error) {
	pm, err := uc.repo.GetByID(ctx, id)
	if err != nil || pm == nil {
		return nil, err
	}
	return toPrinterModelResponse(pm), nil
}

// Update applies the non-nil fields.
func (uc *PrinterModelUseCase) Update(ctx context.Context, id string, in dto.UpdatePrinterModelRequest) (*dto.PrinterModelResponse, error) {
	pm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pm == nil {
		return nil, domain.ErrNotFound
	}
	if in.Vendor != nil {
		if *in.Vendor == "" {
			return nil, domain.ErrInvalidInput
		}
		pm.Vendor = *in.Vendor
	}
	if in.Model != nil {
		if *in.Model == "" {
			return nil, domain.ErrInvalidInput
		}
		pm.Model = *in.Model
	}
	pm.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, pm); err != nil {
		return nil, err
	}
	return toPrinterModelResponse(pm), nil
}

// List returns printer models ordered by vendor and model.
func (uc *PrinterModelUseCase) List(ctx context.Context, limit, offset int) (*dto.PrinterModelListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PrinterModelResponse, 0, len(list))
	for _, pm := range list {
		items = append(items, *toPrinterModelResponse(pm))
	}
	return &dto.PrinterModelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteReport inspects what blocks deleting the printer model.
func (uc *PrinterModelUseCase) DeleteReport(ctx context.Context, id string) (*dto.DeleteReport, error) {
	refs, err := uc.repo.References(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeleteReport(refs), nil
}

// Delete removes the printer model unless printers or compatibility links
// still reference it.
func (uc *PrinterModelUseCase) Delete(ctx context.Context, id string) error {
	report, err := uc.DeleteReport(ctx, id)
	if err != nil {
		return err
	}
	if !report.CanDelete {
		return domain.ErrProtected
	}
	return uc.repo.Delete(ctx, id)
}

func toPrinterModelResponse(pm *entity.PrinterModel) *dto.PrinterModelResponse {
	return &dto.PrinterModelResponse{
		ID:        pm.ID,
		Vendor:    pm.Vendor,
		Model:     pm.Model,
		CreatedAt: pm.CreatedAt,
		UpdatedAt: pm.UpdatedAt,
	}
}
