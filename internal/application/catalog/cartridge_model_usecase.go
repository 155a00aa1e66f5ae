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

// CartridgeModelUseCase is the CRUD surface for cartridge models, including
// their printer-model compatibility links.
type CartridgeModelUseCase struct {
	repo             repository.CartridgeModelRepository
	printerModelRepo repository.PrinterModelRepository
}

// NewCartridgeModelUseCase builds the use case.
func NewCartridgeModelUseCase(repo repository.CartridgeModelRepository, printerModelRepo repository.PrinterModelRepository) *CartridgeModelUseCase {
	return &CartridgeModelUseCase{repo: repo, printerModelRepo: printerModelRepo}
}

// Create creates a cartridge model and its compatibility links.
func (uc *CartridgeModelUseCase) Create(ctx context.Context, in dto.CreateCartridgeModelRequest) (*dto.CartridgeModelResponse, error) {
	if in.Vendor == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkPrinterModels(ctx, in.CompatiblePrinterModelIDs); err != nil {
		return nil, err
	}
	now := time.Now()
	cm := &entity.CartridgeModel{
		ID:        uuid.New().String(),
		Vendor:    in.Vendor,
		Code:      in.Code,
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, cm); err != nil {
		return nil, err
	}
	if len(in.CompatiblePrinterModelIDs) > 0 {
		if err := uc.repo.SetCompatiblePrinterModels(ctx, cm.ID, in.CompatiblePrinterModelIDs); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(ctx, cm)
}

// GetByID returns a cartridge model with its compatible printer models, or
// nil when absent.
func (uc *CartridgeModelUseCase) GetByID(ctx context.Context, id string) (*dto.CartridgeModelResponse, error) {
	cm, err := uc.repo.GetByID(ctx, id)
	if err != nil || cm == nil {
		return nil, err
	}
	return uc.toResponse(ctx, cm)
}

// Update applies the non-nil fields. A non-nil CompatiblePrinterModelIDs
// replaces the whole link set; existing journal snapshots are untouched.
func (uc *CartridgeModelUseCase) Update(ctx context.Context, id string, in dto.UpdateCartridgeModelRequest) (*dto.CartridgeModelResponse, error) {
	cm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cm == nil {
		return nil, domain.ErrNotFound
	}
	if in.Vendor != nil {
		if *in.Vendor == "" {
			return nil, domain.ErrInvalidInput
		}
		cm.Vendor = *in.Vendor
	}
	if in.Code != nil {
		if *in.Code == "" {
			return nil, domain.ErrInvalidInput
		}
		cm.Code = *in.Code
	}
	if in.Title != nil {
		cm.Title = *in.Title
	}
	cm.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, cm); err != nil {
		return nil, err
	}
	if in.CompatiblePrinterModelIDs != nil {
		if err := uc.checkPrinterModels(ctx, in.CompatiblePrinterModelIDs); err != nil {
			return nil, err
		}
		if err := uc.repo.SetCompatiblePrinterModels(ctx, cm.ID, in.CompatiblePrinterModelIDs); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(ctx, cm)
}

// List returns cartridge models, optionally filtered by q against vendor,
// code and title.
func (uc *CartridgeModelUseCase) List(ctx context.Context, q string, limit, offset int) (*dto.CartridgeModelListResponse, error) {
	list, err := uc.repo.List(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CartridgeModelResponse, 0, len(list))
	for _, cm := range list {
		resp, err := uc.toResponse(ctx, cm)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.CartridgeModelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteReport inspects what blocks deleting the cartridge model.
func (uc *CartridgeModelUseCase) DeleteReport(ctx context.Context, id string) (*dto.DeleteReport, error) {
	refs, err := uc.repo.References(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeleteReport(refs), nil
}

// Delete removes the cartridge model unless movements or balance rows still
// reference it. Compatibility links alone do not block and are removed with
// the model.
func (uc *CartridgeModelUseCase) Delete(ctx context.Context, id string) error {
	report, err := uc.DeleteReport(ctx, id)
	if err != nil {
		return err
	}
	if !report.CanDelete {
		return domain.ErrProtected
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CartridgeModelUseCase) checkPrinterModels(ctx context.Context, ids []string) error {
	for _, id := range ids {
		pm, err := uc.printerModelRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if pm == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (uc *CartridgeModelUseCase) toResponse(ctx context.Context, cm *entity.CartridgeModel) (*dto.CartridgeModelResponse, error) {
	compat, err := uc.repo.ListCompatiblePrinterModels(ctx, cm.ID)
	if err != nil {
		return nil, err
	}
	models := make([]dto.PrinterModelResponse, 0, len(compat))
	for _, pm := range compat {
		models = append(models, *toPrinterModelResponse(pm))
	}
	return &dto.CartridgeModelResponse{
		ID:                      cm.ID,
		Vendor:                  cm.Vendor,
		Code:                    cm.Code,
		Title:                   cm.Title,
		CompatiblePrinterModels: models,
		CreatedAt:               cm.CreatedAt,
		UpdatedAt:               cm.UpdatedAt,
	}, nil
}
