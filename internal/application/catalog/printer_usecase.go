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

// PrinterUseCase is the CRUD surface for printers.
type PrinterUseCase struct {
	repo             repository.PrinterRepository
	roomRepo         repository.RoomRepository
	printerModelRepo repository.PrinterModelRepository
}

// NewPrinterUseCase builds the use case.
func NewPrinterUseCase(
	repo repository.PrinterRepository,
	roomRepo repository.RoomRepository,
	printerModelRepo repository.PrinterModelRepository,
) *PrinterUseCase {
	return &PrinterUseCase{repo: repo, roomRepo: roomRepo, printerModelRepo: printerModelRepo}
}

// Create places a printer of an existing model into an existing room.
func (uc *PrinterUseCase) Create(ctx context.Context, in dto.CreatePrinterRequest) (*dto.PrinterResponse, error) {
	if in.RoomID == "" || in.PrinterModelID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(ctx, in.RoomID, in.PrinterModelID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Printer{
		ID:             uuid.New().String(),
		RoomID:         in.RoomID,
		PrinterModelID: in.PrinterModelID,
		InventoryTag:   in.InventoryTag,
		Note:           in.Note,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPrinterResponse(p), nil
}

// GetByID returns a printer or nil when absent.
func (uc *PrinterUseCase) GetByID(ctx context.Context, id string) (*dto.PrinterResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return toPrinterResponse(p), nil
}

// Update applies the non-nil fields. Moving a printer changes which building
// future OUT movements draw from; past journal rows keep their snapshots.
func (uc *PrinterUseCase) Update(ctx context.Context, id string, in dto.UpdatePrinterRequest) (*dto.PrinterResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.RoomID != nil {
		if *in.RoomID == "" {
			return nil, domain.ErrInvalidInput
		}
		p.RoomID = *in.RoomID
	}
	if in.PrinterModelID != nil {
		if *in.PrinterModelID == "" {
			return nil, domain.ErrInvalidInput
		}
		p.PrinterModelID = *in.PrinterModelID
	}
	if err := uc.checkRefs(ctx, p.RoomID, p.PrinterModelID); err != nil {
		return nil, err
	}
	if in.InventoryTag != nil {
		p.InventoryTag = *in.InventoryTag
	}
	if in.Note != nil {
		p.Note = *in.Note
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPrinterResponse(p), nil
}

// List returns printers, optionally narrowed to one building.
func (uc *PrinterUseCase) List(ctx context.Context, buildingID string, limit, offset int) (*dto.PrinterListResponse, error) {
	list, err := uc.repo.List(ctx, buildingID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PrinterResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPrinterResponse(p))
	}
	return &dto.PrinterListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteReport inspects what blocks deleting the printer.
func (uc *PrinterUseCase) DeleteReport(ctx context.Context, id string) (*dto.DeleteReport, error) {
	refs, err := uc.repo.References(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeleteReport(refs), nil
}

// Delete removes the printer unless movements still reference it.
func (uc *PrinterUseCase) Delete(ctx context.Context, id string) error {
	report, err := uc.DeleteReport(ctx, id)
	if err != nil {
		return err
	}
	if !report.CanDelete {
		return domain.ErrProtected
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PrinterUseCase) checkRefs(ctx context.Context, roomID, printerModelID string) error {
	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return domain.ErrNotFound
	}
	pm, err := uc.printerModelRepo.GetByID(ctx, printerModelID)
	if err != nil {
		return err
	}
	if pm == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toPrinterResponse(p *entity.Printer) *dto.PrinterResponse {
	return &dto.PrinterResponse{
		ID:             p.ID,
		RoomID:         p.RoomID,
		PrinterModelID: p.PrinterModelID,
		InventoryTag:   p.InventoryTag,
		Note:           p.Note,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
