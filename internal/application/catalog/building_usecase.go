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

// BuildingUseCase is the CRUD surface for buildings.
type BuildingUseCase struct {
	repo repository.BuildingRepository
}

// NewBuildingUseCase builds the use case.
func NewBuildingUseCase(repo repository.BuildingRepository) *BuildingUseCase {
	return &BuildingUseCase{repo: repo}
}

// Create creates a building.
func (uc *BuildingUseCase) Create(ctx context.Context, in dto.CreateBuildingRequest) (*dto.BuildingResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	b := &entity.Building{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBuildingResponse(b), nil
}

// GetByID returns a building or nil when absent.
func (uc *BuildingUseCase) GetByID(ctx context.Context, id string) (*dto.BuildingResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	return toBuildingResponse(b), nil
}

// Update applies the non-nil fields.
func (uc *BuildingUseCase) Update(ctx context.Context, id string, in dto.UpdateBuildingRequest) (*dto.BuildingResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		b.Name = *in.Name
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBuildingResponse(b), nil
}

// List returns buildings ordered by name.
func (uc *BuildingUseCase) List(ctx context.Context, limit, offset int) (*dto.BuildingListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BuildingResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBuildingResponse(b))
	}
	return &dto.BuildingListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteReport inspects what blocks deleting the building.
func (uc *BuildingUseCase) DeleteReport(ctx context.Context, id string) (*dto.DeleteReport, error) {
	refs, err := uc.repo.References(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeleteReport(refs), nil
}

// Delete removes the building unless movements or printers still reference
// it. Plain rooms and stock rows cascade in the database.
func (uc *BuildingUseCase) Delete(ctx context.Context, id string) error {
	report, err := uc.DeleteReport(ctx, id)
	if err != nil {
		return err
	}
	if !report.CanDelete {
		return domain.ErrProtected
	}
	return uc.repo.Delete(ctx, id)
}

func toBuildingResponse(b *entity.Building) *dto.BuildingResponse {
	return &dto.BuildingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// toDeleteReport converts repository reference counts into the pre-delete
// guard result shared by every catalog type.
func toDeleteReport(refs []repository.Reference) *dto.DeleteReport {
	report := &dto.DeleteReport{CanDelete: true}
	for _, ref := range refs {
		if ref.Count == 0 {
			continue
		}
		report.CanDelete = false
		report.Blockers = append(report.Blockers, dto.DeleteBlocker{Kind: ref.Kind, Count: ref.Count})
	}
	return report
}
