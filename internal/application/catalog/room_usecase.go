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

// RoomUseCase is the CRUD surface for rooms.
type RoomUseCase struct {
	repo         repository.RoomRepository
	buildingRepo repository.BuildingRepository
}

// NewRoomUseCase builds the use case.
func NewRoomUseCase(repo repository.RoomRepository, buildingRepo repository.BuildingRepository) *RoomUseCase {
	return &RoomUseCase{repo: repo, buildingRepo: buildingRepo}
}

// Create creates a room in an existing building.
func (uc *RoomUseCase) Create(ctx context.Context, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if in.BuildingID == "" || in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	building, err := uc.buildingRepo.GetByID(ctx, in.BuildingID)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	r := &entity.Room{
		ID:         uuid.New().String(),
		BuildingID: in.BuildingID,
		Number:     in.Number,
		OwnerName:  in.OwnerName,
		OwnerEmail: in.OwnerEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRoomResponse(r), nil
}

// GetByID returns a room or nil when absent.
func (uc *RoomUseCase) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil || r == nil {
		return nil, err
	}
	return toRoomResponse(r), nil
}

// Update applies the non-nil fields. Rooms cannot move between buildings;
// recreate them instead.
func (uc *RoomUseCase) Update(ctx context.Context, id string, in dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if in.Number != nil {
		if *in.Number == "" {
			return nil, domain.ErrInvalidInput
		}
		r.Number = *in.Number
	}
	if in.OwnerName != nil {
		r.OwnerName = *in.OwnerName
	}
	if in.OwnerEmail != nil {
		r.OwnerEmail = *in.OwnerEmail
	}
	r.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toRoomResponse(r), nil
}

// List returns rooms, optionally narrowed to one building.
func (uc *RoomUseCase) List(ctx context.Context, buildingID string, limit, offset int) (*dto.RoomListResponse, error) {
	list, err := uc.repo.ListByBuilding(ctx, buildingID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoomResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRoomResponse(r))
	}
	return &dto.RoomListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteReport inspects what blocks deleting the room.
func (uc *RoomUseCase) DeleteReport(ctx context.Context, id string) (*dto.DeleteReport, error) {
	refs, err := uc.repo.References(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeleteReport(refs), nil
}

// Delete removes the room unless printers still live in it.
func (uc *RoomUseCase) Delete(ctx context.Context, id string) error {
	report, err := uc.DeleteReport(ctx, id)
	if err != nil {
		return err
	}
	if !report.CanDelete {
		return domain.ErrProtected
	}
	return uc.repo.Delete(ctx, id)
}

func toRoomResponse(r *entity.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:         r.ID,
		BuildingID: r.BuildingID,
		Number:     r.Number,
		OwnerName:  r.OwnerName,
		OwnerEmail: r.OwnerEmail,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
