package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-it/printstock/internal/application/catalog"
	"github.com/campus-it/printstock/internal/application/dto"
	"github.com/campus-it/printstock/internal/domain"
	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

// stubBuildingRepo is an in-memory BuildingRepository with configurable
// reference counts for the delete guard.
type stubBuildingRepo struct {
	buildings map[string]*entity.Building
	refs      []repository.Reference
	deleted   []string
}

func newStubBuildingRepo() *stubBuildingRepo {
	return &stubBuildingRepo{buildings: map[string]*entity.Building{}}
}

func (r *stubBuildingRepo) Create(_ context.Context, b *entity.Building) error {
	r.buildings[b.ID] = b
	return nil
}

func (r *stubBuildingRepo) GetByID(_ context.Context, id string) (*entity.Building, error) {
	return r.buildings[id], nil
}

func (r *stubBuildingRepo) Update(_ context.Context, b *entity.Building) error {
	r.buildings[b.ID] = b
	return nil
}

func (r *stubBuildingRepo) List(_ context.Context, _, _ int) ([]*entity.Building, error) {
	var list []*entity.Building
	for _, b := range r.buildings {
		list = append(list, b)
	}
	return list, nil
}

func (r *stubBuildingRepo) Delete(_ context.Context, id string) error {
	delete(r.buildings, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubBuildingRepo) References(_ context.Context, _ string) ([]repository.Reference, error) {
	return r.refs, nil
}

func TestBuildingUseCase_CreateValidatesName(t *testing.T) {
	uc := catalog.NewBuildingUseCase(newStubBuildingRepo())
	_, err := uc.Create(context.Background(), dto.CreateBuildingRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildingUseCase_UpdateUnknownID(t *testing.T) {
	uc := catalog.NewBuildingUseCase(newStubBuildingRepo())
	name := "Main"
	_, err := uc.Update(context.Background(), "b-ghost", dto.UpdateBuildingRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildingUseCase_DeleteReportSkipsZeroCounts(t *testing.T) {
	repo := newStubBuildingRepo()
	repo.refs = []repository.Reference{
		{Kind: "movements", Count: 0},
		{Kind: "printers", Count: 3},
	}
	uc := catalog.NewBuildingUseCase(repo)

	report, err := uc.DeleteReport(context.Background(), "b-1")
	require.NoError(t, err)

	assert.False(t, report.CanDelete)
	require.Len(t, report.Blockers, 1, "zero counts are not blockers")
	assert.Equal(t, "printers", report.Blockers[0].Kind)
	assert.Equal(t, 3, report.Blockers[0].Count)
}

func TestBuildingUseCase_DeleteBlockedByReferences(t *testing.T) {
	repo := newStubBuildingRepo()
	repo.buildings["b-1"] = &entity.Building{ID: "b-1", Name: "Main"}
	repo.refs = []repository.Reference{{Kind: "movements", Count: 12}}
	uc := catalog.NewBuildingUseCase(repo)

	err := uc.Delete(context.Background(), "b-1")
	assert.ErrorIs(t, err, domain.ErrProtected)
	assert.Empty(t, repo.deleted, "a blocked delete must not reach the repository")
}

func TestBuildingUseCase_DeleteWhenUnreferenced(t *testing.T) {
	repo := newStubBuildingRepo()
	repo.buildings["b-1"] = &entity.Building{ID: "b-1", Name: "Main"}
	uc := catalog.NewBuildingUseCase(repo)

	require.NoError(t, uc.Delete(context.Background(), "b-1"))
	assert.Equal(t, []string{"b-1"}, repo.deleted)
}
