package usecase

import (
	"context"

	"github.com/campus-canteen/canteen/internal/domain/model"
	"github.com/campus-canteen/canteen/internal/domain/repository"
)

// MenuUseCase serves the student menu and ingests admin menu documents.
type MenuUseCase struct {
	menu repository.MenuRepository
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{menu: menu}
}

// List returns the canonical menu sorted by name.
func (u *MenuUseCase) List(ctx context.Context) ([]model.MenuItem, error) {
	return u.menu.List(ctx)
}

// Ingest normalizes an arbitrary admin-tooling menu document and upserts the
// canonical item.
func (u *MenuUseCase) Ingest(ctx context.Context, doc map[string]any) (*model.MenuItem, error) {
	return u.menu.Upsert(ctx, model.NormalizeMenuDoc(doc))
}
