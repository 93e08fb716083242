package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, id int64, upd models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, id int64) (*models.Note, error)
}
