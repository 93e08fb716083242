// Package services contains server-side business logic. NoteService owns the
// note lifecycle: owner checks on create, partial updates, and translation of
// store failures into the errors defined in package common.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	"github.com/jackc/pgx/v5/pgconn"
)

// integrityViolationClass is the SQLSTATE class of constraint violations.
const integrityViolationClass = "23"

type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// Create stores a new note after checking that its owner exists. A missing
// owner yields *common.ReferenceNotFoundError and nothing is written.
func (s *NoteService) Create(ctx context.Context, in models.NoteCreate) (*models.Note, error) {
	var created *models.Note

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := s.repomanager.Users(tx).Exists(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return &common.ReferenceNotFoundError{Entity: "user", ID: in.UserID}
		}

		created, err = s.repomanager.Notes(tx).Create(ctx, &models.Note{
			Title:   in.Title,
			Content: in.Content,
			UserID:  in.UserID,
		})
		return err
	})
	if err != nil {
		var refErr *common.ReferenceNotFoundError
		if errors.As(err, &refErr) {
			return nil, refErr
		}
		return nil, persistenceError("create note", err)
	}

	return created, nil
}

// Get returns the note with the given id; ok is false when there is none.
func (s *NoteService) Get(ctx context.Context, id int64) (note *models.Note, ok bool, err error) {
	note, err = s.repomanager.Notes(s.db).GetByID(ctx, id)
	return notFoundOutcome(note, "get note", err)
}

// List returns all notes. The result is never nil on success.
func (s *NoteService) List(ctx context.Context) ([]*models.Note, error) {
	list, err := s.repomanager.Notes(s.db).List(ctx)
	if err != nil {
		return nil, persistenceError("list notes", err)
	}
	return list, nil
}

// Update applies the set fields of upd to the note and returns the result.
// An update with no fields returns the note unchanged.
func (s *NoteService) Update(ctx context.Context, id int64, upd models.NoteUpdate) (note *models.Note, ok bool, err error) {
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		note, err = s.repomanager.Notes(tx).Update(ctx, id, upd)
		return err
	})
	return notFoundOutcome(note, "update note", err)
}

// Delete removes the note and returns it as it was before removal.
func (s *NoteService) Delete(ctx context.Context, id int64) (note *models.Note, ok bool, err error) {
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		note, err = s.repomanager.Notes(tx).Delete(ctx, id)
		return err
	})
	return notFoundOutcome(note, "delete note", err)
}

func notFoundOutcome(note *models.Note, op string, err error) (*models.Note, bool, error) {
	switch {
	case err == nil:
		return note, true, nil
	case errors.Is(err, common.ErrorNotFound):
		return nil, false, nil
	default:
		return nil, false, persistenceError(op, err)
	}
}

func persistenceError(op string, err error) error {
	var pgErr *pgconn.PgError
	constraint := errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass)
	return &common.PersistenceError{Op: op, Constraint: constraint, Err: err}
}
