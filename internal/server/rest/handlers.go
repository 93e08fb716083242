// Package rest exposes the note service over HTTP with a chi router.
// Notes are returned as bare JSON objects; failures use Response.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/optional"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// NoteService is the note lifecycle the handlers drive.
type NoteService interface {
	Create(ctx context.Context, in models.NoteCreate) (*models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, bool, error)
	List(ctx context.Context) ([]*models.Note, error)
	Update(ctx context.Context, id int64, upd models.NoteUpdate) (*models.Note, bool, error)
	Delete(ctx context.Context, id int64) (*models.Note, bool, error)
}

type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"required,min=1,max=200"`
	Content *string `json:"content" validate:"omitnil,max=5000"`
	UserID  *int64  `json:"user_id" validate:"omitnil,gte=1"`
}

type UpdateNoteRequest struct {
	Title   optional.Field[string]  `json:"title"`
	Content optional.Field[*string] `json:"content"`
}

// updateNoteChecks is what gets validated for an update: nil means the
// field was not supplied (or, for content, supplied as null).
type updateNoteChecks struct {
	Title   *string `json:"title" validate:"omitnil,min=1,max=200"`
	Content *string `json:"content" validate:"omitnil,max=5000"`
}

const msgNoteNotFound = "note not found"

type Handler struct {
	log      logging.Logger
	notes    NoteService
	validate *validator.Validate
	metrics  *Metrics
}

func NewHandler(log logging.Logger, notes NoteService, metrics *Metrics) *Handler {
	return &Handler{
		log:      log,
		notes:    notes,
		validate: newValidator(),
		metrics:  metrics,
	}
}

func (h *Handler) requestLog(r *http.Request, op string) logging.Logger {
	return h.log.With(
		"op", op,
		"request_id", middleware.GetReqID(r.Context()),
	)
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	const op = "rest.ListNotes"
	log := h.requestLog(r, op)

	notes, err := h.notes.List(r.Context())
	if err != nil {
		h.serviceError(w, r, log, "list", err)
		return
	}

	h.metrics.noteOp("list", "ok")
	log.Debug(r.Context(), "notes listed", "count", len(notes))
	render.JSON(w, r, notes)
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	const op = "rest.GetNote"
	log := h.requestLog(r, op)

	id, ok := h.noteID(w, r, log)
	if !ok {
		return
	}

	note, found, err := h.notes.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, log, "get", err)
		return
	}
	if !found {
		h.notFound(w, r, log, "get", id)
		return
	}

	h.metrics.noteOp("get", "ok")
	render.JSON(w, r, note)
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	const op = "rest.CreateNote"
	log := h.requestLog(r, op)

	var req CreateNoteRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Warn(r.Context(), "failed to decode request body", "error", err)
		h.unprocessable(w, r, "create", Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.invalid(w, r, log, "create", err)
		return
	}

	in := models.NoteCreate{Title: req.Title, Content: req.Content, UserID: models.DefaultUserID}
	if req.UserID != nil {
		in.UserID = *req.UserID
	}

	note, err := h.notes.Create(r.Context(), in)
	if err != nil {
		h.serviceError(w, r, log, "create", err)
		return
	}

	h.metrics.noteOp("create", "ok")
	log.Info(r.Context(), "note created", "note_id", note.ID, "user_id", note.UserID)
	render.JSON(w, r, note)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	const op = "rest.UpdateNote"
	log := h.requestLog(r, op)

	id, ok := h.noteID(w, r, log)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Warn(r.Context(), "failed to decode request body", "error", err)
		h.unprocessable(w, r, "update", Error("failed to decode request"))
		return
	}

	checks := updateNoteChecks{Title: req.Title.Ptr(), Content: req.Content.Value}
	if err := h.validate.Struct(checks); err != nil {
		h.invalid(w, r, log, "update", err)
		return
	}

	note, found, err := h.notes.Update(r.Context(), id, models.NoteUpdate{Title: req.Title, Content: req.Content})
	if err != nil {
		h.serviceError(w, r, log, "update", err)
		return
	}
	if !found {
		h.notFound(w, r, log, "update", id)
		return
	}

	h.metrics.noteOp("update", "ok")
	log.Info(r.Context(), "note updated", "note_id", note.ID)
	render.JSON(w, r, note)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	const op = "rest.DeleteNote"
	log := h.requestLog(r, op)

	id, ok := h.noteID(w, r, log)
	if !ok {
		return
	}

	note, found, err := h.notes.Delete(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, log, "delete", err)
		return
	}
	if !found {
		h.notFound(w, r, log, "delete", id)
		return
	}

	h.metrics.noteOp("delete", "ok")
	log.Info(r.Context(), "note deleted", "note_id", note.ID)
	render.JSON(w, r, note)
}

func (h *Handler) noteID(w http.ResponseWriter, r *http.Request, log logging.Logger) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warn(r.Context(), "invalid note id", "id", raw, "error", err)
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, Error("invalid note id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) unprocessable(w http.ResponseWriter, r *http.Request, operation string, resp Response) {
	h.metrics.noteOp(operation, "rejected")
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, resp)
}

func (h *Handler) invalid(w http.ResponseWriter, r *http.Request, log logging.Logger, operation string, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		log.Error(r.Context(), "validator failed", "error", err)
		h.metrics.noteOp(operation, "error")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error("internal error"))
		return
	}

	log.Warn(r.Context(), "invalid request", "error", err)
	h.unprocessable(w, r, operation, ValidationError(verrs))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, log logging.Logger, operation string, id int64) {
	log.Info(r.Context(), msgNoteNotFound, "note_id", id)
	h.metrics.noteOp(operation, "not_found")
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, Error(msgNoteNotFound))
}

// serviceError maps a NoteService error to a status code and body.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, log logging.Logger, operation string, err error) {
	var refErr *common.ReferenceNotFoundError
	var pErr *common.PersistenceError

	switch {
	case errors.As(err, &refErr):
		log.Info(r.Context(), "referenced entity not found", "entity", refErr.Entity, "id", refErr.ID)
		h.metrics.noteOp(operation, "rejected")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error(refErr.Error()))

	case errors.As(err, &pErr) && pErr.Constraint:
		log.Warn(r.Context(), "store rejected write", "error", err)
		h.metrics.noteOp(operation, "rejected")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error("request violates a data constraint"))

	default:
		log.Error(r.Context(), "note operation failed", "error", err)
		h.metrics.noteOp(operation, "error")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error("internal error"))
	}
}
