package notes

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/optional"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func strPtr(s string) *string { return &s }

var columns = []string{"id", "title", "content", "user_id"}

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(columns).
		AddRow(int64(1), "A", "B", int64(1)).
		AddRow(int64(2), "C", nil, int64(1))

	mock.ExpectQuery(`^SELECT id, title, content, user_id FROM notes$`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 notes, got %d", len(got))
	}
	if got[0].Content == nil || *got[0].Content != "B" {
		t.Fatalf("unexpected first note: %+v", got[0])
	}
	if got[1].Content != nil {
		t.Fatalf("want NULL content on second note, got %q", *got[1].Content)
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM notes`).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestList_Errors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(`FROM notes`).WillReturnError(errors.New("db err"))

		_, err := repo.List(context.Background())
		if err == nil || !regexp.MustCompile(`failed to select notes: .*db err`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped select error, got %v", err)
		}
	})

	t.Run("scan", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		rows := sqlmock.NewRows(columns).AddRow("not-a-number", "A", nil, int64(1))
		mock.ExpectQuery(`FROM notes`).WillReturnRows(rows)

		_, err := repo.List(context.Background())
		if err == nil || !regexp.MustCompile(`failed to scan note`).MatchString(err.Error()) {
			t.Fatalf("expected scan error, got %v", err)
		}
	})

	t.Run("rows", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		rows := sqlmock.NewRows(columns).
			AddRow(int64(1), "A", nil, int64(1)).
			AddRow(int64(2), "B", nil, int64(1)).
			RowError(1, errors.New("row-err"))
		mock.ExpectQuery(`FROM notes`).WillReturnRows(rows)

		_, err := repo.List(context.Background())
		if err == nil || err.Error() != "row-err" {
			t.Fatalf("expected rows.Err 'row-err', got %v", err)
		}
	})
}

func TestGetByID(t *testing.T) {
	q := `^SELECT id, title, content, user_id FROM notes WHERE id = \$1$`

	t.Run("found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(7), "T", "C", int64(1)))

		n, err := repo.GetByID(context.Background(), 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.ID != 7 || n.Title != "T" || *n.Content != "C" || n.UserID != 1 {
			t.Fatalf("unexpected note: %+v", n)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs(int64(999)).WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(context.Background(), 999)
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want ErrorNotFound, got %v", err)
		}
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs(int64(1)).WillReturnError(errors.New("db down"))

		_, err := repo.GetByID(context.Background(), 1)
		if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}

func TestCreate(t *testing.T) {
	q := `(?s)^INSERT INTO notes \(title, content, user_id\)\s+VALUES \(\$1, \$2, \$3\)\s+RETURNING id\s*$`

	t.Run("success", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).
			WithArgs("API Note", "Created via API", int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		n, err := repo.Create(context.Background(), &models.Note{Title: "API Note", Content: strPtr("Created via API"), UserID: 1})
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if n.ID != 42 {
			t.Fatalf("want id 42, got %d", n.ID)
		}
	})

	t.Run("null content", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).
			WithArgs("T", nil, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		if _, err := repo.Create(context.Background(), &models.Note{Title: "T", UserID: 1}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WillReturnError(errors.New("fk violation"))

		_, err := repo.Create(context.Background(), &models.Note{Title: "T", UserID: 1})
		if err == nil || !regexp.MustCompile(`db error: .*fk violation`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}

func TestUpdate_BuildsSetClauseFromPresentFields(t *testing.T) {
	tests := []struct {
		name  string
		upd   models.NoteUpdate
		query string
		args  []any
	}{
		{
			name:  "title only",
			upd:   models.NoteUpdate{Title: optional.Some("C")},
			query: `^UPDATE notes SET title = \$1 WHERE id = \$2 RETURNING id, title, content, user_id$`,
			args:  []any{"C", int64(5)},
		},
		{
			name:  "content only",
			upd:   models.NoteUpdate{Content: optional.Some(strPtr("D"))},
			query: `^UPDATE notes SET content = \$1 WHERE id = \$2 RETURNING id, title, content, user_id$`,
			args:  []any{"D", int64(5)},
		},
		{
			name:  "content cleared",
			upd:   models.NoteUpdate{Content: optional.Some[*string](nil)},
			query: `^UPDATE notes SET content = \$1 WHERE id = \$2 RETURNING`,
			args:  []any{nil, int64(5)},
		},
		{
			name:  "both",
			upd:   models.NoteUpdate{Title: optional.Some("C"), Content: optional.Some(strPtr("D"))},
			query: `^UPDATE notes SET title = \$1, content = \$2 WHERE id = \$3 RETURNING`,
			args:  []any{"C", "D", int64(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			args := make([]driver.Value, len(tt.args))
			for i, a := range tt.args {
				args[i] = a
			}

			mock.ExpectQuery(tt.query).
				WithArgs(args...).
				WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(5), "C", "D", int64(1)))

			if _, err := repo.Update(context.Background(), 5, tt.upd); err != nil {
				t.Fatalf("Update error: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestUpdate_EmptyReadsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT id, title, content, user_id FROM notes WHERE id = \$1$`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(3), "A", "B", int64(1)))

	n, err := repo.Update(context.Background(), 3, models.NoteUpdate{})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if n.Title != "A" || *n.Content != "B" {
		t.Fatalf("unexpected note: %+v", n)
	}
}

func TestUpdate_NotFoundAndError(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(`^UPDATE notes`).WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Update(context.Background(), 999, models.NoteUpdate{Title: optional.Some("x")})
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want ErrorNotFound, got %v", err)
		}
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(`^UPDATE notes`).WillReturnError(errors.New("deadlock detected"))

		_, err := repo.Update(context.Background(), 1, models.NoteUpdate{Title: optional.Some("x")})
		if err == nil || !regexp.MustCompile(`db error: .*deadlock detected`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	q := `^DELETE FROM notes WHERE id = \$1 RETURNING id, title, content, user_id$`

	t.Run("returns snapshot", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(4), "To delete", "Bye", int64(1)))

		n, err := repo.Delete(context.Background(), 4)
		if err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		if n.ID != 4 || n.Title != "To delete" {
			t.Fatalf("unexpected snapshot: %+v", n)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Delete(context.Background(), 4)
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want ErrorNotFound, got %v", err)
		}
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs(int64(4)).WillReturnError(errors.New("conn closed"))

		_, err := repo.Delete(context.Background(), 4)
		if err == nil || !regexp.MustCompile(`db error: .*conn closed`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}
