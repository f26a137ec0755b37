package todos

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/dailydo/internal/common"
	"github.com/dmitrijs2005/dailydo/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+todos\s*\(user_id,\s*content,\s*is_completed\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow("t-1")
	mock.ExpectQuery(q).
		WithArgs("u-1", "buy milk", false).
		WillReturnRows(rows)

	todo := &models.Todo{UserID: "u-1", Content: "buy milk"}
	got, err := repo.Create(context.Background(), todo)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "t-1" {
		t.Fatalf("unexpected todo: %+v", got)
	}
}

func TestListByOwner_ReturnsOnlyOwnerRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*content,\s*is_completed\s+FROM\s+todos\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s*$`

	rows := sqlmock.NewRows([]string{"id", "user_id", "content", "is_completed"}).
		AddRow("t-1", "u-1", "buy milk", false).
		AddRow("t-2", "u-1", "walk dog", true)
	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].Content != "buy milk" || !got[1].IsCompleted {
		t.Fatalf("unexpected todos: %+v", got)
	}
}

func TestListByOwner_EmptyIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*content,\s*is_completed\s+FROM\s+todos`

	mock.ExpectQuery(q).
		WithArgs("u-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "is_completed"}))

	got, err := repo.ListByOwner(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %+v", got)
	}
}

func TestGetByIDAndOwner_ScopedPredicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*content,\s*is_completed\s+FROM\s+todos\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	rows := sqlmock.NewRows([]string{"id", "user_id", "content", "is_completed"}).
		AddRow("t-1", "u-1", "buy milk", false)
	mock.ExpectQuery(q).
		WithArgs("t-1", "u-1").
		WillReturnRows(rows)

	got, err := repo.GetByIDAndOwner(context.Background(), "t-1", "u-1")
	if err != nil {
		t.Fatalf("GetByIDAndOwner error: %v", err)
	}
	if got.ID != "t-1" || got.UserID != "u-1" {
		t.Fatalf("unexpected todo: %+v", got)
	}
}

func TestGetByIDAndOwner_ForeignOwnerLooksLikeMissing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*content,\s*is_completed\s+FROM\s+todos\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	// The row exists but belongs to u-1; querying as u-2 yields no rows.
	mock.ExpectQuery(q).
		WithArgs("t-1", "u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIDAndOwner(context.Background(), "t-1", "u-2")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+todos\s+SET\s+content\s*=\s*\$1,\s*is_completed\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$3\s+AND\s+user_id\s*=\s*\$4\s*$`

	mock.ExpectExec(q).
		WithArgs("buy oat milk", true, "t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	todo := &models.Todo{ID: "t-1", UserID: "u-1", Content: "buy oat milk", IsCompleted: true}
	got, err := repo.Update(context.Background(), todo)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Content != "buy oat milk" {
		t.Fatalf("unexpected todo: %+v", got)
	}
}

func TestUpdate_NoRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+todos`

	mock.ExpectExec(q).
		WithArgs("x", false, "t-9", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), &models.Todo{ID: "t-9", UserID: "u-1", Content: "x"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+todos\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WithArgs("t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "t-1", "u-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NoRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+todos`

	mock.ExpectExec(q).
		WithArgs("t-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "t-1", "u-2")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByOwner_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*content,\s*is_completed\s+FROM\s+todos`

	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnError(errors.New("db down"))

	_, err := repo.ListByOwner(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
