package mindfulness

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mindwell/journal/internal/common"
	"github.com/mindwell/journal/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var cols = []string{"id", "user_id", "question_grateful", "question_service_self", "question_service_others", "created_at"}

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+mindfulness_entries\s*\(id,\s*user_id,\s*question_grateful,\s*question_service_self,\s*question_service_others\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+created_at\s*$`

	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), "u-1", "family", "rested", "helped a friend").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	e := &models.MindfulnessEntry{
		UserID:                "u-1",
		QuestionGrateful:      "family",
		QuestionServiceSelf:   "rested",
		QuestionServiceOthers: "helped a friend",
	}
	got, err := repo.Insert(context.Background(), e)
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestFetchByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM mindfulness_entries WHERE id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FetchByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestFetchByUserID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(cols).
		AddRow("m-1", "u-1", "a", "b", "c", time.Now())
	mock.ExpectQuery(`FROM\s+mindfulness_entries\s+WHERE\s+user_id`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.FetchByUserID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("FetchByUserID error: %v", err)
	}
	if len(got) != 1 || got[0].QuestionGrateful != "a" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestUpdateByID_PartialPatch(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+mindfulness_entries\s+SET\s+question_grateful\s*=\s*\$1,\s*question_service_others\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s*$`

	mock.ExpectExec(q).
		WithArgs("sunlight", "volunteered", "m-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	grateful := "sunlight"
	others := "volunteered"
	affected, err := repo.UpdateByID(context.Background(), "m-1",
		models.MindfulnessEntryPatch{QuestionGrateful: &grateful, QuestionServiceOthers: &others})
	if err != nil {
		t.Fatalf("UpdateByID error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}
}

func TestUpdateByID_EmptyPatch(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.UpdateByID(context.Background(), "m-1", models.MindfulnessEntryPatch{})
	if !errors.Is(err, common.ErrEmptyPatch) {
		t.Fatalf("want common.ErrEmptyPatch, got %v", err)
	}
}

func TestDeleteByID_ZeroRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+mindfulness_entries\s+WHERE\s+id`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.DeleteByID(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("DeleteByID error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected rows, got %d", affected)
	}
}
