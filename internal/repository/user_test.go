package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"alumnihub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedCode  string
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "full_name", "email", "user_type"}).
					AddRow(1, "Ada Lovelace", "ada@example.com", "ALUMNI")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, FullName: "Ada Lovelace", Email: "ada@example.com", UserType: models.UserTypeAlumni},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
			expectedCode:  models.CodeNotFound,
		},
		{
			name:   "Database Error",
			userID: 2,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(2, 1).
					WillReturnError(errors.New("connection timeout"))
			},
			expectedError: true,
			expectedCode:  models.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
				assert.Equal(t, tt.expectedCode, models.ErrorCode(err))
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.FullName, user.FullName)
				assert.Equal(t, tt.expectedUser.UserType, user.UserType)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success normalizes case", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "password"}).AddRow(1, "test@example.com", "hash")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("test@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, " Test@Example.com ")
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "hash", user.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
			WithArgs("ghost@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByEmail(ctx, "ghost@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user := &models.User{FullName: "New User", Email: "new@example.com", UserType: models.UserTypeStudent}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := repo.Create(ctx, user)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate email maps to conflict", func(t *testing.T) {
		user := &models.User{FullName: "Dup", Email: "dup@example.com", UserType: models.UserTypeStudent}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
		mock.ExpectRollback()

		err := repo.Create(ctx, user)
		require.Error(t, err)
		assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
		assert.Equal(t, "User already exists", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Search(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "Zoe Alumni", "zoe@example.com", models.UserTypeAlumni)
	seedUser(t, db, "adam smith", "adam@example.com", models.UserTypeStudent)
	seedUser(t, db, "Bob", "bob@example.com", models.UserTypeStudent)
	for i := 0; i < 12; i++ {
		seedUser(t, db, "Mara "+string(rune('a'+i)), "mara"+string(rune('a'+i))+"@example.com", models.UserTypeStudent)
	}

	t.Run("case insensitive substring ordered by name", func(t *testing.T) {
		results, err := repo.Search(ctx, "A")
		require.NoError(t, err)
		require.Len(t, results, SearchLimit)
		for i := 1; i < len(results); i++ {
			assert.LessOrEqual(t, results[i-1].FullName, results[i].FullName)
		}
	})

	t.Run("upper case query matches lower case name", func(t *testing.T) {
		results, err := repo.Search(ctx, "ADAM")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "adam smith", results[0].FullName)
	})

	t.Run("projection only", func(t *testing.T) {
		results, err := repo.Search(ctx, "zoe")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "zoe@example.com", results[0].Email)
		assert.Equal(t, models.UserTypeAlumni, results[0].UserType)
		assert.NotZero(t, results[0].ID)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		results, err := repo.Search(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestUserRepository_UpdateKeepsCredentials(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "Old Name", "keep@example.com", models.UserTypeStudent)

	patch := &models.User{ID: u.ID, FullName: "New Name", Email: "changed@example.com", UserType: models.UserTypeAdmin, Location: "Lyon"}
	require.NoError(t, repo.Update(ctx, patch))

	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.Equal(t, "New Name", stored.FullName)
	assert.Equal(t, "Lyon", stored.Location)
	assert.Equal(t, "keep@example.com", stored.Email)
	assert.Equal(t, "hash", stored.Password)
	assert.Equal(t, models.UserTypeStudent, stored.UserType)
}

func TestUserRepository_Delete(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "Gone", "gone@example.com", models.UserTypeStudent)
	require.NoError(t, repo.Delete(ctx, u.ID))

	err := repo.Delete(ctx, u.ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: likes.post_id, likes.user_id")))
	assert.True(t, isUniqueConstraintError(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
}
