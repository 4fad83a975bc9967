package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-service/app/domain"
	"product-service/app/utils/logger"
)

var userColumns = []string{"id", "first_name", "last_name", "email", "password", "created_at", "updated_at"}

func createTestUserRepository(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	return NewUserRepository(mockDB, testLogger).(*UserRepository), mockDB
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestUserRepository_GetUsers(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	updatedAt := createdAt.Add(time.Hour)
	email := "user@example.com"

	tests := []struct {
		name      string
		filter    domain.UserFilter
		setupDB   func(mock pgxmock.PgxPoolIface, filter domain.UserFilter)
		wantUsers int
		wantErr   string
	}{
		{
			name:   "lookup by email",
			filter: domain.UserFilter{Email: &email},
			setupDB: func(mock pgxmock.PgxPoolIface, filter domain.UserFilter) {
				mock.ExpectQuery("FROM get_users").
					WithArgs(filter.FirstName, filter.LastName, filter.Email, filter.ID).
					WillReturnRows(pgxmock.NewRows(userColumns).
						AddRow(7, strPtr("Ada"), strPtr("Lovelace"), email, "$2a$hash", createdAt, &updatedAt))
			},
			wantUsers: 1,
		},
		{
			name:   "no match",
			filter: domain.UserFilter{ID: intPtr(99)},
			setupDB: func(mock pgxmock.PgxPoolIface, filter domain.UserFilter) {
				mock.ExpectQuery("FROM get_users").
					WithArgs(filter.FirstName, filter.LastName, filter.Email, filter.ID).
					WillReturnRows(pgxmock.NewRows(userColumns))
			},
			wantUsers: 0,
		},
		{
			name:   "query failure",
			filter: domain.UserFilter{Email: &email},
			setupDB: func(mock pgxmock.PgxPoolIface, filter domain.UserFilter) {
				mock.ExpectQuery("FROM get_users").
					WithArgs(filter.FirstName, filter.LastName, filter.Email, filter.ID).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: "failed to get users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := createTestUserRepository(t)
			tt.setupDB(mock, tt.filter)

			users, err := repo.GetUsers(context.Background(), tt.filter)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Len(t, users, tt.wantUsers)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetUsers_ScansRow(t *testing.T) {
	repo, mock := createTestUserRepository(t)
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	filter := domain.UserFilter{Email: strPtr("user@example.com")}

	mock.ExpectQuery("FROM get_users").
		WithArgs(filter.FirstName, filter.LastName, filter.Email, filter.ID).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(7, strPtr("Ada"), nil, "user@example.com", "$2a$hash", createdAt, nil))

	users, err := repo.GetUsers(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, users, 1)

	user := users[0]
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "Ada", *user.FirstName)
	assert.Nil(t, user.LastName)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "$2a$hash", user.PasswordHash)
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.Nil(t, user.UpdatedAt)
}

func TestUserRepository_InsertUser(t *testing.T) {
	newUser := &domain.NewUser{
		FirstName:    strPtr("Ada"),
		LastName:     strPtr("Lovelace"),
		Email:        "user@example.com",
		PasswordHash: "$2a$hash",
	}

	tests := []struct {
		name    string
		setupDB func(mock pgxmock.PgxPoolIface)
		wantID  int
		wantErr bool
	}{
		{
			name: "returns new id",
			setupDB: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT insert_user").
					WithArgs(newUser.FirstName, newUser.LastName, newUser.Email, newUser.PasswordHash).
					WillReturnRows(pgxmock.NewRows([]string{"insert_user"}).AddRow(intPtr(12)))
			},
			wantID: 12,
		},
		{
			name: "null id",
			setupDB: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT insert_user").
					WithArgs(newUser.FirstName, newUser.LastName, newUser.Email, newUser.PasswordHash).
					WillReturnRows(pgxmock.NewRows([]string{"insert_user"}).AddRow(nil))
			},
			wantID: 0,
		},
		{
			name: "database error",
			setupDB: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT insert_user").
					WithArgs(newUser.FirstName, newUser.LastName, newUser.Email, newUser.PasswordHash).
					WillReturnError(errors.New("unique violation"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := createTestUserRepository(t)
			tt.setupDB(mock)

			id, err := repo.InsertUser(context.Background(), newUser)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to insert user")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UpdateUser(t *testing.T) {
	hash := "$2a$newhash"
	update := &domain.UserUpdate{
		ID:           7,
		FirstName:    strPtr("Ada"),
		LastName:     strPtr("Byron"),
		Email:        "ada@example.com",
		PasswordHash: &hash,
	}
	yes, no := true, false

	tests := []struct {
		name    string
		result  any
		dbErr   error
		want    bool
		wantErr bool
	}{
		{name: "updated", result: &yes, want: true},
		{name: "not updated", result: &no, want: false},
		{name: "null result", result: nil, want: false},
		{name: "database error", dbErr: errors.New("deadlock"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := createTestUserRepository(t)

			expect := mock.ExpectQuery("SELECT update_user").
				WithArgs(update.FirstName, update.LastName, update.Email, update.ID, update.PasswordHash)
			if tt.dbErr != nil {
				expect.WillReturnError(tt.dbErr)
			} else {
				expect.WillReturnRows(pgxmock.NewRows([]string{"update_user"}).AddRow(tt.result))
			}

			ok, err := repo.UpdateUser(context.Background(), update)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, ok)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
