package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupGameRepoMock(t *testing.T) (GameRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewGameRepository(db), mock
}

// The lookup must fold case on both columns so "halo"/"XBOX" finds
// "Halo"/"Xbox".
func TestGameRepository_FindOrCreate_ExistingCaseFold(t *testing.T) {
	repo, mock := setupGameRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `games` WHERE LOWER\\(name\\) = \\? AND LOWER\\(platform\\) = \\?").
		WithArgs("halo", "xbox").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "platform"}).
			AddRow(7, "Halo", "Xbox"))
	mock.ExpectCommit()

	game, created, err := repo.FindOrCreate("halo", "XBOX")
	require.NoError(t, err)
	require.False(t, created)
	require.EqualValues(t, 7, game.ID)
	require.Equal(t, "Halo", game.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGameRepository_FindOrCreate_CreatesWhenAbsent(t *testing.T) {
	repo, mock := setupGameRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `games` WHERE LOWER\\(name\\) = \\? AND LOWER\\(platform\\) = \\?").
		WithArgs("outer wilds", "pc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "platform"}))
	mock.ExpectExec("INSERT INTO `games`").
		WithArgs("Outer Wilds", "PC", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	game, created, err := repo.FindOrCreate("Outer Wilds", "PC")
	require.NoError(t, err)
	require.True(t, created)
	require.EqualValues(t, 3, game.ID)
	// The stored row keeps the caller's casing.
	require.Equal(t, "Outer Wilds", game.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}
