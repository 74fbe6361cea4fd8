package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yonagi/game-library-api/internal/constants"
	"github.com/yonagi/game-library-api/internal/database"
	"github.com/yonagi/game-library-api/internal/models"
	"github.com/yonagi/game-library-api/internal/repository"
	"github.com/yonagi/game-library-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// LibraryHandlerTestSuite defines the test suite for LibraryHandler
type LibraryHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *LibraryHandler
}

// SetupTest runs before each test
func (suite *LibraryHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.SteamGame{},
		&models.Copy{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	gameRepo := repository.NewGameRepository(suite.db)
	copyRepo := repository.NewCopyRepository(suite.db)
	libraryService := services.NewLibraryService(gameRepo, copyRepo, true)
	suite.handler = NewLibraryHandler(libraryService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *LibraryHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func uintString(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// Helper functions to create test data

func (suite *LibraryHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *LibraryHandlerTestSuite) createTestGame(name, platform string) *models.Game {
	game := &models.Game{
		Name:     name,
		Platform: platform,
	}
	suite.db.Create(game)
	return game
}

func (suite *LibraryHandlerTestSuite) createTestCopy(ownerID, gameID uint64, rating *models.GameRating) *models.Copy {
	copy := &models.Copy{
		OwnerID: ownerID,
		GameID:  gameID,
		Rating:  rating,
	}
	suite.db.Create(copy)
	return copy
}

// createFormContext builds an authenticated gin context carrying a form body
func (suite *LibraryHandlerTestSuite) createFormContext(path string, form url.Values, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *LibraryHandlerTestSuite) TestAddGame() {
	user := suite.createTestUser("collector")

	c, w := suite.createFormContext("/api/v1/game/add", url.Values{
		"game_name":     {"Halo"},
		"game_platform": {"Xbox"},
	}, user.ID)
	suite.handler.AddGame(c)

	suite.Equal(http.StatusCreated, w.Code)

	var response struct {
		Result string `json:"result"`
		Game   struct {
			ID       uint64 `json:"id"`
			Name     string `json:"name"`
			Platform string `json:"platform"`
		} `json:"game"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("success", response.Result)
	suite.Equal("Halo", response.Game.Name)
	suite.Equal("Xbox", response.Game.Platform)
}

func (suite *LibraryHandlerTestSuite) TestAddGame_CaseInsensitiveDuplicate() {
	user := suite.createTestUser("collector")
	original := suite.createTestGame("Halo", "Xbox")

	c, w := suite.createFormContext("/api/v1/game/add", url.Values{
		"game_name":     {"halo"},
		"game_platform": {"XBOX"},
	}, user.ID)
	suite.handler.AddGame(c)

	suite.Equal(http.StatusConflict, w.Code)

	var response struct {
		Result string `json:"result"`
		Code   string `json:"code"`
		Game   struct {
			ID uint64 `json:"id"`
		} `json:"game"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("error", response.Result)
	suite.Equal("GAME_EXISTS", response.Code)
	suite.Equal(original.ID, response.Game.ID)

	var count int64
	suite.db.Model(&models.Game{}).Count(&count)
	suite.EqualValues(1, count)
}

func (suite *LibraryHandlerTestSuite) TestAddGame_MissingFields() {
	user := suite.createTestUser("collector")

	c, w := suite.createFormContext("/api/v1/game/add", url.Values{
		"game_platform": {"Xbox"},
	}, user.ID)
	suite.handler.AddGame(c)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "MISSING_FIELD")
	suite.Contains(w.Body.String(), "game_name")
}

func (suite *LibraryHandlerTestSuite) TestAddGame_WhitespaceName() {
	user := suite.createTestUser("collector")

	c, w := suite.createFormContext("/api/v1/game/add", url.Values{
		"game_name":     {"   "},
		"game_platform": {"Xbox"},
	}, user.ID)
	suite.handler.AddGame(c)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "MISSING_FIELD")

	var count int64
	suite.db.Model(&models.Game{}).Count(&count)
	suite.EqualValues(0, count)
}

// racingGameRepo simulates losing the unique-index race on insert.
type racingGameRepo struct{}

func (r *racingGameRepo) FindByID(id uint64) (*models.Game, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *racingGameRepo) FindOrCreate(name, platform string) (*models.Game, bool, error) {
	return nil, false, repository.ErrConflict
}

func (suite *LibraryHandlerTestSuite) TestAddGame_ConcurrentDuplicate() {
	user := suite.createTestUser("collector")

	service := services.NewLibraryService(&racingGameRepo{}, repository.NewCopyRepository(suite.db), true)
	handler := NewLibraryHandler(service)

	c, w := suite.createFormContext("/api/v1/game/add", url.Values{
		"game_name":     {"Halo"},
		"game_platform": {"Xbox"},
	}, user.ID)
	handler.AddGame(c)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "CONFLICT")
}

func (suite *LibraryHandlerTestSuite) TestAddCopy() {
	user := suite.createTestUser("collector")
	game := suite.createTestGame("Outer Wilds", "PC")

	c, w := suite.createFormContext("/api/v1/copy/add", url.Values{
		"game_id": {uintString(game.ID)},
	}, user.ID)
	suite.handler.AddCopy(c)

	suite.Equal(http.StatusCreated, w.Code)

	var response struct {
		Copy struct {
			ID    uint64 `json:"id"`
			Owner struct {
				ID uint64 `json:"id"`
			} `json:"owner"`
			Game struct {
				ID uint64 `json:"id"`
			} `json:"game"`
			Progress *string `json:"progress"`
			Rating   *string `json:"rating"`
		} `json:"copy"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(user.ID, response.Copy.Owner.ID)
	suite.Equal(game.ID, response.Copy.Game.ID)
	suite.Nil(response.Copy.Progress)
	suite.Nil(response.Copy.Rating)
}

func (suite *LibraryHandlerTestSuite) TestAddCopy_NoSuchGame() {
	user := suite.createTestUser("collector")

	c, w := suite.createFormContext("/api/v1/copy/add", url.Values{
		"game_id": {"12345"},
	}, user.ID)
	suite.handler.AddCopy(c)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "NO_SUCH_GAME")
}

func (suite *LibraryHandlerTestSuite) TestSetProgress() {
	user := suite.createTestUser("collector")
	game := suite.createTestGame("Hades", "PC")
	copy := suite.createTestCopy(user.ID, game.ID, nil)

	c, w := suite.createFormContext("/api/v1/copy/progress", url.Values{
		"copy_id":  {uintString(copy.ID)},
		"progress": {"BEATEN"},
	}, user.ID)
	suite.handler.SetProgress(c)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"progress":"BEATEN"`)

	var stored models.Copy
	suite.Require().NoError(suite.db.First(&stored, copy.ID).Error)
	suite.Require().NotNil(stored.Progress)
	suite.Equal(models.ProgressBeaten, *stored.Progress)
}

func (suite *LibraryHandlerTestSuite) TestSetProgress_NotOwner() {
	owner := suite.createTestUser("owner")
	intruder := suite.createTestUser("intruder")
	game := suite.createTestGame("Hades", "PC")
	copy := suite.createTestCopy(owner.ID, game.ID, nil)

	c, w := suite.createFormContext("/api/v1/copy/progress", url.Values{
		"copy_id":  {uintString(copy.ID)},
		"progress": {"BEATEN"},
	}, intruder.ID)
	suite.handler.SetProgress(c)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "NOT_OWNER")

	var stored models.Copy
	suite.Require().NoError(suite.db.First(&stored, copy.ID).Error)
	suite.Nil(stored.Progress)
}

func (suite *LibraryHandlerTestSuite) TestSetProgress_InvalidValue() {
	user := suite.createTestUser("collector")
	game := suite.createTestGame("Hades", "PC")
	copy := suite.createTestCopy(user.ID, game.ID, nil)

	c, w := suite.createFormContext("/api/v1/copy/progress", url.Values{
		"copy_id":  {uintString(copy.ID)},
		"progress": {"SPEEDRUN"},
	}, user.ID)
	suite.handler.SetProgress(c)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "INVALID_PROGRESS")
}

func (suite *LibraryHandlerTestSuite) TestSetProgress_ClearSentinel() {
	user := suite.createTestUser("collector")
	game := suite.createTestGame("Hades", "PC")
	progress := models.ProgressBeaten
	copy := &models.Copy{OwnerID: user.ID, GameID: game.ID, Progress: &progress}
	suite.db.Create(copy)

	c, w := suite.createFormContext("/api/v1/copy/progress", url.Values{
		"copy_id":  {uintString(copy.ID)},
		"progress": {"null"},
	}, user.ID)
	suite.handler.SetProgress(c)

	suite.Equal(http.StatusOK, w.Code)

	var stored models.Copy
	suite.Require().NoError(suite.db.First(&stored, copy.ID).Error)
	suite.Nil(stored.Progress)
}

func (suite *LibraryHandlerTestSuite) TestSetRating_NonOwnerWithValidValue() {
	owner := suite.createTestUser("owner")
	intruder := suite.createTestUser("intruder")
	game := suite.createTestGame("Hades", "PC")
	copy := suite.createTestCopy(owner.ID, game.ID, nil)

	c, w := suite.createFormContext("/api/v1/copy/rating", url.Values{
		"copy_id": {uintString(copy.ID)},
		"rating":  {"LOVED"},
	}, intruder.ID)
	suite.handler.SetRating(c)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "NOT_OWNER")
}

func (suite *LibraryHandlerTestSuite) TestListCopies_RatingOrder() {
	user := suite.createTestUser("collector")
	loved := models.RatingLoved
	disliked := models.RatingDisliked

	gameA := suite.createTestGame("Game A", "PC")
	gameB := suite.createTestGame("Game B", "PC")
	gameC := suite.createTestGame("Game C", "PC")

	first := suite.createTestCopy(user.ID, gameA.ID, &loved)
	second := suite.createTestCopy(user.ID, gameB.ID, nil)
	third := suite.createTestCopy(user.ID, gameC.ID, &disliked)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/copy/list?user_id="+uintString(user.ID), nil)
	suite.handler.ListCopies(c)

	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Copies []struct {
			ID     uint64  `json:"id"`
			Rating *string `json:"rating"`
		} `json:"copies"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Copies, 3)
	suite.Equal(first.ID, response.Copies[0].ID)
	suite.Equal(third.ID, response.Copies[1].ID)
	suite.Equal(second.ID, response.Copies[2].ID)
	suite.Nil(response.Copies[2].Rating)
}

func (suite *LibraryHandlerTestSuite) TestDeleteCopy() {
	user := suite.createTestUser("collector")
	game := suite.createTestGame("Hades", "PC")
	copy := suite.createTestCopy(user.ID, game.ID, nil)

	c, w := suite.createFormContext("/api/v1/copy/delete", url.Values{
		"copy_id": {uintString(copy.ID)},
	}, user.ID)
	suite.handler.DeleteCopy(c)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Copy deleted.")

	var count int64
	suite.db.Model(&models.Copy{}).Where("owner_id = ?", user.ID).Count(&count)
	suite.EqualValues(0, count)
}

func (suite *LibraryHandlerTestSuite) TestDeleteCopy_NotOwner() {
	owner := suite.createTestUser("owner")
	intruder := suite.createTestUser("intruder")
	game := suite.createTestGame("Hades", "PC")
	copy := suite.createTestCopy(owner.ID, game.ID, nil)

	c, w := suite.createFormContext("/api/v1/copy/delete", url.Values{
		"copy_id": {uintString(copy.ID)},
	}, intruder.ID)
	suite.handler.DeleteCopy(c)

	suite.Equal(http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Copy{}).Count(&count)
	suite.EqualValues(1, count)
}

func TestLibraryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LibraryHandlerTestSuite))
}
