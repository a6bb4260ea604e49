package services

import (
	"testing"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TokenServiceTestSuite defines the test suite for TokenService
type TokenServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TokenService
	user    *models.User
}

// SetupTest runs before each test
func (suite *TokenServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.APIToken{},
	)
	suite.Require().NoError(err)

	suite.service = NewTokenService(
		repository.NewTokenRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)

	suite.user = &models.User{
		Email:        "amy@example.com",
		PasswordHash: "hashedpassword",
		Surname:      "Archer",
		Forenames:    "Amy",
	}
	suite.db.Create(suite.user)
}

// TearDownTest runs after each test
func (suite *TokenServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TokenServiceTestSuite) TestCreateToken_ReturnsOpaqueValueOnce() {
	token, value, err := suite.service.CreateToken(suite.user.ID, "ci-dashboard")

	suite.Require().NoError(err)
	suite.NotEmpty(value)
	suite.Equal("ci-dashboard", token.Name)
	suite.Equal(suite.user.ID, token.UserID)
	suite.Nil(token.LastUsedAt)
}

func (suite *TokenServiceTestSuite) TestCreateToken_NameRequired() {
	_, _, err := suite.service.CreateToken(suite.user.ID, "   ")

	suite.Require().ErrorIs(err, ErrTokenNameMissing)
}

func (suite *TokenServiceTestSuite) TestAuthenticate_ResolvesOwnerAndTouches() {
	token, value, err := suite.service.CreateToken(suite.user.ID, "ci-dashboard")
	suite.Require().NoError(err)

	user, err := suite.service.Authenticate(value)

	suite.Require().NoError(err)
	suite.Equal(suite.user.ID, user.ID)

	var stored models.APIToken
	suite.Require().NoError(suite.db.First(&stored, token.ID).Error)
	suite.NotNil(stored.LastUsedAt)
}

func (suite *TokenServiceTestSuite) TestAuthenticate_UnknownToken() {
	_, err := suite.service.Authenticate("not-a-token")

	suite.Require().ErrorIs(err, ErrInvalidToken)
}

func (suite *TokenServiceTestSuite) TestRevokeToken_OnlyOwnerRows() {
	token, _, err := suite.service.CreateToken(suite.user.ID, "ci-dashboard")
	suite.Require().NoError(err)

	other := &models.User{
		Email:        "ben@example.com",
		PasswordHash: "hashedpassword",
		Surname:      "Boone",
		Forenames:    "Ben",
	}
	suite.db.Create(other)

	// Revoking with someone else's user ID must not remove the token.
	suite.Require().NoError(suite.service.RevokeToken(token.ID, other.ID))
	tokens, err := suite.service.ListTokens(suite.user.ID)
	suite.Require().NoError(err)
	suite.Len(tokens, 1)

	suite.Require().NoError(suite.service.RevokeToken(token.ID, suite.user.ID))
	tokens, err = suite.service.ListTokens(suite.user.ID)
	suite.Require().NoError(err)
	suite.Empty(tokens)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
