package services

import (
	"testing"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ScopeServiceTestSuite defines the test suite for ScopeService
type ScopeServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	scope *ScopeService
}

// SetupTest runs before each test
func (suite *ScopeServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Team{},
	)
	suite.Require().NoError(err)

	suite.scope = NewScopeService(
		repository.NewUserRepository(suite.db),
		repository.NewTeamRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *ScopeServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ScopeServiceTestSuite) createTestUser(email, surname, forenames string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Surname:      surname,
		Forenames:    forenames,
	}
	suite.db.Create(user)
	return user
}

func (suite *ScopeServiceTestSuite) createTestTeam(name string, managerID uint64, members ...*models.User) *models.Team {
	team := &models.Team{
		Name:      name,
		ManagerID: managerID,
	}
	suite.db.Create(team)
	for _, member := range members {
		err := suite.db.Model(team).Association("Members").Append(member)
		suite.Require().NoError(err)
	}
	return team
}

func (suite *ScopeServiceTestSuite) TestResolve_OwnReturnsOnlyViewer() {
	viewer := suite.createTestUser("viewer@example.com", "Archer", "Amy")

	users, err := suite.scope.Resolve(viewer, ScopeOwn, nil)

	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
	suite.Equal(viewer.ID, users[0].ID)
}

func (suite *ScopeServiceTestSuite) TestResolve_ManagedWithoutTeamsIsDenied() {
	viewer := suite.createTestUser("viewer@example.com", "Archer", "Amy")

	_, err := suite.scope.Resolve(viewer, ScopeManaged, nil)

	suite.Require().ErrorIs(err, ErrPermissionDenied)
}

func (suite *ScopeServiceTestSuite) TestResolve_ManagedDeduplicatesAndSorts() {
	manager := suite.createTestUser("manager@example.com", "Mills", "Mona")
	shared := suite.createTestUser("shared@example.com", "Young", "Yan")
	other := suite.createTestUser("other@example.com", "Boone", "Ben")

	suite.createTestTeam("First Team", manager.ID, shared, other)
	suite.createTestTeam("Second Team", manager.ID, shared)

	users, err := suite.scope.Resolve(manager, ScopeManaged, nil)

	suite.Require().NoError(err)
	suite.Require().Len(users, 2, "a member of two managed teams appears once")
	suite.Equal("Boone", users[0].Surname)
	suite.Equal("Young", users[1].Surname)
}

func (suite *ScopeServiceTestSuite) TestResolve_ManagedEmptyTeamIsValidEmptyResult() {
	manager := suite.createTestUser("manager@example.com", "Mills", "Mona")
	suite.createTestTeam("Empty Team", manager.ID)

	users, err := suite.scope.Resolve(manager, ScopeManaged, nil)

	suite.Require().NoError(err)
	suite.Empty(users)
}

func (suite *ScopeServiceTestSuite) TestResolve_AllRequiresAdmin() {
	viewer := suite.createTestUser("viewer@example.com", "Archer", "Amy")

	_, err := suite.scope.Resolve(viewer, ScopeAll, nil)

	suite.Require().ErrorIs(err, ErrPermissionDenied)
}

func (suite *ScopeServiceTestSuite) TestResolve_AllReturnsEveryUserSorted() {
	admin := suite.createTestUser("admin@example.com", "Nolan", "Nia")
	admin.IsAdmin = true
	suite.db.Save(admin)
	suite.createTestUser("a@example.com", "Young", "Yan")
	suite.createTestUser("b@example.com", "archer", "Amy")

	users, err := suite.scope.Resolve(admin, ScopeAll, nil)

	suite.Require().NoError(err)
	suite.Require().Len(users, 3)
	suite.Equal("archer", users[0].Surname, "ordering is case-insensitive")
	suite.Equal("Nolan", users[1].Surname)
	suite.Equal("Young", users[2].Surname)
}

func (suite *ScopeServiceTestSuite) TestResolve_TeamFilterOverridesMode() {
	manager := suite.createTestUser("manager@example.com", "Mills", "Mona")
	member := suite.createTestUser("member@example.com", "Archer", "Amy")
	outside := suite.createTestUser("outside@example.com", "Boone", "Ben")

	team := suite.createTestTeam("Filtered Team", manager.ID, member)
	suite.createTestTeam("Other Team", manager.ID, outside)

	// The viewer is neither an admin nor this team's manager; the explicit
	// filter still wins over the mode.
	viewer := suite.createTestUser("viewer@example.com", "Voss", "Val")
	users, err := suite.scope.Resolve(viewer, ScopeAll, []uint64{team.ID})

	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
	suite.Equal(member.ID, users[0].ID)
}

func (suite *ScopeServiceTestSuite) TestIsManager() {
	manager := suite.createTestUser("manager@example.com", "Mills", "Mona")
	plain := suite.createTestUser("plain@example.com", "Archer", "Amy")
	suite.createTestTeam("Some Team", manager.ID)

	isManager, err := suite.scope.IsManager(manager.ID)
	suite.Require().NoError(err)
	suite.True(isManager)

	isManager, err = suite.scope.IsManager(plain.ID)
	suite.Require().NoError(err)
	suite.False(isManager)
}

func TestScopeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScopeServiceTestSuite))
}

func TestParseScopeMode(t *testing.T) {
	mode, err := ParseScopeMode("")
	require.NoError(t, err)
	require.Equal(t, ScopeOwn, mode, "empty mode defaults to own")

	mode, err = ParseScopeMode("managed")
	require.NoError(t, err)
	require.Equal(t, ScopeManaged, mode)

	mode, err = ParseScopeMode("all")
	require.NoError(t, err)
	require.Equal(t, ScopeAll, mode)

	_, err = ParseScopeMode("everyone")
	require.ErrorIs(t, err, ErrUnknownScopeMode)
}
