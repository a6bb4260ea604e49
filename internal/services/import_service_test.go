package services

import (
	"testing"
	"time"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ImportServiceTestSuite defines the test suite for ImportService
type ImportServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ImportService
}

// SetupTest runs before each test
func (suite *ImportServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.PlanEntry{},
	)
	suite.Require().NoError(err)

	suite.service = NewImportService(
		repository.NewUserRepository(suite.db),
		repository.NewLocationRepository(suite.db),
		repository.NewEntryRepository(suite.db),
	)

	suite.db.Create(&models.User{
		Email:        "amy@example.com",
		PasswordHash: "hashedpassword",
		Surname:      "Archer",
		Forenames:    "Amy",
	})
	suite.db.Create(&models.Location{
		Name:       "Headquarters",
		ShortLabel: "HQ",
		Slug:       "hq",
		IsPhysical: true,
	})
}

// TearDownTest runs after each test
func (suite *ImportServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ImportServiceTestSuite) entryCount() int64 {
	var count int64
	suite.db.Model(&models.PlanEntry{}).Count(&count)
	return count
}

func (suite *ImportServiceTestSuite) TestImport_HeaderRowAlwaysSkipped() {
	// The first row is data-shaped and would validate; it is still a header.
	rows := [][]string{
		{"amy@example.com", "09/06/2025", "hq", "front desk", "O"},
		{"amy@example.com", "10/06/2025", "hq", "", "O"},
	}

	result, err := suite.service.Import(rows)

	suite.Require().NoError(err)
	suite.Equal(1, result.Imported)
	suite.Empty(result.Errors)
	suite.Equal(int64(1), suite.entryCount())
}

func (suite *ImportServiceTestSuite) TestImport_ValidRowCreatesManagerFlaggedEntry() {
	rows := [][]string{
		{"email", "date", "location", "note", "availability"},
		{"amy@example.com", "9/6/2025", "HQ", "front desk", "o"},
	}

	result, err := suite.service.Import(rows)

	suite.Require().NoError(err)
	suite.Equal(1, result.Imported)

	var entry models.PlanEntry
	suite.Require().NoError(suite.db.First(&entry).Error)
	suite.Equal(models.DateOnly(time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)), entry.EntryDate)
	suite.Equal("front desk", entry.Note)
	suite.Equal(models.AvailabilityOnsite, entry.AvailabilityStatus)
	suite.True(entry.CreatedByManager)
	suite.Require().NotNil(entry.LocationID)
}

func (suite *ImportServiceTestSuite) TestImport_LegacyAvailabilityCodes() {
	rows := [][]string{
		{"email", "date", "location", "note", "availability"},
		{"amy@example.com", "09/06/2025", "hq", "", "Y"},
		{"amy@example.com", "10/06/2025", "hq", "", "N"},
		{"amy@example.com", "11/06/2025", "hq", "", "R"},
	}

	result, err := suite.service.Import(rows)

	suite.Require().NoError(err)
	suite.Equal(3, result.Imported)

	var entries []models.PlanEntry
	suite.Require().NoError(suite.db.Order("entry_date").Find(&entries).Error)
	suite.Equal(models.AvailabilityOnsite, entries[0].AvailabilityStatus)
	suite.Equal(models.AvailabilityNotAvailable, entries[1].AvailabilityStatus)
	suite.Equal(models.AvailabilityRemote, entries[2].AvailabilityStatus)
}

func (suite *ImportServiceTestSuite) TestImport_RowsFailIndependently() {
	rows := [][]string{
		{"email", "date", "location", "note", "availability"},
		{"nobody@example.com", "09/06/2025", "hq", "", "O"},
		{"amy@example.com", "2025-06-09", "hq", "", "O"},
		{"amy@example.com", "09/06/2025", "warehouse", "", "O"},
		{"amy@example.com", "09/06/2025", "hq", "", "X"},
		{"amy@example.com", "09/06/2025"},
		{"amy@example.com", "10/06/2025", "hq", "", "O"},
	}

	result, err := suite.service.Import(rows)

	suite.Require().NoError(err, "row failures never fail the batch")
	suite.Equal(1, result.Imported)
	suite.Require().Len(result.Errors, 5)

	suite.Equal(2, result.Errors[0].Row)
	suite.Contains(result.Errors[0].Error, "no user with that email")
	suite.Contains(result.Errors[1].Error, "day/month/year")
	suite.Contains(result.Errors[2].Error, "unknown location code")
	suite.Contains(result.Errors[3].Error, "unknown availability code")
	suite.Contains(result.Errors[4].Error, "five columns")

	suite.Equal(int64(1), suite.entryCount())
}

func (suite *ImportServiceTestSuite) TestImport_ReimportUpdatesInPlace() {
	first := [][]string{
		{"email", "date", "location", "note", "availability"},
		{"amy@example.com", "09/06/2025", "hq", "morning shift", "O"},
	}
	_, err := suite.service.Import(first)
	suite.Require().NoError(err)

	second := [][]string{
		{"email", "date", "location", "note", "availability"},
		{"amy@example.com", "09/06/2025", "hq", "afternoon shift", "R"},
	}
	result, err := suite.service.Import(second)
	suite.Require().NoError(err)
	suite.Equal(1, result.Imported)

	suite.Equal(int64(1), suite.entryCount(), "reimporting the same day must not duplicate")

	var entry models.PlanEntry
	suite.Require().NoError(suite.db.First(&entry).Error)
	suite.Equal("afternoon shift", entry.Note)
	suite.Equal(models.AvailabilityRemote, entry.AvailabilityStatus)
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}

func TestParseAvailabilityCode(t *testing.T) {
	status, err := ParseAvailabilityCode(" o ")
	require.NoError(t, err)
	require.Equal(t, models.AvailabilityOnsite, status)

	status, err = ParseAvailabilityCode("Y")
	require.NoError(t, err)
	require.Equal(t, models.AvailabilityOnsite, status)

	status, err = ParseAvailabilityCode("r")
	require.NoError(t, err)
	require.Equal(t, models.AvailabilityRemote, status)

	status, err = ParseAvailabilityCode("N")
	require.NoError(t, err)
	require.Equal(t, models.AvailabilityNotAvailable, status)

	_, err = ParseAvailabilityCode("maybe")
	require.ErrorIs(t, err, ErrUnknownAvailabilityCode)
}
