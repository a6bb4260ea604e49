package repository

import (
	"github.com/officekit/office-planning-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// FindByID finds a team by ID with members and manager preloaded
func (r *GormTeamRepository) FindByID(id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.Preload("Members").Preload("Manager").First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete deletes a team and its memberships in a transaction. Member users
// themselves are never deleted.
func (r *GormTeamRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM team_members WHERE team_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Team{}, id).Error
	})
}

// ListAll lists every team
func (r *GormTeamRepository) ListAll() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Manager").Order("name").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// ListManagedBy lists the teams managed by a user, members preloaded
func (r *GormTeamRepository) ListManagedBy(managerID uint64) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Members").
		Where("manager_id = ?", managerID).
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// ListByIDs lists the given teams, members preloaded
func (r *GormTeamRepository) ListByIDs(ids []uint64) ([]models.Team, error) {
	if len(ids) == 0 {
		return []models.Team{}, nil
	}

	var teams []models.Team
	if err := r.db.Preload("Members").
		Where("id IN ?", ids).
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// ListForUser lists teams the user belongs to
func (r *GormTeamRepository) ListForUser(userID uint64) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Manager").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// CountManagedBy counts the teams a user manages
func (r *GormTeamRepository) CountManagedBy(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Team{}).
		Where("manager_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ManagesUser reports whether managerID manages any team containing userID
func (r *GormTeamRepository) ManagesUser(managerID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Team{}).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("teams.manager_id = ? AND team_members.user_id = ?", managerID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMember adds a user to a team
func (r *GormTeamRepository) AddMember(teamID, userID uint64) error {
	return r.db.Model(&models.Team{ID: teamID}).
		Association("Members").
		Append(&models.User{ID: userID})
}

// RemoveMember removes a user from a team
func (r *GormTeamRepository) RemoveMember(teamID, userID uint64) error {
	return r.db.Model(&models.Team{ID: teamID}).
		Association("Members").
		Delete(&models.User{ID: userID})
}
