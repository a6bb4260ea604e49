package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrInvalidTeamName    = errors.New("team name cannot be empty")
	ErrTeamMemberNotFound = errors.New("team member not found")
)

// TeamService provides business logic for team operations.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	Name      string
	ManagerID uint64
}

// CreateTeam creates a new team with exactly one manager.
func (s *TeamService) CreateTeam(input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidTeamName
	}

	if _, err := s.userRepo.FindByID(input.ManagerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify manager: %w", err)
	}

	team := &models.Team{
		Name:      strings.TrimSpace(input.Name),
		ManagerID: input.ManagerID,
	}

	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// GetTeam returns a team with members and manager loaded.
func (s *TeamService) GetTeam(id uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

// ListTeams returns every team.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// UpdateTeamInput represents parameters to update a team.
type UpdateTeamInput struct {
	Name      *string
	ManagerID *uint64
}

// UpdateTeam renames a team or hands it to a different manager.
func (s *TeamService) UpdateTeam(id uint64, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.GetTeam(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidTeamName
		}
		team.Name = strings.TrimSpace(*input.Name)
	}
	if input.ManagerID != nil {
		if _, err := s.userRepo.FindByID(*input.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to verify manager: %w", err)
		}
		team.ManagerID = *input.ManagerID
	}

	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// DeleteTeam removes a team and its memberships. Users are never deleted
// with their team.
func (s *TeamService) DeleteTeam(id uint64) error {
	if _, err := s.GetTeam(id); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// AddMember adds a user to a team.
func (s *TeamService) AddMember(teamID, userID uint64) error {
	if _, err := s.GetTeam(teamID); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to verify user: %w", err)
	}

	if err := s.teamRepo.AddMember(teamID, userID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from a team.
func (s *TeamService) RemoveMember(teamID, userID uint64) error {
	if _, err := s.GetTeam(teamID); err != nil {
		return err
	}

	if err := s.teamRepo.RemoveMember(teamID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
