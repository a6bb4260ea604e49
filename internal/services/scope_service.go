package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
)

var (
	ErrPermissionDenied = errors.New("viewer does not have permission for the requested scope")
	ErrUnknownScopeMode = errors.New("unknown scope mode")
)

// ScopeMode selects which users a report covers.
type ScopeMode string

const (
	ScopeOwn     ScopeMode = "own"
	ScopeManaged ScopeMode = "managed"
	ScopeAll     ScopeMode = "all"
)

// ParseScopeMode parses a mode string, defaulting empty input to "own".
func ParseScopeMode(s string) (ScopeMode, error) {
	switch ScopeMode(s) {
	case "", ScopeOwn:
		return ScopeOwn, nil
	case ScopeManaged:
		return ScopeManaged, nil
	case ScopeAll:
		return ScopeAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScopeMode, s)
}

// ScopeService resolves the set of users a viewer reports over.
type ScopeService struct {
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
}

// NewScopeService creates a new ScopeService.
func NewScopeService(userRepo repository.UserRepository, teamRepo repository.TeamRepository) *ScopeService {
	return &ScopeService{
		userRepo: userRepo,
		teamRepo: teamRepo,
	}
}

// Resolve returns the deduplicated subject users for a viewer, ordered by
// surname then forenames. A non-empty explicit team filter overrides the mode
// entirely, letting an admin narrow from "all" to specific teams without
// losing the all-users context elsewhere.
//
// "managed" with zero managed teams is ErrPermissionDenied, which is distinct
// from a manager whose teams currently have no members (an empty, valid
// result). "all" is admin-only.
func (s *ScopeService) Resolve(viewer *models.User, mode ScopeMode, teamFilter []uint64) ([]models.User, error) {
	if len(teamFilter) > 0 {
		teams, err := s.teamRepo.ListByIDs(teamFilter)
		if err != nil {
			return nil, fmt.Errorf("failed to load filtered teams: %w", err)
		}
		return collectTeamMembers(teams), nil
	}

	switch mode {
	case ScopeOwn:
		return []models.User{*viewer}, nil

	case ScopeManaged:
		teams, err := s.teamRepo.ListManagedBy(viewer.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load managed teams: %w", err)
		}
		if len(teams) == 0 {
			return nil, ErrPermissionDenied
		}
		return collectTeamMembers(teams), nil

	case ScopeAll:
		if !viewer.IsAdmin {
			return nil, ErrPermissionDenied
		}
		users, err := s.userRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("failed to load users: %w", err)
		}
		sortUsers(users)
		return users, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScopeMode, mode)
}

// IsManager reports whether the user manages at least one team.
func (s *ScopeService) IsManager(userID uint64) (bool, error) {
	count, err := s.teamRepo.CountManagedBy(userID)
	if err != nil {
		return false, fmt.Errorf("failed to count managed teams: %w", err)
	}
	return count > 0, nil
}

// collectTeamMembers unions the members of the given teams, deduplicated by
// user ID and sorted by name.
func collectTeamMembers(teams []models.Team) []models.User {
	seen := make(map[uint64]struct{})
	users := make([]models.User, 0)

	for _, team := range teams {
		for _, member := range team.Members {
			if _, exists := seen[member.ID]; exists {
				continue
			}
			seen[member.ID] = struct{}{}
			users = append(users, member)
		}
	}

	sortUsers(users)
	return users
}

func sortUsers(users []models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		si, sj := strings.ToLower(users[i].Surname), strings.ToLower(users[j].Surname)
		if si != sj {
			return si < sj
		}
		return strings.ToLower(users[i].Forenames) < strings.ToLower(users[j].Forenames)
	})
}
