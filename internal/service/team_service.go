package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"synergysphere/internal/domain"
	"synergysphere/internal/models"
	"synergysphere/internal/repository"
)

type TeamService struct {
	projects *repository.ProjectRepository
	profiles *repository.ProfileRepository
	fanout   *FanOut
}

func NewTeamService(projects *repository.ProjectRepository, profiles *repository.ProfileRepository, fanout *FanOut) *TeamService {
	return &TeamService{projects: projects, profiles: profiles, fanout: fanout}
}

// CreateProject makes the caller the project owner.
func (s *TeamService) CreateProject(ctx context.Context, id domain.Identity, name, description string) (*models.Project, error) {
	if !id.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}
	p := &models.Project{Name: name, Description: description, OwnerID: id.UserID}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProjectInput carries the fields to change; nil leaves a field as is.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// UpdateProject edits the project settings. Only owners and admins may do so.
func (s *TeamService) UpdateProject(ctx context.Context, id domain.Identity, projectID uint, in UpdateProjectInput) (*models.Project, error) {
	actor, err := requireMember(ctx, s.projects, id, projectID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage() {
		return nil, fmt.Errorf("%w: only owners and admins can update the project", domain.ErrForbidden)
	}
	changes := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
		}
		changes["name"] = name
	}
	if in.Description != nil {
		changes["description"] = strings.TrimSpace(*in.Description)
	}
	if in.ImageURL != nil {
		changes["image_url"] = strings.TrimSpace(*in.ImageURL)
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if err := s.projects.Update(ctx, projectID, changes); err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.fanout.ProjectUpdated(ctx, project, id.UserID)
	return project, nil
}

func (s *TeamService) ListMembers(ctx context.Context, id domain.Identity, projectID uint) ([]models.ProjectMember, error) {
	if _, err := requireMember(ctx, s.projects, id, projectID); err != nil {
		return nil, err
	}
	return s.projects.ListMembers(ctx, projectID)
}

// InviteMember adds the user registered under email. Only owners and admins
// may invite, and nobody can be invited as owner.
func (s *TeamService) InviteMember(ctx context.Context, id domain.Identity, projectID uint, email, role string) (*models.ProjectMember, error) {
	actor, err := requireMember(ctx, s.projects, id, projectID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage() {
		return nil, fmt.Errorf("%w: only owners and admins can invite members", domain.ErrForbidden)
	}
	if role == "" {
		role = domain.RoleMember
	}
	if role != domain.RoleMember && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: role must be admin or member", domain.ErrValidation)
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: user with this email doesn't exist", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	_, err = s.projects.GetMember(ctx, projectID, profile.ID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: user is already a member of this project", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	member := &models.ProjectMember{ProjectID: projectID, UserID: profile.ID, Role: role}
	if err := s.projects.AddMember(ctx, member); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: user is already a member of this project", domain.ErrConflict)
		}
		return nil, err
	}
	member.Profile = profile
	s.fanout.MemberInvited(ctx, project, member)
	return member, nil
}

// UpdateMemberRole switches a member between admin and member. Only owners and
// admins may do so, and the owner's role is fixed.
func (s *TeamService) UpdateMemberRole(ctx context.Context, id domain.Identity, projectID, userID uint, role string) (*models.ProjectMember, error) {
	actor, err := requireMember(ctx, s.projects, id, projectID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage() {
		return nil, fmt.Errorf("%w: only owners and admins can change roles", domain.ErrForbidden)
	}
	if role != domain.RoleMember && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: role must be admin or member", domain.ErrValidation)
	}
	target, err := s.projects.GetMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if target.Role == domain.RoleOwner {
		return nil, fmt.Errorf("%w: the owner's role cannot be changed", domain.ErrForbidden)
	}
	if target.Role == role {
		return target, nil
	}
	ok, err := s.projects.UpdateMemberRole(ctx, projectID, userID, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	target.Role = role
	return target, nil
}

// RemoveMember lets owners and admins remove others and lets any member
// leave. The owner stays.
func (s *TeamService) RemoveMember(ctx context.Context, id domain.Identity, projectID, userID uint) error {
	actor, err := requireMember(ctx, s.projects, id, projectID)
	if err != nil {
		return err
	}
	if userID != id.UserID && !actor.CanManage() {
		return fmt.Errorf("%w: only owners and admins can remove other members", domain.ErrForbidden)
	}
	target, err := s.projects.GetMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleOwner {
		return fmt.Errorf("%w: the project owner cannot be removed", domain.ErrForbidden)
	}
	removed, err := s.projects.RemoveMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	s.fanout.MemberRemoved(ctx, projectID, userID)
	return nil
}
