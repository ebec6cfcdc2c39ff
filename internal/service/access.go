package service

import (
	"context"

	"synergysphere/internal/domain"
	"synergysphere/internal/models"
	"synergysphere/internal/repository"
)

// requireMember hides projects the caller does not belong to behind ErrNotFound.
func requireMember(ctx context.Context, projects *repository.ProjectRepository, id domain.Identity, projectID uint) (*models.ProjectMember, error) {
	if !id.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	return projects.GetMember(ctx, projectID, id.UserID)
}
