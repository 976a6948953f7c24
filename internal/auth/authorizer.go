// Package auth centralizes the authorization predicates so that list
// filtering and detail guarding cannot drift apart.
package auth

import (
	"errors"

	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/steamtrack/project-tracking-api/internal/repository"
	"gorm.io/gorm"
)

// Authorizer evaluates (actor, resource) permission predicates per request.
// Results are never cached.
type Authorizer struct {
	projectRepo repository.ProjectRepository
}

// NewAuthorizer creates a new Authorizer.
func NewAuthorizer(projectRepo repository.ProjectRepository) *Authorizer {
	return &Authorizer{projectRepo: projectRepo}
}

// CanViewProject reports whether the actor may see the project and its
// tasks, meetings and timeline: owner, member, or staff/superuser.
func (a *Authorizer) CanViewProject(actor *models.User, project *models.Project) (bool, error) {
	if actor.IsElevated() || project.OwnerID == actor.ID {
		return true, nil
	}
	return a.isMember(actor, project)
}

// CanManageProject reports whether the actor may update or delete the
// project: owner or staff/superuser. Membership grants no edit rights.
func (a *Authorizer) CanManageProject(actor *models.User, project *models.Project) bool {
	return actor.IsElevated() || project.OwnerID == actor.ID
}

// CanCreateProject reports whether the actor may create projects:
// staff/superuser only.
func (a *Authorizer) CanCreateProject(actor *models.User) bool {
	return actor.IsElevated()
}

// CanViewResource reports whether the actor may see the resource. Owner and
// staff see everything; members only see non-hidden resources.
func (a *Authorizer) CanViewResource(actor *models.User, project *models.Project, resource *models.Resource) (bool, error) {
	if a.CanManageProject(actor, project) {
		return true, nil
	}
	if resource.IsHidden {
		return false, nil
	}
	return a.isMember(actor, project)
}

// CanManageResource reports whether the actor may create, update or delete
// resources in the project: owner or staff/superuser.
func (a *Authorizer) CanManageResource(actor *models.User, project *models.Project) bool {
	return a.CanManageProject(actor, project)
}

func (a *Authorizer) isMember(actor *models.User, project *models.Project) (bool, error) {
	if _, err := a.projectRepo.FindMember(project.ID, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
