package services

import (
	"fmt"

	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/repository"
)

// lockExemptFields is the fixed per-resource-type allowlist of fields the
// owning user may still mutate on a resource someone else authored for them.
// Only status progression survives the creation lock.
var lockExemptFields = map[string]map[string]bool{
	"task":     {"status": true, "completed_at": true},
	"reminder": {"is_sent": true, "sent_at": true},
}

// LockExemptField reports whether field may be mutated on a locked resource.
func LockExemptField(resourceType, field string) bool {
	return lockExemptFields[resourceType][field]
}

// IsLockedForUser reports whether a resource is locked against an actor:
// the actor is a plain user and the resource was authored on their behalf
// by someone else. Managers and admins are never locked out this way.
func IsLockedForUser(actor models.Actor, ownerID, creatorID uint64) bool {
	switch actor.Role {
	case models.RoleUser:
		return creatorID != actor.ID
	case models.RoleManager, models.RoleAdmin:
		return false
	}
	return false
}

// OwnershipService decides whether an actor may act as or for a given user.
type OwnershipService struct {
	userRepo repository.UserRepository
}

// NewOwnershipService creates a new OwnershipService
func NewOwnershipService(userRepo repository.UserRepository) *OwnershipService {
	return &OwnershipService{userRepo: userRepo}
}

// CanActorAccessUser reports whether actor may act for targetUserID.
// Admins may act for anyone, everyone may act for themselves, and managers
// may act for their current direct reports. Nothing else passes.
func (s *OwnershipService) CanActorAccessUser(actor models.Actor, targetUserID uint64) (bool, error) {
	if actor.Role == models.RoleAdmin {
		return true, nil
	}
	if actor.ID == targetUserID {
		return true, nil
	}

	if actor.Role == models.RoleManager {
		ok, err := s.userRepo.IsTeamMember(actor.ID, targetUserID)
		if err != nil {
			return false, fmt.Errorf("failed to check team membership: %w", err)
		}
		return ok, nil
	}
	return false, nil
}

// ResolveTargetUserID resolves the user a request operates on. A nil requested
// ID means the actor themselves; anything else must pass CanActorAccessUser.
func (s *OwnershipService) ResolveTargetUserID(actor models.Actor, requestedUserID *uint64) (uint64, error) {
	if requestedUserID == nil {
		return actor.ID, nil
	}

	ok, err := s.CanActorAccessUser(actor, *requestedUserID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apierrors.Forbidden("You cannot act on behalf of this user")
	}
	return *requestedUserID, nil
}
