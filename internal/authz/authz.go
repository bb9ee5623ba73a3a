// Package authz holds the stateless authorization predicates gating every
// resource mutation: role membership, ownership, self-protection, and the
// status state machines for mentorship requests and applications.
package authz

import (
	"github.com/noah-isme/alumni-connect-api/internal/models"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
)

// Identity is the decoded caller identity derived from token claims. A nil
// *Identity means the request carried no (valid) token.
type Identity struct {
	ID   int64
	Role models.UserRole
}

// FromClaims converts verified JWT claims into an Identity.
func FromClaims(claims *models.JWTClaims) *Identity {
	if claims == nil {
		return nil
	}
	return &Identity{ID: claims.UserID, Role: claims.Role}
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == models.RoleAdmin
}

// RequireRole enforces membership in the allowed role set. A missing
// identity yields 401, a role outside the set 403.
func RequireRole(id *Identity, allowed ...models.UserRole) error {
	if id == nil {
		return appErrors.ErrUnauthorized
	}
	for _, role := range allowed {
		if id.Role == role {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrForbidden, "insufficient role")
}

// CanMutate gates update/delete on an owned resource: the owner or an
// admin may proceed, everyone else gets 403.
func CanMutate(id *Identity, ownerID int64) error {
	if id == nil {
		return appErrors.ErrUnauthorized
	}
	if id.ID == ownerID || id.Role == models.RoleAdmin {
		return nil
	}
	return appErrors.Clone(appErrors.ErrForbidden, "not the resource owner")
}

// CanDeleteUser guards the admin user-deletion action. Admins may not
// remove their own account.
func CanDeleteUser(id *Identity, targetID int64) error {
	if err := RequireRole(id, models.RoleAdmin); err != nil {
		return err
	}
	if id.ID == targetID {
		return appErrors.Clone(appErrors.ErrValidation, "you cannot delete your own account")
	}
	return nil
}

// MentorshipTransition validates a mentorship status change requested by
// the given identity against the state machine:
//
//	pending  → accepted | rejected
//	accepted → completed
//
// rejected and completed are terminal. Only the designated mentor or an
// admin may transition; the requesting student cannot self-approve.
func MentorshipTransition(id *Identity, mentorID int64, from, to models.MentorshipStatus) error {
	if id == nil {
		return appErrors.ErrUnauthorized
	}
	if id.ID != mentorID && id.Role != models.RoleAdmin {
		return appErrors.Clone(appErrors.ErrForbidden, "only the mentor can update this request")
	}
	if !to.Valid() || to == models.MentorshipPending {
		return appErrors.Clone(appErrors.ErrValidation, "invalid status")
	}
	switch from {
	case models.MentorshipPending:
		if to == models.MentorshipAccepted || to == models.MentorshipRejected {
			return nil
		}
	case models.MentorshipAccepted:
		if to == models.MentorshipCompleted {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrConflict, "invalid status transition")
}

// ApplicationTransition validates an application review status change
// requested by the given identity, where ownerID is the creator of the
// scholarship or opportunity being applied to:
//
//	submitted    → under_review
//	under_review → approved | rejected
func ApplicationTransition(id *Identity, ownerID int64, from, to models.ApplicationStatus) error {
	if id == nil {
		return appErrors.ErrUnauthorized
	}
	if id.ID != ownerID && id.Role != models.RoleAdmin {
		return appErrors.Clone(appErrors.ErrForbidden, "only the owner can review applications")
	}
	if !to.Valid() || to == models.ApplicationSubmitted {
		return appErrors.Clone(appErrors.ErrValidation, "invalid status")
	}
	switch from {
	case models.ApplicationSubmitted:
		if to == models.ApplicationUnderReview {
			return nil
		}
	case models.ApplicationUnderReview:
		if to == models.ApplicationApproved || to == models.ApplicationRejected {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrConflict, "invalid status transition")
}
