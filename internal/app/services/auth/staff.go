package auth

import (
	"context"
	"errors"
	"time"

	domainuser "frontdesk/internal/domain/user"
)

var errUsersRequired = errors.New("auth: user repository required")

// ListStaff returns every staff account.
func (s *Service) ListStaff(ctx context.Context) ([]*domainuser.User, error) {
	if s.Users == nil {
		return nil, errUsersRequired
	}
	return s.Users.List(ctx)
}

// SetBlocked flips account access. Blocking also revokes every live
// session the account holds.
func (s *Service) SetBlocked(ctx context.Context, id domainuser.ID, blocked bool) (*domainuser.User, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	staff, err := s.Users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if blocked {
		staff.Block(now)
	} else {
		staff.Unblock(now)
	}
	if err := s.Users.Save(ctx, staff); err != nil {
		return nil, err
	}
	if blocked {
		if err := s.Sessions.DeleteByUser(ctx, staff.ID); err != nil && s.Logger != nil {
			s.Logger.Warn("session revocation failed", "user_id", staff.ID, "error", err)
		}
	}
	if s.Logger != nil {
		s.Logger.Info("staff access changed", "user_id", staff.ID, "blocked", blocked)
	}
	return staff, nil
}

// AssignRoles replaces the role set on a staff account.
func (s *Service) AssignRoles(ctx context.Context, id domainuser.ID, roles []domainuser.Role) (*domainuser.User, error) {
	if s.Users == nil {
		return nil, errUsersRequired
	}
	staff, err := s.Users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := staff.AssignRoles(roles, time.Now()); err != nil {
		return nil, err
	}
	if err := s.Users.Save(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}
