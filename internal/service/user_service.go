package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/repository"
	"github.com/luxylyfe/portal/internal/utils"
)

const (
	MsgUserFieldsRequired = "Email, password, role, and name are required"
	MsgInvalidRole        = "Invalid role"
	MsgUserNotFound       = "User not found"
	MsgSelfDelete         = "Cannot delete your own account"
)

// UserService is the superadmin's account management.
type UserService struct {
	Users *repository.UserRepo
	Cost  int
	Log   logrus.FieldLogger
}

func NewUserService(users *repository.UserRepo, cost int, log logrus.FieldLogger) *UserService {
	return &UserService{Users: users, Cost: cost, Log: log}
}

// List returns every account, newest first, optionally narrowed to role.
func (s *UserService) List(ctx context.Context, role model.Role) ([]model.PublicUser, error) {
	list, err := s.Users.FindMany(ctx, repository.UserWhere{Role: role})
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	out := make([]model.PublicUser, 0, len(list))
	for _, u := range list {
		out = append(out, u.Public())
	}
	return out, nil
}

// CreateUserInput is an account created by a superadmin.
type CreateUserInput struct {
	Email           string
	Password        string
	Role            string
	Name            string
	Phone           string
	PropertyAddress string
	PropertyNumber  string
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.PublicUser, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" || in.Role == "" || strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation(MsgUserFieldsRequired)
	}
	role := model.Role(in.Role)
	if !role.Valid() {
		return nil, apperr.Validation(MsgInvalidRole)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperr.Validation(MsgPasswordTooShort)
	}
	hash, err := utils.HashPassword(in.Password, s.Cost)
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	u, err := s.Users.Create(ctx, &model.User{
		Email:           in.Email,
		Password:        hash,
		Role:            role,
		Name:            strings.TrimSpace(in.Name),
		Phone:           in.Phone,
		PropertyAddress: in.PropertyAddress,
		PropertyNumber:  in.PropertyNumber,
	})
	if err != nil {
		return nil, conflictOrInternal(err, MsgEmailTaken)
	}
	s.Log.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user created")
	pub := u.Public()
	return &pub, nil
}

// Delete removes the account id and its sessions. actorID is the caller,
// who may not delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return apperr.Validation(MsgSelfDelete)
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err, MsgUserNotFound)
	}
	s.Log.WithFields(logrus.Fields{"user_id": id, "by": actorID}).Info("user deleted")
	return nil
}

// ResetPassword replaces the password of id. Existing sessions stay valid.
func (s *UserService) ResetPassword(ctx context.Context, id, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return apperr.Validation(MsgPasswordTooShort)
	}
	hash, err := utils.HashPassword(newPassword, s.Cost)
	if err != nil {
		return apperr.Internal(apperr.MsgInternal, err)
	}
	if _, err := s.Users.Update(ctx, repository.UserWhere{ID: id}, repository.UserPatch{Password: &hash}); err != nil {
		return notFoundOrInternal(err, MsgUserNotFound)
	}
	return nil
}
