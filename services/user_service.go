package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alienigenasfc/pelada-system/models"
	"github.com/alienigenasfc/pelada-system/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService is the admin-only account management surface.
type UserService interface {
	ListUsers(ctx context.Context, actor models.Principal) ([]models.User, error)
	ChangeRole(ctx context.Context, actor models.Principal, userID string, role models.Role) error
	DeleteUser(ctx context.Context, actor models.Principal, userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context, actor models.Principal) ([]models.User, error) {
	if err := authorize(OpManageUsers, actor); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

func (s *userService) ChangeRole(ctx context.Context, actor models.Principal, userID string, role models.Role) error {
	if err := authorize(OpManageUsers, actor); err != nil {
		return err
	}
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	// Demoting the last admin would lock everyone out.
	if user.Role == models.RoleAdmin && role != models.RoleAdmin {
		if err := s.ensureOtherAdmin(ctx, userID); err != nil {
			return err
		}
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}
	s.logger.Info("user role changed", slog.String("user_id", userID), slog.String("role", string(role)))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, actor models.Principal, userID string) error {
	if err := authorize(OpManageUsers, actor); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Role == models.RoleAdmin {
		if err := s.ensureOtherAdmin(ctx, userID); err != nil {
			return err
		}
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}
	s.logger.Info("user deleted", slog.String("user_id", userID))
	return nil
}

func (s *userService) ensureOtherAdmin(ctx context.Context, excludeID string) error {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin && u.ID != excludeID {
			return nil
		}
	}
	return ErrLastAdmin
}
