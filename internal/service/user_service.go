package service

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/util"
	"Pinwall/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type UserService interface {
	GetUser(ctx context.Context, id string) (*dto.UserDTO, error)
	UpsertIdentity(ctx context.Context, identity *dto.Identity) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}

// UpsertIdentity 以 subject 为主键覆盖用户资料
func (s *userServiceImpl) UpsertIdentity(ctx context.Context, identity *dto.Identity) (*dto.UserDTO, error) {
	if identity == nil || identity.Subject == "" {
		return nil, ErrParamInvalid
	}
	user := &model.User{
		ID:              identity.Subject,
		Email:           util.PtrString(identity.Email),
		FirstName:       util.PtrString(identity.GivenName),
		LastName:        util.PtrString(identity.FamilyName),
		ProfileImageURL: util.PtrString(identity.Picture),
	}
	if err := s.userRepo.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func toUserDTO(user *model.User) *dto.UserDTO {
	var out dto.UserDTO
	_ = copier.Copy(&out, user)
	return &out
}
