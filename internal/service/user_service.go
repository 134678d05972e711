package service

import (
	"pfolio_backend/internal/model"
	"pfolio_backend/internal/repository"
	"pfolio_backend/internal/util"
)

type UserService struct {
	store *repository.Store
}

func NewUserService(store *repository.Store) *UserService {
	return &UserService{store: store}
}

type ProfileUpdate struct {
	Name           string
	Contact        string
	Qualifications string
}

// UpdateProfile changes the mutable profile fields of userID. Id, email and
// role are never touched. Sessions of the user see the change through the
// store's user-update hook.
func (s *UserService) UpdateProfile(userID string, in ProfileUpdate) (*model.User, error) {
	user, ok := s.store.FindUser(userID)
	if !ok {
		return nil, util.ErrUserNotFound
	}

	user.Name = in.Name
	user.Contact = in.Contact
	user.Qualifications = in.Qualifications

	s.store.UpdateUser(user)
	return &user, nil
}

func (s *UserService) GetUser(userID string) (*model.User, error) {
	user, ok := s.store.FindUser(userID)
	if !ok {
		return nil, util.ErrUserNotFound
	}
	return &user, nil
}
