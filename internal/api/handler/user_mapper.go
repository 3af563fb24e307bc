package handler

import (
	"github.com/gms2/gms-api/internal/core/domain"
	"github.com/gms2/gms-api/internal/core/ports"
)

func toUserViewModel(u *domain.User) userViewModel {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return userViewModel{
		ID:                 u.ID,
		UserName:           u.UserName,
		NormalizedUserName: u.NormalizedUserName,
		Email:              u.Email,
		NormalizedEmail:    u.NormalizedEmail,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		AddressLine1:       u.AddressLine1,
		City:               u.City,
		State:              u.State,
		PhoneNumber:        u.PhoneNumber,
		Roles:              roles,
	}
}

func toUserViewModels(users []*domain.User) []userViewModel {
	out := make([]userViewModel, 0, len(users))
	for _, u := range users {
		out = append(out, toUserViewModel(u))
	}
	return out
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		ID:           req.ID,
		UserName:     req.UserName,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		State:        req.State,
		PhoneNumber:  req.PhoneNumber,
	}
}
