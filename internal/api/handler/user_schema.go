package handler

// userViewModel is the public shape of a user. It never carries the
// password hash.
type userViewModel struct {
	ID                 string   `json:"id"`
	UserName           string   `json:"userName"`
	NormalizedUserName string   `json:"normalizedUserName"`
	Email              string   `json:"email"`
	NormalizedEmail    string   `json:"normalizedEmail"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	AddressLine1       string   `json:"addressLine1"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	PhoneNumber        string   `json:"phoneNumber"`
	Roles              []string `json:"roles"`
}

type updateUserRequest struct {
	ID           string `json:"id" validate:"required,uuid"`
	UserName     string `json:"userName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	PhoneNumber  string `json:"phoneNumber"`
}

type bootstrapResponse struct {
	Roles []string `json:"roles"`
}
