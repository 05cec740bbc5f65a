package dto

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	Role          string `json:"role" validate:"required,oneof=student mentor"`
	Major         string `json:"major" validate:"omitempty,max=128"`
	Semester      int    `json:"semester" validate:"omitempty,min=1,max=14"`
	ExpertiseArea string `json:"expertise_area" validate:"omitempty,max=128"`
}

// LoginRequest carries submitted credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student mentor"`
}

// AccountResponse is the public view of an authenticated account.
type AccountResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Major         string `json:"major,omitempty"`
	Semester      int    `json:"semester,omitempty"`
	ExpertiseArea string `json:"expertise_area,omitempty"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int             `json:"expires_in"`
	Account     AccountResponse `json:"account"`
}

// SysAccessRequest exchanges the shared admin PIN for a capability token.
type SysAccessRequest struct {
	PIN string `json:"pin" validate:"required,min=4,max=32"`
}

// SysAccessResponse carries the short-lived system-view capability token.
type SysAccessResponse struct {
	SysToken  string `json:"sys_token"`
	ExpiresIn int    `json:"expires_in"`
}
