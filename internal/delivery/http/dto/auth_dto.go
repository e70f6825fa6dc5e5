package dto

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string      `json:"token"`
	User  *UserOutput `json:"user"`
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username     string `json:"username" form:"username"`
	Password     string `json:"password" form:"password"`
	Confirmation string `json:"confirmation" form:"confirmation"`
}

// ChangePasswordRequest represents the password change payload
type ChangePasswordRequest struct {
	Current      string `json:"current" form:"current"`
	New          string `json:"new" form:"new"`
	Confirmation string `json:"confirmation" form:"confirmation"`
}

// UserOutput represents user data in API responses
type UserOutput struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Cash     float64 `json:"cash"`
}
