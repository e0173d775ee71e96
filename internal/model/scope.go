package model

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // ADMIN or USER
	JTI      string `json:"jti"`
}

// IsAdmin checks if the scope has admin role
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}
