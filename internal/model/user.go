package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin" // reserved, no flow assigns it
)

// User represents a row of the credential store
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Do not expose password hash in JSON responses
	Role         string `json:"role"`
}

// Session is what a successful login hands to the presentation shell
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token,omitempty"` // Empty unless a token issuer is configured
}
