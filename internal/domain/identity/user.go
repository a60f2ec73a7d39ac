package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/ssrlogistics/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// DefaultRole is assigned when registration submits an unknown role.
const DefaultRole = "new_user"

// KnownRoles is the compile-time snapshot of the Users role enum. The
// authoritative set lives in the database column definition and is read
// through UserRepository.ListRoles; this set only guards registration
// input before the row exists.
var KnownRoles = shared.NewFieldSet("admin", "accounts", "custom", "sales", "viewer", "new_user")

// AllowedUpdateFields is the fixed allow-list for admin user updates.
var AllowedUpdateFields = shared.NewFieldSet("role", "is_active", "password", "email", "user_name")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User represents an application account.
type User struct {
	UserID       int64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	UserName     string    `gorm:"column:user_name;type:varchar(100)"`
	Email        string    `gorm:"column:email;type:varchar(200);not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password;type:varchar(100);not null"`
	Role         string    `gorm:"column:role;type:enum('admin','accounts','custom','sales','viewer','new_user');not null;default:'new_user'"`
	IsActive     bool      `gorm:"column:is_active;not null;default:1"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "Users"
}

// NewUser creates a user with a freshly hashed password. A role outside
// the known set silently falls back to DefaultRole.
func NewUser(userName, email, password, role string) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if !KnownRoles.Contains(role) {
		role = DefaultRole
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		UserName:     strings.TrimSpace(userName),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HashPassword hashes a plaintext password with the fixed cost factor.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ValidateEmail checks the email shape.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(email) > 200 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters long")
	}
	return nil
}
