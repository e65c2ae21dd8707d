package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
	RoleBoth     Role = "BOTH"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch role := Role(strings.ToUpper(strings.TrimSpace(s))); role {
	case RoleCustomer, RoleSeller, RoleBoth, RoleAdmin:
		return role, nil
	case "":
		return RoleCustomer, nil
	default:
		return "", ErrInvalidRole
	}
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationErr("invalid email format")
	}

	return email, nil
}

func NewUser(name, email, phone, passwordHash string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("name must not be empty")
	}

	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, validationErr("phone must not be empty")
	}

	if passwordHash == "" {
		return nil, validationErr("password hash is required")
	}

	if role == "" {
		role = RoleCustomer
	}

	now := time.Now().UTC()

	return &User{
		ID:           NewID(),
		Name:         name,
		Email:        normalized,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) UpdateProfile(name string) {
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
		u.touch()
	}
}

func (u *User) ChangeRole(role Role) {
	u.Role = role
	u.touch()
}

func (u *User) Activate() {
	u.Active = true
	u.touch()
}

func (u *User) Deactivate() {
	u.Active = false
	u.touch()
}

func (u *User) IsSeller() bool {
	return u.Role == RoleSeller || u.Role == RoleBoth
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer || u.Role == RoleBoth
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=6,max=20"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=CUSTOMER SELLER BOTH customer seller both"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	User      *User  `json:"user"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}

	return false
}

type DashboardStats struct {
	TotalUsers      int `json:"totalUsers"`
	ActiveUsers     int `json:"activeUsers"`
	TotalCustomers  int `json:"totalCustomers"`
	TotalSellers    int `json:"totalSellers"`
	TotalAdmins     int `json:"totalAdmins"`
	TotalProducts   int `json:"totalProducts"`
	TotalOrders     int `json:"totalOrders"`
	TotalCategories int `json:"totalCategories"`
}
