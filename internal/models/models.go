package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles the backend may report.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// ParseRole validates a role string at the API boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// AccountStatus is the closed set of registration states.
type AccountStatus string

const (
	StatusApproved AccountStatus = "APPROVED"
	StatusPending  AccountStatus = "PENDING"
	StatusRejected AccountStatus = "REJECTED"
)

func ParseAccountStatus(s string) (AccountStatus, error) {
	switch AccountStatus(s) {
	case StatusApproved, StatusPending, StatusRejected:
		return AccountStatus(s), nil
	}
	return "", fmt.Errorf("unknown account status %q", s)
}

// CustomerData holds the business registration details attached to a user.
type CustomerData struct {
	CompanyName    string `json:"companyName"`
	BusinessType   string `json:"businessType"`
	TaxID          string `json:"taxId"`
	Country        string `json:"country"`
	City           string `json:"city"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phoneNumber"`
	ReferenceNotes string `json:"referenceNotes,omitempty"`
}

type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	Role         Role          `json:"role"`
	Status       AccountStatus `json:"status"`
	CustomerData *CustomerData `json:"customerData,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Validate checks the closed enums after decoding an upstream payload.
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id missing")
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	if _, err := ParseAccountStatus(string(u.Status)); err != nil {
		return err
	}
	return nil
}

// DiamondStatus is owned by the backend; the gateway only reads it.
type DiamondStatus string

const (
	DiamondAvailable DiamondStatus = "AVAILABLE"
	DiamondHold      DiamondStatus = "HOLD"
	DiamondSold      DiamondStatus = "SOLD"
	DiamondMemo      DiamondStatus = "MEMO"
)

func ParseDiamondStatus(s string) (DiamondStatus, error) {
	switch DiamondStatus(s) {
	case DiamondAvailable, DiamondHold, DiamondSold, DiamondMemo:
		return DiamondStatus(s), nil
	}
	return "", fmt.Errorf("unknown diamond status %q", s)
}

type Diamond struct {
	StockRef     string        `json:"stockRef"`
	Shape        string        `json:"shape"`
	Carat        float64       `json:"carat"`
	Color        string        `json:"color"`
	Clarity      string        `json:"clarity"`
	Cut          string        `json:"cut"`
	Polish       string        `json:"polish"`
	Symmetry     string        `json:"symmetry"`
	Fluorescence string        `json:"fluorescence"`
	Lab          string        `json:"lab"`
	CertNumber   string        `json:"certNumber"`
	Measurements string        `json:"measurements"`
	PricePerCt   float64       `json:"pricePerCt"`
	TotalPrice   float64       `json:"totalPrice"`
	Status       DiamondStatus `json:"status"`
}

type CartItem struct {
	ID      string    `json:"id"`
	Diamond Diamond   `json:"diamond"`
	AddedAt time.Time `json:"addedAt"`
}

// Cart is a transient snapshot of the server-held cart.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

// Hold is an exclusive time-boxed reservation on a diamond. Expiry
// arithmetic and conflict resolution live upstream.
type Hold struct {
	UserID    string    `json:"userId"`
	StockRef  string    `json:"stockRef"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Inquiry struct {
	ID        string    `json:"id"`
	StockRef  string    `json:"stockRef"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type FormSubmission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message"`
	Attachments []string  `json:"attachments,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Pagination mirrors the upstream envelope's pagination block.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalRecords int  `json:"totalRecords"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}
