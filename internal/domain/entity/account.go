// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"rescue/internal/errors"

	"github.com/google/uuid"
)

// ErrInvalidAccountVariant is returned when the profile attached to an account does not match its role.
var ErrInvalidAccountVariant = errors.New("account profile does not match role")

// AccountStatus is the moderation state of an account.
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "active"
	AccountStatusBlocked AccountStatus = "blocked"
)

// Account is the core identity of a marketplace participant.
// Exactly one role-specific profile is attached: Buyer for buyers, Seller for sellers, none for admins.
type Account struct {
	ID           uuid.UUID      // The Global Unique Identifier (GUID) for the account.
	Name         string         // Display name.
	Email        string         // Login identifier, unique across accounts.
	PasswordHash string         // bcrypt hash of the password.
	Phone        string         // Contact phone number.
	Role         Role           // Discriminator for the attached profile.
	Status       AccountStatus  // active or blocked.
	Verified     bool           // Sellers start unverified until an admin verifies them.
	Buyer        *BuyerProfile  // Set only when Role is RoleBuyer.
	Seller       *SellerProfile // Set only when Role is RoleSeller.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BuyerProfile holds data specific to the buyer role.
type BuyerProfile struct {
	AccountID   uuid.UUID
	FullName    string
	Address     string
	DateOfBirth *time.Time
}

// SellerProfile holds data specific to the seller role.
type SellerProfile struct {
	AccountID   uuid.UUID
	ShopName    string
	ShopAddress string
}

// NewBuyer builds an active, verified buyer account.
func NewBuyer(name, email, phone, address string) *Account {
	id := uuid.New()

	return &Account{
		ID:       id,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Role:     RoleBuyer,
		Status:   AccountStatusActive,
		Verified: true,
		Buyer: &BuyerProfile{
			AccountID: id,
			FullName:  name,
			Address:   address,
		},
	}
}

// NewSeller builds an active seller account awaiting admin verification.
func NewSeller(name, email, phone, shopName, shopAddress string) *Account {
	id := uuid.New()

	return &Account{
		ID:       id,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Role:     RoleSeller,
		Status:   AccountStatusActive,
		Verified: false,
		Seller: &SellerProfile{
			AccountID:   id,
			ShopName:    shopName,
			ShopAddress: shopAddress,
		},
	}
}

// NewAdmin builds an active, verified admin account without a profile.
func NewAdmin(name, email string) *Account {
	return &Account{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Role:     RoleAdmin,
		Status:   AccountStatusActive,
		Verified: true,
	}
}

// CheckVariant reports ErrInvalidAccountVariant when the attached profiles disagree with the role.
func (a *Account) CheckVariant() error {
	switch a.Role {
	case RoleBuyer:
		if a.Buyer == nil || a.Seller != nil {
			return errors.Wrapf(ErrInvalidAccountVariant, "buyer %s", a.ID)
		}
	case RoleSeller:
		if a.Seller == nil || a.Buyer != nil {
			return errors.Wrapf(ErrInvalidAccountVariant, "seller %s", a.ID)
		}
	case RoleAdmin:
		if a.Buyer != nil || a.Seller != nil {
			return errors.Wrapf(ErrInvalidAccountVariant, "admin %s", a.ID)
		}
	default:
		return errors.Wrapf(ErrInvalidAccountVariant, "unknown role %q", a.Role)
	}

	return nil
}

// IsActive reports whether the account may log in.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// Roles returns the account role as a Roles slice for token claims.
func (a *Account) Roles() Roles {
	return Roles{a.Role}
}

// StoreName returns the seller's shop name, or an empty string for other roles.
func (a *Account) StoreName() string {
	if a.Seller == nil {
		return ""
	}

	return a.Seller.ShopName
}

// Address returns the buyer address or the seller shop address.
func (a *Account) Address() string {
	switch {
	case a.Buyer != nil:
		return a.Buyer.Address
	case a.Seller != nil:
		return a.Seller.ShopAddress
	default:
		return ""
	}
}

// Block marks the account as blocked.
func (a *Account) Block() {
	a.Status = AccountStatusBlocked
}

// Verify marks the account as verified and lifts any block.
func (a *Account) Verify() {
	a.Verified = true
	a.Status = AccountStatusActive
}

// Clone returns a deep copy of the account and its profile.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	if a.Buyer != nil {
		buyer := *a.Buyer
		if a.Buyer.DateOfBirth != nil {
			dob := *a.Buyer.DateOfBirth
			buyer.DateOfBirth = &dob
		}
		cp.Buyer = &buyer
	}
	if a.Seller != nil {
		seller := *a.Seller
		cp.Seller = &seller
	}

	return &cp
}
