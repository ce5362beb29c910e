package valueobject

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,19}$`)

// CustomerInfo identifies the seller of a device.
type CustomerInfo struct {
	Name  string
	Phone string
	Email string
}

// NewCustomerInfo requires a name and a plausible phone number; email is
// optional but must parse when present.
func NewCustomerInfo(name, phone, email string) (CustomerInfo, error) {
	c := CustomerInfo{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}
	if c.Name == "" {
		return CustomerInfo{}, domainerr.Validation("customer.name", "is required")
	}
	if c.Phone == "" {
		return CustomerInfo{}, domainerr.Validation("customer.phone", "is required")
	}
	if !phoneRe.MatchString(c.Phone) {
		return CustomerInfo{}, domainerr.Validation("customer.phone", "is not a valid phone number")
	}
	if c.Email != "" {
		addr, err := mail.ParseAddress(c.Email)
		if err != nil || addr.Address != c.Email {
			return CustomerInfo{}, domainerr.Validation("customer.email", "is not a valid email address")
		}
	}
	return c, nil
}
