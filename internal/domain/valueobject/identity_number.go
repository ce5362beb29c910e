package valueobject

import (
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
)

// IdentityNumberLength is the number of digits in a device identity (IMEI).
const IdentityNumberLength = 15

// IdentityNumber is a validated 15-digit device identity.
type IdentityNumber struct {
	value string
}

// NewIdentityNumber validates code and returns it as an IdentityNumber.
func NewIdentityNumber(code string) (IdentityNumber, error) {
	if err := ValidateIdentity(code); err != nil {
		return IdentityNumber{}, err
	}
	return IdentityNumber{value: code}, nil
}

// ValidateIdentity checks that code is 15 ASCII digits whose last digit is
// the doubling checksum of the first 14. It returns ErrInvalidFormat or
// ErrChecksumMismatch.
func ValidateIdentity(code string) error {
	if len(code) != IdentityNumberLength {
		return domainerr.ErrInvalidFormat
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return domainerr.ErrInvalidFormat
		}
	}
	if int(code[IdentityNumberLength-1]-'0') != identityCheckDigit(code[:IdentityNumberLength-1]) {
		return domainerr.ErrChecksumMismatch
	}
	return nil
}

// identityCheckDigit doubles every odd-indexed digit, folding results above 9.
func identityCheckDigit(body string) int {
	sum := 0
	for i := 0; i < len(body); i++ {
		d := int(body[i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

func (n IdentityNumber) String() string { return n.value }
func (n IdentityNumber) IsZero() bool   { return n.value == "" }

// ReconstructIdentityNumber wraps a stored value without validation.
func ReconstructIdentityNumber(value string) IdentityNumber {
	return IdentityNumber{value: value}
}
