package testutil

import (
	"github.com/google/uuid"
)

// Deterministic fixtures shared across packages.
var (
	TestUserID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestUserID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

const (
	TestShopID = "kampala-1"

	// ValidIdentity passes the 15-digit check digit test; InvalidIdentity
	// differs from it only in the check digit.
	ValidIdentity   = "490154203237518"
	InvalidIdentity = "490154203237519"
	OtherIdentity   = "356938035643809"
)
