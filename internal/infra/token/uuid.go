package token

import (
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
)

const GuestPrefix = "guest_"

// UUIDGenerator issues guest management tokens backed by random (v4) UUIDs.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewOpaqueToken() string {
	return GuestPrefix + uuid.NewString()
}

var _ domain.TokenGenerator = UUIDGenerator{}
