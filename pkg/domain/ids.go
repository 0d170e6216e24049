// Package domain provides typed identifiers used across the classification
// subsystem. Each ID is a distinct type over uuid.UUID so a contractor ID can
// never be passed where an assessment ID is expected.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// UUID re-exports the underlying type for call sites that need conversions.
type UUID = uuid.UUID

// Nil is the zero UUID.
var Nil = uuid.Nil

type (
	// ContractorID identifies a contractor.
	ContractorID uuid.UUID

	// OrganizationID identifies the organization a contractor works for.
	OrganizationID uuid.UUID

	// EngagementID identifies a single client engagement.
	EngagementID uuid.UUID

	// FactorID identifies an immutable factor observation.
	FactorID uuid.UUID

	// AssessmentID identifies an immutable assessment snapshot.
	AssessmentID uuid.UUID
)

// New returns a fresh random UUID.
func New() uuid.UUID {
	return uuid.New()
}

// NewString returns a fresh random UUID in string form.
func NewString() string {
	return uuid.NewString()
}

// Parse parses a UUID string.
func Parse(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

func (id ContractorID) String() string   { return uuid.UUID(id).String() }
func (id OrganizationID) String() string { return uuid.UUID(id).String() }
func (id EngagementID) String() string   { return uuid.UUID(id).String() }
func (id FactorID) String() string       { return uuid.UUID(id).String() }
func (id AssessmentID) String() string   { return uuid.UUID(id).String() }

func (id ContractorID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id OrganizationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EngagementID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id FactorID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id AssessmentID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// ParseContractorID validates and returns a ContractorID.
func ParseContractorID(s string) (ContractorID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ContractorID{}, fmt.Errorf("invalid contractor id: %w", err)
	}
	return ContractorID(u), nil
}

// ParseOrganizationID validates and returns an OrganizationID.
func ParseOrganizationID(s string) (OrganizationID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return OrganizationID{}, fmt.Errorf("invalid organization id: %w", err)
	}
	return OrganizationID(u), nil
}

// MarshalText implements encoding.TextMarshaler so IDs serialize as plain
// UUID strings in JSON payloads.
func (id ContractorID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ContractorID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = ContractorID(u)
	return nil
}

func (id OrganizationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *OrganizationID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = OrganizationID(u)
	return nil
}

func (id EngagementID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *EngagementID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = EngagementID(u)
	return nil
}

func (id FactorID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *FactorID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = FactorID(u)
	return nil
}

func (id AssessmentID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *AssessmentID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = AssessmentID(u)
	return nil
}
