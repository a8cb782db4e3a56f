// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// EntityType identifies one synchronizable record collection.
//
// The set is closed: every variant maps to exactly one backing table and one
// plural collection key used on the wire. Adding a synchronizable type means
// adding a constant here and a case to each switch below.
type EntityType string

const (
	EntityPatient      EntityType = "patient"
	EntityPregnancy    EntityType = "pregnancy"
	EntityVisit        EntityType = "visit"
	EntityAlert        EntityType = "alert"
	EntityStaff        EntityType = "staff"
	EntityFacility     EntityType = "facility"
	EntityMunicipality EntityType = "municipality"
)

// AllEntityTypes returns every known entity type in a stable order.
// Pull uses it when the caller does not restrict the requested types.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityPatient,
		EntityPregnancy,
		EntityVisit,
		EntityAlert,
		EntityStaff,
		EntityFacility,
		EntityMunicipality,
	}
}

// String returns the singular wire name of the type.
func (t EntityType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known variants.
func (t EntityType) Valid() bool {
	return t.Table() != ""
}

// Plural returns the collection key used in pull responses.
func (t EntityType) Plural() string {
	switch t {
	case EntityPatient:
		return "patients"
	case EntityPregnancy:
		return "pregnancies"
	case EntityVisit:
		return "visits"
	case EntityAlert:
		return "alerts"
	case EntityStaff:
		return "staff"
	case EntityFacility:
		return "facilities"
	case EntityMunicipality:
		return "municipalities"
	default:
		return ""
	}
}

// Table returns the name of the backing table holding records of type t,
// or an empty string for unknown types.
func (t EntityType) Table() string {
	switch t {
	case EntityPatient:
		return "patients"
	case EntityPregnancy:
		return "pregnancies"
	case EntityVisit:
		return "visits"
	case EntityAlert:
		return "alerts"
	case EntityStaff:
		return "staff"
	case EntityFacility:
		return "facilities"
	case EntityMunicipality:
		return "municipalities"
	default:
		return ""
	}
}

// ParseEntityType resolves a singular or plural wire name into an [EntityType].
// Matching is case-insensitive.
func ParseEntityType(s string) (EntityType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllEntityTypes() {
		if name == t.String() || name == t.Plural() {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}
