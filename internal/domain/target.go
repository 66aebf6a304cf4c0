package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownKind = errors.New("unknown favorite kind")

// ParseKind accepts the singular or plural path segment, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "people" {
		return KindCharacter, nil
	}
	for _, k := range Kinds {
		if name == string(k) || name == string(k)+"s" {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Label is the capitalised name used in client messages.
func (k Kind) Label() string {
	switch k {
	case KindPlanet:
		return "Planet"
	case KindCharacter:
		return "Character"
	case KindVehicle:
		return "Vehicle"
	}
	return string(k)
}

// Column is the favorite column holding ids of this kind.
func (k Kind) Column() string {
	return string(k) + "_id"
}

func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// Target is the one entity a favorite refers to.
type Target struct {
	Kind Kind
	ID   uint
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}
