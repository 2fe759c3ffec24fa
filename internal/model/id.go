package model

import "github.com/google/uuid"

// NewID returns a new random v4 identifier.
func NewID() uuid.UUID {
	return uuid.New()
}

// ParseID parses the canonical string form of an identifier.
func ParseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, NewError(KindInvalidArguments, "invalid id", err)
	}
	return id, nil
}
