package utils

import "github.com/google/uuid"

// CreateToken returns an opaque token wide enough for refresh-token use.
// Two v4 UUIDs back to back, no separator.
func CreateToken() string {
	first, err := uuid.NewRandom()
	if err != nil {
		return ""
	}
	second, err := uuid.NewRandom()
	if err != nil {
		return ""
	}
	return first.String() + second.String()
}
