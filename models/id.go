package models

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// assignID gives a record a nanoid unless the caller already chose one.
func assignID(id *string) error {
	if *id != "" {
		return nil
	}
	publicID, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate id: %w", err)
	}
	*id = publicID
	return nil
}
