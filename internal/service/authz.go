package service

import (
	"errors"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// verifyOwnership gates mutating operations: only the resource owner may
// update or delete it.
func verifyOwnership(actorID, ownerID uint, action string) error {
	if actorID != ownerID {
		return models.NewForbiddenError("You can only " + action + " your own content")
	}
	return nil
}

// translateNotFound converts the repository's record-not-found sentinel into
// the application error carrying the resource name and id. Other errors pass
// through untouched.
func translateNotFound(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}
