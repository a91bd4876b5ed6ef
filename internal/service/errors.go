package service

import (
	"errors"
	"fmt"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"gorm.io/gorm"
)

// notFound converts gorm.ErrRecordNotFound into common.ErrNotFound naming what was missing
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s not found", common.ErrNotFound, what)
	}
	return err
}
