package dbbadger

import (
	"errors"

	"github.com/tdex-network/stacks-wallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

// translateError maps badgerhold errors to the ones of the domain repository
// contract.
func translateError(err error) error {
	switch {
	case errors.Is(err, badgerhold.ErrNotFound):
		return domain.ErrVaultNotFound
	case errors.Is(err, badgerhold.ErrKeyExists):
		return domain.ErrVaultAlreadyExists
	default:
		return err
	}
}
