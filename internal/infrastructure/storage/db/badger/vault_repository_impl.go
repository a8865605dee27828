package dbbadger

import (
	"context"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/stacks-wallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type vaultRepositoryImpl struct {
	store *badgerhold.Store
}

// NewVaultRepositoryImpl returns a domain.VaultRepository backed by the
// given badgerhold store.
func NewVaultRepositoryImpl(store *badgerhold.Store) domain.VaultRepository {
	return vaultRepositoryImpl{store}
}

func (v vaultRepositoryImpl) AddVault(
	_ context.Context,
	vault *domain.Vault,
) error {
	if err := v.store.Insert(vault.Name, *vault); err != nil {
		return translateError(err)
	}
	return nil
}

func (v vaultRepositoryImpl) GetVault(
	_ context.Context,
	name string,
) (*domain.Vault, error) {
	var vault domain.Vault
	if err := v.store.Get(name, &vault); err != nil {
		return nil, translateError(err)
	}
	return &vault, nil
}

func (v vaultRepositoryImpl) UpdateVault(
	_ context.Context,
	name string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	return v.store.Badger().Update(func(tx *badger.Txn) error {
		var vault domain.Vault
		if err := v.store.TxGet(tx, name, &vault); err != nil {
			return translateError(err)
		}

		updatedVault, err := updateFn(&vault)
		if err != nil {
			return err
		}

		return v.store.TxUpdate(tx, name, *updatedVault)
	})
}

func (v vaultRepositoryImpl) ListVaults(_ context.Context) ([]domain.Vault, error) {
	var vaults []domain.Vault
	if err := v.store.Find(&vaults, nil); err != nil {
		return nil, err
	}
	sort.Slice(vaults, func(i, j int) bool {
		return vaults[i].Name < vaults[j].Name
	})
	return vaults, nil
}

func (v vaultRepositoryImpl) DeleteVault(_ context.Context, name string) error {
	if err := v.store.Delete(name, domain.Vault{}); err != nil {
		return translateError(err)
	}
	return nil
}
