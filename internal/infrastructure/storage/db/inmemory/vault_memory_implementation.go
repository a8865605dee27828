package inmemory

import (
	"context"
	"sort"

	"github.com/tdex-network/stacks-wallet/internal/core/domain"
)

// VaultRepositoryImpl represents an in memory storage
type VaultRepositoryImpl struct {
	store *vaultInmemoryStore
}

// NewVaultRepositoryImpl returns a new empty VaultRepositoryImpl
func NewVaultRepositoryImpl(store *vaultInmemoryStore) domain.VaultRepository {
	return &VaultRepositoryImpl{store}
}

func (r VaultRepositoryImpl) AddVault(
	_ context.Context,
	vault *domain.Vault,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.vaults[vault.Name]; ok {
		return domain.ErrVaultAlreadyExists
	}
	r.store.vaults[vault.Name] = copyVault(*vault)
	return nil
}

func (r VaultRepositoryImpl) GetVault(
	_ context.Context,
	name string,
) (*domain.Vault, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	vault, ok := r.store.vaults[name]
	if !ok {
		return nil, domain.ErrVaultNotFound
	}
	v := copyVault(vault)
	return &v, nil
}

// UpdateVault updates data to the Vault passing an update function
func (r VaultRepositoryImpl) UpdateVault(
	_ context.Context,
	name string,
	updateFn func(*domain.Vault) (*domain.Vault, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	vault, ok := r.store.vaults[name]
	if !ok {
		return domain.ErrVaultNotFound
	}

	v := copyVault(vault)
	updatedVault, err := updateFn(&v)
	if err != nil {
		return err
	}

	r.store.vaults[name] = copyVault(*updatedVault)
	return nil
}

func (r VaultRepositoryImpl) ListVaults(_ context.Context) ([]domain.Vault, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	vaults := make([]domain.Vault, 0, len(r.store.vaults))
	for _, v := range r.store.vaults {
		vaults = append(vaults, copyVault(v))
	}
	sort.Slice(vaults, func(i, j int) bool {
		return vaults[i].Name < vaults[j].Name
	})
	return vaults, nil
}

func (r VaultRepositoryImpl) DeleteVault(_ context.Context, name string) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.vaults[name]; !ok {
		return domain.ErrVaultNotFound
	}
	delete(r.store.vaults, name)
	return nil
}

// copyVault detaches the stored vault from the slices held by callers.
func copyVault(v domain.Vault) domain.Vault {
	v.EncryptedKey = append([]byte{}, v.EncryptedKey...)
	v.AccountIndexes = append([]uint32{}, v.AccountIndexes...)
	return v
}
