package domain

import "context"

// VaultRepository is the abstraction for any kind of database intended to
// persist Vaults, identified by their unique name.
type VaultRepository interface {
	// AddVault stores a new vault. Fails with ErrVaultAlreadyExists if the
	// name is taken.
	AddVault(ctx context.Context, vault *Vault) error
	// GetVault returns the vault with the given name or ErrVaultNotFound.
	GetVault(ctx context.Context, name string) (*Vault, error)
	// UpdateVault applies updateFn to the stored vault and persists the
	// result. Nothing is written if updateFn fails.
	UpdateVault(
		ctx context.Context,
		name string,
		updateFn func(v *Vault) (*Vault, error),
	) error
	// ListVaults returns all the stored vaults.
	ListVaults(ctx context.Context) ([]Vault, error)
	// DeleteVault removes the vault with the given name.
	DeleteVault(ctx context.Context, name string) error
}
