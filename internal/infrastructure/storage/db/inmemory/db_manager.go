package inmemory

import (
	"sync"

	"github.com/tdex-network/stacks-wallet/internal/core/domain"
	"github.com/tdex-network/stacks-wallet/internal/core/ports"
)

type vaultInmemoryStore struct {
	vaults map[string]domain.Vault
	locker *sync.Mutex
}

type RepoManager struct {
	vaultRepository domain.VaultRepository
}

func NewRepoManager() ports.RepoManager {
	vaultStore := &vaultInmemoryStore{
		vaults: map[string]domain.Vault{},
		locker: &sync.Mutex{},
	}

	return &RepoManager{
		vaultRepository: NewVaultRepositoryImpl(vaultStore),
	}
}

func (d *RepoManager) VaultRepository() domain.VaultRepository {
	return d.vaultRepository
}

func (d *RepoManager) Close() {}
