package ports

import (
	"github.com/tdex-network/stacks-wallet/internal/core/domain"
)

// RepoManager interface defines the methods for accessing the repositories
// and releasing the underlying storage.
type RepoManager interface {
	VaultRepository() domain.VaultRepository

	Close()
}
