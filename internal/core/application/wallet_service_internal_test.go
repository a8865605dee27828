package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stacks-wallet/internal/core/domain"
	"github.com/tdex-network/stacks-wallet/internal/infrastructure/storage/db/inmemory"
)

var errUpdateVault = errors.New("update vault failed")

// failingVaultRepository fails every UpdateVault call while failUpdates is set.
type failingVaultRepository struct {
	domain.VaultRepository
	failUpdates bool
}

func (r *failingVaultRepository) UpdateVault(
	ctx context.Context,
	name string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	if r.failUpdates {
		return errUpdateVault
	}
	return r.VaultRepository.UpdateVault(ctx, name, updateFn)
}

func TestDeriveAccountDoesNotCacheUnrecordedIndex(t *testing.T) {
	ctx := context.Background()
	mnemonic := strings.Fields(
		"sound idle panel often situate develop unit text design antenna vendor " +
			"screen opinion balcony share trigger accuse scatter visa uniform brass " +
			"update opinion media",
	)

	repo := &failingVaultRepository{
		VaultRepository: inmemory.NewRepoManager().VaultRepository(),
	}
	svc, err := NewWalletService(repo, NetworkMainnet)
	require.NoError(t, err)

	require.NoError(t, svc.InitWallet(ctx, "main", mnemonic, "pwd"))
	require.NoError(t, svc.UnlockWallet(ctx, "main", "pwd"))

	repo.failUpdates = true
	_, err = svc.DeriveAccount(ctx, "main", 4)
	assert.ErrorIs(t, err, errUpdateVault)

	unlocked := svc.(*walletService).unlocked["main"]
	assert.Zero(t, unlocked.wallet.AccountCount())

	vault, err := repo.GetVault(ctx, "main")
	require.NoError(t, err)
	assert.Empty(t, vault.AccountIndexes)

	repo.failUpdates = false
	info, err := svc.DeriveAccount(ctx, "main", 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), info.Index)
	assert.Equal(t, []uint32{4}, unlocked.wallet.Indexes())

	vault, err = repo.GetVault(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, []uint32{4}, vault.AccountIndexes)
}
