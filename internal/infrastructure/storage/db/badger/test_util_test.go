package dbbadger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stacks-wallet/internal/core/domain"
)

func newTestRepository(t *testing.T, dir string) domain.VaultRepository {
	t.Helper()

	repoManager, err := NewRepoManager(dir, nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	return repoManager.VaultRepository()
}
