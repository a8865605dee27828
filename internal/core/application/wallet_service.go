package application

import (
	"context"
	"encoding/hex"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stacks-wallet/internal/core/domain"
	"github.com/tdex-network/stacks-wallet/pkg/wallet"
	"golang.org/x/sync/errgroup"
)

type WalletService interface {
	GenSeed(ctx context.Context) ([]string, error)
	InitWallet(
		ctx context.Context,
		name string,
		mnemonic []string,
		password string,
	) error
	UnlockWallet(ctx context.Context, name, password string) error
	LockWallet(ctx context.Context, name string) error
	ChangePassword(
		ctx context.Context,
		name, currentPassword, newPassword string,
	) error
	DeriveAccount(
		ctx context.Context,
		name string,
		index uint32,
	) (*AccountInfo, error)
	ListWallets(ctx context.Context) ([]WalletInfo, error)
	DeleteWallet(ctx context.Context, name, password string) error
}

// unlockedWallet guards a decrypted wallet, whose account cache is not safe
// for concurrent use.
type unlockedWallet struct {
	lock   *sync.Mutex
	wallet *wallet.Wallet
}

type walletService struct {
	vaultRepository domain.VaultRepository
	versions        addressVersions

	lock     *sync.RWMutex
	unlocked map[string]*unlockedWallet
}

func NewWalletService(
	vaultRepository domain.VaultRepository,
	network string,
) (WalletService, error) {
	versions, ok := versionsByNetwork[network]
	if !ok {
		return nil, ErrUnknownNetwork
	}

	return &walletService{
		vaultRepository: vaultRepository,
		versions:        versions,
		lock:            &sync.RWMutex{},
		unlocked:        make(map[string]*unlockedWallet),
	}, nil
}

func (w *walletService) GenSeed(_ context.Context) ([]string, error) {
	return wallet.NewMnemonic(wallet.NewMnemonicOpts{
		EntropySize: wallet.DefaultEntropySize,
	})
}

func (w *walletService) InitWallet(
	ctx context.Context,
	name string,
	mnemonic []string,
	password string,
) error {
	if _, err := w.vaultRepository.GetVault(ctx, name); err == nil {
		return ErrWalletAlreadyExists
	}

	hdWallet, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
	if err != nil {
		return err
	}

	encryptedKey, err := hdWallet.EncryptKey(password)
	if err != nil {
		return err
	}

	vault, err := domain.NewVault(name, encryptedKey)
	if err != nil {
		return err
	}

	if err := w.vaultRepository.AddVault(ctx, vault); err != nil {
		if errors.Is(err, domain.ErrVaultAlreadyExists) {
			return ErrWalletAlreadyExists
		}
		return err
	}

	log.WithField("wallet", name).Info("wallet created")
	return nil
}

func (w *walletService) UnlockWallet(
	ctx context.Context,
	name, password string,
) error {
	vault, err := w.getVault(ctx, name)
	if err != nil {
		return err
	}

	hdWallet, err := wallet.NewWalletFromEncryptedKey(password, vault.EncryptedKey)
	if err != nil {
		return err
	}

	if err := restoreAccounts(hdWallet, vault.AccountIndexes); err != nil {
		return err
	}

	w.lock.Lock()
	w.unlocked[name] = &unlockedWallet{
		lock:   &sync.Mutex{},
		wallet: hdWallet,
	}
	w.lock.Unlock()

	log.WithField("wallet", name).Infof(
		"wallet unlocked with %d accounts %v",
		hdWallet.AccountCount(), hdWallet.Indexes(),
	)
	return nil
}

func (w *walletService) LockWallet(ctx context.Context, name string) error {
	if _, err := w.getVault(ctx, name); err != nil {
		return err
	}

	w.lock.Lock()
	delete(w.unlocked, name)
	w.lock.Unlock()

	log.WithField("wallet", name).Info("wallet locked")
	return nil
}

func (w *walletService) ChangePassword(
	ctx context.Context,
	name, currentPassword, newPassword string,
) error {
	if err := w.vaultRepository.UpdateVault(
		ctx,
		name,
		func(v *domain.Vault) (*domain.Vault, error) {
			hdWallet, err := wallet.NewWalletFromEncryptedKey(
				currentPassword, v.EncryptedKey,
			)
			if err != nil {
				return nil, err
			}
			encryptedKey, err := hdWallet.EncryptKey(newPassword)
			if err != nil {
				return nil, err
			}
			if err := v.SetEncryptedKey(encryptedKey); err != nil {
				return nil, err
			}
			return v, nil
		},
	); err != nil {
		if errors.Is(err, domain.ErrVaultNotFound) {
			return ErrWalletNotFound
		}
		return err
	}

	log.WithField("wallet", name).Info("password changed")
	return nil
}

// DeriveAccount returns the account at the given index of an unlocked wallet.
// Accounts not yet recorded in the vault are derived, recorded and only then
// cached, so that the cache never holds an index the vault doesn't know.
func (w *walletService) DeriveAccount(
	ctx context.Context,
	name string,
	index uint32,
) (*AccountInfo, error) {
	w.lock.RLock()
	unlocked, ok := w.unlocked[name]
	w.lock.RUnlock()

	vault, err := w.getVault(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWalletLocked
	}

	unlocked.lock.Lock()
	defer unlocked.lock.Unlock()

	if vault.HasAccountIndex(index) {
		account, err := unlocked.wallet.GetAccount(index)
		if err != nil {
			return nil, err
		}
		return w.accountInfo(account)
	}

	account, err := unlocked.wallet.DeriveAccount(index)
	if err != nil {
		return nil, err
	}
	info, err := w.accountInfo(account)
	if err != nil {
		return nil, err
	}

	if err := w.vaultRepository.UpdateVault(
		ctx,
		name,
		func(v *domain.Vault) (*domain.Vault, error) {
			v.AddAccountIndex(index)
			return v, nil
		},
	); err != nil {
		if errors.Is(err, domain.ErrVaultNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	unlocked.wallet.SetAccount(index, account)

	log.WithField("wallet", name).Debugf("derived account %d", index)
	return info, nil
}

// DeleteWallet removes the vault of the wallet once the password is proven
// to open it.
func (w *walletService) DeleteWallet(
	ctx context.Context,
	name, password string,
) error {
	vault, err := w.getVault(ctx, name)
	if err != nil {
		return err
	}
	if _, err := wallet.NewWalletFromEncryptedKey(
		password, vault.EncryptedKey,
	); err != nil {
		return err
	}

	if err := w.vaultRepository.DeleteVault(ctx, name); err != nil {
		if errors.Is(err, domain.ErrVaultNotFound) {
			return ErrWalletNotFound
		}
		return err
	}

	w.lock.Lock()
	delete(w.unlocked, name)
	w.lock.Unlock()

	log.WithField("wallet", name).Info("wallet deleted")
	return nil
}

func (w *walletService) ListWallets(ctx context.Context) ([]WalletInfo, error) {
	vaults, err := w.vaultRepository.ListVaults(ctx)
	if err != nil {
		return nil, err
	}

	w.lock.RLock()
	defer w.lock.RUnlock()

	info := make([]WalletInfo, 0, len(vaults))
	for _, v := range vaults {
		_, unlocked := w.unlocked[v.Name]
		info = append(info, WalletInfo{
			ID:           v.ID,
			Name:         v.Name,
			Unlocked:     unlocked,
			AccountCount: len(v.AccountIndexes),
			CreatedAt:    v.CreatedAt,
		})
	}
	return info, nil
}

func (w *walletService) getVault(
	ctx context.Context,
	name string,
) (*domain.Vault, error) {
	vault, err := w.vaultRepository.GetVault(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrVaultNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return vault, nil
}

func (w *walletService) accountInfo(account wallet.Account) (*AccountInfo, error) {
	address, err := account.Address(w.versions.singleSig)
	if err != nil {
		return nil, err
	}
	scriptAddress, err := account.Address(w.versions.script)
	if err != nil {
		return nil, err
	}

	return &AccountInfo{
		Index:         account.Index(),
		PublicKey:     hex.EncodeToString(account.PublicKeyBytes()),
		Address:       address,
		ScriptAddress: scriptAddress,
	}, nil
}

// restoreAccounts derives the given accounts concurrently and fills the
// wallet cache with them.
func restoreAccounts(hdWallet *wallet.Wallet, indexes []uint32) error {
	accounts := make([]wallet.Account, len(indexes))

	eg := &errgroup.Group{}
	for i, index := range indexes {
		i, index := i, index
		eg.Go(func() error {
			account, err := hdWallet.DeriveAccount(index)
			if err != nil {
				return err
			}
			accounts[i] = account
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, index := range indexes {
		hdWallet.SetAccount(index, accounts[i])
	}
	return nil
}
