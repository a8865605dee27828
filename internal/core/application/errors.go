package application

import "errors"

var (
	// ErrWalletNotFound is returned for operations on an unknown wallet name.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletAlreadyExists is returned by InitWallet if the name is taken.
	ErrWalletAlreadyExists = errors.New("wallet already exists")
	// ErrWalletLocked is returned when deriving accounts of a locked wallet.
	ErrWalletLocked = errors.New("wallet is locked")
	// ErrUnknownNetwork ...
	ErrUnknownNetwork = errors.New("network must be either mainnet or testnet")
)
