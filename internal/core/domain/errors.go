package domain

import "errors"

var (
	// ErrVaultNullName ...
	ErrVaultNullName = errors.New("vault name must not be null")
	// ErrVaultInvalidEncryptedKey ...
	ErrVaultInvalidEncryptedKey = errors.New("vault encrypted key is too short")
	// ErrVaultNotFound is returned by repositories for unknown vault names.
	ErrVaultNotFound = errors.New("vault not found")
	// ErrVaultAlreadyExists is returned by repositories when adding a vault
	// whose name is already taken.
	ErrVaultAlreadyExists = errors.New("vault already exists")
)
