package application

import "github.com/tdex-network/stacks-wallet/pkg/wallet"

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

type addressVersions struct {
	singleSig wallet.AddressVersion
	script    wallet.AddressVersion
}

var versionsByNetwork = map[string]addressVersions{
	NetworkMainnet: {wallet.MainnetP2PKH, wallet.MainnetP2SH},
	NetworkTestnet: {wallet.TestnetP2PKH, wallet.TestnetP2SH},
}

// AccountInfo contains the public info of a derived account.
type AccountInfo struct {
	Index         uint32 `json:"index"`
	PublicKey     string `json:"public_key"`
	Address       string `json:"address"`
	ScriptAddress string `json:"script_address"`
}

// WalletInfo summarizes a stored wallet.
type WalletInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Unlocked     bool   `json:"unlocked"`
	AccountCount int    `json:"account_count"`
	CreatedAt    int64  `json:"created_at"`
}
