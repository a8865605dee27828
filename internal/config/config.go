package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory where the wallet vaults are stored
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey selects the address versions used to render accounts: either
	// mainnet or testnet
	NetworkKey = "NETWORK"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"

	DbLocation = "db"

	DBTypeBadger   = "badger"
	DBTypeInMemory = "inmemory"

	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

var (
	vip            *viper.Viper
	defaultDatadir = btcutil.AppDataDir("stacks-wallet", false)

	supportedDBTypes = map[string]bool{
		DBTypeBadger:   true,
		DBTypeInMemory: true,
	}
	supportedNetworks = map[string]bool{
		NetworkMainnet: true,
		NetworkTestnet: true,
	}
)

// InitConfig loads the STXW_ prefixed environment on top of the defaults,
// applies the given overrides, for example command line flags, and validates
// the result.
func InitConfig(overrides map[string]interface{}) error {
	vip = viper.New()
	vip.SetEnvPrefix("STXW")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NetworkKey, NetworkMainnet)
	vip.SetDefault(DBTypeKey, DBTypeBadger)

	for key, value := range overrides {
		vip.Set(key, value)
	}

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetNetwork() string {
	return GetString(NetworkKey)
}

func GetDBType() string {
	return GetString(DBTypeKey)
}

func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

// GetDbDir returns the directory of the badger store, empty for an in-memory
// one.
func GetDbDir() string {
	if GetDBType() == DBTypeInMemory {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if !supportedNetworks[GetNetwork()] {
		return fmt.Errorf(
			"%s must be either %s or %s", NetworkKey, NetworkMainnet, NetworkTestnet,
		)
	}

	if !supportedDBTypes[GetDBType()] {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, DBTypeBadger, DBTypeInMemory,
		)
	}

	level := GetInt(LogLevelKey)
	if level < int(log.PanicLevel) || level > int(log.TraceLevel) {
		return fmt.Errorf(
			"%s must be in range [%d, %d]",
			LogLevelKey, log.PanicLevel, log.TraceLevel,
		)
	}

	return nil
}

func initDatadir() error {
	if GetDBType() == DBTypeInMemory {
		return nil
	}
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
