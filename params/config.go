package params

import (
	"encoding/json"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/tourze/tron-api/common"
	"github.com/tourze/tron-api/log"
)

var (
	sdkConfig         *SDKConfig
	loadConfigStarter sync.Once
)

// SDKConfig config items (decode from toml file)
type SDKConfig struct {
	Identifier string
	Gateway    *GatewayConfig
	Tx         *TxConfig  `toml:",omitempty" json:",omitempty"`
	Log        *LogConfig `toml:",omitempty" json:",omitempty"`
}

// GatewayConfig full node gateway config
type GatewayConfig struct {
	APIAddress     []string
	TimeoutSeconds uint64 `toml:",omitempty" json:",omitempty"`
}

// TxConfig transaction building defaults
type TxConfig struct {
	DefaultFeeLimit int64 `toml:",omitempty" json:",omitempty"`
	TxLifetime      int64 `toml:",omitempty" json:",omitempty"`
}

// LogConfig log config
type LogConfig struct {
	Level      string `toml:",omitempty" json:",omitempty"`
	JSONFormat bool   `toml:",omitempty" json:",omitempty"`
	ColorFlag  bool   `toml:",omitempty" json:",omitempty"`
}

// GetConfig get sdk config
func GetConfig() *SDKConfig {
	return sdkConfig
}

// SetConfig set sdk config
func SetConfig(config *SDKConfig) {
	sdkConfig = config
}

// GetIdentifier get identifier (to distinguish networks in logs)
func GetIdentifier() string {
	return GetConfig().Identifier
}

// GetGatewayConfig get gateway config
func GetGatewayConfig() *GatewayConfig {
	return GetConfig().Gateway
}

// GetDefaultFeeLimit get the configured default fee limit,
// falling back to the network ceiling
func GetDefaultFeeLimit() int64 {
	txcfg := GetConfig().Tx
	if txcfg == nil || txcfg.DefaultFeeLimit == 0 {
		return MaxFeeLimit
	}
	return txcfg.DefaultFeeLimit
}

// GetTxLifetime get the configured transaction lifetime in milliseconds
func GetTxLifetime() int64 {
	txcfg := GetConfig().Tx
	if txcfg == nil || txcfg.TxLifetime == 0 {
		return DefaultTxLifetime
	}
	return txcfg.TxLifetime
}

// LoadConfig load config
func LoadConfig(configFile string) *SDKConfig {
	loadConfigStarter.Do(func() {
		if configFile == "" {
			log.Fatalf("LoadConfig error: no config file specified")
		}
		log.Println("Config file is", configFile)
		if !common.FileExist(configFile) {
			log.Fatalf("LoadConfig error: config file %v not exist", configFile)
		}
		config := &SDKConfig{}
		if _, err := toml.DecodeFile(configFile, &config); err != nil {
			log.Fatalf("LoadConfig error (toml DecodeFile): %v", err)
		}

		SetConfig(config)
		var bs []byte
		if log.JSONFormat {
			bs, _ = json.Marshal(config)
		} else {
			bs, _ = json.MarshalIndent(config, "", "  ")
		}
		log.Println("LoadConfig finished.", string(bs))
		if err := CheckConfig(); err != nil {
			log.Fatalf("Check config failed. %v", err)
		}
		if config.Log != nil {
			log.SetLogger(uint32(logrus.InfoLevel), config.Log.JSONFormat, config.Log.ColorFlag)
			if config.Log.Level != "" {
				log.SetLevelString(config.Log.Level)
			}
		}
		log.Info("Check config success", "configFile", configFile)
	})
	return sdkConfig
}
