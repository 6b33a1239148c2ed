package config

import "github.com/spf13/viper"

/*SmartContractConfig - the configuration for the smart contracts */
var SmartContractConfig *viper.Viper

func init() {
	SmartContractConfig = viper.New()
	SetupDefaultConfig()
}

//SetupDefaultConfig - setup the default config options that can be overridden via the config file
func SetupDefaultConfig() {
	SmartContractConfig.SetDefault("smart_contracts.farmsc.owner_id", "")
	SmartContractConfig.SetDefault("smart_contracts.farmsc.stake_token", "")
	SmartContractConfig.SetDefault("smart_contracts.farmsc.reward_token", "")
	SmartContractConfig.SetDefault("smart_contracts.farmsc.reward_rate", int64(0))
	SmartContractConfig.SetDefault("smart_contracts.farmsc.farming_start", int64(0))
	SmartContractConfig.SetDefault("smart_contracts.farmsc.farming_end", int64(0))
	SmartContractConfig.SetDefault("smart_contracts.farmsc.max_stake", int64(0))
	SmartContractConfig.SetDefault("smart_contracts.farmsc.min_storage_deposit", int64(0))
}

//SetupSmartContractConfig - setup the smart contract configuration system
func SetupSmartContractConfig(configDir string) {
	SmartContractConfig.AddConfigPath(configDir)
	SmartContractConfig.SetConfigName("sc")
	SmartContractConfig.ReadInConfig() //nolint:errcheck
}
