package main

import (
	"errors"
	"runtime"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the credentials and tunables read from the environment
// or from an optional config file
type Config struct {
	TCGPublicId       string `mapstructure:"tcgplayer_public_id"`
	TCGPrivateId      string `mapstructure:"tcgplayer_private_id"`
	TCGPartner        string `mapstructure:"tcg_partner"`
	MaxConcurrency    int    `mapstructure:"max_concurrency"`
	GCSServiceAccount string `mapstructure:"gcs_svc_acc"`
	B2KeyId           string `mapstructure:"b2_key_id"`
	B2AppKey          string `mapstructure:"b2_app_key"`
}

var configKeys = []string{
	"tcgplayer_public_id",
	"tcgplayer_private_id",
	"tcg_partner",
	"max_concurrency",
	"gcs_svc_acc",
	"b2_key_id",
	"b2_app_key",
}

func loadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("skynet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("max_concurrency", runtime.NumCPU())
	v.AutomaticEnv()

	// Needed for Unmarshal to see variables that are only in the environment
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	var zapConfig zap.Config
	if debug {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return zapConfig.Build()
}
