package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	App struct {
		Name string `mapstructure:"NAME"`
		Port string `mapstructure:"PORT"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"URL"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
		Mongo struct {
			Url      string `mapstructure:"URL"`
			Database string `mapstructure:"DATABASE"`
		}
	}

	JWT struct {
		PublicKeyPath string `mapstructure:"PUBLIC_KEY_PATH"`
	}

	ARCHIVE struct {
		Workers int `mapstructure:"WORKERS"`
	}
}

var Conf *AppConfig

func LoadConfig() error {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("LIVESTREAM")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("JWT.PUBLIC_KEY_PATH", "public.pem")
	viper.SetDefault("ARCHIVE.WORKERS", 3)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	Conf = &config
	log.Info().Msg("configuration loaded...")
	return nil
}
