package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey            string `mapstructure:"secret_key"`
		Algorithm            string `mapstructure:"algorithm"`
		AccessExpireMinutes  int    `mapstructure:"access_expire_minutes"`
		RefreshExpireMinutes int    `mapstructure:"refresh_expire_minutes"`
	} `mapstructure:"jwt"`
	Media struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"media"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("jwt.algorithm", "HS256")
	viper.SetDefault("jwt.access_expire_minutes", 30)
	viper.SetDefault("jwt.refresh_expire_minutes", 10080)
	viper.SetDefault("media.dir", "media")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
