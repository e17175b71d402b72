package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Pricing holds the monthly fee tiers in euros. A recurring class whose
	// name contains "express" counts as the discounted express variant.
	Pricing struct {
		Single        float64
		SingleExpress float64
		Double        float64
		DoubleExpress float64
	}

	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		WorkDir  string

		Server struct {
			Host string
			Port string
		}

		Database struct {
			Path string
		}

		Pricing Pricing

		DefaultFromEmail mail.Address
		EmailEnabled     bool
		SendgridAPIKey   string

		RollbarToken string
	}
)

func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// Conf is read once at startup via NewConfig and treated as read-only afterwards.
var Conf *Config

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "NuraYoga")
	v.SetDefault("serverHost", "127.0.0.1")
	v.SetDefault("serverPort", "8080")
	v.SetDefault("databasePath", "nurayoga.db")
	v.SetDefault("priceSingle", 40.0)
	v.SetDefault("priceSingleExpress", 30.0)
	v.SetDefault("priceDouble", 70.0)
	v.SetDefault("priceDoubleExpress", 60.0)
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("emailEnabled", false)
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	wd := getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:      env,
		Debug:    v.GetBool("debug"),
		TestMode: v.GetBool("testMode"),
		AppName:  v.GetString("appName"),
		WorkDir:  wd,
		Pricing: Pricing{
			Single:        v.GetFloat64("priceSingle"),
			SingleExpress: v.GetFloat64("priceSingleExpress"),
			Double:        v.GetFloat64("priceDouble"),
			DoubleExpress: v.GetFloat64("priceDoubleExpress"),
		},
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		EmailEnabled:     v.GetBool("emailEnabled"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Port = v.GetString("serverPort")
	conf.Database.Path = v.GetString("databasePath")
	return conf
}

func getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	return wd
}
