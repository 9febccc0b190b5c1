package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all process-wide configuration. It is built once at startup
// and passed by reference; it must not be mutated afterwards.
type Config struct {
	Debug            bool
	TestMode         bool
	Env              string // DEV (default), TEST, QA, PROD
	Build            string
	AppName          string
	SecretKey        []byte
	WorkDir          string
	DefaultFromEmail mail.Address
	RollbarToken     string

	Server struct {
		Host               string
		Addr               string
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}
	Database struct {
		URI  string
		Name string
	}
	Sendgrid struct {
		APIKey string
	}
	Twilio struct {
		AccountSID string
		AuthToken  string
		FromPhone  string
	}
}

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and environment variables prefixed with the current ENV.
func NewConfig(workDir string) *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Mahudhurio")
	v.SetDefault("secretKey", "w3+u$ro)5kx^dh#0d-e&q=1zz(yf*e$kmw&2-#dm4=kkh7&yp%")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("shutdownTimeout", 20*time.Second)
	v.SetDefault("databaseUri", "mongodb://localhost:27017")
	v.SetDefault("databaseName", "mahudhurio")

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        []byte(v.GetString("secretKey")),
		WorkDir:          workDir,
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		RollbarToken:     v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	conf.Database.URI = v.GetString("databaseUri")
	conf.Database.Name = v.GetString("databaseName")
	conf.Sendgrid.APIKey = v.GetString("sendgridApiKey")
	conf.Twilio.AccountSID = v.GetString("twilioAccountSid")
	conf.Twilio.AuthToken = v.GetString("twilioAuthToken")
	conf.Twilio.FromPhone = v.GetString("twilioPhoneNumber")
	return conf
}
