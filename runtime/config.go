package runtime

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem the config loader reads from; tests swap it for a
// memory-backed one.
var AppFs = afero.NewOsFs()

// configFile is the optional config file read from the working directory.
const configFile = "sequel.yaml"

// Config holds connection configuration.
type Config struct {
	// Dialect selects the backend: postgres, mysql or sqlite.
	Dialect string

	// DSN is the driver-specific connection string.
	DSN string

	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration

	// Debug enables statement logging on executors opened from this
	// configuration.
	Debug bool
}

// DefaultConfig returns the default connection configuration.
func DefaultConfig() *Config {
	return &Config{
		Dialect:            "postgres",
		MaxConnections:     25,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}
}

// LoadConfig layers configuration from defaults, an optional sequel.yaml
// file and the SEQUEL-prefixed environment, with the environment winning.
// A .env file in the working directory is folded into the environment
// before resolution.
func LoadConfig() (*Config, error) {
	if _, err := AppFs.Stat(".env"); err == nil {
		// A broken .env file is not fatal; the environment still applies.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SEQUEL")
	v.AutomaticEnv()

	v.SetDefault("dialect", "postgres")
	v.SetDefault("max_connections", 25)
	v.SetDefault("max_idle_connections", 5)
	v.SetDefault("conn_max_lifetime", time.Hour)
	v.SetDefault("debug", false)

	// The search-path form resolves "." against the OS before consulting the
	// injected filesystem, so the file is addressed directly instead. A
	// missing file is fine; a present but unreadable one is not.
	if ok, _ := afero.Exists(AppFs, configFile); ok {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return &Config{
		Dialect:            v.GetString("dialect"),
		DSN:                v.GetString("dsn"),
		MaxConnections:     v.GetInt("max_connections"),
		MaxIdleConnections: v.GetInt("max_idle_connections"),
		ConnMaxLifetime:    v.GetDuration("conn_max_lifetime"),
		Debug:              v.GetBool("debug"),
	}, nil
}
