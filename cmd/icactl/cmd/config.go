package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"

	"github.com/interchain-evm/ica-controller/simapp"
)

const (
	envPrefix      = "ICACTL"
	configFileName = "icactl"
	dbName         = "icactl"

	flagHome      = "home"
	flagDBBackend = "db-backend"
	flagLogLevel  = "log-level"
)

// DefaultHome is the default directory holding the icactl database and config file.
var DefaultHome = os.ExpandEnv("$HOME/.icactl")

// Config is the icactl configuration resolved from flags, environment and the optional
// icactl.toml file in the home directory.
type Config struct {
	Home      string `mapstructure:"home"`
	DBBackend string `mapstructure:"db_backend"`
	LogLevel  string `mapstructure:"log_level"`
}

func loadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("home", DefaultHome)
	v.SetDefault("db_backend", string(dbm.GoLevelDBBackend))
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(v.GetString("home"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	return cfg, nil
}

// newLogger returns a tendermint logger writing to w filtered at the configured level.
func newLogger(cfg Config, w io.Writer) (log.Logger, error) {
	option, err := log.AllowLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", flagLogLevel)
	}

	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), option), nil
}

// openApp opens the local database and loads the latest committed state.
// The returned closer must be called once the app is no longer used.
func openApp(cfg Config, logger log.Logger) (*simapp.SimApp, func() error, error) {
	if err := os.MkdirAll(cfg.Home, 0o755); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create home directory %s", cfg.Home)
	}

	db, err := dbm.NewDB(dbName, dbm.BackendType(cfg.DBBackend), filepath.Clean(cfg.Home))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open %s database", cfg.DBBackend)
	}

	app, err := simapp.NewSimApp(logger, db, nil, nil, nil)
	if err != nil {
		_ = db.Close()
		return nil, nil, errors.Wrap(err, "failed to load application state")
	}

	return app, db.Close, nil
}
