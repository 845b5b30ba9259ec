package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/interchain-evm/ica-controller/simapp"
)

// NewRootCmd creates a new root command for icactl.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "icactl",
		Short: "Interchain accounts EVM controller tool",
		Long: `Operate an interchain accounts EVM controller on a local store.

Encoding commands:
  icactl encode --tx <value>,<data>,<target>        ABI encode a transaction batch
  icactl packet-data --tx <value>,<data>,<target>   Build ICS-27 packet data for a batch

State commands:
  icactl init                                        Write the default genesis state
  icactl open --channel <channel-id>                 Record an open controller channel
  icactl ack <acknowledgement>                       Process an acknowledgement
  icactl timeout                                     Process a packet timeout
  icactl state                                       Print the controller state`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultHome, "directory for the database and icactl.toml")
	_ = v.BindPFlag("home", rootCmd.PersistentFlags().Lookup(flagHome))

	rootCmd.PersistentFlags().String(flagDBBackend, "goleveldb", "database backend (goleveldb, memdb)")
	_ = v.BindPFlag("db_backend", rootCmd.PersistentFlags().Lookup(flagDBBackend))

	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (debug, info, error, none)")
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup(flagLogLevel))

	rootCmd.AddCommand(
		newEncodeCmd(),
		newPacketDataCmd(),
		newInitCmd(v),
		newOpenCmd(v),
		newAckCmd(v),
		newTimeoutCmd(v),
		newStateCmd(v),
	)

	return rootCmd
}

// runWithApp resolves the configuration, opens the local application and passes it to fn.
func runWithApp(cmd *cobra.Command, v *viper.Viper, fn func(app *simapp.SimApp, logger log.Logger) error) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	app, closeDB, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	return fn(app, logger.With("module", "icactl"))
}
