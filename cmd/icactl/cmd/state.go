package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/yaml.v2"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-go/v3/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
	"github.com/interchain-evm/ica-controller/simapp"
)

const (
	flagPort              = "port"
	flagChannel           = "channel"
	flagSequence          = "sequence"
	flagControllerEnabled = "controller-enabled"
)

var errNotInitialized = errors.New("store is not initialized: run icactl init")

func requireInitialized(app *simapp.SimApp) error {
	if app.LastBlockHeight() == 0 {
		return errNotInitialized
	}

	return nil
}

// packetFromFlags returns the packet sent on the active channel with the sequence given by --sequence.
// The dispatcher only uses the packet for event attributes.
func packetFromFlags(cmd *cobra.Command, app *simapp.SimApp) (channeltypes.Packet, error) {
	sequence, err := cmd.Flags().GetUint64(flagSequence)
	if err != nil {
		return channeltypes.Packet{}, err
	}

	genesisState := app.ExportGenesis()
	if genesisState.ActiveChannel == nil {
		return channeltypes.Packet{}, types.ErrActiveChannelNotFound
	}

	return channeltypes.NewPacket(
		nil, sequence,
		genesisState.ActiveChannel.PortID, genesisState.ActiveChannel.ChannelID,
		"", "", clienttypes.ZeroHeight(), 0,
	), nil
}

func newInitCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the local store with the default controller genesis state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled, err := cmd.Flags().GetBool(flagControllerEnabled)
			if err != nil {
				return err
			}

			return runWithApp(cmd, v, func(app *simapp.SimApp, logger log.Logger) error {
				if app.LastBlockHeight() != 0 {
					return errors.Errorf("store already initialized at height %d", app.LastBlockHeight())
				}

				genesisState := types.DefaultGenesisState()
				genesisState.Params = types.NewParams(enabled)

				if err := app.InitChain(*genesisState); err != nil {
					return errors.Wrap(err, "failed to initialize controller state")
				}

				logger.Info("initialized controller state", "height", app.LastBlockHeight())
				return nil
			})
		},
	}

	cmd.Flags().Bool(flagControllerEnabled, true, "enable the controller submodule")

	return cmd
}

func newOpenCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Record an open controller channel as if its handshake had completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			portID, err := cmd.Flags().GetString(flagPort)
			if err != nil {
				return err
			}

			channelID, err := cmd.Flags().GetString(flagChannel)
			if err != nil {
				return err
			}

			return runWithApp(cmd, v, func(app *simapp.SimApp, logger log.Logger) error {
				if err := requireInitialized(app); err != nil {
					return err
				}

				return app.Execute(func(ctx sdk.Context) error {
					return app.ControllerModule.OnChanOpenAck(ctx, portID, channelID, "", types.Version)
				})
			})
		},
	}

	cmd.Flags().String(flagPort, types.PortID, "controller port identifier")
	cmd.Flags().String(flagChannel, "", "controller channel identifier")
	_ = cmd.MarkFlagRequired(flagChannel)

	return cmd
}

func newAckCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ack <acknowledgement>",
		Short: "Process an acknowledgement for a packet sent on the active channel",
		Long: `Process an acknowledgement for a packet sent on the active channel.

The acknowledgement uses the ICS-04 JSON encoding.

Examples:
  icactl ack '{"result":"AQ=="}'
  icactl ack '{"error":"execution reverted"}' --sequence 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, v, func(app *simapp.SimApp, logger log.Logger) error {
				if err := requireInitialized(app); err != nil {
					return err
				}

				packet, err := packetFromFlags(cmd, app)
				if err != nil {
					return err
				}

				return app.Execute(func(ctx sdk.Context) error {
					return app.ControllerModule.OnAcknowledgementPacket(ctx, packet, []byte(args[0]), nil)
				})
			})
		},
	}

	cmd.Flags().Uint64(flagSequence, 1, "sequence of the acknowledged packet")

	return cmd
}

func newTimeoutCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeout",
		Short: "Process a timeout for a packet sent on the active channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, v, func(app *simapp.SimApp, logger log.Logger) error {
				if err := requireInitialized(app); err != nil {
					return err
				}

				packet, err := packetFromFlags(cmd, app)
				if err != nil {
					return err
				}

				return app.Execute(func(ctx sdk.Context) error {
					return app.ControllerModule.OnTimeoutPacket(ctx, packet, nil)
				})
			})
		},
	}

	cmd.Flags().Uint64(flagSequence, 1, "sequence of the timed out packet")

	return cmd
}

func newStateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the committed controller state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, v, func(app *simapp.SimApp, _ log.Logger) error {
				if err := requireInitialized(app); err != nil {
					return err
				}

				out, err := yaml.Marshal(app.ExportGenesis())
				if err != nil {
					return err
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
				return err
			})
		},
	}
}
