package validate

import (
	host "github.com/cosmos/ibc-go/v3/modules/core/24-host"
)

// ChannelEnd validates that the portID and channelID of a channel end are valid ICS-24 identifiers.
func ChannelEnd(portID, channelID string) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return err
	}

	if err := host.ChannelIdentifierValidator(channelID); err != nil {
		return err
	}

	return nil
}
