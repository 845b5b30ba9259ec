package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ICA EVM controller sentinel errors
var (
	ErrInvalidAcknowledgement      = sdkerrors.Register(ModuleName, 2, "invalid acknowledgement")
	ErrCorruptedState              = sdkerrors.Register(ModuleName, 3, "corrupted controller state")
	ErrStateNotFound               = sdkerrors.Register(ModuleName, 4, "controller state not found")
	ErrInvalidChannelFlow          = sdkerrors.Register(ModuleName, 5, "invalid message sent to channel end")
	ErrChannelClosed               = sdkerrors.Register(ModuleName, 6, "controller channel is closed")
	ErrActiveChannelNotFound       = sdkerrors.Register(ModuleName, 7, "no active channel for the controller")
	ErrActiveChannelAlreadySet     = sdkerrors.Register(ModuleName, 8, "active channel already set and open")
	ErrInvalidActiveChannel        = sdkerrors.Register(ModuleName, 9, "invalid active channel")
	ErrInvalidVersion              = sdkerrors.Register(ModuleName, 10, "invalid controller version")
	ErrInvalidTransaction          = sdkerrors.Register(ModuleName, 11, "invalid evm transaction")
	ErrAbiEncoding                 = sdkerrors.Register(ModuleName, 12, "abi encoding failed")
	ErrInvalidTimeoutTimestamp     = sdkerrors.Register(ModuleName, 13, "timeout timestamp must be in the future")
	ErrControllerSubModuleDisabled = sdkerrors.Register(ModuleName, 14, "controller submodule is disabled")
	ErrInvalidChannelState         = sdkerrors.Register(ModuleName, 15, "invalid channel state")
)
