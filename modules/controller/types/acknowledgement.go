package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"
)

var (
	_ Acknowledgement = ResultAcknowledgement{}
	_ Acknowledgement = ErrorAcknowledgement{}
)

// Acknowledgement is the decoded form of an ICS-04 acknowledgement envelope.
// It has exactly two implementations: ResultAcknowledgement and ErrorAcknowledgement.
type Acknowledgement interface {
	// Success returns true if the remote chain executed the packet successfully.
	Success() bool

	isAcknowledgement()
}

// ResultAcknowledgement signals the remote execution succeeded. The result is opaque.
type ResultAcknowledgement struct {
	Result []byte
}

// Success implements Acknowledgement
func (ResultAcknowledgement) Success() bool { return true }

func (ResultAcknowledgement) isAcknowledgement() {}

// ErrorAcknowledgement signals the remote execution failed. The error string is opaque.
type ErrorAcknowledgement struct {
	Error string
}

// Success implements Acknowledgement
func (ErrorAcknowledgement) Success() bool { return false }

func (ErrorAcknowledgement) isAcknowledgement() {}

// DecodeAcknowledgement decodes the JSON encoded channeltypes.Acknowledgement relayed back
// to the controller, {"result": <base64>} or {"error": <string>}. Any payload that does not
// carry exactly one of these variants returns ErrInvalidAcknowledgement.
func DecodeAcknowledgement(bz []byte) (Acknowledgement, error) {
	var ack channeltypes.Acknowledgement
	if err := channeltypes.SubModuleCdc.UnmarshalJSON(bz, &ack); err != nil {
		return nil, sdkerrors.Wrapf(ErrInvalidAcknowledgement, "cannot unmarshal packet acknowledgement: %v", err)
	}

	switch resp := ack.Response.(type) {
	case *channeltypes.Acknowledgement_Result:
		return ResultAcknowledgement{Result: resp.Result}, nil
	case *channeltypes.Acknowledgement_Error:
		return ErrorAcknowledgement{Error: resp.Error}, nil
	default:
		return nil, sdkerrors.Wrapf(ErrInvalidAcknowledgement, "unsupported acknowledgement response field type %T", resp)
	}
}
