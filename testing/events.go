package ibctesting

import (
	"errors"
	"strconv"

	testifysuite "github.com/stretchr/testify/suite"
	abci "github.com/tendermint/tendermint/abci/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

// ParseAckSuccessFromEvents parses the acknowledgement event emitted by the controller and returns
// whether the acknowledgement was a success.
func ParseAckSuccessFromEvents(events sdk.Events) (bool, error) {
	for _, ev := range events {
		if ev.Type == types.EventTypeAcknowledgement {
			if attribute, found := attributeByKey(ev.Attributes, types.AttributeKeyAckSuccess); found {
				return strconv.ParseBool(string(attribute.Value))
			}
		}
	}
	return false, errors.New("acknowledgement event attribute not found")
}

// ParsePacketSequenceFromEvents parses the first event carrying a packet sequence and returns it
func ParsePacketSequenceFromEvents(events sdk.Events) (uint64, error) {
	for _, event := range events {
		if attribute, found := attributeByKey(event.Attributes, channeltypes.AttributeKeySequence); found {
			return strconv.ParseUint(string(attribute.Value), 10, 64)
		}
	}
	return 0, errors.New("packet sequence event attribute not found")
}

// CountEvents returns the number of events of the given type.
func CountEvents(events sdk.Events, eventType string) int {
	count := 0
	for _, ev := range events {
		if ev.Type == eventType {
			count++
		}
	}
	return count
}

// AssertEvents asserts that expected events are present in the actual events.
func AssertEvents(
	suite *testifysuite.Suite,
	expected sdk.Events,
	actual sdk.Events,
) {
	foundEvents := make(map[int]bool)

	for i, expectedEvent := range expected {
		for _, actualEvent := range actual {
			if shouldProcessEvent(expectedEvent, actualEvent) {
				attributeMatch := true
				for _, expectedAttr := range expectedEvent.Attributes {
					// any expected attributes that are not contained in the actual events will cause this event
					// not to match
					attributeMatch = attributeMatch && containsAttribute(actualEvent.Attributes, string(expectedAttr.Key), string(expectedAttr.Value))
				}

				if attributeMatch {
					foundEvents[i] = true
				}
			}
		}
	}

	for i, expectedEvent := range expected {
		suite.Require().True(foundEvents[i], "event: %s was not found in events", expectedEvent.Type)
	}
}

// shouldProcessEvent returns true if the given expected event should be processed based on event type.
func shouldProcessEvent(expectedEvent sdk.Event, actualEvent sdk.Event) bool {
	if expectedEvent.Type != actualEvent.Type {
		return false
	}

	return len(expectedEvent.Attributes) == len(actualEvent.Attributes)
}

// containsAttribute returns true if the given key/value pair is contained in the given attributes.
// NOTE: this ignores the indexed field, which can be set or unset depending on how the events are retrieved.
func containsAttribute(attrs []abci.EventAttribute, key, value string) bool {
	for _, attr := range attrs {
		if string(attr.Key) == key && string(attr.Value) == value {
			return true
		}
	}
	return false
}

// attributeByKey returns the event attribute keyed by the given key and a boolean indicating its presence in the given attributes.
func attributeByKey(attributes []abci.EventAttribute, key string) (abci.EventAttribute, bool) {
	for _, attr := range attributes {
		if string(attr.Key) == key {
			return attr, true
		}
	}
	return abci.EventAttribute{}, false
}
