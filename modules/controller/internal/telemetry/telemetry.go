package telemetry

import (
	"strconv"

	metrics "github.com/armon/go-metrics"

	"github.com/cosmos/cosmos-sdk/telemetry"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

const (
	LabelSourcePort    = "source_port"
	LabelSourceChannel = "source_channel"
	LabelSuccess       = "success"
)

func ReportSendTx(sourcePort, sourceChannel string, batchSize int) {
	labels := []metrics.Label{
		telemetry.NewLabel(LabelSourcePort, sourcePort),
		telemetry.NewLabel(LabelSourceChannel, sourceChannel),
	}

	telemetry.SetGaugeWithLabels(
		[]string{"tx", "msg", "ibc", types.ModuleName, "batch_size"},
		float32(batchSize),
		labels,
	)

	telemetry.IncrCounterWithLabels(
		[]string{"ibc", types.ModuleName, "send"},
		1,
		labels,
	)
}

func ReportAcknowledgement(sourcePort, sourceChannel string, success bool) {
	telemetry.IncrCounterWithLabels(
		[]string{"ibc", types.ModuleName, "acknowledgement"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(LabelSourcePort, sourcePort),
			telemetry.NewLabel(LabelSourceChannel, sourceChannel),
			telemetry.NewLabel(LabelSuccess, strconv.FormatBool(success)),
		},
	)
}

func ReportTimeout(sourcePort, sourceChannel string) {
	telemetry.IncrCounterWithLabels(
		[]string{"ibc", types.ModuleName, "timeout"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(LabelSourcePort, sourcePort),
			telemetry.NewLabel(LabelSourceChannel, sourceChannel),
		},
	)
}
