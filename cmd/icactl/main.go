package main

import (
	"os"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/interchain-evm/ica-controller/cmd/icactl/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.NewTMLogger(log.NewSyncWriter(rootCmd.ErrOrStderr())).Error("failure when running icactl", "err", err)
		os.Exit(1)
	}
}
