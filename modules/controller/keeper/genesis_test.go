package keeper_test

import (
	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

func (suite *KeeperTestSuite) TestInitGenesis() {
	channelState := types.ChannelState{Status: types.CLOSED}
	activeChannel := types.NewActiveChannel(types.PortID, channelID)
	genesisState := types.NewGenesisState(types.NewParams(false), types.CallbackCounter{Success: 8, Error: 2}, &channelState, &activeChannel)

	suite.app.ControllerKeeper.InitGenesis(suite.ctx, *genesisState)

	suite.Require().Equal(types.NewParams(false), suite.app.ControllerKeeper.GetParams(suite.ctx))

	counter, err := suite.app.ControllerKeeper.GetCallbackCounter(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.CallbackCounter{Success: 8, Error: 2}, counter)

	storedChannel, err := suite.app.ControllerKeeper.GetActiveChannel(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(activeChannel, storedChannel)

	storedState, err := suite.app.ControllerKeeper.GetChannelState(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(channelState, storedState)
}

func (suite *KeeperTestSuite) TestInitGenesisInvalid() {
	channelState := types.NewOpenChannelState()
	genesisState := types.NewGenesisState(types.DefaultParams(), types.CallbackCounter{}, &channelState, nil)

	suite.Require().Panics(func() {
		suite.app.ControllerKeeper.InitGenesis(suite.ctx, *genesisState)
	})
}

func (suite *KeeperTestSuite) TestExportGenesis() {
	genesisState := suite.app.ControllerKeeper.ExportGenesis(suite.ctx)
	suite.Require().Equal(types.DefaultGenesisState(), genesisState)

	suite.openChannel()
	suite.app.ControllerKeeper.SetCallbackCounter(suite.ctx, types.CallbackCounter{Success: 1})

	genesisState = suite.app.ControllerKeeper.ExportGenesis(suite.ctx)
	suite.Require().Equal(types.CallbackCounter{Success: 1}, genesisState.CallbackCounter)
	suite.Require().NotNil(genesisState.ActiveChannel)
	suite.Require().Equal(types.NewActiveChannel(types.PortID, channelID), *genesisState.ActiveChannel)
	suite.Require().NotNil(genesisState.ChannelState)
	suite.Require().True(genesisState.ChannelState.IsOpen())
	suite.Require().NoError(genesisState.Validate())
}
