package simapp

import (
	"sync"
	"time"

	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/store"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	paramstypes "github.com/cosmos/cosmos-sdk/x/params/types"

	"github.com/interchain-evm/ica-controller/modules/controller"
	"github.com/interchain-evm/ica-controller/modules/controller/keeper"
	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

// SimApp is a minimal application hosting the controller module on a single
// commit multistore. Every state transition runs through Execute, which
// serializes calls and applies their effects all-or-nothing.
type SimApp struct {
	mtx sync.Mutex

	logger log.Logger
	cms    sdk.CommitMultiStore

	// keys to access the substores
	keys  map[string]*sdk.KVStoreKey
	tkeys map[string]*sdk.TransientStoreKey

	// keepers
	ParamsKeeper     paramskeeper.Keeper
	ControllerKeeper keeper.Keeper

	// IBC application
	ControllerModule controller.IBCModule
}

// NewSimApp returns a reference to an initialized SimApp backed by the provided database.
// The IBC keepers may be nil if the caller never sends packets.
func NewSimApp(
	logger log.Logger, db dbm.DB,
	ics4Wrapper types.ICS4Wrapper, channelKeeper types.ChannelKeeper, scopedKeeper types.ScopedKeeper,
) (*SimApp, error) {
	keys := sdk.NewKVStoreKeys(paramstypes.StoreKey, types.StoreKey)
	tkeys := sdk.NewTransientStoreKeys(paramstypes.TStoreKey)

	cms := store.NewCommitMultiStore(db)
	cms.SetPruning(storetypes.PruneDefault)
	for _, key := range keys {
		cms.MountStoreWithDB(key, sdk.StoreTypeIAVL, nil)
	}
	for _, tkey := range tkeys {
		cms.MountStoreWithDB(tkey, sdk.StoreTypeTransient, nil)
	}

	if err := cms.LoadLatestVersion(); err != nil {
		return nil, err
	}

	app := &SimApp{
		logger: logger,
		cms:    cms,
		keys:   keys,
		tkeys:  tkeys,
	}

	appCodec := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())
	legacyAmino := codec.NewLegacyAmino()

	app.ParamsKeeper = paramskeeper.NewKeeper(appCodec, legacyAmino, keys[paramstypes.StoreKey], tkeys[paramstypes.TStoreKey])
	app.ControllerKeeper = keeper.NewKeeper(
		keys[types.StoreKey], app.ParamsKeeper.Subspace(types.ModuleName),
		ics4Wrapper, channelKeeper, scopedKeeper,
	)
	app.ControllerModule = controller.NewIBCModule(app.ControllerKeeper)

	return app, nil
}

// GetKey returns the KVStoreKey for the provided store key.
func (app *SimApp) GetKey(storeKey string) *sdk.KVStoreKey {
	return app.keys[storeKey]
}

// LastBlockHeight returns the height of the last committed state transition.
func (app *SimApp) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// NewContext returns a context writing directly to the working state of the multistore.
// Writes are persisted on the next Commit.
func (app *SimApp) NewContext() sdk.Context {
	header := tmproto.Header{
		Height: app.LastBlockHeight() + 1,
		Time:   time.Now().UTC(),
	}

	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Execute runs fn against a cached context. The cached writes are applied and committed
// only if fn returns no error. A panic inside fn propagates without writing any state.
func (app *SimApp) Execute(fn func(ctx sdk.Context) error) error {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	cacheCtx, writeCache := app.NewContext().CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}

	writeCache()
	app.cms.Commit()

	return nil
}

// InitChain writes the controller genesis state and commits it.
func (app *SimApp) InitChain(genesisState types.GenesisState) error {
	if err := genesisState.Validate(); err != nil {
		return err
	}

	return app.Execute(func(ctx sdk.Context) error {
		app.ControllerKeeper.InitGenesis(ctx, genesisState)
		return nil
	})
}

// ExportGenesis returns the committed controller state.
func (app *SimApp) ExportGenesis() *types.GenesisState {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	ctx, _ := app.NewContext().CacheContext()
	return app.ControllerKeeper.ExportGenesis(ctx)
}
