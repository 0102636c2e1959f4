package cmd

import (
	"time"

	"synthpool/core"
	"synthpool/service/account"
	"synthpool/service/action"
	"synthpool/service/chain"
	"synthpool/service/oracle"
	"synthpool/service/pool"
	"synthpool/service/position"
	"synthpool/service/wallet"
	"synthpool/store/pricetick"
	"synthpool/store/snapshot"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/sirupsen/logrus"

	_ "github.com/lib/pq"
)

const rpcTimeout = 10 * time.Second

func provideConfig() *core.Config {
	return &cfg
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideLocation() *time.Location {
	loc, err := time.LoadLocation(cfg.App.Location)
	if err != nil {
		logrus.WithError(err).Warnln("load location, fallback to UTC", cfg.App.Location)
		return time.UTC
	}

	return loc
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePriceTickStore(db *db.DB) core.IPriceTickStore {
	return pricetick.Cache(pricetick.New(db), cfg.PriceHistory.CacheDuration())
}

func provideSnapshotStore() core.ISnapshotStore {
	return snapshot.New()
}

// ------------------service------------------------------------

func provideChainClient() core.IChainClient {
	return chain.New(cfg.Chain.RPC, rpcTimeout)
}

func providePoolReader(client core.IChainClient) core.IPoolReader {
	return pool.New(client, cfg.Chain)
}

func provideAccountReader(client core.IChainClient) core.IAccountReader {
	return account.New(client, cfg.Chain)
}

func provideWalletSession() core.IWalletSession {
	return wallet.New()
}

func providePositionService() core.IPositionService {
	return position.New(cfg.Risk.Params())
}

func provideActionService(client core.IChainClient, snapshots core.ISnapshotStore, positions core.IPositionService) core.IActionService {
	return action.New(client, cfg.Chain, cfg.Risk.Params(), snapshots, positions)
}

func provideTickerService() core.ITickerService {
	return oracle.New(cfg.PriceHistory)
}
