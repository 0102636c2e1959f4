package syncer

import (
	"context"
	"time"

	"synthpool/core"
	"synthpool/pkg/metrics"
	"synthpool/worker"

	"github.com/fox-one/pkg/logger"
)

const (
	defaultBalancePeriod = 5 * time.Second
	defaultPoolInitial   = 3 * time.Second
	defaultPoolSteady    = 30 * time.Second
)

// Syncer poll chain state into the snapshot store
//
// balances and positions follow the connected wallet on a fixed period,
// the pool and oracles poll fast until the first success then slow down
type Syncer struct {
	network   string
	wallet    core.IWalletSession
	pools     core.IPoolReader
	accounts  core.IAccountReader
	snapshots core.ISnapshotStore

	balance *worker.Scheduler
	pool    *worker.Scheduler
}

// New new syncer
func New(
	network string,
	cfg core.Sync,
	wallet core.IWalletSession,
	pools core.IPoolReader,
	accounts core.IAccountReader,
	snapshots core.ISnapshotStore,
) *Syncer {
	s := &Syncer{
		network:   network,
		wallet:    wallet,
		pools:     pools,
		accounts:  accounts,
		snapshots: snapshots,
	}

	s.balance = worker.NewScheduler("syncer.balance", worker.Fixed(orDefault(cfg.BalanceInterval(), defaultBalancePeriod)), s.SyncBalance)
	s.pool = worker.NewScheduler("syncer.pool", worker.Policy{
		Initial: orDefault(cfg.PoolInitialInterval(), defaultPoolInitial),
		Steady:  orDefault(cfg.PoolSteadyInterval(), defaultPoolSteady),
	}, s.SyncPool)

	return s
}

func orDefault(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}

	return def
}

// Run run both pollers until ctx is done
func (s *Syncer) Run(ctx context.Context) error {
	s.pool.Start(ctx)
	s.balance.Start(ctx)

	<-ctx.Done()

	s.balance.Stop()
	s.pool.Stop()
	return nil
}

// PoolPeriod current pool poll period
func (s *Syncer) PoolPeriod() time.Duration {
	return s.pool.Period()
}

// SyncBalance publish the account of the connected wallet, or an empty one
func (s *Syncer) SyncBalance(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "syncer.balance")

	state := s.wallet.State()
	if !state.OnNetwork(s.network) {
		if !s.snapshots.Load().Account.IsEmpty() {
			log.Infoln("wallet gone or off network, clear account")
		}

		s.publishAccount(core.EmptyAccount(time.Now()))
		metrics.PollTotal.WithLabelValues("balance", metrics.ResultOK).Inc()
		return nil
	}

	account, err := s.accounts.ReadAccount(ctx, state.Account)
	metrics.PollTotal.WithLabelValues("balance", metrics.Result(err)).Inc()
	if err != nil {
		log.WithError(err).Errorln("accounts.ReadAccount", state.Account)
		s.clearForeign(state.Account)
		return err
	}

	// the wallet switched while reading, the next tick reads the new one
	if cur := s.wallet.State(); cur.Account != state.Account || !cur.OnNetwork(s.network) {
		log.Debugln("wallet changed during read, drop", state.Account)
		s.clearForeign(cur.Account)
		return nil
	}

	s.publishAccount(account)
	return nil
}

// SyncPool publish a fresh pool snapshot, a failure keeps the previous one
func (s *Syncer) SyncPool(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "syncer.pool")

	pool, err := s.pools.ReadPool(ctx)
	metrics.PollTotal.WithLabelValues("pool", metrics.Result(err)).Inc()
	if err != nil {
		log.WithError(err).Errorln("pools.ReadPool")
		return err
	}

	s.snapshots.PublishPool(pool)
	metrics.SnapshotUpdated.WithLabelValues("pool").Set(float64(pool.UpdatedAt.Unix()))
	return nil
}

// clearForeign publish an empty account if the current one belongs to another owner
func (s *Syncer) clearForeign(owner string) {
	if prev := s.snapshots.Load().Account; prev.Owner != "" && prev.Owner != owner {
		s.publishAccount(core.EmptyAccount(time.Now()))
	}
}

func (s *Syncer) publishAccount(account *core.AccountSnapshot) {
	s.snapshots.PublishAccount(account)
	metrics.SnapshotUpdated.WithLabelValues("account").Set(float64(account.UpdatedAt.Unix()))
}
