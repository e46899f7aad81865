package main

import (
	"github.com/rmarin/voltcli/internal/ledger"
	"github.com/rmarin/voltcli/internal/paylink"
	"github.com/rmarin/voltcli/internal/payout"
	"github.com/rmarin/voltcli/internal/reconcile"
	"github.com/rmarin/voltcli/internal/upstream"
	"github.com/rmarin/voltcli/internal/wallet"
	"github.com/rmarin/voltcli/pkg/config"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
	"github.com/rmarin/voltcli/pkg/logger"
)

// app wires services on demand. The upstream client is only constructed for
// commands that actually go to the network, so local-only reads like history
// never require an api key.
type app struct {
	cfg  *config.Config
	logg *logger.Logger

	client *upstream.Client
	store  ledger.Store
	cache  ledger.Store
}

func newApp(cfg *config.Config, logg *logger.Logger) *app {
	return &app{cfg: cfg, logg: logg}
}

func (a *app) upstreamClient() (*upstream.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	if a.cfg.Upstream.APIKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAPIKey, "VOLT_API_KEY is not set")
	}
	client, err := upstream.NewClient(a.cfg.Upstream.APIKey,
		upstream.WithBaseURL(a.cfg.Upstream.BaseURL),
		upstream.WithTimeout(a.cfg.Upstream.HTTPTimeout),
	)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

func (a *app) ledgerStore() (ledger.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := ledger.NewFileStore(a.cfg.Ledger.Path, a.logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeLedgerIO, err, "opening ledger")
	}
	a.store = store
	return store, nil
}

func (a *app) paylinkCache() (ledger.Store, error) {
	if a.cache != nil {
		return a.cache, nil
	}
	cache, err := ledger.NewFileStore(a.cfg.Ledger.PaylinkCachePath, a.logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeLedgerIO, err, "opening paylink cache")
	}
	a.cache = cache
	return cache, nil
}

func (a *app) settlementReconciler() (*reconcile.Reconciler, error) {
	store, err := a.ledgerStore()
	if err != nil {
		return nil, err
	}
	rec, err := reconcile.New(store, a.logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "wiring reconciler")
	}
	return rec, nil
}

func (a *app) walletService() (*wallet.Service, error) {
	client, err := a.upstreamClient()
	if err != nil {
		return nil, err
	}
	store, err := a.ledgerStore()
	if err != nil {
		return nil, err
	}
	rec, err := a.settlementReconciler()
	if err != nil {
		return nil, err
	}
	svc, err := wallet.NewService(client, store, rec, a.logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "wiring wallet service")
	}
	return svc, nil
}

func (a *app) paylinkEngine() (*paylink.Engine, error) {
	client, err := a.upstreamClient()
	if err != nil {
		return nil, err
	}
	cacheStore, err := a.paylinkCache()
	if err != nil {
		return nil, err
	}
	cacheRec, err := reconcile.New(cacheStore, a.logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "wiring paylink cache")
	}
	settleRec, err := a.settlementReconciler()
	if err != nil {
		return nil, err
	}
	engine, err := paylink.NewEngine(client, cacheRec, settleRec, a.logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "wiring paylink engine")
	}
	return engine, nil
}

func (a *app) payoutEngine() (*payout.Engine, error) {
	client, err := a.upstreamClient()
	if err != nil {
		return nil, err
	}
	rec, err := a.settlementReconciler()
	if err != nil {
		return nil, err
	}
	engine, err := payout.NewEngine(client, rec, a.logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "wiring payout engine")
	}
	return engine, nil
}
