// Package console wires the entity stores to the remote service and builds
// the management views on top of them.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gammazero/workerpool"

	"github.com/beesaferoot/condo-console/internal/api"
	"github.com/beesaferoot/condo-console/internal/form"
	"github.com/beesaferoot/condo-console/internal/model"
	"github.com/beesaferoot/condo-console/internal/store"
	"github.com/beesaferoot/condo-console/internal/view"
)

type Config struct {
	Client      *api.Client
	WorkerCount int
	Confirmer   store.Confirmer
	Observer    store.Observer
	Logger      *slog.Logger
}

// Console owns one store per entity.
type Console struct {
	Apartments *store.Store[model.Apartment]
	Residents  *store.Store[model.Resident]
	Accounts   *store.Store[model.Account]
	Employees  *store.Store[model.Employee]

	workerPool *workerpool.WorkerPool
	logger     *slog.Logger
}

// loader is the part of a store Refresh needs.
type loader interface {
	Entity() string
	Load(ctx context.Context) error
}

func New(cfg Config) *Console {
	if cfg.Client == nil {
		panic("console: client is required")
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Console{
		Apartments: store.New(store.Config[model.Apartment]{
			Entity:    "apartments",
			Noun:      "apartment",
			Remote:    api.NewEndpoint[model.Apartment](cfg.Client, api.Apartments),
			Reconcile: store.ReloadAfterWrite,
			Toggle:    model.Apartment.Toggled,
			Confirmer: cfg.Confirmer,
			Observer:  cfg.Observer,
			Logger:    cfg.Logger,
		}),
		Residents: store.New(store.Config[model.Resident]{
			Entity:    "residents",
			Noun:      "resident",
			Remote:    api.NewEndpoint[model.Resident](cfg.Client, api.Residents),
			Reconcile: store.SpliceCreated,
			Confirmer: cfg.Confirmer,
			Observer:  cfg.Observer,
			Logger:    cfg.Logger,
		}),
		Accounts: store.New(store.Config[model.Account]{
			Entity:    "accounts",
			Noun:      "account",
			Remote:    api.NewEndpoint[model.Account](cfg.Client, api.Accounts),
			Reconcile: store.SpliceCreated,
			Toggle:    model.Account.Toggled,
			Confirmer: cfg.Confirmer,
			Observer:  cfg.Observer,
			Logger:    cfg.Logger,
		}),
		Employees: store.New(store.Config[model.Employee]{
			Entity:    "employees",
			Noun:      "employee",
			Remote:    api.NewEndpoint[model.Employee](cfg.Client, api.Employees),
			Reconcile: store.SpliceCreated,
			Confirmer: cfg.Confirmer,
			Observer:  cfg.Observer,
			Logger:    cfg.Logger,
		}),
		workerPool: workerpool.New(cfg.WorkerCount),
		logger:     cfg.Logger,
	}
}

// Close waits for queued loads and stops the worker pool.
func (c *Console) Close() {
	c.workerPool.StopWait()
}

func (c *Console) loaders() map[string]loader {
	return map[string]loader{
		c.Apartments.Entity(): c.Apartments,
		c.Residents.Entity():  c.Residents,
		c.Accounts.Entity():   c.Accounts,
		c.Employees.Entity():  c.Employees,
	}
}

// Entities lists the collections Refresh accepts, in display order.
func (c *Console) Entities() []string {
	return []string{
		c.Apartments.Entity(),
		c.Residents.Entity(),
		c.Accounts.Entity(),
		c.Employees.Entity(),
	}
}

// Refresh loads the named collections in parallel, or every collection when
// none is named. Each store records its own failure; the returned error
// joins all of them.
func (c *Console) Refresh(ctx context.Context, entities ...string) error {
	if len(entities) == 0 {
		entities = c.Entities()
	}
	all := c.loaders()

	targets := make([]loader, 0, len(entities))
	for _, name := range entities {
		l, ok := all[name]
		if !ok {
			return fmt.Errorf("unknown collection %q", name)
		}
		targets = append(targets, l)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, l := range targets {
		wg.Add(1)
		c.workerPool.Submit(func() {
			defer wg.Done()
			if err := l.Load(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	if len(errs) > 0 {
		c.logger.Debug("refresh failed", "entities", entities, "errors", len(errs))
	}
	return errors.Join(errs...)
}

// ApartmentBoard refreshes apartments and residents together and returns
// the filtered cards.
func (c *Console) ApartmentBoard(ctx context.Context, filter view.Filter) ([]view.Card, error) {
	if err := c.Refresh(ctx, c.Apartments.Entity(), c.Residents.Entity()); err != nil {
		return nil, err
	}
	return view.ApartmentBoard(c.Apartments.Items(), c.Residents.Items(), filter), nil
}

// Drift compares both sides of the apartment/resident relation.
func (c *Console) Drift(ctx context.Context) ([]view.Drift, error) {
	if err := c.Refresh(ctx, c.Apartments.Entity(), c.Residents.Entity()); err != nil {
		return nil, err
	}
	return view.RelationDrift(c.Apartments.Items(), c.Residents.Items()), nil
}

func (c *Console) ApartmentForm() *form.Form[model.Apartment] {
	return form.NewApartmentForm(c.Apartments)
}

func (c *Console) ResidentForm() *form.Form[model.Resident] {
	return form.NewResidentForm(c.Residents)
}

func (c *Console) AccountForm() *form.Form[model.Account] {
	return form.NewAccountForm(c.Accounts)
}

func (c *Console) EmployeeForm() *form.Form[model.Employee] {
	return form.NewEmployeeForm(c.Employees)
}
