package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
	"serving-broker/pkg/apperror"
	"serving-broker/pkg/clock"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// Directory implements ports.ProviderDirectory with a TTL cache over a
// ServiceSource. A failed refresh keeps serving the previous listing.
type Directory struct {
	source ports.ServiceSource
	ledger ports.LedgerStore
	user   common.Address
	clock  clock.Clock
	opts   Options
	log    zerolog.Logger

	// refreshMu serializes source fetches. mu guards the cached listing
	// only and is never held across a fetch.
	refreshMu sync.Mutex
	mu        sync.Mutex
	services  []domain.ProviderService
	index     map[common.Address]int
	fetchedAt time.Time
	gen       uint64
}

// NewDirectory creates a directory for user. ledger answers acknowledgement
// filters and may be nil when they are never requested.
func NewDirectory(source ports.ServiceSource, ledger ports.LedgerStore, user common.Address, clk clock.Clock, opts Options, log zerolog.Logger) *Directory {
	if clk == nil {
		clk = clock.Real()
	}
	return &Directory{
		source: source,
		ledger: ledger,
		user:   user,
		clock:  clk,
		opts:   opts,
		log:    log,
	}
}

// ListServices returns a page of the directory. With includeUnacknowledged
// false only providers the user has acknowledged are listed. A limit <= 0
// returns everything after offset.
func (d *Directory) ListServices(ctx context.Context, offset, limit int, includeUnacknowledged bool) ([]domain.ProviderService, error) {
	if offset < 0 {
		return nil, apperror.Validation("offset must not be negative")
	}
	all, err := d.load(ctx, false)
	if err != nil {
		return nil, err
	}

	if !includeUnacknowledged {
		if d.ledger == nil {
			return nil, apperror.InternalError(fmt.Errorf("directory has no ledger for acknowledgement filtering"))
		}
		kept := all[:0:0]
		for _, svc := range all {
			acked, err := retryRead(ctx, d.opts.ReadRetries, func() (bool, error) {
				return d.ledger.IsAcknowledged(ctx, d.user, svc.Provider)
			})
			if err != nil {
				return nil, apperror.ErrUpstream(fmt.Errorf("read acknowledgement: %w", err))
			}
			if acked {
				kept = append(kept, svc)
			}
		}
		all = kept
	}

	if offset >= len(all) {
		return []domain.ProviderService{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// GetService resolves provider. An unknown provider forces one refresh
// before ErrProviderUnknown is returned.
func (d *Directory) GetService(ctx context.Context, provider common.Address) (*domain.ProviderService, error) {
	if svc, err := d.lookup(ctx, provider, false); err != nil || svc != nil {
		return svc, err
	}
	svc, err := d.lookup(ctx, provider, true)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.ErrProviderUnknown()
	}
	return svc, nil
}

func (d *Directory) lookup(ctx context.Context, provider common.Address, force bool) (*domain.ProviderService, error) {
	if _, err := d.load(ctx, force); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	i, ok := d.index[provider]
	if !ok {
		return nil, nil
	}
	svc := d.services[i]
	return &svc, nil
}

// SelectProvider picks the healthiest provider offering serviceType. Ties
// on health grade go to the higher uptime, then to the lower address.
func (d *Directory) SelectProvider(ctx context.Context, serviceType domain.ServiceType) (*domain.ProviderService, error) {
	all, err := d.load(ctx, false)
	if err != nil {
		return nil, err
	}
	var candidates []domain.ProviderService
	for _, svc := range all {
		if svc.ServiceType == serviceType {
			candidates = append(candidates, svc)
		}
	}
	if len(candidates) == 0 {
		return nil, apperror.ErrProviderUnknown()
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, ui := candidates[i].HealthRank()
		rj, uj := candidates[j].HealthRank()
		if ri != rj {
			return ri > rj
		}
		if ui != uj {
			return ui > uj
		}
		return candidates[i].Provider.Cmp(candidates[j].Provider) < 0
	})
	best := candidates[0]
	return &best, nil
}

// load returns a copy of the cached listing, refreshing it when the TTL
// has passed or force is set. Readers of a fresh cache never wait on a
// refresh in progress.
func (d *Directory) load(ctx context.Context, force bool) ([]domain.ProviderService, error) {
	d.mu.Lock()
	if d.isFresh() && !force {
		out := d.snapshot()
		d.mu.Unlock()
		return out, nil
	}
	gen := d.gen
	d.mu.Unlock()

	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	// Another caller refreshed while we waited.
	d.mu.Lock()
	if d.gen != gen && (force || d.isFresh()) {
		out := d.snapshot()
		d.mu.Unlock()
		return out, nil
	}
	d.mu.Unlock()

	services, err := d.fetchAll(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		if d.fetchedAt.IsZero() {
			directoryRefreshes.WithLabelValues("failed").Inc()
			return nil, apperror.ErrUpstream(fmt.Errorf("list provider services: %w", err))
		}
		directoryRefreshes.WithLabelValues("stale").Inc()
		d.log.Warn().Err(err).Time("fetched_at", d.fetchedAt).Msg("directory refresh failed, serving cached services")
		return d.snapshot(), nil
	}

	d.services = services
	d.index = make(map[common.Address]int, len(services))
	for i, svc := range services {
		d.index[svc.Provider] = i
	}
	d.fetchedAt = d.clock.Now()
	d.gen++
	directoryRefreshes.WithLabelValues("ok").Inc()
	d.log.Debug().Int("services", len(services)).Msg("directory refreshed")
	return d.snapshot(), nil
}

// isFresh reports whether the cache is within its TTL. Caller holds mu.
func (d *Directory) isFresh() bool {
	return !d.fetchedAt.IsZero() && d.clock.Now().Sub(d.fetchedAt) < d.opts.DirectoryTTL
}

// fetchAll pages through the source. Each page read is retried. A provider
// listed twice keeps its first entry.
func (d *Directory) fetchAll(ctx context.Context) ([]domain.ProviderService, error) {
	pageSize := d.opts.DirectoryPageSize
	if pageSize <= 0 {
		pageSize = DefaultOptions().DirectoryPageSize
	}

	var out []domain.ProviderService
	seen := make(map[common.Address]struct{})
	for offset := 0; ; offset += pageSize {
		page, err := retryRead(ctx, d.opts.ReadRetries, func() ([]domain.ProviderService, error) {
			return d.source.ListServices(ctx, offset, pageSize)
		})
		if err != nil {
			return nil, err
		}
		for _, svc := range page {
			if _, dup := seen[svc.Provider]; dup {
				continue
			}
			seen[svc.Provider] = struct{}{}
			out = append(out, svc)
		}
		if len(page) < pageSize {
			return out, nil
		}
	}
}

// snapshot copies the listing. Caller holds mu.
func (d *Directory) snapshot() []domain.ProviderService {
	return append([]domain.ProviderService(nil), d.services...)
}

var _ ports.ProviderDirectory = (*Directory)(nil)
