package ptfs

import (
	"context"
	"time"

	"github.com/yegors/atc24-radar/internal/config"
	"github.com/yegors/atc24-radar/pkg/logger"
)

// Poller periodically pulls aircraft, controller and ATIS snapshots from the
// REST API while the stream is disconnected, so the radar picture degrades
// to polling instead of freezing during an outage. It goes idle as soon as
// the stream reports connected.
//
// The REST client is rebuilt from the live config snapshot whenever the base
// URL, timeout or rate cap change, so a hot-reload that enables the fallback
// or repoints the API takes effect on the next tick.
type Poller struct {
	store  Store
	logger *logger.Logger

	client  *Client
	baseURL string
	timeout int
	maxRPS  int
}

// NewPoller creates a REST fallback poller
func NewPoller(store Store, log *logger.Logger) *Poller {
	return &Poller{
		store:  store,
		logger: log.Named("poller"),
	}
}

// Run polls until the context is cancelled. The interval, enable flag and
// client settings are re-read from the live config snapshot on every tick.
func (p *Poller) Run(ctx context.Context) error {
	for {
		network := p.store.Config().Network

		interval := time.Duration(network.PollIntervalSecs) * time.Second
		if interval <= 0 {
			interval = 10 * time.Second
		}

		select {
		case <-time.After(interval):
			if !network.RESTFallback || network.APIBaseURL == "" || p.store.StreamConnected() {
				continue
			}
			p.pollOnce(ctx, network)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// clientFor returns a REST client matching the given network settings,
// reusing the cached one while they are unchanged.
func (p *Poller) clientFor(network config.NetworkConfig) *Client {
	if p.client == nil ||
		p.baseURL != network.APIBaseURL ||
		p.timeout != network.RequestTimeoutSecs ||
		p.maxRPS != network.MaxRequestsPerSec {
		p.client = NewClient(
			network.APIBaseURL,
			time.Duration(network.RequestTimeoutSecs)*time.Second,
			network.MaxRequestsPerSec,
			p.logger,
		)
		p.baseURL = network.APIBaseURL
		p.timeout = network.RequestTimeoutSecs
		p.maxRPS = network.MaxRequestsPerSec
	}
	return p.client
}

func (p *Poller) pollOnce(ctx context.Context, network config.NetworkConfig) {
	client := p.clientFor(network)

	if batch, err := client.AircraftData(ctx); err != nil {
		p.logger.Error("Failed to poll aircraft data", logger.Error(err))
	} else if network.EnableMainServer {
		p.store.UpdateAircraftBatch(batch, SourceMain)
		p.logger.Debug("Polled aircraft data", logger.Int("aircraft_count", len(batch)))
	}

	if positions, err := client.Controllers(ctx); err != nil {
		p.logger.Error("Failed to poll controllers", logger.Error(err))
	} else {
		p.store.UpdateControllers(positions)
	}

	if atisList, err := client.ATIS(ctx); err != nil {
		p.logger.Error("Failed to poll ATIS", logger.Error(err))
	} else {
		for _, atis := range atisList {
			p.store.UpdateATIS(atis)
		}
	}
}
