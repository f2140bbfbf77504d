package download

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/config"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/httpx"
)

// direct fetches audio file URLs over plain HTTP(S) with bounded
// exponential-backoff retries.
type direct struct {
	client   *httpx.Client
	retries  int
	cooldown float64
	exponent float64
	log      *slog.Logger
}

func newDirect(settings *config.Settings, client *httpx.Client, log *slog.Logger) *direct {
	retries := settings.DownloadMaxRetries
	if retries < 1 {
		retries = 1
	}
	return &direct{
		client:   client,
		retries:  retries,
		cooldown: settings.RetryCooldown,
		exponent: settings.RetryExponent,
		log:      log,
	}
}

func (d *direct) Name() string { return config.AdapterDirect }

func (d *direct) FetchFile(ctx context.Context, source, destPath string) error {
	var err error
	for try := 0; try < d.retries; try++ {
		if err = d.client.DownloadFile(ctx, source, destPath, nil); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
		d.log.Warn("download retry", "adapter", d.Name(), "source", source,
			"try", try+1, "error", err)
		d.waitForRetry(ctx, try)
	}
	return err
}

func (d *direct) FetchBuffer(ctx context.Context, source string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	for try := 0; try < d.retries; try++ {
		if data, err = d.client.Get(ctx, source); err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			break
		}
		d.log.Warn("download retry", "adapter", d.Name(), "source", source,
			"try", try+1, "error", err)
		d.waitForRetry(ctx, try)
	}
	return nil, err
}

func (d *direct) waitForRetry(ctx context.Context, try int) {
	cooldown := d.cooldown * math.Pow(d.exponent, float64(try))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}
