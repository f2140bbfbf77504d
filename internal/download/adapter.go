package download

import (
	"context"
	"log/slog"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/config"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/httpx"
)

// Adapter is the capability contract every acquisition backend
// implements. FetchFile writes the acquired audio to destPath;
// FetchBuffer returns it in memory. Both either succeed with real data
// or fail loudly; silently returning empty bytes is not a valid
// implementation of the contract.
type Adapter interface {
	Name() string
	FetchFile(ctx context.Context, source, destPath string) error
	FetchBuffer(ctx context.Context, source string) ([]byte, error)
}

// Select resolves a configured adapter name to its implementation. The
// set is closed; an unknown name fails with ErrUnsupportedAdapter
// before any network use.
func Select(name string, settings *config.Settings, client *httpx.Client, log *slog.Logger) (Adapter, error) {
	if log == nil {
		log = slog.Default()
	}
	switch name {
	case config.AdapterDirect:
		return newDirect(settings, client, log), nil
	case config.AdapterYoutube:
		return newYoutube(settings, log), nil
	default:
		return nil, errs.Wrap(errs.ErrUnsupportedAdapter, "", "select",
			"no adapter named "+name, nil)
	}
}
