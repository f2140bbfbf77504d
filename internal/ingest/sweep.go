package ingest

import (
	"context"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/model"
)

// EnrichFunc lets the caller adjust decoded metadata before a swept
// track is stored: entity matching, album grouping, whatever the
// catalog needs. A nil func stores the decoded metadata as-is.
type EnrichFunc func(model.TrackInfo, model.TrackMetadata) model.TrackMetadata

// Sweep ingests a batch of pending sources one at a time. Each item
// fully completes or fails before the next starts, and one bad file
// never aborts the rest: its failure lands in the per-item result and
// the sweep moves on. The caller owns the surrounding catalog
// transaction for every item, so it can commit or roll back per result.
//
// Cancelling ctx stops the sweep after the in-flight item; remaining
// sources are not reported.
func (p *Pipeline) Sweep(ctx context.Context, sources []Source, enrich EnrichFunc) []Result {
	results := make([]Result, 0, len(sources))
	for _, src := range sources {
		if ctx.Err() != nil {
			break
		}
		results = append(results, p.sweepOne(ctx, src, enrich))
	}
	return results
}

func (p *Pipeline) sweepOne(ctx context.Context, src Source, enrich EnrichFunc) Result {
	res := Result{Source: src}

	data, err := p.Acquire(ctx, src)
	if err != nil {
		res.Err = err
		p.log.Warn("sweep: acquire failed", "source", src.Name, "error", err)
		return res
	}

	res.Info, res.Meta, err = p.Inspect(data)
	if err != nil {
		res.Err = err
		p.log.Warn("sweep: inspect failed", "source", src.Name, "error", err)
		return res
	}

	if enrich != nil {
		res.Meta = enrich(res.Info, res.Meta)
	}

	res.Path, err = p.Store(data, res.Meta)
	if err != nil {
		res.Err = err
		p.log.Warn("sweep: store failed", "source", src.Name, "error", err)
	}
	return res
}
