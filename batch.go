package lzindex

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/splitstream/lzindex/codec"
	"github.com/splitstream/lzindex/storage"
)

// BuildAll indexes several source files, running up to a bounded number of
// builds concurrently. Files that already have an index are skipped unless
// BuildWithForce is set.
//
// The per-file constraint of Build still holds: paths must not repeat. The
// first failed build cancels the remaining ones and its error is returned.
func BuildAll(ctx context.Context, st storage.Storage, c codec.Codec, paths []string, opts ...BuildOption) error {
	o := buildOptions{jobs: 1}
	for _, opt := range opts {
		opt(&o)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.jobs)
	for _, path := range paths {
		g.Go(func() error {
			if !o.force {
				ok, err := st.Exists(ctx, path+IndexSuffix)
				if err != nil {
					return fmt.Errorf("lzindex: stat index: %w", err)
				}
				if ok {
					o.log().Debug("index exists, skipping", "path", path)
					return nil
				}
			}
			o.log().Debug("indexing", "path", path)
			if err := Build(ctx, st, c, path); err != nil {
				return err
			}
			o.log().Info("indexed", "path", path)
			return nil
		})
	}
	return g.Wait()
}
