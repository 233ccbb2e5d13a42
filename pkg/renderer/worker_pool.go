package renderer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// renderTiles renders one sample of every tile into img using numWorkers
// goroutines. Tiles cover disjoint pixels, so workers write img without
// locking. The first error, including cancellation, stops all workers.
func (rt *Raytracer) renderTiles(ctx context.Context, tiles []Tile, img *Image, sampleIndex int) error {
	g, ctx := errgroup.WithContext(ctx)

	taskQueue := make(chan Tile)
	g.Go(func() error {
		defer close(taskQueue)
		for _, tile := range tiles {
			select {
			case taskQueue <- tile:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < rt.numWorkers; i++ {
		g.Go(func() error {
			for tile := range taskQueue {
				if err := rt.renderBounds(ctx, tile, img, sampleIndex); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// renderBounds traces one sample for each pixel of a tile, row by row
func (rt *Raytracer) renderBounds(ctx context.Context, tile Tile, img *Image, sampleIndex int) error {
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			img.Set(x, y, rt.TracePixel(x, y, sampleIndex))
		}
	}
	return nil
}
