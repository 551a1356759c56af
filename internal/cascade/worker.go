package cascade

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// rowBand is a contiguous half-open row range handled by one goroutine.
type rowBand struct{ y0, y1 int }

// splitRows divides rows into at most workers contiguous bands.
func splitRows(rows, workers int) []rowBand {
	if rows <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > rows {
		workers = rows
	}
	per := (rows + workers - 1) / workers
	bands := make([]rowBand, 0, workers)
	for y := 0; y < rows; y += per {
		end := y + per
		if end > rows {
			end = rows
		}
		bands = append(bands, rowBand{y0: y, y1: end})
	}
	return bands
}

// forEachBand runs fn over every band of rows and waits for all of them.
// The band index is stable so callers can keep per-band scratch buffers.
func forEachBand(rows, workers int, fn func(band int, y0, y1 int) error) error {
	bands := splitRows(rows, workers)
	switch len(bands) {
	case 0:
		return nil
	case 1:
		return fn(0, bands[0].y0, bands[0].y1)
	}
	var g errgroup.Group
	g.SetLimit(len(bands))
	for i, b := range bands {
		g.Go(func() error {
			return fn(i, b.y0, b.y1)
		})
	}
	return g.Wait()
}

func defaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}
