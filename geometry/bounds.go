package geometry

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/tidwall/gjson"
	"github.com/whosonfirst/go-reader/v2"
	"github.com/whosonfirst/go-whosonfirst-feature/geometry"
	wof_reader "github.com/whosonfirst/go-whosonfirst-reader/v2"
)

// DeriveBound returns the bounds of the Who's On First record 'body'. If the record has a "geom:bbox"
// property that will be used in place of bounds derived from the feature's geometry.
func DeriveBound(body []byte) (orb.Bound, error) {

	bbox_rsp := gjson.GetBytes(body, "properties.geom:bbox")

	if bbox_rsp.Exists() {

		b, err := parseBBox(bbox_rsp.String())

		if err == nil {
			return b, nil
		}

		slog.Debug("Invalid geom:bbox property, deriving bounds from geometry", "error", err)
	}

	geom, err := geometry.Geometry(body)

	if err != nil {
		return orb.Bound{}, fmt.Errorf("Failed to derive geometry, %w", err)
	}

	orb_geom := geom.Geometry()

	if orb_geom == nil {
		return orb.Bound{}, fmt.Errorf("Feature has no geometry")
	}

	return orb_geom.Bound(), nil
}

// DeriveBoundsFromIds returns the bounds of the Who's On First records associated with 'ids', keyed by
// ID. Records are read concurrently from 'r'.
func DeriveBoundsFromIds(ctx context.Context, r reader.Reader, ids ...int64) (map[int64]orb.Bound, error) {

	derive := func(id int64, body []byte) (orb.Bound, error) {
		return DeriveBound(body)
	}

	return LoadFromIds(ctx, r, derive, ids...)
}

// LoadFromIds reads the Who's On First records associated with 'ids' from 'r', concurrently, and returns
// the result of applying 'derive' to each one keyed by ID. The first error encountered is returned.
func LoadFromIds[T any](ctx context.Context, r reader.Reader, derive func(int64, []byte) (T, error), ids ...int64) (map[int64]T, error) {

	type id_result struct {
		id    int64
		value T
	}

	done_ch := make(chan bool, len(ids))
	err_ch := make(chan error, len(ids))
	result_ch := make(chan id_result, len(ids))

	for _, id := range ids {

		go func(id int64) {

			logger := slog.Default()
			logger = logger.With("id", id)

			defer func() {
				done_ch <- true
			}()

			body, err := wof_reader.LoadBytes(ctx, r, id)

			if err != nil {
				logger.Error("Failed to read data", "error", err)
				err_ch <- fmt.Errorf("Failed to read %d, %w", id, err)
				return
			}

			v, err := derive(id, body)

			if err != nil {
				logger.Error("Failed to derive value", "error", err)
				err_ch <- fmt.Errorf("Failed to derive value for %d, %w", id, err)
				return
			}

			result_ch <- id_result{id: id, value: v}
		}(id)
	}

	remaining := len(ids)
	results := make(map[int64]T)

	for remaining > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-done_ch:
			remaining -= 1
		case err := <-err_ch:
			return nil, err
		case ir := <-result_ch:
			results[ir.id] = ir.value
		}
	}

	// Drain anything sent just before the final done signal

	for len(result_ch) > 0 {
		ir := <-result_ch
		results[ir.id] = ir.value
	}

	if len(err_ch) > 0 {
		return nil, <-err_ch
	}

	return results, nil
}

func parseBBox(str_bbox string) (orb.Bound, error) {

	parts := strings.Split(str_bbox, ",")

	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("Invalid bbox '%s'", str_bbox)
	}

	coords := make([]float64, 4)

	for i, p := range parts {

		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)

		if err != nil {
			return orb.Bound{}, fmt.Errorf("Invalid bbox '%s', %w", str_bbox, err)
		}

		coords[i] = v
	}

	b := orb.Bound{
		Min: orb.Point{coords[0], coords[1]},
		Max: orb.Point{coords[2], coords[3]},
	}

	return b, nil
}
