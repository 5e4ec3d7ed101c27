package expand

import (
	"fmt"

	"github.com/vk/paramgridgo/param"
)

// combineSources computes the Cartesian product of the records generated
// by each attached source and merges every tuple into one record.
//
// Enumeration order is product order with the last-attached source varying
// fastest; it is stable given the same sources, and it is what assigns the
// generated 1-based ordinals. Merging concatenates positional values,
// labels, and resource specs in attachment order — so the
// earliest-attached source's resources sit outermost for both acquisition
// and release — and unions keyed values with a hard conflict check.
func combineSources(sources []*param.Seq, owner any, site string) ([]*param.Record, error) {
	// Every source is drained before the emptiness check: a malformed
	// source must fail expansion even when an earlier one generated
	// nothing, and a callable source is invoked once per attachment site
	// regardless.
	lists := make([][]*param.Record, len(sources))
	empty := false
	for i, src := range sources {
		recs, err := src.Generate(owner)
		if err != nil {
			return nil, fmt.Errorf("%s: parameter source %d: %w", site, i+1, err)
		}
		if len(recs) == 0 {
			empty = true
		}
		lists[i] = recs
	}
	if empty || len(lists) == 0 {
		return nil, nil
	}

	total := 1
	for _, l := range lists {
		total *= len(l)
	}

	out := make([]*param.Record, 0, total)
	idx := make([]int, len(lists))
	tuple := make([]*param.Record, len(lists))
	for {
		for i, l := range lists {
			tuple[i] = l[idx[i]]
		}
		merged, err := param.Merge(tuple...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", site, err)
		}
		out = append(out, merged)

		k := len(lists) - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < len(lists[k]) {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			break
		}
	}
	return out, nil
}
