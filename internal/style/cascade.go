package style

import (
	"sort"

	"github.com/leapstack-labs/leapui/pkg/core"
)

// ActiveQuery is a media query together with its resolved breakpoint width.
type ActiveQuery struct {
	Query   core.MediaQuery
	MinPx   float64
	Applied bool
}

// Cascade returns every media query of a layer with its breakpoint width,
// sorted ascending by width. Applied reports whether the query is active at
// viewport width. Queries with equal widths keep their declared order.
func (r *Resolver) Cascade(mqs []core.MediaQuery, width float64) ([]ActiveQuery, error) {
	out := make([]ActiveQuery, 0, len(mqs))
	for _, mq := range mqs {
		px, err := r.BreakpointPx(mq.MinWidth)
		if err != nil {
			return nil, err
		}
		out = append(out, ActiveQuery{Query: mq, MinPx: px, Applied: px <= width})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinPx < out[j].MinPx
	})
	return out, nil
}

// Effective returns the style in effect at viewport width: base merged with
// every active media query, narrowest first, so wider breakpoints win.
func (r *Resolver) Effective(base core.Style, mqs []core.MediaQuery, width float64) (core.Style, error) {
	cascade, err := r.Cascade(mqs, width)
	if err != nil {
		return core.Style{}, err
	}
	out := base
	for _, aq := range cascade {
		if aq.Applied {
			out = core.Merge(out, aq.Query.Style)
		}
	}
	return out, nil
}

// ResolveAt resolves the effective style of layer at viewport width.
func (r *Resolver) ResolveAt(layer core.Layer, width float64) (Declarations, error) {
	b := layer.Base()
	eff, err := r.Effective(b.Style, b.MediaQueries, width)
	if err != nil {
		return nil, err
	}
	return r.Resolve(eff)
}
