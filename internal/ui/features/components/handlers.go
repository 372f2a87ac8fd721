// Package components serves compiled components to the preview UI.
package components

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/leapui/internal/compiler"
	"github.com/leapstack-labs/leapui/internal/engine"
	"github.com/leapstack-labs/leapui/internal/layertree"
	"github.com/leapstack-labs/leapui/internal/naming"
	"github.com/leapstack-labs/leapui/internal/stylesheet"
	"github.com/leapstack-labs/leapui/internal/ui/features/common"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// Handlers provides HTTP handlers for the components feature.
type Handlers struct {
	engine       *engine.Engine
	defaultWidth float64
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(eng *engine.Engine, defaultWidth float64) *Handlers {
	return &Handlers{engine: eng, defaultWidth: defaultWidth}
}

// List returns every component in document order.
func (h *Handlers) List(w http.ResponseWriter, _ *http.Request) {
	c, err := h.engine.Compiler()
	if err != nil {
		common.WriteError(w, err)
		return
	}
	comps := c.Document().Components.All()
	out := make([]Summary, 0, len(comps))
	for _, comp := range comps {
		out = append(out, summarize(c, comp))
	}
	common.WriteJSON(w, http.StatusOK, out)
}

// Get returns a compiled component with its module and stylesheet.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	c, a, ok := h.compile(w, r)
	if !ok {
		return
	}
	comp, _ := c.Document().Components.Get(a.ComponentID)
	common.WriteJSON(w, http.StatusOK, Detail{
		Summary: summarize(c, comp),
		Module:  a.Module,
		CSS:     a.CSS,
		Hash:    a.Hash,
	})
}

// Module returns the JSX module source.
func (h *Handlers) Module(w http.ResponseWriter, r *http.Request) {
	if _, a, ok := h.compile(w, r); ok {
		common.WriteText(w, "text/jsx", a.Module)
	}
}

// Stylesheet returns the component stylesheet.
func (h *Handlers) Stylesheet(w http.ResponseWriter, r *http.Request) {
	if _, a, ok := h.compile(w, r); ok {
		common.WriteText(w, "text/css", a.CSS)
	}
}

// DocumentStylesheet returns the rules of every component in one sheet.
func (h *Handlers) DocumentStylesheet(w http.ResponseWriter, _ *http.Request) {
	c, err := h.engine.Compiler()
	if err != nil {
		common.WriteError(w, err)
		return
	}
	sheet, err := stylesheet.NewGeneratorWithResolver(c.Resolver()).GenerateDocument(c.Document())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteText(w, "text/css", sheet.String())
}

// LayerStyle returns the effective style of one layer at ?width=.
func (h *Handlers) LayerStyle(w http.ResponseWriter, r *http.Request) {
	width := h.defaultWidth
	if v := r.URL.Query().Get("width"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			common.WriteError(w, &common.BadRequestError{Param: "width", Value: v})
			return
		}
		width = parsed
	}

	c, err := h.engine.Compiler()
	if err != nil {
		common.WriteError(w, err)
		return
	}
	comp, err := c.Registry().Select(chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}

	ref := chi.URLParam(r, "layer")
	var layer core.Layer
	if comp.Layout != nil {
		layer = layertree.FindByID(comp.Layout, ref)
		if layer == nil {
			layer = layertree.FindByName(comp.Layout, ref)
		}
	}
	if layer == nil {
		common.WriteError(w, &common.NotFoundError{What: "layer " + ref})
		return
	}

	decls, err := c.PreviewResolver().ResolveAt(layer, width)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	out := LayerStyle{
		Component:    comp.Name,
		Layer:        layer.Base().Name,
		Width:        width,
		Declarations: make([]Declaration, 0, len(decls)),
	}
	for _, d := range decls {
		out.Declarations = append(out.Declarations, Declaration{Property: d.Property, Value: d.Value})
	}
	common.WriteJSON(w, http.StatusOK, out)
}

func (h *Handlers) compile(w http.ResponseWriter, r *http.Request) (*compiler.Compiler, *compiler.Artifact, bool) {
	c, err := h.engine.Compiler()
	if err != nil {
		common.WriteError(w, err)
		return nil, nil, false
	}
	a, err := c.Compile(chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return nil, nil, false
	}
	return c, a, true
}

func summarize(c *compiler.Compiler, comp *core.Component) Summary {
	s := Summary{
		ID:       comp.ID,
		Name:     comp.Name,
		Function: naming.KebabToPascal(comp.Name),
		Props:    make([]string, 0, len(comp.Props)),
		Examples: make([]string, 0, len(comp.Examples)),
		Embeds:   []string{},
	}
	for _, p := range comp.Props {
		s.Props = append(s.Props, p.Name)
	}
	for _, ex := range comp.Examples {
		s.Examples = append(s.Examples, ex.Name)
	}
	s.Embeds = append(s.Embeds, c.Graph().Dependencies(comp.ID)...)
	return s
}
