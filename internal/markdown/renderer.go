package markdown

import (
	"fmt"
	"html"
	"log"
)

// ExternalRenderer is a full Markdown engine that the Renderer prefers over
// the Subset renderer. TryRender may fail; the caller then falls back.
type ExternalRenderer interface {
	TryRender(text string) (string, error)
}

// ExternalFunc adapts a plain function to ExternalRenderer.
type ExternalFunc func(text string) (string, error)

// TryRender calls f(text).
func (f ExternalFunc) TryRender(text string) (string, error) {
	return f(text)
}

// availability is implemented by engines that can be switched off at
// runtime. It is consulted on every Render call.
type availability interface {
	Available() bool
}

// Renderer picks the external engine when present and the Subset renderer
// otherwise.
type Renderer struct {
	External ExternalRenderer
	Subset   *Subset
}

// NewRenderer returns a Renderer. Both arguments may be nil.
func NewRenderer(external ExternalRenderer, subset *Subset) *Renderer {
	return &Renderer{External: external, Subset: subset}
}

// Render converts text into an HTML fragment and never fails. Engine errors
// and panics are logged and answered by the Subset renderer.
func (r *Renderer) Render(text string) string {
	if r.engineAvailable() {
		out, err := r.tryExternal(text)
		if err == nil {
			return out
		}
		log.Printf("markdown: engine failed: %v", err)
	}
	return r.subset().Render(text)
}

func (r *Renderer) engineAvailable() bool {
	if r.External == nil {
		return false
	}
	if a, ok := r.External.(availability); ok {
		return a.Available()
	}
	return true
}

func (r *Renderer) tryExternal(text string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("engine panic: %v", p)
		}
	}()
	return r.External.TryRender(text)
}

func (r *Renderer) subset() *Subset {
	if r.Subset == nil {
		return defaultSubset
	}
	return r.Subset
}

// Wrap mounts a fragment in a message container the way the chat widget
// does. An empty class returns the fragment unchanged.
func Wrap(fragment, class string) string {
	if class == "" {
		return fragment
	}
	return `<div class="` + html.EscapeString(class) + `">` + fragment + `</div>`
}
