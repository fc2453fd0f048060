package render

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgallion1/raytrace-report/internal/manifest"
)

// Source produces the manifest to render.
type Source func() (*manifest.Manifest, error)

// Snapshot is one rendered version of the page.
type Snapshot struct {
	HTML       []byte
	Manifest   *manifest.Manifest
	RenderedAt time.Time
}

// Page keeps the most recently rendered snapshot. Readers never block;
// Reload swaps in a new snapshot only when rendering succeeds.
type Page struct {
	composer *Composer
	source   Source
	current  atomic.Pointer[Snapshot]
}

// NewPage renders source once and fails if that first render fails.
func NewPage(composer *Composer, source Source) (*Page, error) {
	p := &Page{composer: composer, source: source}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the source and re-renders. On error the previous
// snapshot stays in place.
func (p *Page) Reload() error {
	m, err := p.source()
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	out, err := p.composer.RenderBytes(m)
	if err != nil {
		return err
	}
	p.current.Store(&Snapshot{HTML: out, Manifest: m, RenderedAt: time.Now()})
	return nil
}

// Current returns the live snapshot.
func (p *Page) Current() *Snapshot {
	return p.current.Load()
}
