// Package inject places rendered fragments into host pages.
package inject

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/foomo/editor-prevnext/render"
)

// DefaultContainer is the heading of the admin editor screen.
const DefaultContainer = "#wpbody-content .wrap h2"

var ErrContainerNotFound = errors.New("fragment container not found")

// Page is a parsed host page.
type Page struct {
	doc *html.Node
}

func Parse(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{doc: doc}, nil
}

func (p *Page) Title() string {
	return extractTitle(p.doc)
}

// Inject appends the fragment to the first element matching selector. A
// fragment element with the same id already on the page is replaced.
func (p *Page) Inject(selector string, fragment render.Fragment) error {
	node := fragment.Node()
	if node == nil {
		return nil
	}
	container, err := findNodeBySelector(p.doc, selector)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContainerNotFound, err)
	}
	// the page is only touched once the container is known
	if id := attr(node, "id"); id != "" {
		if existing := findNodeByID(p.doc, id); existing != nil && existing.Parent != nil {
			existing.Parent.RemoveChild(existing)
		}
	}
	container.AppendChild(node)
	return nil
}

func (p *Page) Render(w io.Writer) error {
	if err := html.Render(w, p.doc); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// Injector is the host call that places a fragment on the current page.
type Injector func(fragment render.Fragment) error

// Into returns an Injector for the given page and container selector.
func Into(page *Page, selector string) Injector {
	if selector == "" {
		selector = DefaultContainer
	}
	return func(fragment render.Fragment) error {
		return page.Inject(selector, fragment)
	}
}
