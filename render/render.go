// Package render turns a navigation into the fragment shown in the editor.
package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/foomo/editor-prevnext/service/vo"
)

type Options struct {
	// EditPath is the admin page that opens an item in the editor.
	EditPath       string `mapstructure:"editPath"`
	ContainerID    string `mapstructure:"containerId"`
	ContainerClass string `mapstructure:"containerClass"`
	ButtonClass    string `mapstructure:"buttonClass"`
	NextLabel      string `mapstructure:"nextLabel"`
	PreviousLabel  string `mapstructure:"previousLabel"`
}

func DefaultOptions() Options {
	return Options{
		EditPath:       "post.php",
		ContainerID:    "editorPrevNextNavigation",
		ContainerClass: "editor-prevnext-navigation",
		ButtonClass:    "button-primary",
		NextLabel:      "« Next Post",
		PreviousLabel:  "Previous Post »",
	}
}

type Renderer struct {
	options Options
}

// NewRenderer fills empty options with their defaults.
func NewRenderer(options Options) *Renderer {
	defaults := DefaultOptions()
	if options.EditPath == "" {
		options.EditPath = defaults.EditPath
	}
	if options.ContainerID == "" {
		options.ContainerID = defaults.ContainerID
	}
	if options.ContainerClass == "" {
		options.ContainerClass = defaults.ContainerClass
	}
	if options.ButtonClass == "" {
		options.ButtonClass = defaults.ButtonClass
	}
	if options.NextLabel == "" {
		options.NextLabel = defaults.NextLabel
	}
	if options.PreviousLabel == "" {
		options.PreviousLabel = defaults.PreviousLabel
	}
	return &Renderer{options: options}
}

// EditURL returns the editor link of an item.
func (r *Renderer) EditURL(id vo.ItemID) string {
	return fmt.Sprintf("%s?post=%d&action=edit", r.options.EditPath, id)
}

// Render builds the fragment for the given neighbours. The "next" control
// comes first and each control is only present when its id is.
func (r *Renderer) Render(next, previous vo.OptionalID) Fragment {
	container := element(atom.Div,
		html.Attribute{Key: "id", Val: r.options.ContainerID},
		html.Attribute{Key: "class", Val: r.options.ContainerClass},
	)
	if id, ok := next.Get(); ok {
		container.AppendChild(r.link(id, "next", r.options.NextLabel))
	}
	if id, ok := previous.Get(); ok {
		container.AppendChild(r.link(id, "prev", r.options.PreviousLabel))
	}
	return Fragment{root: container}
}

// RenderNavigation is Render for a resolved navigation.
func (r *Renderer) RenderNavigation(nav vo.Navigation) Fragment {
	return r.Render(nav.Next, nav.Previous)
}

func (r *Renderer) link(id vo.ItemID, rel, label string) *html.Node {
	a := element(atom.A,
		html.Attribute{Key: "href", Val: r.EditURL(id)},
		html.Attribute{Key: "class", Val: r.options.ButtonClass},
		html.Attribute{Key: "rel", Val: rel},
		html.Attribute{Key: "data-post-id", Val: id.String()},
	)
	a.AppendChild(&html.Node{Type: html.TextNode, Data: label})
	return a
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

// Fragment is a rendered navigation. It is immutable; Node hands out copies.
type Fragment struct {
	root *html.Node
}

// Node returns a detached copy of the fragment's root element.
func (f Fragment) Node() *html.Node {
	if f.root == nil {
		return nil
	}
	return cloneNode(f.root)
}

// Controls returns the number of navigation links in the fragment.
func (f Fragment) Controls() int {
	if f.root == nil {
		return 0
	}
	n := 0
	for c := f.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.A {
			n++
		}
	}
	return n
}

func (f Fragment) Empty() bool {
	return f.Controls() == 0
}

func (f Fragment) HTML() (string, error) {
	if f.root == nil {
		return "", nil
	}
	var b strings.Builder
	if err := html.Render(&b, f.root); err != nil {
		return "", fmt.Errorf("failed to render fragment: %w", err)
	}
	return b.String(), nil
}

func (f Fragment) String() string {
	s, _ := f.HTML()
	return s
}

// Markdown converts the fragment's links to markdown.
func (f Fragment) Markdown() (vo.Markdown, error) {
	if f.Empty() {
		return "", nil
	}
	markdownBytes, err := htmltomarkdown.ConvertNode(f.Node())
	if err != nil {
		return "", fmt.Errorf("failed to convert fragment to markdown: %w", err)
	}
	return vo.Markdown(strings.TrimSpace(string(markdownBytes))), nil
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}
