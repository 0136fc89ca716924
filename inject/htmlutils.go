package inject

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// simpleSelector is one step of a descendant selector: #id, .class or tag,
// optionally combined as tag#id or tag.class.
type simpleSelector struct {
	tag   string
	id    string
	class string
}

func parseSelector(selector string) ([]simpleSelector, error) {
	parts := strings.Fields(selector)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	steps := make([]simpleSelector, 0, len(parts))
	for _, part := range parts {
		var step simpleSelector
		if i := strings.IndexAny(part, "#."); i >= 0 {
			step.tag = part[:i]
			if part[i] == '#' {
				step.id = part[i+1:]
			} else {
				step.class = part[i+1:]
			}
		} else {
			step.tag = part
		}
		if step.tag == "" && step.id == "" && step.class == "" {
			return nil, fmt.Errorf("invalid selector %q", selector)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (s simpleSelector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && n.Data != s.tag {
		return false
	}
	if s.id != "" && attr(n, "id") != s.id {
		return false
	}
	if s.class != "" && !hasClass(n, s.class) {
		return false
	}
	return true
}

// findNodeBySelector returns the first node in document order matching a
// descendant selector such as "#wpbody-content .wrap h2".
func findNodeBySelector(doc *html.Node, selector string) (*html.Node, error) {
	steps, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}
	if n := findDescendant(doc, steps); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("element matching '%s' not found", selector)
}

func findDescendant(n *html.Node, steps []simpleSelector) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if steps[0].matches(c) {
			if len(steps) == 1 {
				return c
			}
			if found := findDescendant(c, steps[1:]); found != nil {
				return found
			}
		}
		if found := findDescendant(c, steps); found != nil {
			return found
		}
	}
	return nil
}

func findNodeByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findNodeByID(c, id); result != nil {
			return result
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// extractTitle extracts the title from the HTML document
func extractTitle(doc *html.Node) string {
	var title string
	var findTitle func(*html.Node)

	findTitle = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = n.FirstChild.Data
			}
			return
		}
		for c := n.FirstChild; c != nil && title == ""; c = c.NextSibling {
			findTitle(c)
		}
	}

	findTitle(doc)
	return title
}
