package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockText returns the non-empty text nodes under sel, one per line. Unlike
// Selection.Text it keeps sibling items (list entries, badges) apart, so word
// boundaries survive.
func blockText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, "\n")
}

func collectText(n *html.Node, out *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			*out = append(*out, t)
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "template":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}

// nodeSet remembers visited elements so a container matched by several
// selectors is only processed once.
type nodeSet map[*html.Node]struct{}

func (s nodeSet) add(sel *goquery.Selection) bool {
	if sel.Length() == 0 {
		return false
	}
	n := sel.Get(0)
	if _, seen := s[n]; seen {
		return false
	}
	s[n] = struct{}{}
	return true
}

// stringSet keeps first-seen order while dropping exact duplicates.
type stringSet struct {
	seen  map[string]struct{}
	items []string
}

func newStringSet() *stringSet {
	return &stringSet{seen: make(map[string]struct{}), items: []string{}}
}

func (s *stringSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
