package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/banqizero/game"
	"github.com/pkg/errors"
)

const dotGraphName = "mcts"

// Dot renders the last search tree down to maxDepth as a Graphviz digraph.
// Unvisited children are left out to keep the output readable.
func (t *MCTS) Dot(maxDepth int) (string, error) {
	if !t.root.isValid() {
		return "", errors.New("no search tree")
	}
	g := gographviz.NewGraph()
	if err := g.SetName(dotGraphName); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}
	if err := t.dotNode(g, t.root, 0, maxDepth); err != nil {
		return "", err
	}
	return g.String(), nil
}

func (t *MCTS) dotNode(g *gographviz.Graph, of naughty, depth, maxDepth int) error {
	n := t.nodeFromNaughty(of)
	label := "root"
	if n.move >= 0 {
		label = game.MustDecode(int(n.move)).String()
	}
	attrs := map[string]string{
		"label": fmt.Sprintf("%q", fmt.Sprintf("%s\nN=%d Q=%.3f P=%.3f", label, n.visits, n.QSA(), n.psa)),
	}
	if err := g.AddNode(dotGraphName, dotName(of), attrs); err != nil {
		return errors.WithStack(err)
	}
	if depth >= maxDepth {
		return nil
	}
	for _, kid := range t.Children(of) {
		if t.nodeFromNaughty(kid).visits == 0 {
			continue
		}
		if err := t.dotNode(g, kid, depth+1, maxDepth); err != nil {
			return err
		}
		if err := g.AddEdge(dotName(of), dotName(kid), true, nil); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func dotName(n naughty) string { return fmt.Sprintf("n%d", n) }
