package parser

import (
	"bytes"
	"fmt"
	"io"
	"unicode"

	"github.com/bmatsuo/mclisp/lisp"
	parsec "github.com/prataprc/goparsec"
)

// ParseLVal parses all top-level forms in text using a parser combinator
// grammar instead of the token stream parser used by ParseForms.  The values
// returned by ParseLVal carry no source locations.  The number of bytes read
// is returned along with any error that was encountered in parsing.
func ParseLVal(text []byte) ([]*lisp.LVal, int, error) {
	text = bytes.TrimRightFunc(text, unicode.IsSpace)
	var v []*lisp.LVal
	s := parsec.NewScanner(text)
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		lval, err := getLVal(root)
		if err != nil {
			return v, s.GetCursor(), err
		}
		v = append(v, lval)
		root, s = parser(s)
	}
	if !s.Endof() {
		return v, s.GetCursor(), fmt.Errorf("offset %d: %w", s.GetCursor(), io.ErrUnexpectedEOF)
	}
	return v, s.GetCursor(), nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	word := parsec.Token(`[^\s()]+`, "WORD")
	term := parsec.OrdChoice(termNode, word)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(listNode, openP, exprList, closeP)
	expr = parsec.OrdChoice(nil, term, list)
	return expr
}

// getLVal unwraps the node list produced by an OrdChoice root.
func getLVal(root parsec.ParsecNode) (*lisp.LVal, error) {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) != 1 {
		return nil, fmt.Errorf("unexpected parse node count: %d", len(nodes))
	}
	lval, ok := nodes[0].(*lisp.LVal)
	if !ok {
		return nil, fmt.Errorf("unexpected parse node: %T", nodes[0])
	}
	return lval, nil
}

func termNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	term, ok := nodes[0].(*parsec.Terminal)
	if !ok {
		return nil
	}
	return lisp.Atom(term.Value)
}

func listNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	lval := lisp.Nil()
	// We don't want terminal parsec nodes '(' and ')'
	for _, c := range cleanParsecNodeList(nodes) {
		if c, ok := c.(*lisp.LVal); ok {
			lval.Cells = append(lval.Cells, c)
		}
	}
	return lval
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}
