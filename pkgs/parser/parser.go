// Package parser builds a Zenith AST from source text by recursive
// descent, enforcing the grammar of spec.md section 4.3. It is grounded
// on the teacher's hand-written parsing idiom (pkgs/parser/ast_builder.go
// in the source devcmd repo): a Parser struct walking a flat token slice
// with position/recursion tracking and typed errors, rather than the
// teacher's alternative ANTLR-generated parser generation (see
// DESIGN.md).
package parser

import (
	"github.com/frasasu/zenith/pkgs/ast"
	"github.com/frasasu/zenith/pkgs/lexer"
	"github.com/frasasu/zenith/pkgs/point"
)

// Parser is a total, strict recursive-descent parser: the first
// SyntaxError aborts the parse and no partial AST is returned.
type Parser struct {
	tokens []lexer.Token
	pos    int
	limits Limits
	depth  int
}

// Parse tokenizes and parses src into an ordered list of top-level Law
// and Target nodes (spec.md grammar rule `corpus := { law | target }`).
// Corpus indexing (by_law_name/by_target_name, generation numbers) is a
// separate step performed by package corpus.
func Parse(src string, limits Limits) ([]ast.Node, error) {
	lx := lexer.New(src)
	tokens, err := lx.TokenizeToSlice()
	if err != nil {
		return nil, err
	}
	if len(tokens) > limits.MaxTokenCount {
		return nil, &ResourceLimitError{Limit: "max_token_count", Bound: limits.MaxTokenCount, Observed: len(tokens)}
	}

	p := &Parser{tokens: tokens, limits: limits}
	var roots []ast.Node
	for !p.atEOF() {
		node, err := p.parseLawOrTarget()
		if err != nil {
			return nil, err
		}
		roots = append(roots, node)
	}
	return roots, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // eof
	}
	return p.tokens[p.pos]
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == lexer.EOF
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) isKeyword(lexeme string) bool {
	t := p.cur()
	return t.Kind == lexer.KEYWORD && t.Lexeme == lexeme
}

func (p *Parser) expectKeyword(lexeme string) (lexer.Token, error) {
	if !p.isKeyword(lexeme) {
		return lexer.Token{}, &SyntaxError{Token: p.cur(), Expected: []string{lexeme}, Message: "unexpected token"}
	}
	return p.advance(), nil
}

func (p *Parser) expectKind(kind lexer.Kind, what string) (lexer.Token, error) {
	if p.cur().Kind != kind {
		return lexer.Token{}, &SyntaxError{Token: p.cur(), Expected: []string{what}, Message: "unexpected token"}
	}
	return p.advance(), nil
}

func (p *Parser) expectPoint() (int64, error) {
	sign := ""
	if p.cur().Kind == lexer.MINUS {
		sign = "-"
		p.advance()
	}
	t := p.cur()
	if t.Kind != lexer.NUMBER && t.Kind != lexer.DOTTED_NUMBER {
		return 0, &SyntaxError{Token: t, Expected: []string{"POINT"}, Message: "unexpected token"}
	}
	p.advance()
	n, err := point.ToMinutes(sign + t.Lexeme)
	if err != nil {
		return 0, &SyntaxError{Token: t, Message: "malformed point literal: " + err.Error()}
	}
	return n, nil
}

func span(start, end lexer.Token) ast.Span {
	return ast.Span{
		Start: ast.Position{Line: start.Line, Column: start.Column},
		End:   ast.Position{Line: end.Line, Column: end.Column},
	}
}

// parseLawOrTarget dispatches on the next keyword, tracking nesting
// depth against the configured resource limit.
func (p *Parser) parseLawOrTarget() (ast.Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.limits.MaxDepth {
		return nil, &ResourceLimitError{Limit: "max_ast_depth", Bound: p.limits.MaxDepth, Observed: p.depth}
	}

	switch {
	case p.isKeyword("law"):
		return p.parseLaw()
	case p.isKeyword("target"):
		return p.parseTarget()
	default:
		return nil, &SyntaxError{Token: p.cur(), Expected: []string{"law", "target"}, Message: "unexpected token"}
	}
}

func (p *Parser) parseLaw() (*ast.Law, error) {
	startTok, err := p.expectKeyword("law")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(lexer.IDENTIFIER, "IDENT")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return nil, err
	}

	law := &ast.Law{
		Name:       nameTok.Lexeme,
		EventIndex: make(map[string]int),
	}

	if _, err := p.expectKeyword("start_date"); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return nil, err
	}
	dateTok, err := p.expectKind(lexer.DATE, "DATE")
	if err != nil {
		return nil, err
	}
	law.StartDate = dateTok.Lexeme
	if _, err := p.expectKeyword("at"); err != nil {
		return nil, err
	}
	timeTok, err := p.expectKind(lexer.TIME, "TIME")
	if err != nil {
		return nil, err
	}
	law.StartTime = timeTok.Lexeme

	if _, err := p.expectKeyword("period"); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return nil, err
	}
	period, err := p.expectPoint()
	if err != nil {
		return nil, err
	}
	law.Period = period

	if _, err := p.expectKeyword("Event"); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.IDENTIFIER {
		decl, err := p.parseEventDecl()
		if err != nil {
			return nil, err
		}
		law.EventIndex[decl.Name] = len(law.Events)
		law.Events = append(law.Events, decl)
	}

	if _, err := p.expectKeyword("GROUP"); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	term, err := p.parseGroupTerm()
	if err != nil {
		return nil, err
	}
	law.Group = append(law.Group, term)
	for p.cur().Kind == lexer.MINUS {
		p.advance()
		term, err := p.parseGroupTerm()
		if err != nil {
			return nil, err
		}
		law.Group = append(law.Group, term)
	}
	if _, err := p.expectKind(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}

	endTok, err := p.expectKeyword("end_law")
	if err != nil {
		return nil, err
	}
	law.Span = span(startTok, endTok)

	return law, nil
}

func (p *Parser) parseEventDecl() (ast.EventDecl, error) {
	nameTok := p.advance() // IDENTIFIER, checked by caller loop condition
	decl := ast.EventDecl{Name: nameTok.Lexeme}

	if p.cur().Kind == lexer.LBRACKET {
		p.advance()
		tagTok, err := p.expectKind(lexer.IDENTIFIER, "IDENT")
		if err != nil {
			return ast.EventDecl{}, err
		}
		decl.Tag = tagTok.Lexeme
		decl.HasTag = true
		if _, err := p.expectKind(lexer.RBRACKET, "]"); err != nil {
			return ast.EventDecl{}, err
		}
	}

	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return ast.EventDecl{}, err
	}
	descTok, err := p.expectKind(lexer.STRING, "STRING")
	if err != nil {
		return ast.EventDecl{}, err
	}
	decl.Description = descTok.Lexeme
	decl.Span = span(nameTok, descTok)
	return decl, nil
}

func (p *Parser) parseGroupTerm() (ast.GroupTerm, error) {
	refTok, err := p.expectKind(lexer.IDENTIFIER, "IDENT")
	if err != nil {
		return ast.GroupTerm{}, err
	}
	coherence, err := p.expectPoint()
	if err != nil {
		return ast.GroupTerm{}, err
	}
	if _, err := p.expectKind(lexer.CARET, "^"); err != nil {
		return ast.GroupTerm{}, err
	}
	dispersal, err := p.expectPoint()
	if err != nil {
		return ast.GroupTerm{}, err
	}
	return ast.GroupTerm{
		EventRef:  refTok.Lexeme,
		Coherence: coherence,
		Dispersal: dispersal,
		Span:      span(refTok, refTok),
	}, nil
}

func (p *Parser) parseTarget() (*ast.Target, error) {
	startTok, err := p.expectKeyword("target")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(lexer.IDENTIFIER, "IDENT")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return nil, err
	}

	target := &ast.Target{
		Name:      nameTok.Lexeme,
		DictIndex: make(map[string]int),
	}

	if _, err := p.expectKeyword("key"); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return nil, err
	}
	keyTok, err := p.expectKind(lexer.STRING, "STRING")
	if err != nil {
		return nil, err
	}
	target.Key = keyTok.Lexeme

	if _, err := p.expectKeyword("dictionnary"); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.IDENTIFIER {
		entry, err := p.parseDictEntry()
		if err != nil {
			return nil, err
		}
		target.DictIndex[entry.LocalKey] = len(target.Dictionary)
		target.Dictionary = append(target.Dictionary, entry)
	}

	for p.isKeyword("law") || p.isKeyword("target") {
		child, err := p.parseLawOrTarget()
		if err != nil {
			return nil, err
		}
		switch c := child.(type) {
		case *ast.Law:
			c.ParentTargetName = target.Name
		case *ast.Target:
			c.ParentName = target.Name
		}
		target.Children = append(target.Children, child)
	}

	endTok, err := p.expectKeyword("end_target")
	if err != nil {
		return nil, err
	}
	target.Span = span(startTok, endTok)

	return target, nil
}

func (p *Parser) parseDictEntry() (ast.DictEntry, error) {
	keyTok := p.advance() // IDENTIFIER, checked by caller loop condition
	entry := ast.DictEntry{LocalKey: keyTok.Lexeme}

	if p.cur().Kind == lexer.LBRACKET {
		p.advance()
		refTok, err := p.expectKind(lexer.IDENTIFIER, "IDENT")
		if err != nil {
			return ast.DictEntry{}, err
		}
		entry.ParentRef = refTok.Lexeme
		entry.HasParent = true
		if _, err := p.expectKind(lexer.RBRACKET, "]"); err != nil {
			return ast.DictEntry{}, err
		}
	}

	if _, err := p.expectKind(lexer.COLON, ":"); err != nil {
		return ast.DictEntry{}, err
	}
	descTok, err := p.expectKind(lexer.STRING, "STRING")
	if err != nil {
		return ast.DictEntry{}, err
	}
	entry.Description = descTok.Lexeme
	entry.Span = span(keyTok, descTok)
	return entry, nil
}
