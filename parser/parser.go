// Package parser implements the hand-written recursive-descent parser: it
// drives off the lexer's set-valued token stream, selecting candidates by
// syntactic context rather than consuming a linear sequence, and produces a
// concrete parse tree rooted at a File construct.
package parser

import (
	"github.com/wes-sleeman/mithril/cst"
	"github.com/wes-sleeman/mithril/lexer"
	"github.com/wes-sleeman/mithril/token"
)

var literalKinds = [...]token.Kind{
	token.Integer, token.Decimal, token.Character, token.String, token.Boolean, token.Poison,
}

// Parser walks a lexer.Stream with a single cursor offset: the "current token
// set" is whatever the stream stores at idx, and advancing past a token jumps
// idx to that token's Extents.End, which naturally skips trailing whitespace.
type Parser struct {
	stream    lexer.Stream
	idx       int
	sourceLen int
	err       error
}

// Parse consumes stream end to end and returns the root File node. source is
// needed only for its length, to know when the cursor has exhausted input.
func Parse(stream lexer.Stream, source string) (*cst.Branch, error) {
	p := &Parser{stream: stream, idx: 0, sourceLen: len(source)}

	var children []cst.Node
	for p.idx < p.sourceLen && p.err == nil {
		children = append(children, p.parseDefinition())
	}
	if p.err != nil {
		return nil, p.err
	}

	extents := token.Extent{Start: 0, End: p.sourceLen}

	return cst.NewBranchAt(cst.File, extents, children...), nil
}

func (p *Parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) peekExtent() token.Extent {
	if cands := p.stream.At(p.idx); len(cands) > 0 {
		return cands[0].Extents
	}

	return token.Extent{Start: p.idx, End: p.idx}
}

func (p *Parser) find(kind token.Kind, lexeme string) (token.Token, bool) {
	for _, t := range p.stream.At(p.idx) {
		if t.Is(kind, lexeme) {
			return t, true
		}
	}

	return token.Token{}, false
}

func (p *Parser) findAnyLiteral() (token.Token, bool) {
	for _, t := range p.stream.At(p.idx) {
		for _, k := range literalKinds {
			if t.Kind == k {
				return t, true
			}
		}
	}

	return token.Token{}, false
}

func (p *Parser) matchKind(kind token.Kind) bool {
	_, ok := p.find(kind, "")

	return ok
}

func (p *Parser) matchLexeme(kind token.Kind, lexeme string) bool {
	_, ok := p.find(kind, lexeme)

	return ok
}

func (p *Parser) matchAnyLiteral() bool {
	_, ok := p.findAnyLiteral()

	return ok
}

func (p *Parser) advanceTok(t token.Token) {
	p.idx = t.Extents.End
}

// consumeIdentOrLiteral consumes whichever of an Identifier or a literal
// candidate is present at idx. The lexer's ambiguity resolution guarantees
// the two are never both present at once.
func (p *Parser) consumeIdentOrLiteral() (token.Token, bool) {
	if t, ok := p.findAnyLiteral(); ok {
		p.advanceTok(t)

		return t, true
	}
	if t, ok := p.find(token.Identifier, ""); ok {
		p.advanceTok(t)

		return t, true
	}

	return token.Token{}, false
}

// mustConsume requires a specific (kind, lexeme) and raises UnexpectedToken
// if it is absent from the current set.
func (p *Parser) mustConsume(kind token.Kind, lexeme string) token.Token {
	if t, ok := p.find(kind, lexeme); ok {
		p.advanceTok(t)

		return t
	}
	p.fail(unexpectedToken(p.peekExtent(), describe(kind, lexeme)))

	return token.Token{}
}

// mustConsumeDelim requires one of the grammar's six named delimiters and
// raises MissingDelimiter if it is absent.
func (p *Parser) mustConsumeDelim(kind token.Kind, lexeme string) token.Token {
	if t, ok := p.find(kind, lexeme); ok {
		p.advanceTok(t)

		return t
	}
	p.fail(missingDelimiter(p.peekExtent(), lexeme))

	return token.Token{}
}

func describe(kind token.Kind, lexeme string) string {
	if lexeme != "" {
		return lexeme
	}

	return kind.String()
}

// try runs action speculatively: if it returns ok=false, or if it raised a
// parser error along the way, the cursor and any accumulated error are
// rolled back so the caller can fall through to another alternative.
func try[T any](p *Parser, action func() (T, bool)) (T, bool) {
	savedIdx, savedErr := p.idx, p.err

	v, ok := action()
	if !ok || p.err != nil {
		p.idx, p.err = savedIdx, savedErr

		var zero T

		return zero, false
	}

	return v, true
}

// --- Top-level definitions ---------------------------------------------------

func (p *Parser) parseModifiers() *cst.Branch {
	if t, ok := p.find(token.Modifier, ""); ok {
		p.advanceTok(t)
		leaf := &cst.Leaf{Token: t}

		return cst.NewBranchAt(cst.Modifiers, leaf.Extents(), leaf)
	}

	return cst.NewEmptyModifiers(p.idx)
}

func (p *Parser) parseDefHead() (*cst.Leaf, bool) {
	if t, ok := p.find(token.Keyword, "let"); ok {
		p.advanceTok(t)

		return &cst.Leaf{Token: t}, true
	}
	if t, ok := p.find(token.Identifier, ""); ok {
		p.advanceTok(t)

		return &cst.Leaf{Token: t}, true
	}

	return nil, false
}

func (p *Parser) parseDefinition() cst.Node {
	mods := p.parseModifiers()

	if _, ok := p.find(token.Keyword, "type"); ok {
		return p.parseTypeDefinition(mods)
	}

	headLeaf, ok := p.parseDefHead()
	if !ok {
		p.fail(unexpectedToken(p.peekExtent(), "definition head (`type`, `let`, or identifier)"))

		return &cst.Leaf{}
	}

	pattern := p.parsePattern()

	if p.matchLexeme(token.Parenthesis, "(") {
		param := p.parseRecordPattern()
		body, bodyEnd := p.parseBody()
		extents := token.Extent{Start: mods.Extents().Start, End: bodyEnd}

		return cst.NewBranchAt(cst.ProcedureDefinition, extents, mods, headLeaf, pattern, param, body)
	}

	body, bodyEnd := p.parseBody()
	extents := token.Extent{Start: mods.Extents().Start, End: bodyEnd}

	return cst.NewBranchAt(cst.ValueDefinition, extents, mods, headLeaf, pattern, body)
}

func (p *Parser) parseTypeDefinition(mods *cst.Branch) cst.Node {
	p.mustConsume(token.Keyword, "type")
	identTok := p.mustConsume(token.Identifier, "")
	p.mustConsumeDelim(token.EqualSign, "=")
	typeExpr := p.parseTypeExpr()
	semi := p.mustConsumeDelim(token.Semicolon, ";")

	identLeaf := &cst.Leaf{Token: identTok}
	extents := token.Extent{Start: mods.Extents().Start, End: semi.Extents.End}

	return cst.NewBranchAt(cst.TypeDefinition, extents, mods, identLeaf, typeExpr)
}

// --- Patterns -----------------------------------------------------------------

func (p *Parser) parsePattern() cst.Node {
	var base cst.Node

	switch {
	case p.matchAnyLiteral():
		t, _ := p.consumeIdentOrLiteral()
		base = &cst.Leaf{Token: t}
	case p.matchKind(token.Identifier):
		t, _ := p.consumeIdentOrLiteral()
		base = &cst.Leaf{Token: t}
	case p.matchLexeme(token.Parenthesis, "("):
		base = p.parseRecordPattern()
	default:
		p.fail(unexpectedToken(p.peekExtent(), "pattern"))

		return &cst.Leaf{}
	}

	return p.finishTypeTag(base)
}

func (p *Parser) finishTypeTag(base cst.Node) cst.Node {
	if !p.matchKind(token.Colon) {
		return base
	}
	p.mustConsume(token.Colon, "")
	typeExpr := p.parseTypeExpr()
	extents := token.Extent{Start: base.Extents().Start, End: typeExpr.Extents().End}

	return cst.NewBranchAt(cst.TypeTag, extents, base, typeExpr)
}

func (p *Parser) parseRecordPattern() *cst.Branch {
	open := p.mustConsume(token.Parenthesis, "(")

	var children []cst.Node
	for !p.matchLexeme(token.Parenthesis, ")") && p.err == nil {
		children = append(children, p.parseRecordPatternItem())
		if p.err != nil {
			break
		}
		if p.matchKind(token.Comma) {
			p.mustConsume(token.Comma, "")

			continue
		}

		break
	}

	end := p.mustConsumeDelim(token.Parenthesis, ")")
	extents := token.Extent{Start: open.Extents.Start, End: end.Extents.End}

	return cst.NewBranchAt(cst.RecordPattern, extents, children...)
}

func (p *Parser) parseRecordPatternItem() cst.Node {
	if p.matchKind(token.Identifier) || p.matchAnyLiteral() {
		keyTok, _ := p.consumeIdentOrLiteral()
		keyLeaf := &cst.Leaf{Token: keyTok}

		if p.matchKind(token.EqualSign) {
			p.mustConsume(token.EqualSign, "")
			valuePattern := p.parsePattern()
			extents := token.Extent{Start: keyLeaf.Extents().Start, End: valuePattern.Extents().End}

			return cst.NewBranchAt(cst.RecordPatternItem, extents, keyLeaf, valuePattern)
		}

		return p.finishTypeTag(keyLeaf)
	}

	return p.parsePattern()
}

// --- Type expressions ----------------------------------------------------------

func (p *Parser) parseTypeExpr() cst.Node {
	var head cst.Node

	switch {
	case p.matchLexeme(token.Identifier, "ptr"):
		t, _ := p.find(token.Identifier, "ptr")
		p.advanceTok(t)
		head = cst.NewBranchAt(cst.PointerType, t.Extents)
	case p.matchLexeme(token.Parenthesis, "("):
		head = p.parseTypeRecord()
	default:
		t := p.mustConsume(token.Identifier, "")
		head = &cst.Leaf{Token: t}
	}

	for {
		t, ok := p.find(token.Identifier, "ptr")
		if !ok {
			break
		}
		p.advanceTok(t)
		extents := token.Extent{Start: head.Extents().Start, End: t.Extents.End}
		head = cst.NewBranchAt(cst.PointerType, extents, head)
	}

	return head
}

func (p *Parser) parseTypeRecord() cst.Node {
	open := p.mustConsume(token.Parenthesis, "(")

	var children []cst.Node
	for !p.matchLexeme(token.Parenthesis, ")") && p.err == nil {
		children = append(children, p.parseTypeRecordItem())
		if p.err != nil {
			break
		}
		if p.matchKind(token.Comma) {
			p.mustConsume(token.Comma, "")

			continue
		}

		break
	}

	end := p.mustConsumeDelim(token.Parenthesis, ")")
	extents := token.Extent{Start: open.Extents.Start, End: end.Extents.End}

	return cst.NewBranchAt(cst.TypeRecord, extents, children...)
}

func (p *Parser) parseTypeRecordItem() cst.Node {
	if p.matchKind(token.Identifier) {
		if item, ok := try(p, p.tryKeyedTypeRecordItem); ok {
			return item
		}
	}

	return p.parseTypeExpr()
}

func (p *Parser) tryKeyedTypeRecordItem() (cst.Node, bool) {
	keyTok, ok := p.find(token.Identifier, "")
	if !ok {
		return nil, false
	}
	p.advanceTok(keyTok)

	if !p.matchKind(token.Colon) {
		return nil, false
	}
	p.mustConsume(token.Colon, "")

	typeExpr := p.parseTypeExpr()
	keyLeaf := &cst.Leaf{Token: keyTok}
	extents := token.Extent{Start: keyLeaf.Extents().Start, End: typeExpr.Extents().End}

	return cst.NewBranchAt(cst.TypeRecordItem, extents, keyLeaf, typeExpr), true
}

// --- Bodies, blocks, statements --------------------------------------------------

// parseBody returns the body node plus the byte offset its enclosing
// definition's extents should end at: through the terminating `;` for the
// `= expr ;` form, or the block's own end for the block form.
func (p *Parser) parseBody() (cst.Node, int) {
	if p.matchLexeme(token.CurlyBracket, "{") {
		block := p.parseBlock()

		return block, block.Extents().End
	}

	p.mustConsumeDelim(token.EqualSign, "=")
	expr := p.parseExpr()
	semi := p.mustConsumeDelim(token.Semicolon, ";")

	return expr, semi.Extents.End
}

func (p *Parser) parseBlock() *cst.Branch {
	open := p.mustConsume(token.CurlyBracket, "{")

	var children []cst.Node
	for !p.matchLexeme(token.CurlyBracket, "}") && p.err == nil {
		children = append(children, p.parseStatement())
	}

	end := p.mustConsumeDelim(token.CurlyBracket, "}")
	extents := token.Extent{Start: open.Extents.Start, End: end.Extents.End}

	return cst.NewBranchAt(cst.Block, extents, children...)
}

func (p *Parser) parseStatement() cst.Node {
	switch {
	case p.matchLexeme(token.CurlyBracket, "{"):
		return p.parseBlock()
	case p.matchLexeme(token.Keyword, "return"):
		retTok := p.mustConsume(token.Keyword, "return")
		expr := p.parseExpr()
		semi := p.mustConsumeDelim(token.Semicolon, ";")
		extents := token.Extent{Start: retTok.Extents.Start, End: semi.Extents.End}

		return cst.NewBranchAt(cst.ReturnStatement, extents, expr)
	case p.matchLexeme(token.Keyword, "unreachable"):
		tok := p.mustConsume(token.Keyword, "unreachable")
		semi := p.mustConsumeDelim(token.Semicolon, ";")
		extents := token.Extent{Start: tok.Extents.Start, End: semi.Extents.End}

		return cst.NewBranchAt(cst.UnreachableStatement, extents, &cst.Leaf{Token: tok})
	case p.matchLexeme(token.Keyword, "let"):
		return p.parseBindingStatement()
	default:
		if stmt, ok := try(p, p.tryBindingStatement); ok {
			return stmt
		}

		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBindingStatement() cst.Node {
	headTok := p.mustConsume(token.Keyword, "let")
	headLeaf := &cst.Leaf{Token: headTok}
	pattern := p.parsePattern()
	body, bodyEnd := p.parseBody()

	mods := cst.NewEmptyModifiers(headLeaf.Extents().Start)
	extents := token.Extent{Start: mods.Extents().Start, End: bodyEnd}

	return cst.NewBranchAt(cst.ValueDefinition, extents, mods, headLeaf, pattern, body)
}

// tryBindingStatement speculatively parses an identifier-headed binding
// statement (e.g. `int x = 5;`), syntactically ambiguous with an
// identifier-headed expression statement (`f(x);`) until `=` or `{` is seen.
func (p *Parser) tryBindingStatement() (cst.Node, bool) {
	if p.matchKind(token.Keyword) {
		return nil, false
	}

	headTok, ok := p.find(token.Identifier, "")
	if !ok {
		return nil, false
	}
	p.advanceTok(headTok)
	headLeaf := &cst.Leaf{Token: headTok}

	pattern := p.parsePattern()
	if p.err != nil {
		return nil, false
	}
	if !p.matchKind(token.EqualSign) && !p.matchLexeme(token.CurlyBracket, "{") {
		return nil, false
	}

	body, bodyEnd := p.parseBody()
	mods := cst.NewEmptyModifiers(headLeaf.Extents().Start)
	extents := token.Extent{Start: mods.Extents().Start, End: bodyEnd}

	return cst.NewBranchAt(cst.ValueDefinition, extents, mods, headLeaf, pattern, body), true
}

func (p *Parser) parseExpressionStatement() cst.Node {
	expr := p.parseExpr()
	if p.matchKind(token.Semicolon) {
		p.mustConsume(token.Semicolon, "")
	}

	return expr
}

// --- Expressions -----------------------------------------------------------------

func (p *Parser) parseExpr() cst.Node {
	var base cst.Node

	switch {
	case p.matchLexeme(token.Keyword, "if"):
		base = p.parseConditional()
	case p.matchLexeme(token.Keyword, "map"):
		base = p.parseMap()
	case p.matchLexeme(token.Parenthesis, "("):
		base = p.parseRecordExpression()
	case p.matchKind(token.Identifier) || p.matchAnyLiteral():
		base = p.parseIdentOrLiteralHead()
	default:
		p.fail(unexpectedToken(p.peekExtent(), "expression"))

		return &cst.Leaf{}
	}

	return p.finishTypeTag(base)
}

func (p *Parser) parseIdentOrLiteralHead() cst.Node {
	startIdx := p.idx

	headTok, ok := p.consumeIdentOrLiteral()
	if !ok {
		p.fail(unexpectedToken(p.peekExtent(), "identifier or literal"))

		return &cst.Leaf{}
	}
	isIdent := headTok.Kind == token.Identifier

	if isIdent && p.matchLexeme(token.Parenthesis, "(") {
		arg := p.parseRecordExpression()
		identLeaf := &cst.Leaf{Token: headTok}
		extents := token.Extent{Start: identLeaf.Extents().Start, End: arg.Extents().End}

		return cst.NewBranchAt(cst.ProcedureCall, extents, identLeaf, arg)
	}

	if !isIdent && !p.matchKind(token.Dot) {
		return &cst.Leaf{Token: headTok}
	}

	p.idx = startIdx

	return p.parseQualifiedIdentifier()
}

func (p *Parser) parseQualifiedIdentifier() cst.Node {
	first, ok := p.consumeIdentOrLiteral()
	if !ok {
		p.fail(unexpectedToken(p.peekExtent(), "identifier or literal"))

		return &cst.Leaf{}
	}

	var node cst.Node = &cst.Leaf{Token: first}

	for p.matchKind(token.Dot) {
		p.mustConsume(token.Dot, "")
		next, ok := p.consumeIdentOrLiteral()
		if !ok {
			p.fail(unexpectedToken(p.peekExtent(), "identifier or literal"))

			return node
		}
		nextLeaf := &cst.Leaf{Token: next}
		extents := token.Extent{Start: node.Extents().Start, End: nextLeaf.Extents().End}
		node = cst.NewBranchAt(cst.QualifiedIdentifier, extents, node, nextLeaf)
	}

	return node
}

func (p *Parser) parseRecordExpression() *cst.Branch {
	open := p.mustConsume(token.Parenthesis, "(")

	var children []cst.Node
	for !p.matchLexeme(token.Parenthesis, ")") && p.err == nil {
		children = append(children, p.parseRecordExpressionItem())
		if p.err != nil {
			break
		}
		if p.matchKind(token.Comma) {
			p.mustConsume(token.Comma, "")

			continue
		}

		break
	}

	end := p.mustConsumeDelim(token.Parenthesis, ")")
	extents := token.Extent{Start: open.Extents.Start, End: end.Extents.End}

	return cst.NewBranchAt(cst.RecordExpression, extents, children...)
}

func (p *Parser) parseRecordExpressionItem() cst.Node {
	if p.matchKind(token.Identifier) || p.matchAnyLiteral() {
		if item, ok := try(p, p.tryKeyedExpressionItem); ok {
			return item
		}
	}

	return p.parseExpr()
}

func (p *Parser) tryKeyedExpressionItem() (cst.Node, bool) {
	headTok, ok := p.consumeIdentOrLiteral()
	if !ok {
		return nil, false
	}
	if !p.matchKind(token.EqualSign) {
		return nil, false
	}
	p.mustConsume(token.EqualSign, "")

	valueExpr := p.parseExpr()
	headLeaf := &cst.Leaf{Token: headTok}
	extents := token.Extent{Start: headLeaf.Extents().Start, End: valueExpr.Extents().End}

	return cst.NewBranchAt(cst.RecordExpressionItem, extents, headLeaf, valueExpr), true
}

func (p *Parser) parseConditional() cst.Node {
	ifTok := p.mustConsume(token.Keyword, "if")
	cond := p.parseExpr()
	consequent := p.parseBlockOrExpr()
	p.mustConsumeDelim(token.Keyword, "else")

	var alternative cst.Node
	if p.matchLexeme(token.CurlyBracket, "{") {
		alternative = p.parseBlock()
	} else {
		alternative = p.parseExpr()
		p.mustConsumeDelim(token.Semicolon, ";")
	}

	extents := token.Extent{Start: ifTok.Extents.Start, End: alternative.Extents().End}

	return cst.NewBranchAt(cst.Conditional, extents, cond, consequent, alternative)
}

func (p *Parser) parseBlockOrExpr() cst.Node {
	if p.matchLexeme(token.CurlyBracket, "{") {
		return p.parseBlock()
	}

	return p.parseExpr()
}

func (p *Parser) parseMap() cst.Node {
	mapTok := p.mustConsume(token.Keyword, "map")
	binding := p.parsePattern()
	p.mustConsumeDelim(token.Keyword, "over")
	collection := p.parseExpr()
	transformation, transformationEnd := p.parseBody()

	extents := token.Extent{Start: mapTok.Extents.Start, End: transformationEnd}

	return cst.NewBranchAt(cst.Map, extents, binding, collection, transformation)
}
