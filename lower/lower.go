// Package lower converts a concrete parse tree into the typed abstract
// syntax tree defined by package ast: it resolves modifier leaves into
// Visibility, normalises record forms and bodies, and lifts bare-expression
// bodies into single-statement blocks.
package lower

import (
	"fmt"

	"github.com/wes-sleeman/mithril/ast"
	"github.com/wes-sleeman/mithril/cst"
	"github.com/wes-sleeman/mithril/internal/diag"
	"github.com/wes-sleeman/mithril/token"
)

var literalKinds = map[token.Kind]ast.LiteralKind{
	token.Integer:   ast.IntegerLiteral,
	token.Decimal:   ast.DecimalLiteral,
	token.Character: ast.CharacterLiteral,
	token.String:    ast.StringLiteral,
	token.Boolean:   ast.BooleanLiteral,
	token.Poison:    ast.PoisonLiteral,
}

// StructuralMismatchError reports that the lowerer received a parse tree of
// unexpected shape: a construct with the wrong arity, or a leaf where a
// particular branch construct was required.
type StructuralMismatchError struct {
	Reason string
}

func (e StructuralMismatchError) Error() string {
	return "structural mismatch: " + e.Reason
}

func mismatch(where token.Extent, reason string) error {
	return diag.At(where, diag.StructuralMismatch, StructuralMismatchError{Reason: reason})
}

// Lower lowers every file's top-level definitions into a single flat
// sequence, in the order the files are given. It fails fast: the first
// error encountered (in any file) is returned and lowering stops.
//
// Per file, a SymbolTable chained to a root shared across the whole call
// records each definition's defined name. Nothing downstream in this
// package reads it back yet; it exists so the parent-pointer scope
// structure the elaborator needs is already in place by the time lowering
// hands off its result.
func Lower(files []*cst.Branch) ([]ast.Definition, error) {
	var defs []ast.Definition

	root := NewSymbolTable(nil)

	for _, file := range files {
		if file.Construct != cst.File {
			return nil, mismatch(file.Extents(), fmt.Sprintf("expected File, got %s", file.Construct))
		}

		fileScope := NewSymbolTable(root)

		for _, child := range file.Children {
			def, err := lowerDefinition(child)
			if err != nil {
				return nil, err
			}

			fileScope.Define(definedName(def))
			defs = append(defs, def)
		}
	}

	return defs, nil
}

// definedName returns the name a top-level definition binds, or "" for a
// value definition whose pattern is not a bare identifier.
func definedName(def ast.Definition) string {
	switch def := def.(type) {
	case *ast.ValueDefinition:
		return def.DefinedIdentifier
	case *ast.ProcedureDefinition:
		return def.Identifier
	case *ast.TypeDefinition:
		return def.Identifier
	default:
		return ""
	}
}

func lowerDefinition(n cst.Node) (ast.Definition, error) {
	branch, ok := n.(*cst.Branch)
	if !ok {
		return nil, mismatch(n.Extents(), "expected a definition branch, got a leaf")
	}

	switch branch.Construct {
	case cst.ValueDefinition:
		return lowerValueDefinition(branch)
	case cst.ProcedureDefinition:
		return lowerProcedureDefinition(branch)
	case cst.TypeDefinition:
		return lowerTypeDefinition(branch)
	default:
		return nil, mismatch(branch.Extents(), fmt.Sprintf("expected a definition, got %s", branch.Construct))
	}
}

func lowerVisibility(n cst.Node) (ast.Visibility, error) {
	branch, ok := n.(*cst.Branch)
	if !ok || branch.Construct != cst.Modifiers {
		return ast.Private, mismatch(n.Extents(), "expected a Modifiers branch")
	}
	if len(branch.Children) == 0 {
		return ast.Private, nil
	}

	leaf, ok := branch.Children[0].(*cst.Leaf)
	if !ok {
		return ast.Private, mismatch(branch.Extents(), "Modifiers child is not a leaf")
	}

	switch leaf.Token.Lexeme {
	case "public":
		return ast.Public, nil
	case "internal":
		return ast.Internal, nil
	default:
		return ast.Private, nil
	}
}

func lowerValueDefinition(branch *cst.Branch) (*ast.ValueDefinition, error) {
	if len(branch.Children) != 4 {
		return nil, mismatch(branch.Extents(), fmt.Sprintf("ValueDefinition wants 4 children, got %d", len(branch.Children)))
	}

	vis, err := lowerVisibility(branch.Children[0])
	if err != nil {
		return nil, err
	}

	typeAnnotation, err := lowerDefinitionHead(branch.Children[1])
	if err != nil {
		return nil, err
	}

	pattern, err := lowerPattern(branch.Children[2])
	if err != nil {
		return nil, err
	}

	value, err := lowerExpression(branch.Children[3])
	if err != nil {
		return nil, err
	}

	return ast.NewValueDefinition(vis, typeAnnotation, pattern, value, definedIdentifier(pattern), branch.Extents()), nil
}

func lowerProcedureDefinition(branch *cst.Branch) (*ast.ProcedureDefinition, error) {
	if len(branch.Children) != 5 {
		return nil, mismatch(branch.Extents(), fmt.Sprintf("ProcedureDefinition wants 5 children, got %d", len(branch.Children)))
	}

	vis, err := lowerVisibility(branch.Children[0])
	if err != nil {
		return nil, err
	}

	returnType, err := lowerDefinitionHead(branch.Children[1])
	if err != nil {
		return nil, err
	}

	identLeaf, ok := branch.Children[2].(*cst.Leaf)
	if !ok {
		return nil, mismatch(branch.Children[2].Extents(), "ProcedureDefinition name is not a leaf")
	}

	paramBranch, ok := branch.Children[3].(*cst.Branch)
	if !ok || paramBranch.Construct != cst.RecordPattern {
		return nil, mismatch(branch.Children[3].Extents(), "ProcedureDefinition parameter is not a RecordPattern")
	}
	param, err := lowerRecordPattern(paramBranch, nil)
	if err != nil {
		return nil, err
	}

	body, err := toBlock(branch.Children[4])
	if err != nil {
		return nil, err
	}

	return ast.NewProcedureDefinition(vis, returnType, identLeaf.Token.Lexeme, param, body, branch.Extents()), nil
}

func lowerTypeDefinition(branch *cst.Branch) (*ast.TypeDefinition, error) {
	if len(branch.Children) != 3 {
		return nil, mismatch(branch.Extents(), fmt.Sprintf("TypeDefinition wants 3 children, got %d", len(branch.Children)))
	}

	vis, err := lowerVisibility(branch.Children[0])
	if err != nil {
		return nil, err
	}

	identLeaf, ok := branch.Children[1].(*cst.Leaf)
	if !ok {
		return nil, mismatch(branch.Children[1].Extents(), "TypeDefinition name is not a leaf")
	}

	definition, err := lowerTypeExpression(branch.Children[2])
	if err != nil {
		return nil, err
	}

	return ast.NewTypeDefinition(vis, identLeaf.Token.Lexeme, definition, branch.Extents()), nil
}

// lowerDefinitionHead lowers a definition's type-annotation/return-type
// head: the `let` keyword leaf becomes InferredType, anything else lowers as
// an ordinary TypeExpression.
func lowerDefinitionHead(n cst.Node) (ast.TypeExpression, error) {
	if leaf, ok := n.(*cst.Leaf); ok && leaf.Token.Is(token.Keyword, "let") {
		return ast.NewInferredType(leaf.Extents()), nil
	}

	return lowerTypeExpression(n)
}

func definedIdentifier(p ast.Pattern) string {
	if id, ok := p.(*ast.PatternId); ok {
		return id.Name
	}

	return ""
}

// --- Type expressions --------------------------------------------------------

func lowerTypeExpression(n cst.Node) (ast.TypeExpression, error) {
	switch n := n.(type) {
	case *cst.Leaf:
		if n.Token.Is(token.Keyword, "let") {
			return ast.NewInferredType(n.Extents()), nil
		}
		if n.Token.Kind == token.Identifier {
			return ast.NewTypeId(n.Token.Lexeme, n.Extents()), nil
		}

		return nil, mismatch(n.Extents(), "expected a type identifier leaf")

	case *cst.Branch:
		switch n.Construct {
		case cst.PointerType:
			if len(n.Children) == 0 {
				return ast.NewPointerType(ast.NewInferredType(n.Extents()), n.Extents()), nil
			}

			pointee, err := lowerTypeExpression(n.Children[0])
			if err != nil {
				return nil, err
			}

			return ast.NewPointerType(pointee, n.Extents()), nil

		case cst.TypeRecord:
			items := make([]ast.TypeRecordItem, len(n.Children))
			for i, c := range n.Children {
				key, typ, err := lowerTypeRecordItem(c)
				if err != nil {
					return nil, err
				}

				items[i] = ast.TypeRecordItem{Key: key, Type: typ}
			}

			return ast.NewRecordType(items, n.Extents()), nil

		default:
			return nil, mismatch(n.Extents(), fmt.Sprintf("unexpected %s in type-expression position", n.Construct))
		}

	default:
		return nil, mismatch(n.Extents(), "unknown node kind")
	}
}

func lowerTypeRecordItem(n cst.Node) (ast.RecordKey, ast.TypeExpression, error) {
	if branch, ok := n.(*cst.Branch); ok && branch.Construct == cst.TypeRecordItem {
		if len(branch.Children) != 2 {
			return nil, nil, mismatch(branch.Extents(), "TypeRecordItem wants 2 children")
		}

		keyLeaf, ok := branch.Children[0].(*cst.Leaf)
		if !ok {
			return nil, nil, mismatch(branch.Children[0].Extents(), "TypeRecordItem key is not a leaf")
		}

		typ, err := lowerTypeExpression(branch.Children[1])
		if err != nil {
			return nil, nil, err
		}

		return ast.NewAccessKey(keyLeaf.Token.Lexeme, keyLeaf.Extents()), typ, nil
	}

	typ, err := lowerTypeExpression(n)
	if err != nil {
		return nil, nil, err
	}

	return ast.NewEmptyRecordKey(n.Extents()), typ, nil
}

// --- Patterns -----------------------------------------------------------------

func lowerPattern(n cst.Node) (ast.Pattern, error) {
	if branch, ok := n.(*cst.Branch); ok && branch.Construct == cst.TypeTag {
		if len(branch.Children) != 2 {
			return nil, mismatch(branch.Extents(), "TypeTag wants 2 children")
		}

		typeTag, err := lowerTypeExpression(branch.Children[1])
		if err != nil {
			return nil, err
		}

		return lowerPatternBase(branch.Children[0], typeTag, branch.Extents())
	}

	return lowerPatternBase(n, nil, n.Extents())
}

func lowerPatternBase(n cst.Node, typeTag ast.TypeExpression, extents token.Extent) (ast.Pattern, error) {
	switch n := n.(type) {
	case *cst.Leaf:
		if kind, ok := literalKinds[n.Token.Kind]; ok {
			lit := ast.NewLiteral(kind, n.Token.Lexeme, n.Extents())

			return ast.NewPatternLiteral(lit, typeTag, extents), nil
		}
		if n.Token.Kind == token.Identifier {
			return ast.NewPatternId(n.Token.Lexeme, typeTag, extents), nil
		}

		return nil, mismatch(n.Extents(), "expected an identifier or literal pattern leaf")

	case *cst.Branch:
		if n.Construct == cst.RecordPattern {
			return lowerRecordPattern(n, typeTag)
		}

		return nil, mismatch(n.Extents(), fmt.Sprintf("unexpected %s in pattern position", n.Construct))

	default:
		return nil, mismatch(n.Extents(), "unknown node kind")
	}
}

func lowerRecordPattern(branch *cst.Branch, typeTag ast.TypeExpression) (*ast.RecordPattern, error) {
	items := make([]ast.RecordPatternItem, len(branch.Children))
	for i, c := range branch.Children {
		key, value, err := lowerRecordPatternItem(c)
		if err != nil {
			return nil, err
		}

		items[i] = ast.RecordPatternItem{Key: key, Value: value}
	}

	return ast.NewRecordPattern(items, typeTag, branch.Extents()), nil
}

func lowerRecordPatternItem(n cst.Node) (ast.RecordKey, ast.Pattern, error) {
	if branch, ok := n.(*cst.Branch); ok && branch.Construct == cst.RecordPatternItem {
		if len(branch.Children) != 2 {
			return nil, nil, mismatch(branch.Extents(), "RecordPatternItem wants 2 children")
		}

		keyLeaf, ok := branch.Children[0].(*cst.Leaf)
		if !ok {
			return nil, nil, mismatch(branch.Children[0].Extents(), "RecordPatternItem key is not a leaf")
		}

		value, err := lowerPattern(branch.Children[1])
		if err != nil {
			return nil, nil, err
		}

		return lowerRecordKeyFromLeaf(keyLeaf), value, nil
	}

	value, err := lowerPattern(n)
	if err != nil {
		return nil, nil, err
	}

	return ast.NewEmptyRecordKey(n.Extents()), value, nil
}

func lowerRecordKeyFromLeaf(leaf *cst.Leaf) ast.RecordKey {
	if kind, ok := literalKinds[leaf.Token.Kind]; ok {
		lit := ast.NewLiteral(kind, leaf.Token.Lexeme, leaf.Extents())

		return ast.NewLiteralKey(lit, leaf.Extents())
	}

	return ast.NewAccessKey(leaf.Token.Lexeme, leaf.Extents())
}

// --- Expressions --------------------------------------------------------------

func lowerExpression(n cst.Node) (ast.Expression, error) {
	switch n := n.(type) {
	case *cst.Leaf:
		if kind, ok := literalKinds[n.Token.Kind]; ok {
			return ast.NewLiteral(kind, n.Token.Lexeme, n.Extents()), nil
		}
		if n.Token.Kind == token.Identifier {
			return ast.NewAccess(n.Token.Lexeme, n.Extents()), nil
		}

		return nil, mismatch(n.Extents(), "expected an identifier or literal expression leaf")

	case *cst.Branch:
		switch n.Construct {
		case cst.Block:
			blk, err := lowerBlock(n)
			if err != nil {
				return nil, err
			}

			return ast.NewBlockExpression(blk, n.Extents()), nil

		case cst.TypeTag:
			if len(n.Children) != 2 {
				return nil, mismatch(n.Extents(), "TypeTag wants 2 children")
			}

			value, err := lowerExpression(n.Children[0])
			if err != nil {
				return nil, err
			}

			typ, err := lowerTypeExpression(n.Children[1])
			if err != nil {
				return nil, err
			}

			return ast.NewTypeAscription(value, typ, n.Extents()), nil

		case cst.RecordExpression:
			return lowerRecordExpression(n)

		case cst.ProcedureCall:
			if len(n.Children) != 2 {
				return nil, mismatch(n.Extents(), "ProcedureCall wants 2 children")
			}

			callee, err := lowerExpression(n.Children[0])
			if err != nil {
				return nil, err
			}

			argBranch, ok := n.Children[1].(*cst.Branch)
			if !ok || argBranch.Construct != cst.RecordExpression {
				return nil, mismatch(n.Children[1].Extents(), "ProcedureCall argument is not a RecordExpression")
			}
			arg, err := lowerRecordExpression(argBranch)
			if err != nil {
				return nil, err
			}

			return ast.NewProcedureCall(callee, arg, n.Extents()), nil

		case cst.Conditional:
			if len(n.Children) != 3 {
				return nil, mismatch(n.Extents(), "Conditional wants 3 children")
			}

			cond, err := lowerExpression(n.Children[0])
			if err != nil {
				return nil, err
			}

			consequent, err := toBlock(n.Children[1])
			if err != nil {
				return nil, err
			}

			alternative, err := toBlock(n.Children[2])
			if err != nil {
				return nil, err
			}

			return ast.NewConditional(cond, consequent, alternative, n.Extents()), nil

		case cst.Map:
			if len(n.Children) != 3 {
				return nil, mismatch(n.Extents(), "Map wants 3 children")
			}

			binding, err := lowerPattern(n.Children[0])
			if err != nil {
				return nil, err
			}

			collection, err := lowerExpression(n.Children[1])
			if err != nil {
				return nil, err
			}

			transformation, err := toBlock(n.Children[2])
			if err != nil {
				return nil, err
			}

			return ast.NewMap(binding, collection, transformation, n.Extents()), nil

		case cst.QualifiedIdentifier:
			var segments []ast.Expression
			if err := flattenQualified(n, &segments); err != nil {
				return nil, err
			}

			return ast.NewQualifiedIdentifier(segments, n.Extents()), nil

		default:
			return nil, mismatch(n.Extents(), fmt.Sprintf("unexpected %s in expression position", n.Construct))
		}

	default:
		return nil, mismatch(n.Extents(), "unknown node kind")
	}
}

func flattenQualified(n cst.Node, out *[]ast.Expression) error {
	if branch, ok := n.(*cst.Branch); ok && branch.Construct == cst.QualifiedIdentifier {
		if len(branch.Children) != 2 {
			return mismatch(branch.Extents(), "QualifiedIdentifier wants 2 children")
		}
		if err := flattenQualified(branch.Children[0], out); err != nil {
			return err
		}

		seg, err := lowerExpression(branch.Children[1])
		if err != nil {
			return err
		}
		*out = append(*out, seg)

		return nil
	}

	seg, err := lowerExpression(n)
	if err != nil {
		return err
	}
	*out = append(*out, seg)

	return nil
}

func lowerRecordExpression(branch *cst.Branch) (*ast.RecordExpression, error) {
	items := make([]ast.RecordExpressionItem, len(branch.Children))
	for i, c := range branch.Children {
		key, value, err := lowerRecordExpressionItem(c)
		if err != nil {
			return nil, err
		}

		items[i] = ast.RecordExpressionItem{Key: key, Value: value}
	}

	return ast.NewRecordExpression(items, branch.Extents()), nil
}

func lowerRecordExpressionItem(n cst.Node) (ast.RecordKey, ast.Expression, error) {
	if branch, ok := n.(*cst.Branch); ok && branch.Construct == cst.RecordExpressionItem {
		if len(branch.Children) != 2 {
			return nil, nil, mismatch(branch.Extents(), "RecordExpressionItem wants 2 children")
		}

		keyLeaf, ok := branch.Children[0].(*cst.Leaf)
		if !ok {
			return nil, nil, mismatch(branch.Children[0].Extents(), "RecordExpressionItem key is not a leaf")
		}

		value, err := lowerExpression(branch.Children[1])
		if err != nil {
			return nil, nil, err
		}

		return lowerRecordKeyFromLeaf(keyLeaf), value, nil
	}

	value, err := lowerExpression(n)
	if err != nil {
		return nil, nil, err
	}

	return ast.NewEmptyRecordKey(n.Extents()), value, nil
}

// --- Blocks and statements ------------------------------------------------------

// toBlock implements the block-lifting rule: a Block construct lowers
// item-by-item, anything else is a single expression lifted into
// Block([ReturnStatement(expression)]).
func toBlock(n cst.Node) (*ast.Block, error) {
	if branch, ok := n.(*cst.Branch); ok && branch.Construct == cst.Block {
		return lowerBlock(branch)
	}

	expr, err := lowerExpression(n)
	if err != nil {
		return nil, err
	}

	ret := ast.NewReturnStatement(expr, n.Extents())

	return ast.NewBlock([]ast.Statement{ret}, n.Extents()), nil
}

func lowerBlock(branch *cst.Branch) (*ast.Block, error) {
	stmts := make([]ast.Statement, len(branch.Children))
	for i, c := range branch.Children {
		stmt, err := lowerStatement(c)
		if err != nil {
			return nil, err
		}

		stmts[i] = stmt
	}

	return ast.NewBlock(stmts, branch.Extents()), nil
}

func lowerStatement(n cst.Node) (ast.Statement, error) {
	switch n := n.(type) {
	case *cst.Leaf:
		expr, err := lowerExpression(n)
		if err != nil {
			return nil, err
		}

		return ast.NewExpressionStatement(expr, n.Extents()), nil

	case *cst.Branch:
		switch n.Construct {
		case cst.UnreachableStatement:
			return ast.NewUnreachableStatement(n.Extents()), nil

		case cst.Block:
			blk, err := lowerBlock(n)
			if err != nil {
				return nil, err
			}

			return ast.NewExpressionStatement(ast.NewBlockExpression(blk, n.Extents()), n.Extents()), nil

		case cst.ReturnStatement:
			if len(n.Children) != 1 {
				return nil, mismatch(n.Extents(), "ReturnStatement wants 1 child")
			}

			expr, err := lowerExpression(n.Children[0])
			if err != nil {
				return nil, err
			}

			return ast.NewReturnStatement(expr, n.Extents()), nil

		case cst.ValueDefinition:
			def, err := lowerValueDefinition(n)
			if err != nil {
				return nil, err
			}

			return ast.NewBindingStatement(def, n.Extents()), nil

		default:
			expr, err := lowerExpression(n)
			if err != nil {
				return nil, err
			}

			return ast.NewExpressionStatement(expr, n.Extents()), nil
		}

	default:
		return nil, mismatch(n.Extents(), "unknown node kind")
	}
}
