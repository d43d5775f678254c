package condition

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse разбирает условие в AST. Вызывается загрузчиком контента один раз на
// каждое условие; ошибка парсинга - это дефект данных сцены, который должен
// быть пойман ДО старта сессии.
//
// Грамматика (по убыванию приоритета):
//
//	expr     := orExpr
//	orExpr   := andExpr { OR andExpr }
//	andExpr  := unary { AND unary }
//	unary    := NOT unary | '(' expr ')' | primary
//	primary  := path ( cmpOp literal | CONTAINS string )?
//	cmpOp    := == | != | < | <= | > | >=
func Parse(src string) (Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("condition: empty expression")
	}

	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != tokEOF {
		return nil, fmt.Errorf("condition: trailing tokens at %d", p.cur().Pos)
	}
	return expr, nil
}

type parser struct {
	toks []token
	idx  int
}

func (p *parser) cur() token {
	return p.toks[p.idx]
}

func (p *parser) advance() token {
	t := p.toks[p.idx]
	if p.idx < len(p.toks)-1 {
		p.idx++
	}
	return t
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orExpr{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == tokAnd {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andExpr{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.cur().Kind {
	case tokNot:
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{Inner: inner}, nil

	case tokLParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur().Kind != tokRParen {
			return nil, fmt.Errorf("condition: missing ')' at %d", p.cur().Pos)
		}
		p.advance()
		return inner, nil
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.cur()
	if t.Kind != tokPath {
		return nil, fmt.Errorf("condition: expected path at %d, got %q", t.Pos, t.Text)
	}
	p.advance()

	path := strings.Split(t.Text, ".")
	for _, seg := range path {
		if seg == "" {
			return nil, fmt.Errorf("condition: malformed path %q at %d", t.Text, t.Pos)
		}
	}

	switch p.cur().Kind {
	case tokEq, tokNeq, tokLt, tokLte, tokGt, tokGte:
		op := p.advance().Kind
		val, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return cmpExpr{Path: path, Op: op, Val: val}, nil

	case tokContains:
		p.advance()
		val, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if val.Kind != litString {
			return nil, fmt.Errorf("condition: contains needs a string literal")
		}
		return containsExpr{Path: path, Val: val}, nil
	}

	// Голый путь - truthy-проверка
	return truthyExpr{Path: path}, nil
}

func (p *parser) parseLiteral() (literal, error) {
	t := p.advance()
	switch t.Kind {
	case tokString:
		return literal{Kind: litString, Str: t.Text}, nil
	case tokNumber:
		n, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return literal{}, fmt.Errorf("condition: bad number %q at %d", t.Text, t.Pos)
		}
		return literal{Kind: litNumber, Num: n}, nil
	case tokBool:
		return literal{Kind: litBool, Bool: t.Text == "true"}, nil
	}
	return literal{}, fmt.Errorf("condition: expected literal at %d, got %q", t.Pos, t.Text)
}
