package condition

import (
	"fmt"
	"strings"
	"unicode"
)

// tokenKind - внутренний числовой идентификатор токена
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokPath
	tokString
	tokNumber
	tokBool
	tokAnd
	tokOr
	tokNot
	tokContains
	tokEq
	tokNeq
	tokLt
	tokLte
	tokGt
	tokGte
	tokLParen
	tokRParen
)

type token struct {
	Kind tokenKind
	Text string
	Pos  int
}

// lexer разбивает исходное выражение на токены.
// Выражения пишутся авторами контента, поэтому лексер снисходителен к регистру
// ключевых слов (AND/and, CONTAINS/contains) и принимает оба вида кавычек.
type lexer struct {
	src  string
	pos  int
	toks []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++

		case c == '(':
			l.emit(tokLParen, "(")
			l.pos++
		case c == ')':
			l.emit(tokRParen, ")")
			l.pos++

		case c == '"' || c == '\'':
			if err := l.lexString(c); err != nil {
				return nil, err
			}

		case c == '=' || c == '!' || c == '<' || c == '>':
			if err := l.lexOperator(); err != nil {
				return nil, err
			}

		case c == '&':
			// Поддерживаем && как синоним AND (авторы приходят из JS)
			if l.peek(1) != '&' {
				return nil, fmt.Errorf("condition: stray '&' at %d", l.pos)
			}
			l.emit(tokAnd, "&&")
			l.pos += 2

		case c == '|':
			if l.peek(1) != '|' {
				return nil, fmt.Errorf("condition: stray '|' at %d", l.pos)
			}
			l.emit(tokOr, "||")
			l.pos += 2

		case unicode.IsDigit(rune(c)) || (c == '-' && unicode.IsDigit(rune(l.peek(1)))):
			l.lexNumber()

		case isIdentStart(c):
			l.lexWord()

		default:
			return nil, fmt.Errorf("condition: unexpected character %q at %d", c, l.pos)
		}
	}

	l.emit(tokEOF, "")
	return l.toks, nil
}

func (l *lexer) emit(k tokenKind, text string) {
	l.toks = append(l.toks, token{Kind: k, Text: text, Pos: l.pos})
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) lexString(quote byte) error {
	start := l.pos
	l.pos++ // открывающая кавычка
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == quote {
			l.toks = append(l.toks, token{Kind: tokString, Text: sb.String(), Pos: start})
			l.pos++
			return nil
		}
		sb.WriteByte(c)
		l.pos++
	}
	return fmt.Errorf("condition: unterminated string at %d", start)
}

func (l *lexer) lexOperator() error {
	start := l.pos
	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}

	switch two {
	case "==":
		l.emit(tokEq, "==")
		l.pos += 2
		return nil
	case "!=":
		l.emit(tokNeq, "!=")
		l.pos += 2
		return nil
	case "<=":
		l.emit(tokLte, "<=")
		l.pos += 2
		return nil
	case ">=":
		l.emit(tokGte, ">=")
		l.pos += 2
		return nil
	}

	switch l.src[l.pos] {
	case '<':
		l.emit(tokLt, "<")
		l.pos++
	case '>':
		l.emit(tokGt, ">")
		l.pos++
	case '!':
		l.emit(tokNot, "!")
		l.pos++
	default:
		return fmt.Errorf("condition: unexpected operator at %d", start)
	}
	return nil
}

func (l *lexer) lexNumber() {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && (unicode.IsDigit(rune(l.src[l.pos])) || l.src[l.pos] == '.') {
		l.pos++
	}
	l.toks = append(l.toks, token{Kind: tokNumber, Text: l.src[start:l.pos], Pos: start})
}

// lexWord читает идентификатор: либо ключевое слово, либо dotted-path
// (worldState.curse_broken, playerState.attributes.wisdom).
func (l *lexer) lexWord() {
	start := l.pos
	for l.pos < len(l.src) && (isIdentPart(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	word := l.src[start:l.pos]

	switch strings.ToUpper(word) {
	case "AND":
		l.toks = append(l.toks, token{Kind: tokAnd, Text: word, Pos: start})
	case "OR":
		l.toks = append(l.toks, token{Kind: tokOr, Text: word, Pos: start})
	case "NOT":
		l.toks = append(l.toks, token{Kind: tokNot, Text: word, Pos: start})
	case "CONTAINS":
		l.toks = append(l.toks, token{Kind: tokContains, Text: word, Pos: start})
	case "TRUE", "FALSE":
		l.toks = append(l.toks, token{Kind: tokBool, Text: strings.ToLower(word), Pos: start})
	default:
		l.toks = append(l.toks, token{Kind: tokPath, Text: word, Pos: start})
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
