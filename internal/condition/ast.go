package condition

import (
	"fmt"
	"strconv"
	"strings"
)

// Source - интерфейс снапшота состояния, по которому вычисляются условия.
// Реализуется state.Snapshot. Lookup получает dotted-path, разбитый на сегменты,
// и возвращает (значение, true) либо (nil, false), если путь не определен.
//
// ВАЖНО: Eval никогда не мутирует Source. Условия - чистые предикаты.
type Source interface {
	Lookup(path []string) (any, bool)
}

// Expr - узел закрытой грамматики условий.
// Грамматика парсится ОДИН РАЗ при загрузке контента, никакого eval строк в рантайме.
type Expr interface {
	// Eval возвращает значение предиката. Ошибка означает "данные не сходятся"
	// (неопределенный путь, сравнение строки с числом) - вызывающий код обязан
	// трактовать её как fail-closed (выбор недоступен).
	Eval(src Source) (bool, error)
	String() string
}

// --- ЛИТЕРАЛЫ ---

type literalKind uint8

const (
	litString literalKind = iota
	litNumber
	litBool
)

type literal struct {
	Kind literalKind
	Str  string
	Num  float64
	Bool bool
}

func (v literal) String() string {
	switch v.Kind {
	case litString:
		return strconv.Quote(v.Str)
	case litNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return strconv.FormatBool(v.Bool)
	}
}

// --- УЗЛЫ ---

type andExpr struct{ Left, Right Expr }

func (e andExpr) Eval(src Source) (bool, error) {
	l, err := e.Left.Eval(src)
	if err != nil {
		return false, err
	}
	if !l {
		return false, nil
	}
	return e.Right.Eval(src)
}

func (e andExpr) String() string {
	return fmt.Sprintf("(%s AND %s)", e.Left, e.Right)
}

type orExpr struct{ Left, Right Expr }

func (e orExpr) Eval(src Source) (bool, error) {
	l, err := e.Left.Eval(src)
	if err != nil {
		return false, err
	}
	if l {
		return true, nil
	}
	return e.Right.Eval(src)
}

func (e orExpr) String() string {
	return fmt.Sprintf("(%s OR %s)", e.Left, e.Right)
}

type notExpr struct{ Inner Expr }

func (e notExpr) Eval(src Source) (bool, error) {
	v, err := e.Inner.Eval(src)
	if err != nil {
		return false, err
	}
	return !v, nil
}

func (e notExpr) String() string {
	return fmt.Sprintf("NOT %s", e.Inner)
}

// cmpExpr - сравнение значения по пути с литералом: path == 5, path >= 3.
type cmpExpr struct {
	Path []string
	Op   tokenKind
	Val  literal
}

func (e cmpExpr) Eval(src Source) (bool, error) {
	raw, ok := src.Lookup(e.Path)
	if !ok {
		return false, fmt.Errorf("undefined path %q", strings.Join(e.Path, "."))
	}

	switch e.Op {
	case tokEq, tokNeq:
		eq, err := looseEqual(raw, e.Val)
		if err != nil {
			return false, err
		}
		if e.Op == tokNeq {
			return !eq, nil
		}
		return eq, nil

	case tokLt, tokLte, tokGt, tokGte:
		if e.Val.Kind != litNumber {
			return false, fmt.Errorf("ordering compare needs a number, got %s", e.Val)
		}
		n, ok := asNumber(raw)
		if !ok {
			return false, fmt.Errorf("path %q is not numeric", strings.Join(e.Path, "."))
		}
		switch e.Op {
		case tokLt:
			return n < e.Val.Num, nil
		case tokLte:
			return n <= e.Val.Num, nil
		case tokGt:
			return n > e.Val.Num, nil
		default:
			return n >= e.Val.Num, nil
		}
	}

	return false, fmt.Errorf("unknown compare operator")
}

func (e cmpExpr) String() string {
	op := map[tokenKind]string{
		tokEq: "==", tokNeq: "!=", tokLt: "<", tokLte: "<=", tokGt: ">", tokGte: ">=",
	}[e.Op]
	return fmt.Sprintf("%s %s %s", strings.Join(e.Path, "."), op, e.Val)
}

// containsExpr - членство в списке: playerState.inventory contains "Pearl Earring".
type containsExpr struct {
	Path []string
	Val  literal
}

func (e containsExpr) Eval(src Source) (bool, error) {
	raw, ok := src.Lookup(e.Path)
	if !ok {
		return false, fmt.Errorf("undefined path %q", strings.Join(e.Path, "."))
	}
	if e.Val.Kind != litString {
		return false, fmt.Errorf("contains needs a string literal")
	}

	switch list := raw.(type) {
	case []string:
		for _, item := range list {
			if item == e.Val.Str {
				return true, nil
			}
		}
		return false, nil
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok && s == e.Val.Str {
				return true, nil
			}
		}
		return false, nil
	}

	return false, fmt.Errorf("path %q is not a list", strings.Join(e.Path, "."))
}

func (e containsExpr) String() string {
	return fmt.Sprintf("%s contains %s", strings.Join(e.Path, "."), e.Val)
}

// truthyExpr - голый путь без оператора: worldState.curse_broken.
// Истина для bool true, ненулевого числа и непустой строки.
type truthyExpr struct {
	Path []string
}

func (e truthyExpr) Eval(src Source) (bool, error) {
	raw, ok := src.Lookup(e.Path)
	if !ok {
		return false, fmt.Errorf("undefined path %q", strings.Join(e.Path, "."))
	}
	return truthy(raw), nil
}

func (e truthyExpr) String() string {
	return strings.Join(e.Path, ".")
}

// --- ХЕЛПЕРЫ КОЭРЦИИ ---

// asNumber приводит значения из JSON-состояния к float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case nil:
		return false
	}
	if n, ok := asNumber(v); ok {
		return n != 0
	}
	return true
}

// looseEqual сравнивает значение состояния с литералом.
// Типы должны совпадать по категории; несовпадение - это ошибка данных, не false.
func looseEqual(raw any, val literal) (bool, error) {
	switch val.Kind {
	case litString:
		s, ok := raw.(string)
		if !ok {
			return false, fmt.Errorf("type mismatch: want string")
		}
		return s == val.Str, nil
	case litNumber:
		n, ok := asNumber(raw)
		if !ok {
			return false, fmt.Errorf("type mismatch: want number")
		}
		return n == val.Num, nil
	default:
		b, ok := raw.(bool)
		if !ok {
			return false, fmt.Errorf("type mismatch: want bool")
		}
		return b == val.Bool, nil
	}
}
