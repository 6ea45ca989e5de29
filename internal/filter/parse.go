package filter

import (
	"fmt"
	"strings"
)

// SyntaxError reports where an expression stopped making sense.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("filter syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Parse reads an expression produced by Build back into clauses. It accepts
// only the subset the client emits: contains, exact and numeric clauses
// joined by "and". An empty expression yields no clauses.
func Parse(expr string) ([]Clause, error) {
	p := parser{src: expr}
	p.skipSpace()
	if p.done() {
		return nil, nil
	}

	var clauses []Clause
	for {
		c, err := p.clause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)

		p.skipSpace()
		if p.done() {
			return clauses, nil
		}
		if !p.keyword("and") {
			return nil, p.errorf("expected \"and\"")
		}
		p.skipSpace()
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// keyword consumes word when it is followed by a space or the end of input.
func (p *parser) keyword(word string) bool {
	rest := p.src[p.pos:]
	if len(rest) < len(word) || !strings.EqualFold(rest[:len(word)], word) {
		return false
	}
	if len(rest) > len(word) && rest[len(word)] != ' ' {
		return false
	}
	p.pos += len(word)
	return true
}

func (p *parser) clause() (Clause, error) {
	start := p.pos
	for !p.done() && isFieldByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return Clause{}, p.errorf("expected field name")
	}
	field := p.src[start:p.pos]

	if p.done() {
		return Clause{}, p.errorf("expected operator after %q", field)
	}
	op := p.src[p.pos]
	p.pos++

	switch op {
	case '~':
		value, err := p.quoted()
		if err != nil {
			return Clause{}, err
		}
		value = strings.TrimSuffix(strings.TrimPrefix(value, "*"), "*")
		return Clause{Field: field, Match: Contains, Value: value}, nil
	case ':':
		if !p.done() && p.src[p.pos] == '\'' {
			value, err := p.quoted()
			if err != nil {
				return Clause{}, err
			}
			return Clause{Field: field, Match: Exact, Value: value}, nil
		}
		start := p.pos
		for !p.done() && p.src[p.pos] != ' ' {
			p.pos++
		}
		if p.pos == start {
			return Clause{}, p.errorf("expected value for %q", field)
		}
		return Clause{Field: field, Match: Numeric, Value: p.src[start:p.pos]}, nil
	default:
		p.pos--
		return Clause{}, p.errorf("unknown operator %q", op)
	}
}

func (p *parser) quoted() (string, error) {
	if p.done() || p.src[p.pos] != '\'' {
		return "", p.errorf("expected quote")
	}
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], '\'')
	if end < 0 {
		return "", p.errorf("unterminated quote")
	}
	value := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return value, nil
}

func isFieldByte(b byte) bool {
	return b == '_' || b == '.' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
