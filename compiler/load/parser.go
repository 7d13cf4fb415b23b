package load

import (
	"fmt"
	"io"
	"strconv"
	"text/scanner"
	"unicode"
)

// Grammar:
//
//	File      := [ 'namespace' Ident { '.' Ident } ';' ] Decl { Decl } [ 'root_type' Ident ';' ]
//	Decl      := Enum | Table
//	Enum      := 'enum' Ident ':' BaseType '{' Ident [ ',' ] { Ident [ ',' ] } '}'
//	Table     := 'table' Ident '{' { Field } '}'
//	Field     := Ident ':' Type [ '=' Default ] ';'
//	Type      := Ident | '[' Ident ']' | '[' Ident ':' Int ']'
//	Default   := 'true' | 'false' | [ '-' ] Number
//
// Block and line comments are ignored anywhere.

type parser struct {
	s       scanner.Scanner
	tok     rune
	pos     Pos
	scanErr *SyntaxError
}

// Parse reads a schema from r. The name is used in positions and error
// messages.
func Parse(name string, r io.Reader) (*File, error) {
	p := &parser{}
	p.s.Init(r)
	p.s.Filename = name
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanComments | scanner.SkipComments
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.scanErr == nil {
			pos := s.Pos()
			p.scanErr = &SyntaxError{
				Pos:     Pos{Filename: name, Line: pos.Line, Column: pos.Column},
				Message: msg,
			}
		}
	}
	p.next()
	f, err := p.parseFile()
	if p.scanErr != nil {
		return nil, p.scanErr
	}
	if err != nil {
		return nil, err
	}
	f.Path = name
	return f, nil
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.pos = Pos{Filename: p.s.Filename, Line: p.s.Position.Line, Column: p.s.Position.Column}
}

func (p *parser) text() string {
	if p.tok == scanner.EOF {
		return ""
	}
	return p.s.TokenText()
}

func (p *parser) errorf(format string, args ...any) error {
	if p.scanErr != nil {
		return p.scanErr
	}
	return &SyntaxError{Pos: p.pos, Token: p.text(), Message: fmt.Sprintf(format, args...)}
}

func (p *parser) keyword(kw string) bool {
	return p.tok == scanner.Ident && p.s.TokenText() == kw
}

func (p *parser) expect(r rune) error {
	if p.tok != r {
		return p.errorf("expected %q", r)
	}
	p.next()
	return nil
}

func (p *parser) ident(what string) (string, error) {
	if p.tok != scanner.Ident {
		return "", p.errorf("expected %s", what)
	}
	name := p.s.TokenText()
	p.next()
	return name, nil
}

func (p *parser) parseFile() (*File, error) {
	f := &File{}
	if p.keyword("namespace") {
		ns, err := p.parseNamespace()
		if err != nil {
			return nil, err
		}
		f.Namespace = ns
	}
	for p.keyword("enum") || p.keyword("table") {
		var (
			d   Decl
			err error
		)
		if p.keyword("enum") {
			d, err = p.parseEnum()
		} else {
			d, err = p.parseTable()
		}
		if err != nil {
			return nil, err
		}
		f.Decls = append(f.Decls, d)
	}
	if len(f.Decls) == 0 {
		return nil, p.errorf("expected enum or table declaration")
	}
	if p.keyword("root_type") {
		p.next()
		f.RootPos = p.pos
		name, err := p.ident("root type name")
		if err != nil {
			return nil, err
		}
		if err := p.expect(';'); err != nil {
			return nil, err
		}
		f.RootType = name
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("expected enum, table or root_type declaration")
	}
	return f, nil
}

func (p *parser) parseNamespace() ([]string, error) {
	p.next()
	var ns []string
	for {
		seg, err := p.ident("namespace identifier")
		if err != nil {
			return nil, err
		}
		ns = append(ns, seg)
		if p.tok != '.' {
			break
		}
		p.next()
	}
	return ns, p.expect(';')
}

func (p *parser) parseEnum() (*Enum, error) {
	e := &Enum{Pos: p.pos}
	p.next()
	var err error
	if e.Name, err = p.ident("enum name"); err != nil {
		return nil, err
	}
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	if p.tok != scanner.Ident || !IsBaseType(p.s.TokenText()) {
		return nil, p.errorf("expected base type of enum %s", e.Name)
	}
	e.Base = p.s.TokenText()
	p.next()
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	for p.tok == scanner.Ident {
		e.Values = append(e.Values, p.s.TokenText())
		p.next()
		if p.tok == ',' {
			p.next()
		}
	}
	if len(e.Values) == 0 {
		return nil, p.errorf("expected value of enum %s", e.Name)
	}
	return e, p.expect('}')
}

func (p *parser) parseTable() (*Table, error) {
	t := &Table{Pos: p.pos}
	p.next()
	if p.tok == scanner.Ident && !unicode.IsLetter([]rune(p.s.TokenText())[0]) {
		return nil, p.errorf("table name must start with a letter")
	}
	var err error
	if t.Name, err = p.ident("table name"); err != nil {
		return nil, err
	}
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	for p.tok == scanner.Ident {
		fd, err := p.parseField()
		if err != nil {
			return nil, err
		}
		t.Fields = append(t.Fields, fd)
	}
	return t, p.expect('}')
}

func (p *parser) parseField() (*Field, error) {
	fd := &Field{Pos: p.pos}
	fd.Name = p.s.TokenText()
	p.next()
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	fd.Type = typ
	if p.tok == '=' {
		if typ.Kind != Bare || typ.Name == "string" {
			return nil, p.errorf("default value not allowed on field %s of type %s", fd.Name, typ)
		}
		p.next()
		if fd.Default, err = p.parseDefault(); err != nil {
			return nil, err
		}
	}
	return fd, p.expect(';')
}

func (p *parser) parseType() (TypeRef, error) {
	if p.tok != '[' {
		name, err := p.ident("type name")
		return TypeRef{Name: name, Kind: Bare}, err
	}
	p.next()
	name, err := p.ident("element type name")
	if err != nil {
		return TypeRef{}, err
	}
	typ := TypeRef{Name: name, Kind: Vector}
	if p.tok == ':' {
		p.next()
		if p.tok != scanner.Int {
			return TypeRef{}, p.errorf("expected array length")
		}
		n, err := strconv.Atoi(p.s.TokenText())
		if err != nil {
			return TypeRef{}, p.errorf("invalid array length")
		}
		typ.Kind, typ.Count = Array, n
		p.next()
	}
	return typ, p.expect(']')
}

func (p *parser) parseDefault() (*Literal, error) {
	switch {
	case p.keyword("true"), p.keyword("false"):
		lit := &Literal{Kind: LitBool, Text: p.s.TokenText()}
		p.next()
		return lit, nil
	case p.tok == '-':
		p.next()
		if p.tok != scanner.Int && p.tok != scanner.Float {
			return nil, p.errorf("expected number after '-'")
		}
		lit := &Literal{Kind: LitNumber, Text: "-" + p.s.TokenText()}
		p.next()
		return lit, nil
	case p.tok == scanner.Int, p.tok == scanner.Float:
		lit := &Literal{Kind: LitNumber, Text: p.s.TokenText()}
		p.next()
		return lit, nil
	default:
		return nil, p.errorf("expected default value")
	}
}
