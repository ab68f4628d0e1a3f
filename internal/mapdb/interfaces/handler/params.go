package handler

import (
	"shamtool/internal/mapdb/domain"
	"shamtool/internal/shared/queryparam"
)

const mapCodeKind = "valid mapcode (e.g. @123456, 123456)"

func mapCode(src queryparam.Source, name string) (int64, error) {
	code, _, err := queryparam.Parse(src, name, true, mapCodeKind, domain.ParseMapCode)
	return code, err
}

// params collects optional values, keeping the first error.
type params struct {
	src queryparam.Source
	err error
}

func (p *params) str(name string) *string {
	v, ok, err := queryparam.String(p.src, name, false)
	return keep(p, v, ok, err)
}

func (p *params) integer(name string) *int64 {
	v, ok, err := queryparam.Int(p.src, name, false)
	return keep(p, v, ok, err)
}

func (p *params) boolean(name string) *bool {
	v, ok, err := queryparam.Bool(p.src, name, false)
	return keep(p, v, ok, err)
}

func keep[T any](p *params, v T, ok bool, err error) *T {
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return nil
	}
	if !ok {
		return nil
	}
	return &v
}

func (p *params) common(code int64) domain.CommonInput {
	return domain.CommonInput{
		MapCode:  code,
		Author:   p.str("author"),
		XML:      p.str("xml"),
		Wind:     p.integer("wind"),
		Gravity:  p.integer("gravity"),
		MGOC:     p.integer("mgoc"),
		ImageURL: p.str("image_url"),
	}
}

func (p *params) special() domain.SpecialInput {
	return domain.SpecialInput{
		Difficulty: p.integer("difficulty"),
		Cage:       p.boolean("cage"),
		NoAnchor:   p.boolean("no_anchor"),
		NoMotor:    p.boolean("no_motor"),
		Water:      p.boolean("water"),
		Timer:      p.boolean("timer"),
	}
}
