// Package validate checks generated dashboards and rules for PromQL syntax
// errors and references to metrics the service does not export.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects problems found while validating.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors. Warnings do not fail.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

var counterFuncs = map[string]bool{
	"rate":     true,
	"irate":    true,
	"increase": true,
}

// Expr parses a single PromQL expression and checks every selector against
// known. where names the expression's location in messages.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: parsing %q: %v", where, expr, err))
		return res
	}

	parser.Inspect(node, func(n parser.Node, path []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !isKnown(vs.Name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		if strings.HasSuffix(vs.Name, "_total") && !insideCounterFunc(path) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: counter %q used without rate or increase", where, vs.Name))
		}
		return nil
	})
	return res
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

func insideCounterFunc(path []parser.Node) bool {
	for _, p := range path {
		if call, ok := p.(*parser.Call); ok && counterFuncs[call.Func.Name] {
			return true
		}
	}
	return false
}

// Dashboard validates every Prometheus target in dash, including panels
// nested in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	for _, p := range dash.Panels {
		if p.Panel != nil {
			res.merge(panel(*p.Panel, known))
		}
		if p.RowPanel != nil {
			for _, inner := range p.RowPanel.Panels {
				res.merge(panel(inner, known))
			}
		}
	}
	return res
}

func panel(p dashboard.Panel, known map[string]bool) Result {
	var res Result
	title := "untitled"
	if p.Title != nil {
		title = *p.Title
	}
	for i, target := range p.Targets {
		var expr string
		switch q := target.(type) {
		case *prometheus.Dataquery:
			expr = q.Expr
		case prometheus.Dataquery:
			expr = q.Expr
		default:
			continue
		}
		res.merge(Expr(fmt.Sprintf("panel %q target %d", title, i), expr, known))
	}
	return res
}

// Rules validates rule expressions and that each recorded name is listed in
// known.
func Rules(name string, exprs, records []string, known map[string]bool) Result {
	var res Result
	for i, expr := range exprs {
		res.merge(Expr(fmt.Sprintf("%s rule %d", name, i), expr, known))
	}
	for _, rec := range records {
		if !known[rec] {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: recording rule %q missing from known metrics", name, rec))
		}
	}
	return res
}
