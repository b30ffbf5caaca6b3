// Package views renders the HTML pages from the embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"fallbackNote": func(r domain.FallbackReason) string { return fallbackNotes[r] },
	"safeURL":      safeURL,
	"price":        FormatPrice,
	"rating":       func(r float64) string { return strconv.FormatFloat(r, 'f', 1, 64) },
}

var (
	indexTmpl   = parse("templates/index.html")
	messageTmpl = parse("templates/message.html")
)

func parse(page string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(funcs).
		ParseFS(templatesFS, "templates/layout.html", page))
}

// IndexData is everything the index page shows.
type IndexData struct {
	Authenticated  bool
	Demo           bool
	UserID         string
	Query          string
	Brand          string
	SellerID       string
	Products       []domain.Product
	Mock           bool
	FallbackReason domain.FallbackReason
}

// fallbackNotes are shown under the demo banner.
var fallbackNotes = map[domain.FallbackReason]string{
	domain.FallbackDemo:          "Você entrou no modo de demonstração.",
	domain.FallbackNoToken:       "Sessão sem token de acesso.",
	domain.FallbackAuthExpired:   "Sua sessão expirou. Entre novamente para ver produtos reais.",
	domain.FallbackUpstreamError: "A API do Mercado Livre está indisponível no momento.",
	domain.FallbackEmpty:         "Nenhum produto encontrado para esta busca.",
}

// Page is a template bound to the data it renders.
type Page struct {
	tmpl *template.Template
	data any
}

// Render writes the full HTML document to w.
func (p Page) Render(w io.Writer) error {
	if err := p.tmpl.ExecuteTemplate(w, "layout", p.data); err != nil {
		return fmt.Errorf("rendering %s: %w", p.tmpl.Name(), err)
	}
	return nil
}

// Index renders the login prompt or the product list.
func Index(d IndexData) Page {
	return Page{tmpl: indexTmpl, data: d}
}

// Message renders a short standalone page, used for configuration errors.
func Message(title, text string) Page {
	return Page{tmpl: messageTmpl, data: struct{ Title, Text string }{title, text}}
}

// safeURL passes http(s) URLs and same-page anchors through, replacing
// anything else with "#".
func safeURL(raw string) string {
	if raw == "" || raw == "#" {
		return "#"
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "#"
	}
	return raw
}

// FormatPrice renders a price in Brazilian notation, e.g. "R$ 3.500,00".
// Other currencies are prefixed with their code.
func FormatPrice(price float64, currency string) string {
	symbol := currency + " "
	if currency == "" || currency == domain.DefaultCurrency {
		symbol = "R$ "
	}

	neg := price < 0
	if neg {
		price = -price
	}
	cents := int64(price*100 + 0.5)
	whole := strconv.FormatInt(cents/100, 10)

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%s,%02d", sign, symbol, grouped.String(), cents%100)
}
