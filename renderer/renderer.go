// Package renderer formats the catalog and the portfolio for display: plain
// console screens for the interactive menu, and markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"text/template"

	"github.com/etnz/papertrade"
)

//go:embed templates/*.md
var embedded embed.FS

// templates is the embedded templates folder.
var templates, _ = fs.Sub(embedded, "templates")

var funcs = template.FuncMap{
	"side": func(s papertrade.Side) string { return strings.ToUpper(string(s)) },
}

// MarketMarkdown renders the catalog as a markdown table.
func MarketMarkdown(c *papertrade.Catalog) string {
	return renderTemplate("market", "market.md", nil, slices.Collect(c.Stocks()))
}

// HoldingMarkdown renders the portfolio valued at the catalog prices.
func HoldingMarkdown(h *Holding) string {
	partials := map[string]string{
		"holding_title":  "holding_title.md",
		"holding_stocks": "holding_stocks.md",
		"holding_cash":   "holding_cash.md",
	}
	return renderTemplate("holding", "holding.md", partials, h)
}

// TransactionsMarkdown renders the trade history as a markdown table.
func TransactionsMarkdown(transactions []papertrade.Transaction) string {
	return renderTemplate("transactions", "transactions.md", nil, transactions)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
