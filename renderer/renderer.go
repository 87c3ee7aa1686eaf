package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/baskets"
)

//go:embed templates/*.md
var embedded embed.FS

// templates is the template folder, its files are addressed by their base name.
var templates = mustSub(embedded, "templates")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// bodies maps each view to the partial rendering its content. An empty file
// name results in an empty body.
var bodies = map[baskets.View]string{
	baskets.ViewHome:        "",
	baskets.ViewDashboard:   "snapshot_dashboard.md",
	baskets.ViewExplore:     "snapshot_explore.md",
	baskets.ViewBasket:      "snapshot_basket.md",
	baskets.ViewStock:       "snapshot_stock.md",
	baskets.ViewPortfolio:   "snapshot_portfolio.md",
	baskets.ViewNews:        "",
	baskets.ViewHowItWorks:  "",
	baskets.ViewSubscribe:   "snapshot_subscribe.md",
	baskets.ViewProFeatures: "snapshot_pro.md",
	baskets.ViewSectors:     "",
}

// RenderSnapshot renders the view of a session snapshot to a markdown string.
//
// Absent entities, like a selected basket that was never stored, are rendered
// as an empty state rather than an error.
func RenderSnapshot(s *baskets.Snapshot) string {
	partials := map[string]string{
		"snapshot_title":   "snapshot_title.md",
		"snapshot_prompts": "snapshot_prompts.md",
		"snapshot_body":    bodies[s.View],
	}
	return renderTemplate("snapshot", "snapshot.md", partials, NewPage(s))
}

// funcs are available to every template.
var funcs = template.FuncMap{
	"join":         strings.Join,
	"positions":    PositionsTable,
	"allocations":  AllocationsTable,
	"fundamentals": FundamentalsTable,
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
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
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
