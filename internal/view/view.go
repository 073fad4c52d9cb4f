// Package view renders the dashboard's HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"payment-dashboard/internal/dashboard"
	"payment-dashboard/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

var pageNames = []string{"login", "dashboard", "error"}

// NormalizeTheme falls back to def for anything but a known theme.
func NormalizeTheme(theme, def string) string {
	switch strings.ToLower(theme) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	}
	if def == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// render buffers the output so a template error never leaves a half-written page.
func (r *Renderer) render(w io.Writer, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

type LoginData struct {
	Theme  string
	SignUp bool
	Email  string
	Error  string
	Info   string
}

func (r *Renderer) Login(w io.Writer, data LoginData) error {
	return r.render(w, "login", data)
}

type ErrorData struct {
	Theme   string
	Title   string
	Message string
}

func (r *Renderer) Error(w io.Writer, data ErrorData) error {
	return r.render(w, "error", data)
}

type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

type RowView struct {
	dashboard.Row
	Href     string
	Selected bool
}

type DashboardData struct {
	Theme          string
	User           model.User
	Search         string
	Cards          []dashboard.Card
	Statuses       []StatusOption
	Rows           []RowView
	Selected       *dashboard.Detail
	CopyFeedbackMS int64
}

// NewDashboardData links every table row to the same view with that row selected.
func NewDashboardData(user model.User, page *dashboard.Page, theme string) DashboardData {
	data := DashboardData{
		Theme:          theme,
		User:           user,
		Search:         page.Query.Search,
		Cards:          page.Cards,
		Selected:       page.Selected,
		CopyFeedbackMS: dashboard.CopyFeedback.Milliseconds(),
	}

	current := page.Query.Status
	if current == "" {
		current = dashboard.StatusAll
	}
	data.Statuses = append(data.Statuses, StatusOption{Value: dashboard.StatusAll, Label: "All statuses", Selected: current == dashboard.StatusAll})
	for _, status := range model.Statuses {
		data.Statuses = append(data.Statuses, StatusOption{
			Value:    string(status),
			Label:    dashboard.StatusBadge(status).Label,
			Selected: current == string(status),
		})
	}

	for _, row := range page.Rows {
		q := page.Query
		q.Selected = row.ID
		values := q.Values()
		values.Set("theme", theme)
		data.Rows = append(data.Rows, RowView{
			Row:      row,
			Href:     "/dashboard?" + values.Encode(),
			Selected: page.Selected != nil && page.Selected.ID == row.ID,
		})
	}

	return data
}

func (r *Renderer) Dashboard(w io.Writer, data DashboardData) error {
	return r.render(w, "dashboard", data)
}
