// Package template renders outgoing email bodies. Built-in templates are
// embedded; a directory of overrides can replace any of them.
package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	texttemplate "text/template"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

//go:embed defaults/*.tmpl
var defaults embed.FS

const (
	AccessEmailHTML = "access_email.html.tmpl"
	AccessEmailText = "access_email.txt.tmpl"
)

type EmailTemplates struct {
	html   map[string]*htmltemplate.Template
	text   map[string]*texttemplate.Template
	logger logger.Interface
}

// NewEmailTemplates parses the embedded templates, then any file with the
// same name under overrideDir. An empty overrideDir skips the lookup.
func NewEmailTemplates(overrideDir string, log logger.Interface) (*EmailTemplates, error) {
	t := &EmailTemplates{
		html:   make(map[string]*htmltemplate.Template),
		text:   make(map[string]*texttemplate.Template),
		logger: log,
	}

	for _, name := range []string{AccessEmailHTML, AccessEmailText} {
		src, err := defaults.ReadFile("defaults/" + name)
		if err != nil {
			return nil, fmt.Errorf("missing built-in template %s: %w", name, err)
		}
		if overrideDir != "" {
			custom, err := os.ReadFile(filepath.Join(overrideDir, name))
			switch {
			case err == nil:
				src = custom
				log.Infow("loaded email template override", "file", name, "dir", overrideDir)
			case !os.IsNotExist(err):
				log.Warnw("failed to read email template override", "file", name, "error", err)
			}
		}
		if err := t.parse(name, string(src)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *EmailTemplates) parse(name, src string) error {
	if filepath.Ext(name[:len(name)-len(".tmpl")]) == ".html" {
		tpl, err := htmltemplate.New(name).Option("missingkey=zero").Parse(src)
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		t.html[name] = tpl
		return nil
	}
	tpl, err := texttemplate.New(name).Option("missingkey=zero").Parse(src)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	t.text[name] = tpl
	return nil
}

// Render executes the named template. HTML templates escape their data.
func (t *EmailTemplates) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if tpl, ok := t.html[name]; ok {
		if err := tpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", name, err)
		}
		return buf.String(), nil
	}
	if tpl, ok := t.text[name]; ok {
		if err := tpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", name, err)
		}
		return buf.String(), nil
	}
	return "", fmt.Errorf("unknown template %s", name)
}
