package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Data contains the values substituted into a declaration.
type Data struct {
	Address       string
	Domain        string
	DocumentRoot  string
	RewriteEngine bool
	Alias         string
}

const vhostTemplate = "apache/vhost.tmpl"

var vhost = template.Must(template.ParseFS(apacheTemplates, vhostTemplate))

// Render renders a VirtualHost declaration using newline as line ending.
func Render(data Data, newline string) (string, error) {
	if data.Domain == "" {
		return "", fmt.Errorf("template data has no domain")
	}

	var buf bytes.Buffer
	if err := vhost.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	out := buf.String()
	if newline != "\n" {
		out = strings.ReplaceAll(out, "\n", newline)
	}
	return out, nil
}
