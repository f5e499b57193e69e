// Package template renders Apache VirtualHost declarations from an
// embedded Go template.
//
// The template lives in apache/vhost.tmpl and is compiled into the binary
// with go:embed. It produces, in this fixed order:
//
//	<VirtualHost 127.0.0.1:80>
//		ServerName example.com
//		DocumentRoot /var/www/example
//		RewriteEngine on            (only when RewriteEngine is set)
//		ServerAlias www.example.com (only when Alias is set)
//	</VirtualHost>
//
// Optional directives that are not set leave no blank line behind.
// Callers pass the document root already joined and quoted for the target
// platform, and the line ending to use.
//
// # Rendering
//
//	text, err := template.Render(template.Data{
//	    Address:      "127.0.0.1",
//	    Domain:       "example.com",
//	    DocumentRoot: "/var/www/example",
//	}, "\n")
package template
