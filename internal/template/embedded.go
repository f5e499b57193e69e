package template

import "embed"

//go:embed apache/*.tmpl
var apacheTemplates embed.FS
