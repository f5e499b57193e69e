package platform

import "strings"

// Separator returns the path separator written into declarations.
func (p Platform) Separator() string {
	if p == Windows {
		return `\`
	}
	return "/"
}

// Newline returns the line ending used in declaration files.
func (p Platform) Newline() string {
	if p == Windows {
		return "\r\n"
	}
	return "\n"
}

// IsAbs reports whether path is absolute under p's conventions.
// Windows accepts drive-letter paths, UNC paths and rooted paths.
func (p Platform) IsAbs(path string) bool {
	switch p {
	case Windows:
		if len(path) >= 3 && isDriveLetter(path[0]) && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
			return true
		}
		return strings.HasPrefix(path, `\`) || strings.HasPrefix(path, "/")
	default:
		return strings.HasPrefix(path, "/")
	}
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Join joins path elements with p's separator. Empty elements are
// skipped and redundant separators at the joints are dropped.
func (p Platform) Join(elem ...string) string {
	sep := p.Separator()
	cut := "/"
	if p == Windows {
		cut = `\/`
	}

	var parts []string
	for i, e := range elem {
		if e == "" {
			continue
		}
		if len(parts) > 0 {
			e = strings.TrimLeft(e, cut)
		}
		if i < len(elem)-1 {
			trimmed := strings.TrimRight(e, cut)
			if trimmed != "" || len(parts) > 0 {
				e = trimmed
			}
		}
		if e == "" {
			continue
		}
		parts = append(parts, e)
	}
	if len(parts) == 1 && parts[0] == "/" {
		return "/"
	}
	if len(parts) > 1 && (parts[0] == "/" || parts[0] == `\`) {
		return parts[0] + strings.Join(parts[1:], sep)
	}
	return strings.Join(parts, sep)
}
