package styles

import (
	"net/url"
	"strings"

	"gsc/tree"
)

const varPrefix = "var:"

// compileStyleValue turns "var:preset|color|red" shorthand into
// "var(--wp--preset--color--red)" keeping segments as they are.
func compileStyleValue(v any) any {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, varPrefix) {
		return v
	}
	return "var(--wp--" + strings.ReplaceAll(s[len(varPrefix):], "|", "--") + ")"
}

// cssValueFromRawStyle is compileStyleValue with every segment kebab-cased.
func cssValueFromRawStyle(v any) any {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, varPrefix) {
		return v
	}
	segments := strings.Split(s[len(varPrefix):], "|")
	for i := range segments {
		segments[i] = KebabCase(segments[i])
	}
	return "var(--wp--" + strings.Join(segments, "--") + ")"
}

// isRef reports whether value is {"ref": "dotted.path"}.
func isRef(v any) (string, bool) {
	m, ok := v.(*tree.Map)
	if !ok {
		return "", false
	}
	ref, ok := m.Value("ref").(string)
	return ref, ok && ref != ""
}

// resolvedRefValue follows {"ref": path} one level through the whole tree.
// Values of missing refs and refs pointing to other refs are returned
// unchanged.
func resolvedRefValue(v any, root *tree.Map) any {
	ref, ok := isRef(v)
	if !ok || root == nil {
		return v
	}
	target := tree.Lookup(root, tree.Path(ref)...)
	if target == nil {
		return v
	}
	if _, chained := isRef(target); chained {
		return v
	}
	return target
}

// themeFilePath resolves relative theme file name through the tree links.
func themeFilePath(file string, root *tree.Map) string {
	links, _ := tree.Lookup(root, "_links", "wp:theme-file").([]any)
	for _, l := range links {
		link, ok := l.(*tree.Map)
		if !ok {
			continue
		}
		if link.String("name") == file && link.String("href") != "" {
			return link.String("href")
		}
	}
	return file
}

// resolvedValue resolves refs and theme file URLs of a style value and
// converts preset shorthand.
func resolvedValue(v any, root *tree.Map) any {
	if !tree.Truthy(v) {
		return v
	}
	v = resolvedRefValue(v, root)
	if m, ok := v.(*tree.Map); ok {
		if u, ok := m.Value("url").(string); ok && u != "" {
			return m.With("url", themeFilePath(u, root))
		}
	}
	return cssValueFromRawStyle(v)
}

// encodeURI escapes URL like browsers do for attribute values, leaving
// reserved characters and existing escapes alone.
func encodeURI(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	const keep = ";,/?:@&=+$-_.!~*'()#"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || strings.IndexByte(keep, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte("0123456789ABCDEF"[c>>4])
		b.WriteByte("0123456789ABCDEF"[c&15])
	}
	return b.String()
}
