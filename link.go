package linkcollect

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// blockedPrefixes lists href prefixes that never lead to a navigable page.
// Matching is case-insensitive.
var blockedPrefixes = []string{
	"javascript:",
	"mailto:",
	"tel:",
	"sms:",
	"data:",
}

// FilterHref trims a raw href and reports whether it should be kept.
// Empty values, fragment-only values, blocked schemes and lone symbols
// are discarded. The kept value preserves its original case.
func FilterHref(raw string) (string, bool) {
	href := strings.TrimSpace(raw)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	lower := strings.ToLower(href)
	for _, prefix := range blockedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}

	// Catches stray symbol-only hrefs such as "-" or ".".
	if utf8.RuneCountInString(href) == 1 {
		r, _ := utf8.DecodeRuneInString(href)
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return "", false
		}
	}

	return href, true
}

// CanonicalizeLink resolves href against base and reports whether the result
// is an http or https URL. The scheme is checked after resolution, so
// relative and scheme-relative hrefs inherit the scheme of base.
//
// Resolution works on the text as written: an absolute href is returned
// unchanged, and a relative one is merged onto the base path with dot
// segments removed. Nothing is percent-encoded or decoded, so hrefs that
// differ as strings stay distinct. Tabs and line breaks are dropped.
func CanonicalizeLink(href string, base *url.URL) (string, bool) {
	href = stripNewlines(href)

	resolved := resolveReference(base, href)
	scheme, _, ok := splitScheme(resolved)
	if !ok {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "http", "https":
		return resolved, true
	default:
		return "", false
	}
}

// resolveReference applies RFC 3986 reference resolution to the raw text of
// ref. Only the components of base are taken from the parsed URL.
func resolveReference(base *url.URL, ref string) string {
	if scheme, rest, ok := splitScheme(ref); ok {
		// A same-scheme reference without authority is relative to base.
		if strings.HasPrefix(rest, "//") || !strings.EqualFold(scheme, base.Scheme) {
			return ref
		}
		ref = rest
	}
	if strings.HasPrefix(ref, "//") {
		return base.Scheme + ":" + ref
	}

	ref, fragment, hasFragment := strings.Cut(ref, "#")
	refPath, query, hasQuery := strings.Cut(ref, "?")

	basePath := base.EscapedPath()
	var path string
	switch {
	case refPath == "":
		path = basePath
		if !hasQuery {
			query, hasQuery = base.RawQuery, base.RawQuery != "" || base.ForceQuery
		}
	case strings.HasPrefix(refPath, "/"):
		path = removeDotSegments(refPath)
	default:
		path = removeDotSegments(mergePaths(base, basePath, refPath))
	}

	var b strings.Builder
	b.WriteString(base.Scheme)
	b.WriteString("://")
	if base.User != nil {
		b.WriteString(base.User.String())
		b.WriteByte('@')
	}
	b.WriteString(base.Host)
	b.WriteString(path)
	if hasQuery {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if hasFragment {
		b.WriteByte('#')
		b.WriteString(fragment)
	}
	return b.String()
}

// mergePaths joins a relative path onto the directory of the base path.
func mergePaths(base *url.URL, basePath, ref string) string {
	if base.Host != "" && basePath == "" {
		return "/" + ref
	}
	return basePath[:strings.LastIndexByte(basePath, '/')+1] + ref
}

// removeDotSegments interprets "." and ".." segments in path.
func removeDotSegments(path string) string {
	var out []string
	pop := func() {
		if len(out) > 0 {
			out = out[:len(out)-1]
		}
	}

	in := path
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			pop()
		case in == "/..":
			in = "/"
			pop()
		case in == "." || in == "..":
			in = ""
		default:
			start := 0
			if in[0] == '/' {
				start = 1
			}
			end := strings.IndexByte(in[start:], '/')
			if end < 0 {
				end = len(in)
			} else {
				end += start
			}
			out = append(out, in[:end])
			in = in[end:]
		}
	}
	return strings.Join(out, "")
}

// splitScheme splits a leading RFC 3986 scheme off s.
func splitScheme(s string) (scheme, rest string, ok bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return "", s, false
			}
		case c == ':':
			if i == 0 {
				return "", s, false
			}
			return s[:i], s[i+1:], true
		default:
			return "", s, false
		}
	}
	return "", s, false
}

func stripNewlines(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

// SeenSet records which links have already been emitted.
type SeenSet interface {
	// Add records link and reports whether it was not present before.
	Add(link string) bool
}

// StringSet is an exact, map-backed SeenSet.
type StringSet map[string]struct{}

// Add records link and reports whether it was not present before.
func (s StringSet) Add(link string) bool {
	if _, ok := s[link]; ok {
		return false
	}
	s[link] = struct{}{}
	return true
}

// Deduplicate drops repeated links while preserving first-occurrence order.
// Links are compared as exact strings. If seen is nil an exact StringSet is used.
func Deduplicate(links []string, seen SeenSet) []string {
	if seen == nil {
		seen = make(StringSet, len(links))
	}

	out := make([]string, 0, len(links))
	for _, link := range links {
		if seen.Add(link) {
			out = append(out, link)
		}
	}
	return out
}

// CollectLinks runs the filter, canonicalize and deduplicate stages over raw
// hrefs extracted from a page whose final URL is baseURL.
// The returned slice is never nil.
func CollectLinks(hrefs []string, baseURL string, seen SeenSet) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, Errorf(EPARSE, "invalid base URL %q: %v", baseURL, err)
	}

	canonical := make([]string, 0, len(hrefs))
	for _, raw := range hrefs {
		href, ok := FilterHref(raw)
		if !ok {
			continue
		}
		link, ok := CanonicalizeLink(href, base)
		if !ok {
			continue
		}
		canonical = append(canonical, link)
	}

	return Deduplicate(canonical, seen), nil
}
