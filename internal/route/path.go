package route

import "strings"

// Path is a URL path split into its segments. "/foo/bar" is ["foo", "bar"]
// and "/" is the empty sequence. A nil Path means "no path"; ParsePath never
// returns nil, so callers can use nil to represent an absent path.
type Path []string

// ParsePath splits raw into path segments, ignoring empty segments from
// leading, trailing, or repeated slashes. The result is never nil.
func ParsePath(raw string) Path {
	parts := strings.Split(raw, "/")
	segments := make(Path, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}

// IsPrefixOf reports whether every segment of p equals the corresponding
// segment of other. An empty Path is a prefix of every path; a Path longer
// than other is a prefix of none.
func (p Path) IsPrefixOf(other Path) bool {
	if len(p) > len(other) {
		return false
	}

	for i, segment := range p {
		if other[i] != segment {
			return false
		}
	}

	return true
}

// String renders the path with a leading slash.
func (p Path) String() string {
	return "/" + strings.Join(p, "/")
}
