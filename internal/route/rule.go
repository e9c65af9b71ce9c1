package route

import "fmt"

// DefaultNamespace is used for rules whose source object has no namespace.
const DefaultNamespace = "default"

// ID identifies one IngressRoute object in the rule table.
type ID struct {
	Namespace string
	Name      string
}

// String renders the ID as "namespace/name".
func (id ID) String() string {
	return id.Namespace + "/" + id.Name
}

// Rule routes requests for a host and/or path prefix to one backend.
//
// An empty Host leaves the host unconstrained and a nil Prefix leaves the
// path unconstrained. A Rule with neither set matches nothing; such rules
// are only useful as a RuleSet default.
type Rule struct {
	Host      string
	Prefix    Path
	Namespace string
	Service   string
	Port      string
}

// Matches reports whether the rule claims a request with the given host
// header and parsed path. An absent host header (empty string) never
// satisfies a host-constrained rule.
func (r *Rule) Matches(host string, path Path) bool {
	switch {
	case r.Host != "" && r.Prefix != nil:
		return r.Host == host && r.Prefix.IsPrefixOf(path)
	case r.Host != "":
		return r.Host == host
	case r.Prefix != nil:
		return r.Prefix.IsPrefixOf(path)
	}

	return false
}

// Backend renders the rule's target as "namespace/service:port".
func (r *Rule) Backend() string {
	return fmt.Sprintf("%s/%s:%s", r.Namespace, r.Service, r.Port)
}

// RuleSet is the normalized form of one IngressRoute object.
//
// Rules preserves source order end to end; the first matching Rule wins at
// resolution time. Default, when set, answers requests none of the Rules
// match. A stored RuleSet is immutable: updates replace the whole value.
type RuleSet struct {
	Name    string
	Default *Rule
	Rules   []Rule
}

// Match returns the first Rule claiming the request, or the default Rule
// when no listed Rule matches. fallback reports whether the default was
// used. A RuleSet with no match and no default returns (nil, false).
func (rs *RuleSet) Match(host string, path Path) (rule *Rule, fallback bool) {
	for i := range rs.Rules {
		if rs.Rules[i].Matches(host, path) {
			return &rs.Rules[i], false
		}
	}

	if rs.Default != nil {
		return rs.Default, true
	}

	return nil, false
}
