package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routemesh/ingressd/internal/route"
)

func TestRule_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule route.Rule
		host string
		path string
		want bool
	}{
		{
			name: "host and prefix both match",
			rule: route.Rule{Host: "foo.com", Prefix: route.ParsePath("/api")},
			host: "foo.com",
			path: "/api/v1",
			want: true,
		},
		{
			name: "host matches but prefix does not",
			rule: route.Rule{Host: "foo.com", Prefix: route.ParsePath("/api")},
			host: "foo.com",
			path: "/other",
			want: false,
		},
		{
			name: "prefix matches but host does not",
			rule: route.Rule{Host: "foo.com", Prefix: route.ParsePath("/api")},
			host: "bar.com",
			path: "/api/v1",
			want: false,
		},
		{
			name: "host only rule matches any path",
			rule: route.Rule{Host: "foo.com"},
			host: "foo.com",
			path: "/anything/at/all",
			want: true,
		},
		{
			name: "host only rule rejects other host",
			rule: route.Rule{Host: "only.com"},
			host: "other.com",
			path: "/",
			want: false,
		},
		{
			name: "path only rule matches any host",
			rule: route.Rule{Prefix: route.ParsePath("/api")},
			host: "whatever.example",
			path: "/api",
			want: true,
		},
		{
			name: "path only rule matches absent host",
			rule: route.Rule{Prefix: route.ParsePath("/api")},
			host: "",
			path: "/api/v2",
			want: true,
		},
		{
			name: "host constrained rule never matches absent host",
			rule: route.Rule{Host: "foo.com"},
			host: "",
			path: "/",
			want: false,
		},
		{
			name: "neither host nor prefix never matches",
			rule: route.Rule{},
			host: "foo.com",
			path: "/api",
			want: false,
		},
		{
			name: "empty prefix with host matches every path on host",
			rule: route.Rule{Host: "foo.com", Prefix: route.ParsePath("/")},
			host: "foo.com",
			path: "/deep/path",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.rule.Matches(tt.host, route.ParsePath(tt.path))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleSet_Match_FirstRuleWins(t *testing.T) {
	t.Parallel()

	// Rule order is significant: an earlier broad rule must not be shadowed
	// by a later specific one, and vice versa.
	set := &route.RuleSet{
		Name: "ordered",
		Rules: []route.Rule{
			{Host: "x", Prefix: route.ParsePath("/a"), Service: "svc-a", Namespace: "default", Port: "80"},
			{Host: "x", Prefix: route.ParsePath("/"), Service: "svc-root", Namespace: "default", Port: "80"},
		},
	}

	rule, fallback := set.Match("x", route.ParsePath("/a/b"))
	require.NotNil(t, rule)
	assert.False(t, fallback)
	assert.Equal(t, "svc-a", rule.Service)

	rule, fallback = set.Match("x", route.ParsePath("/c"))
	require.NotNil(t, rule)
	assert.False(t, fallback)
	assert.Equal(t, "svc-root", rule.Service)
}

func TestRuleSet_Match_DefaultFallback(t *testing.T) {
	t.Parallel()

	set := &route.RuleSet{
		Name:    "fallback",
		Default: &route.Rule{Service: "svc", Namespace: "default", Port: "80"},
	}

	rule, fallback := set.Match("any.example", route.ParsePath("/any"))
	require.NotNil(t, rule)
	assert.True(t, fallback)
	assert.Equal(t, "svc", rule.Service)
}

func TestRuleSet_Match_NoMatchNoDefault(t *testing.T) {
	t.Parallel()

	set := &route.RuleSet{
		Name:  "no-default",
		Rules: []route.Rule{{Host: "only.com"}},
	}

	rule, fallback := set.Match("other.com", route.ParsePath("/"))
	assert.Nil(t, rule)
	assert.False(t, fallback)
}

func TestRule_Backend(t *testing.T) {
	t.Parallel()

	rule := route.Rule{Namespace: "prod", Service: "api", Port: "8080"}
	assert.Equal(t, "prod/api:8080", rule.Backend())
}

func TestID_String(t *testing.T) {
	t.Parallel()

	id := route.ID{Namespace: "default", Name: "web"}
	assert.Equal(t, "default/web", id.String())
}
