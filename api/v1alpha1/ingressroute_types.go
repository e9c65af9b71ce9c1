// Package v1alpha1 contains the IngressRoute API types for routemesh.io.
package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/intstr"
)

const (
	// Group is the API group for IngressRoute.
	Group = "routemesh.io"
	// Version is the API version for IngressRoute.
	Version = "v1alpha1"
	// Resource is the plural resource name for IngressRoute.
	Resource = "ingressroutes"
)

// GroupVersionResource identifies the IngressRoute resource for dynamic clients.
func GroupVersionResource() schema.GroupVersionResource {
	return schema.GroupVersionResource{Group: Group, Version: Version, Resource: Resource}
}

// Backend identifies the service and port a rule routes to.
type Backend struct {
	// ServiceName is the name of the backend Service.
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:MinLength=1
	ServiceName string `json:"serviceName"`

	// ServicePort is the port of the backend Service, by number or by name.
	// +kubebuilder:validation:Required
	ServicePort intstr.IntOrString `json:"servicePort"`
}

// PathRoute is one routable path entry within a rule block.
type PathRoute struct {
	// Path is the URL path prefix to match. An empty path matches any path.
	// +optional
	Path string `json:"path,omitempty"`

	// Backend receives requests matching this path.
	// +kubebuilder:validation:Required
	Backend Backend `json:"backend"`
}

// HTTPRouteGroup holds the path entries of one rule block.
type HTTPRouteGroup struct {
	// Paths is the ordered list of path entries. Order is significant:
	// the first matching entry wins at resolution time.
	// +kubebuilder:validation:MinItems=1
	Paths []PathRoute `json:"paths"`
}

// RouteRule is one rule block: an optional host plus its path entries.
type RouteRule struct {
	// Host restricts the rule to requests carrying this Host header.
	// An empty host matches any host.
	// +optional
	Host string `json:"host,omitempty"`

	// HTTP holds the path entries for this host.
	// +optional
	HTTP *HTTPRouteGroup `json:"http,omitempty"`
}

// IngressRouteSpec defines the desired routing configuration.
type IngressRouteSpec struct {
	// Rules is the ordered list of rule blocks.
	// +optional
	Rules []RouteRule `json:"rules,omitempty"`

	// Backend is the default backend answering requests no rule matches.
	// +optional
	Backend *Backend `json:"backend,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:shortName=iroute
// +kubebuilder:printcolumn:name="Default Backend",type=string,JSONPath=`.spec.backend.serviceName`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// IngressRoute declares host/path-based HTTP routing to backend services.
// The spec is a pointer so that an object observed without a spec section
// can be told apart from one with an empty spec.
type IngressRoute struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec *IngressRouteSpec `json:"spec,omitempty"`
}

// +kubebuilder:object:root=true

// IngressRouteList contains a list of IngressRoute.
type IngressRouteList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`

	Items []IngressRoute `json:"items"`
}
