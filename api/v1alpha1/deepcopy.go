package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime"
)

// DeepCopyInto copies the receiver into out.
func (in *Backend) DeepCopyInto(out *Backend) {
	*out = *in
}

// DeepCopy returns a deep copy of the receiver.
func (in *Backend) DeepCopy() *Backend {
	if in == nil {
		return nil
	}

	out := new(Backend)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyInto copies the receiver into out.
func (in *PathRoute) DeepCopyInto(out *PathRoute) {
	*out = *in
}

// DeepCopyInto copies the receiver into out.
func (in *HTTPRouteGroup) DeepCopyInto(out *HTTPRouteGroup) {
	*out = *in

	if in.Paths != nil {
		out.Paths = make([]PathRoute, len(in.Paths))
		copy(out.Paths, in.Paths)
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *HTTPRouteGroup) DeepCopy() *HTTPRouteGroup {
	if in == nil {
		return nil
	}

	out := new(HTTPRouteGroup)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyInto copies the receiver into out.
func (in *RouteRule) DeepCopyInto(out *RouteRule) {
	*out = *in
	out.HTTP = in.HTTP.DeepCopy()
}

// DeepCopyInto copies the receiver into out.
func (in *IngressRouteSpec) DeepCopyInto(out *IngressRouteSpec) {
	*out = *in

	if in.Rules != nil {
		out.Rules = make([]RouteRule, len(in.Rules))
		for i := range in.Rules {
			in.Rules[i].DeepCopyInto(&out.Rules[i])
		}
	}

	out.Backend = in.Backend.DeepCopy()
}

// DeepCopy returns a deep copy of the receiver.
func (in *IngressRouteSpec) DeepCopy() *IngressRouteSpec {
	if in == nil {
		return nil
	}

	out := new(IngressRouteSpec)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyInto copies the receiver into out.
func (in *IngressRoute) DeepCopyInto(out *IngressRoute) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec.DeepCopy()
}

// DeepCopy returns a deep copy of the receiver.
func (in *IngressRoute) DeepCopy() *IngressRoute {
	if in == nil {
		return nil
	}

	out := new(IngressRoute)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyObject returns a deep copy of the receiver as a runtime.Object.
func (in *IngressRoute) DeepCopyObject() runtime.Object {
	if in == nil {
		return nil
	}

	return in.DeepCopy()
}

// DeepCopyInto copies the receiver into out.
func (in *IngressRouteList) DeepCopyInto(out *IngressRouteList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)

	if in.Items != nil {
		out.Items = make([]IngressRoute, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *IngressRouteList) DeepCopy() *IngressRouteList {
	if in == nil {
		return nil
	}

	out := new(IngressRouteList)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyObject returns a deep copy of the receiver as a runtime.Object.
func (in *IngressRouteList) DeepCopyObject() runtime.Object {
	if in == nil {
		return nil
	}

	return in.DeepCopy()
}
