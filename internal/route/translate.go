package route

import (
	"github.com/routemesh/ingressd/api/v1alpha1"
)

// Translate converts one IngressRoute object into its normalized RuleSet.
//
// Objects without a spec yield nil: they are excluded from the table rather
// than surfaced as errors, so a malformed update cannot clobber previously
// accepted rules for the same object.
//
// Rules are emitted in source order, block by block and path entry by path
// entry within each block. A block without path entries contributes nothing.
// The spec-level default backend, when present, becomes the RuleSet default
// with neither host nor path constraint.
func Translate(obj *v1alpha1.IngressRoute) *RuleSet {
	if obj == nil || obj.Spec == nil {
		return nil
	}

	namespace := obj.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	set := &RuleSet{Name: obj.Name}

	for _, block := range obj.Spec.Rules {
		if block.HTTP == nil {
			continue
		}

		for _, entry := range block.HTTP.Paths {
			rule := Rule{
				Host:      block.Host,
				Namespace: namespace,
				Service:   entry.Backend.ServiceName,
				Port:      entry.Backend.ServicePort.String(),
			}

			if entry.Path != "" {
				rule.Prefix = ParsePath(entry.Path)
			}

			set.Rules = append(set.Rules, rule)
		}
	}

	if obj.Spec.Backend != nil {
		set.Default = &Rule{
			Namespace: namespace,
			Service:   obj.Spec.Backend.ServiceName,
			Port:      obj.Spec.Backend.ServicePort.String(),
		}
	}

	return set
}
