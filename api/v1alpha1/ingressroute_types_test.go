package v1alpha1_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/routemesh/ingressd/api/v1alpha1"
)

func sampleRoute() *v1alpha1.IngressRoute {
	return &v1alpha1.IngressRoute{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "web",
			Namespace: "prod",
		},
		Spec: &v1alpha1.IngressRouteSpec{
			Rules: []v1alpha1.RouteRule{
				{
					Host: "foo.com",
					HTTP: &v1alpha1.HTTPRouteGroup{
						Paths: []v1alpha1.PathRoute{
							{
								Path: "/api",
								Backend: v1alpha1.Backend{
									ServiceName: "api",
									ServicePort: intstr.FromInt32(8080),
								},
							},
						},
					},
				},
			},
			Backend: &v1alpha1.Backend{
				ServiceName: "fallback",
				ServicePort: intstr.FromString("http"),
			},
		},
	}
}

func TestGroupVersionResource(t *testing.T) {
	t.Parallel()

	gvr := v1alpha1.GroupVersionResource()
	assert.Equal(t, "routemesh.io", gvr.Group)
	assert.Equal(t, "v1alpha1", gvr.Version)
	assert.Equal(t, "ingressroutes", gvr.Resource)
}

func TestIngressRoute_DeepCopyIsIndependent(t *testing.T) {
	t.Parallel()

	original := sampleRoute()
	clone := original.DeepCopy()

	require.NotSame(t, original, clone)
	assert.Equal(t, original, clone)

	clone.Spec.Rules[0].Host = "bar.com"
	clone.Spec.Rules[0].HTTP.Paths[0].Backend.ServiceName = "other"
	clone.Spec.Backend.ServiceName = "changed"

	assert.Equal(t, "foo.com", original.Spec.Rules[0].Host)
	assert.Equal(t, "api", original.Spec.Rules[0].HTTP.Paths[0].Backend.ServiceName)
	assert.Equal(t, "fallback", original.Spec.Backend.ServiceName)
}

func TestIngressRoute_DeepCopyNilSpec(t *testing.T) {
	t.Parallel()

	original := &v1alpha1.IngressRoute{
		ObjectMeta: metav1.ObjectMeta{Name: "bare", Namespace: "default"},
	}
	clone := original.DeepCopy()

	require.NotNil(t, clone)
	assert.Nil(t, clone.Spec)
	assert.Equal(t, "bare", clone.Name)
}

func TestIngressRoute_DeepCopyObject(t *testing.T) {
	t.Parallel()

	original := sampleRoute()

	obj := original.DeepCopyObject()
	clone, ok := obj.(*v1alpha1.IngressRoute)
	require.True(t, ok)
	assert.Equal(t, original, clone)
}

func TestIngressRouteList_DeepCopyObject(t *testing.T) {
	t.Parallel()

	list := &v1alpha1.IngressRouteList{
		Items: []v1alpha1.IngressRoute{*sampleRoute()},
	}

	obj := list.DeepCopyObject()
	clone, ok := obj.(*v1alpha1.IngressRouteList)
	require.True(t, ok)
	require.Len(t, clone.Items, 1)

	clone.Items[0].Spec.Rules[0].Host = "bar.com"
	assert.Equal(t, "foo.com", list.Items[0].Spec.Rules[0].Host)
}
