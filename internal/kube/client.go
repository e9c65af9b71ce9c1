// Package kube connects the route cache to the cluster: it loads client
// configuration and pumps IngressRoute watch events into an event handler,
// reconnecting when the watch drops.
package kube

import (
	"github.com/cockroachdb/errors"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// NewRESTConfig builds a client configuration. An explicit kubeconfig path
// wins; otherwise in-cluster configuration is tried, then the default
// kubeconfig loading rules (KUBECONFIG, ~/.kube/config).
func NewRESTConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig != "" {
		cfg, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load kubeconfig %s", kubeconfig)
		}

		return cfg, nil
	}

	cfg, err := rest.InClusterConfig()
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, rest.ErrNotInCluster) {
		return nil, errors.Wrap(err, "failed to load in-cluster config")
	}

	cfg, err = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		clientcmd.NewDefaultClientConfigLoadingRules(),
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load default kubeconfig")
	}

	return cfg, nil
}

// NewDynamicClient creates a dynamic client from a REST config.
func NewDynamicClient(cfg *rest.Config) (dynamic.Interface, error) {
	client, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dynamic client")
	}

	return client, nil
}
