// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Package netns resolves the network namespaces a scan can be run from:
// either a namespace given by its filesystem path or the network namespace of
// a Docker container.
package netns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/thediveo/lxkns/log"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/species"
)

// ContainerInspector inspects Docker containers; *client.Client is one.
type ContainerInspector interface {
	ContainerInspect(ctx context.Context, container string) (types.ContainerJSON, error)
}

var _ ContainerInspector = (*client.Client)(nil)

// NewClient returns a new Docker client configured from the usual DOCKER_*
// environment variables, defaulting to the local Docker socket.
func NewClient() (*client.Client, error) {
	return client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
}

// ContainerNetworkNamespace returns the filesystem path referencing the
// network namespace of the specified container, identified by name or ID. The
// container must be running.
func ContainerNetworkNamespace(ctx context.Context, moby ContainerInspector, container string) (string, error) {
	details, err := moby.ContainerInspect(ctx, container)
	if err != nil {
		return "", fmt.Errorf("cannot inspect container %q: %w", container, err)
	}
	if details.ContainerJSONBase == nil || details.State == nil || details.State.Pid == 0 {
		return "", fmt.Errorf("container %q is not running", container)
	}
	name := strings.TrimPrefix(details.Name, "/") // argh, Docker's "/name" legacy!
	netnsref := fmt.Sprintf("/proc/%d/ns/net", details.State.Pid)
	log.Debugf("container %s uses network namespace %s", name, netnsref)
	return netnsref, nil
}

// ErrNotNetworkNamespace signals a namespace path referencing some other type
// of namespace.
var ErrNotNetworkNamespace = errors.New("not a network namespace")

// Check that the specified path references a network namespace the process
// is able to switch into.
func Check(netnsref string) error {
	nstype, err := ops.NamespacePath(netnsref).Type()
	if err != nil {
		return fmt.Errorf("cannot use network namespace %q: %w", netnsref, err)
	}
	if nstype != species.CLONE_NEWNET {
		return fmt.Errorf("cannot use network namespace %q: %w", netnsref, ErrNotNetworkNamespace)
	}
	_, err = ops.Execute(func() interface{} { return nil },
		ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET))
	if err != nil {
		return fmt.Errorf("cannot use network namespace %q: %w", netnsref, err)
	}
	return nil
}
