package image

import (
	"fmt"
	"strings"
)

// NetworkKind describes how a container is attached to the network
type NetworkKind int

const (
	// NetworkDefault covers the daemon provided modes such as bridge, host and none
	NetworkDefault NetworkKind = iota

	// NetworkContainer shares the network namespace of another container
	NetworkContainer

	// NetworkCustom joins a named, user-defined network with embedded DNS
	NetworkCustom
)

const (
	containerModePrefix = "container:"
	serviceModePrefix   = "service:"
)

// NetworkMode is the parsed form of a network mode setting such as
// "bridge", "container:db" or "backend".
type NetworkMode struct {
	Kind NetworkKind

	// Target is the attached-to identifier for NetworkContainer and the
	// network name for NetworkCustom. It is empty for NetworkDefault.
	Target string
}

// ParseNetworkMode reads a network mode as written in a run configuration.
// "container:<id>" and the compose form "service:<id>" attach to another
// container, the built-in modes map to NetworkDefault and anything else is
// taken to be the name of a custom network.
func ParseNetworkMode(mode string) NetworkMode {
	mode = strings.TrimSpace(mode)

	switch mode {
	case "", "default", "bridge", "host", "none":
		return NetworkMode{Kind: NetworkDefault}
	}

	if strings.HasPrefix(mode, containerModePrefix) {
		return NetworkMode{Kind: NetworkContainer, Target: strings.TrimPrefix(mode, containerModePrefix)}
	}
	if strings.HasPrefix(mode, serviceModePrefix) {
		return NetworkMode{Kind: NetworkContainer, Target: strings.TrimPrefix(mode, serviceModePrefix)}
	}

	return NetworkMode{Kind: NetworkCustom, Target: mode}
}

// IsCustomNetwork returns true when the container joins a named network
func (m NetworkMode) IsCustomNetwork() bool {
	return m.Kind == NetworkCustom
}

// ContainerAlias returns the identifier of the container whose network
// namespace is shared, or an empty string for any other mode.
func (m NetworkMode) ContainerAlias() string {
	if m.Kind != NetworkContainer {
		return ""
	}
	return m.Target
}

func (m NetworkMode) String() string {
	switch m.Kind {
	case NetworkContainer:
		return containerModePrefix + m.Target
	case NetworkCustom:
		return m.Target
	default:
		return "default"
	}
}

// Identity is the pair of identifiers another descriptor may use to refer
// to an image.
type Identity struct {
	Name  string `json:"name" yaml:"name"`
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

func (i Identity) String() string {
	if len(i.Alias) == 0 || i.Alias == i.Name {
		return i.Name
	}
	return fmt.Sprintf("%s (%s)", i.Name, i.Alias)
}

// Descriptor is the read-only view of one image's identity and the run-time
// linkage facts used to order it against other images.
type Descriptor struct {
	// Name is required and unique within a resolution set
	Name string

	// Alias may be used interchangeably with Name by other descriptors
	Alias string

	// Image is the normalized image reference, used for display only
	Image string

	// VolumesFrom lists the identifiers of the images whose volumes are mounted
	VolumesFrom []string

	// Links holds raw link specifications in the form target[:alias]
	Links []string

	Network NetworkMode
}

// Identity returns the name and alias of the descriptor
func (d *Descriptor) Identity() Identity {
	return Identity{Name: d.Name, Alias: d.Alias}
}

// DependencyIdentifiers returns the identifiers this image must wait for,
// see ExtractDependencies.
func (d *Descriptor) DependencyIdentifiers() []string {
	return ExtractDependencies(d)
}

// Description is a short human readable label such as [db] "postgres"
func (d *Descriptor) Description() string {
	if len(d.Alias) > 0 {
		return fmt.Sprintf("[%s] %q", d.Name, d.Alias)
	}
	return fmt.Sprintf("[%s]", d.Name)
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("Descriptor {name='%s', alias='%s'}", d.Name, d.Alias)
}
