package pkg

import (
	"io/ioutil"
	"log"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/alexellis/arkade/pkg/env"
	"github.com/compose-spec/compose-go/loader"
	compose "github.com/compose-spec/compose-go/types"
	"github.com/docker/distribution/reference"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"

	"github.com/openfaas/startorder/pkg/image"
)

// ArchGetter returns the machine architecture and the os name,
// in the form printed by uname
type ArchGetter func() (string, string)

// ComposeFile is a loaded compose file along with the order in which
// its services were written
type ComposeFile struct {
	*compose.Config

	// ServiceOrder holds the service names in document order
	ServiceOrder []string
}

// LoadComposeFile reads file from wd, interpolating ARCH_SUFFIX for
// the architecture of the current machine
func LoadComposeFile(wd string, file string) (*ComposeFile, error) {
	return LoadComposeFileWithArch(wd, file, env.GetClientArch)
}

// LoadComposeFileWithArch is LoadComposeFile with the architecture
// look-up supplied by the caller
func LoadComposeFileWithArch(wd string, file string, archGetter ArchGetter) (*ComposeFile, error) {
	file = path.Join(wd, file)
	log.Printf("Reading compose file: %s\n", file)

	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read compose file %s", file)
	}

	return ParseComposeFile(b, wd, file, archGetter)
}

// ParseComposeFile loads the compose file held in source. filename is
// only used in errors.
func ParseComposeFile(source []byte, wd, filename string, archGetter ArchGetter) (*ComposeFile, error) {
	config, err := loader.ParseYAML(source)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", filename)
	}

	order, err := serviceOrder(source)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read services from %s", filename)
	}

	environment := map[string]string{}
	for _, kv := range os.Environ() {
		if i := strings.Index(kv, "="); i > 0 {
			environment[kv[:i]] = kv[i+1:]
		}
	}
	environment["ARCH_SUFFIX"] = GetArchSuffix(archGetter)

	var files []compose.ConfigFile
	files = append(files, compose.ConfigFile{Filename: filename, Config: config})

	loaded, err := loader.Load(compose.ConfigDetails{
		WorkingDir:  wd,
		ConfigFiles: files,
		Environment: environment,
	}, skipSchemaValidation)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load %s", filename)
	}

	return &ComposeFile{
		Config:       loaded,
		ServiceOrder: order,
	}, nil
}

// skipSchemaValidation turns off the v3 schema check, which rejects
// volumes_from even though docker-compose accepts it.
func skipSchemaValidation(o *loader.Options) {
	o.SkipValidation = true
}

// ParseCompose converts every service of the compose file to an image
// descriptor. The descriptors follow the order the services were written
// in, which the start order keeps wherever it can.
func ParseCompose(file *ComposeFile) ([]*image.Descriptor, error) {
	position := map[string]int{}
	for i, name := range file.ServiceOrder {
		position[name] = i
	}

	services := make([]compose.ServiceConfig, len(file.Services))
	copy(services, file.Services)

	sort.SliceStable(services, func(i, j int) bool {
		pi, iok := position[services[i].Name]
		pj, jok := position[services[j].Name]
		if iok && jok {
			return pi < pj
		}
		if iok != jok {
			return iok
		}
		return services[i].Name < services[j].Name
	})

	descriptors := make([]*image.Descriptor, 0, len(services))
	for _, s := range services {
		d, err := toDescriptor(s)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}

	return descriptors, nil
}

func toDescriptor(s compose.ServiceConfig) (*image.Descriptor, error) {
	imageRef, err := normalizeImage(s.Image)
	if err != nil {
		return nil, errors.Wrapf(err, "service %s has an invalid image %q", s.Name, s.Image)
	}

	volumesFrom := []string{}
	for _, v := range s.VolumesFrom {
		volumesFrom = append(volumesFrom, volumesFromSource(v))
	}

	links := []string{}
	links = append(links, s.Links...)

	return &image.Descriptor{
		Name:        s.Name,
		Alias:       s.ContainerName,
		Image:       imageRef,
		VolumesFrom: volumesFrom,
		Links:       links,
		Network:     networkMode(s),
	}, nil
}

// normalizeImage expands a short image name such as nats:2 to
// docker.io/library/nats:2. Services which only build have no image.
func normalizeImage(imageName string) (string, error) {
	if len(imageName) == 0 {
		return "", nil
	}

	named, err := reference.ParseNormalizedNamed(imageName)
	if err != nil {
		return "", err
	}

	return reference.TagNameOnly(named).String(), nil
}

// volumesFromSource strips the container: prefix and the :ro or :rw
// access mode from a volumes_from entry
func volumesFromSource(spec string) string {
	source := strings.TrimPrefix(spec, "container:")

	if head, mode := image.SplitOnLastColon(source); mode == "ro" || mode == "rw" {
		return head
	}
	return source
}

// networkMode prefers network_mode, then the first named network
// other than the project default
func networkMode(s compose.ServiceConfig) image.NetworkMode {
	if len(s.NetworkMode) > 0 {
		return image.ParseNetworkMode(s.NetworkMode)
	}

	names := []string{}
	for name := range s.Networks {
		if name != "default" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) > 0 {
		return image.NetworkMode{Kind: image.NetworkCustom, Target: names[0]}
	}

	return image.NetworkMode{Kind: image.NetworkDefault}
}

// serviceOrder reads the keys of the services mapping in the order they
// appear, which the compose loader does not keep
func serviceOrder(source []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return nil, err
	}

	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("top-level object must be a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "services" {
			continue
		}

		services := root.Content[i+1]
		if services.Kind != yaml.MappingNode {
			return nil, errors.New("services must be a mapping")
		}

		names := []string{}
		for j := 0; j+1 < len(services.Content); j += 2 {
			names = append(names, services.Content[j].Value)
		}
		return names, nil
	}

	return nil, nil
}

// GetArchSuffix returns the image tag suffix used by the OpenFaaS
// images for the architecture reported by getClientArch
func GetArchSuffix(getClientArch ArchGetter) string {
	clientArch, clientOS := getClientArch()

	if clientOS != "Linux" {
		return ""
	}

	switch clientArch {
	case "x86_64":
		// no suffix needed
		return ""
	case "armhf", "armv7l":
		return "-armhf"
	case "arm64", "aarch64":
		return "-arm64"
	default:
		// unknown arch, use the default image
		return ""
	}
}
