package pkg

import (
	"reflect"
	"testing"

	"github.com/openfaas/startorder/pkg/image"
)

func loadTestCompose(t *testing.T) []*image.Descriptor {
	t.Helper()

	file, err := LoadComposeFileWithArch("testdata", "docker-compose.yaml", testArchGetter("x86_64", "Linux"))
	if err != nil {
		t.Fatalf("can't read docker-compose file: %s", err)
	}

	descriptors, err := ParseCompose(file)
	if err != nil {
		t.Fatalf("can't parse compose services: %s", err)
	}

	return descriptors
}

func Test_ParseCompose(t *testing.T) {
	want := []*image.Descriptor{
		{
			Name:        "gateway",
			Image:       "ghcr.io/openfaas/gateway:0.27.0",
			VolumesFrom: []string{"secrets"},
			Links:       []string{"nats", "prometheus:prom"},
			Network:     image.NetworkMode{Kind: image.NetworkDefault},
		},
		{
			Name:        "secrets",
			Alias:       "secret-store",
			Image:       "docker.io/library/alpine:3.17",
			VolumesFrom: []string{},
			Links:       []string{},
			Network:     image.NetworkMode{Kind: image.NetworkDefault},
		},
		{
			Name:        "queue-worker",
			Image:       "ghcr.io/openfaas/queue-worker:0.13.3",
			VolumesFrom: []string{},
			Links:       []string{"nats", "gateway:gw"},
			Network:     image.NetworkMode{Kind: image.NetworkCustom, Target: "openfaas"},
		},
		{
			Name:        "prometheus",
			Image:       "docker.io/prom/prometheus:v2.42.0",
			VolumesFrom: []string{"secret-store"},
			Links:       []string{},
			Network:     image.NetworkMode{Kind: image.NetworkDefault},
		},
		{
			Name:        "nats",
			Image:       "docker.io/library/nats-streaming:0.25.3",
			VolumesFrom: []string{},
			Links:       []string{},
			Network:     image.NetworkMode{Kind: image.NetworkCustom, Target: "openfaas"},
		},
		{
			Name:        "exporter",
			Image:       "docker.io/prom/node-exporter:v1.5.0",
			VolumesFrom: []string{},
			Links:       []string{},
			Network:     image.NetworkMode{Kind: image.NetworkContainer, Target: "prometheus"},
		},
	}

	descriptors := loadTestCompose(t)

	if len(descriptors) != len(want) {
		t.Fatalf("want: %d services, got: %d", len(want), len(descriptors))
	}

	for i, d := range descriptors {
		exp := want[i]

		if d.Name != exp.Name {
			t.Fatalf("incorrect service at position %d:\n\twant: %s,\n\tgot: %s", i, exp.Name, d.Name)
		}

		if d.Alias != exp.Alias {
			t.Fatalf("incorrect %s Alias:\n\twant: %s,\n\tgot: %s", d.Name, exp.Alias, d.Alias)
		}

		if d.Image != exp.Image {
			t.Fatalf("incorrect %s Image:\n\twant: %s,\n\tgot: %s", d.Name, exp.Image, d.Image)
		}

		equalStringSlice(t, exp.VolumesFrom, d.VolumesFrom)
		equalStringSlice(t, exp.Links, d.Links)

		if !reflect.DeepEqual(exp.Network, d.Network) {
			t.Fatalf("incorrect %s Network:\n\twant: %+v,\n\tgot: %+v", d.Name, exp.Network, d.Network)
		}
	}
}

func Test_ResolveStartOrderComposeFile(t *testing.T) {
	descriptors := loadTestCompose(t)

	order, err := ResolveStartOrder(descriptors)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := []string{"secrets", "queue-worker", "prometheus", "nats", "gateway", "exporter"}
	if got := orderNames(order); !reflect.DeepEqual(want, got) {
		t.Fatalf("want order %v, got %v", want, got)
	}

	batches, err := ResolveStartBatches(descriptors)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	wantBatches := [][]string{
		{"secrets", "queue-worker", "nats"},
		{"prometheus"},
		{"gateway", "exporter"},
	}
	if len(batches) != len(wantBatches) {
		t.Fatalf("want %d batches, got %d", len(wantBatches), len(batches))
	}
	for i := range wantBatches {
		if got := orderNames(batches[i]); !reflect.DeepEqual(wantBatches[i], got) {
			t.Fatalf("batch %d: want %v, got %v", i, wantBatches[i], got)
		}
	}
}

func Test_ParseComposeFile_ArchSuffix(t *testing.T) {
	source := []byte(`version: "3.7"
services:
  gateway:
    image: ghcr.io/openfaas/gateway:0.27.0${ARCH_SUFFIX}
`)

	file, err := ParseComposeFile(source, ".", "inline.yaml", testArchGetter("aarch64", "Linux"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	descriptors, err := ParseCompose(file)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := "ghcr.io/openfaas/gateway:0.27.0-arm64"
	if descriptors[0].Image != want {
		t.Fatalf("want image %s, got %s", want, descriptors[0].Image)
	}
}

func Test_ParseComposeFile_VolumesFromWithoutVersion(t *testing.T) {
	source := []byte(`services:
  web:
    image: docker.io/library/nginx:1.23
    volumes_from:
      - db
  db:
    image: docker.io/library/postgres:15
`)

	file, err := ParseComposeFile(source, ".", "inline.yaml", testArchGetter("x86_64", "Linux"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	descriptors, err := ParseCompose(file)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(descriptors) != 2 || !reflect.DeepEqual([]string{"db"}, descriptors[0].VolumesFrom) {
		t.Fatalf("want web to take volumes from db, got %v", descriptors)
	}

	order, err := ResolveStartOrder(descriptors)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := []string{"db", "web"}
	if got := orderNames(order); !reflect.DeepEqual(want, got) {
		t.Fatalf("want order %v, got %v", want, got)
	}
}

func Test_ParseComposeFile_InvalidImage(t *testing.T) {
	source := []byte(`version: "3.7"
services:
  gateway:
    image: "Not A Valid Image"
`)

	file, err := ParseComposeFile(source, ".", "inline.yaml", testArchGetter("x86_64", "Linux"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if _, err := ParseCompose(file); err == nil {
		t.Fatalf("want an error for an invalid image reference")
	}
}

func Test_ServiceOrder(t *testing.T) {
	source := []byte(`services:
  zeta:
    image: alpine
  alpha:
    image: alpine
  mu:
    image: alpine
`)

	order, err := serviceOrder(source)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := []string{"zeta", "alpha", "mu"}
	if !reflect.DeepEqual(want, order) {
		t.Fatalf("want %v, got %v", want, order)
	}
}

func Test_VolumesFromSource(t *testing.T) {
	cases := map[string]string{
		"db":                   "db",
		"db:ro":                "db",
		"db:rw":                "db",
		"container:data":       "data",
		"container:data:ro":    "data",
		"registry:5000/app:ro": "registry:5000/app",
	}

	for spec, want := range cases {
		if got := volumesFromSource(spec); got != want {
			t.Fatalf("volumesFromSource(%q): want %q, got %q", spec, want, got)
		}
	}
}

func equalStringSlice(t *testing.T, want, found []string) {
	t.Helper()
	if (want == nil) != (found == nil) {
		t.Fatalf("unexpected nil slice: want %+v, got %+v", want, found)
	}

	if len(want) != len(found) {
		t.Fatalf("unequal slice length: want %+v, got %+v", want, found)
	}

	for i := range want {
		if want[i] != found[i] {
			t.Fatalf("unexpected value at postition %d: want %s, got %s", i, want[i], found[i])
		}
	}
}

func Test_GetArchSuffix(t *testing.T) {
	cases := []struct {
		name      string
		want      string
		foundArch string
		foundOS   string
	}{
		{
			name:      "no suffix if os is not linux",
			foundOS:   "Darwin",
			foundArch: "arm64",
			want:      "",
		},
		{
			name:      "x86 has no suffix",
			foundOS:   "Linux",
			foundArch: "x86_64",
			want:      "",
		},
		{
			name:      "unknown arch has no suffix",
			foundOS:   "Linux",
			foundArch: "anything_else",
			want:      "",
		},
		{
			name:      "armhf has armhf suffix",
			foundOS:   "Linux",
			foundArch: "armhf",
			want:      "-armhf",
		},
		{
			name:      "armv7l has armhf suffix",
			foundOS:   "Linux",
			foundArch: "armv7l",
			want:      "-armhf",
		},
		{
			name:      "arm64 has arm64 suffix",
			foundOS:   "Linux",
			foundArch: "arm64",
			want:      "-arm64",
		},
		{
			name:      "aarch64 has arm64 suffix",
			foundOS:   "Linux",
			foundArch: "aarch64",
			want:      "-arm64",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			suffix := GetArchSuffix(testArchGetter(tc.foundArch, tc.foundOS))

			if suffix != tc.want {
				t.Fatalf("want suffix %s, got %s", tc.want, suffix)
			}
		})
	}
}

func testArchGetter(arch, os string) ArchGetter {
	return func() (string, string) {
		return arch, os
	}
}
