package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openfaas/startorder/pkg"
	"github.com/openfaas/startorder/pkg/image"
)

// DescriptorLoader returns the current set of image descriptors
type DescriptorLoader func() ([]*image.Descriptor, error)

// OrderResponse is the body returned by the /order endpoint
type OrderResponse struct {
	Order   []image.Identity   `json:"order"`
	Batches [][]image.Identity `json:"batches"`
}

// DependenciesResponse is the body returned by the /dependencies endpoint
type DependenciesResponse struct {
	Name         string   `json:"name"`
	Alias        string   `json:"alias,omitempty"`
	Network      string   `json:"network"`
	Dependencies []string `json:"dependencies"`
}

// MakeOrderHandler returns the start order and the start batches for the
// descriptors returned by load. The descriptors are loaded on every request.
func MakeOrderHandler(load DescriptorLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			defer r.Body.Close()
		}

		descriptors, err := load()
		if err != nil {
			log.Printf("[Order] error loading descriptors: %s", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		order, err := pkg.ResolveStartOrder(descriptors)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		batches, err := pkg.ResolveStartBatches(descriptors)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		res := OrderResponse{
			Order:   identities(order),
			Batches: make([][]image.Identity, 0, len(batches)),
		}
		for _, batch := range batches {
			res.Batches = append(res.Batches, identities(batch))
		}

		writeJSON(w, http.StatusOK, res)
	}
}

// MakeDependenciesHandler returns the raw dependency identifiers of the
// descriptor named in the path, by name or alias
func MakeDependenciesHandler(load DescriptorLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			defer r.Body.Close()
		}

		name := mux.Vars(r)["name"]

		descriptors, err := load()
		if err != nil {
			log.Printf("[Dependencies] error loading descriptors: %s", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		for _, d := range descriptors {
			if d.Name == name || (len(d.Alias) > 0 && d.Alias == name) {
				writeJSON(w, http.StatusOK, DependenciesResponse{
					Name:         d.Name,
					Alias:        d.Alias,
					Network:      d.Network.String(),
					Dependencies: d.DependencyIdentifiers(),
				})
				return
			}
		}

		http.Error(w, "service not found: "+name, http.StatusNotFound)
	}
}

func identities(descriptors []*image.Descriptor) []image.Identity {
	ids := make([]image.Identity, 0, len(descriptors))
	for _, d := range descriptors {
		ids = append(ids, d.Identity())
	}
	return ids
}

// statusFor maps resolution errors, which are caused by the input, to 422
func statusFor(err error) int {
	var (
		invalidErr    *pkg.InvalidDescriptorError
		duplicateErr  *pkg.DuplicateIdentifierError
		unresolvedErr *pkg.UnresolvedReferenceError
		cycleErr      *pkg.CyclicDependencyError
	)

	switch {
	case errors.As(err, &invalidErr),
		errors.As(err, &duplicateErr),
		errors.As(err, &unresolvedErr),
		errors.As(err, &cycleErr):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}
