package compose

import (
	"context"
	"slices"

	"github.com/devantler-tech/pose/pkg/image"
)

// Root element names used by compose documents.
const (
	ServicesKey = "services"
	VolumesKey  = "volumes"
	NetworksKey = "networks"
	ConfigsKey  = "configs"
	SecretsKey  = "secrets"
)

// Service attribute keys read by the accessors.
const (
	imageKey       = "image"
	profilesKey    = "profiles"
	environmentKey = "environment"
	dependsOnKey   = "depends_on"
)

// Resolver resolves a sorted list of distinct image references into one outcome each.
type Resolver interface {
	Resolve(ctx context.Context, images []string) ([]image.Outcome, error)
}

// RootElement returns the root-level mapping stored under name.
// It reports false when the element is absent or is not a mapping.
func (d *Document) RootElement(name string) (*Mapping, bool) {
	node, ok := d.root.Get(name)
	if !ok {
		return nil, false
	}

	return AsMapping(node)
}

// RootElementNames returns the keys of the root-level mapping stored under name, in
// document order. It returns an empty slice when the element is absent, empty or not a mapping.
func (d *Document) RootElementNames(name string) []string {
	element, ok := d.RootElement(name)
	if !ok {
		return []string{}
	}

	return element.Keys()
}

// Services returns the root services mapping.
func (d *Document) Services() (*Mapping, bool) {
	return d.RootElement(ServicesKey)
}

// Service returns the definition of the named service. A service declared with the
// scalar shorthand (`app: the-app`) is not a valid definition and reports false.
func (d *Document) Service(name string) (*Mapping, bool) {
	services, ok := d.Services()
	if !ok {
		return nil, false
	}

	node, ok := services.Get(name)
	if !ok {
		return nil, false
	}

	return AsMapping(node)
}

// ProfileNames returns every profile declared by any service, deduplicated and sorted.
// It reports false when the document has no services mapping.
func (d *Document) ProfileNames() ([]string, bool) {
	services, ok := d.Services()
	if !ok {
		return nil, false
	}

	profiles := []string{}

	for _, definition := range serviceDefinitions(services) {
		node, found := definition.Get(profilesKey)
		if !found {
			continue
		}

		seq, isSeq := AsSequence(node)
		if !isSeq {
			continue
		}

		for _, item := range seq.Items {
			if name, isText := ScalarText(item); isText {
				profiles = append(profiles, name)
			}
		}
	}

	slices.Sort(profiles)

	return slices.Compact(profiles), true
}

// Images returns the distinct image references declared by the services, sorted.
// When filterTag is not empty only images whose tag (explicit or implied "latest")
// equals filterTag are returned. It reports false when the document has no services mapping.
func (d *Document) Images(filterTag string) ([]string, bool) {
	services, ok := d.Services()
	if !ok {
		return nil, false
	}

	images := []string{}

	for _, definition := range serviceDefinitions(services) {
		ref, found := serviceImage(definition)
		if !found {
			continue
		}

		if filterTag != "" && image.ParseReference(ref.Text).EffectiveTag() != filterTag {
			continue
		}

		images = append(images, ref.Text)
	}

	slices.Sort(images)

	return slices.Compact(images), true
}

// ResolveImages returns Images(filterTag) after passing them through resolver, which
// decides per image whether a tag-substituted reference replaces the original.
// A nil resolver returns the images unchanged.
func (d *Document) ResolveImages(
	ctx context.Context,
	filterTag string,
	resolver Resolver,
) ([]string, bool, error) {
	images, ok := d.Images(filterTag)
	if !ok || resolver == nil {
		return images, ok, nil
	}

	outcomes, err := resolver.Resolve(ctx, images)
	if err != nil {
		return nil, true, err
	}

	image.SortOutcomes(outcomes)

	return image.ResolvedStrings(outcomes), true, nil
}

// --- internals ---

// serviceDefinitions returns the mapping-valued services in document order.
func serviceDefinitions(services *Mapping) []*Mapping {
	definitions := make([]*Mapping, 0, services.Len())

	for _, node := range services.All() {
		if definition, ok := AsMapping(node); ok {
			definitions = append(definitions, definition)
		}
	}

	return definitions
}

// serviceImage returns the service's image scalar when it holds a non-empty reference.
func serviceImage(definition *Mapping) (*Scalar, bool) {
	node, ok := definition.Get(imageKey)
	if !ok {
		return nil, false
	}

	scalar, ok := AsScalar(node)
	if !ok || scalar.IsNull() || scalar.Text == "" {
		return nil, false
	}

	return scalar, true
}
