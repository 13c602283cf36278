package compose

import (
	"context"

	"github.com/devantler-tech/pose/pkg/image"
)

// ApplyResolvedImages rewrites the image of every service whose reference equals the
// original reference of a changed outcome. Only the image scalar's text is replaced;
// key order, quoting and every other node stay as they were. It returns the number of
// services rewritten.
func (d *Document) ApplyResolvedImages(outcomes []image.Outcome) int {
	services, ok := d.Services()
	if !ok {
		return 0
	}

	replacements := make(map[string]string, len(outcomes))

	for _, outcome := range outcomes {
		if outcome.Changed() {
			replacements[outcome.Original.String()] = outcome.Resolved.String()
		}
	}

	if len(replacements) == 0 {
		return 0
	}

	rewritten := 0

	for _, definition := range serviceDefinitions(services) {
		ref, found := serviceImage(definition)
		if !found {
			continue
		}

		replacement, matched := replacements[image.ParseReference(ref.Text).String()]
		if !matched {
			continue
		}

		ref.SetText(replacement)

		rewritten++
	}

	return rewritten
}

// UpdateImagesTag resolves every service image through resolver and writes the changed
// references back into the document. Resolution completes before the document is touched,
// so a failed resolution leaves the document unchanged.
func (d *Document) UpdateImagesTag(ctx context.Context, resolver Resolver) ([]image.Outcome, error) {
	images, ok := d.Images("")
	if !ok || len(images) == 0 {
		return []image.Outcome{}, nil
	}

	outcomes, err := resolver.Resolve(ctx, images)
	if err != nil {
		return nil, err
	}

	d.ApplyResolvedImages(outcomes)

	return outcomes, nil
}
