package image

import (
	"slices"
	"strings"
)

// Outcome is the resolution decision for one distinct image reference.
// Resolved equals Original when no substitution happened.
type Outcome struct {
	Original Reference
	Resolved Reference
}

// PassThrough returns an outcome that keeps ref unchanged.
func PassThrough(ref Reference) Outcome {
	return Outcome{Original: ref, Resolved: ref}
}

// Changed reports whether the outcome substitutes the original reference.
func (o Outcome) Changed() bool {
	return o.Original.String() != o.Resolved.String()
}

// SortOutcomes orders outcomes by their resolved reference, then by the original one,
// so the result does not depend on the order in which workers produced them.
func SortOutcomes(outcomes []Outcome) {
	slices.SortFunc(outcomes, func(left, right Outcome) int {
		byResolved := strings.Compare(left.Resolved.String(), right.Resolved.String())
		if byResolved != 0 {
			return byResolved
		}

		return strings.Compare(left.Original.String(), right.Original.String())
	})
}

// ResolvedStrings returns the rendered resolved references, in outcome order,
// without duplicates.
func ResolvedStrings(outcomes []Outcome) []string {
	images := make([]string, 0, len(outcomes))

	for _, outcome := range outcomes {
		resolved := outcome.Resolved.String()
		if len(images) > 0 && images[len(images)-1] == resolved {
			continue
		}

		images = append(images, resolved)
	}

	return images
}
