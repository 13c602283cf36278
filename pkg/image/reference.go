package image

import "strings"

// DefaultTag is the tag implied by a reference that does not declare one.
const DefaultTag = "latest"

// Reference is a parsed container image reference.
type Reference struct {
	// Name is everything before the tag separator (registry, namespace and repository).
	Name string
	// Tag is the explicit tag, empty when the reference has none.
	Tag string
	// Digest is the optional "@algo:hex" suffix without the "@".
	Digest string
}

// ParseReference splits an image string into name, tag and digest.
// The tag is the text after the last ':' only when that text contains no '/',
// so a registry port ("localhost:5000/app") is never mistaken for a tag.
func ParseReference(raw string) Reference {
	var ref Reference

	rest := strings.TrimSpace(raw)

	if at := strings.LastIndex(rest, "@"); at >= 0 {
		ref.Digest = rest[at+1:]
		rest = rest[:at]
	}

	colon := strings.LastIndex(rest, ":")
	if colon >= 0 && !strings.Contains(rest[colon+1:], "/") {
		ref.Name = rest[:colon]
		ref.Tag = rest[colon+1:]

		return ref
	}

	ref.Name = rest

	return ref
}

// EffectiveTag returns the explicit tag or DefaultTag when none is set.
func (r Reference) EffectiveTag() string {
	if r.Tag == "" {
		return DefaultTag
	}

	return r.Tag
}

// WithTag returns a copy of the reference pointing at tag. Any digest is dropped
// since it would pin the reference to the old content.
func (r Reference) WithTag(tag string) Reference {
	return Reference{Name: r.Name, Tag: tag}
}

// String renders the reference the way it was written.
func (r Reference) String() string {
	var builder strings.Builder

	builder.WriteString(r.Name)

	if r.Tag != "" {
		builder.WriteByte(':')
		builder.WriteString(r.Tag)
	}

	if r.Digest != "" {
		builder.WriteByte('@')
		builder.WriteString(r.Digest)
	}

	return builder.String()
}
