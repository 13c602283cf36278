package image_test

import (
	"testing"

	"github.com/devantler-tech/pose/pkg/image"
	"github.com/stretchr/testify/assert"
)

func TestParseReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   image.Reference
		effTag string
	}{
		{
			name:   "name only",
			raw:    "nginx",
			want:   image.Reference{Name: "nginx"},
			effTag: "latest",
		},
		{
			name:   "name and tag",
			raw:    "postgres:16.1",
			want:   image.Reference{Name: "postgres", Tag: "16.1"},
			effTag: "16.1",
		},
		{
			name:   "registry with namespace",
			raw:    "namespace.server.com/image:master",
			want:   image.Reference{Name: "namespace.server.com/image", Tag: "master"},
			effTag: "master",
		},
		{
			name:   "registry port without tag",
			raw:    "localhost:5000/app",
			want:   image.Reference{Name: "localhost:5000/app"},
			effTag: "latest",
		},
		{
			name:   "registry port with tag",
			raw:    "localhost:5000/app:dev",
			want:   image.Reference{Name: "localhost:5000/app", Tag: "dev"},
			effTag: "dev",
		},
		{
			name:   "digest",
			raw:    "redis:7@sha256:abc",
			want:   image.Reference{Name: "redis", Tag: "7", Digest: "sha256:abc"},
			effTag: "7",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := image.ParseReference(testCase.raw)

			assert.Equal(t, testCase.want, got)
			assert.Equal(t, testCase.effTag, got.EffectiveTag())
			assert.Equal(t, testCase.raw, got.String())
		})
	}
}

func TestReferenceWithTag(t *testing.T) {
	t.Parallel()

	ref := image.ParseReference("redis:7@sha256:abc")

	assert.Equal(t, "redis:8", ref.WithTag("8").String())
	assert.Equal(t, "nginx:16.2", image.ParseReference("nginx").WithTag("16.2").String())
}

func TestSortOutcomesAndResolvedStrings(t *testing.T) {
	t.Parallel()

	outcomes := []image.Outcome{
		image.PassThrough(image.ParseReference("rabbitmq:3")),
		{
			Original: image.ParseReference("postgres:16.1"),
			Resolved: image.ParseReference("postgres:16.2"),
		},
		image.PassThrough(image.ParseReference("nginx")),
		{
			Original: image.ParseReference("postgres:16.0"),
			Resolved: image.ParseReference("postgres:16.2"),
		},
	}

	image.SortOutcomes(outcomes)

	assert.Equal(t, "postgres:16.0", outcomes[1].Original.String())
	assert.True(t, outcomes[1].Changed())
	assert.False(t, outcomes[0].Changed())
	assert.Equal(
		t,
		[]string{"nginx", "postgres:16.2", "rabbitmq:3"},
		image.ResolvedStrings(outcomes),
	)
}
