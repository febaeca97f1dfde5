package migrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonpoonia/wpmigrate/pkg/migrate"
	"github.com/jasonpoonia/wpmigrate/pkg/wp"
)

func TestResolver_SlugPermalink(t *testing.T) {
	f := newFixture(t)
	f.servePosts(f.post(7, "hello-world", "header.png"))

	r := &migrate.Resolver{Source: wp.NewSource(f.source.URL, fastClient())}

	post, err := r.Resolve(context.Background(), f.source.URL+"/blog/2024/hello-world/")
	require.NoError(t, err)
	require.NotNil(t, post)

	assert.Equal(t, 7, post.ID)
	assert.Equal(t, "hello-world", post.Slug)
	assert.NotEmpty(t, post.FeaturedMediaURL(), "resolution must return the record with embedded media")
	assert.Equal(t, 1, f.slugQueries)
}

func TestResolver_QueryPermalink(t *testing.T) {
	f := newFixture(t)
	f.servePosts(f.post(42, "direct", ""))

	r := &migrate.Resolver{Source: wp.NewSource(f.source.URL, fastClient())}

	post, err := r.Resolve(context.Background(), f.source.URL+"/?p=42")
	require.NoError(t, err)
	require.NotNil(t, post)

	assert.Equal(t, 42, post.ID)
	assert.Equal(t, 0, f.slugQueries, "id permalinks resolve without a slug lookup")
}

func TestResolver_UnknownSlugSkips(t *testing.T) {
	f := newFixture(t)
	f.servePosts() // nothing to find

	r := &migrate.Resolver{Source: wp.NewSource(f.source.URL, fastClient())}

	post, err := r.Resolve(context.Background(), f.source.URL+"/posts/ghost")
	require.NoError(t, err, "an unknown slug is a skip, not a failure")
	assert.Nil(t, post)
}

func TestResolver_NoSlugInURL(t *testing.T) {
	f := newFixture(t)

	r := &migrate.Resolver{Source: wp.NewSource(f.source.URL, fastClient())}

	post, err := r.Resolve(context.Background(), f.source.URL+"/")
	require.NoError(t, err)
	assert.Nil(t, post)
	assert.Equal(t, 0, f.slugQueries, "a bare site url never reaches the api")
}

func TestResolver_NonNumericID(t *testing.T) {
	f := newFixture(t)

	r := &migrate.Resolver{Source: wp.NewSource(f.source.URL, fastClient())}

	post, err := r.Resolve(context.Background(), f.source.URL+"/?p=latest")
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestResolver_SourceErrorSurfaces(t *testing.T) {
	f := newFixture(t)
	f.servePosts() // id 42 does not exist, GetPost 404s

	r := &migrate.Resolver{Source: wp.NewSource(f.source.URL, fastClient())}

	_, err := r.Resolve(context.Background(), f.source.URL+"/?p=42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving id 42")
}
