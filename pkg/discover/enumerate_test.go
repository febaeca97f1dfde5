// Copyright 2025 Jason Poonia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package discover_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonpoonia/wpmigrate/pkg/discover"
	"github.com/jasonpoonia/wpmigrate/pkg/wp"
)

// pagedSource fakes the posts endpoint with a fixed page script. A page value
// of -1 answers HTTP 400, mimicking WordPress's out-of-range response.
func pagedSource(t *testing.T, pages [][]wp.Post) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var requests atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if !assert.NoError(t, err, "page parameter should always be sent") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if page > len(pages) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if pages[page-1] == nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(pages[page-1])
	}))
	t.Cleanup(srv.Close)

	return srv, &requests
}

func makePosts(n int, prefix string) []wp.Post {
	posts := make([]wp.Post, n)
	for i := range posts {
		posts[i] = wp.Post{ID: i + 1, Slug: fmt.Sprintf("%s-%d", prefix, i+1)}
	}
	return posts
}

func TestEnumerator_FullPagesThenOutOfRange(t *testing.T) {
	srv, requests := pagedSource(t, [][]wp.Post{
		makePosts(2, "one"),
		makePosts(2, "two"),
	})

	enum := &discover.Enumerator{
		Source:    wp.NewSource(srv.URL, fastClient()),
		PerPage:   2,
		PageDelay: 20 * time.Millisecond,
	}

	start := time.Now()
	posts, err := enum.All(context.Background())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Len(t, posts, 4, "both full pages should be collected")
	assert.Equal(t, int32(3), requests.Load(), "a trailing request discovers the end of the collection")
	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond, "each follow-up page should wait out the delay")
}

func TestEnumerator_ShortPageEndsRun(t *testing.T) {
	srv, requests := pagedSource(t, [][]wp.Post{
		makePosts(2, "one"),
		makePosts(1, "two"),
	})

	enum := &discover.Enumerator{
		Source:  wp.NewSource(srv.URL, fastClient()),
		PerPage: 2,
	}

	posts, err := enum.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, int32(2), requests.Load(), "a short page makes the trailing request unnecessary")
}

func TestEnumerator_EmptyFirstPage(t *testing.T) {
	srv, requests := pagedSource(t, [][]wp.Post{
		{},
	})

	enum := &discover.Enumerator{
		Source:  wp.NewSource(srv.URL, fastClient()),
		PerPage: 2,
	}

	posts, err := enum.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, int32(1), requests.Load())
}

func TestEnumerator_MidStreamFailureKeepsPartialResults(t *testing.T) {
	srv, _ := pagedSource(t, [][]wp.Post{
		makePosts(2, "one"),
		nil, // persistent 500
	})

	enum := &discover.Enumerator{
		Source:  wp.NewSource(srv.URL, fastClient()),
		PerPage: 2,
	}

	posts, err := enum.All(context.Background())
	require.Error(t, err, "a page failure past the retry budget should surface")
	assert.Len(t, posts, 2, "posts collected before the failure should be kept")
	assert.Contains(t, err.Error(), "page 2")
}

func TestEnumerator_CancelledDuringPageDelay(t *testing.T) {
	srv, _ := pagedSource(t, [][]wp.Post{
		makePosts(2, "one"),
		makePosts(2, "two"),
	})

	enum := &discover.Enumerator{
		Source:    wp.NewSource(srv.URL, fastClient()),
		PerPage:   2,
		PageDelay: time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		posts []wp.Post
		err   error
	}
	done := make(chan result, 1)
	go func() {
		posts, err := enum.All(ctx)
		done <- result{posts, err}
	}()

	// Give the first page time to land, then cancel during the delay.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case res := <-done:
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, context.Canceled)
		assert.Len(t, res.posts, 2, "the first page should survive cancellation")
	case <-time.After(5 * time.Second):
		t.Fatal("enumerator did not honor cancellation during page delay")
	}
}
