package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lumina/internal/models"
)

const listingJSON = `{"kind":"Listing","data":{"children":[
 {"kind":"t3","data":{"id":"gal1","title":"Gallery","author":"alice","subreddit":"unixporn","subreddit_name_prefixed":"r/unixporn",
  "url":"https://www.reddit.com/gallery/gal1","permalink":"/r/unixporn/comments/gal1/gallery/","score":50,"created_utc":1700000000,
  "is_gallery":true,
  "gallery_data":{"items":[{"media_id":"m1"},{"media_id":"m2"}]},
  "media_metadata":{"m1":{"status":"valid","s":{"u":"https://preview.redd.it/m1.jpg?a=1&amp;b=2","x":1920,"y":1080}},
                    "m2":{"status":"valid","s":{"u":"https://preview.redd.it/m2.jpg","x":800,"y":800}}}}},
 {"kind":"t3","data":{"id":"img1","title":"Direct","author":"bob","subreddit":"unixporn","url":"https://i.redd.it/abc.PNG",
  "permalink":"/r/unixporn/comments/img1/direct/","score":10,"created_utc":1700000100,
  "crosspost_parent_list":[{"id":"orig","title":"Original","subreddit":"LocalLLaMA","subreddit_name_prefixed":"r/LocalLLaMA","permalink":"/r/LocalLLaMA/comments/orig/"}]}},
 {"kind":"t3","data":{"id":"gif1","title":"Loop","author":"carol","subreddit":"unixporn","url":"https://i.redd.it/loop.gif","score":3,"created_utc":1700000200}},
 {"kind":"t3","data":{"id":"vid1","title":"Video","author":"dave","subreddit":"unixporn","url":"https://v.redd.it/xyz","score":7,"created_utc":1700000300,
  "is_video":true,
  "preview":{"images":[{"source":{"url":"https://external-preview.redd.it/p.jpg?w=1&amp;s=2","width":720,"height":1280}}]},
  "secure_media":{"reddit_video":{"fallback_url":"https://v.redd.it/xyz/DASH_720.mp4","width":720,"height":1280}}}},
 {"kind":"t3","data":{"id":"txt1","title":"Question","author":"erin","subreddit":"unixporn","selftext":"What WM is this?","url":"https://www.reddit.com/r/unixporn/comments/txt1/","score":1,"created_utc":1700000400}},
 {"kind":"t3","data":{"id":"link1","title":"Just a link","author":"frank","subreddit":"unixporn","url":"https://example.com/article","score":2,"created_utc":1700000500}}
]}}`

func TestClient_Listing_MapsMediaKinds(t *testing.T) {
	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, listingJSON)
	}))
	t.Cleanup(server.Close)

	client := NewClient(WithBaseURL(server.URL), WithUserAgent("lumina-test/1"))
	items, err := client.Listing(context.Background(), "unixporn")
	require.NoError(t, err)

	assert.Equal(t, "/r/unixporn/hot.json?limit=25", gotPath)
	assert.Equal(t, "lumina-test/1", gotUA)
	require.Len(t, items, 5, "link-only post is dropped")

	gal := items[0]
	assert.Equal(t, "gal1", gal.ID)
	assert.Equal(t, models.MediaImage, gal.Type)
	assert.Equal(t, "https://preview.redd.it/m1.jpg?a=1&b=2", gal.MediaURL)
	assert.Equal(t, []string{"https://preview.redd.it/m1.jpg?a=1&b=2", "https://preview.redd.it/m2.jpg"}, gal.GalleryURLs)
	assert.Equal(t, 1920, gal.Width)
	assert.Equal(t, models.AspectWidescreen, gal.AspectRatio)
	assert.Equal(t, "r/unixporn", gal.Source)
	assert.Equal(t, "u/alice", gal.Author.Handle)
	assert.Equal(t, int64(50), gal.Likes)
	assert.Equal(t, int64(1700000000), gal.Timestamp.Unix())

	img := items[1]
	assert.Equal(t, models.MediaImage, img.Type)
	assert.Equal(t, "https://i.redd.it/abc.PNG", img.MediaURL)
	assert.Equal(t, []string{"x-post:r/LocalLLaMA"}, img.Tags)
	assert.Equal(t, models.DefaultDimension, img.Width)
	assert.Equal(t, models.AspectSquare, img.AspectRatio)
	assert.Nil(t, img.GalleryURLs)

	assert.Equal(t, models.MediaAnimatedLoop, items[2].Type)

	vid := items[3]
	assert.Equal(t, models.MediaShortVideo, vid.Type)
	assert.Equal(t, "https://v.redd.it/xyz/DASH_720.mp4", vid.MediaURL)
	assert.Equal(t, "https://external-preview.redd.it/p.jpg?w=1&s=2", vid.ThumbnailURL)
	assert.Equal(t, models.AspectPortrait, vid.AspectRatio)

	txt := items[4]
	assert.Equal(t, models.MediaText, txt.Type)
	assert.Empty(t, txt.MediaURL)
	assert.Equal(t, "What WM is this?", txt.BodyText)
	assert.Equal(t, 800, txt.Width)
	assert.Equal(t, 600, txt.Height)
	assert.True(t, txt.Displayable())
}

func TestClient_Search_UsesGenericLabelWithoutSubreddit(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "relevance", r.URL.Query().Get("sort"))
		assert.Equal(t, "link", r.URL.Query().Get("type"))
		fmt.Fprint(w, `{"data":{"children":[
		 {"kind":"t3","data":{"id":"s1","title":"hit","author":"x","url":"https://i.redd.it/a.jpg","score":1,"created_utc":1}},
		 {"kind":"t3","data":{"id":"s2","title":"hit2","author":"y","subreddit":"StableDiffusion","url":"https://i.redd.it/b.jpg","score":1,"created_utc":1}}
		]}}`)
	}))
	t.Cleanup(server.Close)

	client := NewClient(WithBaseURL(server.URL))
	items, err := client.Search(context.Background(), "z image turbo")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "z image turbo", gotQuery)
	assert.Equal(t, SearchLabel, items[0].Source)
	assert.Equal(t, "r/StableDiffusion", items[1].Source)
}

func TestClient_Listing_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client := NewClient(WithBaseURL(server.URL))
	items, err := client.Listing(context.Background(), "r/unixporn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Nil(t, items)
}

func TestClient_Listing_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":`)
	}))
	t.Cleanup(server.Close)

	_, err := NewClient(WithBaseURL(server.URL)).Listing(context.Background(), "unixporn")
	require.Error(t, err)
}

const threadJSON = `[
 {"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"p1","title":"Post","selftext":"Full body text of the post",
   "crosspost_parent_list":[{"id":"cp1","title":"Origin","subreddit":"LocalLLaMA","subreddit_name_prefixed":"r/LocalLLaMA","permalink":"/r/LocalLLaMA/comments/cp1/origin/"}]}}]}},
 {"kind":"Listing","data":{"children":[
   {"kind":"t1","data":{"id":"c1","author":"alice","body":"Great shot!","score":12,"created_utc":1700000000,
     "replies":{"kind":"Listing","data":{"children":[
        {"kind":"t1","data":{"id":"r1","author":"bob","body":"Agreed","score":2,"created_utc":1700000001,"replies":""}},
        {"kind":"more","data":{"id":"more1"}}
     ]}}}},
   {"kind":"t1","data":{"id":"c2","author":"carol","body":"Nice","score":1,"created_utc":1700000002,"replies":""}},
   {"kind":"more","data":{"id":"more2"}}
 ]}}
]`

func TestClient_Thread(t *testing.T) {
	var gotURI string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		fmt.Fprint(w, threadJSON)
	}))
	t.Cleanup(server.Close)

	client := NewClient(WithBaseURL(server.URL))
	th, err := client.Thread(context.Background(), "/r/unixporn/comments/p1/post/")
	require.NoError(t, err)

	assert.Equal(t, "/r/unixporn/comments/p1/post.json?limit=40&depth=2&sort=top", gotURI)
	assert.Equal(t, "Full body text of the post", th.BodyText)
	require.Len(t, th.Comments, 2)
	assert.Equal(t, "c1", th.Comments[0].ID)
	require.Len(t, th.Comments[0].Replies, 1)
	assert.Equal(t, "r1", th.Comments[0].Replies[0].ID)
	assert.Nil(t, th.Comments[0].Replies[0].Replies)
	assert.Empty(t, th.Comments[1].Replies)

	require.Len(t, th.Crossposts, 1)
	assert.Equal(t, models.RelatedThread{
		ID:        "cp1",
		Title:     "Origin",
		Subreddit: "r/LocalLLaMA",
		URL:       server.URL + "/r/LocalLLaMA/comments/cp1/origin/",
		Type:      models.RelatedCrosspost,
	}, th.Crossposts[0])
}

func TestClient_Thread_AbsolutePermalink(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, threadJSON)
	}))
	t.Cleanup(server.Close)

	_, err := NewClient(WithBaseURL(server.URL)).Thread(context.Background(), "https://www.reddit.com/r/a/comments/p1/x/")
	require.NoError(t, err)
	assert.Equal(t, "/r/a/comments/p1/x.json", gotPath)
}

func TestClient_Thread_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	t.Cleanup(server.Close)

	_, err := NewClient(WithBaseURL(server.URL)).Thread(context.Background(), "/r/a/comments/p1/x")
	assert.ErrorIs(t, err, ErrEmptyThread)
}
