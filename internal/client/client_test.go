package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListPosts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/council/posts" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":1,"author":"alice","content":"hi","votes":2,"hash":"AABBCCDD","taskType":"general"}]}`))
	}))
	defer ts.Close()

	posts, err := New(ts.URL).ListPosts()
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 || posts[0].Author != "alice" || posts[0].Votes != 2 {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestFailureMessagePropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Content is required"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).CreatePost(CreatePostRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Content is required" {
		t.Fatalf("expected server message, got %q", err)
	}
}

func TestVoteRequestShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/council/posts/7/vote" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":7,"votes":1}}`))
	}))
	defer ts.Close()

	post, err := New(ts.URL).Vote(7, "increment")
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if post.Votes != 1 {
		t.Fatalf("expected 1 vote, got %d", post.Votes)
	}
}
