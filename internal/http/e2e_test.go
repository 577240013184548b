package httpapp_test

import (
	"net"
	"net/http"
	"testing"

	"github.com/nirdonia/council/internal/client"
	"github.com/nirdonia/council/internal/config"
	httpapp "github.com/nirdonia/council/internal/http"
	"github.com/nirdonia/council/internal/store/sqlite"
)

func TestEndToEndServer(t *testing.T) {
	st, err := sqlite.Open("file:e2e_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	server := httpapp.NewServer(st, config.Config{Addr: ":0", DBPath: "e2e"})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	httpServer := &http.Server{Handler: server}
	go func() {
		_ = httpServer.Serve(listener)
	}()
	defer httpServer.Close()

	c := client.New("http://" + listener.Addr().String())

	if err := c.Health(); err != nil {
		t.Fatalf("health: %v", err)
	}

	post, err := c.CreatePost(client.CreatePostRequest{
		Content:  "Today I installed Linux on my school laptop",
		Author:   "alice",
		TaskType: "repair",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.ID == 0 || post.Hash == "" {
		t.Fatalf("expected assigned id and hash, got %+v", post)
	}

	voted, err := c.Vote(post.ID, "increment")
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if voted.Votes != post.Votes+1 {
		t.Fatalf("expected %d votes, got %d", post.Votes+1, voted.Votes)
	}

	posts, err := c.ListPosts()
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != post.ID {
		t.Fatalf("unexpected list: %+v", posts)
	}

	if err := c.DeletePost(post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if err := c.DeletePost(post.ID); err == nil {
		t.Fatal("expected error deleting twice")
	}
}
