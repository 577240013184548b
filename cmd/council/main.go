package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nirdonia/council/internal/client"
	"github.com/nirdonia/council/internal/config"
	httpapp "github.com/nirdonia/council/internal/http"
	"github.com/nirdonia/council/internal/store/sqlite"
)

func main() {
	if len(os.Args) < 2 {
		runServer()
		return
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "server", "serve":
		runServer()
	case "post", "submit":
		cmdPost(args)
	case "read", "list":
		cmdList(args)
	case "vote":
		cmdVote(args)
	case "delete", "rm":
		cmdDelete(args)
	case "health":
		cmdHealth(args)
	case "version", "-v", "--version":
		fmt.Println("council v1.0.0")
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`council - NIRDonia village council board

Usage: council <command> [options]

Client Commands:
  post                Post a message to the council board
  read                Read the most recent posts
  vote                Vote a post up or down
  delete              Delete a post (moderation)
  health              Check that the server is up

Server:
  server              Start the council server (default if no command)

Examples:
  council post --content "Today I installed Linux on my school laptop" --author alice --task repair
  council post --content "I would rather not say who I am" --anonymous
  council read
  council vote --id 3 --up
  council delete --id 3

Environment Variables (server):
  COUNCIL_DB          Database path (required)
  COUNCIL_ADDR        Listen address (default: :3001, PORT also honored)
  COUNCIL_ENV         Set to "production" to hide error detail in responses`)
}

// ============================================================================
// SERVER
// ============================================================================

func runServer() {
	// .env.local wins over .env, matching the frontend dev setup.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer store.Close()

	server := httpapp.NewServer(store, cfg)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("council listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}

// ============================================================================
// CLIENT COMMANDS
// ============================================================================

func serverURL(fs *flag.FlagSet) *string {
	return fs.String("url", envOr("COUNCIL_URL", "http://localhost:3001"), "Council server URL")
}

func cmdPost(args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	url := serverURL(fs)
	content := fs.String("content", "", "Post content (required)")
	author := fs.String("author", "", "Author name (omit for a guest name)")
	anonymous := fs.Bool("anonymous", false, "Post anonymously")
	task := fs.String("task", "", "Task type: repair, replace, privacy, learn, general")
	fs.Parse(args)

	if *content == "" {
		fmt.Fprintln(os.Stderr, "Error: --content is required")
		os.Exit(1)
	}

	c := client.New(*url)
	post, err := c.CreatePost(client.CreatePostRequest{
		Content:     *content,
		Author:      *author,
		IsAnonymous: *anonymous,
		TaskType:    *task,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Posted #%d [%s] as %s\n", post.ID, post.Hash, post.Author)
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	url := serverURL(fs)
	fs.Parse(args)

	c := client.New(*url)
	posts, err := c.ListPosts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(posts) == 0 {
		fmt.Println("No posts yet.")
		return
	}
	for _, p := range posts {
		fmt.Printf("#%-4d %3d votes  [%s] %-8s %s: %s\n",
			p.ID, p.Votes, p.Hash, p.TaskType, p.Author, p.Content)
	}
}

func cmdVote(args []string) {
	fs := flag.NewFlagSet("vote", flag.ExitOnError)
	url := serverURL(fs)
	id := fs.Int64("id", 0, "Post ID (required)")
	up := fs.Bool("up", false, "Vote up")
	down := fs.Bool("down", false, "Vote down")
	fs.Parse(args)

	if *id == 0 || *up == *down {
		fmt.Fprintln(os.Stderr, "Usage: council vote --id <post-id> (--up | --down)")
		os.Exit(1)
	}
	action := "increment"
	if *down {
		action = "decrement"
	}

	c := client.New(*url)
	post, err := c.Vote(*id, action)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Post #%d now has %d votes\n", post.ID, post.Votes)
}

func cmdDelete(args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	url := serverURL(fs)
	id := fs.Int64("id", 0, "Post ID (required)")
	fs.Parse(args)

	if *id == 0 {
		fmt.Fprintln(os.Stderr, "Usage: council delete --id <post-id>")
		os.Exit(1)
	}

	c := client.New(*url)
	if err := c.DeletePost(*id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Post #%d deleted\n", *id)
}

func cmdHealth(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	url := serverURL(fs)
	fs.Parse(args)

	c := client.New(*url)
	if err := c.Health(); err != nil {
		fmt.Fprintf(os.Stderr, "Server not healthy: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Server is running")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
