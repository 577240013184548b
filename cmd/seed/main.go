package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/nirdonia/council/internal/client"
)

var posts = []client.CreatePostRequest{
	{Content: "Today I installed Linux on my school laptop", Author: "alice", TaskType: "repair"},
	{Content: "Swapped the cracked screen on my phone instead of buying a new one", Author: "bob", TaskType: "repair"},
	{Content: "Looking for advice: should I replace my 2014 laptop or upgrade the RAM?", Author: "carol", TaskType: "replace"},
	{Content: "Moved the whole family group chat off WhatsApp this weekend", IsAnonymous: true, TaskType: "privacy"},
	{Content: "Started a repair café at the village hall, first session next Saturday", Author: "dmitri", TaskType: "general"},
	{Content: "Finally learned how to flash a custom ROM, happy to help others", TaskType: "learn"},
	{Content: "My smart TV was phoning home every 15 minutes. Blocked it at the router.", IsAnonymous: true, TaskType: "privacy"},
	{Content: "Teaching my grandmother to spot phishing emails, any good resources?", Author: "elena", TaskType: "learn"},
}

func main() {
	baseURL := flag.String("url", "http://localhost:3001", "Council server URL")
	flag.Parse()

	log.Printf("Seeding council board at %s...", *baseURL)

	c := client.New(*baseURL)
	if err := c.Health(); err != nil {
		log.Fatalf("server not reachable: %v", err)
	}

	var ids []int64
	for _, p := range posts {
		created, err := c.CreatePost(p)
		if err != nil {
			log.Fatalf("create post %q: %v", p.Content, err)
		}
		log.Printf("✓ Posted #%d [%s] as %s", created.ID, created.Hash, created.Author)
		ids = append(ids, created.ID)
	}

	// Scatter some votes so the board doesn't look flat.
	for _, id := range ids {
		n := rand.Intn(6)
		for i := 0; i < n; i++ {
			if _, err := c.Vote(id, "increment"); err != nil {
				log.Fatalf("vote on #%d: %v", id, err)
			}
		}
	}

	log.Printf("Done: %d posts seeded", len(ids))
}
