// Package client provides a Go client for the village council API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nirdonia/council/internal/model"
)

// Client is a council API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a new council client.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreatePostRequest holds the fields for creating a post.
type CreatePostRequest struct {
	Content     string `json:"content"`
	Author      string `json:"author,omitempty"`
	IsAnonymous bool   `json:"isAnonymous,omitempty"`
	TaskType    string `json:"taskType,omitempty"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// ListPosts fetches the most recent council posts.
func (c *Client) ListPosts() ([]model.CouncilPost, error) {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/api/council/posts")
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	var posts []model.CouncilPost
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// CreatePost submits a new council post.
func (c *Client) CreatePost(req CreatePostRequest) (model.CouncilPost, error) {
	body, _ := json.Marshal(req)
	resp, err := c.HTTPClient.Post(c.BaseURL+"/api/council/posts", "application/json", bytes.NewReader(body))
	if err != nil {
		return model.CouncilPost{}, err
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return model.CouncilPost{}, err
	}
	var post model.CouncilPost
	if err := json.Unmarshal(env.Data, &post); err != nil {
		return model.CouncilPost{}, fmt.Errorf("decode post: %w", err)
	}
	return post, nil
}

// Vote increments or decrements a post's vote count.
// action must be "increment" or "decrement".
func (c *Client) Vote(id int64, action string) (model.CouncilPost, error) {
	body, _ := json.Marshal(map[string]string{"action": action})
	url := fmt.Sprintf("%s/api/council/posts/%d/vote", c.BaseURL, id)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return model.CouncilPost{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return model.CouncilPost{}, err
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return model.CouncilPost{}, err
	}
	var post model.CouncilPost
	if err := json.Unmarshal(env.Data, &post); err != nil {
		return model.CouncilPost{}, fmt.Errorf("decode post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post (moderation).
func (c *Client) DeletePost(id int64) error {
	url := fmt.Sprintf("%s/api/council/posts/%d", c.BaseURL, id)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	_, err = decodeEnvelope(resp)
	return err
}

// Health checks that the server is up.
func (c *Client) Health() error {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if result.Status != "OK" {
		return fmt.Errorf("unexpected status %q", result.Status)
	}
	return nil
}

func decodeEnvelope(resp *http.Response) (envelope, error) {
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return envelope{}, errors.New(msg)
	}
	return env, nil
}
