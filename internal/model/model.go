package model

import "time"

const (
	// MaxContentLen is the hard cap on post content length.
	MaxContentLen = 500

	// DefaultTaskType is used when a post is created without a task type.
	DefaultTaskType = "general"

	// AnonymousAuthor replaces the supplied author on anonymous posts.
	AnonymousAuthor = "Anonymous"
)

// TaskTypes are the allowed values for CouncilPost.TaskType.
var TaskTypes = []string{"repair", "replace", "privacy", "learn", "general"}

// CouncilPost is a message on the village council board.
type CouncilPost struct {
	ID          int64     `json:"id"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	Votes       int       `json:"votes"`
	Hash        string    `json:"hash"`
	IsAnonymous bool      `json:"isAnonymous"`
	TaskType    string    `json:"taskType"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidTaskType reports whether t is one of the allowed task types.
func ValidTaskType(t string) bool {
	for _, v := range TaskTypes {
		if v == t {
			return true
		}
	}
	return false
}
