package model

import (
	"strings"
	"time"
)

type Commit struct {
	ID             string `json:"commit"`
	Author         string
	AuthorEmail    string
	AuthorDate     time.Time
	Committer      string
	CommitterEmail string
	CommitterDate  time.Time
	Subject        string
	Body           string
	Repo           string `json:"repo,omitempty"`
}

func (c *Commit) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

// Message returns the full commit message, subject and body joined by a
// blank line.
func (c *Commit) Message() string {
	body := strings.TrimSpace(c.Body)
	if body == "" {
		return c.Subject
	}
	return c.Subject + "\n\n" + body
}

// SplitMessage splits a raw commit message into its subject line and body.
func SplitMessage(msg string) (subject, body string) {
	msg = strings.TrimLeft(msg, "\n")
	parts := strings.SplitN(msg, "\n", 2)
	subject = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		body = strings.TrimSpace(parts[1])
	}
	return subject, body
}
