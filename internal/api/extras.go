// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// =============================================================================
// AUDIO
// =============================================================================

// SpeechToText transcribes an uploaded audio clip.
func (c *Client) SpeechToText(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}
	err := c.postMultipart(ctx, c.endpoint(epSpeechToText), nil, []filePart{
		{field: "file", filename: filename, reader: audio},
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// TextToSpeech synthesizes speech for text and returns the raw audio
// bytes. The caller decides where the bytes go; the client does not
// touch the filesystem.
func (c *Client) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	bearer, err := c.requireToken()
	if err != nil {
		return nil, err
	}

	// The text rides in the query string, but the server only accepts
	// POST for synthesis.
	params := url.Values{"text": {text}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointQuery(epTextToSpeech, params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(ctx, req, bearer)
}

// =============================================================================
// SUBJECTS
// =============================================================================

// Subject is one top-level subject record.
type Subject struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Subobject is one entry nested under a subject.
type Subobject struct {
	ID      string `json:"_id"`
	Subject string `json:"subject"`
	Name    string `json:"name"`
}

// CreateSubject registers a subject by name.
func (c *Client) CreateSubject(ctx context.Context, name string) error {
	return c.postJSON(ctx, c.endpoint(epSubjectCreate), map[string]string{
		"name": name,
	}, nil, true)
}

// ListSubjects returns every subject.
func (c *Client) ListSubjects(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	if err := c.getJSON(ctx, c.endpoint(epSubjectList), &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// CreateSubobject registers an entry under an existing subject.
func (c *Client) CreateSubobject(ctx context.Context, subject, name string) error {
	return c.postJSON(ctx, c.endpoint(epSubobjectCreate), map[string]string{
		"subject": subject,
		"name":    name,
	}, nil, true)
}

// ListSubobjects returns the entries under a subject.
func (c *Client) ListSubobjects(ctx context.Context, subject string) ([]Subobject, error) {
	params := url.Values{"subject": {subject}}
	var subobjects []Subobject
	if err := c.getJSON(ctx, c.endpointQuery(epSubobjectList, params), &subobjects); err != nil {
		return nil, err
	}
	return subobjects, nil
}

// =============================================================================
// BLOG
// =============================================================================

// ScrapeBlog asks the backend to fetch and extract an article from a
// URL. Extraction runs server-side; the client only relays the URL.
func (c *Client) ScrapeBlog(ctx context.Context, articleURL string) (string, error) {
	var resp struct {
		Content string `json:"content"`
	}
	err := c.postJSON(ctx, c.endpoint(epBlogScrape), map[string]string{
		"url": articleURL,
	}, &resp, true)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
