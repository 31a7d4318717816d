// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"io"
	"net/url"
)

// Known intents the backend classifies prompts into.
const (
	IntentSummarize = "summarize"
	IntentTranslate = "translate"
)

// FileRecord is one previously uploaded file.
type FileRecord struct {
	Filename   string  `json:"filename"`
	UploadedAt apiTime `json:"uploaded_at"`
}

// SummaryRecord is one stored document summary.
type SummaryRecord struct {
	Filename  string  `json:"filename"`
	Summary   string  `json:"summary"`
	Timestamp apiTime `json:"timestamp"`
}

// UploadFile stores a document on the server and returns the filename
// the server registered it under. Later processing calls reference
// that name, not the local path.
func (c *Client) UploadFile(ctx context.Context, filename string, contents io.Reader) (string, error) {
	var resp struct {
		Filename string `json:"filename"`
	}
	err := c.postMultipart(ctx, c.endpoint(epFileUpload), nil, []filePart{
		{field: "file", filename: filename, reader: contents},
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Filename, nil
}

// ListFiles returns the files previously uploaded by a username.
func (c *Client) ListFiles(ctx context.Context, username string) ([]FileRecord, error) {
	params := url.Values{"username": {username}}
	var records []FileRecord
	if err := c.getJSON(ctx, c.endpointQuery(epFileList, params), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ProcessFile summarizes an uploaded document by its server-side name.
// The second return reports whether the response carried a summary at
// all; callers pick their own fallback text for a response without one.
func (c *Client) ProcessFile(ctx context.Context, filename string) (string, bool, error) {
	var resp struct {
		Summary *string `json:"summary"`
	}
	err := c.postMultipart(ctx, c.endpoint(epFileProcess), map[string]string{
		"filename": filename,
	}, nil, &resp)
	if err != nil {
		return "", false, err
	}
	if resp.Summary == nil {
		return "", false, nil
	}
	return *resp.Summary, true, nil
}

// TranslateFile translates an uploaded document by its server-side
// name. The second return reports whether the response carried a
// translation.
func (c *Client) TranslateFile(ctx context.Context, filename string) (string, bool, error) {
	var resp struct {
		Translation *string `json:"translation"`
	}
	err := c.postMultipart(ctx, c.endpoint(epFileTranslate), map[string]string{
		"filename": filename,
	}, nil, &resp)
	if err != nil {
		return "", false, err
	}
	if resp.Translation == nil {
		return "", false, nil
	}
	return *resp.Translation, true, nil
}

// DetectIntent classifies a free-text prompt as IntentSummarize or
// IntentTranslate. The classification happens server-side against the
// language model; the client treats the result as opaque and only
// compares it to the known intent constants.
func (c *Client) DetectIntent(ctx context.Context, prompt string) (string, error) {
	var resp struct {
		Intent string `json:"intent"`
	}
	err := c.postMultipart(ctx, c.endpoint(epDetectIntent), map[string]string{
		"prompt": prompt,
	}, nil, &resp)
	if err != nil {
		return "", err
	}
	return resp.Intent, nil
}

// SummaryHistory returns the stored document summaries for a username.
func (c *Client) SummaryHistory(ctx context.Context, username string) ([]SummaryRecord, error) {
	params := url.Values{"username": {username}}
	var records []SummaryRecord
	if err := c.getJSON(ctx, c.endpointQuery(epSummaryHistory, params), &records); err != nil {
		return nil, err
	}
	return records, nil
}
