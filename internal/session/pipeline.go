// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"io"

	"github.com/jeranaias/chatdeck-tui/internal/api"
)

// CompletedText is shown when the document pipeline finishes without a
// textual result to display.
const CompletedText = "✅ Completed."

// Pipeline runs the document workflow: upload, optionally classify the
// accompanying prompt, then summarize or translate. The steps are
// sequential network calls; the whole run resolves a single optimistic
// send in the conversation.
type Pipeline struct {
	client *api.Client
}

// NewPipeline creates a pipeline over an API client.
func NewPipeline(client *api.Client) *Pipeline {
	return &Pipeline{client: client}
}

// classificationPrompt wraps the user's text in the strict instruction
// the backend's classifier expects, constraining the answer to the two
// known intents.
func classificationPrompt(text string) string {
	return "Classify the following request as exactly 'summarize' or 'translate'. " +
		"Answer with that single word and nothing else.\n\nRequest: " + text
}

// Run executes the workflow for one document and returns the text to
// display as the assistant reply.
//
// With no prompt the document is summarized. With a prompt the backend
// classifies the intent first: translate runs the translation, every
// other answer (including an unrecognized one) runs processing. A
// response that carries no result text resolves to the completion
// marker: the operation itself succeeded.
func (p *Pipeline) Run(ctx context.Context, filename string, contents io.Reader, prompt string) (string, error) {
	uploaded, err := p.client.UploadFile(ctx, filename, contents)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	if prompt == "" {
		return orCompleted(p.client.ProcessFile(ctx, uploaded))
	}

	intent, err := p.client.DetectIntent(ctx, classificationPrompt(prompt))
	if err != nil {
		return "", fmt.Errorf("intent detection failed: %w", err)
	}

	if intent == api.IntentTranslate {
		return orCompleted(p.client.TranslateFile(ctx, uploaded))
	}
	return orCompleted(p.client.ProcessFile(ctx, uploaded))
}

// orCompleted substitutes the completion marker when the operation
// answered without a result field.
func orCompleted(text string, ok bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !ok {
		return CompletedText, nil
	}
	return text, nil
}
