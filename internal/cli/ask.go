// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
//
// Command: ask
// Short:   Send a single message and print the reply
//
// Examples:
//   chatdeck ask "what changed yesterday?"
//   chatdeck ask --quiet "summarize the incident" | tee notes.txt
//
// Markdown in the reply is rendered when stdout is a terminal; piped
// output stays plain.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer is the glamour renderer for terminal output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display, returning the
// original content if rendering is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// HandleAsk sends one message and prints the reply.
func HandleAsk(args Args) error {
	if args.Query == "" {
		return fmt.Errorf("usage: chatdeck ask \"question\"")
	}

	client, _, err := newClient(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	reply, err := client.Chat(ctx, args.Query)
	if err != nil {
		return err
	}

	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(reply))
	} else {
		fmt.Println(reply)
	}
	return nil
}
