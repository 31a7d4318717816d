// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages open conversations and the send lifecycle.
//
// A send is optimistic: the user's message and a typing placeholder
// appear immediately, tagged with a request ID, and the pair is
// rewritten when the network call resolves. The manager routes each
// resolution back to the conversation that issued it, so conversation
// switches during a slow request are safe.
//
// # Key Types
//
//   - Manager: conversation registry plus the Begin/Resolve/Fail lifecycle
//   - Pipeline: the upload/classify/summarize-or-translate document flow
//
// # Usage
//
//	mgr := session.NewManager()
//	reqID, err := mgr.Begin("Hello")
//	if err != nil {
//	    // a request is already in flight
//	}
//	// later, from the network goroutine's result:
//	mgr.Resolve(reqID, reply)
package session
