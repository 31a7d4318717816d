// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "net/url"

// Endpoint paths, relative to the base URL. The catalog is the single
// place logical operations map to URLs; callers never build paths.
const (
	epLogin = "/auth/login"

	epChat        = "/chat"
	epChatHistory = "/chat/history"

	epFileUpload     = "/files/upload"
	epFileList       = "/files/list"
	epFileProcess    = "/files/process"
	epFileTranslate  = "/files/translate"
	epDetectIntent   = "/files/detect-intent"
	epSummaryHistory = "/files/summary-history"

	epAdminCreate         = "/admins/create"
	epAdminList           = "/admins/list"
	epAdminDelete         = "/admins/delete"
	epAdminUpdatePassword = "/admins/update-password"

	epSpeechToText = "/audio/stt"
	epTextToSpeech = "/audio/tts"

	epSubjectCreate   = "/subject"
	epSubjectList     = "/subject/list"
	epSubobjectCreate = "/subject/subobject"
	epSubobjectList   = "/subject/subobject/list"
	epBlogScrape      = "/blog/scrape"
)

// endpoint joins the base URL with a path.
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// endpointQuery joins the base URL with a path and query parameters.
func (c *Client) endpointQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return c.endpoint(path)
	}
	return c.endpoint(path) + "?" + params.Encode()
}
