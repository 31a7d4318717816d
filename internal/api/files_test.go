// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/files/upload" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "notes.pdf" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		contents, _ := io.ReadAll(f)
		if string(contents) != "pdf bytes" {
			t.Errorf("contents = %q", contents)
		}
		json.NewEncoder(w).Encode(map[string]string{"filename": "notes.pdf"})
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	name, err := c.UploadFile(context.Background(), "notes.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if name != "notes.pdf" {
		t.Errorf("registered name = %q", name)
	}
}

func TestProcessAndTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if got := r.FormValue("filename"); got != "notes.pdf" {
			t.Errorf("filename field = %q", got)
		}
		switch r.URL.Path {
		case "/api/files/process":
			json.NewEncoder(w).Encode(map[string]string{"summary": "the summary"})
		case "/api/files/translate":
			json.NewEncoder(w).Encode(map[string]string{"translation": "la traduction"})
		default:
			t.Errorf("path = %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	summary, ok, err := c.ProcessFile(context.Background(), "notes.pdf")
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if !ok || summary != "the summary" {
		t.Errorf("summary = %q (present=%v)", summary, ok)
	}

	translation, ok, err := c.TranslateFile(context.Background(), "notes.pdf")
	if err != nil {
		t.Fatalf("TranslateFile: %v", err)
	}
	if !ok || translation != "la traduction" {
		t.Errorf("translation = %q (present=%v)", translation, ok)
	}
}

func TestProcessReportsAbsentSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	summary, ok, err := c.ProcessFile(context.Background(), "notes.pdf")
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if ok || summary != "" {
		t.Errorf("absent summary reported as present: %q (present=%v)", summary, ok)
	}
}

func TestDetectIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/files/detect-intent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if got := r.FormValue("prompt"); got != "translate this to french" {
			t.Errorf("prompt field = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"intent": "translate"})
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	intent, err := c.DetectIntent(context.Background(), "translate this to french")
	if err != nil {
		t.Fatalf("DetectIntent: %v", err)
	}
	if intent != IntentTranslate {
		t.Errorf("intent = %q", intent)
	}
}

func TestListFilesAndSummaryHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("username"); got != "alice" {
			t.Errorf("username = %q", got)
		}
		switch r.URL.Path {
		case "/api/files/list":
			w.Write([]byte(`[{"filename":"a.pdf","uploaded_at":"2025-06-01T10:00:00"}]`))
		case "/api/files/summary-history":
			w.Write([]byte(`[{"filename":"a.pdf","summary":"s","timestamp":"2025-06-01T10:05:00"}]`))
		default:
			t.Errorf("path = %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	files, err := c.ListFiles(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 || files[0].Filename != "a.pdf" {
		t.Errorf("files = %+v", files)
	}

	summaries, err := c.SummaryHistory(context.Background(), "alice")
	if err != nil {
		t.Fatalf("SummaryHistory: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Summary != "s" {
		t.Errorf("summaries = %+v", summaries)
	}
}
