package client_test

import (
	"context"
	"testing"
	"time"

	"tango/client"
	"tango/server"
)

// TestCallerMultipartUploadSendsFilesAndArgs is scenario S4 on the client
// side: a command call whose args contain file handles switches to
// multipart, and the server recovers both the plain args and the upload.
func TestCallerMultipartUploadSendsFilesAndArgs(t *testing.T) {
	var seen map[string]any
	impl := func(args map[string]any, ctx *server.Context) (any, error) {
		seen = args
		return "ok", nil
	}
	tree := server.NewTree().Set("posts", server.NewTree().Set("create", server.NewDescriptor(server.Command, impl, nil)))
	srv := newTestServer(t, tree, nil)
	defer srv.Close()

	caller := client.New(srv.URL)
	args := map[string]any{
		"title": "hi",
		"cover": &client.FileUpload{Filename: "cover.png", ContentType: "image/png", Data: []byte("pngdata")},
	}
	result, err := caller.Command(context.Background(), []string{"posts", "create"}, args)
	if err != nil {
		t.Fatalf("Command returned error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected ok, got %v", result)
	}
	if seen["title"] != "hi" {
		t.Fatalf("expected title=hi, got %v", seen["title"])
	}
	up, ok := seen["cover"].(*server.FileUpload)
	if !ok {
		t.Fatalf("expected *server.FileUpload for cover, got %T", seen["cover"])
	}
	if up.Filename != "cover.png" || string(up.Data) != "pngdata" {
		t.Fatalf("expected cover.png/pngdata, got %s/%s", up.Filename, up.Data)
	}
}

// TestCallerMultipartUploadReportsProgress covers invariant 8: the
// progress switch activates the counting transport path for a
// file-carrying command call.
func TestCallerMultipartUploadReportsProgress(t *testing.T) {
	impl := func(args map[string]any, ctx *server.Context) (any, error) { return "ok", nil }
	tree := server.NewTree().Set("posts", server.NewTree().Set("create", server.NewDescriptor(server.Command, impl, nil)))
	srv := newTestServer(t, tree, nil)
	defer srv.Close()

	var events []client.Progress
	caller := client.New(srv.URL)
	args := map[string]any{
		"cover": &client.FileUpload{Filename: "cover.png", Data: []byte("0123456789")},
	}
	_, err := caller.Command(context.Background(), []string{"posts", "create"}, args,
		client.WithOnProgress(func(p client.Progress) { events = append(events, p) }))
	if err != nil {
		t.Fatalf("Command returned error: %v", err)
	}
	if len(events) == 0 {
		t.Fatalf("expected at least one progress event")
	}
	last := events[len(events)-1]
	if last.Phase != client.PhaseUpload && last.Phase != client.PhaseDownload {
		t.Fatalf("unexpected phase: %v", last.Phase)
	}
	for _, e := range events {
		if e.Percent != -1 && e.Percent != float64(int(e.Percent)) {
			t.Fatalf("expected integer percent, got %v", e.Percent)
		}
	}
}

// TestCallerAbortMidFlightFails covers the second half of invariant 10:
// a context that expires while the server is still working on the call,
// before any response arrives, must fail with ErrAborted rather than
// returning a result.
func TestCallerAbortMidFlightFails(t *testing.T) {
	impl := func(args map[string]any, ctx *server.Context) (any, error) {
		time.Sleep(300 * time.Millisecond)
		return "ok", nil
	}
	tree := server.NewTree().Set("posts", server.NewTree().Set("create", server.NewDescriptor(server.Command, impl, nil)))
	srv := newTestServer(t, tree, nil)
	defer srv.Close()

	caller := client.New(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := caller.Command(ctx, []string{"posts", "create"}, map[string]any{})
	if err != client.ErrAborted {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
