package client

import (
	"bytes"
	"context"
	"mime"
	"mime/multipart"
	"testing"

	"tango/server"
)

// TestCountingReaderReportsIntegerPercent checks percent rounds to the
// nearest whole number (e.g. 33, not 33.33).
func TestCountingReaderReportsIntegerPercent(t *testing.T) {
	var percents []float64
	cr := &countingReader{
		r:     bytes.NewReader([]byte("abc")),
		total: 3,
		onProgress: func(p Progress) {
			percents = append(percents, p.Percent)
		},
	}

	buf := make([]byte, 1)
	for i := 0; i < 3; i++ {
		if _, err := cr.Read(buf); err != nil {
			t.Fatalf("unexpected read error: %v", err)
		}
	}

	want := []float64{33, 67, 100}
	if len(percents) != len(want) {
		t.Fatalf("expected %v, got %v", want, percents)
	}
	for i, p := range want {
		if percents[i] != p {
			t.Fatalf("expected percent %v at step %d, got %v", p, i, percents[i])
		}
	}
}

func TestCountingReaderUnknownTotalReportsNegativeOne(t *testing.T) {
	var last Progress
	cr := &countingReader{
		r:          bytes.NewReader([]byte("abc")),
		total:      -1,
		onProgress: func(p Progress) { last = p },
	}
	buf := make([]byte, 3)
	if _, err := cr.Read(buf); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if last.Total != -1 || last.Percent != -1 {
		t.Fatalf("expected Total and Percent both -1 when total unknown, got %+v", last)
	}
}

// TestBuildMultipartRequestWritesArgsAndFileParts covers the client-side
// half of scenario S4: args blob plus file part(s), a "[]" suffix for
// list uploads.
func TestBuildMultipartRequestWritesArgsAndFileParts(t *testing.T) {
	files := []*FileUpload{
		{Filename: "a.txt", ContentType: "text/plain", Data: []byte("hello")},
		{Filename: "b.txt", ContentType: "text/plain", Data: []byte("world")},
	}
	rest := map[string]any{"title": "hi"}
	uploads := map[string][]*FileUpload{"photos": files}

	callCtx := newContext([]string{"posts", "create"}, nil, server.Command, nil, nil)
	req, total, err := buildMultipartRequest(context.Background(), "http://example.invalid/posts.create", callCtx, rest, uploads)
	if err != nil {
		t.Fatalf("buildMultipartRequest returned error: %v", err)
	}
	if total <= 0 {
		t.Fatalf("expected positive byte total, got %d", total)
	}

	_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("invalid Content-Type: %v", err)
	}
	mr := multipart.NewReader(req.Body, params["boundary"])
	form, err := mr.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm returned error: %v", err)
	}

	if len(form.Value["args"]) != 1 {
		t.Fatalf("expected one args blob, got %v", form.Value["args"])
	}
	if len(form.File["photos[]"]) != 2 {
		t.Fatalf("expected 2 files under photos[], got %d", len(form.File["photos[]"]))
	}
}
