package client

import "testing"

func TestExtractUploadsSingleFile(t *testing.T) {
	f := &FileUpload{Filename: "a.txt", ContentType: "text/plain", Data: []byte("hi")}
	args := map[string]any{"title": "hello", "avatar": f}

	rest, uploads := extractUploads(args)

	if rest["title"] != "hello" {
		t.Fatalf("expected title to stay in rest, got %v", rest["title"])
	}
	if _, ok := rest["avatar"]; ok {
		t.Fatalf("expected avatar to be pulled out of rest")
	}
	if len(uploads["avatar"]) != 1 || uploads["avatar"][0] != f {
		t.Fatalf("expected avatar upload to be extracted, got %v", uploads["avatar"])
	}
}

func TestExtractUploadsFileOnlyList(t *testing.T) {
	a := &FileUpload{Filename: "a.txt", Data: []byte("a")}
	b := &FileUpload{Filename: "b.txt", Data: []byte("b")}
	args := map[string]any{"photos": []any{a, b}}

	rest, uploads := extractUploads(args)

	if _, ok := rest["photos"]; ok {
		t.Fatalf("expected photos to be pulled out of rest")
	}
	if len(uploads["photos"]) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(uploads["photos"]))
	}
}

// TestExtractUploadsMixedListStaysInArgs covers invariant 9: a list is an
// upload only when every element is a file handle.
func TestExtractUploadsMixedListStaysInArgs(t *testing.T) {
	a := &FileUpload{Filename: "a.txt", Data: []byte("a")}
	args := map[string]any{"mixed": []any{a, "not a file"}}

	rest, uploads := extractUploads(args)

	if len(uploads) != 0 {
		t.Fatalf("expected no uploads from a mixed list, got %v", uploads)
	}
	if _, ok := rest["mixed"]; !ok {
		t.Fatalf("expected mixed list to stay in rest untouched")
	}
}

func TestExtractUploadsEmptyListStaysInArgs(t *testing.T) {
	args := map[string]any{"photos": []any{}}

	rest, uploads := extractUploads(args)

	if len(uploads) != 0 {
		t.Fatalf("expected no uploads from an empty list, got %v", uploads)
	}
	if _, ok := rest["photos"]; !ok {
		t.Fatalf("expected empty list to stay in rest")
	}
}

func TestExtractUploadsNoFilesLeavesArgsUntouched(t *testing.T) {
	args := map[string]any{"title": "hello", "page": int64(2)}

	rest, uploads := extractUploads(args)

	if len(uploads) != 0 {
		t.Fatalf("expected no uploads, got %v", uploads)
	}
	if rest["title"] != "hello" || rest["page"] != int64(2) {
		t.Fatalf("expected args unchanged, got %v", rest)
	}
}
