package server

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"tango/codec"
)

// FileUpload is the host-framework file handle kept as-is in a command's
// parsed args. It wraps the parts multipart.Reader already gives us —
// filename, declared content type, and the bytes.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

const maxMultipartMemory = 32 << 20 // 32MiB, matches net/http's own default

// parseMultipart splits form entries into the special "args" field and
// everything else. "args", if present, is a blob dispatched
// on its own MIME subtype into the base args map. Every other field
// augments that map: a "foo[]" key collects every value under "foo" as an
// ordered slice; any other key keeps only its first occurrence. File parts
// become FileUpload values, list or scalar depending on the key shape.
func parseMultipart(r *http.Request) (map[string]any, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, errBadRequest("Invalid multipart body")
	}
	form := r.MultipartForm

	args := make(map[string]any)
	if blobs, ok := form.Value["args"]; ok && len(blobs) > 0 {
		parsed, err := parseArgsBlob(blobs[0], form)
		if err != nil {
			return nil, err
		}
		args = parsed
	}

	for key, values := range form.Value {
		if key == "args" {
			continue
		}
		applyMultipartField(args, key, toAnySlice(values))
	}

	for key, headers := range form.File {
		uploads := make([]any, 0, len(headers))
		for _, h := range headers {
			up, err := readFileUpload(h)
			if err != nil {
				return nil, err
			}
			uploads = append(uploads, up)
		}
		applyMultipartField(args, key, uploads)
	}

	return args, nil
}

// parseArgsBlob dispatches the "args" field on the Content-Type declared for
// it in the multipart preamble; net/http does not retain a per-value part's
// Content-Type once captured into form.Value, so we re-scan the original
// MultipartForm's File-adjacent header where available, falling back to
// msgpack (the default wire encoding) when no declared type survives.
func parseArgsBlob(blob string, form *multipart.Form) (map[string]any, error) {
	contentType := "application/msgpack"
	if hdrs, ok := form.File["args"]; ok && len(hdrs) > 0 {
		contentType = hdrs[0].Header.Get("Content-Type")
	}

	var decoded any
	switch {
	case strings.Contains(contentType, "application/json"):
		if err := codec.JSONParse(blob, &decoded); err != nil {
			return nil, errBadRequest("Invalid JSON in args blob")
		}
	case strings.Contains(contentType, "application/msgpack"):
		if err := codec.Unpack([]byte(blob), &decoded); err != nil {
			return nil, errBadRequest("Invalid msgpack in args blob")
		}
	default:
		return nil, errBadRequest("Invalid Content-Type in args blob")
	}

	m, ok := decoded.(map[string]any)
	if !ok {
		return nil, errBadRequest("Invalid args blob: not an object")
	}
	return m, nil
}

// applyMultipartField stores values under key, stripping a trailing "[]" to
// always store the collected sequence, and keeping only the first value
// for a plain key.
func applyMultipartField(args map[string]any, key string, values []any) {
	if len(values) == 0 {
		return
	}
	if strings.HasSuffix(key, "[]") {
		name := strings.TrimSuffix(key, "[]")
		args[name] = values
		return
	}
	if _, exists := args[key]; !exists {
		args[key] = values[0]
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func readFileUpload(h *multipart.FileHeader) (*FileUpload, error) {
	f, err := h.Open()
	if err != nil {
		return nil, errBadRequest("Invalid file part")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errBadRequest("Invalid file part")
	}

	return &FileUpload{
		Filename:    h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
