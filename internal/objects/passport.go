package objects

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/gidroatlas/gidroatlas/pkg/storage"
)

const pdfContentType = "application/pdf"

// PassportCommand carries an uploaded passport file.
type PassportCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Passport describes a stored passport document.
type Passport struct {
	Object *WaterObject `json:"object"`
	Key    string       `json:"key"`
	Pages  int          `json:"pages"`
	Size   int64        `json:"size"`
}

// inspectPassport confirms the upload is a PDF and returns its page count.
func inspectPassport(cmd PassportCommand) (int, error) {
	if len(cmd.Data) == 0 {
		return 0, fmt.Errorf("%w: empty file", ErrInvalidFile)
	}
	if contentType(cmd.ContentType, cmd.Data) != pdfContentType {
		return 0, fmt.Errorf("%w: content type is not %s", ErrInvalidFile, pdfContentType)
	}

	pages, err := api.PageCount(bytes.NewReader(cmd.Data), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return pages, nil
}

func contentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		if i := strings.IndexByte(declared, ';'); i >= 0 {
			declared = strings.TrimSpace(declared[:i])
		}
		return declared
	}
	return http.DetectContentType(data)
}

func passportKey(id uuid.UUID, filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" || name == "" || strings.Contains(name, "..") {
		name = "passport.pdf"
	}
	return storage.Key("passports", id.String(), name)
}
