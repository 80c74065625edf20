package validation

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// ImageConstraints allows the photo formats browsers display inline.
func ImageConstraints(maxSize int64) FileConstraints {
	return FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
			"image/gif":  true,
		},
		AllowedExtensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".webp": true,
			".gif":  true,
		},
		MaxSize: maxSize,
	}
}

// VideoConstraints allows the common phone and browser video containers.
// QuickTime is never sniffed, so it only passes on its declared type.
func VideoConstraints(maxSize int64) FileConstraints {
	return FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"video/mp4":       true,
			"video/webm":      true,
			"video/ogg":       true,
			"video/quicktime": true,
		},
		AllowedExtensions: map[string]bool{
			".mp4":  true,
			".m4v":  true,
			".webm": true,
			".ogv":  true,
			".mov":  true,
		},
		MaxSize: maxSize,
	}
}

// MediaConstraints accepts either an image or a video of at most maxSize bytes.
func MediaConstraints(maxSize int64) []FileConstraints {
	return []FileConstraints{ImageConstraints(maxSize), VideoConstraints(maxSize)}
}

// ValidateFileHeader validates a multipart upload. See ValidateFile.
func ValidateFileHeader(header *multipart.FileHeader, constraints ...FileConstraints) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ValidateFile(header.Filename, header.Size, file, constraints...)
}

// ValidateFile checks a file against one or more constraint sets and
// returns the detected content type. The file must match at least one set.
// The read position of file is restored before returning.
func ValidateFile(filename string, size int64, file io.ReadSeeker, constraints ...FileConstraints) (string, error) {
	return ValidateDeclaredFile(filename, size, file, "", constraints...)
}

// ValidateDeclaredFile is ValidateFile with a fallback: when sniffing is
// inconclusive the declared type is checked against the sets instead.
// A recognised image or video type always wins over the declared one.
func ValidateDeclaredFile(filename string, size int64, file io.ReadSeeker, declared string, constraints ...FileConstraints) (string, error) {
	if len(constraints) == 0 {
		return "", fmt.Errorf("no file constraints provided")
	}

	// Read first 512 bytes for magic number detection
	buffer := make([]byte, 512)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return "", fmt.Errorf("failed to reset file pointer: %w", err)
	}

	// Detected from content, so a renamed file cannot pass as an image
	detectedType := http.DetectContentType(buffer[:n])
	ext := strings.ToLower(filepath.Ext(filename))

	contentType := detectedType
	if inconclusive(detectedType) {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil && isMedia(mediaType) {
			contentType = mediaType
		}
	}

	// The first set allowing the content type decides.
	for _, constraint := range constraints {
		if !constraint.AllowedMimeTypes[contentType] {
			continue
		}
		err = validateAgainstConstraint(size, ext, constraint)
		if err != nil {
			return "", err
		}
		return contentType, nil
	}

	return "", invalidf("invalid file type (detected: %s)", detectedType)
}

// inconclusive reports whether sniffing fell through to a generic type.
// Containers like QuickTime sniff as octet-stream, and headers with no
// magic number often sniff as plain text.
func inconclusive(detectedType string) bool {
	mediaType, _, _ := mime.ParseMediaType(detectedType)
	return mediaType == "application/octet-stream" || mediaType == "text/plain"
}

func isMedia(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/") || strings.HasPrefix(mediaType, "video/")
}

func validateAgainstConstraint(size int64, ext string, constraints FileConstraints) error {
	if size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return invalidf("file too large: maximum size is %d MB", maxMB)
	}

	if !constraints.AllowedExtensions[ext] {
		return invalidf("invalid file extension: %s", ext)
	}

	return nil
}
