package sdk

import (
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ImageKind tags the variant held by an ImageInput.
type ImageKind int

const (
	ImageKindUnknown ImageKind = iota
	ImageKindURL
	ImageKindBytes
	ImageKindFile
)

func (k ImageKind) String() string {
	switch k {
	case ImageKindURL:
		return "url"
	case ImageKindBytes:
		return "bytes"
	case ImageKindFile:
		return "file"
	default:
		return "unknown"
	}
}

var urlSchemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*://\S+`)

// IsURL reports whether s looks like "scheme://..." and should be sent by reference.
func IsURL(s string) bool {
	return urlSchemePattern.MatchString(strings.TrimSpace(s))
}

// ImageInput is a single image to recognize: a remote URL, in-memory bytes,
// or a local file that is read fully when the request is built.
//
// Use ImageURL, ImageBytes, ImageFile or ParseImage to construct.
type ImageInput struct {
	kind ImageKind
	url  string
	data []byte
	path string
}

// ImageURL references an image the provider downloads itself.
func ImageURL(u string) ImageInput {
	return ImageInput{kind: ImageKindURL, url: strings.TrimSpace(u)}
}

// ImageBytes wraps raw image bytes; they are sent inline as base64.
func ImageBytes(data []byte) ImageInput {
	return ImageInput{kind: ImageKindBytes, data: data}
}

// ImageFile references a local file; it is read into memory and sent inline.
func ImageFile(path string) ImageInput {
	return ImageInput{kind: ImageKindFile, path: path}
}

// ParseImage classifies a string: "scheme://..." is a URL, anything else is a local path.
func ParseImage(s string) ImageInput {
	if IsURL(s) {
		return ImageURL(s)
	}
	return ImageFile(s)
}

// Kind returns which variant the input holds.
func (in ImageInput) Kind() ImageKind { return in.kind }

func (in ImageInput) String() string {
	switch in.kind {
	case ImageKindURL:
		return in.url
	case ImageKindFile:
		return "file:" + in.path
	case ImageKindBytes:
		return fmt.Sprintf("bytes(%d)", len(in.data))
	default:
		return "<empty image>"
	}
}

// ImageField is the request body key carrying the image.
type ImageField string

const (
	ImageFieldURL    ImageField = "ImageUrl"
	ImageFieldBase64 ImageField = "ImageBase64"
)

// NormalizedImage is the wire form of the single image sent with a request.
type NormalizedImage struct {
	Field ImageField
	Value string
	// Dropped counts extra images that were ignored; the provider
	// recognizes exactly one image per call.
	Dropped int
}

// Warning describes dropped images, or returns "" when nothing was dropped.
func (n NormalizedImage) Warning() string {
	if n.Dropped <= 0 {
		return ""
	}
	return fmt.Sprintf("tencent ocr accepts one image per request; using the first of %d", n.Dropped+1)
}

// NormalizeImages resolves the first image into its wire form. Extra images
// are dropped and counted in NormalizedImage.Dropped rather than failing.
func NormalizeImages(images []ImageInput) (NormalizedImage, error) {
	if len(images) == 0 {
		return NormalizedImage{}, InvalidImageError{Reason: "no image supplied"}
	}
	n, err := NormalizeImage(images[0])
	if err != nil {
		return NormalizedImage{}, err
	}
	n.Dropped = len(images) - 1
	return n, nil
}

// NormalizeImage resolves a single image into its wire form.
func NormalizeImage(in ImageInput) (NormalizedImage, error) {
	switch in.kind {
	case ImageKindURL:
		if !IsURL(in.url) {
			return NormalizedImage{}, InvalidImageError{Reason: fmt.Sprintf("%q is not an absolute URL", in.url)}
		}
		return NormalizedImage{Field: ImageFieldURL, Value: in.url}, nil
	case ImageKindBytes:
		if len(in.data) == 0 {
			return NormalizedImage{}, InvalidImageError{Reason: "image data is empty"}
		}
		return NormalizedImage{Field: ImageFieldBase64, Value: base64.StdEncoding.EncodeToString(in.data)}, nil
	case ImageKindFile:
		data, err := readImageFile(in.path)
		if err != nil {
			return NormalizedImage{}, err
		}
		return NormalizedImage{Field: ImageFieldBase64, Value: base64.StdEncoding.EncodeToString(data)}, nil
	default:
		return NormalizedImage{}, InvalidImageError{Reason: "empty image input"}
	}
}

func readImageFile(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, InvalidImageError{Reason: "image path is empty"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, InvalidImageError{Reason: "cannot read image file", Path: path, Cause: err}
	}
	if info.IsDir() {
		return nil, InvalidImageError{Reason: "image path is a directory", Path: path}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, InvalidImageError{Reason: "cannot read image file", Path: path, Cause: err}
	}
	if len(data) == 0 {
		return nil, InvalidImageError{Reason: "image file is empty", Path: path}
	}
	return data, nil
}
