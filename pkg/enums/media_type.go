package enums

import "fmt"

// MediaType distinguishes still images from video in hero slides and the media library.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

var validMediaTypes = []MediaType{
	MediaTypeImage,
	MediaTypeVideo,
}

// String implements fmt.Stringer.
func (v MediaType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known MediaType.
func (v MediaType) IsValid() bool {
	for _, candidate := range validMediaTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseMediaType converts raw input into a MediaType.
func ParseMediaType(value string) (MediaType, error) {
	for _, candidate := range validMediaTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media type %q", value)
}
