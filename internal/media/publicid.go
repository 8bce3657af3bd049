package media

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// The parsers below understand delivery URLs of the form
//
//	https://res.cloudinary.com/<cloud>/<resource_type>/upload/v<version>/<folder>/<name>.<ext>
//
// and nothing more general. A change to that layout needs a change here.

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL returns the publicId of an uploaded asset: everything after
// the upload marker, minus an optional version segment and the extension.
func PublicIDFromURL(rawURL string) (string, error) {
	segments, err := pathSegments(rawURL)
	if err != nil {
		return "", err
	}

	uploadAt := indexOf(segments, "upload")
	if uploadAt < 0 {
		return "", fmt.Errorf("%w: no upload segment in %q", ErrUnrecognizedURL, rawURL)
	}

	rest := segments[uploadAt+1:]
	if len(rest) > 0 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", fmt.Errorf("%w: nothing after upload segment in %q", ErrUnrecognizedURL, rawURL)
	}

	rest[len(rest)-1] = stripExt(rest[len(rest)-1])
	return strings.Join(rest, "/"), nil
}

// ContactFilePublicID derives the publicId and resource type of a contact-form
// attachment from its URL. The last two segments are joined, the extension is
// dropped (raw files keep it, the store includes it in their id) and the result
// is placed under folder.
func ContactFilePublicID(rawURL, folder string) (string, ResourceType, error) {
	segments, err := pathSegments(rawURL)
	if err != nil {
		return "", "", err
	}
	if len(segments) < 2 {
		return "", "", fmt.Errorf("%w: too few path segments in %q", ErrUnrecognizedURL, rawURL)
	}

	rt := ResourceImage
	if at := indexOf(segments, "upload"); at > 0 {
		switch ResourceType(segments[at-1]) {
		case ResourceRaw:
			rt = ResourceRaw
		case ResourceVideo:
			rt = ResourceVideo
		}
	}

	dir, name := segments[len(segments)-2], segments[len(segments)-1]
	if rt != ResourceRaw {
		name = stripExt(name)
	}
	if name == "" {
		return "", "", fmt.Errorf("%w: empty file name in %q", ErrUnrecognizedURL, rawURL)
	}

	if dir == folder {
		return folder + "/" + name, rt, nil
	}
	return folder + "/" + dir + "/" + name, rt, nil
}

func pathSegments(rawURL string) ([]string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrUnrecognizedURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedURL, err)
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments, nil
}

func indexOf(segments []string, want string) int {
	for i, s := range segments {
		if s == want {
			return i
		}
	}
	return -1
}

func stripExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
