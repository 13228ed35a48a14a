package social

import (
	"net/url"
	"strings"
)

// Domain substrings that mark free-form input as a profile URL rather than a
// bare handle. "x.com" is left out on purpose: it is a substring of ordinary
// dotted handles such as "max.compton".
var (
	plainDomains     = []string{"instagram.com", "twitter.com", "threads.net", "threads.com", "github.com"}
	youtubeDomains   = []string{"youtube.com", "youtu.be"}
	naverBlogDomains = []string{"blog.naver.com", "naver.com"}
)

// NormalizeHandle turns a raw handle, "@handle" or profile URL into a bare
// handle for instagram, twitter, threads and github.
func NormalizeHandle(raw string) string {
	return normalize(raw, plainDomains, nil)
}

// NormalizeYoutubeHandle is NormalizeHandle for YouTube. A /channel/<id> URL
// yields the channel ID verbatim.
func NormalizeYoutubeHandle(raw string) string {
	return normalize(raw, youtubeDomains, func(u *url.URL, segments []string) (string, bool) {
		if len(segments) > 1 && segments[0] == "channel" {
			return segments[1], true
		}
		return "", false
	})
}

// NormalizeNaverBlogHandle is NormalizeHandle for Naver Blog. A blogId query
// parameter (PostView.naver?blogId=...) wins over the URL path.
func NormalizeNaverBlogHandle(raw string) string {
	return normalize(raw, naverBlogDomains, func(u *url.URL, _ []string) (string, bool) {
		if blogID := u.Query().Get("blogId"); blogID != "" {
			return blogID, true
		}
		return "", false
	})
}

// extractFunc lets a platform family claim a handle from a parsed URL before
// the generic first-path-segment rule runs.
type extractFunc func(u *url.URL, segments []string) (string, bool)

func normalize(raw string, domains []string, extract extractFunc) string {
	cleaned := strings.TrimSpace(printableASCII(raw))
	if cleaned == "" {
		return ""
	}
	cleaned = strings.TrimPrefix(cleaned, "@")

	if !looksLikeURL(cleaned, domains) {
		return cleaned
	}

	withScheme := cleaned
	if !strings.Contains(withScheme, "://") {
		withScheme = "https://" + withScheme
	}

	u, err := url.Parse(withScheme)
	if err != nil {
		return manualFirstSegment(withScheme)
	}

	segments := pathSegments(u.Path)
	if extract != nil {
		if handle, ok := extract(u, segments); ok {
			return handle
		}
	}
	if len(segments) == 0 {
		return ""
	}
	return strings.TrimPrefix(segments[0], "@")
}

// printableASCII drops everything outside 0x20-0x7E, which removes zero-width
// and homoglyph characters from handles.
func printableASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c <= 0x7E {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func looksLikeURL(s string, domains []string) bool {
	if strings.Contains(s, "://") || strings.Contains(s, "/") {
		return true
	}
	lower := strings.ToLower(s)
	for _, d := range domains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

func pathSegments(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// manualFirstSegment is the fallback for input url.Parse rejects. It drops the
// scheme and host and returns the first path token.
func manualFirstSegment(s string) string {
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	tokens := pathSegments(s)
	if len(tokens) > 1 && strings.Contains(tokens[0], ".") {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return ""
	}
	return strings.TrimPrefix(tokens[0], "@")
}
