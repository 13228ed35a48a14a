package social

import (
	"net/url"
	"strings"
)

// youtubeChannelIDMinLength is the shortest string treated as a channel ID
// ("UC" + 22 characters).
const youtubeChannelIDMinLength = 24

// IsYoutubeChannelID reports whether a normalised YouTube handle is really a
// channel ID.
func IsYoutubeChannelID(handle string) bool {
	return strings.HasPrefix(handle, "UC") && len(handle) >= youtubeChannelIDMinLength
}

// ProfileURL builds the public profile URL for a normalised handle.
func ProfileURL(platform Platform, handle string) string {
	if handle == "" {
		return ""
	}
	h := url.PathEscape(handle)

	switch platform {
	case PlatformInstagram:
		return "https://www.instagram.com/" + h
	case PlatformTwitter:
		return "https://x.com/" + h
	case PlatformYoutube:
		if IsYoutubeChannelID(handle) {
			return "https://www.youtube.com/channel/" + h
		}
		return "https://www.youtube.com/@" + h
	case PlatformGithub:
		return "https://github.com/" + h
	case PlatformNaverBlog:
		return "https://blog.naver.com/" + h
	case PlatformThreads:
		return "https://www.threads.net/@" + h
	default:
		return ""
	}
}
