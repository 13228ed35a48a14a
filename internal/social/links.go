package social

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformYoutube   Platform = "youtube"
	PlatformGithub    Platform = "github"
	PlatformNaverBlog Platform = "naverBlog"
	PlatformThreads   Platform = "threads"
)

// LabelType says how an entry's content is shaped: a bare handle string, or a
// {handle, label} pair.
type LabelType string

const (
	LabelHandle LabelType = "handle"
	LabelCustom LabelType = "custom"
)

type platformInfo struct {
	labelType LabelType
	normalize func(string) string
}

// Every platform→label-type decision goes through this table.
var platforms = map[Platform]platformInfo{
	PlatformInstagram: {LabelHandle, NormalizeHandle},
	PlatformTwitter:   {LabelHandle, NormalizeHandle},
	PlatformYoutube:   {LabelHandle, NormalizeYoutubeHandle},
	PlatformThreads:   {LabelHandle, NormalizeHandle},
	PlatformGithub:    {LabelCustom, NormalizeHandle},
	PlatformNaverBlog: {LabelCustom, NormalizeNaverBlogHandle},
}

// Platforms lists the supported platforms in display order.
var Platforms = []Platform{
	PlatformInstagram,
	PlatformTwitter,
	PlatformYoutube,
	PlatformGithub,
	PlatformNaverBlog,
	PlatformThreads,
}

var ErrUnknownPlatform = errors.New("unknown social platform")

func (p Platform) Valid() bool {
	_, ok := platforms[p]
	return ok
}

func (p Platform) LabelType() LabelType {
	return platforms[p].labelType
}

// Normalize applies the platform's handle normaliser. Unknown platforms
// normalise to "".
func (p Platform) Normalize(raw string) string {
	info, ok := platforms[p]
	if !ok {
		return ""
	}
	return info.normalize(raw)
}

// Entry is one social link on a user profile. Label is only meaningful for
// custom-label platforms.
type Entry struct {
	Platform Platform
	Handle   string
	Label    string
}

func (e Entry) LabelType() LabelType {
	return e.Platform.LabelType()
}

// DisplayLabel is the label shown for the link: the custom label when set,
// otherwise the handle.
func (e Entry) DisplayLabel() string {
	if e.LabelType() == LabelCustom && e.Label != "" {
		return e.Label
	}
	return e.Handle
}

// URL is the canonical outbound profile URL for the entry.
func (e Entry) URL() string {
	return ProfileURL(e.Platform, e.Handle)
}

// FormValue is the text an edit form shows for the entry. Normalising it
// yields Handle again. Handles the normaliser would rewrite, such as a
// YouTube channel segment kept with its "@", are shown as profile URLs.
func (e Entry) FormValue() string {
	if e.Platform.Normalize(e.Handle) == e.Handle {
		return e.Handle
	}
	if e.Platform == PlatformYoutube {
		return "https://www.youtube.com/channel/" + e.Handle
	}
	return ProfileURL(e.Platform, e.Handle)
}

type customContent struct {
	Handle string `json:"handle"`
	Label  string `json:"label"`
}

type entryJSON struct {
	Platform Platform        `json:"platform"`
	Content  json.RawMessage `json:"content"`
}

// MarshalJSON writes the stored shape: content is a string for handle
// platforms and a {handle, label} object for custom-label platforms.
func (e Entry) MarshalJSON() ([]byte, error) {
	if !e.Platform.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, e.Platform)
	}

	var content any = e.Handle
	if e.LabelType() == LabelCustom {
		content = customContent{Handle: e.Handle, Label: e.DisplayLabel()}
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryJSON{Platform: e.Platform, Content: raw})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var in entryJSON
	err := json.Unmarshal(data, &in)
	if err != nil {
		return err
	}
	if !in.Platform.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, in.Platform)
	}

	// Accept either content shape regardless of platform; rows written by
	// older clients are not always consistent.
	var handle, label string
	var asString string
	if err := json.Unmarshal(in.Content, &asString); err == nil {
		handle = asString
	} else {
		var custom customContent
		if err := json.Unmarshal(in.Content, &custom); err != nil {
			return fmt.Errorf("invalid content for %s link: %w", in.Platform, err)
		}
		handle, label = custom.Handle, custom.Label
	}

	*e = Entry{Platform: in.Platform, Handle: handle}
	if e.LabelType() == LabelCustom {
		e.Label = label
		if e.Label == "" {
			e.Label = handle
		}
	}
	return nil
}

// Links is the persisted list of a user's social links.
type Links []Entry

// Value stores links as a JSON array. A nil list is stored as "[]".
func (l Links) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Entry(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Links) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = Links{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("social links: unsupported scan type %T", src)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		*l = Links{}
		return nil
	}

	var entries []Entry
	err := json.Unmarshal(data, &entries)
	if err != nil {
		return fmt.Errorf("social links: %w", err)
	}
	*l = entries
	return nil
}
