package models

import "encoding/json"

// Platform is a social channel a creator publishes on, with its follower count.
type Platform struct {
	Platform  string `json:"platform" validate:"required"`
	Followers int64  `json:"followers" validate:"gte=0"`
}

// VideoThumbnails maps a sample-video locator to an inline-encoded preview image.
type VideoThumbnails map[string]string

// Creator is a profile record in the marketplace catalog.
//
// Field names in JSON match the persisted slot format exactly; renaming one
// breaks every previously written slot. Optional strings are pointers and
// serialize as explicit null, never as an empty-string sentinel.
type Creator struct {
	ID              string          `json:"id"`
	Name            string          `json:"name" validate:"required"`
	Alias           *string         `json:"alias"`
	Bio             *string         `json:"bio"`
	Country         string          `json:"country" validate:"required"`
	City            string          `json:"city" validate:"required"`
	Niche           string          `json:"niche" validate:"required"`
	Platforms       []Platform      `json:"platforms" validate:"dive"`
	AvatarURL       *string         `json:"avatar_url"`
	SampleVideos    []string        `json:"sample_videos"`
	VoiceSampleURL  *string         `json:"voice_sample_url"`
	IsVerified      bool            `json:"is_verified"`
	CreatedAt       string          `json:"created_at"`
	VideoThumbnails VideoThumbnails `json:"video_thumbnails"`
}

// Clone returns a deep copy of the creator, so callers can hand out records
// without aliasing the repository's internal state.
func (c Creator) Clone() Creator {
	out := c
	out.Alias = cloneStringPtr(c.Alias)
	out.Bio = cloneStringPtr(c.Bio)
	out.AvatarURL = cloneStringPtr(c.AvatarURL)
	out.VoiceSampleURL = cloneStringPtr(c.VoiceSampleURL)
	if c.Platforms != nil {
		out.Platforms = make([]Platform, len(c.Platforms))
		copy(out.Platforms, c.Platforms)
	}
	if c.SampleVideos != nil {
		out.SampleVideos = make([]string, len(c.SampleVideos))
		copy(out.SampleVideos, c.SampleVideos)
	}
	if c.VideoThumbnails != nil {
		out.VideoThumbnails = make(VideoThumbnails, len(c.VideoThumbnails))
		for k, v := range c.VideoThumbnails {
			out.VideoThumbnails[k] = v
		}
	}
	return out
}

// CreatorInput is the create payload: a Creator minus id and created_at,
// which only the repository may assign. The thumbnail map is included because
// the form workflow populates it before submission.
type CreatorInput struct {
	Name            string          `json:"name" validate:"required"`
	Alias           *string         `json:"alias"`
	Bio             *string         `json:"bio"`
	Country         string          `json:"country" validate:"required"`
	City            string          `json:"city" validate:"required"`
	Niche           string          `json:"niche" validate:"required"`
	Platforms       []Platform      `json:"platforms" validate:"dive"`
	AvatarURL       *string         `json:"avatar_url"`
	SampleVideos    []string        `json:"sample_videos"`
	VoiceSampleURL  *string         `json:"voice_sample_url"`
	IsVerified      bool            `json:"is_verified"`
	VideoThumbnails VideoThumbnails `json:"video_thumbnails"`
}

// NullableString is a patch field for attributes that are themselves
// nullable: it distinguishes "key absent, leave the value alone" from
// "key present with null, clear the value".
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only invoked when the key is present in the payload, so
// Set doubles as the presence flag.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// CreatorPatch is a partial update: one optional field per updatable
// attribute. It deliberately has no ID or CreatedAt field, so those can never
// be overwritten no matter what a caller sends. Collections are replaced
// wholly when present (shallow merge), never element-merged.
type CreatorPatch struct {
	Name            *string         `json:"name"`
	Alias           NullableString  `json:"alias"`
	Bio             NullableString  `json:"bio"`
	Country         *string         `json:"country"`
	City            *string         `json:"city"`
	Niche           *string         `json:"niche"`
	Platforms       []Platform      `json:"platforms"`
	AvatarURL       NullableString  `json:"avatar_url"`
	SampleVideos    []string        `json:"sample_videos"`
	VoiceSampleURL  NullableString  `json:"voice_sample_url"`
	IsVerified      *bool           `json:"is_verified"`
	VideoThumbnails VideoThumbnails `json:"video_thumbnails"`
}

// ApplyTo merges the patch into an existing record. Only supplied fields are
// touched; id and created_at are untouchable by construction.
func (p CreatorPatch) ApplyTo(c *Creator) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Alias.Set {
		c.Alias = cloneStringPtr(p.Alias.Value)
	}
	if p.Bio.Set {
		c.Bio = cloneStringPtr(p.Bio.Value)
	}
	if p.Country != nil {
		c.Country = *p.Country
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.Niche != nil {
		c.Niche = *p.Niche
	}
	if p.Platforms != nil {
		c.Platforms = make([]Platform, len(p.Platforms))
		copy(c.Platforms, p.Platforms)
	}
	if p.AvatarURL.Set {
		c.AvatarURL = cloneStringPtr(p.AvatarURL.Value)
	}
	if p.SampleVideos != nil {
		c.SampleVideos = make([]string, len(p.SampleVideos))
		copy(c.SampleVideos, p.SampleVideos)
	}
	if p.VoiceSampleURL.Set {
		c.VoiceSampleURL = cloneStringPtr(p.VoiceSampleURL.Value)
	}
	if p.IsVerified != nil {
		c.IsVerified = *p.IsVerified
	}
	if p.VideoThumbnails != nil {
		c.VideoThumbnails = make(VideoThumbnails, len(p.VideoThumbnails))
		for k, v := range p.VideoThumbnails {
			c.VideoThumbnails[k] = v
		}
	}
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
