package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mowhoob/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func baseCreator() models.Creator {
	return models.Creator{
		ID:              "id-1",
		Name:            "RABAH G",
		Alias:           strPtr("RABAH.G"),
		Bio:             strPtr("Bio text."),
		Country:         "Algeria",
		City:            "Algiers",
		Niche:           "Travel & Lifestyle",
		Platforms:       []models.Platform{{Platform: "TikTok", Followers: 15000}},
		AvatarURL:       strPtr("https://example.com/a.png"),
		SampleVideos:    []string{"v1.mp4", "v2.mp4"},
		VoiceSampleURL:  nil,
		IsVerified:      true,
		CreatedAt:       "2025-12-15 12:42:32.039307+00",
		VideoThumbnails: models.VideoThumbnails{"v1.mp4": "data:image/png;base64,AAAA"},
	}
}

func TestPatchDistinguishesAbsentFromNull(t *testing.T) {
	// "alias" is absent, "bio" is an explicit null, "name" is set.
	var patch models.CreatorPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"New Name","bio":null}`), &patch))

	assert.False(t, patch.Alias.Set)
	assert.True(t, patch.Bio.Set)
	assert.Nil(t, patch.Bio.Value)
	require.NotNil(t, patch.Name)

	c := baseCreator()
	patch.ApplyTo(&c)

	assert.Equal(t, "New Name", c.Name)
	assert.Equal(t, strPtr("RABAH.G"), c.Alias) // untouched
	assert.Nil(t, c.Bio)                        // cleared
}

func TestPatchHasNoIdentityFields(t *testing.T) {
	// id and created_at in the payload land nowhere: the patch type has no
	// fields for them.
	var patch models.CreatorPatch
	require.NoError(t, json.Unmarshal(
		[]byte(`{"id":"attacker-id","created_at":"1970-01-01","name":"X"}`), &patch))

	c := baseCreator()
	patch.ApplyTo(&c)

	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, "2025-12-15 12:42:32.039307+00", c.CreatedAt)
	assert.Equal(t, "X", c.Name)
}

func TestPatchReplacesCollectionsWholly(t *testing.T) {
	var patch models.CreatorPatch
	require.NoError(t, json.Unmarshal(
		[]byte(`{"sample_videos":["v2.mp4"],"video_thumbnails":{}}`), &patch))

	c := baseCreator()
	patch.ApplyTo(&c)

	assert.Equal(t, []string{"v2.mp4"}, c.SampleVideos)
	// The form prunes thumbnails of removed videos and sends the new map;
	// the merge replaces, it does not union.
	assert.Empty(t, c.VideoThumbnails)
	// Platforms were not supplied and must survive.
	assert.Equal(t, baseCreator().Platforms, c.Platforms)
}

func TestPatchEmptySliceIsNotAbsent(t *testing.T) {
	var patch models.CreatorPatch
	require.NoError(t, json.Unmarshal([]byte(`{"platforms":[]}`), &patch))

	c := baseCreator()
	patch.ApplyTo(&c)
	assert.Empty(t, c.Platforms)
	assert.NotNil(t, c.Platforms)
}

func TestCreatorJSONUsesPersistedFieldNames(t *testing.T) {
	data, err := json.Marshal(baseCreator())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{
		"id", "name", "alias", "bio", "country", "city", "niche",
		"platforms", "avatar_url", "sample_videos", "voice_sample_url",
		"is_verified", "created_at", "video_thumbnails",
	} {
		assert.Contains(t, raw, key)
	}
	// Unset optionals serialize as explicit null, not as absent keys.
	assert.Equal(t, "null", string(raw["voice_sample_url"]))
}

func TestCloneIsDeep(t *testing.T) {
	original := baseCreator()
	clone := original.Clone()

	clone.Platforms[0].Followers = 1
	clone.SampleVideos[0] = "mutated"
	clone.VideoThumbnails["v1.mp4"] = "mutated"
	*clone.Alias = "mutated"

	assert.Equal(t, int64(15000), original.Platforms[0].Followers)
	assert.Equal(t, "v1.mp4", original.SampleVideos[0])
	assert.Equal(t, "data:image/png;base64,AAAA", original.VideoThumbnails["v1.mp4"])
	assert.Equal(t, "RABAH.G", *original.Alias)
}
