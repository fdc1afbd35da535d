package storage

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	now := time.Unix(0, 42)

	key, err := SubmissionMediaKey("t1", "image/PNG", now)
	require.NoError(t, err)
	assert.Equal(t, "submissions/t1/42.png", key)

	key, err = TeamLogoKey("t1", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "teams/t1/logo.jpg", key)

	_, err = TeamLogoKey("t1", "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}

func TestPublicURL(t *testing.T) {
	base, err := url.Parse("https://cdn.example.com/media/")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/media/teams/t1/logo.png", publicURL(base, "teams/t1/logo.png"))
	assert.Equal(t, "https://cdn.example.com/media/teams/t1/logo.png", publicURL(base, "/teams/t1/logo.png"))
	assert.Equal(t, "", publicURL(base, ""))
	assert.Equal(t, "", publicURL(nil, "x"))
}
