package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShareTokenRoundTrip(t *testing.T) {
	token, err := GenerateShareToken("s3cret", "post-1", time.Hour)
	require.NoError(t, err)

	postID, err := ValidateShareToken("s3cret", token)
	require.NoError(t, err)
	require.Equal(t, "post-1", postID)
}

func TestShareTokenWrongSecret(t *testing.T) {
	token, err := GenerateShareToken("s3cret", "post-1", time.Hour)
	require.NoError(t, err)

	_, err = ValidateShareToken("other", token)
	require.Error(t, err)
}

func TestShareTokenExpired(t *testing.T) {
	token, err := GenerateShareToken("s3cret", "post-1", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateShareToken("s3cret", token)
	require.Error(t, err)
}

func TestShareTokenNeedsSecret(t *testing.T) {
	_, err := GenerateShareToken("", "post-1", time.Hour)
	require.ErrorIs(t, err, ErrShareDisabled)

	_, err = ValidateShareToken("", "x.y.z")
	require.ErrorIs(t, err, ErrShareDisabled)
}
