package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildShareEmail(t *testing.T) {
	m := &Mailer{FromName: "RetailNext", FromEmail: "no-reply@retailnext.example"}

	msg := m.BuildShareEmail("Aiko", "aiko@example.com", "Ken", "http://localhost:8080/share/abc", "http://img/1.png")

	require.Equal(t, "Ken shared a coordination with you", msg.Subject)
	require.Equal(t, "no-reply@retailnext.example", msg.From.Address)
	require.Len(t, msg.Personalizations, 1)
	require.Equal(t, "aiko@example.com", msg.Personalizations[0].To[0].Address)
	require.Len(t, msg.Content, 2)
	require.True(t, strings.Contains(msg.Content[1].Value, "http://img/1.png"))
}

func TestSendNeedsAPIKey(t *testing.T) {
	m := &Mailer{}
	err := m.Send(m.BuildShareEmail("a", "a@example.com", "", "link", "img"))
	require.ErrorContains(t, err, "SENDGRID_API_KEY")
}
