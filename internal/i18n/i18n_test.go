package i18n_test

import (
	"testing"

	"github.com/cuescore/cuescore/internal/i18n"
	"github.com/stretchr/testify/assert"
)

func TestT_ResolvesBothLocales(t *testing.T) {
	bundle := i18n.New("en")

	assert.Equal(t, "Error: Request no longer exists", bundle.T("en", "friend.requestMissingError", nil))
	assert.Equal(t, "Errore: la richiesta non esiste più", bundle.T("it", "friend.requestMissingError", nil))
}

func TestT_Interpolation(t *testing.T) {
	bundle := i18n.New("en")

	got := bundle.T("en", "friend.acceptError", i18n.Values{"message": "boom"})
	assert.Equal(t, "Error accepting friend request: boom", got)

	got = bundle.T("it", "group.membersCount", i18n.Values{"count": "4"})
	assert.Equal(t, "4 membri", got)
}

func TestT_Fallbacks(t *testing.T) {
	bundle := i18n.New("en")

	t.Run("unknown locale falls back to default", func(t *testing.T) {
		assert.Equal(t, "Request sent", bundle.T("de", "friend.requestSent", nil))
	})

	t.Run("unknown key falls back to the key itself", func(t *testing.T) {
		assert.Equal(t, "nope.missing", bundle.T("en", "nope.missing", nil))
	})

	t.Run("unsupported default locale falls back to en", func(t *testing.T) {
		b := i18n.New("xx")
		assert.Equal(t, "Request sent", b.T("xx", "friend.requestSent", nil))
	})
}
