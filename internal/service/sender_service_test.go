package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTranslation(t *testing.T) {
	assert.Equal(t, "επιβεβαιωμένο", statusTranslation("confirmed", "el"))
	assert.Equal(t, "confirmed", statusTranslation("confirmed", "en"))
	assert.Equal(t, "σε αναμονή επιβεβαίωσης", statusTranslation("pending", "el"))
	assert.Equal(t, "ακυρωμένο", statusTranslation("cancelled", "el"))

	// Unknown language falls back to English, unknown status passes through.
	assert.Equal(t, "cancelled", statusTranslation("cancelled", "fr"))
	assert.Equal(t, "completed", statusTranslation("completed", "el"))
}

func TestLabelFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Υπηρεσίες", label("el", "services"))
	assert.Equal(t, "Services", label("en", "services"))
	assert.Equal(t, "Code", label("de", "code"))
	assert.Equal(t, "unknown", label("el", "unknown"))
}
