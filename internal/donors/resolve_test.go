package donors

import (
	"testing"

	"github.com/narayanss/donordesk/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+919780086800", NormalizePhone("whatsapp:+91 97800 86800"))
	assert.Equal(t, "+919876543210", NormalizePhone("+91 98765 43210"))
	assert.Equal(t, "9876543210", NormalizePhone("9876543210"))
}

func TestResolveBySenderPhone(t *testing.T) {
	// A known sender phone wins regardless of what the text contains.
	texts := []string{
		"Has my UTR456123 gone through?", // UTR belongs to donor 2
		"this is Rajesh",                 // name belongs to donor 1
		"hello",
	}
	for _, text := range texts {
		id, ok := Resolve(extract.Extract(text), "whatsapp:+919780086800")
		require.True(t, ok, text)
		assert.Equal(t, 6, id, text)
	}
}

func TestResolveByUTR(t *testing.T) {
	id, ok := Resolve(extract.Info{UTR: "UTR567890"}, "")
	require.True(t, ok)
	assert.Equal(t, 3, id)

	// Extraction is case-insensitive, matching should be too.
	id, ok = Resolve(extract.Info{UTR: "utr567890"}, "")
	require.True(t, ok)
	assert.Equal(t, 3, id)
}

func TestResolveByName(t *testing.T) {
	id, ok := Resolve(extract.Info{Name: "Priya"}, "")
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestResolveByExtractedPhone(t *testing.T) {
	id, ok := Resolve(extract.Info{Phone: "87654 32109"}, "")
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestResolveSpecialCase(t *testing.T) {
	id, ok := Resolve(extract.Info{Phone: "97800"}, "")
	require.True(t, ok)
	assert.Equal(t, 6, id)
}

func TestResolveUnknown(t *testing.T) {
	id, ok := Resolve(extract.Info{Name: "Deepak"}, "whatsapp:+911234500000")
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestContextKnownDonor(t *testing.T) {
	ctx := Context(6)
	assert.Contains(t, ctx, "Arvin Kumar")
	assert.Contains(t, ctx, "UTR123456")
	assert.Contains(t, ctx, "₹2000")
	assert.Contains(t, ctx, "Sent on 2025-02-20")
}

func TestContextPendingReceipt(t *testing.T) {
	ctx := Context(1)
	assert.Contains(t, ctx, "UTR789456")
	assert.Contains(t, ctx, "Pending - Will be sent within 24 hours")
}

func TestContextNewDonor(t *testing.T) {
	assert.Contains(t, Context(0), "new donor")
	assert.Contains(t, Context(5), "new donor")
}
