package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"a@x.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"no-at-sign", false},
		{"a@localhost", false},
		{"Alice <a@x.com>", false},
		{"a@@x.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Email("email", tt.in)
			assert.Equal(t, tt.ok, got == nil, "Email(%q) = %v", tt.in, got)
		})
	}
}

func TestLength_CountsRunes(t *testing.T) {
	assert.Nil(t, Length("username", "çağ", 3, 32))
	assert.NotNil(t, Length("username", "ab", 3, 32))
	assert.NotNil(t, Length("username", strings.Repeat("a", 33), 3, 32))
	assert.Nil(t, Length("password", strings.Repeat("a", 500), 6, 0))
}

func TestIntRange(t *testing.T) {
	assert.Nil(t, IntRange("percent", 0, 0, 100))
	assert.Nil(t, IntRange("percent", 100, 0, 100))
	assert.NotNil(t, IntRange("percent", -1, 0, 100))
	assert.NotNil(t, IntRange("percent", 101, 0, 100))
}

func TestCollect(t *testing.T) {
	assert.Nil(t, Collect(nil, nil))

	errs := Collect(Required("content", " "), nil, IntRange("percent", 120, 0, 100))
	assert.Len(t, errs, 2)
	assert.Equal(t, "content: required; percent: must be between 0 and 100", errs.Error())
}

func TestMaxBytes(t *testing.T) {
	assert.Nil(t, MaxBytes("password", strings.Repeat("a", 72), 72))
	assert.NotNil(t, MaxBytes("password", strings.Repeat("a", 73), 72))
	// 40 runes, 80 bytes
	assert.NotNil(t, MaxBytes("password", strings.Repeat("ş", 40), 72))
}

func TestRequiredInt(t *testing.T) {
	zero := 0
	assert.Nil(t, RequiredInt("percent", &zero))
	assert.Equal(t, &ErrField{Field: "percent", Msg: "required"}, RequiredInt("percent", nil))
}
