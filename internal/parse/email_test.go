package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relayqa/mailprobe/internal/parse"
)

func TestNewEmail_ASCII(t *testing.T) {
	e := parse.NewEmail("user@example.com")
	assert.True(t, e.Valid)
	assert.Equal(t, "user", e.Local)
	assert.Equal(t, "example.com", e.Domain)
	assert.Equal(t, "example.com", e.DomainUnicode)
	assert.Equal(t, "user@example.com", e.Normalized)
}

func TestNewEmail_Whitespace(t *testing.T) {
	e := parse.NewEmail("  user@example.com  ")
	assert.True(t, e.Valid)
	assert.Equal(t, "user", e.Local)
	assert.Equal(t, "user@example.com", e.Raw)
}

func TestNewEmail_Invalid(t *testing.T) {
	tests := []string{
		"",
		"noatsign",
		"@nodomain",
		"nolocal@",
		"two@at@signs.com",
		`"quoted@local"@example.com`,
	}
	for _, raw := range tests {
		e := parse.NewEmail(raw)
		assert.False(t, e.Valid, "expected invalid for %q", raw)
		assert.Equal(t, raw, e.Raw)
	}
}

func TestNewEmail_IDN_UnicodeDomain(t *testing.T) {
	// Unicode domain should be converted to Punycode in Domain,
	// and kept as Unicode in DomainUnicode
	e := parse.NewEmail("user@münchen.de")
	assert.True(t, e.Valid)
	assert.Equal(t, "user", e.Local)
	assert.Equal(t, "xn--mnchen-3ya.de", e.Domain)
	assert.Equal(t, "münchen.de", e.DomainUnicode)
	assert.Equal(t, "user@xn--mnchen-3ya.de", e.Normalized)
}

func TestNewEmail_IDN_PunycodeDomain(t *testing.T) {
	// Already-Punycode domain should be kept as-is in Domain,
	// and decoded to Unicode in DomainUnicode
	e := parse.NewEmail("user@xn--mnchen-3ya.de")
	assert.True(t, e.Valid)
	assert.Equal(t, "xn--mnchen-3ya.de", e.Domain)
	assert.Equal(t, "münchen.de", e.DomainUnicode)
}

func TestNewEmail_EAI_UnicodeLocal(t *testing.T) {
	// Unicode local part (RFC 6531 SMTPUTF8)
	e := parse.NewEmail("用户@example.com")
	assert.True(t, e.Valid)
	assert.Equal(t, "用户", e.Local)
	assert.Equal(t, "example.com", e.Domain)
}

func TestNewEmail_EAI_BothUnicode(t *testing.T) {
	e := parse.NewEmail("用户@münchen.de")
	assert.True(t, e.Valid)
	assert.Equal(t, "用户", e.Local)
	assert.Equal(t, "xn--mnchen-3ya.de", e.Domain)
	assert.Equal(t, "münchen.de", e.DomainUnicode)
}

func TestNewEmail_IDN_CyrillicDomain(t *testing.T) {
	e := parse.NewEmail("user@почта.рф")
	assert.True(t, e.Valid)
	assert.Equal(t, "xn--80a1acny.xn--p1ai", e.Domain)
	assert.Equal(t, "почта.рф", e.DomainUnicode)
}

func TestNewEmail_DomainCaseNormalization(t *testing.T) {
	e := parse.NewEmail("User@EXAMPLE.COM")
	assert.True(t, e.Valid)
	assert.Equal(t, "User", e.Local)
	assert.Equal(t, "example.com", e.Domain)
	assert.Equal(t, "User@example.com", e.Normalized)
}

func TestDomain(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "example.com", want: "example.com"},
		{name: "uppercase", in: "EXAMPLE.COM", want: "example.com"},
		{name: "whitespace", in: "  example.com  ", want: "example.com"},
		{name: "trailing dot", in: "example.com.", want: "example.com"},
		{name: "unicode", in: "münchen.de", want: "xn--mnchen-3ya.de"},
		{name: "empty", in: "", wantErr: true},
		{name: "only dot", in: ".", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parse.Domain(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
