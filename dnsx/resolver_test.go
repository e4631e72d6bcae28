package dnsx_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/relayqa/mailprobe/dnsx"
)

func TestFromNetMX_SortsByPriority(t *testing.T) {
	records := []*net.MX{
		{Host: "b.example.com.", Pref: 20},
		{Host: "a.example.com.", Pref: 10},
		{Host: "c.example.com.", Pref: 30},
	}

	out := dnsx.FromNetMX(records)

	assert.Equal(t, []dnsx.MXRecord{
		{Priority: 10, Host: "a.example.com"},
		{Priority: 20, Host: "b.example.com"},
		{Priority: 30, Host: "c.example.com"},
	}, out)
}

func TestFromNetMX_TrimsTrailingDot(t *testing.T) {
	out := dnsx.FromNetMX([]*net.MX{{Host: "mx.example.com.", Pref: 5}})
	assert.Equal(t, "mx.example.com", out[0].Host)
}

func TestFromNetMX_Empty(t *testing.T) {
	out := dnsx.FromNetMX(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestMockResolver(t *testing.T) {
	r := dnsx.MockResolver{
		MX: map[string][]*net.MX{
			"example.com": {{Host: "mx.example.com.", Pref: 10}},
			"nomx.org":    {},
		},
		Err: map[string]error{
			"slow.example":    dnsx.ErrTimeout,
			"broken.example":  dnsx.ErrServFail,
			"offline.example": dnsx.ErrUnavailable,
		},
	}
	ctx := context.Background()

	tests := []struct {
		name    string
		domain  string
		records int
		err     error
	}{
		{"known domain", "example.com", 1, nil},
		{"case insensitive", "EXAMPLE.COM", 1, nil},
		{"trailing dot", "example.com.", 1, nil},
		{"exists without mx", "nomx.org", 0, nil},
		{"unknown domain", "ghost.example", 0, dnsx.ErrNotFound},
		{"timeout", "slow.example", 0, dnsx.ErrTimeout},
		{"server failure", "broken.example", 0, dnsx.ErrServFail},
		{"unavailable", "offline.example", 0, dnsx.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := r.LookupMX(ctx, tt.domain)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, records, tt.records)
		})
	}
}

func TestMockResolver_CopiesRecords(t *testing.T) {
	fixture := []*net.MX{{Host: "mx.example.com.", Pref: 10}}
	r := dnsx.MockResolver{MX: map[string][]*net.MX{"example.com": fixture}}

	records, err := r.LookupMX(context.Background(), "example.com")
	assert.NoError(t, err)

	records[0].Pref = 99
	assert.Equal(t, uint16(10), fixture[0].Pref)
}

func TestMockResolver_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := dnsx.MockResolver{MX: map[string][]*net.MX{"example.com": {}}}
	_, err := r.LookupMX(ctx, "example.com")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnavailable(t *testing.T) {
	_, err := dnsx.Unavailable{}.LookupMX(context.Background(), "example.com")
	assert.ErrorIs(t, err, dnsx.ErrUnavailable)
}

func TestNewDNSResolver_Defaults(t *testing.T) {
	r := dnsx.NewDNSResolver(dnsx.Config{})
	cfg := r.Config()

	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Retries)
	assert.NotEmpty(t, cfg.Nameservers)
}

func TestNewDNSResolver_KeepsExplicitConfig(t *testing.T) {
	r := dnsx.NewDNSResolver(dnsx.Config{
		Nameservers: []string{"192.0.2.1:53"},
		Timeout:     time.Second,
		Retries:     1,
	})
	cfg := r.Config()

	assert.Equal(t, []string{"192.0.2.1:53"}, cfg.Nameservers)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, 1, cfg.Retries)
}

func TestDNSResolver_ZeroValueDegrades(t *testing.T) {
	var r dnsx.DNSResolver
	_, err := r.LookupMX(context.Background(), "example.com")
	assert.ErrorIs(t, err, dnsx.ErrUnavailable)
}

func TestDNSResolver_Live(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping network test in short mode")
	}

	r := dnsx.NewDNSResolver(dnsx.Config{Timeout: 5 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := r.LookupMX(ctx, "gmail.com")
	if err != nil {
		t.Skipf("network unavailable: %v", err)
	}
	assert.NotEmpty(t, records)
}
