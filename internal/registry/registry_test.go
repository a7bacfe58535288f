package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		in     string
		want   Tier
		wantOK bool
	}{
		{"Basic", Basic, true},
		{"hobbyist", Hobbyist, true},
		{"STARTUP", Startup, true},
		{" Standard ", Standard, true},
		{"Professional", Professional, true},
		{"Enterprise", Enterprise, true},
		{"", Basic, false},
		{"Platinum", Basic, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTier(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "Enterprise", Enterprise.String())
	assert.Equal(t, "Unknown", Tier(42).String())
	assert.False(t, Tier(-1).Valid())
}

func TestActive_CountsPerTier(t *testing.T) {
	r := Default()
	require.Equal(t, 51, r.Len())

	want := map[Tier]int{
		Basic:        26,
		Hobbyist:     33,
		Startup:      40,
		Standard:     50,
		Professional: 50,
		Enterprise:   51,
	}
	for tier, n := range want {
		assert.Len(t, r.Active(tier), n, "tier %s", tier)
	}
}

func TestActive_ExactlyEntriesAtOrBelowTier(t *testing.T) {
	r := Default()
	for _, tier := range Tiers() {
		active := make(map[string]bool)
		for _, d := range r.Active(tier) {
			active[d.Name] = true
		}
		for _, d := range r.All() {
			assert.Equal(t, d.Tier <= tier, active[d.Name], "tool %s at tier %s", d.Name, tier)
		}
	}
}

func TestActive_Monotonic(t *testing.T) {
	r := Default()
	tiers := Tiers()
	for i := 1; i < len(tiers); i++ {
		lower := r.Active(tiers[i-1])
		higher := make(map[string]bool)
		for _, d := range r.Active(tiers[i]) {
			higher[d.Name] = true
		}
		for _, d := range lower {
			assert.True(t, higher[d.Name], "%s lost when raising %s to %s", d.Name, tiers[i-1], tiers[i])
		}
	}
}

func TestActive_BasicExcludesEnterpriseTool(t *testing.T) {
	r := Default()
	for _, d := range r.Active(Basic) {
		assert.NotEqual(t, "blockchainStatisticsLatest", d.Name)
	}
	d, ok := r.Lookup("blockchainStatisticsLatest")
	require.True(t, ok)
	assert.Equal(t, Enterprise, d.Tier)
}

func TestNew_RejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []ToolDefinition
	}{
		{"empty name", []ToolDefinition{{Path: "/v1/x"}}},
		{"empty path", []ToolDefinition{{Name: "x"}}},
		{"unversioned path", []ToolDefinition{{Name: "x", Path: "/x"}}},
		{"dot dot", []ToolDefinition{{Name: "x", Path: "/v1/../x"}}},
		{"bad tier", []ToolDefinition{{Name: "x", Path: "/v1/x", Tier: Tier(9)}}},
		{"duplicate tool", []ToolDefinition{{Name: "x", Path: "/v1/x"}, {Name: "x", Path: "/v1/y"}}},
		{"duplicate param", []ToolDefinition{{Name: "x", Path: "/v1/x", Params: []Param{String("a"), Number("a")}}}},
		{"unknown type", []ToolDefinition{{Name: "x", Path: "/v1/x", Params: []Param{{Name: "a", Type: "date"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs)
			assert.Error(t, err)
		})
	}
}

func TestInputSchema(t *testing.T) {
	r := Default()
	d, ok := r.Lookup("allCryptocurrencyListings")
	require.True(t, ok)

	var schema struct {
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	require.NoError(t, json.Unmarshal(d.InputSchema(), &schema))

	assert.Equal(t, "object", schema.Type)
	assert.Empty(t, schema.Required)
	assert.Equal(t, float64(5000), schema.Properties["limit"]["maximum"])
	assert.Equal(t, float64(1), schema.Properties["limit"]["minimum"])
	assert.Contains(t, schema.Properties["sort_dir"]["enum"], "desc")

	conv, _ := r.Lookup("priceConversion")
	require.NoError(t, json.Unmarshal(conv.InputSchema(), &schema))
	assert.Equal(t, []string{"amount"}, schema.Required)

	hist, _ := r.Lookup("historicalCryptocurrencyListings")
	require.NoError(t, json.Unmarshal(hist.InputSchema(), &schema))
	assert.Equal(t, []any{"string", "number"}, schema.Properties["timestamp"]["type"])

	m, _ := r.Lookup("cryptoCurrencyMap")
	require.NoError(t, json.Unmarshal(m.InputSchema(), &schema))
	assert.Equal(t, "active", schema.Properties["listing_status"]["default"])
}

func TestValidate(t *testing.T) {
	r := Default()
	conv, _ := r.Lookup("priceConversion")
	listings, _ := r.Lookup("allCryptocurrencyListings")
	hist, _ := r.Lookup("historicalCryptocurrencyListings")
	fng, _ := r.Lookup("fearAndGreedHistorical")
	cat, _ := r.Lookup("cryptoCategory")

	tests := []struct {
		name    string
		def     *ToolDefinition
		args    map[string]any
		wantErr bool
	}{
		{"required present", conv, map[string]any{"amount": 100, "symbol": "BTC"}, false},
		{"required missing", conv, map[string]any{"symbol": "BTC"}, true},
		{"wrong type", conv, map[string]any{"amount": "100"}, true},
		{"nil args with no required", listings, nil, false},
		{"limit at ceiling", listings, map[string]any{"limit": 5000}, false},
		{"limit above ceiling", listings, map[string]any{"limit": 5001}, true},
		{"limit below floor", listings, map[string]any{"limit": 0}, true},
		{"enum member", listings, map[string]any{"sort_dir": "asc"}, false},
		{"enum non-member", listings, map[string]any{"sort_dir": "up"}, true},
		{"timestamp as string", hist, map[string]any{"timestamp": "2024-01-01"}, false},
		{"timestamp as number", hist, map[string]any{"timestamp": 1704067200}, false},
		{"timestamp as bool", hist, map[string]any{"timestamp": true}, true},
		{"fng limit ceiling", fng, map[string]any{"limit": 501}, true},
		{"unknown key tolerated", listings, map[string]any{"bogus": 1}, false},
		{"empty required string", cat, map[string]any{"id": ""}, true},
		{"empty optional string", cat, map[string]any{"id": "605e2ce9d41eae1066535f7c", "convert": ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.Validate(tt.args)
			if tt.wantErr {
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_NormalizesNumbers(t *testing.T) {
	r := Default()
	conv, _ := r.Lookup("priceConversion")

	got, err := conv.Validate(map[string]any{"amount": 100})
	require.NoError(t, err)
	assert.Equal(t, float64(100), got["amount"])
}

func TestValidationError_MentionsMissingField(t *testing.T) {
	r := Default()
	conv, _ := r.Lookup("priceConversion")

	_, err := conv.Validate(map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestCatalog_ReturnsFreshSlice(t *testing.T) {
	a := Catalog()
	a[0].Name = "mutated"
	b := Catalog()
	assert.Equal(t, "cryptoCategories", b[0].Name)
}

func TestValidate_NullIsAbsent(t *testing.T) {
	r := Default()
	listings, _ := r.Lookup("allCryptocurrencyListings")

	got, err := listings.Validate(map[string]any{"sort": nil, "limit": 5})
	require.NoError(t, err)
	assert.NotContains(t, got, "sort")
	assert.Equal(t, float64(5), got["limit"])
}

func TestInputSchema_RequiredStringsRejectEmpty(t *testing.T) {
	d, ok := Default().Lookup("cryptoCategory")
	require.True(t, ok)

	var schema struct {
		Properties map[string]map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(d.InputSchema(), &schema))
	assert.Equal(t, float64(1), schema.Properties["id"]["minLength"])
	assert.NotContains(t, schema.Properties["convert"], "minLength")
}
