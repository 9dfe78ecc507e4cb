package backup

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealvault/sealvault-core/internal/common"
)

func TestVersionFromInt64(t *testing.T) {
	tests := []struct {
		name    string
		input   int64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 42, false},
		{"max", 1<<63 - 1, false},
		{"negative one", -1, true},
		{"min", -1 << 63, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := VersionFromInt64(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, common.IsFatal(err), "negative version must be fatal")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input, v.Int64())
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.Int64())

	_, err = ParseVersion("abc")
	require.Error(t, err)
	assert.True(t, common.IsRetriable(err), "syntax failure must be retriable")

	// Syntactically valid but structurally impossible.
	_, err = ParseVersion("-1")
	require.Error(t, err)
	assert.True(t, common.IsFatal(err))
	assert.False(t, common.IsRetriable(err))
}

func TestVersion_Ordering(t *testing.T) {
	pairs := [][2]int64{{0, 1}, {1, 2}, {5, 100}, {0, 1 << 40}}
	for _, pair := range pairs {
		lo, err := VersionFromInt64(pair[0])
		require.NoError(t, err)
		hi, err := VersionFromInt64(pair[1])
		require.NoError(t, err)
		assert.True(t, lo < hi, "ordering must match the underlying integers")
	}
}

func TestVersion_String(t *testing.T) {
	v, err := VersionFromInt64(1700000000)
	require.NoError(t, err)
	assert.Equal(t, "1700000000", v.String())
}

func TestVersion_JSON(t *testing.T) {
	v, err := VersionFromInt64(7)
	require.NoError(t, err)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "7", string(data), "version serializes as a bare integer")

	var decoded Version
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, v, decoded)

	err = json.Unmarshal([]byte("-3"), &decoded)
	require.Error(t, err, "negative version must not construct through JSON")
}

func TestScheme(t *testing.T) {
	s, err := ParseScheme("v1")
	require.NoError(t, err)
	assert.Equal(t, SchemeV1, s)

	_, err = ParseScheme("v2")
	require.Error(t, err)
	assert.True(t, common.IsFatal(err))
}
