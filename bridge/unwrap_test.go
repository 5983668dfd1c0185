package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/mtbridge/bridge"
	"github.com/willibrandon/mtbridge/core"
)

type customValue struct {
	core.ScalarValue
}

func TestUnwrapValue(t *testing.T) {
	tests := []struct {
		name  string
		value core.LogEventPropertyValue
		want  any
	}{
		{"nil", nil, nil},
		{"scalar", core.NewScalar(42), 42},
		{"nil scalar", core.NewScalar(nil), nil},
		{"sequence", core.NewSequence(core.NewScalar(1), core.NewScalar(2), core.NewScalar(3)), []any{1, 2, 3}},
		{"sequence keeps duplicates", core.NewSequence(core.NewScalar("a"), core.NewScalar("a")), []any{"a", "a"}},
		{"dictionary", core.DictionaryValue{Elements: []core.DictionaryEntry{
			{Key: core.NewScalar("A"), Value: core.NewScalar(1)},
			{Key: core.NewScalar("B"), Value: core.NewScalar(2)},
		}}, map[any]any{"A": 1, "B": 2}},
		{"dictionary last key wins", core.DictionaryValue{Elements: []core.DictionaryEntry{
			{Key: core.NewScalar("A"), Value: core.NewScalar(1)},
			{Key: core.NewScalar("A"), Value: core.NewScalar(2)},
		}}, map[any]any{"A": 2}},
		{"dictionary unhashable key", core.DictionaryValue{Elements: []core.DictionaryEntry{
			{Key: core.NewScalar([]byte("k")), Value: core.NewScalar(1)},
		}}, map[any]any{"[107]": 1}},
		{"structure", core.StructureValue{TypeTag: "User", Properties: []*core.LogEventProperty{
			core.NewLogEventProperty("Name", core.NewScalar("alice")),
			core.NewLogEventProperty("Roles", core.NewSequence(core.NewScalar("admin"))),
		}}, map[string]any{"Name": "alice", "Roles": []any{"admin"}}},
		{"nested", core.NewSequence(core.DictionaryValue{Elements: []core.DictionaryEntry{
			{Key: core.NewScalar(1), Value: core.StructureValue{Properties: []*core.LogEventProperty{
				core.NewLogEventProperty("X", core.NewSequence()),
			}}},
		}}), []any{map[any]any{1: map[string]any{"X": []any{}}}}},
		{"scalar pointer", &core.ScalarValue{Value: "p"}, "p"},
		{"nil sequence pointer", (*core.SequenceValue)(nil), nil},
		{"unknown variant", customValue{core.NewScalar(7)}, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bridge.UnwrapValue(tt.value))
		})
	}
}

func TestUnwrapValueDepthLimit(t *testing.T) {
	var v core.LogEventPropertyValue = core.NewScalar("leaf")
	for i := 0; i < bridge.MaxUnwrapDepth+10; i++ {
		v = core.NewSequence(v)
	}

	got := bridge.UnwrapValue(v)
	for i := 0; i < bridge.MaxUnwrapDepth; i++ {
		seq, ok := got.([]any)
		require.True(t, ok, "level %d is %T", i, got)
		require.Len(t, seq, 1)
		got = seq[0]
	}
	assert.Equal(t, "core.SequenceValue", got)
}

func TestUnwrapValueWithinDepthLimit(t *testing.T) {
	var v core.LogEventPropertyValue = core.NewScalar("leaf")
	for i := 0; i < bridge.MaxUnwrapDepth; i++ {
		v = core.NewSequence(v)
	}

	got := bridge.UnwrapValue(v)
	for i := 0; i < bridge.MaxUnwrapDepth; i++ {
		got = got.([]any)[0]
	}
	assert.Equal(t, "leaf", got)
}
