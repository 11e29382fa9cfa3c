package hmmio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	hmm "github.com/unixpickle/discrete-hmm"
	"github.com/unixpickle/serializer"
)

func TestJSONRoundTrip(t *testing.T) {
	m := mixedModel(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, m))
	decoded, err := ReadJSON(&buf)
	require.NoError(t, err)
	assertModelsMatch(t, m, decoded)
}

func TestYAMLRoundTrip(t *testing.T) {
	m := mixedModel(t)
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, m))
	decoded, err := ReadYAML(&buf)
	require.NoError(t, err)
	assertModelsMatch(t, m, decoded)
}

func TestDocumentSkipsZeroWeights(t *testing.T) {
	doc := &Document{
		InitialStates: []Weight{{Label: "a", Prob: 1}, {Label: "b", Prob: 0}},
		States: []StateDocument{
			{
				Label:       "a",
				Transitions: []Weight{{Label: "b", Prob: 1}, {Label: "a", Prob: 0}},
				Emissions:   []Emission{{Symbol: "x", Prob: 1}},
			},
			{Label: "b"},
		},
	}
	m, err := doc.Model()
	require.NoError(t, err)
	assert.Equal(t, []hmm.Label{"a", "b"}, m.Labels())
	assert.Len(t, m.Initial(), 1)
	assert.Len(t, m.StateByLabel("a").Transitions(), 1)
	assert.Equal(t, 0.0, m.TransitionProbability("a", "a"))
}

func TestDocumentRejectsNegativeWeights(t *testing.T) {
	doc := &Document{
		InitialStates: []Weight{{Label: "a", Prob: -1}},
		States:        []StateDocument{{Label: "a"}},
	}
	_, err := doc.Model()
	assert.ErrorIs(t, err, hmm.ErrInvalidWeight)
}

func TestReadJSONIntegerLabels(t *testing.T) {
	input := `{
		"initial_states": [{"label": 0, "prob": 1}],
		"states": [{
			"label": 0,
			"transitions": [{"label": 1, "prob": 1}],
			"emissions": [{"symbol": 2, "prob": 0.5}, {"symbol": 2.5, "prob": 0.5}]
		}]
	}`
	m, err := ReadJSON(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []hmm.Label{0, 1}, m.Labels())
	assert.Equal(t, 0.5, m.EmitProbability(0, 2))
	assert.Equal(t, 0.5, m.EmitProbability(0, 2.5))
}

func TestModelSet(t *testing.T) {
	models := map[string]*hmm.Model{
		"b": mixedModel(t),
		"a": mixedModel(t),
	}
	var buf bytes.Buffer
	require.NoError(t, SaveSet(&buf, models))
	assert.Less(t, strings.Index(buf.String(), `"class": "a"`),
		strings.Index(buf.String(), `"class": "b"`))

	loaded, err := LoadSet(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for class, m := range models {
		assertModelsMatch(t, m, loaded[class])
	}
}

func TestSerialize(t *testing.T) {
	m1 := serializableModel(t)
	data, err := serializer.SerializeAny(&Serializable{Model: m1})
	require.NoError(t, err)
	var m2 *Serializable
	require.NoError(t, serializer.DeserializeAny(data, &m2))

	seq := []hmm.Obs{serializer.String("x"), serializer.String("y"),
		serializer.String("z")}
	assert.Equal(t, hmm.MostLikely(m1, seq), hmm.MostLikely(m2.Model, seq))
	prob1, err := hmm.LogLikelihood(m1, seq)
	require.NoError(t, err)
	prob2, err := hmm.LogLikelihood(m2.Model, seq)
	require.NoError(t, err)
	assert.InDelta(t, prob1, prob2, 1e-12)
	assert.Equal(t, m1.Labels(), m2.Labels())
}

func TestSerializeRejectsPlainLabels(t *testing.T) {
	_, err := serializer.SerializeAny(&Serializable{Model: mixedModel(t)})
	assert.Error(t, err)
}

func mixedModel(t *testing.T) *hmm.Model {
	m := hmm.NewModel()
	require.NoError(t, m.AddInitialState("start", 0.7))
	require.NoError(t, m.AddInitialState(3, 0.3))
	require.NoError(t, m.AddTransition("start", 3, 0.4))
	require.NoError(t, m.AddTransition("start", "start", 0.6))
	require.NoError(t, m.AddTransition(3, "end", 1))
	require.NoError(t, m.AddTransition("end", "end", 1))
	require.NoError(t, m.AddEmission("start", "x", 0.5))
	require.NoError(t, m.AddEmission("start", 7, 0.5))
	require.NoError(t, m.AddEmission(3, "x", 1))
	require.NoError(t, m.AddEmission("end", 7, 1))
	m.Normalize()
	return m
}

func serializableModel(t *testing.T) *hmm.Model {
	s := func(x string) serializer.String { return serializer.String(x) }
	m := hmm.NewModel()
	require.NoError(t, m.AddInitialState(s("A"), 0.4))
	require.NoError(t, m.AddInitialState(s("B"), 0.6))
	require.NoError(t, m.AddTransition(s("A"), s("A"), 0.3))
	require.NoError(t, m.AddTransition(s("A"), s("B"), 0.7))
	require.NoError(t, m.AddTransition(s("B"), s("A"), 0.5))
	require.NoError(t, m.AddTransition(s("B"), s("B"), 0.5))
	for _, pair := range []struct {
		state, obs string
		prob       float64
	}{
		{"A", "x", 0.5}, {"A", "y", 0.2}, {"A", "z", 0.3},
		{"B", "x", 0.1}, {"B", "y", 0.6}, {"B", "z", 0.3},
	} {
		require.NoError(t, m.AddEmission(s(pair.state), s(pair.obs), pair.prob))
	}
	return m
}

func assertModelsMatch(t *testing.T, expected, actual *hmm.Model) {
	t.Helper()
	require.Equal(t, expected.Labels(), actual.Labels())
	for _, from := range expected.Labels() {
		assert.InDelta(t, expected.InitialProbability(from), actual.InitialProbability(from), 1e-12)
		for _, to := range expected.Labels() {
			assert.InDelta(t, expected.TransitionProbability(from, to),
				actual.TransitionProbability(from, to), 1e-12)
		}
		for _, o := range expected.Symbols() {
			assert.InDelta(t, expected.EmitProbability(from, o), actual.EmitProbability(from, o), 1e-12)
		}
	}
	assert.ElementsMatch(t, expected.Symbols(), actual.Symbols())
}
