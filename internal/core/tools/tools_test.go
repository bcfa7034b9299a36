package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/cop30utils/internal/core"
	_ "github.com/JonMunkholm/cop30utils/internal/core/tools"
	"github.com/JonMunkholm/cop30utils/internal/lines"
)

func run(t *testing.T, key, input string) core.TextResult {
	t.Helper()
	svc := core.NewService(core.ServiceConfig{})
	res, err := svc.RunText(context.Background(), key, input)
	require.NoError(t, err)
	return res
}

func TestRegistry_AllToolsPresent(t *testing.T) {
	keys := []string{
		"to-upper", "to-lower", "clean-numbers", "validate-cpf",
		"normalize-name", "gender-detection", "split-names", "detect-repeats",
		"format-phone", "validate-email", "compare-lists", "remove-duplicates",
		"sort-names", "sort-names-desc", "sort-by-length",
		"find-duplicate-rows", "generate-photo-zip",
	}
	for _, k := range keys {
		info, ok := core.Get(k)
		require.True(t, ok, k)
		assert.NotEmpty(t, info.Info.Label, k)
		assert.NotEmpty(t, info.Info.Help, k)
	}
	assert.Equal(t, len(keys), core.ToolCount())
}

func TestTextTools(t *testing.T) {
	tests := []struct {
		key   string
		input string
		want  []string
	}{
		{"to-upper", "josé\nana", []string{"JOSÉ", "ANA"}},
		{"to-lower", "JOSÉ", []string{"josé"}},
		{"clean-numbers", "529.982.247-25\n\n123", []string{"529.982.247-25", "", "000.000.001-23"}},
		{"validate-cpf", "52998224725\n529.982.247-26\n\n---\n11111111111", []string{
			"529.982.247-25 - VÁLIDO",
			"529.982.247-26 - INVÁLIDO",
			"",
			"",
			"111.111.111-11 - INVÁLIDO",
		}},
		{"normalize-name", "MARIA  DA SILVA\n\njoão e josé", []string{"Maria da Silva", "", "João e José"}},
		{"format-phone", "11 98765-4321\n\n1234567890", []string{"(11)98765-4321", "", "(12)34567-890"}},
		{"validate-email", "a@b.com\nbad@@x\n", []string{"a@b.com - VÁLIDO", "bad@@x - INVÁLIDO", ""}},
		{"remove-duplicates", "a\na\n\nb", []string{"a (2x)", "b"}},
		{"sort-names", "Bruno\nálvaro\nAna", []string{"álvaro", "Ana", "Bruno"}},
		{"sort-names-desc", "Bruno\nálvaro\nAna", []string{"Bruno", "Ana", "álvaro"}},
		{"sort-by-length", "ccc\na\nbb", []string{"a", "bb", "ccc"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			res := run(t, tt.key, tt.input)
			assert.Equal(t, tt.want, res.Lines)
		})
	}
}

func TestSplitNames_Sections(t *testing.T) {
	res := run(t, "split-names", "Maria da Silva\nPedro")
	require.Len(t, res.Sections, 2)
	assert.Equal(t, []string{"Maria", "Pedro"}, res.Sections[0].Lines)
	assert.Equal(t, []string{"Silva", ""}, res.Sections[1].Lines)
	assert.Equal(t, 4, res.LineCount())
}

func TestDetectRepeats(t *testing.T) {
	res := run(t, "detect-repeats", "x\ny\nx")
	assert.Equal(t, []string{"x (linhas: 1, 3, 2x)"}, res.Lines)
	assert.Empty(t, res.Notice)

	res = run(t, "detect-repeats", "x\ny")
	assert.Empty(t, res.Lines)
	assert.Equal(t, lines.NoRepeatsNotice, res.Notice)
}

func TestSortByLength_Stats(t *testing.T) {
	res := run(t, "sort-by-length", "ccc\na\nbb")
	st, ok := res.Stats.(lines.LengthStats)
	require.True(t, ok)
	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 2.0, st.Median)
}

func TestRunText_RejectsOtherKinds(t *testing.T) {
	svc := core.NewService(core.ServiceConfig{})
	_, err := svc.RunText(context.Background(), "compare-lists", "a")
	assert.ErrorIs(t, err, core.ErrUnknownTool)
}
