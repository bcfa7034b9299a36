package dupes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepresentatives(t *testing.T) {
	table := Table{Rows: [][]string{
		{"Name", "Email"},
		{"Ana", "ana@x.com"},
		{"Bia", "bia@x.com"},
		{"Ana", "ana@x.com"},
		{"Bia", "bia@x.com"},
	}}
	opts := Options{Header: HeaderExcluded}

	groups, err := Find(table, opts)
	require.NoError(t, err)

	out := Representatives(table, groups, opts)
	assert.Equal(t, [][]string{
		{"Name", "Email"},
		{"Ana", "ana@x.com"},
		{"Bia", "bia@x.com"},
	}, out.Rows)
}

func TestRepresentatives_NoHeader(t *testing.T) {
	table := Table{Rows: [][]string{{"a"}, {"a"}}}
	opts := Options{Header: NoHeader}

	groups, err := Find(table, opts)
	require.NoError(t, err)

	out := Representatives(table, groups, opts)
	assert.Equal(t, [][]string{{"a"}}, out.Rows)
}

func TestFormatReport(t *testing.T) {
	groups := []Group{
		{Rows: []int{2, 3}, Content: []string{"a", "b"}, Count: 2},
		{Rows: []int{4, 6}, Content: []string{"Ana", ""}, Columns: []string{"Name", "Email"}, Count: 2},
	}

	want := "Linhas Duplicadas Encontradas: 2 grupo(s)\n\n" +
		"Grupo 1 - Linhas: 2, 3\n" +
		"Conteúdo: a | b\n" +
		"Total de cópias: 2\n" +
		"\n" +
		"Grupo 2 - Linhas: 4, 6\n" +
		"Conteúdo: Name: Ana | Email: \n" +
		"Total de cópias: 2\n"

	assert.Equal(t, want, FormatReport(groups))
	assert.Empty(t, FormatReport(nil))
}
