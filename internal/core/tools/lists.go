package tools

import (
	"context"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/lines"
)

func init() {
	registerRemoveDuplicates()
	registerDetectRepeats()
	registerSortByLength()
	registerCompareLists()
}

func registerRemoveDuplicates() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "remove-duplicates",
			Group:       groupLists,
			Label:       "Remover Duplicatas",
			Description: "Mantém uma ocorrência de cada linha e mostra quantas vezes apareceu.",
			Order:       1,
			Help: `Cada linha aparece uma vez, na ordem da primeira ocorrência.
Linhas repetidas recebem a contagem: ` + "`Ana (3x)`" + `.`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{
				Lines: lines.RenderCounted(lines.CountUnique(lines.NonEmpty(input))),
			}, nil
		},
	})
}

func registerDetectRepeats() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "detect-repeats",
			Group:       groupLists,
			Label:       "Detectar Repetições",
			Description: "Lista as linhas repetidas e onde aparecem.",
			Order:       2,
			Help: `Mostra cada linha que aparece mais de uma vez, com os números
das linhas (contando linhas em branco) e o total de ocorrências.`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			repeats := lines.Repeats(input)
			if len(repeats) == 0 {
				return core.TextOutput{Notice: lines.NoRepeatsNotice}, nil
			}
			out := make([]string, len(repeats))
			for i, r := range repeats {
				out[i] = r.String()
			}
			return core.TextOutput{Lines: out, Stats: repeats}, nil
		},
	})
}

func registerSortByLength() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "sort-by-length",
			Group:       groupLists,
			Label:       "Ordenar por Tamanho",
			Description: "Ordena as linhas da mais curta para a mais longa.",
			Order:       3,
			Help: `Linhas com o mesmo tamanho mantêm a ordem original. O resultado
inclui mínimo, máximo, média e mediana dos tamanhos.`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			sorted := lines.SortByLength(lines.NonEmpty(input))
			st, err := lines.Lengths(sorted)
			if err != nil {
				return core.TextOutput{}, err
			}
			return core.TextOutput{Lines: sorted, Stats: st}, nil
		},
	})
}

func registerCompareLists() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "compare-lists",
			Group:       groupLists,
			Label:       "Comparar Listas",
			Description: "Mostra o que está em uma lista e falta na outra.",
			Kind:        core.KindCompare,
			Order:       4,
			Help: `Cole uma lista em cada campo. O resultado traz:

1. itens da Lista 2 que não estão na Lista 1
2. itens da Lista 1 que não estão na Lista 2
3. itens presentes nas duas

A comparação é exata, linha a linha, depois de remover espaços nas pontas.`,
		},
	})
}
