package tools

import (
	"context"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/lines"
	"github.com/JonMunkholm/cop30utils/internal/names"
)

func init() {
	registerNormalizeName()
	registerSplitNames()
	registerSortNames()
}

func registerNormalizeName() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "normalize-name",
			Group:       groupNames,
			Label:       "Normalizar Nome",
			Description: "Coloca nomes em formato de título.",
			Order:       1,
			Help: `Um nome por linha. Espaços extras são removidos e cada palavra
começa com maiúscula, exceto os conectivos *e, da, de, do, das, dos*.

` + "`MARIA  DA SILVA` → `Maria da Silva`",
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{Lines: lines.MapLines(input, names.Normalize)}, nil
		},
	})
}

func registerSplitNames() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "split-names",
			Group:       groupNames,
			Label:       "Separar Nomes",
			Description: "Separa o primeiro e o último nome em duas colunas.",
			Order:       2,
			Help: `Um nome completo por linha. O resultado traz duas listas
alinhadas: primeiros nomes e sobrenomes (a última palavra). Nomes de uma só
palavra ficam com o sobrenome em branco.`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			first, last := lines.SplitNames(lines.NonEmpty(input))
			return core.TextOutput{Sections: []core.Section{
				{Title: "Primeiros nomes", Lines: first},
				{Title: "Sobrenomes", Lines: last},
			}}, nil
		},
	})
}

func registerSortNames() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "sort-names",
			Group:       groupNames,
			Label:       "Ordenar Nomes",
			Description: "Ordena nomes de A a Z.",
			Order:       3,
			Help: `Um nome por linha. A ordenação segue o português do Brasil e
ignora maiúsculas e acentos: ` + "`Álvaro`" + ` fica junto de ` + "`alvaro`" + `.`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{Lines: lines.SortAlpha(lines.NonEmpty(input), false)}, nil
		},
	})

	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "sort-names-desc",
			Group:       groupNames,
			Label:       "Ordenar Nomes (Decrescente)",
			Description: "Ordena nomes de Z a A.",
			Order:       4,
			Help:        "Como **Ordenar Nomes**, em ordem inversa.",
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{Lines: lines.SortAlpha(lines.NonEmpty(input), true)}, nil
		},
	})
}
