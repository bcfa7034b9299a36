package tools

import (
	"context"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/lines"
	"github.com/JonMunkholm/cop30utils/internal/phone"
)

func init() {
	registerCaseTools()
	registerPhone()
}

func registerCaseTools() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "to-upper",
			Group:       groupText,
			Label:       "TO UPPER",
			Description: "Converte todo o texto para MAIÚSCULAS.",
			Order:       1,
			Help: `Cole o texto e clique em **Converter**.

Acentos são preservados: ` + "`josé` → `JOSÉ`" + `.`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{Lines: lines.Split(lines.Upper(input))}, nil
		},
	})

	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "to-lower",
			Group:       groupText,
			Label:       "to lower",
			Description: "Converte todo o texto para minúsculas.",
			Order:       2,
			Help:        "Cole o texto e clique em **Converter**.",
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{Lines: lines.Split(lines.Lower(input))}, nil
		},
	})
}

func registerPhone() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "format-phone",
			Group:       groupDocs,
			Label:       "Formatar Telefone",
			Description: "Formata números de telefone como (DD)DDDDD-DDDD.",
			Order:       3,
			Help: `Um telefone por linha. Apenas os dígitos são considerados.

- 11 dígitos: ` + "`(DD)DDDDD-DDDD`" + `
- 10 dígitos: ` + "`(DD)DDDDD-DDD`" + `
- menos de 10: completado com zeros à esquerda
- mais de 11: usa os últimos 10 dígitos

Linhas em branco são mantidas.`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{Lines: lines.MapLines(input, phone.FormatLine)}, nil
		},
	})
}
