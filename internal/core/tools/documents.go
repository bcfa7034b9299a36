package tools

import (
	"context"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/cpf"
	"github.com/JonMunkholm/cop30utils/internal/email"
	"github.com/JonMunkholm/cop30utils/internal/lines"
)

const (
	validLabel   = "VÁLIDO"
	invalidLabel = "INVÁLIDO"
)

func init() {
	registerCleanCPF()
	registerValidateCPF()
	registerValidateEmail()
}

func registerCleanCPF() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "clean-numbers",
			Group:       groupDocs,
			Label:       "Limpar CPF",
			Description: "Remove pontuação, completa com zeros e formata CPFs.",
			Order:       1,
			Help: `Um CPF por linha. Tudo que não é dígito é removido, números com
menos de 11 dígitos recebem zeros à esquerda e o resultado é formatado como
` + "`XXX.XXX.XXX-XX`" + `. Números com mais de 11 dígitos são mostrados sem
formatação.`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{Lines: lines.MapLines(input, cleanCPF)}, nil
		},
	})
}

func cleanCPF(line string) string {
	return cpf.Format(cpf.Pad(cpf.Clean(line)))
}

func registerValidateCPF() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "validate-cpf",
			Group:       groupDocs,
			Label:       "Validar CPF",
			Description: "Confere os dígitos verificadores de cada CPF.",
			Order:       2,
			Help: `Um CPF por linha, com ou sem pontuação. Cada linha recebe
**VÁLIDO** ou **INVÁLIDO**.

Sequências de um único dígito (` + "`111.111.111-11`" + `) são inválidas.
Linhas sem nenhum dígito ficam em branco.`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{Lines: lines.MapLines(input, validateCPF)}, nil
		},
	})
}

func validateCPF(line string) string {
	r := cpf.Validate(line)
	if r.Empty {
		return ""
	}
	label := invalidLabel
	if r.Valid {
		label = validLabel
	}
	return r.Formatted + " - " + label
}

func registerValidateEmail() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "validate-email",
			Group:       groupDocs,
			Label:       "Validar E-mail",
			Description: "Verifica o formato de endereços de e-mail.",
			Order:       4,
			Help: `Um endereço por linha. A verificação é apenas de formato:
um ` + "`@`" + `, domínio com ponto, sem pontos duplicados ou nas pontas e
dentro dos limites de tamanho (64 caracteres antes do ` + "`@`" + `, 254 no total).`,
		},
		Transform: func(_ context.Context, input string) (core.TextOutput, error) {
			return core.TextOutput{Lines: lines.MapLines(input, email.CheckLine)}, nil
		},
	})
}
