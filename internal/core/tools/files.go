package tools

import (
	"github.com/JonMunkholm/cop30utils/internal/core"
)

func init() {
	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "find-duplicate-rows",
			Group:       groupFiles,
			Label:       "Linhas Duplicadas em Planilha",
			Description: "Encontra linhas repetidas em arquivos .xlsx, .xls ou .csv.",
			Kind:        core.KindTable,
			Order:       1,
			Help: `Envie uma planilha (.xlsx, .xls ou .csv). Apenas a primeira aba é lida.

**Comparação**

- *Linha inteira*: todas as células precisam ser iguais.
- *Colunas*: compara só as colunas informadas, pelo nome do cabeçalho.
  Sem colunas informadas, usa o conjunto padrão.

**Cabeçalho**

- *Incluído*: a primeira linha é cabeçalho e também entra na comparação.
- *Excluído*: a primeira linha é cabeçalho e fica de fora.
- *Sem cabeçalho*: todas as linhas são dados.

As linhas são numeradas como na planilha. O resultado pode ser baixado em
.xlsx ou .csv com o cabeçalho e uma linha de cada grupo.`,
		},
	})

	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "gender-detection",
			Group:       groupNames,
			Label:       "Detectar Gênero",
			Description: "Sugere Mr. ou Ms. a partir do primeiro nome.",
			Kind:        core.KindGender,
			Order:       5,
			Help: `Um nome por linha. Só o primeiro nome é consultado no serviço
externo, uma consulta por vez. Nomes sem resposta aparecem como
*Unknown gender*. Respostas já conhecidas vêm do cache local.`,
		},
	})

	core.Register(core.ToolDefinition{
		Info: core.ToolInfo{
			Key:         "generate-photo-zip",
			Group:       groupFiles,
			Label:       "Gerar ZIP de Fotos",
			Description: "Cria um ZIP com a mesma foto para cada nome.",
			Kind:        core.KindArchive,
			Order:       2,
			Help: `Um nome por linha. Escolha uma silhueta ou envie uma foto
(JPEG ou PNG). Cada arquivo recebe o nome da linha, com caracteres especiais
trocados por ` + "`_`" + `. Nomes repetidos ganham sufixo ` + "`_2`, `_3`" + `.`,
		},
	})
}
