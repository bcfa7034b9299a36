package core

// error_messages.go maps technical errors to messages users can act on.
//
// Every message carries a code that users can quote when asking for help.
//
// # File errors (FILE001-FILE099)
//
//	FILE001 - File too large          "request body too large", ErrFileTooLarge
//	FILE002 - Unsupported file type   sheet.ErrUnsupportedFileType, sheet.ErrMalformed
//	FILE003 - Encoding error          "encoding error", "invalid utf-8"
//	FILE004 - No file                 ErrNoFile, "no such file"
//	FILE005 - Empty table             dupes.ErrEmptyTable
//	FILE006 - No sheets               sheet.ErrNoSheets
//	FILE007 - Unsupported photo       photozip.ErrUnsupportedPhoto
//
// # Validation errors (VAL001-VAL099)
//
//	VAL001 - Missing columns          *dupes.MissingColumnsError
//	VAL002 - Header required          dupes.ErrHeaderRequired
//	VAL003 - No names                 photozip.ErrNoNames
//	VAL004 - Empty input              ErrEmptyInput
//	VAL005 - Input too large          ErrTooManyLines
//	VAL006 - Unknown photo            photozip.ErrUnknownSilhouette
//	VAL007 - Bad request body         "invalid json", "invalid header mode"
//
// # Gender service (GEN001-GEN099)
//
//	GEN001 - Service failure          gender.ErrService
//	GEN002 - Detection disabled       ErrGenderDisabled
//
// # Jobs (JOB001-JOB099)
//
//	JOB001 - Busy                     ErrTooManyJobs
//	JOB002 - Cancelled                context.Canceled
//	JOB003 - Timed out                context.DeadlineExceeded
//
// # Tools (TOOL001-TOOL099)
//
//	TOOL001 - Unknown tool            ErrUnknownTool
//
// # Rate limiting (RATE001)
//
//	RATE001 - Too many requests       "rate limit"
//
// # Default (ERR000)
//
//	ERR000 - Anything else.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/cop30utils/internal/dupes"
	"github.com/JonMunkholm/cop30utils/internal/gender"
	"github.com/JonMunkholm/cop30utils/internal/photozip"
	"github.com/JonMunkholm/cop30utils/internal/sheet"
)

// UserMessage is the user-facing form of an error.
type UserMessage struct {
	Message string // what happened
	Action  string // what to do about it
	Code    string // support reference
}

type errorMatch struct {
	target error
	msg    UserMessage
}

// errorTargets are checked with errors.Is, in order.
var errorTargets = []errorMatch{
	{ErrFileTooLarge, UserMessage{"O arquivo excede o tamanho máximo permitido", "Divida o arquivo em partes menores", "FILE001"}},
	{sheet.ErrUnsupportedFileType, UserMessage{"Tipo de arquivo não suportado", "Envie um arquivo .xlsx, .xls ou .csv", "FILE002"}},
	{sheet.ErrMalformed, UserMessage{"Não foi possível ler o arquivo", "Verifique se o arquivo não está corrompido e tente novamente", "FILE002"}},
	{ErrNoFile, UserMessage{"Nenhum arquivo selecionado", "Selecione um arquivo para enviar", "FILE004"}},
	{dupes.ErrEmptyTable, UserMessage{"A planilha está vazia", "Envie uma planilha com pelo menos uma linha de dados", "FILE005"}},
	{sheet.ErrNoSheets, UserMessage{"A pasta de trabalho não tem planilhas", "Verifique o arquivo e tente novamente", "FILE006"}},
	{photozip.ErrUnsupportedPhoto, UserMessage{"A foto deve ser JPEG ou PNG", "Escolha outra imagem ou use uma silhueta", "FILE007"}},
	{dupes.ErrHeaderRequired, UserMessage{"A comparação por colunas exige uma linha de cabeçalho", "Marque que a planilha tem cabeçalho ou compare linhas inteiras", "VAL002"}},
	{photozip.ErrNoNames, UserMessage{"Nenhum nome informado", "Insira pelo menos um nome, um por linha", "VAL003"}},
	{ErrEmptyInput, UserMessage{"Nenhum texto informado", "Cole o texto a ser processado", "VAL004"}},
	{ErrTooManyLines, UserMessage{"O texto tem linhas demais para esta ferramenta", "Divida a lista em partes menores", "VAL005"}},
	{photozip.ErrUnknownSilhouette, UserMessage{"Foto não encontrada", "Selecione uma das fotos disponíveis", "VAL006"}},
	{gender.ErrService, UserMessage{"O serviço de detecção de gênero não respondeu", "Tente novamente em alguns minutos", "GEN001"}},
	{ErrGenderDisabled, UserMessage{"A detecção de gênero está desativada", "Peça ao administrador para configurar o serviço", "GEN002"}},
	{ErrTooManyJobs, UserMessage{"O sistema está ocupado processando outros pedidos", "Aguarde um momento e tente novamente", "JOB001"}},
	{context.Canceled, UserMessage{"A operação foi cancelada", "Tente novamente", "JOB002"}},
	{context.DeadlineExceeded, UserMessage{"A operação excedeu o tempo limite", "Tente com uma entrada menor", "JOB003"}},
	{ErrUnknownTool, UserMessage{"Ferramenta não encontrada", "Volte à página inicial e escolha uma ferramenta", "TOOL001"}},
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catch errors from libraries that expose no sentinel. Matching
// is case-insensitive on the error text.
var errorPatterns = []errorPattern{
	{"request body too large", UserMessage{"O arquivo excede o tamanho máximo permitido", "Divida o arquivo em partes menores", "FILE001"}},
	{"encoding error", UserMessage{"O arquivo contém caracteres inválidos", "Salve o arquivo com codificação UTF-8", "FILE003"}},
	{"invalid utf-8", UserMessage{"O arquivo contém caracteres inválidos", "Salve o arquivo com codificação UTF-8", "FILE003"}},
	{"no such file", UserMessage{"Nenhum arquivo selecionado", "Selecione um arquivo para enviar", "FILE004"}},
	{"invalid json", UserMessage{"Corpo da requisição inválido", "Envie um JSON com os campos esperados", "VAL007"}},
	{"invalid header mode", UserMessage{"Opção de cabeçalho inválida", "Escolha uma das opções de cabeçalho da lista", "VAL007"}},
	{"rate limit", UserMessage{"Muitas requisições", "Aguarde um momento antes de tentar novamente", "RATE001"}},
}

var defaultMessage = UserMessage{
	Message: "Ocorreu um erro inesperado",
	Action:  "Tente novamente. Se o problema continuar, informe o código ao suporte",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
// A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var missing *dupes.MissingColumnsError
	if errors.As(err, &missing) {
		return UserMessage{
			Message: "Colunas obrigatórias ausentes: " + strings.Join(missing.Columns, ", "),
			Action:  "Verifique se o cabeçalho da planilha contém todas as colunas exigidas",
			Code:    "VAL001",
		}
	}

	for _, m := range errorTargets {
		if errors.Is(err, m.target) {
			return m.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders "Message (Código: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message. Error returns the
// user message; Unwrap returns the technical error for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
