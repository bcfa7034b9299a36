// Package tools registers every tool with the core registry.
// Import this package to ensure all tools are registered.
package tools

// Groups shown on the dashboard.
const (
	groupText  = "Texto"
	groupDocs  = "Documentos"
	groupNames = "Nomes"
	groupLists = "Listas"
	groupFiles = "Arquivos"
)
