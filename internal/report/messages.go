package report

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("pt", l10n.LexiconMap{
		// create, exists
		"File created successfully!": "Arquivo criado com sucesso!",
		"File name: %s":              "Nome do arquivo: %s",
		"Path: %s":                   "Path: %s",
		"File already exists...":     "Arquivo já existe...",
		"File already exists.":       "Arquivo já existe.",
		"Error creating the file...": "Erro ao criar o arquivo...",

		// perms
		"The file can be read.":       "O arquivo pode ser lido.",
		"The file cannot be read.":    "O arquivo não pode ser lido.",
		"The file can be written.":    "O arquivo pode ser escrito.",
		"The file cannot be written.": "O arquivo não pode ser escrito.",

		// classify
		"Enter a file/directory name: ":        "Digite um nome de arquivo/diretório: ",
		"You entered the name of a file.":      "Você digitou o nome de um arquivo.",
		"You entered the name of a directory.": "Você digitou o nome de um diretório.",
		"No name was entered.":                 "Nenhum nome foi digitado.",

		// write, read
		"An error occurred while writing to the file...": "Ocorreu um erro ao escrever no arquivo...",
		"An error occurred...":                           "Ocorreu um erro...",

		// history
		"No runs recorded.": "Nenhuma execução registrada.",

		// config
		"Configuration initialized at %s": "Configuração inicializada em %s",
		"Configuration from %s:":          "Configuração de %s:",
	})
}
