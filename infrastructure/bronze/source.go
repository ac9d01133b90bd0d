// Package bronze lê os registros brutos exportados do CRM: arquivos JSONL
// append-only, um objeto por linha, um arquivo por entidade.
package bronze

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Nomes dos arquivos de entrada dentro do diretório bronze.
const (
	InteractionsFile = "interactions.jsonl"
	ContactsFile     = "contacts.jsonl"
	DealsFile        = "deals.jsonl"
	UsersFile        = "users.jsonl"
)

// Linhas de e-mail com corpo colado podem passar longe do buffer padrão
// do bufio.Scanner.
const maxLineSize = 4 * 1024 * 1024

// Source lê as entidades do diretório bronze. Linhas malformadas são
// puladas e contadas, nunca abortam a leitura; IDs duplicados dentro do
// arquivo: a última linha vence.
type Source struct {
	dir string
}

func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Interactions lê o log de interações. Retorna os registros e a contagem
// de linhas malformadas.
func (s *Source) Interactions() ([]domain.RawInteraction, int, error) {
	return readEntity[domain.RawInteraction](s.path(InteractionsFile), func(r domain.RawInteraction) string { return r.ID })
}

// Contacts lê o cadastro de contatos (empresas e pessoas).
func (s *Source) Contacts() ([]domain.RawContact, int, error) {
	return readEntity[domain.RawContact](s.path(ContactsFile), func(r domain.RawContact) string { return r.ID })
}

// Deals lê os negócios exportados.
func (s *Source) Deals() ([]domain.RawDeal, int, error) {
	return readEntity[domain.RawDeal](s.path(DealsFile), func(r domain.RawDeal) string { return r.ID })
}

// Users lê o arquivo auxiliar de usuários (gestores) e devolve o mapa
// id → nome usado nos joins de identidade.
func (s *Source) Users() (map[string]string, error) {
	users, malformed, err := readEntity[domain.CRMUser](s.path(UsersFile), func(r domain.CRMUser) string { return r.ID })
	if err != nil {
		if os.IsNotExist(err) {
			// Arquivo auxiliar é opcional; sem ele o nome fica vazio.
			return map[string]string{}, nil
		}
		return nil, err
	}

	if malformed > 0 {
		logrus.WithField("malformed", malformed).Warn("Linhas malformadas no arquivo de usuários do CRM")
	}

	byID := make(map[string]string, len(users))
	for _, u := range users {
		byID[u.ID] = u.Name
	}

	return byID, nil
}

func (s *Source) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readEntity decodifica um JSONL linha a linha. Registros sem ID também
// contam como malformados: sem identidade não há deduplicação possível.
func readEntity[T any](path string, idOf func(T) string) ([]T, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	records := make([]T, 0)
	index := make(map[string]int)
	malformed := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record T
		if err := json.Unmarshal(line, &record); err != nil {
			malformed++
			logrus.WithFields(logrus.Fields{
				"file": filepath.Base(path),
				"line": lineNo,
			}).Warn("Linha malformada ignorada")
			continue
		}

		id := idOf(record)
		if id == "" {
			malformed++
			logrus.WithFields(logrus.Fields{
				"file": filepath.Base(path),
				"line": lineNo,
			}).Warn("Registro sem id ignorado")
			continue
		}

		if pos, exists := index[id]; exists {
			records[pos] = record
			continue
		}

		index[id] = len(records)
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, malformed, fmt.Errorf("erro ao ler %s: %w", filepath.Base(path), err)
	}

	return records, malformed, nil
}
