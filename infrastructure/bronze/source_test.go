package bronze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestSource_Interactions(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		wantIDs       []string
		wantMalformed int
	}{
		{
			name: "Linhas válidas são lidas na ordem do arquivo",
			content: `{"id":"i1","manager_id":"m1","client_id":"c1","timestamp":"2025-11-03T10:00:00Z"}
{"id":"i2","manager_id":"m1","client_id":"c2","timestamp":"2025-11-03T11:00:00Z"}
`,
			wantIDs: []string{"i1", "i2"},
		},
		{
			name: "Linha malformada é pulada e contada, não aborta",
			content: `{"id":"i1","manager_id":"m1","client_id":"c1","timestamp":"2025-11-03T10:00:00Z"}
{isso não é json}
{"id":"i2","manager_id":"m1","client_id":"c1","timestamp":"2025-11-03T12:00:00Z"}
`,
			wantIDs:       []string{"i1", "i2"},
			wantMalformed: 1,
		},
		{
			name: "Registro sem id conta como malformado",
			content: `{"manager_id":"m1","client_id":"c1","timestamp":"2025-11-03T10:00:00Z"}
{"id":"i1","manager_id":"m1","client_id":"c1","timestamp":"2025-11-03T10:00:00Z"}
`,
			wantIDs:       []string{"i1"},
			wantMalformed: 1,
		},
		{
			name: "ID duplicado: a última linha vence",
			content: `{"id":"i1","manager_id":"m1","client_id":"c1","timestamp":"2025-11-03T10:00:00Z"}
{"id":"i1","manager_id":"m2","client_id":"c1","timestamp":"2025-11-03T10:30:00Z"}
`,
			wantIDs: []string{"i1"},
		},
		{
			name:    "Linhas em branco são ignoradas sem contar como malformadas",
			content: "\n{\"id\":\"i1\",\"manager_id\":\"m1\",\"client_id\":\"c1\",\"timestamp\":\"2025-11-03T10:00:00Z\"}\n\n",
			wantIDs: []string{"i1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFixture(t, dir, InteractionsFile, tt.content)

			records, malformed, err := NewSource(dir).Interactions()
			require.NoError(t, err)

			ids := make([]string, 0, len(records))
			for _, r := range records {
				ids = append(ids, r.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantMalformed, malformed)
		})
	}
}

func TestSource_Interactions_DuplicadoMantemUltimoRegistro(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, InteractionsFile, `{"id":"i1","manager_id":"antigo","client_id":"c1","timestamp":"2025-11-03T10:00:00Z"}
{"id":"i1","manager_id":"novo","client_id":"c1","timestamp":"2025-11-03T10:30:00Z"}
`)

	records, _, err := NewSource(dir).Interactions()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "novo", records[0].ManagerID)
}

func TestSource_Users(t *testing.T) {
	t.Run("Mapa id para nome", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, UsersFile, `{"id":"m1","name":"Ana Souza"}
{"id":"m2","name":"Bruno Lima"}
`)

		users, err := NewSource(dir).Users()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"m1": "Ana Souza", "m2": "Bruno Lima"}, users)
	})

	t.Run("Arquivo ausente devolve mapa vazio", func(t *testing.T) {
		users, err := NewSource(t.TempDir()).Users()
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestSource_ArquivoInexistente(t *testing.T) {
	_, _, err := NewSource(t.TempDir()).Interactions()
	assert.Error(t, err)
}
