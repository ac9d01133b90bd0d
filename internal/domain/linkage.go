package domain

// ClientResolution classifica a referência de cliente de uma interação.
// O vínculo Pessoa→Empresa é um gap conhecido do cadastro: a resolução é
// polimórfica e linhas não resolvidas são métrica de primeira classe, nunca
// descartadas em silêncio.
type ClientResolution string

const (
	// ResolutionCompany: a referência aponta direto para uma empresa.
	ResolutionCompany ClientResolution = "company"
	// ResolutionPerson: aponta para uma pessoa com empresa-mãe cadastrada.
	ResolutionPerson ClientResolution = "person"
	// ResolutionPersonMissingCompany: pessoa sem empresa-mãe cadastrada.
	ResolutionPersonMissingCompany ClientResolution = "person_missing_company"
	// ResolutionUnknown: a referência não resolve para nenhum contato.
	ResolutionUnknown ClientResolution = "unknown"
)

// LinkageReport é o relatório de cobertura de vínculo entre interações e o
// cadastro de contatos. Somente leitura: nenhuma ação corretiva é tomada —
// buscar pessoas e mapear Pessoa→Empresa é trabalho futuro declarado.
type LinkageReport struct {
	RunDate              string  `json:"run_date"`
	TotalInteractions    int     `json:"total_interactions"`
	CompanyLinked        int     `json:"company_linked"`
	PersonLinked         int     `json:"person_linked"`
	PersonMissingCompany int     `json:"person_missing_company"`
	UnknownReference     int     `json:"unknown_reference"`
	CompanyLinkedPct     float64 `json:"company_linked_pct"`
	UnresolvedPct        float64 `json:"unresolved_pct"`
}

// Unresolved soma as referências que não chegam a uma empresa conhecida.
func (r LinkageReport) Unresolved() int {
	return r.PersonMissingCompany + r.UnknownReference
}
