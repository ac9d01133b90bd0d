package domain

// ContactType diferencia empresas de pessoas no cadastro do CRM.
type ContactType string

const (
	ContactTypeCompany ContactType = "Company"
	ContactTypePerson  ContactType = "Person"
)

// RawContact é o registro bruto de contato exportado do CRM.
type RawContact struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Name            *string `json:"name"`
	ParentCompanyID *string `json:"parent_company_id"`
}

// Contact é a forma tipada (camada silver) de um contato.
// ParentCompanyID só é preenchido para pessoas; vazio significa que a
// pessoa ainda não foi vinculada a uma empresa (gap conhecido do cadastro).
type Contact struct {
	ID              string `json:"id" parquet:"id"`
	Type            string `json:"type" parquet:"type"`
	Name            string `json:"name" parquet:"name"`
	ParentCompanyID string `json:"parent_company_id" parquet:"parent_company_id"`
}

// IsCompany indica se o contato é uma empresa.
func (c Contact) IsCompany() bool {
	return ContactType(c.Type) == ContactTypeCompany
}

// IsPerson indica se o contato é uma pessoa.
func (c Contact) IsPerson() bool {
	return ContactType(c.Type) == ContactTypePerson
}
