package costing

// Códigos canônicos da taxonomia de rubricas, alinhados com a carga padrão
// de tipos_custo. O motor despacha por código apenas dentro da categoria;
// rubricas desconhecidas de uma categoria caem no cálculo genérico dela.
const (
	RubricSalario    = "SALARIO"
	RubricHonorarios = "HONORARIOS"
	RubricHE50       = "HE50"
	RubricHE100      = "HE100"
	RubricDSR        = "DSR"

	RubricVT         = "VT"
	RubricVR         = "VR"
	RubricVA         = "VA"
	RubricSaude      = "SAUDE"
	RubricOdonto     = "ODONTO"
	RubricVida       = "VIDA"
	RubricHomeOffice = "HOME_OFFICE"
	RubricCreche     = "CRECHE"
)
