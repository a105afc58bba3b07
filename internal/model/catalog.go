package model

import "github.com/samber/lo"

// Service identifies one of the mentorship programs offered on the site.
type Service string

const (
	ServiceMujerTukuyConRumbo Service = "mujer-tukuy-con-rumbo"
	ServiceTukuyRenace        Service = "tukuy-renace"
	ServiceTukuyExperiencias  Service = "tukuy-experiencias"
	ServiceConsultaGeneral    Service = "consulta-general"
)

var serviceLabels = map[Service]string{
	ServiceMujerTukuyConRumbo: "Mujer Tukuy con Rumbo",
	ServiceTukuyRenace:        "Tukuy Renace",
	ServiceTukuyExperiencias:  "Tukuy Experiencias",
	ServiceConsultaGeneral:    "Consulta general",
}

// Services returns every known service in display order.
func Services() []Service {
	return []Service{
		ServiceMujerTukuyConRumbo,
		ServiceTukuyRenace,
		ServiceTukuyExperiencias,
		ServiceConsultaGeneral,
	}
}

// Valid reports whether s belongs to the closed service set.
func (s Service) Valid() bool {
	return lo.Contains(Services(), s)
}

// Label returns the human readable name. The empty service is reported as
// a general inquiry.
func (s Service) Label() string {
	if label, ok := serviceLabels[s]; ok {
		return label
	}
	return serviceLabels[ServiceConsultaGeneral]
}

// Modality is how a program is delivered.
type Modality string

const (
	ModalityPresencial Modality = "presencial"
	ModalityVirtual    Modality = "virtual"
	ModalityHibrida    Modality = "hibrida"
)

var modalityLabels = map[Modality]string{
	ModalityPresencial: "Presencial",
	ModalityVirtual:    "Virtual",
	ModalityHibrida:    "Híbrida",
}

// Modalities returns every known modality in display order.
func Modalities() []Modality {
	return []Modality{ModalityPresencial, ModalityVirtual, ModalityHibrida}
}

func (m Modality) Valid() bool {
	return lo.Contains(Modalities(), m)
}

func (m Modality) Label() string {
	return modalityLabels[m]
}
