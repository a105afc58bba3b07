package validation

// reason returns the Spanish message shown for a failed rule.
func reason(field, tag string) string {
	switch field {
	case "name":
		if tag == "max" {
			return "El nombre no puede exceder 100 caracteres"
		}
		return "El nombre debe tener al menos 2 caracteres"
	case "email":
		if tag == "max" {
			return "El email no puede exceder 255 caracteres"
		}
		return "El email no es válido"
	case "message":
		if tag == "max" {
			return "El mensaje no puede exceder 2000 caracteres"
		}
		return "El mensaje debe tener al menos 10 caracteres"
	case "whatsapp":
		return "Número de WhatsApp inválido"
	case "service":
		return "Servicio no válido"
	case "modality":
		return "Modalidad no válida"
	default:
		return "Valor inválido"
	}
}
