package notifications

import "time"

type Notificacion struct {
	ID         string    `json:"id"`
	EmpleadoID string    `json:"empleadoId"`
	Tipo       string    `json:"tipo"`
	Titulo     string    `json:"titulo"`
	Cuerpo     string    `json:"cuerpo"`
	Leida      bool      `json:"leida"`
	CreatedAt  time.Time `json:"createdAt"`
}
