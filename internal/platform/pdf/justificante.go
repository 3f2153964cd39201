package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"sirh/internal/domain/empleados"
	"sirh/internal/domain/requests"
)

// RenderJustificante produces the printable slip the employee signs and
// delivers to the office.
func RenderJustificante(j requests.Justificante, emp empleados.Empleado) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(tr("Justificante "+j.Tipo), false)
	doc.AddPage()

	doc.SetFont("Arial", "B", 14)
	doc.CellFormat(0, 10, tr("Secretaría de Educación Pública del Estado"), "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, tr("Justificante de Inasistencia"), "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Arial", "", 11)
	campo := func(etiqueta, valor string) {
		doc.SetFont("Arial", "B", 11)
		doc.CellFormat(55, 8, tr(etiqueta), "", 0, "L", false, 0, "")
		doc.SetFont("Arial", "", 11)
		doc.MultiCell(0, 8, tr(valor), "", "L", false)
	}

	campo("Folio:", j.ID)
	campo("Nombre:", emp.NombreCompleto)
	campo("Clave(s) presupuestal(es):", emp.ClavesPresupuestales)
	campo("Adscripción:", emp.Adscripcion)
	campo("Número de asistencia:", emp.NumeroAsistencia)
	campo("Horario:", emp.Horario)
	campo("Tipo de justificante:", j.Tipo)
	if j.FechaInicio.Equal(j.FechaFin) {
		campo("Fecha:", formatoFecha(j.FechaInicio))
	} else {
		campo("Periodo:", fmt.Sprintf("%s al %s (%d días hábiles)",
			formatoFecha(j.FechaInicio), formatoFecha(j.FechaFin), j.DiasSolicitados))
	}
	if j.Lugar != "" {
		campo("Lugar de comisión:", j.Lugar)
	}
	if j.Motivo != "" {
		campo("Motivo:", j.Motivo)
	}
	campo("Estado:", j.Estado)

	doc.Ln(24)
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(90, 8, tr("__________________________"), "", 0, "C", false, 0, "")
	doc.CellFormat(90, 8, tr("__________________________"), "", 1, "C", false, 0, "")
	doc.CellFormat(90, 6, tr("Firma del interesado"), "", 0, "C", false, 0, "")
	doc.CellFormat(90, 6, tr("Visto bueno"), "", 1, "C", false, 0, "")

	doc.Ln(10)
	doc.SetFont("Arial", "I", 8)
	doc.CellFormat(0, 6, tr("Generado el "+formatoFecha(j.CreatedAt)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("generando pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatoFecha(t time.Time) string {
	return t.Format("02/01/2006")
}
