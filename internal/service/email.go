package service

import (
	"fmt"
	"strconv"
	"strings"

	"supergp/internal/models"
)

func formatCOP(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64) + " COP"
}

// buildConfirmationEmail renders the confirmation sent once per completed
// registration, carrying the QR the pilot presents at the gate.
func buildConfirmationEmail(reg *models.Registration, qrImage string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><style>
body { font-family: Arial, sans-serif; background: #f5f5f5; padding: 20px; }
.container { max-width: 600px; margin: 0 auto; background: white; padding: 40px; border-radius: 10px; }
.header { background: #FF0000; color: white; padding: 20px; text-align: center; border-radius: 5px; }
.content { padding: 30px 0; }
.qr { text-align: center; margin: 20px 0; }
.total { background: #00CED1; color: white; padding: 15px; border-radius: 5px; }
</style></head><body><div class="container">`)
	b.WriteString(`<div class="header"><h1>🏍️ Super GP Corona XP 2026</h1></div>`)
	b.WriteString(`<div class="content">`)
	fmt.Fprintf(&b, `<h2>¡Inscripción Confirmada, %s %s!</h2>`, reg.Nombre, reg.Apellido)
	fmt.Fprintf(&b, `<p><strong>Número de competición:</strong> %s</p>`, reg.NumeroCompeticion)
	fmt.Fprintf(&b, `<p><strong>Categorías:</strong> %s</p>`, strings.Join(reg.Categorias, ", "))
	if reg.Liga != "" {
		fmt.Fprintf(&b, `<p><strong>Liga:</strong> %s</p>`, reg.Liga)
	}
	fmt.Fprintf(&b, `<div class="total"><strong>Total pagado:</strong> %s</div>`, formatCOP(reg.PrecioFinal))
	if qrImage != "" {
		fmt.Fprintf(&b, `<div class="qr"><p>Presenta este código QR el día del evento:</p><img src="%s" alt="QR" width="256" height="256"/></div>`, qrImage)
	}
	fmt.Fprintf(&b, `<p style="color:#666;font-size:12px;">Código de verificación: %s</p>`, reg.QRCode)
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}
