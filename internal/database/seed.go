package database

import (
	"supergp/internal/models"
	"supergp/logging"

	"gorm.io/gorm"
)

// Championship categories in listing order, grouped by section. Prices default
// to 100000 COP except where noted.
var seedGroups = []struct {
	Nombre     string
	Categorias []string
}{
	{"VELOCIDAD TOP", []string{
		"115cc Elite",
		"150cc 2T",
		"SuperMoto",
		"115cc Novatos",
		"Hasta 220 4T Elite",
	}},
	{"VELOCIDAD", []string{
		"115cc Master",
		"115cc Principiantes",
		"Infantil hasta 150 4T y 100cc 2T no racer",
		"Hasta 220 4T Novatos",
		"Ax 100 Novatos",
		"(GP1) motos 4T hasta 160cc",
		"Ax100, NKD, Scooter Novatos",
		"Minimotard",
		"Libre Cilindraje (No Supermoto)",
	}},
	{"VELOCIDAD RECREATIVAS", []string{
		"Clientes Liquimoly hasta 200cc 4T (promo compra mínima)",
		"Clientes LiquiMoly Libre cilindraje 4T (promo compra mínima)",
		"Fórmula Colombia motos carenadas",
		"Alto cilindraje + 300cc 4T",
		"Pilotos LICAMO (Inscripción $40.000)",
		"Crypton Original Novatos (llantas no Slick)",
		"Boxer CT 100/ NKD 125 Recreativa RPDD",
		"150cc 4T Stock Multimarca Recreativa RPDD",
		"200 4T Stock Multimarca No Slick Recreativa RPDD",
		"Femenina libre 4t hasta 200cc",
	}},
	{"KARTS", []string{
		"Directos (sin cambios)",
		"Shifter, Dd2 (con cambios)",
	}},
	{"VELOTIERRA", []string{
		"Velotierra hasta 85cc 2T o 150cc 4T",
		"Velotierra Libre desde 125cc 2T y 250 4T",
	}},
	{"MOTOCROSS", []string{
		"Motocross hasta 85cc 2T o 150cc 4T",
		"Motocross Libre desde 125cc 2T y 250 4T",
	}},
}

var seedPriceOverrides = map[string]float64{
	"Pilotos LICAMO (Inscripción $40.000)": 40000,
}

var seedSettings = map[string]string{
	"hero_title":       "CAMPEONATO INTERLIGAS",
	"hero_subtitle":    "SUPER GP",
	"hero_description": "Vive la emoción del motociclismo extremo",
	"event_start_date": "20 de Febrero 2026",
	"event_end_date":   "22 de Febrero 2026",
	"event_location":   "Corona Club XP, Popayán",
	"footer_email":     "contacto@coronaclubxp.com",
	"footer_phone":     "+57 300 123 4567",
	"footer_address":   "Avenida Panamericana, Km 9 El Cofre",
	"instagram_url":    "https://instagram.com/coronaclubxp",
	"facebook_url":     "https://facebook.com/coronaclubxp",
	"gallery_images":   "[]",
}

// SeedDefaults inserts the category table, groups, the singleton platform and
// event payment config rows and default site settings when missing. Existing
// rows are never overwritten so admin edits survive restarts.
func SeedDefaults(db *gorm.DB) {
	pos := 0
	for gi, g := range seedGroups {
		var count int64
		db.Model(&models.CategoryGroup{}).Where("nombre = ?", g.Nombre).Count(&count)
		if count == 0 {
			if err := db.Create(&models.CategoryGroup{Nombre: g.Nombre, Categorias: g.Categorias, Posicion: gi}).Error; err != nil {
				logging.Log.WithError(err).Warnf("seed: group %q", g.Nombre)
			}
		}
		for _, cat := range g.Categorias {
			pos++
			db.Model(&models.CategoryPrice{}).Where("nombre = ?", cat).Count(&count)
			if count != 0 {
				continue
			}
			precio := 100000.0
			if p, ok := seedPriceOverrides[cat]; ok {
				precio = p
			}
			if err := db.Create(&models.CategoryPrice{Nombre: cat, Precio: precio, Posicion: pos}).Error; err != nil {
				logging.Log.WithError(err).Warnf("seed: category %q", cat)
			}
		}
	}

	var cfgCount int64
	db.Model(&models.PlatformConfig{}).Count(&cfgCount)
	if cfgCount == 0 {
		db.Create(&models.PlatformConfig{CommissionMode: "percentage", CommissionValue: 5})
	}
	db.Model(&models.EventPaymentConfig{}).Count(&cfgCount)
	if cfgCount == 0 {
		db.Create(&models.EventPaymentConfig{})
	}

	for k, v := range seedSettings {
		var count int64
		db.Model(&models.SiteSetting{}).Where("`key` = ?", k).Count(&count)
		if count == 0 {
			db.Create(&models.SiteSetting{Key: k, Value: v})
		}
	}
}
