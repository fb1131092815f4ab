package entity

import "encoding/json"

// Icon identificador del ícono que el frontend dibuja para un producto.
type Icon int

const (
	IconBot Icon = iota
	IconMessageSquare
	IconPhone
	IconCalendar
	IconTarget
	IconStar
	IconShare2
	IconMail
	IconLayers
	IconZap
	IconRocket
)

// iconNames tabla explícita ícono → nombre del componente en el frontend.
var iconNames = map[Icon]string{
	IconBot:           "Bot",
	IconMessageSquare: "MessageSquare",
	IconPhone:         "Phone",
	IconCalendar:      "Calendar",
	IconTarget:        "Target",
	IconStar:          "Star",
	IconShare2:        "Share2",
	IconMail:          "Mail",
	IconLayers:        "Layers",
	IconZap:           "Zap",
	IconRocket:        "Rocket",
}

// String devuelve el nombre del ícono; los valores fuera de la tabla caen en "Bot".
func (i Icon) String() string {
	if name, ok := iconNames[i]; ok {
		return name
	}
	return iconNames[IconBot]
}

// MarshalJSON serializa el ícono por nombre.
func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}
