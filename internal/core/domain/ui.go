package domain

import "time"

// UIState mirrors the dashboard's shared visual flags.
type UIState struct {
	Loading     bool `json:"loading"`
	SidebarOpen bool `json:"sidebarOpen"`
	ModalOpen   bool `json:"modalOpen"`
}

type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyInfo    NotificationLevel = "info"
	NotifyWarn    NotificationLevel = "warn"
	NotifyError   NotificationLevel = "error"
)

// Notification is a transient, non-blocking message for the operator.
type Notification struct {
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"createdAt"`
}

// MenuItem is one sidebar entry. Empty Roles means visible to everyone.
type MenuItem struct {
	Label string   `json:"label"`
	Href  string   `json:"href"`
	Roles []string `json:"-"`
}

var sidebarMenu = []MenuItem{
	{Label: "Início", Href: "/"},
	{Label: "Usuários", Href: "/usuarios", Roles: []string{ProfileAdmin}},
	{Label: "Vendedores", Href: "/vendedores"},
	{Label: "Cobradores", Href: "/cobradores", Roles: []string{ProfileAdmin}},
	{Label: "Resultado", Href: "/resultado"},
	{Label: "Impressão", Href: "/impressao"},
	{Label: "Envio para impressão", Href: "/envioparaimpressao"},
	{Label: "Perfil", Href: "/configuracoes/perfil"},
	{Label: "Sistema", Href: "/configuracoes/sistema"},
}

// MenuFor returns the sidebar entries visible to the given session.
func MenuFor(s *Session) []MenuItem {
	items := make([]MenuItem, 0, len(sidebarMenu))
	for _, it := range sidebarMenu {
		if len(it.Roles) > 0 && !s.HasProfile(it.Roles...) {
			continue
		}
		items = append(items, it)
	}
	return items
}
