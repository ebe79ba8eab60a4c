package navigation

import (
	"path"
	"strings"

	"finitefield.org/apotek-admin/internal/admin/rbac"
)

// MenuItem is a single sidebar link.
type MenuItem struct {
	Key         string
	Label       string
	Icon        string
	Capability  rbac.Capability
	Href        string
	Pattern     string
	MatchPrefix bool
}

// MenuGroup groups related sidebar links under a heading. An empty Label renders the items without a heading.
type MenuGroup struct {
	Key        string
	Label      string
	Capability rbac.Capability
	Items      []MenuItem
}

// BuildMenu returns the sidebar structure with links resolved against basePath.
func BuildMenu(basePath string) []MenuGroup {
	link := func(key, label, icon string, capability rbac.Capability, route string) MenuItem {
		href := Join(basePath, route)
		return MenuItem{
			Key:         key,
			Label:       label,
			Icon:        icon,
			Capability:  capability,
			Href:        href,
			Pattern:     href,
			MatchPrefix: true,
		}
	}

	return []MenuGroup{
		{
			Key: "main",
			Items: []MenuItem{
				link("dashboard", "Dashboard", "layout-dashboard", rbac.CapDashboardView, "/dashboard"),
			},
		},
		{
			Key:   "obat",
			Label: "Obat",
			Items: []MenuItem{
				link("resep", "Resep", "file-text", rbac.CapResepView, "/resep"),
				link("qr", "QR Code", "qr-code", rbac.CapQRView, "/qr"),
			},
		},
		{
			Key:   "master",
			Label: "Master Data",
			Items: []MenuItem{
				link("jenis-obat", "Jenis Obat", "box", rbac.CapJenisObatView, "/jenis-obat"),
				link("supplier", "Supplier", "truck", rbac.CapSupplierView, "/supplier"),
			},
		},
		{
			Key:        "bantuan",
			Label:      "Bantuan",
			Capability: rbac.CapHelpView,
			Items: []MenuItem{
				link("faq", "FAQ", "help-circle", rbac.CapHelpView, "/faq"),
				link("dokumentasi", "Dokumentasi", "book-open", rbac.CapHelpView, "/dokumentasi"),
			},
		},
	}
}

// Join resolves route against basePath, always yielding a rooted, clean path.
func Join(basePath, route string) string {
	base := strings.TrimSpace(basePath)
	if base == "" {
		base = "/"
	}
	joined := path.Join("/", base, route)
	if strings.HasSuffix(route, "/") && strings.Trim(route, "/") != "" {
		joined += "/"
	}
	return joined
}
