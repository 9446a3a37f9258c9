package shell

import "github.com/m-mizutani/modassign/pkg/domain/interfaces"

// Icons resolves module icons bundled with the app
type Icons struct {
	base string
}

var _ interfaces.IconLookup = (*Icons)(nil)

// NewIcons creates an icon lookup rooted at base, "assets/img/mod" when empty
func NewIcons(base string) *Icons {
	if base == "" {
		base = "assets/img/mod"
	}
	return &Icons{base: base}
}

// GetModuleIconSrc returns the icon path of modName
func (i *Icons) GetModuleIconSrc(modName string) string {
	if modName == "" {
		modName = "external-tool"
	}
	return i.base + "/" + modName + ".svg"
}
