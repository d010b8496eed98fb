package settings

// Group and option names of the BlockArt settings.
const (
	GroupName = "_blockart_settings"

	CSSPrintMethod    = "_blockart_dynamic_css_print_method"
	WidgetCSS         = "_blockart_widget_css"
	FooterTextRated   = "_blockart_admin_footer_text_rated"
	DefaultCSSPrinter = "internal-css"
)

// BlockArt returns the three BlockArt settings in registration order.
func BlockArt() []Setting {
	return []Setting{
		{
			Group:         GroupName,
			Name:          CSSPrintMethod,
			Type:          TypeString,
			Description:   "How generated block CSS is printed (internal-css or external-css).",
			ShowInREST:    true,
			Default:       DefaultCSSPrinter,
			Sanitize:      SanitizeTextField,
			SanitizerName: "text-field",
		},
		{
			Group:       GroupName,
			Name:        WidgetCSS,
			Type:        TypeString,
			Description: "Cached CSS generated for block widgets.",
			ShowInREST:  true,
			Default:     "",
		},
		{
			Group:         GroupName,
			Name:          FooterTextRated,
			Type:          TypeBoolean,
			Description:   "Whether the admin footer rating notice was acknowledged.",
			ShowInREST:    true,
			Default:       false,
			Sanitize:      SanitizeBoolean,
			SanitizerName: "boolean",
		},
	}
}
