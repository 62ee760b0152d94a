package styles

// NewDefaultTheme creates the dark theme.
func NewDefaultTheme() *Theme {
	return &Theme{
		Name:   "default",
		IsDark: true,

		Primary:   ParseHex("#61afef"),
		Secondary: ParseHex("#56b6c2"),
		Tertiary:  ParseHex("#3e4451"),
		Accent:    ParseHex("#c678dd"),
		Private:   ParseHex("#a57ee8"), // Private browsing purple

		BgBase:    ParseHex("#1e1e1e"),
		BgSubtle:  ParseHex("#252526"),
		BgOverlay: ParseHex("#2d2d30"),

		FgBase:   ParseHex("#abb2bf"),
		FgMuted:  ParseHex("#7f848e"),
		FgSubtle: ParseHex("#5c6370"),

		Border:      ParseHex("#3e4451"),
		BorderFocus: ParseHex("#61afef"),

		Success: ParseHex("#98c379"),
		Error:   ParseHex("#e06c75"),
		Warning: ParseHex("#e5c07b"),
		Info:    ParseHex("#61afef"),
	}
}

// NewLightTheme creates a light theme for bright terminals.
func NewLightTheme() *Theme {
	return &Theme{
		Name:   "light",
		IsDark: false,

		Primary:   ParseHex("#0b63c5"),
		Secondary: ParseHex("#0f7b8a"),
		Tertiary:  ParseHex("#d0d7de"),
		Accent:    ParseHex("#8250df"),
		Private:   ParseHex("#6f42c1"),

		BgBase:    ParseHex("#ffffff"),
		BgSubtle:  ParseHex("#f6f8fa"),
		BgOverlay: ParseHex("#eaeef2"),

		FgBase:   ParseHex("#24292f"),
		FgMuted:  ParseHex("#57606a"),
		FgSubtle: ParseHex("#8c959f"),

		Border:      ParseHex("#d0d7de"),
		BorderFocus: ParseHex("#0b63c5"),

		Success: ParseHex("#1a7f37"),
		Error:   ParseHex("#cf222e"),
		Warning: ParseHex("#9a6700"),
		Info:    ParseHex("#0b63c5"),
	}
}
