package assets

import (
	"embed"

	"fyne.io/fyne/v2"
)

//go:embed logo.png
var assetsFS embed.FS

// GetLogoResource returns the application logo for Fyne.
func GetLogoResource() fyne.Resource {
	data, err := assetsFS.ReadFile("logo.png")
	if err != nil {
		return nil
	}
	return fyne.NewStaticResource("logo.png", data)
}
