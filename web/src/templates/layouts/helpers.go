package layouts

const appName = "Atelier"

// CalculateTitle appends the application name to a page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - " + appName
	}
	return appName
}
