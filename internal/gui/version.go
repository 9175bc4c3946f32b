package gui

// Application information for Beejlander
const (
	// AppName is the application name
	AppName = "Beejlander"

	// AppID is the fyne application ID, used for preferences storage
	AppID = "com.github.ramonehamilton.beejlander"

	// Attribution is shown in the window footer
	Attribution = "Card data provided by Scryfall"

	// GitHubURL is the project repository URL
	GitHubURL = "https://github.com/ramonehamilton/beejlander"

	// IssuesURL is the issue tracker URL
	IssuesURL = "https://github.com/ramonehamilton/beejlander/issues"

	// ScryfallURL is the card data source
	ScryfallURL = "https://scryfall.com"
)
