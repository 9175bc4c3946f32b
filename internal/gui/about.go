package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ramonehamilton/beejlander/internal/version"
)

// showAboutDialog displays the About dialog with app information and links.
func (a *App) showAboutDialog() {
	titleText := widget.NewRichTextFromMarkdown(fmt.Sprintf("# %s\n## Version %s", AppName, version.GetVersion()))

	descText := widget.NewLabel("Draws a random budget card pool from Scryfall\nand saves it as a plain text list.")

	linksText := widget.NewRichTextFromMarkdown(fmt.Sprintf(`### Links

- **GitHub Repository**: <%s>
- **Report Issues**: <%s>
- **Scryfall**: <%s>`,
		GitHubURL,
		IssuesURL,
		ScryfallURL,
	))

	content := container.NewVBox(
		titleText,
		widget.NewSeparator(),
		descText,
		widget.NewSeparator(),
		linksText,
	)

	d := dialog.NewCustom("About "+AppName, "Close", container.NewVScroll(content), a.window)
	d.Resize(fyne.NewSize(420, 320))
	d.Show()
}
