package layout

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // "info", "success" or "error"
	Message string
}

// PageData holds data common to every page
type PageData struct {
	Title string
	Flash *FlashMessage
}

// FullTitle is the document title
func (d PageData) FullTitle() string {
	if d.Title == "" {
		return "Tic-Tac-Toe"
	}
	return d.Title + " - Tic-Tac-Toe"
}
