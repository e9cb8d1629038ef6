package ports

// PageOpener opens site pages in a web browser
type PageOpener interface {
	// OpenPath opens the site-relative path (e.g., "/heat-pump-sizing/")
	OpenPath(path string) error
}
