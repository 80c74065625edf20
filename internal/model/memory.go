package model

const (
	AlignLeft   = "left"
	AlignRight  = "right"
	AlignCenter = "center"
)

// MemoryEvent is one entry of the class timeline, loaded from markdown.
type MemoryEvent struct {
	Slug        string
	Year        string
	Title       string
	HTMLContent string
	Image       string
	Caption     string
	Align       string
	Order       int
}
