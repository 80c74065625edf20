package model

import "time"

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"

	AspectPortrait  = "portrait"
	AspectLandscape = "landscape"
	AspectSquare    = "square"
	AspectTall      = "tall"

	FilterAllMemories = "All Memories"

	// TagUserUpload marks items added through the vault upload form.
	TagUserUpload = "User Upload"
)

var VaultFilters = []string{FilterAllMemories, "Freshman", "Sophomore", "Junior", "Convocation", "Videos"}

type VaultItem struct {
	ID        string     `db:"id" json:"id"`
	Type      string     `db:"type" json:"type"`
	Src       string     `db:"src" json:"src"`
	Alt       string     `db:"alt" json:"alt"`
	Date      string     `db:"date" json:"date"`
	Caption   string     `db:"caption" json:"caption"`
	Tags      StringList `db:"tags" json:"tags"`
	Aspect    string     `db:"aspect" json:"aspect"`
	CreatedAt time.Time  `db:"created_at" json:"-"`
}

func (v *VaultItem) IsVideo() bool {
	return v.Type == MediaTypeVideo
}

func (v *VaultItem) Clone() *VaultItem {
	c := *v
	c.Tags = v.Tags.Clone()
	return &c
}
