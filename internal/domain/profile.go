package domain

import "time"

// Image is a stored profile picture in one of two representations:
// raw bytes plus MIME type held inline with the record, or the name of
// a blob written to external storage. The two are never mixed.
type Image struct {
	Data []byte
	MIME string
	Name string
}

// Inline reports whether the image bytes live inside the record.
func (i *Image) Inline() bool {
	return i != nil && len(i.Data) > 0
}

// Profile is a public member profile, optionally carrying a profile
// picture and a cover picture.
type Profile struct {
	ID           int64
	FullName     string
	Mobile       string
	Email        string
	Location     string
	Bio          string
	ProfileImage *Image
	CoverImage   *Image
	CreatedAt    time.Time
}
