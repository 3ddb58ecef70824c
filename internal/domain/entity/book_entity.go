package entity

// PlaceholderImageURL is served when a listing has no cover image of its own.
const PlaceholderImageURL = "/placeholder.svg?height=300&width=200"

// Book is a single exchange listing.
//
// OwnerName is a denormalized copy of the owner's name at listing time and
// is not kept in sync afterwards. OwnerID is a weak reference; the store
// does not enforce that it points at an existing user.
//
// CreatedAt is kept as an RFC3339 string so the persisted JSON matches the
// layout the legacy client wrote to local storage.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre,omitempty"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
	OwnerID     string `json:"ownerId"`
	OwnerName   string `json:"ownerName"`
	IsAvailable bool   `json:"isAvailable"`
	CreatedAt   string `json:"createdAt"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// CoverURL returns the listing's image, falling back to the placeholder.
func (b *Book) CoverURL() string {
	if b.ImageURL == "" {
		return PlaceholderImageURL
	}
	return b.ImageURL
}
