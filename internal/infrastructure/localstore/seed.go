package localstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
)

// sampleBooks is the fixed demo catalogue inserted whenever the books key
// is absent at startup. Ids and creation timestamps are generated fresh on
// every seed.
var sampleBooks = []entity.Book{
	{
		Title:       "To Kill a Mockingbird",
		Author:      "Harper Lee",
		Genre:       "Fiction",
		Location:    "New York",
		Contact:     "john@example.com / 555-1234",
		OwnerID:     "sample1",
		OwnerName:   "John Doe",
		IsAvailable: true,
		ImageURL:    "https://m.media-amazon.com/images/I/71FxgtFKcQL._AC_UF1000,1000_QL80_.jpg",
	},
	{
		Title:       "1984",
		Author:      "George Orwell",
		Genre:       "Dystopian",
		Location:    "San Francisco",
		Contact:     "jane@example.com / 555-5678",
		OwnerID:     "sample2",
		OwnerName:   "Jane Smith",
		IsAvailable: false,
		ImageURL:    "https://m.media-amazon.com/images/I/71kxa1-0mfL._AC_UF1000,1000_QL80_.jpg",
	},
	{
		Title:       "The Great Gatsby",
		Author:      "F. Scott Fitzgerald",
		Genre:       "Classic",
		Location:    "Chicago",
		Contact:     "mike@example.com / 555-9012",
		OwnerID:     "sample3",
		OwnerName:   "Mike Johnson",
		IsAvailable: true,
		ImageURL:    "https://m.media-amazon.com/images/I/71FTb9X6wsL._AC_UF1000,1000_QL80_.jpg",
	},
	{
		Title:       "Pride and Prejudice",
		Author:      "Jane Austen",
		Genre:       "Romance",
		Location:    "Boston",
		Contact:     "sarah@example.com / 555-3456",
		OwnerID:     "sample4",
		OwnerName:   "Sarah Williams",
		IsAvailable: true,
		ImageURL:    "https://m.media-amazon.com/images/I/71Q1tPupKjL._AC_UF1000,1000_QL80_.jpg",
	},
	{
		Title:       "The Hobbit",
		Author:      "J.R.R. Tolkien",
		Genre:       "Fantasy",
		Location:    "Seattle",
		Contact:     "david@example.com / 555-7890",
		OwnerID:     "sample5",
		OwnerName:   "David Brown",
		IsAvailable: false,
		ImageURL:    "https://m.media-amazon.com/images/I/710+HcoP38L._AC_UF1000,1000_QL80_.jpg",
	},
}

func seedBooks() []entity.Book {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	out := make([]entity.Book, len(sampleBooks))
	for i, b := range sampleBooks {
		b.ID = uuid.NewString()
		b.CreatedAt = now
		out[i] = b
	}
	return out
}
