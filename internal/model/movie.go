package model

// Movie is a short movie record as listed on the browse page.  Only
// the columns required for listing and the booking page header are
// loaded here; reviews and full metadata stay out of scope.
type Movie struct {
    ID       uint64 `json:"movie_id"` // movies.id
    Title    string `json:"title"`    // movies.title
    Image    string `json:"image"`    // movies.image (poster URL)
    Duration uint32 `json:"duration"` // movies.duration in minutes
}
