package academicreads

// Rating is the aggregate view over a paper's reviews. HasReviews
// distinguishes "no reviews yet" from a low average: consumers must
// never read Average when HasReviews is false.
type Rating struct {
	HasReviews bool    `json:"hasReviews"`
	Average    float64 `json:"average,omitempty"`
	Count      int     `json:"count,omitempty"`
}

// AggregateRating recomputes the mean rating from the full review set.
// It is never persisted: storing it would go stale on the next review.
func AggregateRating(reviews []*Review) Rating {
	if len(reviews) == 0 {
		return Rating{}
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}

	return Rating{
		HasReviews: true,
		Average:    float64(sum) / float64(len(reviews)),
		Count:      len(reviews),
	}
}
