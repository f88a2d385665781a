package academicreads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateRating(t *testing.T) {
	tts := map[string]struct {
		ratings  []int
		expected Rating
	}{
		"no reviews": {
			ratings:  nil,
			expected: Rating{HasReviews: false},
		},
		"single review": {
			ratings:  []int{4},
			expected: Rating{HasReviews: true, Average: 4, Count: 1},
		},
		"several reviews": {
			ratings:  []int{5, 4, 3},
			expected: Rating{HasReviews: true, Average: 4, Count: 3},
		},
		"non integer average": {
			ratings:  []int{5, 4},
			expected: Rating{HasReviews: true, Average: 4.5, Count: 2},
		},
		"all ones stays distinguishable from no reviews": {
			ratings:  []int{1, 1},
			expected: Rating{HasReviews: true, Average: 1, Count: 2},
		},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			reviews := make([]*Review, len(tt.ratings))
			for i, r := range tt.ratings {
				reviews[i] = &Review{ID: i + 1, Content: "ok", Rating: r}
			}

			assert.Equal(t, tt.expected, AggregateRating(reviews))
		})
	}
}
