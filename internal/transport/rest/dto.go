package rest

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/internal/service/feature"
)

type featureResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Status      string   `json:"status"`
	SubmittedBy *string  `json:"submittedBy"`
	CreatedAt   int64    `json:"createdAt"`
	UpvoteCount int      `json:"upvoteCount"`
	UpvotedBy   []string `json:"upvotedBy"`
}

func toFeatureResponse(fr *domain.FeatureRequest) featureResponse {
	categories := make([]string, len(fr.Categories))
	for i, c := range fr.Categories {
		categories[i] = c.String()
	}
	voters := fr.UpvotedBy
	if voters == nil {
		voters = []string{}
	}

	var submittedBy *string
	if fr.SubmittedBy != "" {
		owner := fr.SubmittedBy
		submittedBy = &owner
	}

	return featureResponse{
		ID:          fr.ID.String(),
		Title:       fr.Title,
		Description: fr.Description,
		Categories:  categories,
		Status:      fr.Status.String(),
		SubmittedBy: submittedBy,
		CreatedAt:   fr.CreatedAt.UnixMilli(),
		UpvoteCount: fr.UpvoteCount,
		UpvotedBy:   voters,
	}
}

func toFeatureList(records []domain.FeatureRequest) []featureResponse {
	out := make([]featureResponse, len(records))
	for i := range records {
		out[i] = toFeatureResponse(&records[i])
	}
	return out
}

type submitRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

type decideRequest struct {
	Status string `json:"status"`
}

// listInputFromQuery reads ?tab=&sort=&q=&category=. category may repeat or
// be comma-separated.
func listInputFromQuery(r *http.Request) feature.ListInput {
	q := r.URL.Query()

	var categories []string
	for _, v := range q["category"] {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}

	return feature.ListInput{
		Tab:        q.Get("tab"),
		Sort:       q.Get("sort"),
		Search:     q.Get("q"),
		Categories: categories,
	}
}
