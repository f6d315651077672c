package experience

import "context"

type Repository interface {
	Create(ctx context.Context, e Experience) (Experience, error)
	ListByUsername(ctx context.Context, username string) ([]Experience, error)
	// SearchCandidates matches query against job title or skills depending
	// on t. An empty query returns every candidate experience.
	SearchCandidates(ctx context.Context, t SearchType, query string) ([]Candidate, error)
}
