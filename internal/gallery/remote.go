package gallery

import (
	"context"

	"github.com/nfrund/gallery/internal/domain"
)

// Remote is the set of REST operations the synchronizer drives.
// *remote.Client satisfies it.
type Remote interface {
	FetchProfile(ctx context.Context) (domain.UserProfile, error)
	FetchCards(ctx context.Context) ([]domain.Card, error)
	UpdateProfile(ctx context.Context, input domain.ProfileInput) (domain.UserProfile, error)
	CreateCard(ctx context.Context, input domain.CardInput) (domain.Card, error)
	DeleteCard(ctx context.Context, cardID string) error
	LikeCard(ctx context.Context, cardID string) (domain.Card, error)
	UnlikeCard(ctx context.Context, cardID string) (domain.Card, error)
	UpdateAvatar(ctx context.Context, imageURL string) (domain.UserProfile, error)
}
