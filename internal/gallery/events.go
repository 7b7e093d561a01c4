package gallery

import "github.com/nfrund/gallery/internal/pubsub"

// ProfileChanged is the payload of profile events.
type ProfileChanged struct {
	UserID string `json:"user_id"`
}

// CardsChanged is the payload of the bulk card load event.
type CardsChanged struct {
	Count int `json:"count"`
}

// CardChanged is the payload of single-card events.
type CardChanged struct {
	CardID string `json:"card_id"`
}

var (
	ProfileLoaded  = pubsub.NewEvent[ProfileChanged]("gallery.profile.loaded")
	ProfileUpdated = pubsub.NewEvent[ProfileChanged]("gallery.profile.updated")
	CardsLoaded    = pubsub.NewEvent[CardsChanged]("gallery.cards.loaded")
	CardAdded      = pubsub.NewEvent[CardChanged]("gallery.card.added")
	CardUpdated    = pubsub.NewEvent[CardChanged]("gallery.card.updated")
	CardRemoved    = pubsub.NewEvent[CardChanged]("gallery.card.removed")
)

// Topics lists every topic the synchronizer publishes on.
func Topics() []string {
	return []string{
		ProfileLoaded.Name(),
		ProfileUpdated.Name(),
		CardsLoaded.Name(),
		CardAdded.Name(),
		CardUpdated.Name(),
		CardRemoved.Name(),
	}
}
