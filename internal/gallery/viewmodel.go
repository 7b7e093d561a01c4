package gallery

import (
	"github.com/nfrund/gallery/internal/domain"
	"github.com/nfrund/gallery/internal/i18n"
)

// CardView is what the renderer needs to draw one card. It is computed from
// a card and the current user id with no I/O.
type CardView struct {
	ID        string
	Name      string
	ImageURL  string
	LikeCount int
	Liked     bool
	CanDelete bool
}

// NewCardView derives the view model of card for currentUserID. While the
// user id is unknown the card shows as not liked and not deletable.
func NewCardView(card domain.Card, currentUserID string) CardView {
	return CardView{
		ID:        card.ID,
		Name:      card.Name,
		ImageURL:  card.ImageURL,
		LikeCount: card.LikedBy.Len(),
		Liked:     card.LikedBy.Has(currentUserID),
		CanDelete: currentUserID != "" && card.OwnerID == currentUserID,
	}
}

// NewCardViews maps a card list, keeping its order.
func NewCardViews(cards []domain.Card, currentUserID string) []CardView {
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, NewCardView(c, currentUserID))
	}
	return views
}

// ProfileView is the rendered profile header.
type ProfileView struct {
	Name      string
	About     string
	AvatarURL string
	Loaded    bool
}

// NewProfileView returns the placeholder header until the profile is loaded.
func NewProfileView(user domain.UserProfile, loaded bool, labels i18n.Labels) ProfileView {
	if !loaded {
		return ProfileView{Name: labels.PlaceholderName, About: labels.PlaceholderAbout}
	}
	return ProfileView{Name: user.Name, About: user.About, AvatarURL: user.AvatarURL, Loaded: true}
}

// Fields holds the values shown in the popup forms.
type Fields struct {
	ProfileName  string
	ProfileAbout string
	CardName     string
	CardLink     string
	AvatarURL    string
}

// Preview is the content of the image preview popup.
type Preview struct {
	ImageURL string
	Name     string
}

// Snapshot is a consistent copy of everything the page renders.
type Snapshot struct {
	Profile      ProfileView
	Cards        []CardView
	Fields       Fields
	Preview      Preview
	SubmitLabels map[PopupID]string
	Popups       map[PopupID]PopupState
	Labels       i18n.Labels
}

// IsOpen reports whether popup id is open in the snapshot.
func (s Snapshot) IsOpen(id PopupID) bool {
	return s.Popups[id] == PopupOpen
}
