package gallery

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/nfrund/gallery/internal/domain"
	"github.com/nfrund/gallery/internal/i18n"
	"github.com/nfrund/gallery/internal/logging"
	"github.com/nfrund/gallery/internal/pubsub"
)

// Dependencies holds the collaborators of a Synchronizer.
// Only Remote is required.
type Dependencies struct {
	Remote    Remote
	Reporter  ErrorReporter
	Popups    PopupController
	Publisher pubsub.Publisher
	Labels    *i18n.Labels
}

// Synchronizer owns the in-memory gallery state and keeps it in line with
// the results of remote calls. Remote calls are never made while holding mu,
// so independent actions on different cards proceed concurrently.
type Synchronizer struct {
	remote    Remote
	reporter  ErrorReporter
	popups    PopupController
	publisher pubsub.Publisher
	labels    i18n.Labels

	mu            sync.RWMutex
	user          domain.UserProfile
	profileLoaded bool
	cards         []domain.Card
	fields        Fields
	preview       Preview
	submitLabels  map[PopupID]string
}

// New creates a Synchronizer with an empty card list and the profile
// placeholder shown.
func New(deps Dependencies) (*Synchronizer, error) {
	if deps.Remote == nil {
		return nil, errors.New("gallery: remote is required")
	}
	s := &Synchronizer{
		remote:    deps.Remote,
		reporter:  deps.Reporter,
		popups:    deps.Popups,
		publisher: deps.Publisher,
		labels:    i18n.Default(),
	}
	if s.reporter == nil {
		s.reporter = SlogReporter{}
	}
	if s.popups == nil {
		s.popups = NewPopups()
	}
	if deps.Labels != nil {
		s.labels = *deps.Labels
	}
	s.submitLabels = map[PopupID]string{
		PopupEditProfile:  s.labels.Save,
		PopupNewCard:      s.labels.Create,
		PopupUpdateAvatar: s.labels.Save,
	}
	return s, nil
}

// Labels returns the string catalog the synchronizer renders with.
func (s *Synchronizer) Labels() i18n.Labels {
	return s.labels
}

// Load issues the profile and card fetches concurrently and waits for both.
// Each failure is reported and leaves its part of the page at the initial
// content. The returned error joins both failures.
func (s *Synchronizer) Load(ctx context.Context) error {
	var profileErr, cardsErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		profileErr = s.loadProfile(ctx)
	}()
	go func() {
		defer wg.Done()
		cardsErr = s.loadCards(ctx)
	}()
	wg.Wait()
	return errors.Join(profileErr, cardsErr)
}

func (s *Synchronizer) loadProfile(ctx context.Context) error {
	profile, err := s.remote.FetchProfile(ctx)
	if err != nil {
		s.reporter.Report(ctx, "fetch profile", err)
		return err
	}

	s.mu.Lock()
	s.user = profile
	s.profileLoaded = true
	s.mu.Unlock()

	// Cards rendered before this point showed no like/delete state; the
	// event lets live views redraw them.
	publish(ctx, s.publisher, ProfileLoaded, ProfileChanged{UserID: profile.ID})
	return nil
}

func (s *Synchronizer) loadCards(ctx context.Context) error {
	cards, err := s.remote.FetchCards(ctx)
	if err != nil {
		s.reporter.Report(ctx, "fetch cards", err)
		return err
	}

	s.mu.Lock()
	s.cards = slices.Clone(cards)
	s.mu.Unlock()

	publish(ctx, s.publisher, CardsLoaded, CardsChanged{Count: len(cards)})
	return nil
}

// CurrentUserID returns the signed-in user's id, empty until the profile loads.
func (s *Synchronizer) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.ID
}

// Profile returns the current profile and whether it has been loaded.
func (s *Synchronizer) Profile() (domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.profileLoaded
}

// Cards returns a copy of the rendered card list.
func (s *Synchronizer) Cards() []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cards)
}

// CardView returns the view model of one card.
func (s *Synchronizer) CardView(cardID string) (CardView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(cardID)
	if i < 0 {
		return CardView{}, false
	}
	return NewCardView(s.cards[i], s.user.ID), true
}

// SubmitLabel returns the current text of a form's submit button.
func (s *Synchronizer) SubmitLabel(id PopupID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submitLabels[id]
}

// Snapshot copies everything the page renders under one lock.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	popups := make(map[PopupID]PopupState, len(AllPopups))
	for _, id := range AllPopups {
		popups[id] = s.popups.State(id)
	}
	labels := make(map[PopupID]string, len(s.submitLabels))
	for k, v := range s.submitLabels {
		labels[k] = v
	}
	return Snapshot{
		Profile:      NewProfileView(s.user, s.profileLoaded, s.labels),
		Cards:        NewCardViews(s.cards, s.user.ID),
		Fields:       s.fields,
		Preview:      s.preview,
		SubmitLabels: labels,
		Popups:       popups,
		Labels:       s.labels,
	}
}

// ToggleLike likes the card if the current user has not liked it yet and
// unlikes it otherwise. The stored card is replaced by the one the server
// returns, so the count is never computed locally.
func (s *Synchronizer) ToggleLike(ctx context.Context, cardID string) (CardView, error) {
	const op = "toggle like"

	s.mu.RLock()
	i := s.indexOf(cardID)
	var liked bool
	if i >= 0 {
		liked = s.cards[i].LikedBy.Has(s.user.ID)
	}
	s.mu.RUnlock()

	if i < 0 {
		err := fmt.Errorf("%s %s: %w", op, cardID, domain.ErrCardNotFound)
		s.reporter.Report(ctx, op, err)
		return CardView{}, err
	}

	var (
		updated domain.Card
		err     error
	)
	if liked {
		updated, err = s.remote.UnlikeCard(ctx, cardID)
	} else {
		updated, err = s.remote.LikeCard(ctx, cardID)
	}
	if err != nil {
		s.reporter.Report(ctx, op, err)
		return CardView{}, err
	}

	s.mu.Lock()
	// The card may have moved or been deleted while the call was in flight.
	if j := s.indexOf(cardID); j >= 0 {
		s.cards[j] = updated
	}
	view := NewCardView(updated, s.user.ID)
	s.mu.Unlock()

	publish(ctx, s.publisher, CardUpdated, CardChanged{CardID: cardID})
	return view, nil
}

// DeleteCard asks the server to delete the card and drops it from the list
// on success. Ownership is left to the server to enforce.
func (s *Synchronizer) DeleteCard(ctx context.Context, cardID string) error {
	const op = "delete card"

	s.mu.RLock()
	known := s.indexOf(cardID) >= 0
	s.mu.RUnlock()
	if !known {
		err := fmt.Errorf("%s %s: %w", op, cardID, domain.ErrCardNotFound)
		s.reporter.Report(ctx, op, err)
		return err
	}

	if err := s.remote.DeleteCard(ctx, cardID); err != nil {
		s.reporter.Report(ctx, op, err)
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(cardID); i >= 0 {
		s.cards = slices.Delete(s.cards, i, i+1)
	}
	s.mu.Unlock()

	publish(ctx, s.publisher, CardRemoved, CardChanged{CardID: cardID})
	return nil
}

// OpenPreview fills the image preview with the card and opens it.
func (s *Synchronizer) OpenPreview(ctx context.Context, cardID string) error {
	s.mu.Lock()
	i := s.indexOf(cardID)
	if i >= 0 {
		s.preview = Preview{ImageURL: s.cards[i].ImageURL, Name: s.cards[i].Name}
	}
	s.mu.Unlock()

	if i < 0 {
		err := fmt.Errorf("open preview %s: %w", cardID, domain.ErrCardNotFound)
		s.reporter.Report(ctx, "open preview", err)
		return err
	}
	s.popups.Open(PopupImagePreview)
	return nil
}

// OpenEditProfile pre-fills the profile form from the displayed profile and
// opens it.
func (s *Synchronizer) OpenEditProfile() {
	s.mu.Lock()
	view := NewProfileView(s.user, s.profileLoaded, s.labels)
	s.fields.ProfileName = view.Name
	s.fields.ProfileAbout = view.About
	s.mu.Unlock()
	s.popups.Open(PopupEditProfile)
}

// OpenNewCard clears the card form and opens it.
func (s *Synchronizer) OpenNewCard() {
	s.mu.Lock()
	s.fields.CardName = ""
	s.fields.CardLink = ""
	s.mu.Unlock()
	s.popups.Open(PopupNewCard)
}

// OpenUpdateAvatar opens the avatar form as it was last left.
func (s *Synchronizer) OpenUpdateAvatar() {
	s.popups.Open(PopupUpdateAvatar)
}

// ClosePopup closes a popup without submitting it.
func (s *Synchronizer) ClosePopup(id PopupID) {
	s.popups.Close(id)
}

// KeepDraft stores form input that was rejected before it reached the
// service, so the re-rendered popup still shows what the user typed.
// Unknown input types are ignored.
func (s *Synchronizer) KeepDraft(input any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch in := input.(type) {
	case *domain.ProfileInput:
		s.fields.ProfileName, s.fields.ProfileAbout = in.Name, in.About
	case *domain.CardInput:
		s.fields.CardName, s.fields.CardLink = in.Name, in.ImageURL
	case *domain.AvatarInput:
		s.fields.AvatarURL = in.AvatarURL
	}
}

// SubmitProfile sends the profile form. On success the displayed name and
// description follow the server's answer and the popup closes; on failure
// the popup stays open and the profile is unchanged.
func (s *Synchronizer) SubmitProfile(ctx context.Context, input domain.ProfileInput) (domain.UserProfile, error) {
	s.beginSubmit(PopupEditProfile, s.labels.Saving, func(f *Fields) {
		f.ProfileName, f.ProfileAbout = input.Name, input.About
	})
	defer s.endSubmit(PopupEditProfile, s.labels.Save)

	profile, err := s.remote.UpdateProfile(ctx, input)
	if err != nil {
		s.reporter.Report(ctx, "update profile", err)
		return domain.UserProfile{}, err
	}

	s.mu.Lock()
	if !s.profileLoaded {
		s.user, s.profileLoaded = profile, true
	} else {
		s.user.Name, s.user.About = profile.Name, profile.About
	}
	s.mu.Unlock()

	s.popups.Close(PopupEditProfile)
	publish(ctx, s.publisher, ProfileUpdated, ProfileChanged{UserID: profile.ID})
	return profile, nil
}

// SubmitCard sends the card form and prepends the created card.
func (s *Synchronizer) SubmitCard(ctx context.Context, input domain.CardInput) (domain.Card, error) {
	s.beginSubmit(PopupNewCard, s.labels.Creating, func(f *Fields) {
		f.CardName, f.CardLink = input.Name, input.ImageURL
	})
	defer s.endSubmit(PopupNewCard, s.labels.Create)

	card, err := s.remote.CreateCard(ctx, input)
	if err != nil {
		s.reporter.Report(ctx, "create card", err)
		return domain.Card{}, err
	}

	s.mu.Lock()
	s.cards = slices.Insert(s.cards, 0, card)
	s.mu.Unlock()

	s.popups.Close(PopupNewCard)
	publish(ctx, s.publisher, CardAdded, CardChanged{CardID: card.ID})
	return card, nil
}

// SubmitAvatar sends the avatar form. On success the avatar follows the
// server's answer, the popup closes and the form is reset. An answer that
// arrives before the profile has loaded is adopted as the whole profile.
func (s *Synchronizer) SubmitAvatar(ctx context.Context, input domain.AvatarInput) (domain.UserProfile, error) {
	s.beginSubmit(PopupUpdateAvatar, s.labels.Saving, func(f *Fields) {
		f.AvatarURL = input.AvatarURL
	})
	defer s.endSubmit(PopupUpdateAvatar, s.labels.Save)

	profile, err := s.remote.UpdateAvatar(ctx, input.AvatarURL)
	if err != nil {
		s.reporter.Report(ctx, "update avatar", err)
		return domain.UserProfile{}, err
	}

	s.mu.Lock()
	if !s.profileLoaded {
		s.user, s.profileLoaded = profile, true
	} else {
		s.user.AvatarURL = profile.AvatarURL
	}
	s.fields.AvatarURL = ""
	s.mu.Unlock()

	s.popups.Close(PopupUpdateAvatar)
	publish(ctx, s.publisher, ProfileUpdated, ProfileChanged{UserID: profile.ID})
	return profile, nil
}

// beginSubmit records the submitted values and swaps in the busy label.
// The label is cosmetic: a second submit is not blocked.
func (s *Synchronizer) beginSubmit(id PopupID, busy string, fill func(*Fields)) {
	s.mu.Lock()
	fill(&s.fields)
	s.submitLabels[id] = busy
	s.mu.Unlock()
}

func (s *Synchronizer) endSubmit(id PopupID, idle string) {
	s.mu.Lock()
	s.submitLabels[id] = idle
	s.mu.Unlock()
}

// indexOf must be called with mu held.
func (s *Synchronizer) indexOf(cardID string) int {
	return slices.IndexFunc(s.cards, func(c domain.Card) bool { return c.ID == cardID })
}

// publish sends an event when a publisher is configured. Delivery failures
// only affect live views, so they are logged and otherwise ignored.
func publish[T any](ctx context.Context, p pubsub.Publisher, event pubsub.Event[T], payload T) {
	if p == nil {
		return
	}
	if err := pubsub.Publish(ctx, p, event, payload); err != nil {
		logging.FromContext(ctx).Warn("failed to publish gallery event", "topic", event.Name(), "error", err)
	}
}
