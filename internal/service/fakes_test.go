package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/sakif/fyyur/internal/apperror"
	"github.com/sakif/fyyur/internal/model"
)

// =========================================================================
// IN-MEMORY FAKES
// =========================================================================
//
// Hand-written fakes of the three repository interfaces. They share one
// fakeStore so a show can resolve its venue and artist names the way the
// SQL joins do. Setting failWith makes every method return that error.

type fakeStore struct {
	venues  map[string]*model.Venue
	artists map[string]*model.Artist
	shows   []model.Show
	nextID  int

	failWith   error
	countCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		venues:  make(map[string]*model.Venue),
		artists: make(map[string]*model.Artist),
	}
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%03d", prefix, f.nextID)
}

// --- venues ---

func (f *fakeStore) CreateVenue(_ context.Context, v *model.Venue) error {
	if f.failWith != nil {
		return f.failWith
	}
	v.ID = f.id("venue")
	stored := *v
	f.venues[v.ID] = &stored
	return nil
}

func (f *fakeStore) GetVenue(_ context.Context, id string) (*model.Venue, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	v, ok := f.venues[id]
	if !ok {
		return nil, apperror.NotFound("venue", id)
	}
	out := *v
	return &out, nil
}

func (f *fakeStore) UpdateVenue(_ context.Context, v *model.Venue) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.venues[v.ID]; !ok {
		return apperror.NotFound("venue", v.ID)
	}
	stored := *v
	f.venues[v.ID] = &stored
	return nil
}

func (f *fakeStore) ListVenuesByLocation(_ context.Context, at time.Time) ([]model.LocatedVenue, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []model.LocatedVenue{}
	for _, v := range f.venues {
		out = append(out, model.LocatedVenue{
			City:  v.City,
			State: v.State,
			EntitySummary: model.EntitySummary{
				ID:               v.ID,
				Name:             v.Name,
				NumUpcomingShows: f.count(func(s model.Show) bool { return s.VenueID == v.ID }, at, model.Upcoming),
			},
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) SearchVenues(_ context.Context, term string, at time.Time) ([]model.EntitySummary, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []model.EntitySummary{}
	for _, v := range f.venues {
		if strings.Contains(strings.ToLower(v.Name), strings.ToLower(term)) {
			out = append(out, model.EntitySummary{
				ID:               v.ID,
				Name:             v.Name,
				NumUpcomingShows: f.count(func(s model.Show) bool { return s.VenueID == v.ID }, at, model.Upcoming),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- artists ---

func (f *fakeStore) CreateArtist(_ context.Context, a *model.Artist) error {
	if f.failWith != nil {
		return f.failWith
	}
	a.ID = f.id("artist")
	stored := *a
	f.artists[a.ID] = &stored
	return nil
}

func (f *fakeStore) GetArtist(_ context.Context, id string) (*model.Artist, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	a, ok := f.artists[id]
	if !ok {
		return nil, apperror.NotFound("artist", id)
	}
	out := *a
	return &out, nil
}

func (f *fakeStore) UpdateArtist(_ context.Context, a *model.Artist) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.artists[a.ID]; !ok {
		return apperror.NotFound("artist", a.ID)
	}
	stored := *a
	f.artists[a.ID] = &stored
	return nil
}

func (f *fakeStore) ListArtists(_ context.Context) ([]model.EntitySummary, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []model.EntitySummary{}
	for _, a := range f.artists {
		out = append(out, model.EntitySummary{ID: a.ID, Name: a.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) SearchArtists(_ context.Context, term string) ([]model.EntitySummary, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []model.EntitySummary{}
	for _, a := range f.artists {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(term)) {
			out = append(out, model.EntitySummary{ID: a.ID, Name: a.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- shows ---

func (f *fakeStore) CreateShow(_ context.Context, s *model.Show) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.venues[s.VenueID]; !ok {
		return apperror.ValidationFailed("venue_id", "venue "+s.VenueID+" does not exist")
	}
	if _, ok := f.artists[s.ArtistID]; !ok {
		return apperror.ValidationFailed("artist_id", "artist "+s.ArtistID+" does not exist")
	}
	s.ID = f.id("show")
	f.shows = append(f.shows, *s)
	return nil
}

func (f *fakeStore) ListShows(_ context.Context) ([]model.ShowListing, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []model.ShowListing{}
	for _, s := range f.shows {
		v, a := f.venues[s.VenueID], f.artists[s.ArtistID]
		out = append(out, model.ShowListing{
			ID:              s.ID,
			VenueID:         v.ID,
			VenueName:       v.Name,
			ArtistID:        a.ID,
			ArtistName:      a.Name,
			ArtistImageLink: a.ImageLink,
			StartTime:       model.FormatTime(s.StartTime),
		})
	}
	return out, nil
}

func inWindow(s model.Show, at time.Time, w model.ShowWindow) bool {
	if w == model.Past {
		return s.StartTime.Before(at)
	}
	return !s.StartTime.Before(at)
}

func (f *fakeStore) count(match func(model.Show) bool, at time.Time, w model.ShowWindow) int {
	n := 0
	for _, s := range f.shows {
		if match(s) && inWindow(s, at, w) {
			n++
		}
	}
	return n
}

func (f *fakeStore) ListVenueShows(_ context.Context, venueID string, at time.Time, w model.ShowWindow) ([]model.ArtistShow, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []model.ArtistShow{}
	for _, s := range f.shows {
		if s.VenueID == venueID && inWindow(s, at, w) {
			a := f.artists[s.ArtistID]
			out = append(out, model.ArtistShow{
				ArtistID:        a.ID,
				ArtistName:      a.Name,
				ArtistImageLink: a.ImageLink,
				StartTime:       model.FormatTime(s.StartTime),
			})
		}
	}
	return out, nil
}

func (f *fakeStore) CountVenueShows(_ context.Context, venueID string, at time.Time, w model.ShowWindow) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.countCalls++
	return f.count(func(s model.Show) bool { return s.VenueID == venueID }, at, w), nil
}

func (f *fakeStore) ListArtistShows(_ context.Context, artistID string, at time.Time, w model.ShowWindow) ([]model.VenueShow, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []model.VenueShow{}
	for _, s := range f.shows {
		if s.ArtistID == artistID && inWindow(s, at, w) {
			v := f.venues[s.VenueID]
			out = append(out, model.VenueShow{
				VenueID:        v.ID,
				VenueName:      v.Name,
				VenueImageLink: v.ImageLink,
				StartTime:      model.FormatTime(s.StartTime),
			})
		}
	}
	return out, nil
}

func (f *fakeStore) CountArtistShows(_ context.Context, artistID string, at time.Time, w model.ShowWindow) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.countCalls++
	return f.count(func(s model.Show) bool { return s.ArtistID == artistID }, at, w), nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

// fixedNow is the clock every service test runs against.
var fixedNow = time.Date(2030, time.June, 15, 20, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testServices struct {
	venues  *VenueService
	artists *ArtistService
	shows   *ShowService
	store   *fakeStore
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	store := newFakeStore()
	logger := testLogger()
	clock := WithClock(func() time.Time { return fixedNow })
	return testServices{
		venues:  NewVenueService(store, store, logger, clock),
		artists: NewArtistService(store, store, logger, clock),
		shows:   NewShowService(store, logger, clock),
		store:   store,
	}
}

func validVenueFields(name, city, state string) model.VenueFields {
	return model.VenueFields{
		Name:    name,
		City:    city,
		State:   state,
		Address: "1015 Folsom Street",
		Genres:  []string{"Jazz"},
	}
}

func validArtistFields(name string) model.ArtistFields {
	return model.ArtistFields{
		Name:   name,
		City:   "San Francisco",
		State:  "CA",
		Genres: []string{"Rock n Roll"},
	}
}
