package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventpal-api/internal/domain"
	"github.com/vietanh2810/eventpal-api/internal/repository/dao"
)

func seedEvents(t *testing.T) (*Store, []domain.Event) {
	t.Helper()

	ctx := context.Background()
	s := newTestStore(t, dao.NewMemoryRecordDAO())
	register(t, s, "Ann", "ann@x.com", "secret1")

	inputs := []domain.EventInput{
		{Title: "Jazz Night", Description: "Live quartet", Date: "2030-03-01", Time: "20:00", Location: "Blue Hall, Lyon", Category: "Music", Price: 15, Tags: []string{"live", "Evening"}},
		{Title: "city run", Description: "10k along the river", Date: "2030-01-15", Time: "08:00", Location: "Riverside Park", Category: "Sports", Price: 0, Tags: []string{"outdoor"}},
		{Title: "Go Workshop", Description: "Concurrency patterns", Date: "2030-02-10", Time: "09:30", Location: "Lyon Tech Hub", Category: "Technology", Price: 40},
		{Title: "Brass Band", Description: "Open air concert", Date: "2030-01-15", Time: "07:00", Location: "Main Square", Category: "music", Price: 5, Tags: []string{"outdoor", "family"}},
	}

	events := make([]domain.Event, 0, len(inputs))
	for _, in := range inputs {
		e, err := s.AddEvent(ctx, in)
		require.NoError(t, err)
		events = append(events, e)
	}

	return s, events
}

func titles(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func strPtr(v string) *string {
	return &v
}

func TestStore_FilteredEvents(t *testing.T) {
	s, events := seedEvents(t)

	assert.Equal(t, events, s.FilteredEvents(), "empty filters return everything in order")

	tests := []struct {
		name  string
		patch domain.FiltersPatch
		want  []string
	}{
		{
			name:  "category is an exact case-insensitive match",
			patch: domain.FiltersPatch{Category: strPtr("MUSIC")},
			want:  []string{"Jazz Night", "Brass Band"},
		},
		{
			name:  "category does not match substrings",
			patch: domain.FiltersPatch{Category: strPtr("Mus")},
			want:  []string{},
		},
		{
			name:  "search term matches title",
			patch: domain.FiltersPatch{SearchTerm: strPtr("WORKSHOP")},
			want:  []string{"Go Workshop"},
		},
		{
			name:  "search term matches description",
			patch: domain.FiltersPatch{SearchTerm: strPtr("river")},
			want:  []string{"city run"},
		},
		{
			name:  "search term matches tags",
			patch: domain.FiltersPatch{SearchTerm: strPtr("evening")},
			want:  []string{"Jazz Night"},
		},
		{
			name:  "location is a substring match",
			patch: domain.FiltersPatch{Location: strPtr("lyon")},
			want:  []string{"Jazz Night", "Go Workshop"},
		},
		{
			name: "filters compose",
			patch: domain.FiltersPatch{
				SearchTerm: strPtr("outdoor"),
				Category:   strPtr("music"),
				Location:   strPtr("square"),
			},
			want: []string{"Brass Band"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			empty := ""
			s.SetSearchFilters(domain.FiltersPatch{SearchTerm: &empty, Category: &empty, Location: &empty})
			s.SetSearchFilters(tt.patch)

			assert.Equal(t, tt.want, titles(s.FilteredEvents()))
		})
	}
}

func TestStore_SetSearchFiltersMerges(t *testing.T) {
	s := newTestStore(t, dao.NewMemoryRecordDAO())

	s.SetSearchFilters(domain.FiltersPatch{SearchTerm: strPtr("jazz")})
	filters := s.SetSearchFilters(domain.FiltersPatch{Location: strPtr("Lyon")})

	assert.Equal(t, domain.SearchFilters{SearchTerm: "jazz", Location: "Lyon"}, filters)
	assert.Equal(t, filters, s.SearchFilters())
}

func TestSortEvents(t *testing.T) {
	_, events := seedEvents(t)

	tests := []struct {
		key  SortKey
		want []string
	}{
		{key: "", want: []string{"Jazz Night", "city run", "Go Workshop", "Brass Band"}},
		{key: SortByDate, want: []string{"Brass Band", "city run", "Go Workshop", "Jazz Night"}},
		{key: SortByPrice, want: []string{"city run", "Brass Band", "Jazz Night", "Go Workshop"}},
		{key: SortByTitle, want: []string{"Brass Band", "city run", "Go Workshop", "Jazz Night"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			sorted := SortEvents(cloneEvents(events), tt.key)
			assert.Equal(t, tt.want, titles(sorted))
		})
	}
}

func TestSortEvents_Popularity(t *testing.T) {
	events := []domain.Event{
		{Title: "a", Attendees: 1},
		{Title: "b", Attendees: 5},
		{Title: "c", Attendees: 1},
		{Title: "d", Attendees: 3},
	}

	assert.Equal(t, []string{"b", "d", "a", "c"}, titles(SortEvents(events, SortByPopularity)))
}

func TestStore_Categories(t *testing.T) {
	s, _ := seedEvents(t)

	assert.Equal(t, []string{"Music", "Sports", "Technology", "music"}, s.Categories())
}

func TestStore_Event(t *testing.T) {
	s, events := seedEvents(t)

	got, err := s.Event(events[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Workshop", got.Title)

	got.Tags = append(got.Tags, "mutated")
	again, err := s.Event(events[2].ID)
	require.NoError(t, err)
	assert.NotContains(t, again.Tags, "mutated")

	_, err = s.Event(12345)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestStore_RelatedEvents(t *testing.T) {
	s, events := seedEvents(t)

	related, err := s.RelatedEvents(events[0].ID, 3)
	require.NoError(t, err)
	assert.Empty(t, related, "category match is exact")

	ctx := context.Background()
	_, err = s.AddEvent(ctx, domain.EventInput{Title: "Choir", Category: "Music", Date: "2030-05-01"})
	require.NoError(t, err)
	_, err = s.AddEvent(ctx, domain.EventInput{Title: "Opera", Category: "Music", Date: "2030-06-01"})
	require.NoError(t, err)

	related, err = s.RelatedEvents(events[0].ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Choir"}, titles(related))

	related, err = s.RelatedEvents(events[0].ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Choir", "Opera"}, titles(related))

	_, err = s.RelatedEvents(-1, 0)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestStore_ProfileEvents(t *testing.T) {
	ctx := context.Background()
	s, events := seedEvents(t)

	_, _, err := s.ToggleEventAttendance(ctx, events[2].ID)
	require.NoError(t, err)

	attending, err := s.AttendingEvents()
	require.NoError(t, err)
	assert.Equal(t, []string{"Go Workshop"}, titles(attending))

	created, err := s.CreatedEvents()
	require.NoError(t, err)
	assert.Len(t, created, 4)

	require.NoError(t, s.Logout(ctx))
	_, err = s.AttendingEvents()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = s.CreatedEvents()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
