package ranking

import (
	"context"
	"testing"
	"time"

	"wavefm/model"
	"wavefm/repository"
)

// fakePlaybackRepo serves canned listen counts.
type fakePlaybackRepo struct {
	counts []repository.SongListenCount
}

func (f *fakePlaybackRepo) RecordPlay(ctx context.Context, userID, songID int64, playedAt time.Time) error {
	return nil
}

func (f *fakePlaybackRepo) CountBySong(ctx context.Context, genre string, since time.Time) ([]repository.SongListenCount, error) {
	out := make([]repository.SongListenCount, len(f.counts))
	copy(out, f.counts)
	return out, nil
}

func (f *fakePlaybackRepo) ListByUser(ctx context.Context, userID int64, skip, take int) ([]*model.PlaybackEvent, int64, error) {
	return nil, 0, nil
}

func (f *fakePlaybackRepo) StatsByUser(ctx context.Context, userID int64) (*model.ListenStats, error) {
	return &model.ListenStats{}, nil
}

func (f *fakePlaybackRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// fakeSongRepo hydrates songs by ID in reverse request order, imitating a
// datastore that ignores input order on bulk fetches.
type fakeSongRepo struct {
	songs map[int64]*model.Song
}

func (f *fakeSongRepo) Create(ctx context.Context, song *model.Song) error { return nil }

func (f *fakeSongRepo) GetByID(ctx context.Context, id int64) (*model.Song, error) {
	return f.songs[id], nil
}

func (f *fakeSongRepo) GetByIDs(ctx context.Context, ids []int64) ([]*model.Song, error) {
	var out []*model.Song
	for i := len(ids) - 1; i >= 0; i-- {
		if song, ok := f.songs[ids[i]]; ok {
			out = append(out, song)
		}
	}
	return out, nil
}

func (f *fakeSongRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := f.songs[id]
	return ok, nil
}

func (f *fakeSongRepo) Search(ctx context.Context, keyword string, skip, take int) ([]*model.Song, int64, error) {
	return nil, 0, nil
}

func (f *fakeSongRepo) ListGenres(ctx context.Context) ([]string, error) {
	return []string{"pop", "rock"}, nil
}

func newTestAggregator(counts []repository.SongListenCount, songIDs ...int64) *Aggregator {
	songs := make(map[int64]*model.Song, len(songIDs))
	for _, id := range songIDs {
		songs[id] = &model.Song{ID: id, Title: "song", ArtistID: 1}
	}
	return NewAggregator(&fakePlaybackRepo{counts: counts}, &fakeSongRepo{songs: songs})
}

func TestTopSongsRanksAndPaginates(t *testing.T) {
	// Song 7: 5 listens, Song 3: 2, Song 9: 2.
	counts := []repository.SongListenCount{
		{SongID: 9, Listens: 2},
		{SongID: 7, Listens: 5},
		{SongID: 3, Listens: 2},
	}
	agg := newTestAggregator(counts, 3, 7, 9)

	rows, total, err := agg.TopSongs(context.Background(), Query{Skip: 0, Take: 2})
	if err != nil {
		t.Fatalf("TopSongs() error = %v", err)
	}

	if total != 3 {
		t.Errorf("total = %d, want 3 (distinct songs, not events)", total)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].ID != 7 || rows[0].ListenCount != 5 {
		t.Errorf("rows[0] = {id:%d listens:%d}, want {id:7 listens:5}", rows[0].ID, rows[0].ListenCount)
	}
	// Ties break by ascending song ID.
	if rows[1].ID != 3 || rows[1].ListenCount != 2 {
		t.Errorf("rows[1] = {id:%d listens:%d}, want {id:3 listens:2}", rows[1].ID, rows[1].ListenCount)
	}

	rows2, total2, err := agg.TopSongs(context.Background(), Query{Skip: 2, Take: 2})
	if err != nil {
		t.Fatalf("TopSongs() page 2 error = %v", err)
	}
	if total2 != 3 {
		t.Errorf("page 2 total = %d, want 3", total2)
	}
	if len(rows2) != 1 || rows2[0].ID != 9 {
		t.Fatalf("page 2 rows = %+v, want just song 9", rows2)
	}
}

func TestTopSongsTieBreakIsDeterministic(t *testing.T) {
	counts := []repository.SongListenCount{
		{SongID: 9, Listens: 2},
		{SongID: 3, Listens: 2},
	}

	for i := 0; i < 10; i++ {
		agg := newTestAggregator(counts, 3, 9)
		rows, _, err := agg.TopSongs(context.Background(), Query{Take: 2})
		if err != nil {
			t.Fatalf("TopSongs() error = %v", err)
		}
		if rows[0].ID != 3 || rows[1].ID != 9 {
			t.Fatalf("run %d: order = [%d %d], want [3 9]", i, rows[0].ID, rows[1].ID)
		}
	}
}

func TestTopSongsOrderInvariant(t *testing.T) {
	counts := []repository.SongListenCount{
		{SongID: 1, Listens: 4},
		{SongID: 2, Listens: 9},
		{SongID: 3, Listens: 1},
		{SongID: 4, Listens: 9},
		{SongID: 5, Listens: 6},
	}
	agg := newTestAggregator(counts, 1, 2, 3, 4, 5)

	rows, _, err := agg.TopSongs(context.Background(), Query{Take: 5})
	if err != nil {
		t.Fatalf("TopSongs() error = %v", err)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i-1].ListenCount < rows[i].ListenCount {
			t.Errorf("rows[%d].ListenCount = %d precedes rows[%d].ListenCount = %d",
				i-1, rows[i-1].ListenCount, i, rows[i].ListenCount)
		}
	}
}

func TestTopSongsPageCoverage(t *testing.T) {
	counts := []repository.SongListenCount{
		{SongID: 1, Listens: 4},
		{SongID: 2, Listens: 9},
		{SongID: 3, Listens: 1},
		{SongID: 4, Listens: 9},
		{SongID: 5, Listens: 6},
		{SongID: 6, Listens: 6},
		{SongID: 7, Listens: 2},
	}
	agg := newTestAggregator(counts, 1, 2, 3, 4, 5, 6, 7)

	const take = 3
	seen := map[int64]int{}
	for skip := 0; ; skip += take {
		rows, total, err := agg.TopSongs(context.Background(), Query{Skip: skip, Take: take})
		if err != nil {
			t.Fatalf("TopSongs(skip=%d) error = %v", skip, err)
		}
		if total != 7 {
			t.Errorf("total = %d at skip %d, want 7 regardless of paging", total, skip)
		}
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			seen[row.ID]++
		}
	}

	if len(seen) != 7 {
		t.Errorf("pages covered %d distinct songs, want 7", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("song %d appeared %d times across pages, want 1", id, n)
		}
	}
}

func TestTopSongsEmptyIsNotAnError(t *testing.T) {
	agg := newTestAggregator(nil)

	rows, total, err := agg.TopSongs(context.Background(), Query{Take: 10})
	if err != nil {
		t.Fatalf("TopSongs() error = %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %v, want empty non-nil slice", rows)
	}
}

func TestTopSongsOutOfRangePage(t *testing.T) {
	counts := []repository.SongListenCount{{SongID: 1, Listens: 1}}
	agg := newTestAggregator(counts, 1)

	rows, total, err := agg.TopSongs(context.Background(), Query{Skip: 100, Take: 10})
	if err != nil {
		t.Fatalf("TopSongs() error = %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestTopSongsResortsAfterHydration(t *testing.T) {
	// fakeSongRepo returns songs in reverse request order; the page must
	// still come back ranked.
	counts := []repository.SongListenCount{
		{SongID: 1, Listens: 3},
		{SongID: 2, Listens: 8},
		{SongID: 3, Listens: 5},
	}
	agg := newTestAggregator(counts, 1, 2, 3)

	rows, _, err := agg.TopSongs(context.Background(), Query{Take: 3})
	if err != nil {
		t.Fatalf("TopSongs() error = %v", err)
	}

	wantOrder := []int64{2, 3, 1}
	for i, want := range wantOrder {
		if rows[i].ID != want {
			t.Errorf("rows[%d].ID = %d, want %d", i, rows[i].ID, want)
		}
	}
}

func TestListGenres(t *testing.T) {
	agg := newTestAggregator(nil)

	genres, err := agg.ListGenres(context.Background())
	if err != nil {
		t.Fatalf("ListGenres() error = %v", err)
	}
	if len(genres) != 2 || genres[0] != "pop" || genres[1] != "rock" {
		t.Errorf("genres = %v, want [pop rock]", genres)
	}
}
