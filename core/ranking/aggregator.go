// Package ranking computes listen-count rankings over playback events.
package ranking

import (
	"context"
	"sort"
	"time"

	"wavefm/model"
	"wavefm/repository"
)

// Query scopes a ranking request. Genre narrows to songs of that genre when
// non-empty; Since narrows to events played at or after that instant when
// non-zero. Skip/Take slice the ranked song list, never the raw events.
type Query struct {
	Genre string
	Since time.Time
	Skip  int
	Take  int
}

// Aggregator ranks songs by listen count.
type Aggregator struct {
	playback repository.PlaybackRepository
	songs    repository.SongRepository
}

// NewAggregator creates an Aggregator over the given repositories.
func NewAggregator(playback repository.PlaybackRepository, songs repository.SongRepository) *Aggregator {
	return &Aggregator{playback: playback, songs: songs}
}

// TopSongs returns one page of songs ordered by listen count, plus the
// number of distinct songs with at least one matching event. Counting runs
// over the entire matching event population before any slicing: paginating
// raw events would bias pages toward event-heavy songs. An empty result is
// not an error. Ties order by ascending song ID so rankings are stable
// across calls and storage engines.
func (a *Aggregator) TopSongs(ctx context.Context, q Query) ([]model.RankedSong, int64, error) {
	counts, err := a.playback.CountBySong(ctx, q.Genre, q.Since)
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(counts))

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Listens != counts[j].Listens {
			return counts[i].Listens > counts[j].Listens
		}
		return counts[i].SongID < counts[j].SongID
	})

	page := slicePage(counts, q.Skip, q.Take)
	if len(page) == 0 {
		return []model.RankedSong{}, total, nil
	}

	ids := make([]int64, 0, len(page))
	listens := make(map[int64]int64, len(page))
	for _, c := range page {
		ids = append(ids, c.SongID)
		listens[c.SongID] = c.Listens
	}

	// Hydrate only the sliced IDs; the bulk fetch does not preserve input
	// order, so the page is re-sorted after the counts are re-attached.
	songs, err := a.songs.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	ranked := make([]model.RankedSong, 0, len(songs))
	for _, song := range songs {
		ranked = append(ranked, model.RankedSong{
			Song:        *song,
			ListenCount: listens[song.ID],
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ListenCount != ranked[j].ListenCount {
			return ranked[i].ListenCount > ranked[j].ListenCount
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked, total, nil
}

// ListGenres returns the distinct non-empty genres in the catalog. This is
// a separate operation from TopSongs on purpose: listing genres and ranking
// songs within one are different responses, not two modes of one call.
func (a *Aggregator) ListGenres(ctx context.Context) ([]string, error) {
	genres, err := a.songs.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

func slicePage(counts []repository.SongListenCount, skip, take int) []repository.SongListenCount {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(counts) || take <= 0 {
		return nil
	}

	end := skip + take
	if end > len(counts) {
		end = len(counts)
	}
	return counts[skip:end]
}
