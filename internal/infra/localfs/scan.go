// Package localfs provides a catalog source backed by a local music
// directory. Tracks come from audio file tags, playlists from .m3u files,
// and albums and artists are grouped from the tags.
package localfs

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	zlog "github.com/rs/zerolog/log"
	"github.com/ushis/m3u"
	"golang.org/x/sync/errgroup"

	"github.com/osa030/tunedeck/internal/app/catalog"
	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
)

// UnknownArtist names tracks without artist information.
const UnknownArtist = "Unknown Artist"

var audioExts = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
}

const playlistExt = ".m3u"

// scanned is one audio file with the fields read from its tags.
type scanned struct {
	rel         string // Slash-separated path relative to the root
	title       string
	artist      string
	albumArtist string
	album       string
	number      int
}

// scanResult is the outcome of one directory walk.
type scanResult struct {
	content catalog.Content
	dirs    []string
}

// scanner walks a root directory.
type scanner struct {
	root            string
	concurrency     int
	defaultDuration int
}

func isAudio(name string) bool {
	return audioExts[strings.ToLower(filepath.Ext(name))]
}

func isPlaylist(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == playlistExt
}

// scan walks the root, reads tags concurrently and builds catalog content.
func (s *scanner) scan(ctx context.Context) (scanResult, error) {
	var audio, playlists, dirs []string

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			zlog.Debug().Msgf("localfs: skipping %s: %v", p, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != s.root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, p)
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		switch {
		case isAudio(p):
			audio = append(audio, rel)
		case isPlaylist(p):
			playlists = append(playlists, rel)
		}
		return nil
	})
	if err != nil {
		return scanResult{}, errors.Wrapf(err, "failed to walk %s", s.root)
	}

	files := make([]scanned, len(audio))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, rel := range audio {
		i, rel := i, rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i] = s.readTags(rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return scanResult{}, errors.Wrap(err, "scan cancelled")
	}

	content := s.build(files, playlists)
	zlog.Info().Msgf("localfs: scanned %s: tracks=%d playlists=%d", s.root, len(files), len(playlists))
	return scanResult{content: content, dirs: dirs}, nil
}

// readTags reads the file's tags, falling back to the file name
// ("Artist - Title") and the parent directory as album.
func (s *scanner) readTags(rel string) scanned {
	f := fallbackTags(rel)

	file, err := os.Open(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		zlog.Debug().Msgf("localfs: open %s: %v", rel, err)
		return f
	}
	defer file.Close()

	m, err := tag.ReadFrom(file)
	if err != nil {
		if !errors.Is(err, tag.ErrNoTagsFound) {
			zlog.Debug().Msgf("localfs: read tags %s: %v", rel, err)
		}
		return f
	}

	if v := strings.TrimSpace(m.Title()); v != "" {
		f.title = v
	}
	if v := strings.TrimSpace(m.Artist()); v != "" {
		f.artist = v
	}
	if v := strings.TrimSpace(m.AlbumArtist()); v != "" {
		f.albumArtist = v
	}
	if v := strings.TrimSpace(m.Album()); v != "" {
		f.album = v
	}
	if n, _ := m.Track(); n > 0 {
		f.number = n
	}
	return f
}

func fallbackTags(rel string) scanned {
	base := path.Base(rel)
	name := strings.TrimSuffix(base, path.Ext(base))

	f := scanned{rel: rel, title: name, artist: UnknownArtist}
	if artist, title, ok := strings.Cut(name, " - "); ok {
		f.artist = strings.TrimSpace(artist)
		f.title = strings.TrimSpace(title)
	}
	if dir := path.Dir(rel); dir != "." {
		f.album = path.Base(dir)
	}
	return f
}

// build groups scanned files into tracks, albums, artists and playlists.
func (s *scanner) build(files []scanned, playlists []string) catalog.Content {
	tracks := make([]track.Track, len(files))
	byPath := make(map[string]int, len(files))
	for i, f := range files {
		tracks[i] = track.Track{
			ID:       TrackID(f.rel),
			Title:    f.title,
			Artist:   f.artist,
			Album:    f.album,
			Duration: s.defaultDuration,
		}
		byPath[f.rel] = i
	}

	// Durations come from EXTINF entries, so playlists are read first.
	var lists []collection.Collection
	for _, rel := range playlists {
		pl, err := s.readPlaylist(rel, tracks, byPath)
		if err != nil {
			zlog.Warn().Msgf("localfs: playlist %s: %v", rel, err)
			continue
		}
		lists = append(lists, pl)
	}
	// Playlist tracks were copied before durations were final.
	for i := range lists {
		for j := range lists[i].Tracks {
			lists[i].Tracks[j] = tracks[byPath[trackRel(lists[i].Tracks[j].ID)]]
		}
	}

	albums, artists := group(files, tracks)

	collections := make([]collection.Collection, 0, len(lists)+len(albums)+len(artists))
	collections = append(collections, lists...)
	collections = append(collections, albums...)
	collections = append(collections, artists...)

	return catalog.Content{
		Tracks:      tracks,
		Collections: collections,
	}
}

// readPlaylist parses an m3u file. Entries are resolved relative to the
// playlist's directory; entries outside the root are skipped. An EXTINF
// duration overrides the track's duration.
func (s *scanner) readPlaylist(rel string, tracks []track.Track, byPath map[string]int) (collection.Collection, error) {
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return collection.Collection{}, errors.Wrap(err, "failed to open playlist")
	}
	defer f.Close()

	entries, err := m3u.Parse(f)
	if err != nil {
		return collection.Collection{}, errors.Wrap(err, "failed to parse playlist")
	}

	base := path.Base(rel)
	pl := collection.Collection{
		ID:          PlaylistID(rel),
		Kind:        collection.KindPlaylist,
		Title:       strings.TrimSuffix(base, path.Ext(base)),
		Description: path.Dir(rel),
		Creator:     "Local",
	}

	for _, e := range entries {
		target := filepath.ToSlash(e.Path)
		if !path.IsAbs(target) {
			target = path.Join(path.Dir(rel), target)
		} else if r, err := filepath.Rel(s.root, e.Path); err == nil {
			target = filepath.ToSlash(r)
		}
		i, ok := byPath[path.Clean(target)]
		if !ok {
			zlog.Debug().Msgf("localfs: playlist %s: unresolved entry %s", rel, e.Path)
			continue
		}
		if e.Time > 0 {
			tracks[i].Duration = int(e.Time)
		}
		pl.Tracks = append(pl.Tracks, tracks[i])
	}
	return pl, nil
}

// group builds albums keyed by album artist and title, and artists with
// all their tracks and albums.
func group(files []scanned, tracks []track.Track) (albums, artists []collection.Collection) {
	albumIndex := make(map[string]int)
	albumNumbers := make(map[string][]int)
	artistIndex := make(map[string]int)

	for i, f := range files {
		artistName := f.artist
		if f.albumArtist != "" {
			artistName = f.albumArtist
		}

		ai, ok := artistIndex[artistName]
		if !ok {
			ai = len(artists)
			artistIndex[artistName] = ai
			artists = append(artists, collection.Collection{
				ID:    ArtistID(artistName),
				Kind:  collection.KindArtist,
				Title: artistName,
			})
		}
		artists[ai].Tracks = append(artists[ai].Tracks, tracks[i])

		if f.album == "" {
			continue
		}
		id := AlbumID(artistName, f.album)
		bi, ok := albumIndex[id]
		if !ok {
			bi = len(albums)
			albumIndex[id] = bi
			albums = append(albums, collection.Collection{
				ID:      id,
				Kind:    collection.KindAlbum,
				Title:   f.album,
				Creator: artistName,
			})
		}
		albums[bi].Tracks = append(albums[bi].Tracks, tracks[i])
		albumNumbers[id] = append(albumNumbers[id], f.number)
	}

	for bi := range albums {
		sortByNumber(albums[bi].Tracks, albumNumbers[albums[bi].ID])
		artistName := albums[bi].Creator
		ai := artistIndex[artistName]
		artists[ai].Children = append(artists[ai].Children, albums[bi])
	}
	for ai := range artists {
		artists[ai].Description = describe(len(artists[ai].Tracks), len(artists[ai].Children))
	}
	return albums, artists
}

// sortByNumber orders album tracks by track number, unnumbered last,
// keeping scan order for ties.
func sortByNumber(tracks []track.Track, numbers []int) {
	idx := make([]int, len(tracks))
	for i := range idx {
		idx[i] = i
	}
	key := func(n int) int {
		if n <= 0 {
			return int(^uint(0) >> 1)
		}
		return n
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return key(numbers[idx[a]]) < key(numbers[idx[b]])
	})

	sorted := make([]track.Track, len(tracks))
	for i, j := range idx {
		sorted[i] = tracks[j]
	}
	copy(tracks, sorted)
}

func describe(tracks, albums int) string {
	return plural(tracks, "track") + ", " + plural(albums, "album")
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}
