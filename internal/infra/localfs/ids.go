package localfs

import "strings"

// Record ID prefixes. Track and playlist IDs carry the slash-separated path
// relative to the root.
const (
	prefixTrack    = "local:track:"
	prefixPlaylist = "local:playlist:"
	prefixAlbum    = "local:album:"
	prefixArtist   = "local:artist:"
)

// TrackID returns the ID of the audio file at rel.
func TrackID(rel string) string {
	return prefixTrack + rel
}

// PlaylistID returns the ID of the m3u file at rel.
func PlaylistID(rel string) string {
	return prefixPlaylist + rel
}

// AlbumID returns the ID of an album.
func AlbumID(artist, album string) string {
	return prefixAlbum + strings.ToLower(artist) + "/" + strings.ToLower(album)
}

// ArtistID returns the ID of an artist.
func ArtistID(artist string) string {
	return prefixArtist + strings.ToLower(artist)
}

func trackRel(id string) string {
	return strings.TrimPrefix(id, prefixTrack)
}

// isLocalID reports whether id was issued by this source.
func isLocalID(id string) bool {
	return strings.HasPrefix(id, "local:")
}
