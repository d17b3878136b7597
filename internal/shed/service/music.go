package service

import (
	"errors"
	"slices"
	"sync/atomic"

	"github.com/codingbarn/barnyard/internal/shed/domain"
)

// ErrSongNotFound is returned when a play request names an unknown song id.
var ErrSongNotFound = errors.New("song not found")

// MusicService holds a fixed playlist and a cursor into it. The playlist is
// immutable after construction; only the cursor moves.
type MusicService struct {
	playlist     []domain.Song
	currentIndex atomic.Int64
}

func NewMusicService() *MusicService {
	return &MusicService{
		playlist: []domain.Song{
			{ID: "1", Title: "Harvest Moon", Artist: "Neil Young", Album: "Harvest Moon"},
			{ID: "2", Title: "Fields of Gold", Artist: "Sting", Album: "Ten Summoner's Tales"},
			{ID: "3", Title: "Autumn Leaves", Artist: "Bill Evans", Album: "Portrait in Jazz"},
			{ID: "4", Title: "September", Artist: "Earth, Wind & Fire", Album: "The Best of Earth, Wind & Fire, Vol. 1"},
			{ID: "5", Title: "Watermelon Sugar", Artist: "Harry Styles", Album: "Fine Line"},
		},
	}
}

// CurrentSong returns the song the cursor points at.
func (s *MusicService) CurrentSong() domain.Song {
	index := int(s.currentIndex.Load()) % len(s.playlist)
	if index < 0 {
		index += len(s.playlist)
	}
	return s.playlist[index]
}

// PlaySong jumps the cursor to the given song id.
func (s *MusicService) PlaySong(songID string) (domain.Song, error) {
	for i, song := range s.playlist {
		if song.ID == songID {
			s.currentIndex.Store(int64(i))
			return song, nil
		}
	}
	return domain.Song{}, ErrSongNotFound
}

// NextSong advances the cursor and returns the new current song.
func (s *MusicService) NextSong() domain.Song {
	s.currentIndex.Add(1)
	return s.CurrentSong()
}

// Playlist returns a copy of the full playlist.
func (s *MusicService) Playlist() []domain.Song {
	return slices.Clone(s.playlist)
}
