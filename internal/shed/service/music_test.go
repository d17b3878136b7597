package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMusicService_CurrentAndNext(t *testing.T) {
	svc := NewMusicService()

	require.Equal(t, "Harvest Moon", svc.CurrentSong().Title)

	next := svc.NextSong()
	require.Equal(t, "Fields of Gold", next.Title)
	require.Equal(t, next, svc.CurrentSong())
}

func TestMusicService_NextWrapsAround(t *testing.T) {
	svc := NewMusicService()

	for range len(svc.Playlist()) {
		svc.NextSong()
	}
	require.Equal(t, "Harvest Moon", svc.CurrentSong().Title)
}

func TestMusicService_PlaySong(t *testing.T) {
	svc := NewMusicService()

	song, err := svc.PlaySong("4")
	require.NoError(t, err)
	require.Equal(t, "September", song.Title)
	require.Equal(t, song, svc.CurrentSong())

	_, err = svc.PlaySong("99")
	require.ErrorIs(t, err, ErrSongNotFound)
	require.Equal(t, "September", svc.CurrentSong().Title)
}

func TestMusicService_ConcurrentNext(t *testing.T) {
	svc := NewMusicService()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.NextSong()
		}()
	}
	wg.Wait()

	// 100 skips over a 5 song playlist lands back at the start.
	require.Equal(t, "Harvest Moon", svc.CurrentSong().Title)
}

func TestEquipmentService_TotalAndRemoveAll(t *testing.T) {
	svc := NewEquipmentService()

	require.Len(t, svc.AllEquipment(), 6)
	require.Equal(t, 6480, svc.TotalValue())

	lost := svc.RemoveAllEquipment()
	require.Equal(t, 6480, lost)
	require.Empty(t, svc.AllEquipment())
	require.Zero(t, svc.TotalValue())
}

func TestEquipmentService_RemoveSingle(t *testing.T) {
	svc := NewEquipmentService()

	svc.RemoveEquipment("6")
	require.Len(t, svc.AllEquipment(), 5)
	require.Equal(t, 3980, svc.TotalValue())
}
