package indexes

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlist/screener-backend/models"
)

func TestPublisherBeforeFirstPublish(t *testing.T) {
	publisher := NewPublisher()

	_, err := publisher.Current()
	assert.ErrorIs(t, err, models.ErrNoSnapshot)
}

func TestPublisherSwap(t *testing.T) {
	publisher := NewPublisher()
	first, _ := buildFrom(t, nil, models.ListSourceOfac, feedRecords())

	publisher.Publish(first)
	current, err := publisher.Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), current.Version())

	second, _ := buildFrom(t, first, models.ListSourceOfac, feedRecords())
	publisher.Publish(second)
	current, err = publisher.Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), current.Version())
}

func TestPublisherUpdate(t *testing.T) {
	publisher := NewPublisher()

	err := publisher.Update(func(previous *Snapshot) (*Snapshot, error) {
		assert.Nil(t, previous)
		snapshot, _ := buildFrom(t, nil, models.ListSourceOfac, feedRecords())
		return snapshot, nil
	})
	require.NoError(t, err)

	current, err := publisher.Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), current.Version())

	// A failed update publishes nothing.
	err = publisher.Update(func(previous *Snapshot) (*Snapshot, error) {
		assert.Equal(t, uint64(1), previous.Version())
		return nil, models.EmptyIndexError
	})
	require.ErrorIs(t, err, models.EmptyIndexError)

	current, err = publisher.Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), current.Version())
}

// Concurrent updates for different sources must serialize: each cycle seeds
// from the other's published result, so no source's entities are lost.
func TestPublisherUpdateSerializesCycles(t *testing.T) {
	publisher := NewPublisher()

	rebuild := func(source models.ListSource) error {
		return publisher.Update(func(previous *Snapshot) (*Snapshot, error) {
			builder := NewBuilder(previous, source, nil)
			for _, record := range feedRecords() {
				if err := builder.Add(record); err != nil {
					return nil, err
				}
			}
			snapshot, _, err := builder.Finalize([]byte("feed"), time.Now())
			return snapshot, err
		})
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for _, source := range []models.ListSource{models.ListSourceOfac, models.ListSourceUn} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			assert.NoError(t, rebuild(source))
		}()
	}
	close(start)
	wg.Wait()

	current, err := publisher.Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), current.Version())
	assert.Equal(t, 6, current.EntityCount())
}

// A reader racing with publishers must always observe a complete snapshot:
// either the one published before it started or any published since, never
// an empty or partial one.
func TestPublisherAtomicSwapUnderConcurrency(t *testing.T) {
	publisher := NewPublisher()
	snapshot, _ := buildFrom(t, nil, models.ListSourceOfac, feedRecords())
	publisher.Publish(snapshot)

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		previous := snapshot
		for i := 0; i < 50; i++ {
			next, _, err := func() (*Snapshot, models.IngestReport, error) {
				builder := NewBuilder(previous, models.ListSourceOfac, nil)
				for _, record := range feedRecords() {
					if err := builder.Add(record); err != nil {
						return nil, models.IngestReport{}, err
					}
				}
				return builder.Finalize([]byte("feed"), time.Now())
			}()
			if err != nil {
				t.Error(err)
				return
			}
			publisher.Publish(next)
			previous = next
		}
		close(done)
	}()

	for reader := 0; reader < 4; reader++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				current, err := publisher.Current()
				if assert.NoError(t, err) {
					assert.Equal(t, 3, current.EntityCount())
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()

	current, err := publisher.Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(51), current.Version())
}
