package streams

import (
	"context"
	"hash/fnv"
	"sync"
)

const (
	defaultNumPartitions = 8
	defaultBuffer        = 1024
)

// QueueConfig sizes a PartitionedQueue. Zero values fall back to the defaults.
type QueueConfig struct {
	Partitions int
	Buffer     int
}

// PartitionedQueue is an in-process topic of buffered partitions. Messages with the same
// partition key always land on the same partition.
type PartitionedQueue[T any] struct {
	partitions []chan T
	closeOnce  sync.Once
}

func NewPartitionedQueue[T any](config QueueConfig) *PartitionedQueue[T] {
	if config.Partitions <= 0 {
		config.Partitions = defaultNumPartitions
	}
	if config.Buffer <= 0 {
		config.Buffer = defaultBuffer
	}
	channels := make([]chan T, config.Partitions)
	for i := range channels {
		channels[i] = make(chan T, config.Buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

func (queue *PartitionedQueue[T]) Partition(index int) <-chan T { return queue.partitions[index] }

// Publish blocks while the target partition is full. It gives up once ctx is done.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ch := queue.partitions[partitionIndex(partitionKey, len(queue.partitions))]
	select {
	case ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Depth is the number of buffered messages across all partitions.
func (queue *PartitionedQueue[T]) Depth() int {
	depth := 0
	for _, ch := range queue.partitions {
		depth += len(ch)
	}
	return depth
}

func (queue *PartitionedQueue[T]) Close() {
	queue.closeOnce.Do(func() {
		for _, ch := range queue.partitions {
			close(ch)
		}
	})
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	return int(hash.Sum32() % uint32(n))
}
